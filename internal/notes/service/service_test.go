package service_test

import (
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notepad/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-0123456789"
	testIssuer = "notepad-test"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("test-pepper")
	os.Exit(m.Run())
}

type env struct {
	store  *sqlite.Store
	tokens *service.TokenService
	auth   *service.AuthService
	notes  *service.NoteService
}

func newEnv(t *testing.T) env {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	tokens, err := service.NewTokenService([]byte(testSecret), testIssuer, time.Hour)
	require.NoError(t, err)

	return env{
		store:  s,
		tokens: tokens,
		auth:   &service.AuthService{Store: s, Tokens: tokens},
		notes:  &service.NoteService{Store: s},
	}
}
