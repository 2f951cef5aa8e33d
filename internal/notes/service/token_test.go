package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	t.Run("issue then verify", func(t *testing.T) {
		svc, err := service.NewTokenService([]byte(testSecret), testIssuer, time.Hour)
		require.NoError(t, err)

		before := time.Now()
		tok, exp, err := svc.Issue("user-1")
		require.NoError(t, err)
		require.NotEmpty(t, tok)
		require.WithinDuration(t, before.Add(time.Hour), exp, 2*time.Second)

		uid, err := svc.UserID(tok)
		require.NoError(t, err)
		require.Equal(t, "user-1", uid)
	})

	t.Run("zero ttl defaults to one hour", func(t *testing.T) {
		svc, err := service.NewTokenService([]byte(testSecret), testIssuer, 0)
		require.NoError(t, err)
		require.Equal(t, jwtx.DefaultSessionTTL, svc.TTL)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := service.NewTokenService(nil, testIssuer, time.Hour)
		require.ErrorIs(t, err, jwtx.ErrEmptySecret)
	})

	t.Run("expired token", func(t *testing.T) {
		svc, err := service.NewTokenService([]byte(testSecret), testIssuer, time.Hour)
		require.NoError(t, err)
		svc.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		tok, _, err := svc.Issue("user-1")
		require.NoError(t, err)

		_, err = svc.UserID(tok)
		require.ErrorIs(t, err, service.ErrInvalidToken)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("token from another secret", func(t *testing.T) {
		other, err := service.NewTokenService([]byte("another-secret"), testIssuer, time.Hour)
		require.NoError(t, err)
		tok, _, err := other.Issue("user-1")
		require.NoError(t, err)

		svc, err := service.NewTokenService([]byte(testSecret), testIssuer, time.Hour)
		require.NoError(t, err)
		_, err = svc.UserID(tok)
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("garbage never panics", func(t *testing.T) {
		svc, err := service.NewTokenService([]byte(testSecret), testIssuer, time.Hour)
		require.NoError(t, err)

		for _, tok := range []string{"", "undefined", "null", "a.b.c", "....", "eyJhbGciOiJub25lIn0.e30."} {
			require.NotPanics(t, func() {
				_, err := svc.UserID(tok)
				require.ErrorIs(t, err, service.ErrInvalidToken)
			})
		}
	})
}
