package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
	"github.com/aussiebroadwan/notepad/internal/notes/store"
	"github.com/aussiebroadwan/notepad/internal/notes/store/drivers/postgres"
	"github.com/aussiebroadwan/notepad/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway PostgreSQL container and returns a
// migrated store connected to it.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "notepad",
			"POSTGRES_PASSWORD": "notepad",
			"POSTGRES_DB":       "notepad",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://notepad:notepad@%s:%s/notepad?sslmode=disable", host, mappedPort.Port())
	s, err := postgres.NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	alice := domain.User{ID: idx.New().String(), Username: "alice", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	dup := alice
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	work := "work"
	var ids []string
	for i, title := range []string{"Meeting", "Recipe", "100% done"} {
		n := domain.Note{
			ID: idx.New().String(), UserID: alice.ID, Title: title, Content: fmt.Sprintf("body %d", i),
			CreatedAt: now, UpdatedAt: now,
		}
		if i == 0 {
			n.Category = &work
		}
		require.NoError(t, s.Notes().CreateNote(ctx, n))
		ids = append(ids, n.ID)
	}

	all, err := s.Notes().ListNotes(ctx, alice.ID, domain.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := range all {
		require.Equal(t, ids[i], all[i].ID)
	}

	found, err := s.Notes().ListNotes(ctx, alice.ID, domain.NoteFilter{Query: "meeting"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.Notes().ListNotes(ctx, alice.ID, domain.NoteFilter{Query: "%"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, ids[2], found[0].ID)

	cats, err := s.Notes().ListCategories(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"work"}, cats)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Notes().GetNote(ctx, alice.ID, ids[0])
		if err != nil {
			return err
		}
		n.Title = "Standup"
		n.UpdatedAt = now.Add(time.Minute)
		return tx.Notes().UpdateNote(ctx, n)
	})
	require.NoError(t, err)

	got, err := s.Notes().GetNote(ctx, alice.ID, ids[0])
	require.NoError(t, err)
	require.Equal(t, "Standup", got.Title)
	require.True(t, got.CreatedAt.Equal(now))

	require.NoError(t, s.Notes().DeleteNote(ctx, alice.ID, ids[1]))
	require.ErrorIs(t, s.Notes().DeleteNote(ctx, alice.ID, ids[1]), store.ErrNotFound)
}
