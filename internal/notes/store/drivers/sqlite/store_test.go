package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
	"github.com/aussiebroadwan/notepad/internal/notes/store"
	"github.com/aussiebroadwan/notepad/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notepad/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func createNote(t *testing.T, s store.Store, userID, title, content string, category *string) domain.Note {
	t.Helper()

	now := time.Now().UTC()
	n := domain.Note{
		ID:        idx.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Notes().CreateNote(context.Background(), n))
	return n
}

func ptr(s string) *string { return &s }

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")

	t.Run("lookup by id and username", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", got.Username)
		require.Equal(t, "hash", got.PasswordHash)
		require.WithinDuration(t, alice.CreatedAt, got.CreatedAt, time.Second)

		got, err = s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		now := time.Now().UTC()
		err := s.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Username: "alice", PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update password hash", func(t *testing.T) {
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, alice.ID, "new-hash"))

		got, err := s.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "new-hash", got.PasswordHash)

		err = s.Users().UpdatePasswordHash(ctx, idx.New().String(), "x")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestNotesCRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	note := createNote(t, s, alice.ID, "Groceries", "milk, eggs", ptr("home"))

	t.Run("owner can read", func(t *testing.T) {
		got, err := s.Notes().GetNote(ctx, alice.ID, note.ID)
		require.NoError(t, err)
		require.Equal(t, "Groceries", got.Title)
		require.Equal(t, "milk, eggs", got.Content)
		require.NotNil(t, got.Category)
		require.Equal(t, "home", *got.Category)
		require.Equal(t, alice.ID, got.UserID)
	})

	t.Run("other user cannot see it", func(t *testing.T) {
		_, err := s.Notes().GetNote(ctx, bob.ID, note.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		updated := note
		updated.UserID = bob.ID
		updated.Title = "hijacked"
		require.ErrorIs(t, s.Notes().UpdateNote(ctx, updated), store.ErrNotFound)
		require.ErrorIs(t, s.Notes().DeleteNote(ctx, bob.ID, note.ID), store.ErrNotFound)

		got, err := s.Notes().GetNote(ctx, alice.ID, note.ID)
		require.NoError(t, err)
		require.Equal(t, "Groceries", got.Title)
	})

	t.Run("update keeps created_at", func(t *testing.T) {
		updated := note
		updated.Title = "Shopping"
		updated.Category = nil
		updated.UpdatedAt = note.UpdatedAt.Add(time.Minute)
		updated.CreatedAt = note.CreatedAt.Add(time.Hour)
		require.NoError(t, s.Notes().UpdateNote(ctx, updated))

		got, err := s.Notes().GetNote(ctx, alice.ID, note.ID)
		require.NoError(t, err)
		require.Equal(t, "Shopping", got.Title)
		require.Nil(t, got.Category)
		require.WithinDuration(t, note.CreatedAt, got.CreatedAt, time.Second)
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Notes().DeleteNote(ctx, alice.ID, note.ID))
		_, err := s.Notes().GetNote(ctx, alice.ID, note.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Notes().DeleteNote(ctx, alice.ID, note.ID), store.ErrNotFound)
	})

	t.Run("note for unknown user violates foreign key", func(t *testing.T) {
		now := time.Now().UTC()
		err := s.Notes().CreateNote(ctx, domain.Note{
			ID: idx.New().String(), UserID: idx.New().String(), Title: "t", Content: "c", CreatedAt: now, UpdatedAt: now,
		})
		require.Error(t, err)
	})
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	first := createNote(t, s, alice.ID, "Meeting notes", "Discuss Q3 roadmap", ptr("work"))
	second := createNote(t, s, alice.ID, "Recipe", "Pancakes need flour", ptr("home"))
	third := createNote(t, s, alice.ID, "100% done", "ship_it", nil)
	createNote(t, s, bob.ID, "Bob's meeting", "private", ptr("work"))

	ids := func(notes []domain.Note) []string {
		out := make([]string, 0, len(notes))
		for _, n := range notes {
			out = append(out, n.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter domain.NoteFilter
		want   []string
	}{
		{name: "all in insertion order", want: []string{first.ID, second.ID, third.ID}},
		{name: "search title case-insensitive", filter: domain.NoteFilter{Query: "MEETING"}, want: []string{first.ID}},
		{name: "search content", filter: domain.NoteFilter{Query: "flour"}, want: []string{second.ID}},
		{name: "percent is literal", filter: domain.NoteFilter{Query: "%"}, want: []string{third.ID}},
		{name: "underscore is literal", filter: domain.NoteFilter{Query: "h_p"}, want: []string{}},
		{name: "category", filter: domain.NoteFilter{Category: "work"}, want: []string{first.ID}},
		{name: "category and query", filter: domain.NoteFilter{Category: "home", Query: "meeting"}, want: []string{}},
		{name: "no match", filter: domain.NoteFilter{Query: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Notes().ListNotes(ctx, alice.ID, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("user with no notes", func(t *testing.T) {
		carol := createUser(t, s, "carol")
		got, err := s.Notes().ListNotes(ctx, carol.ID, domain.NoteFilter{})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	createNote(t, s, alice.ID, "a", "a", ptr("work"))
	createNote(t, s, alice.ID, "b", "b", ptr("home"))
	createNote(t, s, alice.ID, "c", "c", ptr("work"))
	createNote(t, s, alice.ID, "d", "d", nil)
	createNote(t, s, bob.ID, "e", "e", ptr("secret"))

	cats, err := s.Notes().ListCategories(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"home", "work"}, cats)

	carol := createUser(t, s, "carol")
	cats, err = s.Notes().ListCategories(ctx, carol.ID)
	require.NoError(t, err)
	require.Empty(t, cats)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	alice := createUser(t, s, "alice")

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			createNote(t, tx, alice.ID, "temp", "temp", nil)
			return boom
		})
		require.ErrorIs(t, err, boom)

		notes, err := s.Notes().ListNotes(ctx, alice.ID, domain.NoteFilter{})
		require.NoError(t, err)
		require.Empty(t, notes)
	})

	t.Run("commit on success", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			createNote(t, tx, alice.ID, "kept", "kept", nil)
			return nil
		})
		require.NoError(t, err)

		notes, err := s.Notes().ListNotes(ctx, alice.ID, domain.NoteFilter{})
		require.NoError(t, err)
		require.Len(t, notes, 1)
	})

	t.Run("nested transactions are refused", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}
