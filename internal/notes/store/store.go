package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrTimeout       = errors.New("store: timed out")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx exposes the same ones.
type Store interface {
	Users() Users
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts u. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the stored hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

// Notes is always scoped by owner: a note belonging to someone else looks
// exactly like a missing one.
type Notes interface {
	CreateNote(ctx context.Context, n domain.Note) error
	GetNote(ctx context.Context, userID, noteID string) (domain.Note, error)

	// ListNotes returns the owner's notes oldest first.
	ListNotes(ctx context.Context, userID string, f domain.NoteFilter) ([]domain.Note, error)

	// UpdateNote overwrites title, content, category and updated_at of the
	// note matching n.ID and n.UserID. created_at is never written.
	UpdateNote(ctx context.Context, n domain.Note) error

	DeleteNote(ctx context.Context, userID, noteID string) error

	// ListCategories returns the owner's distinct categories, sorted.
	ListCategories(ctx context.Context, userID string) ([]string, error)
}
