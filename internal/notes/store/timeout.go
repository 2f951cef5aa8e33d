package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
)

// WithTimeout bounds every call on s to d. A call that runs out of time
// fails with ErrTimeout instead of hanging the request. d <= 0 returns s.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{inner: s, d: d}
}

type timeoutStore struct {
	inner Store
	d     time.Duration
}

func (s *timeoutStore) Users() Users { return &timeoutUsers{inner: s.inner.Users(), d: s.d} }
func (s *timeoutStore) Notes() Notes { return &timeoutNotes{inner: s.inner.Notes(), d: s.d} }

func (s *timeoutStore) ApplyMigrations() error { return s.inner.ApplyMigrations() }
func (s *timeoutStore) Close() error           { return s.inner.Close() }

func (s *timeoutStore) Ping(ctx context.Context) error {
	return bounded(ctx, s.d, s.inner.Ping)
}

// Tx begins on the caller's context: database/sql rolls a transaction back
// as soon as its context ends, so the deadline cannot be attached here.
// Each repository call made through the Tx is still bounded.
func (s *timeoutStore) Tx(ctx context.Context) (Tx, error) {
	tx, err := s.inner.Tx(ctx)
	if err != nil {
		return nil, mapTimeout(ctx, err)
	}
	return &timeoutTx{timeoutStore: timeoutStore{inner: tx, d: s.d}, tx: tx}, nil
}

// WithTx bounds the whole transaction, including fn.
func (s *timeoutStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()

	err := s.inner.WithTx(ctx, func(tx Tx) error {
		return fn(&timeoutTx{timeoutStore: timeoutStore{inner: tx, d: s.d}, tx: tx})
	})
	return mapTimeout(ctx, err)
}

type timeoutTx struct {
	timeoutStore
	tx Tx
}

func (t *timeoutTx) Commit() error   { return t.tx.Commit() }
func (t *timeoutTx) Rollback() error { return t.tx.Rollback() }

type timeoutUsers struct {
	inner Users
	d     time.Duration
}

func (u *timeoutUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return call(ctx, u.d, func(ctx context.Context) (domain.User, error) {
		return u.inner.GetUserByID(ctx, id)
	})
}

func (u *timeoutUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return call(ctx, u.d, func(ctx context.Context) (domain.User, error) {
		return u.inner.GetUserByUsername(ctx, username)
	})
}

func (u *timeoutUsers) CreateUser(ctx context.Context, usr domain.User) error {
	return bounded(ctx, u.d, func(ctx context.Context) error {
		return u.inner.CreateUser(ctx, usr)
	})
}

func (u *timeoutUsers) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return bounded(ctx, u.d, func(ctx context.Context) error {
		return u.inner.UpdatePasswordHash(ctx, userID, hash)
	})
}

type timeoutNotes struct {
	inner Notes
	d     time.Duration
}

func (n *timeoutNotes) CreateNote(ctx context.Context, note domain.Note) error {
	return bounded(ctx, n.d, func(ctx context.Context) error {
		return n.inner.CreateNote(ctx, note)
	})
}

func (n *timeoutNotes) GetNote(ctx context.Context, userID, noteID string) (domain.Note, error) {
	return call(ctx, n.d, func(ctx context.Context) (domain.Note, error) {
		return n.inner.GetNote(ctx, userID, noteID)
	})
}

func (n *timeoutNotes) ListNotes(ctx context.Context, userID string, f domain.NoteFilter) ([]domain.Note, error) {
	return call(ctx, n.d, func(ctx context.Context) ([]domain.Note, error) {
		return n.inner.ListNotes(ctx, userID, f)
	})
}

func (n *timeoutNotes) UpdateNote(ctx context.Context, note domain.Note) error {
	return bounded(ctx, n.d, func(ctx context.Context) error {
		return n.inner.UpdateNote(ctx, note)
	})
}

func (n *timeoutNotes) DeleteNote(ctx context.Context, userID, noteID string) error {
	return bounded(ctx, n.d, func(ctx context.Context) error {
		return n.inner.DeleteNote(ctx, userID, noteID)
	})
}

func (n *timeoutNotes) ListCategories(ctx context.Context, userID string) ([]string, error) {
	return call(ctx, n.d, func(ctx context.Context) ([]string, error) {
		return n.inner.ListCategories(ctx, userID)
	})
}

func call[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	v, err := fn(ctx)
	return v, mapTimeout(ctx, err)
}

func bounded(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	_, err := call(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// mapTimeout converts a failure caused by ctx's deadline into ErrTimeout.
// Drivers report an expired deadline in different ways, so ctx is checked
// as well as err.
func mapTimeout(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
