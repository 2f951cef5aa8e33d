package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
	"github.com/aussiebroadwan/notepad/internal/notes/store"
	"github.com/aussiebroadwan/notepad/pkg/idx"
	"github.com/aussiebroadwan/notepad/pkg/slogx"
)

// NoteInput is the body of a create request. An empty Category means none.
type NoteInput struct {
	Title    string
	Content  string
	Category string
}

// ListFilter narrows List. The zero value returns everything.
type ListFilter = domain.NoteFilter

// NoteService is the owner-scoped CRUD surface for notes. Every method takes
// the caller's user id and never touches anyone else's notes.
type NoteService struct {
	Store store.Store

	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (s *NoteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *NoteService) Create(ctx context.Context, ownerID string, in NoteInput) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	category := normalizeCategory(&in.Category)
	note := domain.Note{
		ID:       idx.New().String(),
		UserID:   ownerID,
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		Category: category,
	}
	if err := validateNote(note); err != nil {
		return domain.Note{}, err
	}

	now := s.now()
	note.CreatedAt = now
	note.UpdatedAt = now

	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		log.Error("failed to create note", slog.Any("error", err))
		return domain.Note{}, mapStoreError(err)
	}

	log.Debug("note created", slog.String("note_id", note.ID))
	return note, nil
}

// List returns the owner's notes in creation order.
func (s *NoteService) List(ctx context.Context, ownerID string, f ListFilter) ([]domain.Note, error) {
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.TrimSpace(f.Category)

	notes, err := s.Store.Notes().ListNotes(ctx, ownerID, f)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list notes", slog.Any("error", err))
		return nil, mapStoreError(err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, ownerID, noteID string) (domain.Note, error) {
	note, err := s.Store.Notes().GetNote(ctx, ownerID, noteID)
	if err != nil {
		return domain.Note{}, s.lookupError(ctx, err)
	}
	return note, nil
}

// Update applies patch to the note. Omitted fields stay as they are and
// CreatedAt never changes.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, patch domain.NotePatch) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	patch = normalizePatch(patch)

	var updated domain.Note
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Notes().GetNote(ctx, ownerID, noteID)
		if err != nil {
			return err
		}

		next := patch.Apply(current)
		if err := validateNote(next); err != nil {
			return err
		}
		next.UpdatedAt = s.now()

		if err := tx.Notes().UpdateNote(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return domain.Note{}, err
		}
		return domain.Note{}, s.lookupError(ctx, err)
	}

	log.Debug("note updated", slog.String("note_id", noteID))
	return updated, nil
}

// Delete removes the note. Deleting a missing note, including one that was
// already deleted, is ErrNoteNotFound.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	if err := s.Store.Notes().DeleteNote(ctx, ownerID, noteID); err != nil {
		return s.lookupError(ctx, err)
	}
	slogx.FromContext(ctx).Debug("note deleted", slog.String("note_id", noteID))
	return nil
}

// Categories lists the distinct categories the owner has used, sorted.
func (s *NoteService) Categories(ctx context.Context, ownerID string) ([]string, error) {
	cats, err := s.Store.Notes().ListCategories(ctx, ownerID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list categories", slog.Any("error", err))
		return nil, mapStoreError(err)
	}
	return cats, nil
}

func (s *NoteService) lookupError(ctx context.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoteNotFound
	}
	slogx.FromContext(ctx).Error("note store failure", slog.Any("error", err))
	return mapStoreError(err)
}

func validateNote(n domain.Note) error {
	if n.Title == "" {
		return validationError("title is required")
	}
	if n.Content == "" {
		return validationError("content is required")
	}
	if n.Category != nil && utf8.RuneCountInString(*n.Category) > domain.MaxCategoryLength {
		return validationError(fmt.Sprintf("category must be at most %d characters", domain.MaxCategoryLength))
	}
	return nil
}

// normalizeCategory trims c and maps blank to nil.
func normalizeCategory(c *string) *string {
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(*c)
	if v == "" {
		return nil
	}
	return &v
}

func normalizePatch(p domain.NotePatch) domain.NotePatch {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		p.Title = &v
	}
	if p.Content != nil {
		v := strings.TrimSpace(*p.Content)
		p.Content = &v
	}
	if p.Category != nil {
		v := strings.TrimSpace(*p.Category)
		p.Category = &v
	}
	return p
}
