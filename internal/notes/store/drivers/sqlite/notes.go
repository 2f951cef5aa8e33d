package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
	"github.com/aussiebroadwan/notepad/internal/notes/store/drivers/sqlite/gen"
)

type notesRepo struct {
	q *gen.Queries
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	return mapConstraint(r.q.CreateNote(ctx, gen.CreateNoteParams{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  mapOptionalString(n.Category),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}))
}

func (r *notesRepo) GetNote(ctx context.Context, userID, noteID string) (domain.Note, error) {
	row, err := r.q.GetNote(ctx, gen.GetNoteParams{ID: noteID, UserID: userID})
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	return mapNote(row), nil
}

func (r *notesRepo) ListNotes(ctx context.Context, userID string, f domain.NoteFilter) ([]domain.Note, error) {
	var pattern string
	if f.Query != "" {
		pattern = "%" + escapeLike(f.Query) + "%"
	}

	rows, err := r.q.ListNotes(ctx, gen.ListNotesParams{
		UserID:   userID,
		Category: f.Category,
		Pattern:  pattern,
	})
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, mapNote(row))
	}
	return notes, nil
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	return mapAffected(r.q.UpdateNote(ctx, gen.UpdateNoteParams{
		Title:     n.Title,
		Content:   n.Content,
		Category:  mapOptionalString(n.Category),
		UpdatedAt: n.UpdatedAt,
		ID:        n.ID,
		UserID:    n.UserID,
	}))
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID, noteID string) error {
	return mapAffected(r.q.DeleteNote(ctx, gen.DeleteNoteParams{ID: noteID, UserID: userID}))
}

func (r *notesRepo) ListCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(rows))
	for _, c := range rows {
		if c.Valid {
			categories = append(categories, c.String)
		}
	}
	return categories, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
