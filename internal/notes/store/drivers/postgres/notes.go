package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
)

type notesRepo struct {
	db DBTX
}

const noteColumns = `id, user_id, title, content, category, created_at, updated_at`

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	query :=
		`INSERT INTO notes (id, user_id, title, content, category, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, nullString(n.Category), n.CreatedAt, n.UpdatedAt)
	return mapError(err)
}

func (r *notesRepo) GetNote(ctx context.Context, userID, noteID string) (domain.Note, error) {
	query :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE id = $1 AND user_id = $2`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, noteID, userID))
	if err != nil {
		return domain.Note{}, mapError(err)
	}
	return n, nil
}

func (r *notesRepo) ListNotes(ctx context.Context, userID string, f domain.NoteFilter) ([]domain.Note, error) {
	query :=
		`SELECT ` + noteColumns + ` FROM notes
		 WHERE user_id = $1
		   AND ($2::text = '' OR category = $2)
		   AND ($3::text = '' OR title ILIKE $3 ESCAPE '\' OR content ILIKE $3 ESCAPE '\')
		 ORDER BY id`

	var pattern string
	if f.Query != "" {
		pattern = "%" + escapeLike(f.Query) + "%"
	}

	rows, err := r.db.QueryContext(ctx, query, userID, f.Category, pattern)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, mapError(err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return notes, nil
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	query :=
		`UPDATE notes SET title = $1, content = $2, category = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6`

	return mapAffected(r.db.ExecContext(ctx, query,
		n.Title, n.Content, nullString(n.Category), n.UpdatedAt, n.ID, n.UserID))
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID, noteID string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2`

	return mapAffected(r.db.ExecContext(ctx, query, noteID, userID))
}

func (r *notesRepo) ListCategories(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT DISTINCT category FROM notes
		 WHERE user_id = $1 AND category IS NOT NULL
		 ORDER BY category`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, mapError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return categories, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (domain.Note, error) {
	var (
		n        domain.Note
		category sql.NullString
	)
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &category, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return domain.Note{}, err
	}
	if category.Valid {
		n.Category = &category.String
	}
	return n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
