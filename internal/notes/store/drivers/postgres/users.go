package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
)

type usersRepo struct {
	db DBTX
}

const userColumns = `id, username, password_hash, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE username = $1`

	return r.scanOne(ctx, query, username)
}

func (r *usersRepo) scanOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	query :=
		`INSERT INTO users (id, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return mapError(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	query :=
		`UPDATE users SET password_hash = $1, updated_at = $2
		 WHERE id = $3`

	return mapAffected(r.db.ExecContext(ctx, query, hash, time.Now().UTC(), userID))
}
