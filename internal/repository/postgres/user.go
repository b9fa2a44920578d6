package postgres

import (
	"context"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
)

type userRepo struct {
	db DBTX
}

func newUserRepo(db DBTX) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO users(username, email, password_hash) VALUES($1, $2, $3) RETURNING id, created_at",
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, "SELECT u.id, u.username, u.email, u.password_hash, u.created_at FROM users u WHERE u.id = $1", id)
}

// FindByLogin matches either the username or the email.
func (r *userRepo) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.findOne(ctx, "SELECT u.id, u.username, u.email, u.password_hash, u.created_at FROM users u WHERE u.username = $1 OR lower(u.email) = lower($1)", login)
}

func (r *userRepo) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
