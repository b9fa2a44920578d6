package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -destination=../mocks/postgres_mock.go -package=mocks . User,Sub,Post,Vote,Comment

// DBTX is the part of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return pool, nil
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
}

type Sub interface {
	Create(ctx context.Context, sub model.Sub) (*model.Sub, error)
	FindByName(ctx context.Context, name string) (*model.FullSub, error)
	FindAll(ctx context.Context) ([]*model.Sub, error)
	Subscribe(ctx context.Context, userID uuid.UUID, name string) error
	Unsubscribe(ctx context.Context, userID uuid.UUID, name string) error
	FindUserSubscriptions(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// PostFilter narrows a post listing. Zero value means every post.
type PostFilter struct {
	SubNames  []string
	CreatorID *uuid.UUID
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	Find(ctx context.Context, filter PostFilter, page pagination.Directive) ([]*model.FullPost, error)
	Update(ctx context.Context, post model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

type Vote interface {
	Upsert(ctx context.Context, vote model.Vote) error
	Delete(ctx context.Context, userID uuid.UUID, postID int64) error
	FindByPostIDs(ctx context.Context, postIDs []int64) ([]*model.Vote, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64, page pagination.Directive) ([]*model.FullComment, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresRepository struct {
	User
	Sub
	Post
	Vote
	Comment
}

func New(db DBTX) *PostgresRepository {
	return &PostgresRepository{
		User:    newUserRepo(db),
		Sub:     newSubRepo(db),
		Post:    newPostRepo(db),
		Vote:    newVoteRepo(db),
		Comment: newCommentRepo(db),
	}
}
