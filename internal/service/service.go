package service

import (
	"context"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/mailer"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/BloggingApp/forum-service/internal/rabbitmq"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type User interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, sess *model.Session) error
	LogoutAll(ctx context.Context, sess *model.Session) error
	Me(ctx context.Context, sess *model.Session) (*model.User, error)
	CheckSession(ctx context.Context, accessToken string) (*model.Session, error)
}

type Sub interface {
	Create(ctx context.Context, sess *model.Session, input dto.CreateSubRequest) (*model.Sub, error)
	FindByName(ctx context.Context, name string) (*model.FullSub, error)
	FindAll(ctx context.Context) ([]*model.Sub, error)
	Subscribe(ctx context.Context, sess *model.Session, name string) error
	Unsubscribe(ctx context.Context, sess *model.Session, name string) error
	Subscriptions(ctx context.Context, sess *model.Session) ([]string, error)
}

type Post interface {
	Feed(ctx context.Context, sess *model.Session, page dto.PageRequest) (*dto.PostsPage, error)
	SubFeed(ctx context.Context, sess *model.Session, subName string, page dto.PageRequest) (*dto.PostsPage, error)
	AuthorFeed(ctx context.Context, sess *model.Session, authorID uuid.UUID, page dto.PageRequest) (*dto.PostsPage, error)
	FindByID(ctx context.Context, sess *model.Session, id int64) (*model.PostView, error)
	Create(ctx context.Context, sess *model.Session, subName string, input dto.PostInput) (*model.Post, error)
	Edit(ctx context.Context, sess *model.Session, id int64, input dto.PostInput) (*model.Post, error)
	Delete(ctx context.Context, sess *model.Session, id int64) (bool, error)
	Vote(ctx context.Context, sess *model.Session, id int64, value int) (*model.PostView, error)
}

type Comment interface {
	FindPostComments(ctx context.Context, postID int64, page dto.PageRequest) (*dto.CommentsPage, error)
	Create(ctx context.Context, sess *model.Session, postID int64, input dto.CreateCommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, sess *model.Session, commentID int64) error
}

type Options struct {
	Auth       config.AuthConfig
	Pagination config.PaginationConfig
}

type Service struct {
	User
	Sub
	Post
	Comment
}

func New(logger *zap.Logger, repo *repository.Repository, publisher rabbitmq.Publisher, mail mailer.Mailer, opts Options) *Service {
	return &Service{
		User:    newUserService(logger, repo, mail, opts.Auth),
		Sub:     newSubService(logger, repo),
		Post:    newPostService(logger, repo, publisher, opts.Pagination),
		Comment: newCommentService(logger, repo, opts.Pagination),
	}
}

func maxLimit(limit *int, max int) {
	if *limit > max {
		*limit = max
	}
}

// parsePage turns a page request into a decoded cursor and a page size.
// A zero take means the configured default.
func parsePage(page dto.PageRequest, cfg config.PaginationConfig) (*pagination.Cursor, int, error) {
	var v validator

	take := page.Take
	if take == 0 {
		take = cfg.DefaultTake
	}
	v.check(take > 0, "take", "take must be a positive integer")
	maxLimit(&take, cfg.MaxTake)

	after, err := pagination.Decode(page.Cursor)
	v.check(err == nil, "cursor", "cursor is malformed")

	if err := v.err(); err != nil {
		return nil, 0, err
	}

	return after, take, nil
}

func requireSession(sess *model.Session) error {
	if sess == nil {
		return ErrNotAuthenticated
	}

	return nil
}
