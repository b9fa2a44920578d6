package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger     *zap.Logger
	repo       *repository.Repository
	pagination config.PaginationConfig
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, pagination config.PaginationConfig) Comment {
	return &commentService{
		logger:     logger,
		repo:       repo,
		pagination: pagination,
	}
}

func (s *commentService) FindPostComments(ctx context.Context, postID int64, page dto.PageRequest) (*dto.CommentsPage, error) {
	after, take, err := parsePage(page, s.pagination)
	if err != nil {
		return nil, err
	}

	if err := s.postExists(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID, pagination.Fetch(after, take))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}

	comments, hasMore := pagination.Trim(comments, take)

	result := &dto.CommentsPage{
		Comments: comments,
		HasMore:  hasMore,
	}
	if hasMore {
		last := comments[len(comments)-1].Comment
		result.NextCursor = pagination.Encode(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return result, nil
}

func (s *commentService) Create(ctx context.Context, sess *model.Session, postID int64, input dto.CreateCommentRequest) (*model.Comment, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	body := strings.TrimSpace(input.Body)
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}

	if err := s.postExists(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Postgres.Comment.Create(ctx, model.Comment{
		PostID:   postID,
		AuthorID: sess.UserID,
		Body:     body,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", sess.UserID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, sess *model.Session, commentID int64) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d): %s", commentID, err.Error())
		return ErrInternal
	}

	if comment.AuthorID != sess.UserID {
		return ErrCannotUpdateComment
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, commentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", commentID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *commentService) postExists(ctx context.Context, postID int64) error {
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	return nil
}
