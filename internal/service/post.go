package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/BloggingApp/forum-service/internal/rabbitmq"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/BloggingApp/forum-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger     *zap.Logger
	repo       *repository.Repository
	publisher  rabbitmq.Publisher
	pagination config.PaginationConfig
}

func newPostService(logger *zap.Logger, repo *repository.Repository, publisher rabbitmq.Publisher, pagination config.PaginationConfig) Post {
	return &postService{
		logger:     logger,
		repo:       repo,
		publisher:  publisher,
		pagination: pagination,
	}
}

// Feed lists the newest posts. Signed-in callers only see posts of the subs
// they are subscribed to.
func (s *postService) Feed(ctx context.Context, sess *model.Session, page dto.PageRequest) (*dto.PostsPage, error) {
	after, take, err := parsePage(page, s.pagination)
	if err != nil {
		return nil, err
	}

	var filter postgres.PostFilter
	if sess != nil {
		subs, err := s.repo.Postgres.Sub.FindUserSubscriptions(ctx, sess.UserID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find user(%s) subscriptions: %s", sess.UserID.String(), err.Error())
			return nil, ErrInternal
		}

		if len(subs) == 0 {
			return &dto.PostsPage{Posts: []*model.PostView{}}, nil
		}
		filter.SubNames = subs
	}

	return s.findPage(ctx, sess, filter, after, take)
}

func (s *postService) SubFeed(ctx context.Context, sess *model.Session, subName string, page dto.PageRequest) (*dto.PostsPage, error) {
	after, take, err := parsePage(page, s.pagination)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Postgres.Sub.FindByName(ctx, subName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubNotFound
		}

		s.logger.Sugar().Errorf("failed to find sub(%s): %s", subName, err.Error())
		return nil, ErrInternal
	}

	return s.findPage(ctx, sess, postgres.PostFilter{SubNames: []string{subName}}, after, take)
}

func (s *postService) AuthorFeed(ctx context.Context, sess *model.Session, authorID uuid.UUID, page dto.PageRequest) (*dto.PostsPage, error) {
	after, take, err := parsePage(page, s.pagination)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Postgres.User.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.findPage(ctx, sess, postgres.PostFilter{CreatorID: &authorID}, after, take)
}

func (s *postService) findPage(ctx context.Context, sess *model.Session, filter postgres.PostFilter, after *pagination.Cursor, take int) (*dto.PostsPage, error) {
	posts, err := s.repo.Postgres.Post.Find(ctx, filter, pagination.Fetch(after, take))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts: %s", err.Error())
		return nil, ErrInternal
	}

	posts, hasMore := pagination.Trim(posts, take)

	views, err := s.viewPosts(ctx, sess, posts)
	if err != nil {
		return nil, err
	}

	result := &dto.PostsPage{
		Posts:   views,
		HasMore: hasMore,
	}
	if hasMore {
		last := posts[len(posts)-1].Post
		result.NextCursor = pagination.Encode(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return result, nil
}

func (s *postService) FindByID(ctx context.Context, sess *model.Session, id int64) (*model.PostView, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.viewPosts(ctx, sess, []*model.FullPost{post})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

func (s *postService) Create(ctx context.Context, sess *model.Session, subName string, input dto.PostInput) (*model.Post, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	input = normalizePostInput(input)
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.repo.Postgres.Post.Create(ctx, model.Post{
		CreatorID: sess.UserID,
		SubName:   subName,
		Title:     input.Title,
		Body:      input.Body,
		Image:     input.Image,
	})
	if err != nil {
		// every failure reads as a missing sub, only unexpected ones are logged
		if !postgres.IsForeignKeyViolation(err) {
			s.logger.Sugar().Errorf("failed to create user(%s) post in sub(%s): %s", sess.UserID.String(), subName, err.Error())
		}
		return nil, ErrSubNotFound
	}

	s.publish(ctx, rabbitmq.POST_CREATED_KEY, dto.MQPostCreatedMsg{
		PostID:    post.ID,
		UserID:    post.CreatorID,
		SubName:   post.SubName,
		PostTitle: post.Title,
		CreatedAt: post.CreatedAt,
	})

	return post, nil
}

// Edit checks ownership before validating input, so a stranger always gets
// ErrCannotUpdatePost whatever the payload.
func (s *postService) Edit(ctx context.Context, sess *model.Session, id int64, input dto.PostInput) (*model.Post, error) {
	existing, err := s.findOwnPost(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	input = normalizePostInput(input)
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := existing.Post
	post.Title = input.Title
	post.Body = input.Body
	post.Image = input.Image
	post.UpdatedAt = time.Now()

	updated, err := s.repo.Postgres.Post.Update(ctx, post)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to update post(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	return updated, nil
}

func (s *postService) Delete(ctx context.Context, sess *model.Session, id int64) (bool, error) {
	existing, err := s.findOwnPost(ctx, sess, id)
	if err != nil {
		return false, err
	}

	if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return false, ErrInternal
	}

	s.publish(ctx, rabbitmq.POST_DELETED_KEY, dto.MQPostDeletedMsg{
		PostID:    id,
		UserID:    sess.UserID,
		SubName:   existing.Post.SubName,
		DeletedAt: time.Now(),
	})

	return true, nil
}

func (s *postService) findOwnPost(ctx context.Context, sess *model.Session, id int64) (*model.FullPost, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Post.CreatorID != sess.UserID {
		return nil, ErrCannotUpdatePost
	}

	return post, nil
}

func (s *postService) findPost(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) publish(ctx context.Context, routingKey string, msg interface{}) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal message(%s): %s", routingKey, err.Error())
		return
	}

	if err := s.publisher.Publish(ctx, routingKey, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish message(%s): %s", routingKey, err.Error())
	}
}
