package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/BloggingApp/forum-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type subService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newSubService(logger *zap.Logger, repo *repository.Repository) Sub {
	return &subService{
		logger: logger,
		repo:   repo,
	}
}

// Create makes a new sub and subscribes its creator to it.
func (s *subService) Create(ctx context.Context, sess *model.Session, input dto.CreateSubRequest) (*model.Sub, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateSub(input); err != nil {
		return nil, err
	}

	sub, err := s.repo.Postgres.Sub.Create(ctx, model.Sub{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   sess.UserID,
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrSubAlreadyExists
		}

		s.logger.Sugar().Errorf("failed to create sub(%s): %s", input.Name, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.Sub.Subscribe(ctx, sess.UserID, sub.Name); err != nil {
		s.logger.Sugar().Errorf("failed to subscribe creator(%s) to sub(%s): %s", sess.UserID.String(), sub.Name, err.Error())
	}

	return sub, nil
}

func (s *subService) FindByName(ctx context.Context, name string) (*model.FullSub, error) {
	sub, err := s.repo.Postgres.Sub.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubNotFound
		}

		s.logger.Sugar().Errorf("failed to find sub(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	return sub, nil
}

func (s *subService) FindAll(ctx context.Context) ([]*model.Sub, error) {
	subs, err := s.repo.Postgres.Sub.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find subs: %s", err.Error())
		return nil, ErrInternal
	}

	return subs, nil
}

func (s *subService) Subscribe(ctx context.Context, sess *model.Session, name string) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	if _, err := s.FindByName(ctx, name); err != nil {
		return err
	}

	if err := s.repo.Postgres.Sub.Subscribe(ctx, sess.UserID, name); err != nil {
		s.logger.Sugar().Errorf("failed to subscribe user(%s) to sub(%s): %s", sess.UserID.String(), name, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *subService) Unsubscribe(ctx context.Context, sess *model.Session, name string) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	if _, err := s.FindByName(ctx, name); err != nil {
		return err
	}

	if err := s.repo.Postgres.Sub.Unsubscribe(ctx, sess.UserID, name); err != nil {
		s.logger.Sugar().Errorf("failed to unsubscribe user(%s) from sub(%s): %s", sess.UserID.String(), name, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *subService) Subscriptions(ctx context.Context, sess *model.Session) ([]string, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	names, err := s.repo.Postgres.Sub.FindUserSubscriptions(ctx, sess.UserID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) subscriptions: %s", sess.UserID.String(), err.Error())
		return nil, ErrInternal
	}

	return names, nil
}
