package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/mailer"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/BloggingApp/forum-service/internal/repository/postgres"
	"github.com/BloggingApp/forum-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const welcomeMailTimeout = 30 * time.Second

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mailer mailer.Mailer
	auth   config.AuthConfig
}

func newUserService(logger *zap.Logger, repo *repository.Repository, mail mailer.Mailer, auth config.AuthConfig) User {
	return &userService{
		logger: logger,
		repo:   repo,
		mailer: mail,
		auth:   auth,
	}
}

func (s *userService) Register(ctx context.Context, input dto.RegisterRequest) (*dto.AuthResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.User.Create(ctx, model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}

		s.logger.Sugar().Errorf("failed to create user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	go s.sendWelcome(*user)

	// the account exists from here on, so a session failure must not read as
	// a failed registration: the user is returned without a token and logs in
	resp, err := s.issueSession(ctx, user)
	if err != nil {
		s.logger.Sugar().Warnf("registered user(%s) without a session: %s", user.ID.String(), err.Error())
		return &dto.AuthResponse{User: user}, nil
	}

	return resp, nil
}

func (s *userService) sendWelcome(user model.User) {
	ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
	defer cancel()

	body := fmt.Sprintf("Hi %s,\n\nyour account is ready. Join a few subs to fill your feed.\n", user.Username)
	if err := s.mailer.Send(ctx, user.Email, "Welcome", body); err != nil {
		s.logger.Sugar().Errorf("failed to send welcome mail to user(%s): %s", user.ID.String(), err.Error())
	}
}

func (s *userService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.Postgres.User.FindByLogin(ctx, strings.TrimSpace(input.Login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Login, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

func (s *userService) issueSession(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	sessionID := uuid.NewString()
	now := time.Now()

	info := model.SessionInfo{UserID: user.ID, CreatedAt: now}
	if err := s.repo.Redis.Session.Create(ctx, sessionID, info, s.auth.AccessTTL); err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) session: %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	token, err := utils.EncodeJWT(jwt.MapClaims{
		"id":  user.ID.String(),
		"sid": sessionID,
		"exp": now.Add(s.auth.AccessTTL).Unix(),
	}, s.auth.AccessSecret)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign user(%s) access token: %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.AuthResponse{
		User:        user,
		AccessToken: token,
	}, nil
}

// CheckSession resolves an access token to a live session.
func (s *userService) CheckSession(ctx context.Context, accessToken string) (*model.Session, error) {
	claims, err := utils.DecodeJWT(accessToken, s.auth.AccessSecret)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	sessionID, ok := claims["sid"].(string)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, err := uuid.Parse(idString)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	info, err := s.repo.Redis.Session.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotAuthenticated
		}

		s.logger.Sugar().Errorf("failed to find session(%s): %s", sessionID, err.Error())
		return nil, ErrInternal
	}

	if info.UserID != userID {
		return nil, ErrNotAuthenticated
	}

	return &model.Session{
		UserID:    userID,
		SessionID: sessionID,
	}, nil
}

func (s *userService) Logout(ctx context.Context, sess *model.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	if err := s.repo.Redis.Session.Delete(ctx, sess.UserID, sess.SessionID); err != nil {
		s.logger.Sugar().Errorf("failed to delete session(%s): %s", sess.SessionID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *userService) LogoutAll(ctx context.Context, sess *model.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	if err := s.repo.Redis.Session.DeleteAll(ctx, sess.UserID); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) sessions: %s", sess.UserID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *userService) Me(ctx context.Context, sess *model.Session) (*model.User, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", sess.UserID.String(), err.Error())
		return nil, ErrInternal
	}

	return user, nil
}
