package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/mailer"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/BloggingApp/forum-service/internal/rabbitmq"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/BloggingApp/forum-service/internal/repository/mocks"
	"github.com/BloggingApp/forum-service/internal/repository/postgres"
	"github.com/BloggingApp/forum-service/internal/repository/redisrepo"
	"github.com/BloggingApp/forum-service/internal/service"
	"github.com/BloggingApp/forum-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("handler-secret")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	router  *gin.Engine
	user    *mocks.MockUser
	sub     *mocks.MockSub
	post    *mocks.MockPost
	vote    *mocks.MockVote
	comment *mocks.MockComment
	session *mocks.MockSession
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		user:    mocks.NewMockUser(ctrl),
		sub:     mocks.NewMockSub(ctrl),
		post:    mocks.NewMockPost(ctrl),
		vote:    mocks.NewMockVote(ctrl),
		comment: mocks.NewMockComment(ctrl),
		session: mocks.NewMockSession(ctrl),
	}

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User:    env.user,
			Sub:     env.sub,
			Post:    env.post,
			Vote:    env.vote,
			Comment: env.comment,
		},
		Redis: &redisrepo.RedisRepository{Session: env.session},
	}

	services := service.New(zap.NewNop(), repo, rabbitmq.NopPublisher{}, mailer.Nop{}, service.Options{
		Auth:       config.AuthConfig{AccessSecret: testSecret, AccessTTL: time.Hour},
		Pagination: config.PaginationConfig{DefaultTake: 2, MaxTake: 10},
	})
	env.router = New(services, zap.NewNop()).InitRoutes()

	return env
}

// login returns a bearer token whose session lookup succeeds once.
func (e *testEnv) login(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	sessionID := uuid.NewString()
	token, err := utils.EncodeJWT(jwt.MapClaims{
		"id":  userID.String(),
		"sid": sessionID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)
	require.NoError(t, err)

	e.session.EXPECT().Find(gomock.Any(), sessionID).Return(&model.SessionInfo{UserID: userID}, nil)
	return token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func post(id int64, creatorID uuid.UUID, minutes int) *model.FullPost {
	created := time.Date(2024, 5, 1, 12, minutes, 0, 0, time.UTC)
	return &model.FullPost{
		Post: model.Post{
			ID:        id,
			CreatorID: creatorID,
			SubName:   "golang",
			Title:     "title",
			Body:      "body",
			CreatedAt: created,
			UpdatedAt: created,
		},
		Author: model.UserAuthor{ID: creatorID, Username: "author"},
	}
}

func TestFeedAnonymous(t *testing.T) {
	env := newTestEnv(t)
	author := uuid.New()

	env.post.EXPECT().Find(gomock.Any(), postgres.PostFilter{}, pagination.Directive{Limit: 3}).
		Return([]*model.FullPost{post(3, author, 3), post(2, author, 2), post(1, author, 1)}, nil)
	env.vote.EXPECT().FindByPostIDs(gomock.Any(), []int64{3, 2}).
		Return([]*model.Vote{{UserID: author, PostID: 3, Value: model.Upvote}}, nil)

	rec := env.do(http.MethodGet, "/api/v1/feed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[dto.PostsPage](t, rec)
	require.Len(t, page.Posts, 2)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.NextCursor)
	assert.Equal(t, int64(1), page.Posts[0].Votes)
	assert.Equal(t, model.Unvote, page.Posts[0].VoteStatus)
}

func TestFeedBadPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/feed?take=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/feed?take=-1&cursor=%21", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[dto.ValidationResponse](t, rec)
	assert.False(t, resp.Ok)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "take", resp.Errors[0].Field)
	assert.Equal(t, "cursor", resp.Errors[1].Field)
}

func TestFeedWithInvalidTokenIsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	env.post.EXPECT().Find(gomock.Any(), postgres.PostFilter{}, gomock.Any()).Return(nil, nil)

	rec := env.do(http.MethodGet, "/api/v1/feed", "garbage", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePost(t *testing.T) {
	userID := uuid.New()

	t.Run("without token", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodPost, "/api/v1/subs/golang/posts", "", dto.PostInput{Title: "t", Body: "b"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid input", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)

		rec := env.do(http.MethodPost, "/api/v1/subs/golang/posts", token, dto.PostInput{Body: "b"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[dto.ValidationResponse](t, rec)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "title", resp.Errors[0].Field)
	})

	t.Run("unknown sub", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)
		env.post.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &pgconn.PgError{Code: "23503"})

		rec := env.do(http.MethodPost, "/api/v1/subs/nope/posts", token, dto.PostInput{Title: "t", Body: "b"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)
		env.post.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p model.Post) (*model.Post, error) {
				p.ID = 1
				return &p, nil
			})

		rec := env.do(http.MethodPost, "/api/v1/subs/golang/posts", token, dto.PostInput{Title: "t", Body: "b"})
		require.Equal(t, http.StatusCreated, rec.Code)

		created := decode[model.Post](t, rec)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, userID, created.CreatorID)
		assert.Equal(t, "golang", created.SubName)
	})
}

func TestEditPostByStranger(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, uuid.New())

	env.post.EXPECT().FindByID(gomock.Any(), int64(1)).Return(post(1, uuid.New(), 0), nil)

	rec := env.do(http.MethodPatch, "/api/v1/posts/1", token, dto.PostInput{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeletePost(t *testing.T) {
	userID := uuid.New()

	t.Run("bad id", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)

		rec := env.do(http.MethodDelete, "/api/v1/posts/abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)
		env.post.EXPECT().FindByID(gomock.Any(), int64(1)).Return(post(1, userID, 0), nil)
		env.post.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

		rec := env.do(http.MethodDelete, "/api/v1/posts/1", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[dto.BasicResponse](t, rec).Ok)
	})
}

func TestGetPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.post.EXPECT().FindByID(gomock.Any(), int64(7)).Return(nil, pgx.ErrNoRows)

	rec := env.do(http.MethodGet, "/api/v1/posts/7", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrPostNotFound.Error(), decode[dto.BasicResponse](t, rec).Details)
}

func TestGetPostStoreFailureHidesCause(t *testing.T) {
	env := newTestEnv(t)
	env.post.EXPECT().FindByID(gomock.Any(), int64(7)).Return(nil, errors.New("connection reset"))

	rec := env.do(http.MethodGet, "/api/v1/posts/7", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, service.ErrInternal.Error(), decode[dto.BasicResponse](t, rec).Details)
}

func TestVote(t *testing.T) {
	userID := uuid.New()

	t.Run("missing value", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)

		rec := env.do(http.MethodPost, "/api/v1/posts/1/vote", token, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out of range", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)

		rec := env.do(http.MethodPost, "/api/v1/posts/1/vote", token, map[string]int{"value": 2})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "value", decode[dto.ValidationResponse](t, rec).Errors[0].Field)
	})

	t.Run("unvote", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t, userID)
		env.post.EXPECT().FindByID(gomock.Any(), int64(1)).Return(post(1, uuid.New(), 0), nil)
		env.vote.EXPECT().Delete(gomock.Any(), userID, int64(1)).Return(nil)
		env.vote.EXPECT().FindByPostIDs(gomock.Any(), []int64{1}).Return(nil, nil)

		rec := env.do(http.MethodPost, "/api/v1/posts/1/vote", token, map[string]int{"value": 0})
		require.Equal(t, http.StatusOK, rec.Code)

		view := decode[model.PostView](t, rec)
		assert.Equal(t, int64(0), view.Votes)
		assert.Equal(t, model.Unvote, view.VoteStatus)
	})
}

func TestCreateSubConflict(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	token := env.login(t, userID)

	env.sub.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &pgconn.PgError{Code: "23505"})

	rec := env.do(http.MethodPost, "/api/v1/subs", token, dto.CreateSubRequest{Name: "golang"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMySubsRoute(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	token := env.login(t, userID)

	env.sub.EXPECT().FindUserSubscriptions(gomock.Any(), userID).Return([]string{"golang"}, nil)

	rec := env.do(http.MethodGet, "/api/v1/subs/my", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subs":["golang"]}`, rec.Body.String())
}

func TestMeWithDeletedSession(t *testing.T) {
	env := newTestEnv(t)

	token, err := utils.EncodeJWT(jwt.MapClaims{
		"id":  uuid.NewString(),
		"sid": "gone",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)
	require.NoError(t, err)
	env.session.EXPECT().Find(gomock.Any(), "gone").Return(nil, redis.Nil)

	rec := env.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.user.EXPECT().FindByLogin(gomock.Any(), "alice").Return(nil, pgx.ErrNoRows)

	rec := env.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Login: "alice", Password: "password1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterWithoutSessionOmitsToken(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	env.user.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (*model.User, error) {
			u.ID = userID
			return &u, nil
		})
	env.session.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	rec := env.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[map[string]interface{}](t, rec)
	assert.NotContains(t, body, "access_token")
	assert.Contains(t, body, "user")
}
