package service

import (
	"testing"
	"time"

	"github.com/BloggingApp/forum-service/internal/config"
	"github.com/BloggingApp/forum-service/internal/mailer"
	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/rabbitmq"
	"github.com/BloggingApp/forum-service/internal/repository"
	"github.com/BloggingApp/forum-service/internal/repository/mocks"
	"github.com/BloggingApp/forum-service/internal/repository/postgres"
	"github.com/BloggingApp/forum-service/internal/repository/redisrepo"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testOptions = Options{
	Auth: config.AuthConfig{
		AccessSecret: []byte("test-secret"),
		AccessTTL:    time.Hour,
	},
	Pagination: config.PaginationConfig{
		DefaultTake: 10,
		MaxTake:     25,
	},
}

type testRepos struct {
	user    *mocks.MockUser
	sub     *mocks.MockSub
	post    *mocks.MockPost
	vote    *mocks.MockVote
	comment *mocks.MockComment
	session *mocks.MockSession
}

func newTestService(t *testing.T) (*Service, *testRepos) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repos := &testRepos{
		user:    mocks.NewMockUser(ctrl),
		sub:     mocks.NewMockSub(ctrl),
		post:    mocks.NewMockPost(ctrl),
		vote:    mocks.NewMockVote(ctrl),
		comment: mocks.NewMockComment(ctrl),
		session: mocks.NewMockSession(ctrl),
	}

	return New(zap.NewNop(), repos.repository(), rabbitmq.NopPublisher{}, mailer.Nop{}, testOptions), repos
}

func (r *testRepos) repository() *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User:    r.user,
			Sub:     r.sub,
			Post:    r.post,
			Vote:    r.vote,
			Comment: r.comment,
		},
		Redis: &redisrepo.RedisRepository{
			Session: r.session,
		},
	}
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fullPost builds a post created n minutes after baseTime.
func fullPost(id int64, creatorID uuid.UUID, sub string, n int) *model.FullPost {
	created := baseTime.Add(time.Duration(n) * time.Minute)
	return &model.FullPost{
		Post: model.Post{
			ID:        id,
			CreatorID: creatorID,
			SubName:   sub,
			Title:     "title",
			Body:      "body",
			CreatedAt: created,
			UpdatedAt: created,
		},
		Author: model.UserAuthor{ID: creatorID, Username: "author"},
	}
}

func vote(userID uuid.UUID, postID int64, value model.VoteValue) *model.Vote {
	return &model.Vote{UserID: userID, PostID: postID, Value: value}
}
