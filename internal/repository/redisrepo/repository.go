package redisrepo

import (
	"context"
	"time"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=../mocks/redis_mock.go -package=mocks . Session

type Default interface {
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
}

type Session interface {
	Create(ctx context.Context, sessionID string, info model.SessionInfo, ttl time.Duration) error
	Find(ctx context.Context, sessionID string) (*model.SessionInfo, error)
	Delete(ctx context.Context, userID uuid.UUID, sessionID string) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}

type RedisRepository struct {
	Default
	Session
}

func New(rdb *redis.Client) *RedisRepository {
	def := newDefaultRepo(rdb)
	return &RedisRepository{
		Default: def,
		Session: newSessionRepo(def),
	}
}
