package redisrepo

import (
	"context"
	"testing"
	"time"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return New(rdb), mr
}

func TestSessionCreateFind(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	info := model.SessionInfo{UserID: uuid.New(), CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, repo.Session.Create(ctx, "sess-1", info, time.Hour))

	found, err := repo.Session.Find(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, info.UserID, found.UserID)
	assert.True(t, info.CreatedAt.Equal(found.CreatedAt))

	assert.Equal(t, time.Hour, mr.TTL(SessionKey("sess-1")))
	members, err := mr.Members(UserSessionsKey(info.UserID.String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, members)
}

func TestSessionFindMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	found, err := repo.Session.Find(context.Background(), "nope")
	assert.Nil(t, found)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestSessionExpires(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Session.Create(ctx, "short", model.SessionInfo{UserID: uuid.New()}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Session.Find(ctx, "short")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestSessionDelete(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Session.Create(ctx, "a", model.SessionInfo{UserID: userID}, time.Hour))
	require.NoError(t, repo.Session.Create(ctx, "b", model.SessionInfo{UserID: userID}, time.Hour))

	require.NoError(t, repo.Session.Delete(ctx, userID, "a"))

	_, err := repo.Session.Find(ctx, "a")
	assert.ErrorIs(t, err, redis.Nil)
	_, err = repo.Session.Find(ctx, "b")
	assert.NoError(t, err)

	members, err := mr.Members(UserSessionsKey(userID.String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
}

func TestSessionDeleteAll(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()

	require.NoError(t, repo.Session.Create(ctx, "a", model.SessionInfo{UserID: userID}, time.Hour))
	require.NoError(t, repo.Session.Create(ctx, "b", model.SessionInfo{UserID: userID}, time.Hour))
	require.NoError(t, repo.Session.Create(ctx, "c", model.SessionInfo{UserID: other}, time.Hour))

	require.NoError(t, repo.Session.DeleteAll(ctx, userID))

	assert.False(t, mr.Exists(SessionKey("a")))
	assert.False(t, mr.Exists(SessionKey("b")))
	assert.False(t, mr.Exists(UserSessionsKey(userID.String())))
	assert.True(t, mr.Exists(SessionKey("c")))
}
