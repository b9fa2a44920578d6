package redisrepo

import (
	"context"
	"time"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionRepo keeps session id -> session info, plus a set of session ids
// per user so every session of a user can be revoked at once.
type sessionRepo struct {
	def Default
}

func newSessionRepo(def Default) Session {
	return &sessionRepo{
		def: def,
	}
}

func (r *sessionRepo) Create(ctx context.Context, sessionID string, info model.SessionInfo, ttl time.Duration) error {
	if err := r.def.SetJSON(ctx, SessionKey(sessionID), info, ttl); err != nil {
		return err
	}

	userKey := UserSessionsKey(info.UserID.String())
	if err := r.def.SAdd(ctx, userKey, sessionID).Err(); err != nil {
		return err
	}

	// the set outlives its newest session at most by one ttl
	return r.def.Expire(ctx, userKey, ttl).Err()
}

// Find returns redis.Nil when the session does not exist or has expired.
func (r *sessionRepo) Find(ctx context.Context, sessionID string) (*model.SessionInfo, error) {
	info, err := Get[model.SessionInfo](r.def, ctx, SessionKey(sessionID))
	if err != nil {
		return nil, err
	}

	if info == nil {
		return nil, redis.Nil
	}

	return info, nil
}

func (r *sessionRepo) Delete(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if err := r.def.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return err
	}

	return r.def.SRem(ctx, UserSessionsKey(userID.String()), sessionID).Err()
}

func (r *sessionRepo) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	userKey := UserSessionsKey(userID.String())
	sessionIDs, err := r.def.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(sessionIDs)+1)
	for _, id := range sessionIDs {
		keys = append(keys, SessionKey(id))
	}
	keys = append(keys, userKey)

	return r.def.Del(ctx, keys...).Err()
}
