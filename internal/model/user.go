package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Session identifies the caller of a request. A nil *Session means an anonymous caller.
type Session struct {
	UserID    uuid.UUID
	SessionID string
}

// SessionInfo is what the session store keeps per session id.
type SessionInfo struct {
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
