package model

import (
	"time"

	"github.com/google/uuid"
)

type VoteValue int8

const (
	Downvote VoteValue = iota - 1
	Unvote
	Upvote
)

func (v VoteValue) Valid() bool {
	return v >= Downvote && v <= Upvote
}

type Vote struct {
	UserID    uuid.UUID `json:"user_id"`
	PostID    int64     `json:"post_id"`
	Value     VoteValue `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
