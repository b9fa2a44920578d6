package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        int64     `json:"id"`
	CreatorID uuid.UUID `json:"creator_id"`
	SubName   string    `json:"sub_name"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
}

// PostView is a post as seen by a particular caller.
type PostView struct {
	Post       Post       `json:"post"`
	Author     UserAuthor `json:"author"`
	Votes      int64      `json:"votes"`
	VoteStatus VoteValue  `json:"voteStatus"`
}
