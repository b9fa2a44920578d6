package model

import (
	"time"

	"github.com/google/uuid"
)

type Sub struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type FullSub struct {
	Sub     Sub   `json:"sub"`
	Members int64 `json:"members"`
}
