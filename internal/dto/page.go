package dto

import "github.com/BloggingApp/forum-service/internal/model"

type PageRequest struct {
	Cursor string `form:"cursor"`
	Take   int    `form:"take"`
}

type PostsPage struct {
	Posts      []*model.PostView `json:"posts"`
	HasMore    bool              `json:"hasMore"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

type CommentsPage struct {
	Comments   []*model.FullComment `json:"comments"`
	HasMore    bool                 `json:"hasMore"`
	NextCursor string               `json:"nextCursor,omitempty"`
}
