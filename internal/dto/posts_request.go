package dto

type PostInput struct {
	Title string  `json:"title"`
	Body  string  `json:"body"`
	Image *string `json:"image"`
}

type VoteRequest struct {
	Value *int `json:"value" binding:"required"`
}
