package dto

type CreateSubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
