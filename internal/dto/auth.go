package dto

import "github.com/BloggingApp/forum-service/internal/model"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries no access token when registration succeeded but
// the session could not be opened.
type AuthResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token,omitempty"`
}
