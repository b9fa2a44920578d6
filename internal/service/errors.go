package service

import (
	"errors"
	"strings"

	"github.com/BloggingApp/forum-service/internal/dto"
)

var (
	ErrInternal            = errors.New("internal server error")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrSubNotFound         = errors.New("sub not found")
	ErrSubAlreadyExists    = errors.New("sub already exists")
	ErrPostNotFound        = errors.New("post not found")
	ErrCannotUpdatePost    = errors.New("cannot update post")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCannotUpdateComment = errors.New("cannot update comment")
)

// ValidationError carries one message per offending input field.
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}

	return "invalid input: " + strings.Join(messages, "; ")
}
