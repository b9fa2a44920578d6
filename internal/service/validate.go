package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BloggingApp/forum-service/internal/dto"
)

const (
	maxTitleLength          = 300
	maxPostBodyLength       = 40000
	maxCommentLength        = 10000
	maxSubDescriptionLength = 500
	minPasswordLength       = 8
	maxPasswordLength       = 72 // bcrypt ignores the rest
)

var (
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegexp    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	subNameRegexp  = regexp.MustCompile(`^[a-zA-Z0-9_]{3,21}$`)
	letterRegexp   = regexp.MustCompile(`[a-zA-Z]`)
	digitRegexp    = regexp.MustCompile(`[0-9]`)
)

type validator struct {
	fields []dto.FieldError
}

func (v *validator) check(ok bool, field string, message string) {
	if !ok {
		v.fields = append(v.fields, dto.FieldError{Field: field, Message: message})
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}

	return &ValidationError{Fields: v.fields}
}

func normalizePostInput(input dto.PostInput) dto.PostInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	if input.Image != nil {
		image := strings.TrimSpace(*input.Image)
		if image == "" {
			input.Image = nil
		} else {
			input.Image = &image
		}
	}

	return input
}

func validatePostInput(input dto.PostInput) error {
	var v validator
	v.check(input.Title != "", "title", "title must not be empty")
	v.check(utf8.RuneCountInString(input.Title) <= maxTitleLength, "title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	v.check(input.Body != "", "body", "body must not be empty")
	v.check(utf8.RuneCountInString(input.Body) <= maxPostBodyLength, "body", fmt.Sprintf("body must be at most %d characters", maxPostBodyLength))
	if input.Image != nil {
		v.check(isHTTPURL(*input.Image), "image", "image must be an http(s) URL")
	}

	return v.err()
}

func validateCommentBody(body string) error {
	var v validator
	v.check(body != "", "body", "body must not be empty")
	v.check(utf8.RuneCountInString(body) <= maxCommentLength, "body", fmt.Sprintf("body must be at most %d characters", maxCommentLength))
	return v.err()
}

func validateSub(input dto.CreateSubRequest) error {
	var v validator
	v.check(subNameRegexp.MatchString(input.Name), "name", "name must be 3-21 letters, digits or underscores")
	v.check(utf8.RuneCountInString(input.Description) <= maxSubDescriptionLength, "description", fmt.Sprintf("description must be at most %d characters", maxSubDescriptionLength))
	return v.err()
}

func validateRegister(input dto.RegisterRequest) error {
	var v validator
	v.check(usernameRegexp.MatchString(input.Username), "username", "username must be 3-20 letters, digits or underscores")
	v.check(emailRegexp.MatchString(input.Email), "email", "invalid email")
	v.check(
		len(input.Password) >= minPasswordLength && len(input.Password) <= maxPasswordLength,
		"password",
		fmt.Sprintf("password must be %d-%d characters", minPasswordLength, maxPasswordLength),
	)
	v.check(
		letterRegexp.MatchString(input.Password) && digitRegexp.MatchString(input.Password),
		"password",
		"password must contain a letter and a digit",
	)
	return v.err()
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
