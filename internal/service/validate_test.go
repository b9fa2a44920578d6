package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %v", err)

	fields := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestValidatePostInput(t *testing.T) {
	image := "https://example.com/cat.png"
	badImage := "ftp://example.com/cat.png"

	assert.NoError(t, validatePostInput(dto.PostInput{Title: "hello", Body: "world", Image: &image}))

	err := validatePostInput(dto.PostInput{Title: "", Body: "", Image: &badImage})
	assert.Equal(t, []string{"title", "body", "image"}, fieldsOf(t, err))

	err = validatePostInput(dto.PostInput{Title: strings.Repeat("a", maxTitleLength+1), Body: "ok"})
	assert.Equal(t, []string{"title"}, fieldsOf(t, err))
}

func TestNormalizePostInput(t *testing.T) {
	blank := "   "
	in := normalizePostInput(dto.PostInput{Title: "  t  ", Body: "\nb\n", Image: &blank})

	assert.Equal(t, "t", in.Title)
	assert.Equal(t, "b", in.Body)
	assert.Nil(t, in.Image)
}

func TestValidateRegister(t *testing.T) {
	assert.NoError(t, validateRegister(dto.RegisterRequest{Username: "gopher_1", Email: "gopher@example.com", Password: "passw0rd"}))

	cases := []struct {
		name  string
		input dto.RegisterRequest
		want  []string
	}{
		{
			name:  "bad email",
			input: dto.RegisterRequest{Username: "gopher", Email: "gopher.example.com", Password: "passw0rd"},
			want:  []string{"email"},
		},
		{
			name:  "short username",
			input: dto.RegisterRequest{Username: "go", Email: "gopher@example.com", Password: "passw0rd"},
			want:  []string{"username"},
		},
		{
			name:  "password without digit",
			input: dto.RegisterRequest{Username: "gopher", Email: "gopher@example.com", Password: "password"},
			want:  []string{"password"},
		},
		{
			name:  "everything wrong",
			input: dto.RegisterRequest{Username: "a b", Email: "@", Password: "1"},
			want:  []string{"username", "email", "password", "password"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldsOf(t, validateRegister(tc.input)))
		})
	}
}

func TestValidateSub(t *testing.T) {
	assert.NoError(t, validateSub(dto.CreateSubRequest{Name: "golang"}))
	assert.Equal(t, []string{"name"}, fieldsOf(t, validateSub(dto.CreateSubRequest{Name: "go lang"})))
}
