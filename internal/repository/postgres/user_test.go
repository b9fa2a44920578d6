package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	now := time.Now()
	user := model.User{Username: "alice", Email: "alice@example.com", PasswordHash: []byte("hash")}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users(username, email, password_hash)")).
		WithArgs("alice", "alice@example.com", []byte("hash")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, now))

	created, err := New(mock).User.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err = New(mock).User.Create(context.Background(), model.User{Username: "alice"})
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	columns := []string{"id", "username", "email", "password_hash", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.username = $1 OR lower(u.email) = lower($1)")).
		WithArgs("Alice@Example.com").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(id, "alice", "alice@example.com", []byte("hash"), time.Now()))

	user, err := New(mock).User.FindByLogin(context.Background(), "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, []byte("hash"), user.PasswordHash)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(columns))

	_, err = New(mock).User.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
