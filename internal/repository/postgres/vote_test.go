package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteFindByPostIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	now := time.Now()
	ids := []int64{1, 2}

	mock.ExpectQuery(regexp.QuoteMeta("FROM votes v WHERE v.post_id = ANY($1)")).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "post_id", "value", "created_at"}).
			AddRow(userID, int64(1), int16(1), now).
			AddRow(userID, int64(2), int16(-1), now))

	votes, err := New(mock).Vote.FindByPostIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, model.Upvote, votes[0].Value)
	assert.Equal(t, model.Downvote, votes[1].Value)
	assert.Equal(t, int64(2), votes[1].PostID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vote := model.Vote{UserID: uuid.New(), PostID: 3, Value: model.Downvote}

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, post_id) DO UPDATE SET value = EXCLUDED.value")).
		WithArgs(vote.UserID, vote.PostID, int16(-1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, New(mock).Vote.Upsert(context.Background(), vote))
	assert.NoError(t, mock.ExpectationsWereMet())
}
