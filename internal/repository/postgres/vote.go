package postgres

import (
	"context"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
)

type voteRepo struct {
	db DBTX
}

func newVoteRepo(db DBTX) Vote {
	return &voteRepo{
		db: db,
	}
}

func (r *voteRepo) Upsert(ctx context.Context, vote model.Vote) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO votes(user_id, post_id, value) VALUES($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO UPDATE SET value = EXCLUDED.value`,
		vote.UserID,
		vote.PostID,
		int16(vote.Value),
	)
	return err
}

func (r *voteRepo) Delete(ctx context.Context, userID uuid.UUID, postID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM votes WHERE user_id = $1 AND post_id = $2", userID, postID)
	return err
}

// FindByPostIDs loads every vote cast on the given posts in one round trip.
func (r *voteRepo) FindByPostIDs(ctx context.Context, postIDs []int64) ([]*model.Vote, error) {
	rows, err := r.db.Query(ctx, "SELECT v.user_id, v.post_id, v.value, v.created_at FROM votes v WHERE v.post_id = ANY($1)", postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []*model.Vote{}
	for rows.Next() {
		var (
			vote  model.Vote
			value int16
		)
		if err := rows.Scan(
			&vote.UserID,
			&vote.PostID,
			&value,
			&vote.CreatedAt,
		); err != nil {
			return nil, err
		}
		vote.Value = model.VoteValue(value)

		votes = append(votes, &vote)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return votes, nil
}
