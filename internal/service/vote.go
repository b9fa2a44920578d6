package service

import (
	"context"

	"github.com/BloggingApp/forum-service/internal/model"
)

func (s *postService) Vote(ctx context.Context, sess *model.Session, id int64, value int) (*model.PostView, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	var v validator
	// bounds first, converting to int8 wraps
	v.check(value >= -1 && value <= 1 && model.VoteValue(value).Valid(), "value", "value must be -1, 0 or 1")
	if err := v.err(); err != nil {
		return nil, err
	}

	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if vote := model.VoteValue(value); vote == model.Unvote {
		err = s.repo.Postgres.Vote.Delete(ctx, sess.UserID, id)
	} else {
		err = s.repo.Postgres.Vote.Upsert(ctx, model.Vote{UserID: sess.UserID, PostID: id, Value: vote})
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to save user(%s) vote on post(%d): %s", sess.UserID.String(), id, err.Error())
		return nil, ErrInternal
	}

	views, err := s.viewPosts(ctx, sess, []*model.FullPost{post})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// viewPosts attaches vote totals and the caller's own vote to posts,
// loading the votes of the whole page in one query.
func (s *postService) viewPosts(ctx context.Context, sess *model.Session, posts []*model.FullPost) ([]*model.PostView, error) {
	views := make([]*model.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.Post.ID)
	}

	votes, err := s.repo.Postgres.Vote.FindByPostIDs(ctx, ids)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find votes of posts(%v): %s", ids, err.Error())
		return nil, ErrInternal
	}

	sums, statuses := tallyVotes(votes, sess)
	for _, post := range posts {
		views = append(views, &model.PostView{
			Post:       post.Post,
			Author:     post.Author,
			Votes:      sums[post.Post.ID],
			VoteStatus: statuses[post.Post.ID],
		})
	}

	return views, nil
}

// tallyVotes sums vote values per post and picks out the viewer's own vote.
// Posts without votes are absent from both maps and read as zero.
func tallyVotes(votes []*model.Vote, viewer *model.Session) (map[int64]int64, map[int64]model.VoteValue) {
	sums := make(map[int64]int64)
	statuses := make(map[int64]model.VoteValue)
	for _, vote := range votes {
		sums[vote.PostID] += int64(vote.Value)
		if viewer != nil && vote.UserID == viewer.UserID {
			statuses[vote.PostID] = vote.Value
		}
	}

	return sums, statuses
}
