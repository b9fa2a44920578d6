package postgres

import (
	"context"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/jackc/pgx/v5"
)

type commentRepo struct {
	db DBTX
}

func newCommentRepo(db DBTX) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(post_id, author_id, body) VALUES($1, $2, $3) RETURNING id, created_at",
		comment.PostID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.id, c.post_id, c.author_id, c.body, c.created_at FROM comments c WHERE c.id = $1",
		id,
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64, page pagination.Directive) ([]*model.FullComment, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if page.After == nil {
		rows, err = r.db.Query(
			ctx,
			`SELECT
			c.id, c.post_id, c.author_id, c.body, c.created_at, u.username
			FROM comments c
			JOIN users u ON c.author_id = u.id
			WHERE c.post_id = $1
			ORDER BY c.created_at DESC, c.id DESC
			LIMIT $2`,
			postID,
			page.Limit,
		)
	} else {
		rows, err = r.db.Query(
			ctx,
			`SELECT
			c.id, c.post_id, c.author_id, c.body, c.created_at, u.username
			FROM comments c
			JOIN users u ON c.author_id = u.id
			WHERE c.post_id = $1 AND (c.created_at, c.id) < ($2, $3)
			ORDER BY c.created_at DESC, c.id DESC
			LIMIT $4`,
			postID,
			page.After.CreatedAt,
			page.After.ID,
			page.Limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.FullComment{}
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Body,
			&comment.Comment.CreatedAt,
			&comment.Author.Username,
		); err != nil {
			return nil, err
		}
		comment.Author.ID = comment.Comment.AuthorID

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
