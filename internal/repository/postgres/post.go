package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/BloggingApp/forum-service/internal/pagination"
	"github.com/jackc/pgx/v5"
)

const selectFullPost = `SELECT
		p.id, p.creator_id, p.sub_name, p.title, p.body, p.image, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON p.creator_id = u.id`

type postRepo struct {
	db DBTX
}

func newPostRepo(db DBTX) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(creator_id, sub_name, title, body, image) VALUES($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at",
		post.CreatorID,
		post.SubName,
		post.Title,
		post.Body,
		post.Image,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	rows, err := r.db.Query(ctx, selectFullPost+"\n\t\tWHERE p.id = $1", id)
	if err != nil {
		return nil, err
	}

	posts, err := scanFullPosts(rows)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

// Find lists posts newest first, id breaking ties, starting strictly after page.After.
func (r *postRepo) Find(ctx context.Context, filter PostFilter, page pagination.Directive) ([]*model.FullPost, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.SubNames != nil {
		conditions = append(conditions, "p.sub_name = ANY("+arg(filter.SubNames)+")")
	}
	if filter.CreatorID != nil {
		conditions = append(conditions, "p.creator_id = "+arg(*filter.CreatorID))
	}
	if page.After != nil {
		createdAt := arg(page.After.CreatedAt)
		id := arg(page.After.ID)
		conditions = append(conditions, "(p.created_at, p.id) < ("+createdAt+", "+id+")")
	}

	query := selectFullPost
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY p.created_at DESC, p.id DESC\n\t\tLIMIT " + arg(page.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE posts SET title = $1, body = $2, image = $3, updated_at = $4 WHERE id = $5",
		post.Title,
		post.Body,
		post.Image,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	return &post, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func scanFullPosts(rows pgx.Rows) ([]*model.FullPost, error) {
	defer rows.Close()

	posts := []*model.FullPost{}
	for rows.Next() {
		var post model.FullPost
		if err := rows.Scan(
			&post.Post.ID,
			&post.Post.CreatorID,
			&post.Post.SubName,
			&post.Post.Title,
			&post.Post.Body,
			&post.Post.Image,
			&post.Post.CreatedAt,
			&post.Post.UpdatedAt,
			&post.Author.Username,
		); err != nil {
			return nil, err
		}
		post.Author.ID = post.Post.CreatorID

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
