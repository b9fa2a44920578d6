package postgres

import (
	"context"

	"github.com/BloggingApp/forum-service/internal/model"
	"github.com/google/uuid"
)

type subRepo struct {
	db DBTX
}

func newSubRepo(db DBTX) Sub {
	return &subRepo{
		db: db,
	}
}

func (r *subRepo) Create(ctx context.Context, sub model.Sub) (*model.Sub, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO subs(name, description, creator_id) VALUES($1, $2, $3) RETURNING created_at",
		sub.Name,
		sub.Description,
		sub.CreatorID,
	).Scan(&sub.CreatedAt); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subRepo) FindByName(ctx context.Context, name string) (*model.FullSub, error) {
	var sub model.FullSub
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		s.name, s.description, s.creator_id, s.created_at, (SELECT COUNT(*) FROM subscriptions m WHERE m.sub_name = s.name)
		FROM subs s
		WHERE s.name = $1`,
		name,
	).Scan(
		&sub.Sub.Name,
		&sub.Sub.Description,
		&sub.Sub.CreatorID,
		&sub.Sub.CreatedAt,
		&sub.Members,
	); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subRepo) FindAll(ctx context.Context) ([]*model.Sub, error) {
	rows, err := r.db.Query(ctx, "SELECT s.name, s.description, s.creator_id, s.created_at FROM subs s ORDER BY s.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*model.Sub{}
	for rows.Next() {
		var sub model.Sub
		if err := rows.Scan(
			&sub.Name,
			&sub.Description,
			&sub.CreatorID,
			&sub.CreatedAt,
		); err != nil {
			return nil, err
		}

		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subRepo) Subscribe(ctx context.Context, userID uuid.UUID, name string) error {
	_, err := r.db.Exec(ctx, "INSERT INTO subscriptions(user_id, sub_name) VALUES($1, $2) ON CONFLICT DO NOTHING", userID, name)
	return err
}

func (r *subRepo) Unsubscribe(ctx context.Context, userID uuid.UUID, name string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM subscriptions WHERE user_id = $1 AND sub_name = $2", userID, name)
	return err
}

func (r *subRepo) FindUserSubscriptions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT m.sub_name FROM subscriptions m WHERE m.user_id = $1 ORDER BY m.sub_name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}
