package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"craftshop-admin/internal/model"
)

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) ResourceByID(ctx context.Context, id string) (model.Resource, error) {
	var res model.Resource
	err := r.pool.QueryRow(ctx,
		`SELECT id, item_id, key, created_at FROM resources WHERE id = $1`, id).
		Scan(&res.ID, &res.ItemID, &res.Key, &res.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Resource{}, model.ErrNotFound
	}
	if err != nil {
		return model.Resource{}, fmt.Errorf("find resource: %w", err)
	}
	return res, nil
}

func (r *ResourceRepository) CreateResource(ctx context.Context, res model.Resource) (model.Resource, error) {
	res.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO resources (id, item_id, key, created_at) VALUES ($1, $2, $3, $4)`,
		res.ID, res.ItemID, res.Key, res.CreatedAt)
	if err != nil {
		return model.Resource{}, fmt.Errorf("create resource: %w", err)
	}
	return res, nil
}

func (r *ResourceRepository) DeleteResource(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}
