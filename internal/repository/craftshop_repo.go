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

type CraftShopRepository struct {
	pool *pgxpool.Pool
}

func NewCraftShopRepository(pool *pgxpool.Pool) *CraftShopRepository {
	return &CraftShopRepository{pool: pool}
}

func (r *CraftShopRepository) CraftShopByID(ctx context.Context, id string) (model.CraftShop, error) {
	var s model.CraftShop
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, postcode, address, detail, phone, created_at, updated_at
		 FROM craft_shops WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Postcode, &s.Address, &s.Detail, &s.Phone, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.CraftShop{}, model.ErrNotFound
	}
	if err != nil {
		return model.CraftShop{}, fmt.Errorf("find craft shop: %w", err)
	}
	return s, nil
}

func (r *CraftShopRepository) ListCraftShops(ctx context.Context, page int, limit int) ([]model.CraftShop, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM craft_shops`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count craft shops: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, postcode, address, detail, phone, created_at, updated_at
		 FROM craft_shops ORDER BY name LIMIT $1 OFFSET $2`,
		limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list craft shops: %w", err)
	}
	defer rows.Close()

	shops := make([]model.CraftShop, 0)
	for rows.Next() {
		var s model.CraftShop
		if err := rows.Scan(&s.ID, &s.Name, &s.Postcode, &s.Address, &s.Detail, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan craft shop: %w", err)
		}
		shops = append(shops, s)
	}
	return shops, total, rows.Err()
}

func (r *CraftShopRepository) CreateCraftShop(ctx context.Context, s model.CraftShop) (model.CraftShop, error) {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO craft_shops (id, name, postcode, address, detail, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Name, s.Postcode, s.Address, s.Detail, s.Phone, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return model.CraftShop{}, fmt.Errorf("create craft shop: %w", err)
	}
	return s, nil
}

func (r *CraftShopRepository) UpdateCraftShop(ctx context.Context, s model.CraftShop) (model.CraftShop, error) {
	s.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE craft_shops SET name = $2, postcode = $3, address = $4, detail = $5, phone = $6, updated_at = $7
		 WHERE id = $1`,
		s.ID, s.Name, s.Postcode, s.Address, s.Detail, s.Phone, s.UpdatedAt)
	if err != nil {
		return model.CraftShop{}, fmt.Errorf("update craft shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.CraftShop{}, model.ErrNotFound
	}
	return s, nil
}

func (r *CraftShopRepository) DeleteCraftShop(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM craft_shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete craft shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
