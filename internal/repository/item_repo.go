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

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) ItemByID(ctx context.Context, id string) (model.Item, error) {
	var i model.Item
	err := r.pool.QueryRow(ctx,
		`SELECT id, type, part_no, name, unit_price, default_fee, memo, disable,
		        category_id, craft_shop_id, created_at, updated_at, deleted_at
		 FROM items WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&i.ID, &i.Type, &i.PartNo, &i.Name, &i.UnitPrice, &i.DefaultFee, &i.Memo, &i.Disable,
			&i.CategoryID, &i.CraftShopID, &i.CreatedAt, &i.UpdatedAt, &i.DeletedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Item{}, model.ErrNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("find item: %w", err)
	}
	return i, nil
}

func (r *ItemRepository) ListItems(ctx context.Context, itemType model.ItemType, showDisabled bool, page int, limit int) ([]model.Item, int, error) {
	filter := `WHERE type = $1 AND deleted_at IS NULL`
	if !showDisabled {
		filter += ` AND disable = false`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items `+filter, itemType).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, type, part_no, name, unit_price, default_fee, memo, disable,
		        category_id, craft_shop_id, created_at, updated_at, deleted_at
		 FROM items `+filter+` ORDER BY name LIMIT $2 OFFSET $3`,
		itemType, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var i model.Item
		if err := rows.Scan(&i.ID, &i.Type, &i.PartNo, &i.Name, &i.UnitPrice, &i.DefaultFee, &i.Memo, &i.Disable,
			&i.CategoryID, &i.CraftShopID, &i.CreatedAt, &i.UpdatedAt, &i.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}

func (r *ItemRepository) CreateItem(ctx context.Context, i model.Item) (model.Item, error) {
	now := time.Now().UTC()
	i.CreatedAt, i.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, type, part_no, name, unit_price, default_fee, memo, disable,
		                    category_id, craft_shop_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		i.ID, i.Type, i.PartNo, i.Name, i.UnitPrice, i.DefaultFee, i.Memo, i.Disable,
		i.CategoryID, i.CraftShopID, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return model.Item{}, fmt.Errorf("create item: %w", err)
	}
	return i, nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, i model.Item) (model.Item, error) {
	i.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET part_no = $2, name = $3, unit_price = $4, default_fee = $5, memo = $6,
		                  disable = $7, category_id = $8, craft_shop_id = $9, updated_at = $10
		 WHERE id = $1 AND deleted_at IS NULL`,
		i.ID, i.PartNo, i.Name, i.UnitPrice, i.DefaultFee, i.Memo,
		i.Disable, i.CategoryID, i.CraftShopID, i.UpdatedAt)
	if err != nil {
		return model.Item{}, fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Item{}, model.ErrNotFound
	}
	return i, nil
}

// DeleteItem soft-deletes; sold items keep referencing the row.
func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
