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

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) ClientByClientID(ctx context.Context, clientID string) (model.Client, error) {
	var c model.Client
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, client_id, client_secret, scope, grants, redirect_uris,
		        access_token_lifetime, refresh_token_lifetime, created_at, updated_at
		 FROM clients WHERE client_id = $1`, clientID).
		Scan(&c.ID, &c.Name, &c.ClientID, &c.ClientSecret, &c.Scope, &c.Grants, &c.RedirectURIs,
			&c.AccessTokenLifetime, &c.RefreshTokenLifetime, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Client{}, model.ErrClientNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) CreateClient(ctx context.Context, c model.Client) (model.Client, error) {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO clients (id, name, client_id, client_secret, scope, grants, redirect_uris,
		                      access_token_lifetime, refresh_token_lifetime, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Name, c.ClientID, c.ClientSecret, c.Scope, c.Grants, c.RedirectURIs,
		c.AccessTokenLifetime, c.RefreshTokenLifetime, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}
