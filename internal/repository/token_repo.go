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

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// CreateToken persists one issued pair. It is a single insert, so the pair
// is durably stored in full or not at all.
func (r *TokenRepository) CreateToken(ctx context.Context, t model.UserToken) (model.UserToken, error) {
	t.CreatedAt = time.Now().UTC()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_tokens (access_token, refresh_token, expired_in, refresh_expired_in,
		                          scope, user_id, client_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		t.AccessToken, t.RefreshToken, t.ExpiredIn, t.RefreshExpiredIn,
		t.Scope, t.UserID, t.ClientID, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return model.UserToken{}, fmt.Errorf("create token: %w", err)
	}
	return t, nil
}

func (r *TokenRepository) TokenByAccess(ctx context.Context, accessToken string) (model.AuthorizedToken, error) {
	return r.tokenBy(ctx, "t.access_token", accessToken)
}

func (r *TokenRepository) TokenByRefresh(ctx context.Context, refreshToken string) (model.AuthorizedToken, error) {
	return r.tokenBy(ctx, "t.refresh_token", refreshToken)
}

// tokenBy fetches the token row joined with its owning user and client. No
// expiry filtering happens here; the query stays policy-free.
func (r *TokenRepository) tokenBy(ctx context.Context, column string, value string) (model.AuthorizedToken, error) {
	var t model.AuthorizedToken
	err := r.pool.QueryRow(ctx,
		`SELECT t.id, t.access_token, t.refresh_token, t.expired_in, t.refresh_expired_in,
		        t.scope, t.user_id, t.client_id, t.created_at,
		        u.id, u.name, u.email, u.scope, u.created_at, u.updated_at,
		        c.id, c.name, c.client_id, c.client_secret, c.scope, c.grants, c.redirect_uris,
		        c.access_token_lifetime, c.refresh_token_lifetime, c.created_at, c.updated_at
		 FROM user_tokens t
		 JOIN users u ON u.id = t.user_id
		 JOIN clients c ON c.id = t.client_id
		 WHERE `+column+` = $1`, value).
		Scan(&t.ID, &t.AccessToken, &t.RefreshToken, &t.ExpiredIn, &t.RefreshExpiredIn,
			&t.UserToken.Scope, &t.UserID, &t.UserToken.ClientID, &t.UserToken.CreatedAt,
			&t.User.ID, &t.User.Name, &t.User.Email, &t.User.Scope, &t.User.CreatedAt, &t.User.UpdatedAt,
			&t.Client.ID, &t.Client.Name, &t.Client.ClientID, &t.Client.ClientSecret, &t.Client.Scope,
			&t.Client.Grants, &t.Client.RedirectURIs, &t.Client.AccessTokenLifetime,
			&t.Client.RefreshTokenLifetime, &t.Client.CreatedAt, &t.Client.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.AuthorizedToken{}, model.ErrTokenNotFound
	}
	if err != nil {
		return model.AuthorizedToken{}, fmt.Errorf("find token: %w", err)
	}
	return t, nil
}

// DeleteToken removes the row matching both the access token and the owning
// user. Zero rows affected is fine; revocation is idempotent.
func (r *TokenRepository) DeleteToken(ctx context.Context, accessToken string, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_tokens WHERE access_token = $1 AND user_id = $2`, accessToken, userID)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
