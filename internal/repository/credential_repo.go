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

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

func (r *CredentialRepository) CredentialByUsername(ctx context.Context, username string) (model.Credential, error) {
	var c model.Credential
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, username, password, created_at, updated_at
		 FROM user_credentials WHERE username = $1`, username).
		Scan(&c.ID, &c.UserID, &c.Username, &c.Password, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("find credential by username: %w", err)
	}
	return c, nil
}

// CredentialByUserID returns the first credential of the user. More than one
// is structurally possible but the login path only ever consults this one.
func (r *CredentialRepository) CredentialByUserID(ctx context.Context, userID int64) (model.Credential, error) {
	var c model.Credential
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, username, password, created_at, updated_at
		 FROM user_credentials WHERE user_id = $1 ORDER BY created_at LIMIT 1`, userID).
		Scan(&c.ID, &c.UserID, &c.Username, &c.Password, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("find credential by user: %w", err)
	}
	return c, nil
}

// UpdateCredentialPassword rewrites the stored hash in place. The caller has
// already hashed the plaintext; this never sees a raw password.
func (r *CredentialRepository) UpdateCredentialPassword(ctx context.Context, credentialID string, hashed string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_credentials SET password = $2, updated_at = $3 WHERE id = $1`,
		credentialID, hashed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update credential password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCredentialNotFound
	}
	return nil
}
