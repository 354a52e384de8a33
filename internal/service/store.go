package service

import (
	"context"

	"craftshop-admin/internal/model"
)

// Store interfaces are defined here, on the consuming side; the pgx-backed
// implementations live in internal/repository. Misses surface as the
// matching ErrXxxNotFound sentinel, never as a zero value.

type ClientStore interface {
	ClientByClientID(ctx context.Context, clientID string) (model.Client, error)
	CreateClient(ctx context.Context, client model.Client) (model.Client, error)
}

type UserStore interface {
	UserByID(ctx context.Context, id int64) (model.User, error)
	UserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context, page int, limit int) ([]model.User, int, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// CreateUserWithCredential persists the user and its credential in one
	// transaction; neither row survives a failure of the other.
	CreateUserWithCredential(ctx context.Context, user model.User, cred model.Credential) (model.User, model.Credential, error)
}

type CredentialStore interface {
	CredentialByUsername(ctx context.Context, username string) (model.Credential, error)
	CredentialByUserID(ctx context.Context, userID int64) (model.Credential, error)
	UpdateCredentialPassword(ctx context.Context, credentialID string, hashed string) error
}

type TokenStore interface {
	CreateToken(ctx context.Context, token model.UserToken) (model.UserToken, error)
	TokenByAccess(ctx context.Context, accessToken string) (model.AuthorizedToken, error)
	TokenByRefresh(ctx context.Context, refreshToken string) (model.AuthorizedToken, error)

	// DeleteToken removes the row matching the access token and owning user.
	// Deleting an absent row is not an error.
	DeleteToken(ctx context.Context, accessToken string, userID int64) error
}
