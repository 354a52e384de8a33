package model

import "errors"

var (
	// Grant engine errors. InvalidClient and InvalidCredential map to the
	// same external response so callers cannot tell which factor failed.
	ErrInvalidClient        = errors.New("invalid client")
	ErrInvalidCredential    = errors.New("invalid credential")
	ErrInvalidGrant         = errors.New("invalid grant")
	ErrUnsupportedGrantType = errors.New("unsupported grant type")
	ErrInvalidScope         = errors.New("invalid scope")

	// Token errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")

	// Entity errors
	ErrUserNotFound       = errors.New("user not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")

	// Access errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
	ErrStoreFailure = errors.New("store failure")
)
