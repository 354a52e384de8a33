package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"craftshop-admin/internal/mail"
	"craftshop-admin/internal/model"
)

// AccountService covers the self-service account surface: profile updates,
// password changes, password resets and sign-out.
type AccountService struct {
	users       UserStore
	credentials CredentialStore
	grants      *GrantService
	hasher      *PasswordHasher
	mailer      mail.Mailer
}

func NewAccountService(users UserStore, credentials CredentialStore, grants *GrantService, hasher *PasswordHasher, mailer mail.Mailer) *AccountService {
	return &AccountService{
		users:       users,
		credentials: credentials,
		grants:      grants,
		hasher:      hasher,
		mailer:      mailer,
	}
}

// UpdateProfile changes name and/or email. A request carrying neither is
// rejected rather than silently ignored.
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, name string, email string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" && email == "" {
		return model.User{}, fmt.Errorf("%w: there is no value to be changed", model.ErrInvalidInput)
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}

	return s.users.UpdateUser(ctx, user)
}

// ChangePassword verifies the current password before rewriting the stored
// hash in place. The credential record is never versioned.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, oldPassword string, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old and new password are required", model.ErrInvalidInput)
	}

	cred, err := s.credentials.CredentialByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(cred.Password, oldPassword) {
		return model.ErrForbidden
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.credentials.UpdateCredentialPassword(ctx, cred.ID, hashed)
}

// ForgotPassword resets the credential to a random temporary password and
// mails it to the account's address. An unknown email is reported as success
// so the endpoint cannot be used to probe for accounts.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}

	cred, err := s.credentials.CredentialByUserID(ctx, user.ID)
	if err != nil {
		return err
	}

	temp, err := tempPassword()
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(temp)
	if err != nil {
		return err
	}

	if err := s.credentials.UpdateCredentialPassword(ctx, cred.ID, hashed); err != nil {
		return err
	}

	if err := s.mailer.SendTemporaryPassword(ctx, user.Email, user.Name, temp); err != nil {
		slog.Error("temporary password mail failed", "user_id", user.ID, "error", err)
		return err
	}

	return nil
}

// SignOut revokes the presented token. Signing out twice is a no-op.
func (s *AccountService) SignOut(ctx context.Context, token model.AuthorizedToken) error {
	return s.grants.RevokeToken(ctx, token)
}

func tempPassword() (string, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
