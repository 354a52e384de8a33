package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"craftshop-admin/internal/model"
)

// SeedOperator describes one operator account ensured at startup.
type SeedOperator struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SeedClient describes one registered API client ensured at startup.
type SeedClient struct {
	Name                 string   `json:"name"`
	ClientID             string   `json:"client_id"`
	ClientSecret         string   `json:"client_secret"`
	Scope                string   `json:"scope"`
	Grants               []string `json:"grants"`
	RedirectURIs         []string `json:"redirect_uris"`
	AccessTokenLifetime  int      `json:"access_token_lifetime"`
	RefreshTokenLifetime int      `json:"refresh_token_lifetime"`
}

// BootstrapService idempotently ensures the configured operator accounts and
// clients exist. Accounts already present (by username / clientId) are left
// untouched, so re-running at every start is safe.
type BootstrapService struct {
	users       UserStore
	credentials CredentialStore
	clients     ClientStore
	hasher      *PasswordHasher
}

func NewBootstrapService(users UserStore, credentials CredentialStore, clients ClientStore, hasher *PasswordHasher) *BootstrapService {
	return &BootstrapService{
		users:       users,
		credentials: credentials,
		clients:     clients,
		hasher:      hasher,
	}
}

func (s *BootstrapService) Ensure(ctx context.Context, operators []SeedOperator, clients []SeedClient) error {
	for _, op := range operators {
		if err := s.ensureOperator(ctx, op); err != nil {
			return fmt.Errorf("ensure operator %q: %w", op.Username, err)
		}
	}

	for _, cl := range clients {
		if err := s.ensureClient(ctx, cl); err != nil {
			return fmt.Errorf("ensure client %q: %w", cl.ClientID, err)
		}
	}

	return nil
}

func (s *BootstrapService) ensureOperator(ctx context.Context, op SeedOperator) error {
	_, err := s.credentials.CredentialByUsername(ctx, op.Username)
	if err == nil {
		slog.Info("operator already exists", "username", op.Username)
		return nil
	}
	if !errors.Is(err, model.ErrCredentialNotFound) {
		return err
	}

	hashed, err := s.hasher.Hash(op.Password)
	if err != nil {
		return err
	}

	user := model.User{
		Name:  op.Name,
		Email: op.Email,
		Scope: model.ScopeOperator,
	}
	cred := model.Credential{
		ID:       uuid.NewString(),
		Username: op.Username,
		Password: hashed,
	}

	// One transaction per account: either the user and its credential both
	// land, or neither does.
	if _, _, err := s.users.CreateUserWithCredential(ctx, user, cred); err != nil {
		return err
	}

	slog.Info("operator created", "username", op.Username)
	return nil
}

func (s *BootstrapService) ensureClient(ctx context.Context, cl SeedClient) error {
	_, err := s.clients.ClientByClientID(ctx, cl.ClientID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrClientNotFound) {
		return err
	}

	scope, ok := model.ParseScope(cl.Scope)
	if !ok || scope == "" {
		return fmt.Errorf("%w: seed client scope %q", model.ErrInvalidScope, cl.Scope)
	}

	grants := cl.Grants
	if len(grants) == 0 {
		grants = []string{model.GrantPassword, model.GrantRefreshToken}
	}

	accessLifetime := cl.AccessTokenLifetime
	if accessLifetime <= 0 {
		accessLifetime = 3600
	}
	refreshLifetime := cl.RefreshTokenLifetime
	if refreshLifetime <= 0 {
		refreshLifetime = 7200
	}

	_, err = s.clients.CreateClient(ctx, model.Client{
		ID:                   uuid.NewString(),
		Name:                 cl.Name,
		ClientID:             cl.ClientID,
		ClientSecret:         cl.ClientSecret,
		Scope:                scope,
		Grants:               grants,
		RedirectURIs:         cl.RedirectURIs,
		AccessTokenLifetime:  accessLifetime,
		RefreshTokenLifetime: refreshLifetime,
	})
	if err != nil {
		return err
	}

	slog.Info("client created", "client_id", cl.ClientID)
	return nil
}
