package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"craftshop-admin/internal/model"
)

// GrantService is the grant engine: it maps token requests onto persisted
// token pairs, and validates bearer tokens for protected operations. It
// holds no per-request state; every decision re-reads the store.
type GrantService struct {
	clients     ClientStore
	users       UserStore
	credentials CredentialStore
	tokens      TokenStore
	hasher      *PasswordHasher
	issuer      *TokenIssuer
	now         func() time.Time
}

func NewGrantService(
	clients ClientStore,
	users UserStore,
	credentials CredentialStore,
	tokens TokenStore,
	hasher *PasswordHasher,
	issuer *TokenIssuer,
) *GrantService {
	return &GrantService{
		clients:     clients,
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		hasher:      hasher,
		issuer:      issuer,
		now:         time.Now,
	}
}

// Token runs one grant request through the engine. Each step short-circuits
// on failure and a denied request leaves nothing behind in the store.
func (s *GrantService) Token(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	switch req.GrantType {
	case model.GrantPassword:
		return s.passwordGrant(ctx, req)
	case model.GrantRefreshToken:
		return s.refreshTokenGrant(ctx, req)
	case model.GrantClientCredentials, model.GrantExtension:
		return s.clientCredentialsGrant(ctx, req)
	case model.GrantAuthorizationCode:
		return model.TokenResponse{}, fmt.Errorf("%w: authorization_code", model.ErrUnsupportedGrantType)
	default:
		return model.TokenResponse{}, fmt.Errorf("%w: %q", model.ErrUnsupportedGrantType, req.GrantType)
	}
}

func (s *GrantService) passwordGrant(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	client, err := s.AuthenticateClient(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !client.AllowsGrant(model.GrantPassword) {
		return model.TokenResponse{}, fmt.Errorf("%w: grant not allowed for client", model.ErrInvalidClient)
	}

	user, err := s.AuthenticateResourceOwner(ctx, req.Username, req.Password)
	if err != nil {
		return model.TokenResponse{}, err
	}

	requested, ok := model.ParseScope(req.Scope)
	if !ok {
		return model.TokenResponse{}, model.ErrInvalidScope
	}

	scope, err := ValidateScope(user, client, requested)
	if err != nil {
		return model.TokenResponse{}, err
	}

	issued, err := s.IssueToken(ctx, client, user, scope)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return s.tokenResponse(issued), nil
}

func (s *GrantService) refreshTokenGrant(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	client, err := s.AuthenticateClient(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !client.AllowsGrant(model.GrantRefreshToken) {
		return model.TokenResponse{}, fmt.Errorf("%w: grant not allowed for client", model.ErrInvalidClient)
	}

	token, err := s.LookupRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return model.TokenResponse{}, model.ErrInvalidGrant
		}
		return model.TokenResponse{}, err
	}

	// A refresh token minted through one client cannot be exchanged via
	// another, and an expired one is dead even though the row still exists.
	if token.Client.ID != client.ID {
		return model.TokenResponse{}, model.ErrInvalidGrant
	}
	if token.RefreshExpired(s.now()) {
		return model.TokenResponse{}, model.ErrInvalidGrant
	}

	// Rotation: the old pair is revoked before the replacement is issued.
	if err := s.RevokeToken(ctx, token); err != nil {
		return model.TokenResponse{}, err
	}

	issued, err := s.IssueToken(ctx, token.Client, token.User, token.Scope)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return s.tokenResponse(issued), nil
}

// clientCredentialsGrant is scaffolding: no user can be derived from a
// client in this system, so the grant authenticates the client and then
// always denies.
func (s *GrantService) clientCredentialsGrant(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	client, err := s.AuthenticateClient(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !client.AllowsGrant(req.GrantType) {
		return model.TokenResponse{}, fmt.Errorf("%w: grant not allowed for client", model.ErrInvalidClient)
	}

	if _, err := s.userFromClient(ctx, client); err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{}, model.ErrInvalidGrant
}

func (s *GrantService) userFromClient(context.Context, model.Client) (model.User, error) {
	return model.User{}, model.ErrInvalidGrant
}

// AuthenticateClient resolves a client by its external id and checks the
// secret with a constant-time comparison. Unknown id and wrong secret are
// indistinguishable to the caller.
func (s *GrantService) AuthenticateClient(ctx context.Context, clientID string, clientSecret string) (model.Client, error) {
	client, err := s.clients.ClientByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, model.ErrClientNotFound) {
			return model.Client{}, model.ErrInvalidClient
		}
		return model.Client{}, fmt.Errorf("authenticate client: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(clientSecret)) != 1 {
		return model.Client{}, model.ErrInvalidClient
	}

	return client, nil
}

// AuthenticateResourceOwner resolves the user owning the credential with the
// given username and verifies the password. Unknown username, missing
// credential and password mismatch all collapse into the same failure.
func (s *GrantService) AuthenticateResourceOwner(ctx context.Context, username string, password string) (model.User, error) {
	cred, err := s.credentials.CredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) {
			return model.User{}, model.ErrInvalidCredential
		}
		return model.User{}, fmt.Errorf("authenticate resource owner: %w", err)
	}

	if !s.hasher.Verify(cred.Password, password) {
		return model.User{}, model.ErrInvalidCredential
	}

	user, err := s.users.UserByID(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.User{}, model.ErrInvalidCredential
		}
		return model.User{}, fmt.Errorf("authenticate resource owner: %w", err)
	}

	return user, nil
}

// IssueToken mints an access/refresh pair and persists it as one row. The
// insert is the only write, so a failure leaves no token that would verify
// by signature yet be unknown to the store.
func (s *GrantService) IssueToken(ctx context.Context, client model.Client, user model.User, scope model.Scope) (model.AuthorizedToken, error) {
	now := s.now()

	access, accessExp, err := s.issuer.AccessToken(client, user, scope, now)
	if err != nil {
		return model.AuthorizedToken{}, err
	}

	refresh, refreshExp, err := s.issuer.RefreshToken(client, user, scope, now)
	if err != nil {
		return model.AuthorizedToken{}, err
	}

	stored, err := s.tokens.CreateToken(ctx, model.UserToken{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiredIn:        accessExp,
		RefreshExpiredIn: refreshExp,
		Scope:            scope,
		UserID:           user.ID,
		ClientID:         client.ID,
	})
	if err != nil {
		return model.AuthorizedToken{}, fmt.Errorf("persist token: %w", err)
	}

	slog.Info("token issued", "user_id", user.ID, "client_id", client.ClientID, "scope", scope)

	return model.AuthorizedToken{UserToken: stored, Client: client, User: user}, nil
}

// LookupAccessToken returns the stored token joined with its client and
// user. Expiry is not enforced here; callers compare against the clock.
func (s *GrantService) LookupAccessToken(ctx context.Context, accessToken string) (model.AuthorizedToken, error) {
	return s.tokens.TokenByAccess(ctx, accessToken)
}

// LookupRefreshToken is the refresh-side counterpart of LookupAccessToken.
func (s *GrantService) LookupRefreshToken(ctx context.Context, refreshToken string) (model.AuthorizedToken, error) {
	return s.tokens.TokenByRefresh(ctx, refreshToken)
}

// RevokeToken deletes the token row matching the access token and owning
// user. Revoking an already-absent token succeeds; revocation is idempotent.
func (s *GrantService) RevokeToken(ctx context.Context, token model.AuthorizedToken) error {
	if err := s.tokens.DeleteToken(ctx, token.AccessToken, token.User.ID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Authorization-code storage is permanently disabled; the grant type is not
// offered to clients. Every operation reports the not-found sentinel.

func (s *GrantService) SaveAuthorizationCode(context.Context, string, model.Client, model.User) error {
	return model.ErrNotFound
}

func (s *GrantService) AuthorizationCode(context.Context, string) (model.AuthorizedToken, error) {
	return model.AuthorizedToken{}, model.ErrNotFound
}

func (s *GrantService) RevokeAuthorizationCode(context.Context, string) bool {
	return false
}

// Authenticate is the bearer validation boundary: token lookup, expiry
// check, then the scope decision. Every failure collapses into the same
// unauthorized result so callers cannot tell which check failed.
func (s *GrantService) Authenticate(ctx context.Context, accessToken string, required model.Scope) (model.AuthorizedToken, error) {
	if accessToken == "" {
		return model.AuthorizedToken{}, model.ErrUnauthorized
	}

	token, err := s.LookupAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return model.AuthorizedToken{}, model.ErrUnauthorized
		}
		return model.AuthorizedToken{}, fmt.Errorf("authenticate bearer: %w", err)
	}

	if token.AccessExpired(s.now()) {
		return model.AuthorizedToken{}, model.ErrUnauthorized
	}

	if !VerifyScope(token, required) {
		return model.AuthorizedToken{}, model.ErrUnauthorized
	}

	return token, nil
}

func (s *GrantService) tokenResponse(token model.AuthorizedToken) model.TokenResponse {
	return model.TokenResponse{
		AccessToken:  token.AccessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(token.ExpiredIn.Sub(s.now()).Seconds()),
		RefreshToken: token.RefreshToken,
		Scope:        token.Scope,
	}
}
