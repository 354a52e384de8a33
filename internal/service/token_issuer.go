package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"craftshop-admin/internal/model"
)

const (
	tokenTypeAccess  = "accessToken"
	tokenTypeRefresh = "refreshToken"

	defaultAccessLifetime  = 600 * time.Second
	defaultRefreshLifetime = 3600 * time.Second
)

// TokenClaims is the signed envelope of every minted token. The issuer field
// carries the client's internal id and the kid header the user's id, binding
// the token to its (client, user) pair without those appearing in the body.
type TokenClaims struct {
	TokenType string      `json:"tokenType"`
	Scope     model.Scope `json:"scope"`
	Username  string      `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed access and refresh token strings. It holds no
// state beyond the signing secret.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// EffectiveScope resolves the scope a token is minted with: the explicitly
// requested scope wins, else the client's, else the user's.
func EffectiveScope(requested model.Scope, client model.Client, user model.User) model.Scope {
	if requested != "" {
		return requested
	}
	if client.Scope != "" {
		return client.Scope
	}
	return user.Scope
}

// AccessToken mints the access token string for a (client, user, scope)
// triple, expiring after the client's access token lifetime.
func (i *TokenIssuer) AccessToken(client model.Client, user model.User, scope model.Scope, now time.Time) (string, time.Time, error) {
	lifetime := defaultAccessLifetime
	if client.AccessTokenLifetime > 0 {
		lifetime = time.Duration(client.AccessTokenLifetime) * time.Second
	}
	return i.sign(tokenTypeAccess, client, user, scope, now, lifetime)
}

// RefreshToken mints the refresh token string, expiring after the client's
// refresh token lifetime.
func (i *TokenIssuer) RefreshToken(client model.Client, user model.User, scope model.Scope, now time.Time) (string, time.Time, error) {
	lifetime := defaultRefreshLifetime
	if client.RefreshTokenLifetime > 0 {
		lifetime = time.Duration(client.RefreshTokenLifetime) * time.Second
	}
	return i.sign(tokenTypeRefresh, client, user, scope, now, lifetime)
}

// AuthorizationCode is deliberately unsupported. The grant type is not
// offered to clients and any attempt is a hard failure.
func (i *TokenIssuer) AuthorizationCode(model.Client, model.User, model.Scope) (string, error) {
	return "", fmt.Errorf("%w: authorization_code", model.ErrUnsupportedGrantType)
}

func (i *TokenIssuer) sign(tokenType string, client model.Client, user model.User, scope model.Scope, now time.Time, lifetime time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(lifetime)

	claims := TokenClaims{
		TokenType: tokenType,
		Scope:     scope,
		Username:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    client.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = strconv.FormatInt(user.ID, 10)

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s: %w", tokenType, err)
	}

	return signed, expiresAt, nil
}
