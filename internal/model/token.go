package model

import "time"

// UserToken is one issued access/refresh pair as stored. ExpiredIn and
// RefreshExpiredIn are absolute expiry timestamps; the store never enforces
// them, callers compare against the clock.
type UserToken struct {
	ID               int64     `json:"id"`
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	ExpiredIn        time.Time `json:"expired_in"`
	RefreshExpiredIn time.Time `json:"refresh_expired_in"`
	Scope            Scope     `json:"scope"`
	UserID           int64     `json:"user_id"`
	ClientID         string    `json:"client_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuthorizedToken is a stored token joined with its owning client and user,
// the shape every bearer-protected request works against.
type AuthorizedToken struct {
	UserToken
	Client Client `json:"client"`
	User   User   `json:"user"`
}

// AccessExpired reports whether the access token is past its expiry at now.
func (t AuthorizedToken) AccessExpired(now time.Time) bool {
	return !t.ExpiredIn.After(now)
}

// RefreshExpired reports whether the refresh token is past its expiry at now.
func (t AuthorizedToken) RefreshExpired(now time.Time) bool {
	return !t.RefreshExpiredIn.After(now)
}

// TokenRequest carries one inbound grant request from the token endpoint.
type TokenRequest struct {
	GrantType    string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	Scope        string
}

// TokenResponse is the success body of the token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        Scope  `json:"scope"`
}
