package model

import "time"

// Grant type names accepted on the token endpoint. AuthorizationCode is
// listed for completeness but the engine never serves it.
const (
	GrantPassword          = "password"
	GrantRefreshToken      = "refresh_token"
	GrantClientCredentials = "client_credentials"
	GrantExtension         = "extension"
	GrantAuthorizationCode = "authorization_code"
)

// Client is a registered API consumer. ClientID is globally unique and is
// the external identifier; ID is the opaque internal one that ends up in the
// issuer field of minted tokens.
type Client struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	ClientID             string    `json:"client_id"`
	ClientSecret         string    `json:"-"`
	Scope                Scope     `json:"scope"`
	Grants               []string  `json:"grants"`
	RedirectURIs         []string  `json:"redirect_uris"`
	AccessTokenLifetime  int       `json:"access_token_lifetime"`
	RefreshTokenLifetime int       `json:"refresh_token_lifetime"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AllowsGrant reports whether the client is registered for the named grant.
func (c Client) AllowsGrant(grant string) bool {
	for _, g := range c.Grants {
		if g == grant {
			return true
		}
	}
	return false
}
