package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"craftshop-admin/internal/model"
)

type bearerAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string, required model.Scope) (model.AuthorizedToken, error)
}

type contextKey string

const tokenContextKey contextKey = "oauth_token"

// OAuthMiddleware guards protected routes. Each request re-validates the
// presented bearer token against the store; nothing is cached between
// requests.
type OAuthMiddleware struct {
	grants bearerAuthenticator
}

func NewOAuthMiddleware(grants bearerAuthenticator) *OAuthMiddleware {
	return &OAuthMiddleware{grants: grants}
}

// RequireScope admits requests whose bearer token authorizes the given
// scope. Missing header, unknown token, expired token and insufficient
// scope all produce the same response.
func (m *OAuthMiddleware) RequireScope(required model.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				writeUnauthorized(w)
				return
			}

			token, err := m.grants.Authenticate(r.Context(), strings.TrimSpace(header[7:]), required)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromContext returns the validated token placed by RequireScope.
func TokenFromContext(ctx context.Context) (model.AuthorizedToken, bool) {
	token, ok := ctx.Value(tokenContextKey).(model.AuthorizedToken)
	return token, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		},
	})
}
