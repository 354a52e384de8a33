package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"craftshop-admin/internal/metrics"
	"craftshop-admin/internal/model"
	"craftshop-admin/internal/service"
)

func grantClient() model.Client {
	return model.Client{
		ID:                   "7b6a2b2e-9c40-4e1d-9a52-1b2f3c4d5e6f",
		ClientID:             "shop",
		ClientSecret:         "s3cr3t",
		Scope:                model.ScopeCustomer,
		Grants:               []string{model.GrantPassword, model.GrantRefreshToken},
		AccessTokenLifetime:  1200,
		RefreshTokenLifetime: 2400,
	}
}

func postToken(t *testing.T, h *OAuthHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Token(rec, req)
	return rec
}

func TestTokenEndpointPasswordGrant(t *testing.T) {
	store := &service.MockStore{}
	hasher := service.NewPasswordHasher()
	hashed, err := hasher.Hash("wonderland")
	require.NoError(t, err)

	store.On("ClientByClientID", mock.Anything, "shop").Return(grantClient(), nil)
	store.On("CredentialByUsername", mock.Anything, "alice").Return(model.Credential{
		ID: "cred-1", UserID: 42, Username: "alice", Password: hashed,
	}, nil)
	store.On("UserByID", mock.Anything, int64(42)).Return(model.User{ID: 42, Name: "alice", Scope: model.ScopeCustomer}, nil)
	store.On("CreateToken", mock.Anything, mock.Anything).Return(model.UserToken{
		ID:          1,
		AccessToken: "signed-access", RefreshToken: "signed-refresh",
		ExpiredIn: time.Now().Add(20 * time.Minute), RefreshExpiredIn: time.Now().Add(40 * time.Minute),
		Scope: model.ScopeCustomer, UserID: 42,
	}, nil)

	grants := service.NewGrantService(store, store, store, store, hasher, service.NewTokenIssuer("handler-test-secret"))
	h := NewOAuthHandler(grants, metrics.New())

	rec := postToken(t, h, url.Values{
		"grant_type":    {"password"},
		"client_id":     {"shop"},
		"client_secret": {"s3cr3t"},
		"username":      {"alice"},
		"password":      {"wonderland"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body model.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed-access", body.AccessToken)
	assert.Equal(t, "signed-refresh", body.RefreshToken)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, model.ScopeCustomer, body.Scope)
}

// Wrong password, unknown username and unknown client must all produce the
// same response body and status.
func TestTokenEndpointUniformDenial(t *testing.T) {
	store := &service.MockStore{}
	hasher := service.NewPasswordHasher()
	hashed, err := hasher.Hash("wonderland")
	require.NoError(t, err)

	store.On("ClientByClientID", mock.Anything, "shop").Return(grantClient(), nil)
	store.On("ClientByClientID", mock.Anything, "ghost").Return(model.Client{}, model.ErrClientNotFound)
	store.On("CredentialByUsername", mock.Anything, "alice").Return(model.Credential{
		ID: "cred-1", UserID: 42, Username: "alice", Password: hashed,
	}, nil)
	store.On("CredentialByUsername", mock.Anything, "nobody").Return(model.Credential{}, model.ErrCredentialNotFound)

	grants := service.NewGrantService(store, store, store, store, hasher, service.NewTokenIssuer("handler-test-secret"))
	h := NewOAuthHandler(grants, metrics.New())

	forms := []url.Values{
		{"grant_type": {"password"}, "client_id": {"ghost"}, "client_secret": {"s3cr3t"}, "username": {"alice"}, "password": {"wonderland"}},
		{"grant_type": {"password"}, "client_id": {"shop"}, "client_secret": {"wrong"}, "username": {"alice"}, "password": {"wonderland"}},
		{"grant_type": {"password"}, "client_id": {"shop"}, "client_secret": {"s3cr3t"}, "username": {"nobody"}, "password": {"wonderland"}},
		{"grant_type": {"password"}, "client_id": {"shop"}, "client_secret": {"s3cr3t"}, "username": {"alice"}, "password": {"wrong"}},
	}

	var bodies []string
	for _, form := range forms {
		rec := postToken(t, h, form)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body)
	}

	var resp model.APIResponse
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ACCESS_DENIED", resp.Error.Code)
}

func TestTokenEndpointUnsupportedGrantType(t *testing.T) {
	store := &service.MockStore{}
	grants := service.NewGrantService(store, store, store, store, service.NewPasswordHasher(), service.NewTokenIssuer("handler-test-secret"))
	h := NewOAuthHandler(grants, metrics.New())

	rec := postToken(t, h, url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {"shop"},
		"client_secret": {"s3cr3t"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_GRANT_TYPE", resp.Error.Code)
}

func TestTokenEndpointMissingClientFields(t *testing.T) {
	store := &service.MockStore{}
	grants := service.NewGrantService(store, store, store, store, service.NewPasswordHasher(), service.NewTokenIssuer("handler-test-secret"))
	h := NewOAuthHandler(grants, metrics.New())

	rec := postToken(t, h, url.Values{"grant_type": {"password"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
