package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftshop-admin/internal/config"
	"craftshop-admin/internal/handler"
	"craftshop-admin/internal/mail"
	"craftshop-admin/internal/metrics"
	"craftshop-admin/internal/middleware"
	"craftshop-admin/internal/model"
	"craftshop-admin/internal/router"
	"craftshop-admin/internal/service"
	"craftshop-admin/internal/storage"
)

type healthyDB struct{}

func (healthyDB) Health(context.Context) error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *memStore) {
	t.Helper()

	cfg := &config.Config{
		ServerPort:       "0",
		RequestTimeout:   5 * time.Second,
		RateLimitRPM:     100000,
		AuthRateLimitRPM: 100000,
		CORSOrigins:      []string{"*"},
		JWTSecret:        "integration-secret",
	}

	store := newMemStore()
	hasher := service.NewPasswordHasher()
	issuer := service.NewTokenIssuer(cfg.JWTSecret)
	grants := service.NewGrantService(store, store, store, store, hasher, issuer)
	accounts := service.NewAccountService(store, store, grants, hasher, mail.NoopMailer{})
	users := service.NewUserService(store, store, hasher)
	catalog := service.NewCatalogService(store, store, store)
	resources := service.NewResourceService(store, storage.DisabledStore{})

	bootstrap := service.NewBootstrapService(store, store, store, hasher)
	require.NoError(t, bootstrap.Ensure(context.Background(),
		[]service.SeedOperator{{Name: "Admin", Email: "admin@example.com", Username: "admin", Password: "adminpass"}},
		[]service.SeedClient{{
			Name:         "Shop Console",
			ClientID:     "shop",
			ClientSecret: "s3cr3t",
			Scope:        "customer",
		}},
	))

	_, err := users.Create(context.Background(), model.CreateUserRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Username: "alice",
		Password: "wonderland",
		Scope:    "customer",
	})
	require.NoError(t, err)

	m := metrics.New()
	h := router.Handlers{
		OAuth:     handler.NewOAuthHandler(grants, m),
		Account:   handler.NewAccountHandler(accounts, m),
		User:      handler.NewUserHandler(users),
		Category:  handler.NewCategoryHandler(catalog),
		CraftShop: handler.NewCraftShopHandler(catalog),
		Item:      handler.NewItemHandler(catalog),
		Resource:  handler.NewResourceHandler(resources),
	}

	srv := httptest.NewServer(router.New(cfg, middleware.NewOAuthMiddleware(grants), m, healthyDB{}, h))
	t.Cleanup(srv.Close)

	return srv, store
}

func requestToken(t *testing.T, srv *httptest.Server, form url.Values) (model.TokenResponse, *http.Response) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/v1/auth/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	var tokens model.TokenResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return tokens, resp
}

func passwordGrantForm() url.Values {
	return url.Values{
		"grant_type":    {"password"},
		"client_id":     {"shop"},
		"client_secret": {"s3cr3t"},
		"username":      {"alice"},
		"password":      {"wonderland"},
	}
}

func authorizedGet(t *testing.T, srv *httptest.Server, path string, bearer string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestPasswordGrantAndBearerAccess(t *testing.T) {
	srv, store := newTestServer(t)

	tokens, resp := requestToken(t, srv, passwordGrantForm())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, model.ScopeCustomer, tokens.Scope)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.ExpiresIn, int64(0))

	// Both halves of the pair are resolvable in the store.
	_, err := store.TokenByAccess(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	_, err = store.TokenByRefresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)

	me := authorizedGet(t, srv, "/api/v1/account/me", tokens.AccessToken)
	defer me.Body.Close()
	require.Equal(t, http.StatusOK, me.StatusCode)

	var body struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(me.Body).Decode(&body))
	assert.Equal(t, "alice", body.Data.Name)
}

func TestWrongPasswordDenied(t *testing.T) {
	srv, store := newTestServer(t)

	form := passwordGrantForm()
	form.Set("password", "not-wonderland")

	_, resp := requestToken(t, srv, form)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, store.tokens)
}

func TestRefreshRotation(t *testing.T) {
	srv, _ := newTestServer(t)

	first, resp := requestToken(t, srv, passwordGrantForm())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	refreshed, resp := requestToken(t, srv, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {"shop"},
		"client_secret": {"s3cr3t"},
		"refresh_token": {first.RefreshToken},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, first.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, first.RefreshToken, refreshed.RefreshToken)

	// The rotated-out pair is dead on both sides.
	_, resp = requestToken(t, srv, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {"shop"},
		"client_secret": {"s3cr3t"},
		"refresh_token": {first.RefreshToken},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	old := authorizedGet(t, srv, "/api/v1/account/me", first.AccessToken)
	old.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, old.StatusCode)

	current := authorizedGet(t, srv, "/api/v1/account/me", refreshed.AccessToken)
	current.Body.Close()
	assert.Equal(t, http.StatusOK, current.StatusCode)
}

func TestOperatorRouteDeniedForCustomerToken(t *testing.T) {
	srv, _ := newTestServer(t)

	tokens, resp := requestToken(t, srv, passwordGrantForm())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users := authorizedGet(t, srv, "/api/v1/users", tokens.AccessToken)
	users.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, users.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := authorizedGet(t, srv, "/api/v1/account/me", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignOutRevokesBearer(t *testing.T) {
	srv, store := newTestServer(t)

	tokens, resp := requestToken(t, srv, passwordGrantForm())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/account/signout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	out, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	out.Body.Close()
	require.Equal(t, http.StatusNoContent, out.StatusCode)
	assert.Empty(t, store.tokens)

	me := authorizedGet(t, srv, "/api/v1/account/me", tokens.AccessToken)
	me.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, me.StatusCode)
}

func TestCatalogReadWithCustomerToken(t *testing.T) {
	srv, store := newTestServer(t)

	_, err := store.CreateCategory(context.Background(), model.Category{Name: "Rings"})
	require.NoError(t, err)

	tokens, resp := requestToken(t, srv, passwordGrantForm())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := authorizedGet(t, srv, "/api/v1/categories/", tokens.AccessToken)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)

	var body struct {
		Data []model.Category `json:"data"`
		Meta *model.Meta      `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Rings", body.Data[0].Name)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
