package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"craftshop-admin/internal/config"
	"craftshop-admin/internal/handler"
	"craftshop-admin/internal/metrics"
	"craftshop-admin/internal/middleware"
	"craftshop-admin/internal/model"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	OAuth     *handler.OAuthHandler
	Account   *handler.AccountHandler
	User      *handler.UserHandler
	Category  *handler.CategoryHandler
	CraftShop *handler.CraftShopHandler
	Item      *handler.ItemHandler
	Resource  *handler.ResourceHandler
}

type HealthChecker interface {
	Health(ctx context.Context) error
}

func New(
	cfg *config.Config,
	oauthMiddleware *middleware.OAuthMiddleware,
	m *metrics.Metrics,
	db HealthChecker,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Metrics(m))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Health(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	requireCustomer := oauthMiddleware.RequireScope(model.ScopeCustomer)
	requireOperator := oauthMiddleware.RequireScope(model.ScopeOperator)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/auth/token", h.OAuth.Token)

		api.Route("/account", func(account chi.Router) {
			account.Use(requireCustomer)
			account.Get("/me", h.Account.Me)
			account.Put("/", h.Account.Update)
			account.Put("/password", h.Account.ChangePassword)
			account.Delete("/signout", h.Account.SignOut)
		})
		api.Post("/account/forgot-password", h.Account.ForgotPassword)

		api.Route("/users", func(users chi.Router) {
			users.Use(requireOperator)
			users.Get("/", h.User.List)
			users.Post("/", h.User.Create)
			users.Get("/{id}", h.User.Get)
			users.Put("/{id}", h.User.Update)
			users.Delete("/{id}", h.User.Delete)
		})

		api.Route("/categories", func(categories chi.Router) {
			categories.With(requireCustomer).Get("/", h.Category.List)
			categories.With(requireCustomer).Get("/{id}", h.Category.Get)
			categories.With(requireOperator).Post("/", h.Category.Create)
			categories.With(requireOperator).Put("/{id}", h.Category.Update)
			categories.With(requireOperator).Delete("/{id}", h.Category.Delete)
		})

		api.Route("/craft-shops", func(shops chi.Router) {
			shops.With(requireCustomer).Get("/", h.CraftShop.List)
			shops.With(requireCustomer).Get("/{id}", h.CraftShop.Get)
			shops.With(requireOperator).Post("/", h.CraftShop.Create)
			shops.With(requireOperator).Put("/{id}", h.CraftShop.Update)
			shops.With(requireOperator).Delete("/{id}", h.CraftShop.Delete)
		})

		api.Route("/items", func(items chi.Router) {
			items.With(requireCustomer).Get("/", h.Item.List)
			items.With(requireCustomer).Get("/{id}", h.Item.Get)
			items.With(requireOperator).Post("/", h.Item.Create)
			items.With(requireOperator).Put("/{id}", h.Item.Update)
			items.With(requireOperator).Delete("/{id}", h.Item.Delete)
		})

		api.Route("/resources", func(resources chi.Router) {
			resources.Use(requireOperator)
			resources.Post("/presign", h.Resource.Presign)
			resources.Delete("/{id}", h.Resource.Delete)
		})
	})

	return r
}
