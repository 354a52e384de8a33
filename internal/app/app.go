package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craftshop-admin/internal/config"
	"craftshop-admin/internal/database"
	"craftshop-admin/internal/handler"
	"craftshop-admin/internal/mail"
	"craftshop-admin/internal/metrics"
	"craftshop-admin/internal/middleware"
	"craftshop-admin/internal/repository"
	"craftshop-admin/internal/router"
	"craftshop-admin/internal/service"
	"craftshop-admin/internal/storage"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	credentialRepo := repository.NewCredentialRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	craftShopRepo := repository.NewCraftShopRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	slog.Info("database ready")

	hasher := service.NewPasswordHasher()
	issuer := service.NewTokenIssuer(cfg.JWTSecret)
	grantService := service.NewGrantService(clientRepo, userRepo, credentialRepo, tokenRepo, hasher, issuer)

	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.MailEnabled() {
		sesMailer, mailErr := mail.NewSESMailer(ctx, cfg.MailRegion, cfg.MailSender)
		if mailErr != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize mailer: %w", mailErr)
		}
		mailer = sesMailer
	}

	accountService := service.NewAccountService(userRepo, credentialRepo, grantService, hasher, mailer)
	userService := service.NewUserService(userRepo, credentialRepo, hasher)
	catalogService := service.NewCatalogService(categoryRepo, craftShopRepo, itemRepo)

	bootstrapService := service.NewBootstrapService(userRepo, credentialRepo, clientRepo, hasher)
	if err := bootstrapService.Ensure(ctx, cfg.BootstrapOperators, cfg.BootstrapClients); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure seed accounts: %w", err)
	}

	var objects storage.ObjectStore
	if cfg.StorageEnabled() {
		s3Store, s3Err := storage.NewS3Store(ctx, storage.Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UsePathStyle:  cfg.S3UsePathStyle,
			UploadExpiry:  cfg.S3UploadExpiry,
			MaxUploadSize: cfg.S3MaxUploadSize,
		})
		if s3Err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize object store: %w", s3Err)
		}
		objects = s3Store
	} else {
		slog.Warn("S3_BUCKET not set; resource uploads disabled")
		objects = storage.DisabledStore{}
	}
	resourceService := service.NewResourceService(resourceRepo, objects)

	m := metrics.New()
	oauthMiddleware := middleware.NewOAuthMiddleware(grantService)

	appRouter := router.New(cfg, oauthMiddleware, m, db, router.Handlers{
		OAuth:     handler.NewOAuthHandler(grantService, m),
		Account:   handler.NewAccountHandler(accountService, m),
		User:      handler.NewUserHandler(userService),
		Category:  handler.NewCategoryHandler(catalogService),
		CraftShop: handler.NewCraftShopHandler(catalogService),
		Item:      handler.NewItemHandler(catalogService),
		Resource:  handler.NewResourceHandler(resourceService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
