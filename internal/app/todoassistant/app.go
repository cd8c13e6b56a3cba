// Package todoassistant собирает приложение: хранилище, кэш, сервисы,
// HTTP-сервер и его жизненный цикл.
package todoassistant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/todo-assistant/internal/cache"
	"github.com/magabrotheeeer/todo-assistant/internal/completion"
	"github.com/magabrotheeeer/todo-assistant/internal/config"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/pages"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-assistant/internal/migrations"
	"github.com/magabrotheeeer/todo-assistant/internal/paymentprovider"
	assistantservice "github.com/magabrotheeeer/todo-assistant/internal/services/assistant"
	authservice "github.com/magabrotheeeer/todo-assistant/internal/services/auth"
	billingservice "github.com/magabrotheeeer/todo-assistant/internal/services/billing"
	todoservice "github.com/magabrotheeeer/todo-assistant/internal/services/todo"
	"github.com/magabrotheeeer/todo-assistant/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService, err := authservice.NewAuthService(db, jwtMaker, cfg.DemoEmail, cfg.DemoPassword)
	if err != nil {
		return nil, err
	}
	if err := authService.EnsureDemoUser(ctx); err != nil {
		return nil, err
	}

	todoService := todoservice.NewTodoService(db, db, cacheRedis, logger)

	completionClient := completion.NewClient(cfg.CompletionAPIKey, cfg.CompletionAPIURL)
	assistantService := assistantservice.NewAssistantService(completionClient, cacheRedis, assistantservice.Config{
		TipsModel:      cfg.TipsModel,
		BreakdownModel: cfg.BreakdownModel,
	}, logger)

	providerClient := paymentprovider.NewClient(cfg.ProviderSecretKey, cfg.ProviderAPIURL)
	billingService := billingservice.NewBillingService(providerClient, db, cfg.PriceID, cfg.PublicBaseURL)

	pagesHandler, err := pages.New(logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:      authService,
		Todo:      todoService,
		Assistant: assistantService,
		Billing:   billingService,
		Pages:     pagesHandler,
		Storage:   db,
		JWTMaker:  jwtMaker,
		TokenTTL:  cfg.TokenTTL,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.cache.Close(); cerr != nil {
			a.logger.Error("failed to close cache", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
