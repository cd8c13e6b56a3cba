// Package todoassistant предоставляет маршруты для основного приложения.
package todoassistant

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/auth/testlogin"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/billing/checkout"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/billing/confirm"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/health"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/pages"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/tips"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/todo/create"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/todo/list"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/todo/remove"
	"github.com/magabrotheeeer/todo-assistant/internal/http/handlers/todo/toggle"
	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/jwt"
	assistantservice "github.com/magabrotheeeer/todo-assistant/internal/services/assistant"
	authservice "github.com/magabrotheeeer/todo-assistant/internal/services/auth"
	billingservice "github.com/magabrotheeeer/todo-assistant/internal/services/billing"
	todoservice "github.com/magabrotheeeer/todo-assistant/internal/services/todo"
	"github.com/magabrotheeeer/todo-assistant/internal/storage/repository"
)

// Services собирает зависимости маршрутов приложения.
type Services struct {
	Auth      *authservice.AuthService
	Todo      *todoservice.TodoService
	Assistant *assistantservice.AssistantService
	Billing   *billingservice.BillingService
	Pages     *pages.Handler
	Storage   *repository.Storage
	JWTMaker  jwt.Maker
	TokenTTL  time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/api/login", login.New(logger, svc.Auth, svc.TokenTTL).ServeHTTP)
	r.Post("/api/test-login", testlogin.New(logger, svc.Auth, svc.TokenTTL).ServeHTTP)
	r.Get("/auth/signin", svc.Pages.Signin)
	r.Get("/healthz", health.New(logger, svc.Storage).ServeHTTP)

	// Группа с проверкой сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(svc.JWTMaker, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(10, 30)))

		r.Get("/", svc.Pages.Index)
		r.Get("/subscribe", svc.Pages.Subscribe)

		r.Get("/api/todos", list.New(logger, svc.Todo).ServeHTTP)
		r.Post("/api/todos", create.New(logger, svc.Todo).ServeHTTP)
		r.Patch("/api/todos/{id}", toggle.New(logger, svc.Todo).ServeHTTP)
		r.Delete("/api/todos/{id}", remove.New(logger, svc.Todo).ServeHTTP)

		r.Post("/api/create-checkout-session", checkout.New(logger, svc.Billing).ServeHTTP)
		r.Post("/api/confirm-subscription", confirm.New(logger, svc.Billing).ServeHTTP)

		// Премиум-функции: активная подписка или пробный период
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.PremiumStatusMiddleware(logger, svc.Billing))
			r.Post("/api/tips", tips.New(logger, svc.Assistant).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
