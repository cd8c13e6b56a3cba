// Package testlogin реализует HTTP-обработчик тестового входа под демо-учеткой.
//
// Эндпоинт предназначен для демо-окружения: вход выполняется без пароля,
// токен сессии возвращается так же, как при обычном входе.
package testlogin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// Handler управляет HTTP-запросами на тестовый вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	tokenTTL time.Duration
}

// Service описывает интерфейс бизнес-логики тестового входа.
type Service interface {
	DemoLogin(ctx context.Context) (*models.Identity, error)
	IssueToken(identity models.Identity) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokenTTL: tokenTTL,
	}
}

// ServeHTTP godoc
// @Summary Тестовый вход
// @Description Входит под демо-учеткой без пароля. Возвращает токен сессии и устанавливает cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Токен сессии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/test-login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.testlogin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, err := h.service.DemoLogin(r.Context())
	if err != nil {
		log.Error("failed to login demo user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not login demo user"))
		return
	}

	token, err := h.service.IssueToken(*identity)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue token"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("demo user logged in", slog.String("email", identity.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"user":  identity,
	}))
}
