// Package checkout реализует HTTP-обработчик создания платёжной сессии.
//
// Handler создает сессию оплаты у платёжного провайдера для текущего
// пользователя и возвращает URL страницы оплаты.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
)

// Handler управляет HTTP-запросами на создание платёжной сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики создания платёжной сессии.
type Service interface {
	CreateCheckout(ctx context.Context, email string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать платёжную сессию
// @Description Создает сессию оплаты подписки у платёжного провайдера и возвращает URL страницы оплаты.
// @Tags Billing
// @Produce  json
// @Success 200 {object} map[string]any "URL страницы оплаты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /api/create-checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.UserEmail).(string)
	if !ok || email == "" {
		log.Error("user email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	url, err := h.service.CreateCheckout(r.Context(), email)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create checkout session"))
		return
	}

	log.Info("checkout session created", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"url": url,
	}))
}
