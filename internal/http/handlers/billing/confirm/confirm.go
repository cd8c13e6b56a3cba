// Package confirm реализует HTTP-обработчик подтверждения оплаты подписки.
//
// Handler принимает идентификатор платёжной сессии, перепроверяет её статус
// у платёжного провайдера через сервис и включает подписку пользователю.
package confirm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
	services "github.com/magabrotheeeer/todo-assistant/internal/services/billing"
)

// Handler управляет HTTP-запросами на подтверждение оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подтверждения подписки.
type Service interface {
	ConfirmSubscription(ctx context.Context, email, sessionID string) error
}

// Request — тело запроса на подтверждение оплаты.
type Request struct {
	SessionID string `json:"session_id" validate:"required"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату подписки
// @Description Проверяет статус платёжной сессии у провайдера и включает подписку текущему пользователю.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор платёжной сессии"
// @Success 200 {object} map[string]any "Подписка активирована"
// @Failure 400 {object} response.ErrorResponse "Оплата не подтверждена или некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/confirm-subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, ok := r.Context().Value(middlewarectx.UserEmail).(string)
	if !ok || email == "" {
		log.Error("user email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.ConfirmSubscription(r.Context(), email, req.SessionID); err != nil {
		if errors.Is(err, services.ErrPaymentNotConfirmed) {
			log.Info("payment not confirmed", slog.String("session_id", req.SessionID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("payment not confirmed"))
			return
		}
		log.Error("failed to confirm subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not confirm subscription"))
		return
	}

	log.Info("subscription confirmed", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"success": true,
	}))
}
