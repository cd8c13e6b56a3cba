// Package tips реализует HTTP-обработчик запросов к ассистенту задач.
//
// Handler принимает текст задачи и действие: tips возвращает короткие советы,
// breakdown — пошаговую разбивку. Ошибки вышестоящего сервиса генерации
// транслируются клиенту с его статусом.
package tips

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/todo-assistant/internal/completion"
	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// Handler управляет HTTP-запросами к ассистенту.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики ассистента.
type Service interface {
	GetTips(ctx context.Context, task string) (string, error)
	GetBreakdown(ctx context.Context, task string) ([]models.Subtask, error)
}

// Request — тело запроса к ассистенту.
type Request struct {
	Task   string `json:"task" validate:"required"`
	Action string `json:"action" validate:"omitempty,oneof=tips breakdown"`
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
// @Summary Получить советы или разбивку задачи
// @Description Возвращает советы по выполнению задачи либо пошаговую разбивку в зависимости от поля action.
// @Tags Assistant
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст задачи и действие"
// @Success 200 {object} map[string]any "Советы или шаги"
// @Failure 400 {object} response.ErrorResponse "Не указан текст задачи"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.ErrorResponse "Требуется подписка"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера или сервиса генерации"
// @Router /api/tips [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tips"
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

	switch req.Action {
	case "breakdown":
		subtasks, err := h.service.GetBreakdown(r.Context(), req.Task)
		if err != nil {
			h.renderUpstreamError(w, r, log, err)
			return
		}
		log.Info("breakdown generated", slog.Int("steps", len(subtasks)))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"subtasks": subtasks,
		}))
	default:
		tipsText, err := h.service.GetTips(r.Context(), req.Task)
		if err != nil {
			h.renderUpstreamError(w, r, log, err)
			return
		}
		log.Info("tips generated")
		render.JSON(w, r, response.OKWithData(map[string]any{
			"tips": tipsText,
		}))
	}
}

// renderUpstreamError транслирует ошибку сервиса генерации в HTTP-ответ.
// Статус и сообщение вышестоящего сервиса сохраняются, остальные ошибки дают 500.
func (h *Handler) renderUpstreamError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var apiErr *completion.APIError
	if errors.As(err, &apiErr) {
		log.Error("completion service error", sl.Err(err))
		w.WriteHeader(apiErr.StatusCode)
		render.JSON(w, r, response.Error(apiErr.Message))
		return
	}
	log.Error("failed to call completion service", sl.Err(err))
	w.WriteHeader(http.StatusInternalServerError)
	render.JSON(w, r, response.Error("could not get assistant response"))
}
