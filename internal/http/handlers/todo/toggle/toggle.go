// Package toggle реализует HTTP-обработчик переключения статуса задачи.
//
// Handler принимает идентификатор задачи в URL и необязательное тело с полем
// completed: при его отсутствии статус инвертируется, при наличии —
// устанавливается явно. Задача другого пользователя выглядит как отсутствующая.
package toggle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
	"github.com/magabrotheeeer/todo-assistant/internal/storage/repository"
)

// Handler управляет HTTP-запросами на переключение статуса задачи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики переключения статуса.
type Service interface {
	ToggleCompleted(ctx context.Context, email, id string, completed *bool) (*models.Todo, error)
}

// Request — необязательное тело запроса с явным значением статуса.
type Request struct {
	Completed *bool `json:"completed"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключить статус задачи
// @Description Инвертирует статус выполнения задачи либо устанавливает его явно, если тело содержит поле completed.
// @Tags Todos
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор задачи"
// @Param request body Request false "Явное значение статуса"
// @Success 200 {object} map[string]any "Обновленная задача"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/todos/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.toggle"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("invalid todo id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	email, ok := r.Context().Value(middlewarectx.UserEmail).(string)
	if !ok || email == "" {
		log.Error("user email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	todo, err := h.service.ToggleCompleted(r.Context(), email, id, req.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Info("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		if errors.Is(err, repository.ErrTodoNotFound) {
			log.Info("todo not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("todo not found"))
			return
		}
		log.Error("failed to toggle todo", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle todo"))
		return
	}

	log.Info("todo toggled", slog.String("id", todo.ID), slog.Bool("completed", todo.Completed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"todo": todo,
	}))
}
