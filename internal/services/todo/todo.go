// Package services содержит бизнес-логику для управления задачами и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// Время жизни кеша списка задач пользователя.
const todosCacheTTL = 5 * time.Minute

// TodoRepository определяет методы для работы с задачами в хранилище.
type TodoRepository interface {
	// CreateTodo добавляет новую задачу и возвращает её с присвоенным ID.
	CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error)
	// ListTodos возвращает все задачи пользователя в порядке создания.
	ListTodos(ctx context.Context, userUID string) ([]*models.Todo, error)
	// UpdateTodoCompleted устанавливает или инвертирует флаг выполнения задачи.
	UpdateTodoCompleted(ctx context.Context, id, userUID string, completed *bool) (*models.Todo, error)
	// RemoveTodo удаляет задачу пользователя и возвращает количество удалённых строк.
	RemoveTodo(ctx context.Context, id, userUID string) (int64, error)
}

// UserRepository определяет метод разрешения email сессии в строку пользователя.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// TodoService реализует бизнес-логику работы с задачами, включая кеширование.
// Все операции ограничены задачами пользователя, разрешённого из email сессии.
type TodoService struct {
	repo  TodoRepository
	users UserRepository
	cache Cache
	log   *slog.Logger
}

// NewTodoService создает новый экземпляр TodoService.
func NewTodoService(repo TodoRepository, users UserRepository, cache Cache, log *slog.Logger) *TodoService {
	return &TodoService{
		repo:  repo,
		users: users,
		cache: cache,
		log:   log,
	}
}

func todosCacheKey(userUID string) string {
	return fmt.Sprintf("todos:%s", userUID)
}

// List возвращает все задачи пользователя, используя кеш или репозиторий.
func (s *TodoService) List(ctx context.Context, email string) ([]*models.Todo, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	cacheKey := todosCacheKey(user.UID)
	var cached []*models.Todo
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read todos from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	todos, err := s.repo.ListTodos(ctx, user.UID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, todos, todosCacheTTL); err != nil {
		s.log.Warn("failed to cache todos", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return todos, nil
}

// Create создает новую задачу пользователя и инвалидирует кеш его списка.
// Пустая категория означает "other".
func (s *TodoService) Create(ctx context.Context, email string, req models.DummyTodo) (*models.Todo, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}

	todo := models.Todo{
		UserUID:     user.UID,
		Text:        req.Text,
		Category:    category,
		Priority:    req.Priority,
		Description: req.Description,
	}
	created, err := s.repo.CreateTodo(ctx, todo)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new todo", slog.String("id", created.ID))

	if err := s.cache.Invalidate(ctx, todosCacheKey(user.UID)); err != nil {
		s.log.Warn("failed to invalidate todos cache", slog.Any("err", err))
	}
	return created, nil
}

// ToggleCompleted устанавливает флаг выполнения задачи; при completed == nil
// флаг инвертируется. Чужая задача недоступна: хранилище вернет ErrTodoNotFound.
func (s *TodoService) ToggleCompleted(ctx context.Context, email, id string, completed *bool) (*models.Todo, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTodoCompleted(ctx, id, user.UID, completed)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, todosCacheKey(user.UID)); err != nil {
		s.log.Warn("failed to invalidate todos cache", slog.Any("err", err))
	}
	return updated, nil
}

// Remove удаляет задачу пользователя и возвращает количество удалённых строк.
func (s *TodoService) Remove(ctx context.Context, email, id string) (int64, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.RemoveTodo(ctx, id, user.UID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(ctx, todosCacheKey(user.UID)); err != nil {
		s.log.Warn("failed to invalidate todos cache", slog.Any("err", err))
	}
	return count, nil
}
