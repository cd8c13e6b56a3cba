package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
	"github.com/magabrotheeeer/todo-assistant/internal/storage/repository"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, email string, req models.DummyTodo) (*models.Todo, error) {
	args := m.Called(ctx, email, req)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		email          string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное создание",
			email: "test@example.com",
			body:  `{"text":"buy milk","category":"shopping"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "test@example.com",
					models.DummyTodo{Text: "buy milk", Category: models.CategoryShopping}).
					Return(&models.Todo{ID: "id-1", Text: "buy milk", Category: models.CategoryShopping}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"id-1"`,
		},
		{
			name:  "без категории",
			email: "test@example.com",
			body:  `{"text":"call mom"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "test@example.com",
					models.DummyTodo{Text: "call mom"}).
					Return(&models.Todo{ID: "id-2", Text: "call mom", Category: models.CategoryOther}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"category":"other"`,
		},
		{
			name:           "пустой текст",
			email:          "test@example.com",
			body:           `{"text":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Text is a required field`,
		},
		{
			name:           "неизвестная категория",
			email:          "test@example.com",
			body:           `{"text":"buy milk","category":"hobby"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Category must be one of`,
		},
		{
			name:           "некорректный json",
			email:          "test@example.com",
			body:           `{"text":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "нет пользователя в контексте",
			email:          "",
			body:           `{"text":"buy milk"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:  "пользователь не найден",
			email: "ghost@example.com",
			body:  `{"text":"buy milk"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "ghost@example.com", mock.Anything).
					Return(nil, repository.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"user not found"`,
		},
		{
			name:  "ошибка сервиса",
			email: "test@example.com",
			body:  `{"text":"buy milk"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "test@example.com", mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create todo"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(tt.body))
			if tt.email != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserEmail, tt.email)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
