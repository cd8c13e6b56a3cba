package health

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
)

// MockStorage реализует интерфейс health.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CheckDatabaseReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("ready", func(t *testing.T) {
		storage := new(MockStorage)
		storage.On("CheckDatabaseReady", mock.Anything).Return(nil)

		handler := New(logger, storage)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"status":"ok"`))
	})

	t.Run("database down", func(t *testing.T) {
		storage := new(MockStorage)
		storage.On("CheckDatabaseReady", mock.Anything).Return(errors.New("connection refused"))

		handler := New(logger, storage)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"error":"database not ready"`))
	})
}
