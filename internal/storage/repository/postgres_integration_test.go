package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

func TestStorage_UpsertUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	trialEnd := time.Now().Add(48 * time.Hour).UTC()

	first, err := storage.UpsertUser(ctx, "test@example.com", trialEnd)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", first.Email)
	assert.False(t, first.IsSubscribed)
	assert.WithinDuration(t, trialEnd, first.TrialEndDate, time.Second)

	// Повторный вход не создает дубликата и не сдвигает пробный период
	second, err := storage.UpsertUser(ctx, "test@example.com", trialEnd.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.UID, second.UID)
	assert.WithinDuration(t, first.TrialEndDate, second.TrialEndDate, time.Second)

	var count int
	err = storage.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, "test@example.com").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trialEnd := time.Now().Add(48 * time.Hour).UTC()
	uid := factory.CreateUser(t, "test@example.com", trialEnd, false)

	got, err := storage.GetUserByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, got.UID)
	assert.Equal(t, "test@example.com", got.Email)

	_, err = storage.GetUserByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_SetSubscribed(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "test@example.com", time.Now().Add(-time.Hour), false)

	require.NoError(t, storage.SetSubscribed(context.Background(), "test@example.com"))
	// Повторная установка флага безопасна
	require.NoError(t, storage.SetSubscribed(context.Background(), "test@example.com"))

	got, err := storage.GetUserByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.True(t, got.IsSubscribed)

	err = storage.SetSubscribed(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_CreateAndListTodos(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "test@example.com", time.Now().Add(48*time.Hour), false)

	created, err := storage.CreateTodo(context.Background(), models.Todo{
		UserUID:  uid,
		Text:     "Buy milk",
		Category: models.CategoryShopping,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.Equal(t, models.CategoryShopping, created.Category)

	list, err := storage.ListTodos(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Чужой список задач пуст
	otherUID := factory.CreateUser(t, "other@example.com", time.Now().Add(48*time.Hour), false)
	otherList, err := storage.ListTodos(context.Background(), otherUID)
	require.NoError(t, err)
	assert.Empty(t, otherList)
}

func TestStorage_UpdateTodoCompleted(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "test@example.com", time.Now().Add(48*time.Hour), false)
	id := factory.CreateTodo(t, uid, "Buy milk", models.CategoryShopping, false)

	// Без тела запроса флаг инвертируется
	toggled, err := storage.UpdateTodoCompleted(context.Background(), id, uid, nil)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// Двойное переключение возвращает исходное значение
	toggled, err = storage.UpdateTodoCompleted(context.Background(), id, uid, nil)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	// Явная установка значения
	completed := true
	set, err := storage.UpdateTodoCompleted(context.Background(), id, uid, &completed)
	require.NoError(t, err)
	assert.True(t, set.Completed)

	// Чужая задача недоступна для изменения
	strangerUID := factory.CreateUser(t, "other@example.com", time.Now().Add(48*time.Hour), false)
	_, err = storage.UpdateTodoCompleted(context.Background(), id, strangerUID, nil)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	_, err = storage.UpdateTodoCompleted(context.Background(), uuid.New().String(), uid, nil)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestStorage_RemoveTodo(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "test@example.com", time.Now().Add(48*time.Hour), false)
	id := factory.CreateTodo(t, uid, "Buy milk", models.CategoryShopping, false)

	// Чужая задача не удаляется
	strangerUID := factory.CreateUser(t, "other@example.com", time.Now().Add(48*time.Hour), false)
	affected, err := storage.RemoveTodo(context.Background(), id, strangerUID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = storage.RemoveTodo(context.Background(), id, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	list, err := storage.ListTodos(context.Background(), uid)
	require.NoError(t, err)
	assert.Empty(t, list)
}
