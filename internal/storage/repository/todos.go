package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// CreateTodo сохраняет новую задачу и возвращает её вместе с присвоенным ID.
func (s *Storage) CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error) {
	const op = "storage.CreateTodo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	created := &models.Todo{}
	query := `INSERT INTO todos (user_uid, text, category, priority, description)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_uid, text, category, completed, priority, description, created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		todo.UserUID, todo.Text, todo.Category, todo.Priority, todo.Description).Scan(
		&created.ID, &created.UserUID, &created.Text, &created.Category,
		&created.Completed, &created.Priority, &created.Description, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListTodos возвращает все задачи пользователя в порядке создания.
func (s *Storage) ListTodos(ctx context.Context, userUID string) ([]*models.Todo, error) {
	const op = "storage.ListTodos"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, text, category, completed, priority, description, created_at
			  FROM todos
			  WHERE user_uid = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err = rows.Scan(&t.ID, &t.UserUID, &t.Text, &t.Category,
			&t.Completed, &t.Priority, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTodoCompleted устанавливает флаг выполнения задачи.
// При completed == nil флаг инвертируется. Условие по user_uid гарантирует,
// что чужую задачу изменить нельзя: для неё возвращается ErrTodoNotFound.
func (s *Storage) UpdateTodoCompleted(ctx context.Context, id, userUID string, completed *bool) (*models.Todo, error) {
	const op = "storage.UpdateTodoCompleted"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	updated := &models.Todo{}
	query := `UPDATE todos
			  SET completed = COALESCE($3, NOT completed)
			  WHERE id = $1 AND user_uid = $2
			  RETURNING id, user_uid, text, category, completed, priority, description, created_at;`
	if err := s.DB.QueryRowContext(ctx, query, id, userUID, completed).Scan(
		&updated.ID, &updated.UserUID, &updated.Text, &updated.Category,
		&updated.Completed, &updated.Priority, &updated.Description, &updated.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTodoNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveTodo удаляет задачу пользователя и возвращает количество удалённых строк.
// Чужая задача не удаляется: условие по user_uid даст ноль строк.
func (s *Storage) RemoveTodo(ctx context.Context, id, userUID string) (int64, error) {
	const op = "storage.RemoveTodo"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM todos
			  WHERE id = $1 AND user_uid = $2`
	res, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
