package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// UpsertUser сохраняет пользователя по email, если его еще нет, и возвращает строку.
// Повторный вызов для того же email не создает дубликата и не сдвигает пробный период.
func (s *Storage) UpsertUser(ctx context.Context, email string, trialEnd time.Time) (*models.User, error) {
	const op = "storage.UpsertUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	query := `INSERT INTO users (email, trial_end_date)
			  VALUES ($1, $2)
			  ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			  RETURNING uid, email, trial_end_date, is_subscribed, created_at;`
	if err := s.DB.QueryRowContext(ctx, query, email, trialEnd).Scan(
		&u.UID, &u.Email, &u.TrialEndDate, &u.IsSubscribed, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, trial_end_date, is_subscribed, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	if err := row.Scan(&u.UID, &u.Email, &u.TrialEndDate, &u.IsSubscribed, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SetSubscribed помечает пользователя как оплатившего подписку.
// Повторная установка флага безопасна.
func (s *Storage) SetSubscribed(ctx context.Context, email string) error {
	const op = "storage.SetSubscribed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscribed = TRUE
			  WHERE email = $1`
	res, err := s.DB.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
