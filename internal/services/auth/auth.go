// Package services содержит логику бизнес-уровня для аутентификации и сессий.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/todo-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/password"
	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// Длительность пробного периода, назначаемого при первом входе.
const trialDuration = 48 * time.Hour

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// UpsertUser сохраняет пользователя по email, если его еще нет, и возвращает строку.
	UpsertUser(ctx context.Context, email string, trialEnd time.Time) (*models.User, error)

	// GetUserByEmail возвращает пользователя или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за вход по демо-учетке, выпуск и проверку сессионных токенов.
type AuthService struct {
	users        UserRepository
	jwtMaker     jwt.Maker
	demoEmail    string
	demoPassHash string
}

// NewAuthService создает новый экземпляр AuthService.
// Демо-пароль хранится только в виде bcrypt-хэша.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, demoEmail, demoPassword string) (*AuthService, error) {
	hash, err := password.GetHash(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("auth.NewAuthService: %w", err)
	}
	return &AuthService{
		users:        users,
		jwtMaker:     jwtMaker,
		demoEmail:    demoEmail,
		demoPassHash: hash,
	}, nil
}

// Authenticate проверяет учетные данные демо-входа.
//
// При совпадении создает (или берет существующую) строку пользователя по email
// и возвращает Identity. Любая другая пара учетных данных дает nil без ошибки —
// строка пользователя при этом не создается.
func (s *AuthService) Authenticate(ctx context.Context, email, rawPassword string) (*models.Identity, error) {
	if email == "" || rawPassword == "" {
		return nil, nil
	}
	if email != s.demoEmail {
		return nil, nil
	}
	if err := password.CompareHash(s.demoPassHash, rawPassword); err != nil {
		return nil, nil
	}

	user, err := s.users.UpsertUser(ctx, s.demoEmail, time.Now().UTC().Add(trialDuration))
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		UID:          user.UID,
		Email:        user.Email,
		TrialEnds:    user.TrialEndDate,
		IsSubscribed: user.IsSubscribed,
	}, nil
}

// IssueToken выпускает подписанный сессионный токен со снимком identity.
func (s *AuthService) IssueToken(identity models.Identity) (string, error) {
	return s.jwtMaker.GenerateToken(identity)
}

// ResolveSession проверяет токен и проецирует его claims обратно в Identity.
func (s *AuthService) ResolveSession(token string) (*models.Identity, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	identity := claims.Identity()
	return &identity, nil
}

// DemoLogin входит под демо-учеткой без проверки пароля.
// Используется эндпоинтом тестового входа.
func (s *AuthService) DemoLogin(ctx context.Context) (*models.Identity, error) {
	user, err := s.users.UpsertUser(ctx, s.demoEmail, time.Now().UTC().Add(trialDuration))
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		UID:          user.UID,
		Email:        user.Email,
		TrialEnds:    user.TrialEndDate,
		IsSubscribed: user.IsSubscribed,
	}, nil
}

// EnsureDemoUser создает демо-пользователя, если его еще нет.
func (s *AuthService) EnsureDemoUser(ctx context.Context) error {
	_, err := s.users.UpsertUser(ctx, s.demoEmail, time.Now().UTC().Add(trialDuration))
	return err
}
