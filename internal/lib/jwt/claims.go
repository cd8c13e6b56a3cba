// Package jwt реализует генерацию и парсинг сессионных JWT токенов.
//
// SessionClaims расширяет стандартные claims JWT данными сессии:
// идентификатор пользователя, email, срок пробного периода и флаг подписки.
// Claims — кешированный снимок строки пользователя на момент входа;
// авторитетное состояние живёт в хранилище.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/todo-assistant/internal/models"
)

// SessionClaims описывает данные сессии, хранящиеся в JWT.
type SessionClaims struct {
	UserUID              string    `json:"uid"`           // Уникальный идентификатор пользователя
	Email                string    `json:"email"`         // Электронная почта
	TrialEnds            time.Time `json:"trial_ends"`    // Срок пробного периода на момент входа
	IsSubscribed         bool      `json:"is_subscribed"` // Флаг подписки на момент входа
	jwt.RegisteredClaims           // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Identity проецирует claims обратно в Identity для обработчиков.
func (c *SessionClaims) Identity() models.Identity {
	return models.Identity{
		UID:          c.UserUID,
		Email:        c.Email,
		TrialEnds:    c.TrialEnds,
		IsSubscribed: c.IsSubscribed,
	}
}

// GenerateToken создает JWT токен с claims из identity, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(identity models.Identity) (string, error) {
	claims := SessionClaims{
		UserUID:      identity.UID,
		Email:        identity.Email,
		TrialEnds:    identity.TrialEnds,
		IsSubscribed: identity.IsSubscribed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает SessionClaims с данными сессии, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
