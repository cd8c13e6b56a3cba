// Package middlewarectx содержит HTTP middleware для проверки сессионного
// токена, премиум-доступа и ограничения частоты запросов.
//
// SessionMiddleware проверяет наличие и валидность токена сессии в заголовке
// Authorization или cookie, и в случае успеха добавляет в контекст email
// и идентификатор пользователя для дальнейшего использования в обработчиках.
//
// Запросам браузера без валидной сессии возвращается редирект на страницу
// входа, запросам API — HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserEmail — ключ для email пользователя в контексте
	UserEmail Key = "user_email"
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
)

// SessionCookieName — имя cookie, в которой хранится токен сессии.
const SessionCookieName = "session"

// sessionToken извлекает токен из заголовка Authorization либо из cookie.
func sessionToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// wantsHTML сообщает, ожидает ли клиент HTML-страницу в ответ.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// SessionMiddleware возвращает HTTP middleware, который проверяет токен сессии.
//
// Если токен валиден, добавляет email и идентификатор пользователя в контекст
// запроса. Браузерные запросы без валидного токена перенаправляются на
// /auth/signin, остальные получают HTTP статус 401 Unauthorized.
func SessionMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			deny := func(msg string) {
				if wantsHTML(r) {
					http.Redirect(w, r, "/auth/signin", http.StatusSeeOther)
					return
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(msg))
			}

			tokenStr := sessionToken(r)
			if tokenStr == "" {
				log.Error("missing session token")
				deny("missing session token")
				return
			}

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				deny("invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserEmail, claims.Email)
			ctx = context.WithValue(ctx, UserUID, claims.UserUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
