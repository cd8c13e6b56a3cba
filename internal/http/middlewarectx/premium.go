package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-assistant/internal/http/response"
	"github.com/magabrotheeeer/todo-assistant/internal/lib/sl"
)

// PremiumService определяет интерфейс для проверки премиум-доступа пользователя.
type PremiumService interface {
	IsPremium(ctx context.Context, email string) (bool, error)
}

// PremiumStatusMiddleware создает middleware для проверки премиум-доступа пользователя.
// Статус подписки перечитывается из хранилища при каждом запросе, чтобы
// оплата и окончание пробного периода действовали без перевыпуска токена.
func PremiumStatusMiddleware(log *slog.Logger, billing PremiumService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := r.Context().Value(UserEmail).(string)
			if !ok || email == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			premium, err := billing.IsPremium(r.Context(), email)
			if err != nil {
				log.Error("failed to get premium status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !premium {
				log.Info("premium access denied", slog.String("email", email))
				render.Status(r, http.StatusPaymentRequired)
				render.JSON(w, r, response.Error("subscription required, visit /subscribe"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
