// Package services содержит бизнес-логику подписки: создание платёжной
// сессии, подтверждение оплаты и проверка премиум-доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/todo-assistant/internal/models"
	"github.com/magabrotheeeer/todo-assistant/internal/paymentprovider"
)

// ErrPaymentNotConfirmed возвращается, когда платёжная сессия существует,
// но оплата по ней не завершена.
var ErrPaymentNotConfirmed = errors.New("payment not confirmed")

// PaymentClient описывает клиент платёжного провайдера.
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, params paymentprovider.CreateCheckoutSessionParams) (*paymentprovider.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error)
}

// UserRepository описывает методы работы с пользователями.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetSubscribed(ctx context.Context, email string) error
}

// BillingService управляет статусом подписки через платёжного провайдера.
type BillingService struct {
	payments      PaymentClient
	users         UserRepository
	priceID       string
	publicBaseURL string
}

// NewBillingService создает новый экземпляр BillingService.
func NewBillingService(payments PaymentClient, users UserRepository, priceID, publicBaseURL string) *BillingService {
	return &BillingService{
		payments:      payments,
		users:         users,
		priceID:       priceID,
		publicBaseURL: publicBaseURL,
	}
}

// CreateCheckout создает платёжную сессию и возвращает URL
// страницы оплаты у провайдера.
func (s *BillingService) CreateCheckout(ctx context.Context, email string) (string, error) {
	const op = "services.billing.CreateCheckout"

	session, err := s.payments.CreateCheckoutSession(ctx, paymentprovider.CreateCheckoutSessionParams{
		CustomerEmail: email,
		PriceID:       s.priceID,
		SuccessURL:    s.publicBaseURL + "/?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.publicBaseURL + "/subscribe",
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return session.URL, nil
}

// ConfirmSubscription проверяет у провайдера статус платёжной сессии и,
// если сессия оплачена, включает подписку пользователю. Статус всегда
// перечитывается у провайдера, идентификатору сессии с клиента не доверяем.
func (s *BillingService) ConfirmSubscription(ctx context.Context, email, sessionID string) error {
	const op = "services.billing.ConfirmSubscription"

	session, err := s.payments.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if session.PaymentStatus != paymentprovider.PaymentStatusPaid {
		return fmt.Errorf("%s: %w", op, ErrPaymentNotConfirmed)
	}
	if err := s.users.SetSubscribed(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsPremium сообщает, имеет ли пользователь доступ к премиум-функциям:
// активная подписка либо незакончившийся пробный период. Статус читается
// из хранилища, а не из токена, чтобы не ждать перевыпуска токена.
func (s *BillingService) IsPremium(ctx context.Context, email string) (bool, error) {
	const op = "services.billing.IsPremium"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if user.IsSubscribed {
		return true, nil
	}
	return time.Now().Before(user.TrialEndDate), nil
}
