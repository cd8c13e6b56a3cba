package paymentprovider

// Статусы оплаты checkout-сессии.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// CheckoutSession — сессия hosted checkout платёжного провайдера.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	CustomerEmail string `json:"customer_email"`
}

// CreateCheckoutSessionParams — параметры создания checkout-сессии подписки.
type CreateCheckoutSessionParams struct {
	CustomerEmail string // Почта покупателя
	PriceID       string // Идентификатор тарифа у провайдера
	SuccessURL    string // Возврат после успешной оплаты
	CancelURL     string // Возврат при отмене
}

// apiErrorBody — тело ошибки платёжного провайдера.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
