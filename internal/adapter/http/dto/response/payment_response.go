package response

import (
	"encoding/json"
	"time"

	"marketindex/internal/domain/entities"
)

type PaymentResponse struct {
	OrderID          string    `json:"order_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	CustomerEmail    string    `json:"customer_email"`
	Status           string    `json:"status"`
	PaymentSessionID string    `json:"payment_session_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromPaymentRecord(p entities.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		CustomerEmail:    p.CustomerEmail,
		Status:           string(p.Status),
		PaymentSessionID: p.PaymentSessionID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PaymentSessionResponse is returned by the payment-initiation route. The
// provider session payload is passed through as-is so the checkout front-end can
// consume whatever the processor returned.
type PaymentSessionResponse struct {
	OrderID          string          `json:"order_id"`
	PaymentSessionID string          `json:"payment_session_id"`
	Amount           float64         `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	ProviderSession  json.RawMessage `json:"provider_session,omitempty"`
}

func FromPaymentSession(p entities.PaymentRecord, providerSession json.RawMessage) PaymentSessionResponse {
	return PaymentSessionResponse{
		OrderID:          p.OrderID,
		PaymentSessionID: p.PaymentSessionID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		ProviderSession:  providerSession,
	}
}
