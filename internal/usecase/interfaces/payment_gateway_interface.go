package interfaces

import (
	"context"
	"encoding/json"

	"marketindex/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment processor's order API.
//
// The service uses it to open a payment session for a freshly created record and
// keeps the provider response payload for traceability.
type IPaymentGateway interface {
	CreateOrder(ctx context.Context, record entities.PaymentRecord) (paymentSessionID string, processorOrderID string, providerResponse json.RawMessage, err error)
}
