package interfaces

import (
	"context"
	"errors"
	"time"

	"marketindex/internal/domain/entities"
)

// ErrRecordNotFound is returned by repository update operations when no record
// matches the given order_id. Webhook reconciliation must never upsert.
var ErrRecordNotFound = errors.New("payment record not found")

// IPaymentRepository abstracts DynamoDB persistence for PaymentRecord.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.PaymentStatus, paymentSessionID string, updatedAt time.Time) (entities.PaymentRecord, error)
	UpdateSessionID(ctx context.Context, orderID, paymentSessionID string, updatedAt time.Time) (entities.PaymentRecord, error)
}
