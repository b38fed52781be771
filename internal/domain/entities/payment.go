package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus mirrors the payment processor's order-status vocabulary, lower-cased.
//
// Unknown processor statuses are stored as-is so a processor-side vocabulary change
// does not drop notifications; the constants below cover the lifecycle this service
// reasons about.

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsTerminal reports whether the status ends the payment lifecycle. Once a record
// is terminal, a stale non-terminal webhook delivery must not downgrade it.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// ProcessorOrderID is the processor's own identifier for an order. The processor
// has encoded cf_order_id as both a JSON number and a JSON string across API
// versions, so both wire shapes must decode.
type ProcessorOrderID string

func (id *ProcessorOrderID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProcessorOrderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProcessorOrderID(n.String())
	return nil
}

func (id ProcessorOrderID) String() string { return string(id) }

// PaymentRecord is the payment entity persisted by the billing side of the service.
//
// Storage model (DynamoDB):
//   - PK: order_id
//
// order_id is the sole join key between this record and the processor's webhook
// notifications; it is immutable once created.

type PaymentRecord struct {
	OrderID          string        `json:"order_id"`
	Amount           float64       `json:"amount"`
	Currency         string        `json:"currency"`
	CustomerEmail    string        `json:"customer_email"`
	Status           PaymentStatus `json:"status"`
	PaymentSessionID string        `json:"payment_session_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
