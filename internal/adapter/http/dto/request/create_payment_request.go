package request

// CreatePaymentRequest is the payload for the payment-initiation route. The
// purchaser is identified by email only; amount and currency are fixed server-side.

type CreatePaymentRequest struct {
	Email string `json:"email"`
}
