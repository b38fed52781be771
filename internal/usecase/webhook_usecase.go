package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"marketindex/internal/domain/entities"
	"marketindex/internal/usecase/interfaces"
)

var (
	ErrMissingCredentials = errors.New("missing webhook signature or timestamp")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrMalformedPayload   = errors.New("malformed webhook payload")
	ErrPaymentNotFound    = errors.New("payment record not found")
)

// IWebhookUseCase reconciles payment state from processor webhook notifications.
//
// Contract:
//   - The raw body is authenticated (HMAC over rawBody||timestamp) before parsing.
//   - The update is keyed by order_id; a missing record is an error, never an upsert.
//   - Deliveries are at-least-once; re-applying the same status is a no-op in effect.

type IWebhookUseCase interface {
	ProcessNotification(ctx context.Context, rawBody []byte, signature, timestamp string) (entities.PaymentRecord, error)
}

type WebhookUseCase struct {
	repo     interfaces.IPaymentRepository
	verifier interfaces.ISignatureVerifier
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(repo interfaces.IPaymentRepository, verifier interfaces.ISignatureVerifier) *WebhookUseCase {
	return &WebhookUseCase{repo: repo, verifier: verifier}
}

type webhookOrder struct {
	OrderID          string                    `json:"order_id"`
	OrderStatus      string                    `json:"order_status"`
	CFOrderID        entities.ProcessorOrderID `json:"cf_order_id"`
	PaymentSessionID string                    `json:"payment_session_id"`
}

// webhookEnvelope accepts both payload nestings the processor has shipped across
// API versions: a top-level order object and a data.order variant.
type webhookEnvelope struct {
	Order *webhookOrder `json:"order"`
	Data  struct {
		Order *webhookOrder `json:"order"`
	} `json:"data"`
}

func (u *WebhookUseCase) ProcessNotification(ctx context.Context, rawBody []byte, signature, timestamp string) (entities.PaymentRecord, error) {
	log.Printf("[webhook][usecase] notification start body_len=%d", len(rawBody))

	if strings.TrimSpace(signature) == "" || strings.TrimSpace(timestamp) == "" {
		log.Printf("[webhook][usecase] missing credentials")
		return entities.PaymentRecord{}, ErrMissingCredentials
	}
	if u.verifier == nil {
		log.Printf("[webhook][usecase] verifier not configured")
		return entities.PaymentRecord{}, errors.New("signature verifier not configured")
	}
	if u.repo == nil {
		log.Printf("[webhook][usecase] repository not configured")
		return entities.PaymentRecord{}, errors.New("payment repository not configured")
	}

	if !u.verifier.Verify(rawBody, timestamp, signature) {
		log.Printf("[webhook][usecase] signature mismatch")
		return entities.PaymentRecord{}, ErrInvalidSignature
	}

	order, err := parseWebhookOrder(rawBody)
	if err != nil {
		log.Printf("[webhook][usecase] malformed payload err=%v", err)
		return entities.PaymentRecord{}, err
	}

	status := entities.PaymentStatus(strings.ToLower(order.OrderStatus))
	log.Printf("[webhook][usecase] notification verified order_id=%s status=%s", order.OrderID, status)

	current, err := u.repo.GetByOrderID(ctx, order.OrderID)
	if err != nil {
		log.Printf("[webhook][usecase] record load failed order_id=%s err=%v", order.OrderID, err)
		return entities.PaymentRecord{}, err
	}
	if current.OrderID == "" {
		log.Printf("[webhook][usecase] record not found order_id=%s", order.OrderID)
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}

	// Delivery order is not guaranteed; once a terminal status landed, a late
	// non-terminal notification must not downgrade it. Acknowledge and skip.
	if current.Status.IsTerminal() && !status.IsTerminal() {
		log.Printf("[webhook][usecase] stale notification skipped order_id=%s current=%s incoming=%s", order.OrderID, current.Status, status)
		return current, nil
	}

	sessionID := order.PaymentSessionID
	if sessionID == "" && order.CFOrderID.String() != "" {
		sessionID = order.CFOrderID.String()
	}

	updated, err := u.repo.UpdateStatus(ctx, order.OrderID, status, sessionID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			log.Printf("[webhook][usecase] record vanished during update order_id=%s", order.OrderID)
			return entities.PaymentRecord{}, ErrPaymentNotFound
		}
		log.Printf("[webhook][usecase] record update failed order_id=%s err=%v", order.OrderID, err)
		return entities.PaymentRecord{}, err
	}

	log.Printf("[webhook][usecase] notification applied order_id=%s status=%s", updated.OrderID, updated.Status)
	return updated, nil
}

func parseWebhookOrder(rawBody []byte) (webhookOrder, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return webhookOrder{}, ErrMalformedPayload
	}

	order := envelope.Order
	if order == nil {
		order = envelope.Data.Order
	}
	if order == nil || strings.TrimSpace(order.OrderID) == "" || strings.TrimSpace(order.OrderStatus) == "" {
		return webhookOrder{}, ErrMalformedPayload
	}
	return *order, nil
}
