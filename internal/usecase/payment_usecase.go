package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"marketindex/internal/domain/entities"
	"marketindex/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCustomerEmail       = errors.New("invalid customer email")
	ErrInvalidOrderID             = errors.New("invalid order_id")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

const (
	defaultPlanAmount   = 199
	defaultPlanCurrency = "INR"
)

// IPaymentUseCase encapsulates the payment-initiation flow: create the local
// record, open a payment session with the processor, and persist the session id
// the paywall front-end needs to launch checkout.

type IPaymentUseCase interface {
	CreateOrder(ctx context.Context, customerEmail string) (entities.PaymentRecord, json.RawMessage, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	gateway interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, gateway: gateway}
}

func (u *PaymentUseCase) CreateOrder(ctx context.Context, customerEmail string) (entities.PaymentRecord, json.RawMessage, error) {
	log.Printf("[payment][usecase] create-order start")

	customerEmail = strings.TrimSpace(customerEmail)
	if !isPlausibleEmail(customerEmail) {
		log.Printf("[payment][usecase] invalid customer email")
		return entities.PaymentRecord{}, nil, ErrInvalidCustomerEmail
	}
	if u.repo == nil {
		return entities.PaymentRecord{}, nil, errors.New("payment repository not configured")
	}
	if u.gateway == nil {
		return entities.PaymentRecord{}, nil, errors.New("payment gateway not configured")
	}

	now := time.Now().UTC()
	record := entities.PaymentRecord{
		OrderID:       "order_" + uuid.NewString(),
		Amount:        planAmount(),
		Currency:      planCurrency(),
		CustomerEmail: customerEmail,
		Status:        entities.PaymentStatusCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.repo.Create(ctx, record)
	if err != nil {
		log.Printf("[payment][usecase] record create failed order_id=%s err=%v", record.OrderID, err)
		return entities.PaymentRecord{}, nil, err
	}
	log.Printf("[payment][usecase] record created order_id=%s amount=%.2f currency=%s", created.OrderID, created.Amount, created.Currency)

	sessionID, processorOrderID, providerResp, err := u.gateway.CreateOrder(ctx, created)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed order_id=%s err=%v", created.OrderID, err)
		if isGatewayUnauthorized(err) {
			return entities.PaymentRecord{}, nil, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return entities.PaymentRecord{}, nil, ErrPaymentGatewayBadRequest
		}
		return entities.PaymentRecord{}, nil, err
	}
	log.Printf("[payment][usecase] payment session opened order_id=%s processor_order_id=%s", created.OrderID, processorOrderID)

	updated, err := u.repo.UpdateSessionID(ctx, created.OrderID, sessionID, time.Now().UTC())
	if err != nil {
		log.Printf("[payment][usecase] session id persist failed order_id=%s err=%v", created.OrderID, err)
		return entities.PaymentRecord{}, nil, err
	}

	log.Printf("[payment][usecase] create-order success order_id=%s payment_session_id=%s", updated.OrderID, updated.PaymentSessionID)
	return updated, providerResp, nil
}

func (u *PaymentUseCase) GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.PaymentRecord{}, ErrInvalidOrderID
	}
	if u.repo == nil {
		return entities.PaymentRecord{}, errors.New("payment repository not configured")
	}

	p, err := u.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if p.OrderID == "" {
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	return p, nil
}

func isPlausibleEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

func planAmount() float64 {
	if v := strings.TrimSpace(os.Getenv("PLAN_AMOUNT")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultPlanAmount
}

func planCurrency() string {
	if v := strings.TrimSpace(os.Getenv("PLAN_CURRENCY")); v != "" {
		return strings.ToUpper(v)
	}
	return defaultPlanCurrency
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"status\":401")
}
