package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"marketindex/internal/domain/entities"
	mock_interfaces "marketindex/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_CreateOrder_Validations(t *testing.T) {
	t.Run("empty email", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil)
		_, _, err := uc.CreateOrder(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidCustomerEmail) {
			t.Fatalf("expected ErrInvalidCustomerEmail, got %v", err)
		}
	})

	t.Run("email without at sign", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil)
		_, _, err := uc.CreateOrder(context.Background(), "not-an-email")
		if !errors.Is(err, ErrInvalidCustomerEmail) {
			t.Fatalf("expected ErrInvalidCustomerEmail, got %v", err)
		}
	})

	t.Run("repository not configured", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil)
		_, _, err := uc.CreateOrder(context.Background(), "x@test.com")
		if err == nil || err.Error() != "payment repository not configured" {
			t.Fatalf("expected repository not configured error, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil)

		_, _, err := uc.CreateOrder(context.Background(), "x@test.com")
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})
}

func TestPaymentUseCase_CreateOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, gateway)

		var createdRecord entities.PaymentRecord
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
				createdRecord = p
				return p, nil
			})
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("sess-1", "cf-1", json.RawMessage(`{"payment_session_id":"sess-1"}`), nil)
		repo.EXPECT().UpdateSessionID(gomock.Any(), gomock.Any(), "sess-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, orderID, sessionID string, _ interface{}) (entities.PaymentRecord, error) {
				createdRecord.PaymentSessionID = sessionID
				return createdRecord, nil
			})

		record, providerResp, err := uc.CreateOrder(context.Background(), "x@test.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(record.OrderID, "order_") {
			t.Fatalf("expected order_ prefixed id, got %s", record.OrderID)
		}
		if record.Status != entities.PaymentStatusCreated {
			t.Fatalf("expected created status, got %s", record.Status)
		}
		if record.Amount != defaultPlanAmount || record.Currency != defaultPlanCurrency {
			t.Fatalf("unexpected plan: %+v", record)
		}
		if record.PaymentSessionID != "sess-1" {
			t.Fatalf("expected session id persisted, got %+v", record)
		}
		if len(providerResp) == 0 {
			t.Fatalf("expected provider session payload passthrough")
		}
	})

	t.Run("plan overrides from env", func(t *testing.T) {
		t.Setenv("PLAN_AMOUNT", "499.50")
		t.Setenv("PLAN_CURRENCY", "usd")

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, gateway)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
				if p.Amount != 499.50 || p.Currency != "USD" {
					t.Fatalf("unexpected plan: %+v", p)
				}
				return p, nil
			})
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("sess-1", "cf-1", nil, nil)
		repo.EXPECT().UpdateSessionID(gomock.Any(), gomock.Any(), "sess-1", gomock.Any()).Return(entities.PaymentRecord{OrderID: "order_x", PaymentSessionID: "sess-1"}, nil)

		if _, _, err := uc.CreateOrder(context.Background(), "x@test.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("record create failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, gateway)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("db"))

		_, _, err := uc.CreateOrder(context.Background(), "x@test.com")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, gateway)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) { return p, nil })
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(`cashfree create order: "status":401 body={}`))

		_, _, err := uc.CreateOrder(context.Background(), "x@test.com")
		if !errors.Is(err, ErrPaymentGatewayUnauthorized) {
			t.Fatalf("expected ErrPaymentGatewayUnauthorized, got %v", err)
		}
	})

	t.Run("gateway bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, gateway)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) { return p, nil })
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(`cashfree create order: "status":400 body={}`))

		_, _, err := uc.CreateOrder(context.Background(), "x@test.com")
		if !errors.Is(err, ErrPaymentGatewayBadRequest) {
			t.Fatalf("expected ErrPaymentGatewayBadRequest, got %v", err)
		}
	})
}

func TestPaymentUseCase_GetByOrderID(t *testing.T) {
	t.Run("empty order id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil)
		_, err := uc.GetByOrderID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil)

		repo.EXPECT().GetByOrderID(gomock.Any(), "order_missing").Return(entities.PaymentRecord{}, nil)

		_, err := uc.GetByOrderID(context.Background(), "order_missing")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil)

		repo.EXPECT().GetByOrderID(gomock.Any(), "order_1").Return(entities.PaymentRecord{OrderID: "order_1", Status: entities.PaymentStatusSuccess}, nil)

		p, err := uc.GetByOrderID(context.Background(), " order_1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.OrderID != "order_1" {
			t.Fatalf("unexpected record: %+v", p)
		}
	})
}
