package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"marketindex/internal/domain/entities"
	"marketindex/internal/usecase/interfaces"
)

var ErrMissingCashfreeCredentials = errors.New("missing CASHFREE_APP_ID or CASHFREE_SECRET_KEY")
var ErrCashfreeGatewayNotConfigured = errors.New("cashfree gateway not configured")

const (
	defaultCashfreeBaseURL = "https://sandbox.cashfree.com"
	cashfreeAPIVersion     = "2022-09-01"
	gatewayRequestTimeout  = 10 * time.Second
)

// CashfreeGateway opens payment sessions through the processor's order API.
//
// The processor has no Go SDK; this speaks its REST contract directly. Client
// credentials travel in headers and are never logged.

type CashfreeGateway struct {
	baseURL    string
	appID      string
	secretKey  string
	returnURL  string
	httpClient *http.Client
	mockMode   bool
}

var _ interfaces.IPaymentGateway = (*CashfreeGateway)(nil)

func NewCashfreeGateway(appID, secretKey string) (*CashfreeGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &CashfreeGateway{mockMode: true}, nil
	}

	if appID == "" || secretKey == "" {
		log.Printf("[payment][gateway] missing cashfree credentials")
		return nil, ErrMissingCashfreeCredentials
	}

	baseURL := strings.TrimRight(getenvDefault("CASHFREE_BASE_URL", defaultCashfreeBaseURL), "/")
	log.Printf("[payment][gateway] cashfree client initialized base_url=%s", baseURL)

	return &CashfreeGateway{
		baseURL:    baseURL,
		appID:      appID,
		secretKey:  secretKey,
		returnURL:  os.Getenv("PAYMENT_RETURN_URL"),
		httpClient: &http.Client{Timeout: gatewayRequestTimeout},
	}, nil
}

type cashfreeOrderRequest struct {
	OrderID         string                  `json:"order_id"`
	OrderAmount     float64                 `json:"order_amount"`
	OrderCurrency   string                  `json:"order_currency"`
	CustomerDetails cashfreeCustomerDetails `json:"customer_details"`
	OrderMeta       map[string]string       `json:"order_meta,omitempty"`
}

type cashfreeCustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
}

type cashfreeOrderResponse struct {
	CFOrderID        entities.ProcessorOrderID `json:"cf_order_id"`
	OrderID          string                    `json:"order_id"`
	OrderStatus      string                    `json:"order_status"`
	PaymentSessionID string                    `json:"payment_session_id"`
}

func (g *CashfreeGateway) CreateOrder(ctx context.Context, record entities.PaymentRecord) (string, string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock create start order_id=%s", record.OrderID)

		sessionID := "session_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		resp := map[string]any{
			"cf_order_id":        time.Now().UTC().UnixNano(),
			"order_id":           record.OrderID,
			"order_status":       "ACTIVE",
			"order_amount":       record.Amount,
			"order_currency":     record.Currency,
			"payment_session_id": sessionID,
		}
		b, err := json.Marshal(resp)
		if err != nil {
			return "", "", nil, err
		}

		log.Printf("[payment][gateway] mock create success order_id=%s payment_session_id=%s", record.OrderID, sessionID)
		return sessionID, fmt.Sprintf("%v", resp["cf_order_id"]), b, nil
	}

	if g == nil || g.httpClient == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", "", nil, ErrCashfreeGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create start order_id=%s amount=%.2f currency=%s", record.OrderID, record.Amount, record.Currency)

	reqBody := cashfreeOrderRequest{
		OrderID:       record.OrderID,
		OrderAmount:   record.Amount,
		OrderCurrency: record.Currency,
		CustomerDetails: cashfreeCustomerDetails{
			CustomerID:    record.CustomerEmail,
			CustomerEmail: record.CustomerEmail,
		},
	}
	if g.returnURL != "" {
		reqBody.OrderMeta = map[string]string{"return_url": g.returnURL}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/pg/orders", bytes.NewReader(payload))
	if err != nil {
		return "", "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", cashfreeAPIVersion)
	req.Header.Set("x-client-id", g.appID)
	req.Header.Set("x-client-secret", g.secretKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][gateway] create request failed order_id=%s err=%v", record.OrderID, err)
		return "", "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[payment][gateway] create rejected order_id=%s status=%d", record.OrderID, resp.StatusCode)
		return "", "", nil, fmt.Errorf("cashfree create order: \"status\":%d body=%s", resp.StatusCode, string(body))
	}

	var session cashfreeOrderResponse
	if err := json.Unmarshal(body, &session); err != nil {
		log.Printf("[payment][gateway] response unmarshal failed order_id=%s err=%v", record.OrderID, err)
		return "", "", nil, err
	}
	if session.PaymentSessionID == "" {
		return "", "", nil, fmt.Errorf("cashfree create order: response missing payment_session_id")
	}
	log.Printf("[payment][gateway] create success order_id=%s payment_session_id=%s order_status=%s", record.OrderID, session.PaymentSessionID, session.OrderStatus)

	return session.PaymentSessionID, session.CFOrderID.String(), body, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "CASHFREE_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
