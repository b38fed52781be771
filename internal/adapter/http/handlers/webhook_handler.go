package handlers

import (
	"errors"
	"log"
	"net/http"

	response "marketindex/internal/adapter/http/dto/response"
	"marketindex/internal/usecase"
	"marketindex/pkg"

	"github.com/gin-gonic/gin"
)

// Processor webhook headers. The timestamp is concatenated with the raw body
// before hashing, so both must arrive for verification to be possible.
const (
	HeaderWebhookSignature = "x-webhook-signature"
	HeaderWebhookTimestamp = "x-webhook-timestamp"
)

// WebhookHandler receives asynchronous payment-status notifications from the
// payment processor.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleNotification authenticates and applies one notification. The body is read
// raw; it is never parsed before the signature check passes. Failures return 4xx
// so the processor redelivers.
func (h *WebhookHandler) HandleNotification(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	signature := c.GetHeader(HeaderWebhookSignature)
	timestamp := c.GetHeader(HeaderWebhookTimestamp)

	record, err := h.usecase.ProcessNotification(c.Request.Context(), rawBody, signature, timestamp)
	if err != nil {
		log.Printf("[webhook][handler] notification rejected err=%v", err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[webhook][handler] notification processed order_id=%s status=%s", record.OrderID, record.Status)
	c.JSON(http.StatusOK, response.WebhookAckResponse{Message: "Webhook processed successfully"})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingCredentials):
		return pkg.NewDomainErrorSimple("MISSING_CREDENTIALS", "Missing webhook signature or timestamp", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMalformedPayload):
		return pkg.NewDomainErrorSimple("MALFORMED_PAYLOAD", "Malformed webhook payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment record not found", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
