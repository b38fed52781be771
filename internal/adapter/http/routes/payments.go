package routes

import (
	"marketindex/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathWebhooks = "/webhooks"
	PathAnalysis = "/analysis"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:order_id", paymentHandler.GetPaymentByOrderID)
	}

	webhooks := rg.Group(PathWebhooks)
	{
		// The processor POSTs status notifications here; redelivery on non-2xx.
		webhooks.POST("/payments", webhookHandler.HandleNotification)
	}
}

func addExportRoutes(rg *gin.RouterGroup, exportHandler *handlers.ExportHandler) {
	analysis := rg.Group(PathAnalysis)
	{
		analysis.GET("/export", exportHandler.ExportAnalysis)
	}
}
