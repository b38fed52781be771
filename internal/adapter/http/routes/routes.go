package routes

import (
	"log"
	"os"
	"strconv"

	_ "marketindex/docs" // This will be auto-generated
	"marketindex/internal/adapter/http/handlers"
	repository2 "marketindex/internal/adapter/persistence/repository"
	"marketindex/internal/infrastructure/database"
	"marketindex/internal/infrastructure/marketdata"
	"marketindex/internal/infrastructure/payments"
	"marketindex/internal/usecase"
	"marketindex/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	// The webhook secret is the HMAC key for notification authenticity. It is
	// read once here and never logged.
	verifier := payments.NewWebhookVerifier(os.Getenv("WEBHOOK_SECRET"))

	var paymentGateway interfaces.IPaymentGateway
	cfGateway, err := payments.NewCashfreeGateway(os.Getenv("CASHFREE_APP_ID"), os.Getenv("CASHFREE_SECRET_KEY"))
	if err != nil {
		log.Printf("Cashfree gateway not configured: %v", err)
	} else {
		paymentGateway = cfGateway
	}

	var marketDataClient interfaces.IMarketDataClient
	mdClient, err := marketdata.NewClient(os.Getenv("MARKET_DATA_URL"))
	if err != nil {
		log.Printf("Market data client not configured: %v", err)
	} else {
		marketDataClient = mdClient
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, paymentGateway)
	webhookUseCase := usecase.NewWebhookUseCase(paymentRepo, verifier)
	exportUseCase := usecase.NewExportUseCase(marketDataClient)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)
	exportHandler := handlers.NewExportHandler(exportUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, webhookHandler)
	addExportRoutes(v1, exportHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
