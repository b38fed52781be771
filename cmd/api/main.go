package main

import (
	_ "marketindex/docs"
	"marketindex/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Market Index Billing API
// @version         1.0
// @description     Payment orders, processor webhook reconciliation and stock-analysis export, backed by DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
