package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledger-service/internal/database"
	"ledger-service/internal/handlers"
	"ledger-service/internal/middleware"
	"ledger-service/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	commissionService := services.NewCommissionService(db)
	clientService := services.NewClientService(db)
	transactionService := services.NewTransactionService(db)
	paymentService := services.NewPaymentService(db)
	entityService := services.NewEntityService(db, commissionService)
	summaryService := services.NewSummaryService(db)
	auditService := services.NewAuditService(db, asynqClient)

	// Handlers
	clientHandler := handlers.NewClientHandler(clientService, transactionService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, paymentService)
	entityHandler := handlers.NewEntityHandler(entityService)
	dashboardHandler := handlers.NewDashboardHandler(summaryService, auditService)

	// Initialize Gin
	middleware.InitMetrics()
	r := gin.Default()
	r.Use(middleware.PrometheusMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Brokerage Ledger service",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Client ledgers, one route tree per namespace
	r.POST("/namespaces/:namespace/clients", clientHandler.Create)
	r.GET("/namespaces/:namespace/clients", clientHandler.List)
	r.GET("/namespaces/:namespace/clients/:id", clientHandler.Get)
	r.PUT("/namespaces/:namespace/clients/:id", clientHandler.Update)
	r.DELETE("/namespaces/:namespace/clients/:id", clientHandler.Delete)
	r.POST("/namespaces/:namespace/clients/:id/settle", clientHandler.Settle)
	r.POST("/namespaces/:namespace/clients/:id/restore", clientHandler.Restore)
	r.GET("/namespaces/:namespace/clients/:id/transactions", clientHandler.History)

	// Ledger rows
	r.POST("/clients/:id/transactions", transactionHandler.Create)
	r.POST("/clients/:id/payments", transactionHandler.AddPayment)
	r.PUT("/transactions/:trxId", transactionHandler.Update)
	r.DELETE("/transactions/:trxId", transactionHandler.Delete)

	// Auction sessions and lots
	r.POST("/entities", entityHandler.Create)
	r.GET("/entities", entityHandler.List)
	r.GET("/entities/:id", entityHandler.Get)
	r.PUT("/entities/:id", entityHandler.Update)
	r.DELETE("/entities/:id", entityHandler.Delete)
	r.POST("/entities/:id/lots", entityHandler.AddLot)
	r.PUT("/lots/:lotId", entityHandler.UpdateLot)
	r.DELETE("/lots/:lotId", entityHandler.DeleteLot)
	r.POST("/lots/:lotId/toggle-archive", entityHandler.ToggleLotArchive)
	r.POST("/lots/:lotId/mark-loaded", entityHandler.MarkLotLoaded)

	// Dashboard
	r.GET("/dashboard/totals/:namespace", dashboardHandler.Totals)
	r.GET("/dashboard/next-deadline", dashboardHandler.NextDeadline)
	r.POST("/dashboard/audit", dashboardHandler.TriggerAudit)

	// Start Cron Scheduler
	auditService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
