package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"auro-gold/internal/auth"
	"auro-gold/internal/config"
	"auro-gold/internal/database"
	"auro-gold/internal/handlers"
	"auro-gold/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed initial data
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize services
	priceService := services.NewPriceService(db)
	ledger := services.NewLedger(db, priceService, cfg.App.SignupBonusFiat, cfg.App.ActivationFeeFiat)
	insightsService, err := services.NewInsightsService(cfg.Gemini.APIKey, cfg.Gemini.Model, priceService)
	if err != nil {
		log.Fatalf("Failed to initialize insights service: %v", err)
	}
	defer insightsService.Close()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(ledger)
	userHandler := handlers.NewUserHandler(ledger)
	priceHandler := handlers.NewPriceHandler(priceService, ledger, insightsService)
	tradingHandler := handlers.NewTradingHandler(ledger)
	miningHandler := handlers.NewMiningHandler(ledger)
	adminHandler := handlers.NewAdminHandler(ledger)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/user/profile", userHandler.GetProfile)
		api.GET("/transactions", userHandler.GetTransactions)
		api.GET("/config", userHandler.GetSystemConfig)

		api.GET("/price", priceHandler.GetPrice)
		api.GET("/price/history", priceHandler.GetPriceHistory)
		api.GET("/insights", priceHandler.GetInsights)
		api.GET("/payment-methods", priceHandler.GetPaymentMethods)

		api.POST("/trade/buy", tradingHandler.BuyGold)
		api.POST("/trade/sell", tradingHandler.SellGold)

		api.POST("/referral/activate", tradingHandler.RequestActivation)
		api.GET("/referral/codes", userHandler.GetReferralCodes)

		api.GET("/mining/packages", miningHandler.GetPackages)
		api.POST("/mining/activate", miningHandler.ActivateMining)
		api.GET("/mining/subscriptions", miningHandler.GetSubscriptions)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		admin.POST("/price", adminHandler.SetPrice)
		admin.GET("/transactions", adminHandler.GetAllTransactions)
		admin.GET("/transactions/pending", adminHandler.GetPendingTransactions)
		admin.POST("/transactions/:id/approve", adminHandler.ApproveTransaction)
		admin.POST("/transactions/:id/reject", adminHandler.RejectTransaction)
		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/payment-methods/:id", adminHandler.UpdatePaymentMethod)
		admin.PUT("/mining/packages", adminHandler.UpsertMiningPackage)
		admin.PUT("/config/referral-rate", adminHandler.SetReferralRate)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
