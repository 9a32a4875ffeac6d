package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/kipkoech/salespoint-api/internal/application/service"
	"github.com/kipkoech/salespoint-api/internal/config"
	"github.com/kipkoech/salespoint-api/internal/infrastructure/database"
	"github.com/kipkoech/salespoint-api/internal/infrastructure/repository"
	"github.com/kipkoech/salespoint-api/internal/infrastructure/zoho"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/handler"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/routes"
	"github.com/kipkoech/salespoint-api/pkg/email"
	"github.com/kipkoech/salespoint-api/pkg/notify"
	"github.com/kipkoech/salespoint-api/pkg/printer"
	"github.com/kipkoech/salespoint-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.SetupLogger(cfg)
	logger := config.GetLogger()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cartRepo := repository.NewCartRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize Zoho Books connector client
	zohoClient, err := zoho.NewClient(zoho.Config{
		BaseURL:         cfg.Zoho.BaseURL,
		Token:           cfg.Zoho.Token,
		TokenHeader:     cfg.Zoho.TokenHeader,
		RateLimitPerMin: cfg.Zoho.RateLimitPerMin,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Zoho Books client: %v", err)
	}

	// Notification hub for transient register messages
	notifier := notify.NewHub()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	cartService := service.NewCartService(cartRepo, productRepo, customerRepo, saleRepo, saleItemRepo, cfg.Checkout)
	saleService := service.NewSaleService(saleRepo)
	receiptService := service.NewReceiptService(saleRepo, thermalPrinter, emailService, cfg.Store, cfg.Printer)
	syncService := service.NewSyncService(zohoClient, saleRepo, notifier, logger, cfg.Zoho.StatusLimit)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Product:      handler.NewProductHandler(productService),
		Customer:     handler.NewCustomerHandler(customerService),
		Cart:         handler.NewCartHandler(cartService),
		Sale:         handler.NewSaleHandler(saleService),
		Receipt:      handler.NewReceiptHandler(receiptService),
		Sync:         handler.NewSyncHandler(syncService),
		Notification: handler.NewNotificationHandler(notifier),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
