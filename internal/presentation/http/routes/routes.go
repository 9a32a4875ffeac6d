package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kipkoech/salespoint-api/internal/config"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	domainRepo "github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/handler"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/middleware"
	"github.com/kipkoech/salespoint-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Customer     *handler.CustomerHandler
	Cart         *handler.CartHandler
	Sale         *handler.SaleHandler
	Receipt      *handler.ReceiptHandler
	Sync         *handler.SyncHandler
	Notification *handler.NotificationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	// Catalog and customers
	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)

	// Register flow
	registerCartRoutes(protected, h, deps)
	registerSaleRoutes(protected, h)
	registerSyncRoutes(protected, h, deps)

	// Notifications
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.ListActive)
		notifications.DELETE("/:id", h.Notification.Dismiss)
	}

	// Printer
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Receipt.PrinterStatus)
		printerGroup.POST("/test", h.Receipt.TestPrint)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.ListProducts)
		products.GET("/:id", h.Product.GetProduct)
	}

	// Catalog changes are admin-only
	adminProducts := protected.Group("/products")
	adminProducts.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		adminProducts.POST("", h.Product.CreateProduct)
		adminProducts.PUT("/:id", h.Product.UpdateProduct)
		adminProducts.DELETE("/:id", h.Product.DeleteProduct)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.ListCustomers)
		customers.GET("/:id", h.Customer.GetCustomer)
		customers.POST("", h.Customer.CreateCustomer)
		customers.PUT("/:id", h.Customer.UpdateCustomer)
		customers.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Customer.DeleteCustomer)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.GET("/totals", h.Cart.Totals)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.PUT("/customer", h.Cart.SetCustomer)
	}

	// Checkout uses idempotency middleware to prevent duplicate sales
	protected.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Cart.Checkout)
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.ListSales)
		sales.GET("/recent", h.Sale.ListRecentSales)
		sales.GET("/:id", h.Sale.GetSale)
		sales.GET("/:id/receipt", h.Receipt.GetReceipt)
		sales.POST("/:id/receipt/print", h.Receipt.PrintReceipt)
		sales.POST("/:id/receipt/email", h.Receipt.EmailReceipt)
	}
}

func registerSyncRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sync := protected.Group("/sync")
	{
		sync.GET("/status", h.Sync.GetStatus)
		sync.POST("/refresh", h.Sync.Refresh)
		// Retries are idempotent on the connector side, but the register
		// still guards against double submits
		sync.POST("/sales/:id/retry", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sync.RetrySale)
	}
}
