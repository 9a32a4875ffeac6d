package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/application/service"
	"github.com/kipkoech/salespoint-api/internal/config"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	infrarepo "github.com/kipkoech/salespoint-api/internal/infrastructure/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Product{},
		&entity.Customer{},
		&entity.Cart{},
		&entity.CartItem{},
		&entity.Sale{},
		&entity.SaleItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newCartTestRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *service.CartService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerTestDB(t)
	cartService := service.NewCartService(
		infrarepo.NewCartRepository(db),
		infrarepo.NewProductRepository(db),
		infrarepo.NewCustomerRepository(db),
		infrarepo.NewSaleRepository(db),
		infrarepo.NewSaleItemRepository(db),
		config.CheckoutConfig{TaxRate: 8.0, CardFeePercent: 3.0},
	)
	h := NewCartHandler(cartService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.PUT("/cart/items/:id", h.UpdateItem)
	router.POST("/cart/items", h.AddItem)
	return router, cartService, db
}

// A quantity request of zero or below must reach the service and clamp to
// 1, not bounce off request validation.
func TestUpdateItemQuantityClampedNotRejected(t *testing.T) {
	userID := uuid.New()
	router, cartService, db := newCartTestRouter(t, userID)

	product := &entity.Product{Name: "Rock Salt", SKU: "ROCK-SALT", Price: 899, Unit: "50lb Bag"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	cart, err := cartService.AddItem(context.Background(), userID, product.ID, 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	itemID := cart.Items[0].ID

	for _, body := range []string{`{"quantity": 0}`, `{"quantity": -3}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/cart/items/"+itemID.String(), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200 (clamped, not rejected): %s", body, w.Code, w.Body.String())
			continue
		}

		updated, err := cartService.GetCart(context.Background(), userID)
		if err != nil {
			t.Fatalf("GetCart: %v", err)
		}
		if updated.Items[0].Quantity != 1 {
			t.Errorf("%s: stored quantity = %d, want 1", body, updated.Items[0].Quantity)
		}
	}
}

func TestUpdateItemQuantityPositive(t *testing.T) {
	userID := uuid.New()
	router, cartService, db := newCartTestRouter(t, userID)

	product := &entity.Product{Name: "Rope", SKU: "ROPE", Price: 250, Unit: "Foot"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	cart, err := cartService.AddItem(context.Background(), userID, product.ID, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/cart/items/"+cart.Items[0].ID.String(), strings.NewReader(`{"quantity": 7}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	updated, err := cartService.GetCart(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if updated.Items[0].Quantity != 7 {
		t.Errorf("stored quantity = %d, want 7", updated.Items[0].Quantity)
	}
}
