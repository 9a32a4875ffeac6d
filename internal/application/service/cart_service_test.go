package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/config"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	infrarepo "github.com/kipkoech/salespoint-api/internal/infrastructure/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Shared-cache keeps every pooled connection on the same in-memory
	// database; the name keeps parallel tests isolated.
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

func newTestCartService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	return NewCartService(
		infrarepo.NewCartRepository(db),
		infrarepo.NewProductRepository(db),
		infrarepo.NewCustomerRepository(db),
		infrarepo.NewSaleRepository(db),
		infrarepo.NewSaleItemRepository(db),
		config.CheckoutConfig{TaxRate: 8.0, CardFeePercent: 3.0},
	), db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, priceCents int64, unit string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:  name,
		SKU:   strings.ToUpper(strings.ReplaceAll(name, " ", "-")),
		Price: priceCents,
		Unit:  unit,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return p
}

func createTestCustomer(t *testing.T, db *gorm.DB, c *entity.Customer) *entity.Customer {
	t.Helper()
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	return c
}

func TestAddItemClampsQuantity(t *testing.T) {
	svc, db := newTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct(t, db, "Rock Salt", 899, "50lb Bag")

	cart, err := svc.AddItem(ctx, userID, product.ID, 0)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("quantity 0 should clamp to 1, got %+v", cart.Items)
	}

	cart, err = svc.UpdateQuantity(ctx, userID, cart.Items[0].ID, -5)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Errorf("quantity -5 should clamp to 1, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, db := newTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	salt := createTestProduct(t, db, "Rock Salt", 899, "50lb Bag")
	rope := createTestProduct(t, db, "Rope", 250, "Foot")

	if _, err := svc.AddItem(ctx, userID, salt.ID, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.AddItem(ctx, userID, salt.ID, 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("same product should merge into one line, got %d lines", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", cart.Items[0].Quantity)
	}

	cart, err = svc.AddItem(ctx, userID, rope.ID, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("distinct product should add a line, got %d lines", len(cart.Items))
	}
	// Insertion order survives reload.
	if cart.Items[0].Name != "Rock Salt" || cart.Items[1].Name != "Rope" {
		t.Errorf("line order = [%s, %s]", cart.Items[0].Name, cart.Items[1].Name)
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, uuid.New(), uuid.New(), 2)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404 for unknown cart item, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	svc, db := newTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	a := createTestProduct(t, db, "Item A", 1250, "Each")
	b := createTestProduct(t, db, "Item B", 399, "Each")

	if _, err := svc.AddItem(ctx, userID, a.ID, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, userID, b.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	totals, err := svc.Totals(ctx, userID)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Subtotal != 28.99 {
		t.Errorf("subtotal = %v, want 28.99", totals.Subtotal)
	}
	if totals.Tax != 2.32 {
		t.Errorf("tax = %v, want 2.32", totals.Tax)
	}
	if totals.Total != 31.31 {
		t.Errorf("total = %v, want 31.31", totals.Total)
	}
	if totals.TaxRate != 8.0 || totals.TaxExempt {
		t.Errorf("rate = %v exempt = %v, want 8.0 / false", totals.TaxRate, totals.TaxExempt)
	}
	if totals.ItemCount != 3 {
		t.Errorf("item count = %d, want 3", totals.ItemCount)
	}
}

func TestTotalsTaxExemptCustomer(t *testing.T) {
	tests := []struct {
		name     string
		customer *entity.Customer
	}{
		{"explicit flag", &entity.Customer{Name: "County Road Dept", TaxExempt: true}},
		{
			"exemption certificate preference, case and whitespace insensitive",
			&entity.Customer{Name: "St. Mark Parish", TaxPreference: strPtr("  sales tax exception certificate ")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestCartService(t)
			ctx := context.Background()
			userID := uuid.New()
			product := createTestProduct(t, db, "Gravel", 4500, "Ton")
			customer := createTestCustomer(t, db, tt.customer)

			if _, err := svc.AddItem(ctx, userID, product.ID, 2); err != nil {
				t.Fatalf("AddItem: %v", err)
			}
			if _, err := svc.SetCustomer(ctx, userID, &customer.ID); err != nil {
				t.Fatalf("SetCustomer: %v", err)
			}

			totals, err := svc.Totals(ctx, userID)
			if err != nil {
				t.Fatalf("Totals: %v", err)
			}
			if !totals.TaxExempt {
				t.Error("expected tax exempt totals")
			}
			if totals.Tax != 0 || totals.TaxRate != 0 {
				t.Errorf("tax = %v rate = %v, want 0 / 0", totals.Tax, totals.TaxRate)
			}
			if totals.Total != 90.00 {
				t.Errorf("total = %v, want 90.00", totals.Total)
			}
		})
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestCartService(t)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		UserID:        uuid.New(),
		PaymentMethod: "cash",
	})
	if !errors.Is(err, apperror.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutCardPayment(t *testing.T) {
	svc, db := newTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct(t, db, "Snow Shovel", 10000, "Each")

	if _, err := svc.AddItem(ctx, userID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	sale, err := svc.Checkout(ctx, &CheckoutInput{
		UserID:        userID,
		PaymentMethod: "credit_card",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if sale.SubTotal != 10000 {
		t.Errorf("sub total = %d cents, want 10000", sale.SubTotal)
	}
	if sale.Tax == nil || *sale.Tax != 800 {
		t.Errorf("tax = %v, want 800 cents", sale.Tax)
	}
	// 3% of the taxed total (108.00) is 3.24.
	if sale.CCFee != 324 {
		t.Errorf("cc fee = %d cents, want 324", sale.CCFee)
	}
	if sale.Total != 11124 {
		t.Errorf("total = %d cents, want 11124", sale.Total)
	}
	if sale.TaxPercentage != "8.00" {
		t.Errorf("tax percentage = %q, want \"8.00\"", sale.TaxPercentage)
	}
	if sale.ZohoSynced == nil || *sale.ZohoSynced {
		t.Errorf("new sale must start unsynced, got %v", sale.ZohoSynced)
	}
	if sale.ReceiptNumber == nil || *sale.ReceiptNumber == "" {
		t.Error("checkout must assign a receipt number")
	}
	if len(sale.Items) != 1 {
		t.Fatalf("sale items = %d, want 1", len(sale.Items))
	}
	if sale.Items[0].Price == nil || *sale.Items[0].Price != 10000 {
		t.Errorf("item price = %v, want 10000 cents", sale.Items[0].Price)
	}

	cart, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart should be empty after checkout, has %d items", len(cart.Items))
	}
	if cart.CustomerID != nil {
		t.Error("cart customer should be detached after checkout")
	}
}

func TestCheckoutCashHasNoCardFee(t *testing.T) {
	svc, db := newTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct(t, db, "Snow Shovel", 10000, "Each")

	if _, err := svc.AddItem(ctx, userID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	sale, err := svc.Checkout(ctx, &CheckoutInput{UserID: userID, PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if sale.CCFee != 0 {
		t.Errorf("cash sale cc fee = %d, want 0", sale.CCFee)
	}
	if sale.Total != 10800 {
		t.Errorf("total = %d cents, want 10800", sale.Total)
	}
}

func TestCheckoutTaxExemptRecordsZeroRate(t *testing.T) {
	svc, db := newTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct(t, db, "Gravel", 4500, "Ton")
	customer := createTestCustomer(t, db, &entity.Customer{Name: "County Road Dept", TaxExempt: true})

	if _, err := svc.AddItem(ctx, userID, product.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.SetCustomer(ctx, userID, &customer.ID); err != nil {
		t.Fatalf("SetCustomer: %v", err)
	}

	sale, err := svc.Checkout(ctx, &CheckoutInput{UserID: userID, PaymentMethod: "check"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if sale.Tax == nil || *sale.Tax != 0 {
		t.Errorf("tax = %v, want 0", sale.Tax)
	}
	if sale.TaxPercentage != "0.00" {
		t.Errorf("tax percentage = %q, want \"0.00\"", sale.TaxPercentage)
	}
	if sale.Total != 4500 {
		t.Errorf("total = %d cents, want 4500", sale.Total)
	}
	if sale.CustomerID == nil || *sale.CustomerID != customer.ID {
		t.Error("sale should carry the cart customer")
	}
}
