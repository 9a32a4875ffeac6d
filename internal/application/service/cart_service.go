package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/config"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	"github.com/kipkoech/salespoint-api/internal/domain/enum"
	"github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"github.com/kipkoech/salespoint-api/pkg/money"
	"github.com/kipkoech/salespoint-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// CartService handles the operator's open cart and checkout
type CartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	checkout     config.CheckoutConfig
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	checkout config.CheckoutConfig,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		checkout:     checkout,
	}
}

// CartTotals is the running total for an open cart. Amounts are decimal
// currency values, not cents.
type CartTotals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"tax_rate"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	TaxExempt bool    `json:"tax_exempt"`
	ItemCount int     `json:"item_count"`
}

// GetCart returns the operator's open cart, creating one if needed
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return s.cartRepo.GetOrCreateByUser(ctx, userID)
}

// AddItem rings up a product. Adding a product already in the cart merges
// into the existing line instead of creating a duplicate; the line keeps
// its original position.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	quantity = money.ClampQuantity(quantity)

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			if err := s.cartRepo.UpdateItem(ctx, &cart.Items[i]); err != nil {
				return nil, err
			}
			return s.cartRepo.GetWithItems(ctx, cart.ID)
		}
	}

	item := &entity.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	}
	if product.Unit != "" {
		unit := product.Unit
		item.Unit = &unit
	}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

// UpdateQuantity sets a line's quantity. Zero and negative requests are
// clamped to 1; removing a line is an explicit operation, not a quantity
// of zero.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = money.ClampQuantity(quantity)
			if err := s.cartRepo.UpdateItem(ctx, &cart.Items[i]); err != nil {
				return nil, err
			}
			return s.cartRepo.GetWithItems(ctx, cart.ID)
		}
	}

	return nil, apperror.NewNotFoundError("Cart item")
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

// SetCustomer attaches a customer to the cart, or detaches when customerID
// is nil. The customer drives tax exemption at checkout.
func (s *CartService) SetCustomer(ctx context.Context, userID uuid.UUID, customerID *uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	if err := s.cartRepo.SetCustomer(ctx, cart.ID, customerID); err != nil {
		return nil, err
	}

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

// ClearCart empties the cart and detaches its customer
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

// Totals computes the running totals for the operator's cart
func (s *CartService) Totals(ctx context.Context, userID uuid.UUID) (*CartTotals, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.totalsFor(cart), nil
}

func (s *CartService) totalsFor(cart *entity.Cart) *CartTotals {
	exempt := cart.Customer != nil && cart.Customer.IsTaxExempt()
	rate := s.checkout.TaxRate

	lines := make([]money.Line, 0, len(cart.Items))
	count := 0
	for _, item := range cart.Items {
		lines = append(lines, money.Line{
			UnitPrice: money.FromCents(item.UnitPrice),
			Quantity:  item.Quantity,
		})
		count += item.Quantity
	}

	totals := money.ComputeTotals(lines, decimal.NewFromFloat(rate), exempt)

	displayRate := rate
	if exempt {
		displayRate = 0
	}

	return &CartTotals{
		Subtotal:  totals.Subtotal.InexactFloat64(),
		TaxRate:   displayRate,
		Tax:       totals.Tax.Round(2).InexactFloat64(),
		Total:     totals.Total.Round(2).InexactFloat64(),
		TaxExempt: exempt,
		ItemCount: count,
	}
}

// CheckoutInput represents the checkout request
type CheckoutInput struct {
	UserID             uuid.UUID
	PaymentMethod      string
	ConfirmationNumber *string
}

// Checkout finalizes the cart into a Sale. Totals are computed once here
// and stored; the receipt and sync views read the stored values and never
// recompute them. Card payments add the configured processing fee on top
// of the taxed total. On success the cart is cleared.
func (s *CartService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	exempt := cart.Customer != nil && cart.Customer.IsTaxExempt()
	rate := s.checkout.TaxRate
	if exempt {
		rate = 0
	}

	lines := make([]money.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, money.Line{
			UnitPrice: money.FromCents(item.UnitPrice),
			Quantity:  item.Quantity,
		})
	}
	totals := money.ComputeTotals(lines, decimal.NewFromFloat(s.checkout.TaxRate), exempt)

	subTotal := money.ToCents(totals.Subtotal)
	tax := money.ToCents(totals.Tax)
	total := subTotal + tax

	var ccFee int64
	if enum.IsCardPayment(input.PaymentMethod) {
		fee := totals.Total.Mul(decimal.NewFromFloat(s.checkout.CardFeePercent)).Div(decimal.NewFromInt(100))
		ccFee = money.ToCents(fee)
		total += ccFee
	}

	receiptNumber := utils.GenerateReceiptNumber()
	synced := false

	sale := &entity.Sale{
		UserID:             input.UserID,
		CustomerID:         cart.CustomerID,
		ReceiptNumber:      &receiptNumber,
		SoldAt:             time.Now(),
		SubTotal:           subTotal,
		Tax:                &tax,
		TaxPercentage:      strconv.FormatFloat(rate, 'f', 2, 64),
		CCFee:              ccFee,
		Total:              total,
		PaymentMethod:      input.PaymentMethod,
		ConfirmationNumber: input.ConfirmationNumber,
		ZohoSynced:         &synced,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	saleItems := make([]entity.SaleItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		price := item.UnitPrice
		productID := item.ProductID
		saleItems = append(saleItems, entity.SaleItem{
			SaleID:       sale.ID,
			ProductID:    &productID,
			Name:         item.Name,
			Price:        &price,
			Quantity:     item.Quantity,
			SelectedUnit: item.Unit,
		})
	}
	if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a completed sale with its items
func (s *CartService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}
