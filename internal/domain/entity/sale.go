package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is the authoritative record of a completed checkout. Its Total is
// written once at checkout and never recomputed afterwards; displayed values
// are resolved from the stored columns so the receipt cannot drift from what
// the sale actually charged.
//
// Older rows (imported from the previous register software) populate
// TransactionID and TaxAmount instead of ReceiptNumber and Tax; the Resolved*
// helpers collapse both generations into one canonical value.
type Sale struct {
	ID                 uint           `gorm:"primary_key" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID         *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ReceiptNumber      *string        `gorm:"size:100;index" json:"receipt_number,omitempty"`
	TransactionID      *string        `gorm:"size:100" json:"transaction_id,omitempty"` // legacy register field
	SoldAt             time.Time      `gorm:"not null;index" json:"sold_at"`
	SubTotal           int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tax                *int64         `json:"-"`                  // Stored in cents, excluded from JSON
	TaxAmount          *int64         `json:"-"`                  // legacy column, cents
	TaxPercentage      string         `gorm:"size:20" json:"tax_percentage"` // recorded as written, parsed defensively
	CCFee              int64          `gorm:"default:0" json:"-"`            // card processing fee, cents, included in Total
	Total              int64          `gorm:"default:0" json:"-"`            // Stored in cents, excluded from JSON
	PaymentMethod      string         `gorm:"size:50" json:"payment_method"`
	ConfirmationNumber *string        `gorm:"size:100" json:"confirmation_number,omitempty"`
	ZohoSynced         *bool          `json:"zoho_synced,omitempty"`
	ZohoError          *string        `gorm:"type:text" json:"zoho_error,omitempty"`
	ZohoReceiptNumber  *string        `gorm:"size:100" json:"zoho_receipt_number,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Tax      float64 `json:"tax"`
		CCFee    float64 `json:"cc_fee"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(s),
		SubTotal: float64(s.SubTotal) / 100,
		Tax:      float64(s.ResolvedTaxCents()) / 100,
		CCFee:    float64(s.CCFee) / 100,
		Total:    float64(s.Total) / 100,
	})
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ResolvedReceiptNumber returns the displayable receipt identifier:
// ReceiptNumber, else the legacy TransactionID, else a synthesized
// "POS-{id}".
func (s *Sale) ResolvedReceiptNumber() string {
	if s.ReceiptNumber != nil && *s.ReceiptNumber != "" {
		return *s.ReceiptNumber
	}
	if s.TransactionID != nil && *s.TransactionID != "" {
		return *s.TransactionID
	}
	return fmt.Sprintf("POS-%d", s.ID)
}

// ResolvedTaxCents returns the recorded tax in cents: Tax, else the legacy
// TaxAmount, else 0. The value is taken verbatim, never recomputed from the
// subtotal and rate.
func (s *Sale) ResolvedTaxCents() int64 {
	if s.Tax != nil {
		return *s.Tax
	}
	if s.TaxAmount != nil {
		return *s.TaxAmount
	}
	return 0
}

// ResolvedTaxRate parses TaxPercentage defensively. The column has held
// numbers, numeric strings, and garbage over the years; anything that does
// not parse to a finite number displays as 0. The result is informational
// only and never feeds back into the tax amount.
func (s *Sale) ResolvedTaxRate() float64 {
	raw := strings.TrimSpace(s.TaxPercentage)
	if raw == "" {
		return 0
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// SyncState derives the sale's ledger sync state from the stored columns.
func (s *Sale) SyncState() enum.SyncState {
	if s.ZohoSynced != nil && *s.ZohoSynced {
		return enum.SyncStateSynced
	}
	if s.ZohoError != nil && *s.ZohoError != "" {
		return enum.SyncStateFailed
	}
	return enum.SyncStateUnsynced
}

// SaleItem represents a line item in a completed sale
type SaleItem struct {
	ID           uint           `gorm:"primary_key" json:"id"`
	SaleID       uint           `gorm:"not null;index" json:"sale_id"`
	ProductID    *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Price        *int64         `json:"-"` // Stored in cents; nil falls back to the product price
	Quantity     int            `gorm:"not null" json:"quantity"`
	SelectedUnit *string        `gorm:"size:50" json:"selected_unit,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale     `gorm:"foreignKey:SaleID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(si),
		Price: float64(si.ResolvedPriceCents()) / 100,
	})
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// ResolvedPriceCents returns the line's unit price in cents: the recorded
// price, else the product's price, else 0.
func (si *SaleItem) ResolvedPriceCents() int64 {
	if si.Price != nil {
		return *si.Price
	}
	if si.Product != nil {
		return si.Product.Price
	}
	return 0
}

// combinedNamePattern matches legacy item names of the form "Name (Unit)",
// e.g. "Rock Salt (50lb Bag)".
var combinedNamePattern = regexp.MustCompile(`^(.*) \((.+)\)$`)

// ResolvedName returns the base display name and unit of measure for the
// line. Legacy rows embedded the unit in the name; newer rows carry it in
// SelectedUnit or on the product.
func (si *SaleItem) ResolvedName() (name, unit string) {
	if m := combinedNamePattern.FindStringSubmatch(si.Name); m != nil {
		return m[1], m[2]
	}
	if si.SelectedUnit != nil && *si.SelectedUnit != "" {
		return si.Name, *si.SelectedUnit
	}
	if si.Product != nil {
		return si.Name, si.Product.Unit
	}
	return si.Name, ""
}
