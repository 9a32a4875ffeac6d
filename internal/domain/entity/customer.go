package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxPreferenceExemptionCertificate is the preference value that suppresses
// tax for a customer regardless of the configured rate.
const TaxPreferenceExemptionCertificate = "SALES TAX EXCEPTION CERTIFICATE"

// Customer represents a customer at the point of sale
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	TaxExempt     bool           `gorm:"default:false" json:"tax_exempt"`
	TaxPreference *string        `gorm:"size:100" json:"tax_preference,omitempty"`
	ZohoContactID *string        `gorm:"size:100;index" json:"zoho_contact_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// IsTaxExempt reports whether this customer's sales carry no tax. Either the
// explicit flag or the exemption-certificate preference wins over any
// configured tax rate.
func (c *Customer) IsTaxExempt() bool {
	if c.TaxExempt {
		return true
	}
	return c.TaxPreference != nil &&
		strings.EqualFold(strings.TrimSpace(*c.TaxPreference), TaxPreferenceExemptionCertificate)
}

// HasZohoContact reports whether the customer is known to the Zoho Books
// ledger. Sync retries are only offered for customers with a ledger identity.
func (c *Customer) HasZohoContact() bool {
	return c.ZohoContactID != nil && *c.ZohoContactID != ""
}
