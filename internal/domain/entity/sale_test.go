package entity

import "testing"

func sp(s string) *string { return &s }

func ip(v int64) *int64 { return &v }

func TestResolvedTaxRate(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"8.25", 8.25},
		{" 8.25 ", 8.25},
		{"0", 0},
		{"", 0},
		{"n/a", 0},
		{"8.25%", 0},
		{"NaN", 0},
		{"+Inf", 0},
		{"-Inf", 0},
	}

	for _, tt := range tests {
		s := Sale{TaxPercentage: tt.raw}
		if got := s.ResolvedTaxRate(); got != tt.want {
			t.Errorf("ResolvedTaxRate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestResolvedTaxCents(t *testing.T) {
	if got := (&Sale{Tax: ip(750), TaxAmount: ip(999)}).ResolvedTaxCents(); got != 750 {
		t.Errorf("tax column should win, got %d", got)
	}
	if got := (&Sale{TaxAmount: ip(999)}).ResolvedTaxCents(); got != 999 {
		t.Errorf("legacy tax_amount fallback, got %d", got)
	}
	if got := (&Sale{}).ResolvedTaxCents(); got != 0 {
		t.Errorf("no tax recorded, got %d", got)
	}
}

func TestSyncState(t *testing.T) {
	synced := true
	unsynced := false

	tests := []struct {
		name string
		sale Sale
		want string
	}{
		{"synced", Sale{ZohoSynced: &synced}, "synced"},
		{"failed", Sale{ZohoSynced: &unsynced, ZohoError: sp("item not mapped")}, "failed"},
		{"unsynced", Sale{ZohoSynced: &unsynced}, "unsynced"},
		{"nil flag", Sale{}, "unsynced"},
	}

	for _, tt := range tests {
		if got := string(tt.sale.SyncState()); got != tt.want {
			t.Errorf("%s: SyncState() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSaleItemResolvedPrice(t *testing.T) {
	product := &Product{Price: 1250}

	if got := (&SaleItem{Price: ip(999), Product: product}).ResolvedPriceCents(); got != 999 {
		t.Errorf("recorded price should win, got %d", got)
	}
	if got := (&SaleItem{Product: product}).ResolvedPriceCents(); got != 1250 {
		t.Errorf("product price fallback, got %d", got)
	}
	if got := (&SaleItem{}).ResolvedPriceCents(); got != 0 {
		t.Errorf("no price at all, got %d", got)
	}
}

func TestSaleItemResolvedName(t *testing.T) {
	tests := []struct {
		testName string
		item     SaleItem
		name     string
		unit     string
	}{
		{
			"legacy combined name",
			SaleItem{Name: "Rock Salt (50lb Bag)"},
			"Rock Salt", "50lb Bag",
		},
		{
			"combined name wins over selected unit",
			SaleItem{Name: "Rock Salt (50lb Bag)", SelectedUnit: sp("Each")},
			"Rock Salt", "50lb Bag",
		},
		{
			"selected unit",
			SaleItem{Name: "Propane Refill", SelectedUnit: sp("20lb Tank")},
			"Propane Refill", "20lb Tank",
		},
		{
			"product unit fallback",
			SaleItem{Name: "Rope", Product: &Product{Unit: "Foot"}},
			"Rope", "Foot",
		},
		{
			"nothing to resolve",
			SaleItem{Name: "Delivery Fee"},
			"Delivery Fee", "",
		},
	}

	for _, tt := range tests {
		name, unit := tt.item.ResolvedName()
		if name != tt.name || unit != tt.unit {
			t.Errorf("%s: ResolvedName() = %q / %q, want %q / %q", tt.testName, name, unit, tt.name, tt.unit)
		}
	}
}

func TestCustomerIsTaxExempt(t *testing.T) {
	if !(&Customer{TaxExempt: true}).IsTaxExempt() {
		t.Error("explicit flag should exempt")
	}
	if !(&Customer{TaxPreference: sp("sales tax exception certificate")}).IsTaxExempt() {
		t.Error("certificate preference should exempt regardless of case")
	}
	if !(&Customer{TaxPreference: sp("  SALES TAX EXCEPTION CERTIFICATE  ")}).IsTaxExempt() {
		t.Error("surrounding whitespace should not matter")
	}
	if (&Customer{TaxPreference: sp("taxable")}).IsTaxExempt() {
		t.Error("other preferences do not exempt")
	}
	if (&Customer{}).IsTaxExempt() {
		t.Error("default customer is taxable")
	}
}

func TestCustomerHasZohoContact(t *testing.T) {
	if (&Customer{}).HasZohoContact() {
		t.Error("nil contact id")
	}
	if (&Customer{ZohoContactID: sp("")}).HasZohoContact() {
		t.Error("empty contact id")
	}
	if !(&Customer{ZohoContactID: sp("zc-1")}).HasZohoContact() {
		t.Error("contact id set")
	}
}
