package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptLine represents a single normalized line item on a receipt.
type ReceiptLine struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"` // price x quantity, tax excluded
}

// Receipt is a value object representing the canonical, display-ready view
// of a completed sale. It is NOT a database entity — it is composed from the
// sale record at render time, with every optional or legacy field already
// resolved to one value. Amounts are carried verbatim from the sale; nothing
// is recomputed here.
type Receipt struct {
	Header             ReceiptHeader `json:"header"`
	ReceiptNumber      string        `json:"receipt_number"`
	Date               string        `json:"date"`
	Customer           string        `json:"customer,omitempty"`
	PaymentMethod      string        `json:"payment_method"`
	ConfirmationNumber string        `json:"confirmation_number,omitempty"`
	Items              []ReceiptLine `json:"items"`
	SubTotal           float64       `json:"sub_total"`
	TaxRate            float64       `json:"tax_rate"` // informational only
	Tax                float64       `json:"tax"`
	CCFee              float64       `json:"cc_fee,omitempty"` // shown only when > 0
	Total              float64       `json:"total"`
}
