package request

// AddCartItemRequest represents a request to ring up a product
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity"` // values below 1 are clamped to 1
}

// UpdateCartItemRequest represents a quantity change on a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"` // values below 1 are clamped to 1
}

// SetCartCustomerRequest attaches or detaches the cart's customer
type SetCartCustomerRequest struct {
	CustomerID *string `json:"customer_id" binding:"omitempty,uuid"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	PaymentMethod      string  `json:"payment_method" binding:"required,oneof=credit_card debit_card cash check store_credit"`
	ConfirmationNumber *string `json:"confirmation_number" binding:"omitempty,max=100"`
}

// EmailReceiptRequest represents a request to email a receipt
type EmailReceiptRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}
