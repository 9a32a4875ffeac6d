package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	SKU        string  `json:"sku" binding:"omitempty,max=100"`
	Price      float64 `json:"price" binding:"min=0"`
	Unit       string  `json:"unit" binding:"omitempty,max=50"`
	ZohoItemID *string `json:"zoho_item_id"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=2,max=255"`
	SKU        *string  `json:"sku" binding:"omitempty,min=1,max=100"`
	Price      *float64 `json:"price" binding:"omitempty,min=0"`
	Unit       *string  `json:"unit" binding:"omitempty,max=50"`
	ZohoItemID *string  `json:"zoho_item_id"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
