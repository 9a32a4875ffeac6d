package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/application/service"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/request"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/response"
	"github.com/kipkoech/salespoint-api/pkg/utils"
)

// CartHandler handles the operator's open cart and checkout
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the operator's open cart
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved", cart)
}

// AddItem rings up a product
// @Summary Add cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.AddCartItemRequest true "Item to add"
// @Success 200 {object} response.APIResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := utils.ParseUUID(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), *userID, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", cart)
}

// UpdateItem changes a cart line's quantity
// @Summary Update cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart item ID"
// @Param request body request.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	itemID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), *userID, itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", cart)
}

// RemoveItem deletes a line from the cart
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	itemID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart item ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), *userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", cart)
}

// SetCustomer attaches or detaches the cart's customer
// @Summary Set cart customer
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.SetCartCustomerRequest true "Customer selection"
// @Success 200 {object} response.APIResponse
// @Router /cart/customer [put]
func (h *CartHandler) SetCustomer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.SetCartCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		id, err := utils.ParseUUID(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	cart, err := h.cartService.SetCustomer(c.Request.Context(), *userID, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated", cart)
}

// ClearCart empties the cart
// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", cart)
}

// Totals returns the running totals for the cart
// @Summary Cart totals
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart/totals [get]
func (h *CartHandler) Totals(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	totals, err := h.cartService.Totals(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart totals", totals)
}

// Checkout finalizes the cart into a sale
// @Summary Checkout
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "Payment details"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.cartService.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:             *userID,
		PaymentMethod:      req.PaymentMethod,
		ConfirmationNumber: req.ConfirmationNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", sale)
}
