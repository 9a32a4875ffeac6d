package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
)

// CartRepository defines the interface for cart data operations. Each
// operator has at most one open cart; items keep their insertion order.
type CartRepository interface {
	// GetOrCreateByUser returns the operator's open cart, creating an
	// empty one if none exists. Items are loaded in insertion order.
	GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	AddItem(ctx context.Context, item *entity.CartItem) error
	UpdateItem(ctx context.Context, item *entity.CartItem) error
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	SetCustomer(ctx context.Context, cartID uuid.UUID, customerID *uuid.UUID) error
	// Clear removes all items and the selected customer from the cart.
	Clear(ctx context.Context, cartID uuid.UUID) error
}
