package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	domainRepo "github.com/kipkoech/salespoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Product").
		Preload("Customer").
		First(&cart, "user_id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = entity.Cart{UserID: userID}
		if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	return &cart, err
}

func (r *cartRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Product").
		Preload("Customer").
		First(&cart, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	// Position continues from the current tail so insertion order is
	// preserved across reloads.
	var maxPos *int
	err := r.db.WithContext(ctx).Model(&entity.CartItem{}).
		Where("cart_id = ?", item.CartID).
		Select("MAX(position)").
		Scan(&maxPos).Error
	if err != nil {
		return err
	}
	if maxPos != nil {
		item.Position = *maxPos + 1
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepository) UpdateItem(ctx context.Context, item *entity.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&entity.CartItem{}, "id = ?", itemID).Error
}

func (r *cartRepository) SetCustomer(ctx context.Context, cartID uuid.UUID, customerID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Cart{}).
		Where("id = ?", cartID).
		Update("customer_id", customerID).Error
}

func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&entity.Cart{}).
		Where("id = ?", cartID).
		Update("customer_id", nil).Error
}
