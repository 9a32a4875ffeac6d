package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	domainRepo "github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		First(&sale, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) ListRecent(ctx context.Context, limit int) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("sold_at DESC, id DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("sold_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("sold_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "sold_at"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	params.Pagination.Validate()
	err := query.
		Preload("Customer").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListByCursor(ctx context.Context, cursor *pagination.Cursor, direction pagination.CursorDirection, limit int) ([]entity.Sale, error) {
	query := r.db.WithContext(ctx).
		Preload("Customer").
		Limit(limit + 1)

	order := "sold_at DESC, id DESC"
	if cursor != nil {
		id, err := strconv.ParseUint(cursor.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor id %q: %w", cursor.ID, err)
		}
		if direction == pagination.CursorDirectionPrev {
			query = query.Where("sold_at > ? OR (sold_at = ? AND id > ?)",
				cursor.CreatedAt, cursor.CreatedAt, id)
			order = "sold_at ASC, id ASC"
		} else {
			query = query.Where("sold_at < ? OR (sold_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, id)
		}
	}

	var sales []entity.Sale
	err := query.Order(order).Find(&sales).Error
	return sales, err
}

func (r *saleRepository) UpdateSyncResult(ctx context.Context, id uint, synced bool, receiptNumber, syncErr *string) error {
	updates := map[string]interface{}{
		"zoho_synced":         synced,
		"zoho_error":          syncErr,
		"zoho_receipt_number": receiptNumber,
	}
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Updates(updates).Error
}

type saleItemRepository struct {
	db *gorm.DB
}

// NewSaleItemRepository creates a new sale item repository
func NewSaleItemRepository(db *gorm.DB) domainRepo.SaleItemRepository {
	return &saleItemRepository{db: db}
}

func (r *saleItemRepository) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *saleItemRepository) GetBySaleID(ctx context.Context, saleID uint) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("sale_id = ?", saleID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
