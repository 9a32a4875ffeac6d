package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	"github.com/kipkoech/salespoint-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	// GetWithItems loads the sale with its items, item products, and
	// customer preloaded (everything the receipt and sync views need).
	GetWithItems(ctx context.Context, id uint) (*entity.Sale, error)
	// ListRecent returns the most recent sales, customer preloaded,
	// newest first. Used by the sync reconciliation snapshot.
	ListRecent(ctx context.Context, limit int) ([]entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListByCursor walks sales by keyset (sold_at, id), newest first. Up to
	// limit+1 rows are returned so the caller can detect another page. A nil
	// cursor starts from the newest sale; the prev direction walks back
	// toward newer sales and returns rows oldest-first.
	ListByCursor(ctx context.Context, cursor *pagination.Cursor, direction pagination.CursorDirection, limit int) ([]entity.Sale, error)
	// UpdateSyncResult records the outcome of a ledger push for one sale.
	// A successful push clears any previous error.
	UpdateSyncResult(ctx context.Context, id uint, synced bool, receiptNumber, syncErr *string) error
}

// SaleItemRepository defines the interface for sale item data operations
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetBySaleID(ctx context.Context, saleID uint) ([]entity.SaleItem, error)
}
