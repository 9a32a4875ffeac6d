package service

import (
	"context"
	"strconv"
	"time"

	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	"github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"github.com/kipkoech/salespoint-api/pkg/pagination"
)

// SaleService handles completed-sale queries
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// GetSale retrieves a sale with its items and customer
func (s *SaleService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesByCursor lists sales with keyset pagination, newest first. The
// returned cursors encode (sale id, sold_at) so a page boundary stays stable
// while new sales are rung up.
func (s *SaleService) ListSalesByCursor(ctx context.Context, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	params.Validate()
	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}

	sales, err := s.saleRepo.ListByCursor(ctx, cursor, params.Direction, params.Limit)
	if err != nil {
		return nil, err
	}

	if params.Direction == pagination.CursorDirectionPrev && cursor != nil {
		hasMore := len(sales) > params.Limit
		if hasMore {
			sales = sales[:params.Limit]
		}
		// Rows come back oldest-first when walking backwards.
		for i, j := 0, len(sales)-1; i < j; i, j = i+1, j-1 {
			sales[i], sales[j] = sales[j], sales[i]
		}

		pag := &pagination.CursorPagination{
			Limit:   params.Limit,
			HasNext: true,
			HasPrev: hasMore,
		}
		if len(sales) > 0 {
			next := pagination.EncodeCursor(saleCursorID(sales[len(sales)-1]), sales[len(sales)-1].SoldAt)
			prev := pagination.EncodeCursor(saleCursorID(sales[0]), sales[0].SoldAt)
			pag.NextCursor = &next
			pag.PrevCursor = &prev
		}
		return pagination.NewCursorPaginatedResult(sales, pag), nil
	}

	pag, sales := pagination.NewCursorPagination(sales, params.Limit, saleCursorID,
		func(sale entity.Sale) time.Time { return sale.SoldAt })
	pag.HasPrev = cursor != nil
	return pagination.NewCursorPaginatedResult(sales, pag), nil
}

func saleCursorID(sale entity.Sale) string {
	return strconv.FormatUint(uint64(sale.ID), 10)
}

// ListRecentSales returns the most recent sales, newest first
func (s *SaleService) ListRecentSales(ctx context.Context, limit int) ([]entity.Sale, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.saleRepo.ListRecent(ctx, limit)
}
