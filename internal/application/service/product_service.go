package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	"github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"github.com/kipkoech/salespoint-api/pkg/pagination"
	"github.com/kipkoech/salespoint-api/pkg/utils"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name       string
	SKU        string
	Price      float64 // decimal currency, converted to cents for storage
	Unit       string
	ZohoItemID *string
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	product := &entity.Product{
		Name:       input.Name,
		SKU:        sku,
		Unit:       input.Unit,
		ZohoItemID: input.ZohoItemID,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with optional name/SKU search
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID         uuid.UUID
	Name       *string
	SKU        *string
	Price      *float64
	Unit       *string
	ZohoItemID *string
}

// UpdateProduct updates an existing product. Price changes affect future
// cart lines only; lines already rung up keep the price they were added at.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.ZohoItemID != nil {
		product.ZohoItemID = input.ZohoItemID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}
