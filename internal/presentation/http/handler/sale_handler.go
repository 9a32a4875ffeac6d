package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kipkoech/salespoint-api/internal/application/service"
	"github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/response"
	"github.com/kipkoech/salespoint-api/pkg/pagination"
	"github.com/kipkoech/salespoint-api/pkg/utils"
)

// SaleHandler handles completed-sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func parseSaleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return 0, false
	}
	return uint(id), true
}

// GetSale returns a sale with its items
// @Summary Get sale
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseSaleID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// ListSales lists sales with filtering. Passing cursor or limit switches to
// keyset pagination for stable walking while new sales are rung up.
// @Summary List sales
// @Tags sales
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param cursor query string false "Keyset cursor"
// @Param limit query int false "Keyset page size"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} response.APIResponse
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	if c.Query("cursor") != "" || c.Query("limit") != "" {
		cursorParams := pagination.DefaultCursorParams()
		if err := c.ShouldBindQuery(cursorParams); err != nil {
			response.BadRequest(c, "Invalid pagination parameters")
			return
		}

		result, err := h.saleService.ListSalesByCursor(c.Request.Context(), cursorParams)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Sales retrieved", result)
		return
	}

	params := pagination.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.PerPage = perPage
	}
	params.Validate()

	filter := &repository.SaleFilterParams{
		Pagination: params,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := utils.ParseUUID(customerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		filter.CustomerID = &id
	}

	result, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved", result)
}

// ListRecentSales returns the most recent sales, newest first
// @Summary Recent sales
// @Tags sales
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} response.APIResponse
// @Router /sales/recent [get]
func (h *SaleHandler) ListRecentSales(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sales, err := h.saleService.ListRecentSales(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recent sales", sales)
}
