package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kipkoech/salespoint-api/internal/application/service"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/request"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt rendering and delivery
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetReceipt returns the receipt view of a sale
// @Summary Get receipt
// @Tags receipts
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /sales/{id}/receipt [get]
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	id, ok := parseSaleID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", receipt)
}

// PrintReceipt sends a sale's receipt to the thermal printer
// @Summary Print receipt
// @Tags receipts
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/receipt/print [post]
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	id, ok := parseSaleID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			// Printer unavailable; hand back the receipt so the till
			// can show it on screen.
			response.OK(c, "Printer unavailable, receipt returned", receipt)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed", receipt)
}

// EmailReceipt sends a sale's receipt to the customer's inbox
// @Summary Email receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path int true "Sale ID"
// @Param request body request.EmailReceiptRequest true "Destination address"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/receipt/email [post]
func (h *ReceiptHandler) EmailReceipt(c *gin.Context) {
	id, ok := parseSaleID(c)
	if !ok {
		return
	}

	var req request.EmailReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.receiptService.EmailReceipt(c.Request.Context(), id, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt emailed", receipt)
}

// PrinterStatus returns printer connection status
// @Summary Printer status
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *ReceiptHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status", h.receiptService.GetPrinterStatus())
}

// TestPrint sends a test page to the printer
// @Summary Test print
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/test [post]
func (h *ReceiptHandler) TestPrint(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint()
	if err != nil {
		response.OK(c, "Printer unavailable, receipt returned", receipt)
		return
	}

	response.OK(c, "Test page printed", receipt)
}
