package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kipkoech/salespoint-api/internal/application/service"
	"github.com/kipkoech/salespoint-api/internal/presentation/http/dto/response"
)

// SyncHandler handles Zoho Books reconciliation HTTP requests
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// GetStatus returns the current sync snapshot, refreshing it when none has
// been fetched yet
// @Summary Sync status
// @Tags sync
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /sync/status [get]
func (h *SyncHandler) GetStatus(c *gin.Context) {
	snapshot := h.syncService.Snapshot()
	if snapshot == nil {
		var err error
		snapshot, err = h.syncService.Refresh(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	response.OK(c, "Sync status", snapshot)
}

// Refresh fetches a fresh sync snapshot from Zoho Books
// @Summary Refresh sync status
// @Tags sync
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /sync/refresh [post]
func (h *SyncHandler) Refresh(c *gin.Context) {
	snapshot, err := h.syncService.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sync status refreshed", snapshot)
}

// RetrySale pushes one failed sale to Zoho Books again
// @Summary Retry sale sync
// @Tags sync
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sync/sales/{id}/retry [post]
func (h *SyncHandler) RetrySale(c *gin.Context) {
	id, ok := parseSaleID(c)
	if !ok {
		return
	}

	snapshot, err := h.syncService.RetrySale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retried", snapshot)
}
