package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// batchHandler handles HTTP requests related to manufacturing batches.
type batchHandler struct {
	manufacturingService portssvc.ManufacturingSvcFacade
}

func newBatchHandler(ms portssvc.ManufacturingSvcFacade) *batchHandler {
	return &batchHandler{manufacturingService: ms}
}

// registerBatchRoutes registers routes related to manufacturing batches.
func registerBatchRoutes(rg *gin.RouterGroup, manufacturingService portssvc.ManufacturingSvcFacade) {
	h := newBatchHandler(manufacturingService)

	batches := rg.Group("/batches")
	{
		batches.POST("", h.createBatch)
		batches.GET("/:id", h.getBatch)
	}
}

// createBatch godoc
// @Summary Start a manufacturing batch
// @Description Allocates a batch number and deducts the consumed raw materials atomically
// @Tags batches
// @Accept json
// @Produce json
// @Param batch body dto.CreateBatchRequest true "Batch details"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient raw material stock"
// @Security BearerAuth
// @Router /batches [post]
func (h *batchHandler) createBatch(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	batch, err := h.manufacturingService.CreateBatch(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create batch")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch))
}

// getBatch godoc
// @Summary Get a manufacturing batch by ID
// @Tags batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /batches/{id} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	batch, err := h.manufacturingService.GetBatchByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}
