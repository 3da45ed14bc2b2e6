package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// inventoryHandler handles HTTP requests related to stock and transfers.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/transfers", h.transferInventory)
		inventory.GET("/transfers", h.listTransfers)
		inventory.GET("/transfers/:id", h.getTransfer)
		inventory.POST("/transfers/:id/confirm", h.confirmReceipt)
		inventory.GET("/stock/:productID", h.getProductStock)
	}
}

// transferInventory godoc
// @Summary Move stock between locations
// @Description Atomically debits the source and credits the destination; moves into TRANSIT stay PENDING until receipt is confirmed
// @Tags inventory
// @Accept json
// @Produce json
// @Param transfer body dto.TransferInventoryRequest true "Transfer details"
// @Success 201 {object} dto.InventoryTransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /inventory/transfers [post]
func (h *inventoryHandler) transferInventory(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.TransferInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferInventory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	transfer, err := h.inventoryService.TransferInventory(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to transfer inventory")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List inventory transfers
// @Tags inventory
// @Produce json
// @Param status query string false "Filter by status (PENDING, COMPLETED, CONFIRMED)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Opaque page token"
// @Success 200 {object} dto.ListTransfersResponse
// @Security BearerAuth
// @Router /inventory/transfers [get]
func (h *inventoryHandler) listTransfers(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.inventoryService.ListTransfers(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransfer godoc
// @Summary Get a transfer by ID
// @Tags inventory
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.InventoryTransferResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/transfers/{id} [get]
func (h *inventoryHandler) getTransfer(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	transfer, err := h.inventoryService.GetTransferByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryTransferResponse(transfer))
}

// confirmReceipt godoc
// @Summary Confirm receipt of a pending transfer
// @Description Lands the quantity in the designated shopkeeper's wholesale stock, exactly once
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param confirmation body dto.ConfirmReceiptRequest true "Optional notes"
// @Success 200 {object} dto.InventoryTransferResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Missing or already confirmed"
// @Security BearerAuth
// @Router /inventory/transfers/{id}/confirm [post]
func (h *inventoryHandler) confirmReceipt(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	transfer, err := h.inventoryService.ConfirmReceipt(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryTransferResponse(transfer))
}

// getProductStock godoc
// @Summary Get stock levels for a product
// @Description Returns every location record for the product plus the total quantity
// @Tags inventory
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductStockResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/stock/{productID} [get]
func (h *inventoryHandler) getProductStock(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	resp, err := h.inventoryService.GetProductStock(c.Request.Context(), actor, c.Param("productID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve product stock")
		return
	}
	c.JSON(http.StatusOK, resp)
}
