package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// purchaseHandler handles HTTP requests related to material purchases.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("/:id", h.getPurchase)
	}
}

// createPurchase godoc
// @Summary Record a material purchase
// @Description Validates line arithmetic, then settles the total against the paying fund in one transaction
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.purchaseService.CreatePurchase(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create purchase")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getPurchase godoc
// @Summary Get a purchase by ID
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase, nil))
}
