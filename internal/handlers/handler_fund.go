package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// fundHandler handles HTTP requests related to funds and fund returns.
type fundHandler struct {
	fundService portssvc.FundSvcFacade
}

// newFundHandler creates a new fundHandler.
func newFundHandler(fs portssvc.FundSvcFacade) *fundHandler {
	return &fundHandler{fundService: fs}
}

// RegisterFundRoutes registers routes related to funds.
func RegisterFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade) {
	h := newFundHandler(fundService)

	funds := rg.Group("/funds")
	{
		funds.POST("/transfer", h.transferFunds)
		funds.GET("", h.listFunds)
		funds.GET("/:id", h.getFund)
		funds.GET("/:id/usages", h.listFundUsages)
		funds.POST("/:id/usages", h.recordFundUsage)
	}

	returns := rg.Group("/fund-returns")
	{
		returns.POST("", h.requestFundReturn)
		returns.GET("/pending", h.listPendingReturns)
		returns.POST("/:id/process", h.processFundReturn)
	}
}

// transferFunds godoc
// @Summary Transfer funds to a user
// @Description Creates a new active fund handed from the owner to an incharge
// @Tags funds
// @Accept json
// @Produce json
// @Param transfer body dto.TransferFundsRequest true "Transfer details"
// @Success 201 {object} dto.FundResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/transfer [post]
func (h *fundHandler) transferFunds(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.TransferFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferFunds", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.TransferFunds(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to transfer funds")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFundResponse(fund))
}

// listFunds godoc
// @Summary List the caller's funds
// @Description Retrieves a paginated list of funds held by the caller, newest first
// @Tags funds
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Opaque page token"
// @Success 200 {object} dto.ListFundsResponse
// @Security BearerAuth
// @Router /funds [get]
func (h *fundHandler) listFunds(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListFundsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.fundService.ListFunds(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list funds")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getFund godoc
// @Summary Get a fund by ID
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {object} dto.FundResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{id} [get]
func (h *fundHandler) getFund(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	fund, err := h.fundService.GetFundByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve fund")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}

// listFundUsages godoc
// @Summary List the usage debits of a fund
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {array} dto.FundUsageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /funds/{id}/usages [get]
func (h *fundHandler) listFundUsages(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	usages, err := h.fundService.GetFundUsages(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve fund usages")
		return
	}
	c.JSON(http.StatusOK, usages)
}

// recordFundUsage godoc
// @Summary Record a usage debit against a fund
// @Description Debits the fund held by the caller; flips the fund to DEPLETED when the balance reaches zero
// @Tags funds
// @Accept json
// @Produce json
// @Param id path string true "Fund ID"
// @Param usage body dto.RecordFundUsageRequest true "Usage details"
// @Success 201 {object} dto.RecordFundUsageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /funds/{id}/usages [post]
func (h *fundHandler) recordFundUsage(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.RecordFundUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordFundUsage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.fundService.RecordFundUsage(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to record fund usage")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// requestFundReturn godoc
// @Summary Request a fund return against a sale
// @Description Records a pending return claim; the total of non-rejected claims never exceeds the sale's net amount
// @Tags fund-returns
// @Accept json
// @Produce json
// @Param return body dto.RequestFundReturnRequest true "Return details"
// @Success 201 {object} dto.FundReturnResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /fund-returns [post]
func (h *fundHandler) requestFundReturn(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.RequestFundReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestFundReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ret, err := h.fundService.RequestFundReturn(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to request fund return")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFundReturnResponse(ret))
}

// listPendingReturns godoc
// @Summary List pending fund returns
// @Description Owner review queue, oldest first
// @Tags fund-returns
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Opaque page token"
// @Success 200 {object} dto.ListReturnsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /fund-returns/pending [get]
func (h *fundHandler) listPendingReturns(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListReturnsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.fundService.ListPendingReturns(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list pending returns")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// processFundReturn godoc
// @Summary Approve or reject a pending fund return
// @Description Transitions the return exactly once; approval creates a new RETURN fund held by the owner
// @Tags fund-returns
// @Accept json
// @Produce json
// @Param id path string true "Return ID"
// @Param decision body dto.ProcessFundReturnRequest true "approve or reject"
// @Success 200 {object} dto.FundReturnResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Missing or already processed"
// @Security BearerAuth
// @Router /fund-returns/{id}/process [post]
func (h *fundHandler) processFundReturn(c *gin.Context) {
	logger := requestLogger(c)
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ProcessFundReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessFundReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ret, err := h.fundService.ProcessFundReturn(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to process fund return")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundReturnResponse(ret))
}
