package dto

import (
	"time"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferFundsRequest defines the data needed to hand funds to an incharge.
type TransferFundsRequest struct {
	ToUserID    string          `json:"toUserID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description"`
}

// RecordFundUsageRequest defines the data needed to record a manual fund debit.
type RecordFundUsageRequest struct {
	Amount      decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	UsageType   domain.UsageType `json:"usageType" binding:"required,oneof=PURCHASE MANUFACTURING OTHER"`
	ReferenceID string           `json:"referenceID"`
	Notes       string           `json:"notes"`
}

// RecordFundUsageResponse returns the fund state after a debit.
type RecordFundUsageResponse struct {
	FundID     string            `json:"fundID"`
	NewBalance decimal.Decimal   `json:"newBalance"`
	Status     domain.FundStatus `json:"status"`
}

// RequestFundReturnRequest defines the data for a shopkeeper's return claim.
type RequestFundReturnRequest struct {
	SaleID string          `json:"saleID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Notes  string          `json:"notes"`
}

// ProcessFundReturnRequest defines the owner's decision on a pending return.
type ProcessFundReturnRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

// FundResponse mirrors domain.Fund for API output.
type FundResponse struct {
	FundID          string            `json:"fundID"`
	Amount          decimal.Decimal   `json:"amount"`
	Balance         decimal.Decimal   `json:"balance"`
	FromUserID      string            `json:"fromUserID"`
	ToUserID        string            `json:"toUserID"`
	FundType        domain.FundType   `json:"fundType"`
	Status          domain.FundStatus `json:"status"`
	Description     string            `json:"description"`
	ReferenceSaleID *string           `json:"referenceSaleID,omitempty"`
	TransferredAt   time.Time         `json:"transferredAt"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ToFundResponse converts a domain.Fund to a FundResponse DTO
func ToFundResponse(f *domain.Fund) FundResponse {
	return FundResponse{
		FundID:          f.FundID,
		Amount:          f.Amount,
		Balance:         f.Balance,
		FromUserID:      f.FromUserID,
		ToUserID:        f.ToUserID,
		FundType:        f.FundType,
		Status:          f.Status,
		Description:     f.Description,
		ReferenceSaleID: f.ReferenceSaleID,
		TransferredAt:   f.TransferredAt,
		CreatedAt:       f.CreatedAt,
	}
}

// FundUsageResponse mirrors domain.FundUsage for API output.
type FundUsageResponse struct {
	UsageID     string           `json:"usageID"`
	FundID      string           `json:"fundID"`
	Amount      decimal.Decimal  `json:"amount"`
	UsageType   domain.UsageType `json:"usageType"`
	ReferenceID string           `json:"referenceID"`
	UsedBy      string           `json:"usedBy"`
	Notes       string           `json:"notes"`
	UsedAt      time.Time        `json:"usedAt"`
}

// ToFundUsageResponse converts a domain.FundUsage to a FundUsageResponse DTO
func ToFundUsageResponse(u domain.FundUsage) FundUsageResponse {
	return FundUsageResponse{
		UsageID:     u.UsageID,
		FundID:      u.FundID,
		Amount:      u.Amount,
		UsageType:   u.UsageType,
		ReferenceID: u.ReferenceID,
		UsedBy:      u.UsedBy,
		Notes:       u.Notes,
		UsedAt:      u.UsedAt,
	}
}

// FundReturnResponse mirrors domain.FundReturn for API output.
type FundReturnResponse struct {
	ReturnID   string              `json:"returnID"`
	SaleID     string              `json:"saleID"`
	Amount     decimal.Decimal     `json:"amount"`
	ReturnedBy string              `json:"returnedBy"`
	Status     domain.ReturnStatus `json:"status"`
	Notes      string              `json:"notes"`
	ReturnedAt time.Time           `json:"returnedAt"`
	ApprovedBy *string             `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time          `json:"approvedAt,omitempty"`
}

// ToFundReturnResponse converts a domain.FundReturn to a FundReturnResponse DTO
func ToFundReturnResponse(r *domain.FundReturn) FundReturnResponse {
	return FundReturnResponse{
		ReturnID:   r.ReturnID,
		SaleID:     r.SaleID,
		Amount:     r.Amount,
		ReturnedBy: r.ReturnedBy,
		Status:     r.Status,
		Notes:      r.Notes,
		ReturnedAt: r.ReturnedAt,
		ApprovedBy: r.ApprovedBy,
		ApprovedAt: r.ApprovedAt,
	}
}

// ListFundsParams carries pagination parameters for fund listings.
type ListFundsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListFundsResponse is a page of funds.
type ListFundsResponse struct {
	Funds     []FundResponse `json:"funds"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ListReturnsParams carries pagination parameters for return listings.
type ListReturnsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListReturnsResponse is a page of fund returns.
type ListReturnsResponse struct {
	Returns   []FundReturnResponse `json:"returns"`
	NextToken *string              `json:"nextToken,omitempty"`
}
