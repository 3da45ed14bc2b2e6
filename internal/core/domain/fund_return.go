package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus is the state of a fund return claim.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "PENDING"
	ReturnApproved ReturnStatus = "APPROVED"
	ReturnRejected ReturnStatus = "REJECTED"
)

// FundReturn is a shopkeeper-initiated claim that money from a sale is being
// handed back to the owner. It transitions PENDING -> APPROVED or
// PENDING -> REJECTED exactly once. Approval side-creates a new RETURN fund.
type FundReturn struct {
	ReturnID   string          `json:"returnID"` // Primary Key (UUID)
	SaleID     string          `json:"saleID"`
	Amount     decimal.Decimal `json:"amount"`
	ReturnedBy string          `json:"returnedBy"` // Shopkeeper UserID
	Status     ReturnStatus    `json:"status"`
	Notes      string          `json:"notes"`
	ReturnedAt time.Time       `json:"returnedAt"`
	ApprovedBy *string         `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time      `json:"approvedAt,omitempty"`
}

// IsPending reports whether the return can still be approved or rejected.
func (r *FundReturn) IsPending() bool {
	return r.Status == ReturnPending
}

// CountsTowardCap reports whether the return amount counts against the
// originating sale's returnable balance. Rejected returns do not.
func (r *FundReturn) CountsTowardCap() bool {
	return r.Status != ReturnRejected
}
