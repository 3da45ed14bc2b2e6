package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundType mirrors domain.FundType at the storage layer.
type FundType string

// FundStatus mirrors domain.FundStatus at the storage layer.
type FundStatus string

// Fund is the row shape of the funds table.
type Fund struct {
	FundID          string          `db:"fund_id"`
	Amount          decimal.Decimal `db:"amount"`
	Balance         decimal.Decimal `db:"balance"`
	FromUserID      string          `db:"from_user_id"`
	ToUserID        string          `db:"to_user_id"`
	FundType        FundType        `db:"fund_type"`
	Status          FundStatus      `db:"status"`
	Description     string          `db:"description"`
	ReferenceSaleID *string         `db:"reference_sale_id"` // Nullable
	TransferredAt   time.Time       `db:"transferred_at"`
	AuditFields
}

// FundUsage is the row shape of the fund_usages table.
type FundUsage struct {
	UsageID     string          `db:"usage_id"`
	FundID      string          `db:"fund_id"`
	Amount      decimal.Decimal `db:"amount"`
	UsageType   string          `db:"usage_type"`
	ReferenceID string          `db:"reference_id"`
	UsedBy      string          `db:"used_by"`
	Notes       string          `db:"notes"`
	UsedAt      time.Time       `db:"used_at"`
}

// FundReturn is the row shape of the fund_returns table.
type FundReturn struct {
	ReturnID   string          `db:"return_id"`
	SaleID     string          `db:"sale_id"`
	Amount     decimal.Decimal `db:"amount"`
	ReturnedBy string          `db:"returned_by"`
	Status     string          `db:"status"`
	Notes      string          `db:"notes"`
	ReturnedAt time.Time       `db:"returned_at"`
	ApprovedBy *string         `db:"approved_by"` // Nullable
	ApprovedAt *time.Time      `db:"approved_at"` // Nullable
}
