package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundType indicates how a fund came into existence.
type FundType string

const (
	FundInitial    FundType = "INITIAL"    // Seed capital recorded at setup
	FundInvestment FundType = "INVESTMENT" // Owner handing money to an incharge
	FundReturned   FundType = "RETURN"     // Created by an approved fund return
)

// FundStatus indicates whether a fund still has spendable balance.
type FundStatus string

const (
	FundActive   FundStatus = "ACTIVE"
	FundDepleted FundStatus = "DEPLETED"
)

// Fund is a tranche of money handed from one user to another, carrying a
// depletable balance. Balance only ever decreases; a fund is DEPLETED exactly
// when its balance reaches zero, and is never re-activated.
type Fund struct {
	FundID          string          `json:"fundID"` // Primary Key (UUID)
	Amount          decimal.Decimal `json:"amount"` // Original amount, immutable
	Balance         decimal.Decimal `json:"balance"`
	FromUserID      string          `json:"fromUserID"`
	ToUserID        string          `json:"toUserID"`
	FundType        FundType        `json:"fundType"`
	Status          FundStatus      `json:"status"`
	Description     string          `json:"description"`
	ReferenceSaleID *string         `json:"referenceSaleID,omitempty"` // Set for RETURN funds
	TransferredAt   time.Time       `json:"transferredAt"`
	AuditFields
}

// CanDebit reports whether the fund can absorb a debit of the given amount.
func (f *Fund) CanDebit(amount decimal.Decimal) bool {
	return f.Status == FundActive && amount.GreaterThan(decimal.Zero) && f.Balance.GreaterThanOrEqual(amount)
}

// UsageType classifies what consumed a slice of a fund.
type UsageType string

const (
	UsagePurchase      UsageType = "PURCHASE"
	UsageManufacturing UsageType = "MANUFACTURING"
	UsageOther         UsageType = "OTHER"
)

// ValidUsageType reports whether the given usage type is known.
func ValidUsageType(t UsageType) bool {
	switch t {
	case UsagePurchase, UsageManufacturing, UsageOther:
		return true
	}
	return false
}

// FundUsage is an immutable debit event applied against a fund. The sum of a
// fund's usages never exceeds the fund's original amount.
type FundUsage struct {
	UsageID     string          `json:"usageID"` // Primary Key (UUID)
	FundID      string          `json:"fundID"`
	Amount      decimal.Decimal `json:"amount"`
	UsageType   UsageType       `json:"usageType"`
	ReferenceID string          `json:"referenceID"` // The consuming entity, e.g. a purchase
	UsedBy      string          `json:"usedBy"`
	Notes       string          `json:"notes"`
	UsedAt      time.Time       `json:"usedAt"`
}
