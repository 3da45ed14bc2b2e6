package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a purchase against its fund.
type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "PAID"
)

// TotalTolerance is the maximum accepted drift between a purchase's declared
// total and the sum of its line items.
var TotalTolerance = decimal.NewFromFloat(0.01)

// Purchase records stock intake paid out of a fund. Creating a purchase debits
// the fund by TotalAmount through the shared fund-usage primitive.
type Purchase struct {
	PurchaseID    string          `json:"purchaseID"` // Primary Key (UUID)
	SupplierID    string          `json:"supplierID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	FundID        string          `json:"fundID"`
	Items         []PurchaseItem  `json:"items,omitempty"`
	AuditFields
}

// PurchaseItem is one line of a purchase.
type PurchaseItem struct {
	ItemID     string          `json:"itemID"` // Primary Key (UUID)
	PurchaseID string          `json:"purchaseID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// ItemsTotal sums the line totals of the purchase.
func (p *Purchase) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// TotalsMatch reports whether the declared total agrees with the summed line
// items within TotalTolerance.
func (p *Purchase) TotalsMatch() bool {
	return p.TotalAmount.Sub(p.ItemsTotal()).Abs().LessThanOrEqual(TotalTolerance)
}
