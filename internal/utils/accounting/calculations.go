package accounting

import (
	"fmt"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineTotal computes quantity x unit price for a purchase line.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// ValidateItems checks every purchase line for positive quantity and price and
// for a line total that matches quantity x unit price. It is used in both the
// service and the repository so the same arithmetic is enforced everywhere.
func ValidateItems(items []domain.PurchaseItem) error {
	if len(items) == 0 {
		return fmt.Errorf("purchase must have at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive for product %s", item.ProductID)
		}
		if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("item unit price must be positive for product %s", item.ProductID)
		}
		expected := LineTotal(item.Quantity, item.UnitPrice)
		if !item.TotalPrice.Sub(expected).Abs().LessThanOrEqual(domain.TotalTolerance) {
			return fmt.Errorf("item total %s does not match %d x %s for product %s",
				item.TotalPrice.String(), item.Quantity, item.UnitPrice.String(), item.ProductID)
		}
	}
	return nil
}

// SumLineTotals sums the line totals of a purchase.
func SumLineTotals(items []domain.PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
