package models

import "github.com/shopspring/decimal"

// Purchase is the row shape of the purchases table.
type Purchase struct {
	PurchaseID    string          `db:"purchase_id"`
	SupplierID    string          `db:"supplier_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentStatus string          `db:"payment_status"`
	FundID        string          `db:"fund_id"`
	AuditFields
}

// PurchaseItem is the row shape of the purchase_items table.
type PurchaseItem struct {
	ItemID     string          `db:"item_id"`
	PurchaseID string          `db:"purchase_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int64           `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price"`
}
