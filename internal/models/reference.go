package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the row shape of the products table.
type Product struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	SKU       string `db:"sku"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// RawMaterial is the row shape of the raw_materials table.
type RawMaterial struct {
	MaterialID    string          `db:"material_id"`
	Name          string          `db:"name"`
	Unit          string          `db:"unit"`
	StockQuantity decimal.Decimal `db:"stock_quantity"`
	AuditFields
}

// Supplier is the row shape of the suppliers table.
type Supplier struct {
	SupplierID string `db:"supplier_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Sale is the row shape of the sales table (read-only for the core).
type Sale struct {
	SaleID       string          `db:"sale_id"`
	ShopkeeperID string          `db:"shopkeeper_id"`
	CustomerID   string          `db:"customer_id"`
	NetAmount    decimal.Decimal `db:"net_amount"`
	SaleDate     time.Time       `db:"sale_date"`
}
