package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a finished garment tracked by the inventory ledger.
type Product struct {
	ProductID string `json:"productID"` // Primary Key (UUID)
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// RawMaterial is an input consumed by manufacturing batches. StockQuantity is
// decimal since materials are measured in fractional units (meters, kilograms).
type RawMaterial struct {
	MaterialID    string          `json:"materialID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stockQuantity"` // Never negative
	AuditFields
}

// Supplier is a purchasing counterparty.
type Supplier struct {
	SupplierID string `json:"supplierID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Sale is a wholesale sale made by a shopkeeper; the core only reads it when
// validating fund returns against the sale's net amount.
type Sale struct {
	SaleID       string          `json:"saleID"` // Primary Key (UUID)
	ShopkeeperID string          `json:"shopkeeperID"`
	CustomerID   string          `json:"customerID"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	SaleDate     time.Time       `json:"saleDate"`
}
