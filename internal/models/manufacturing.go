package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManufacturingBatch is the row shape of the manufacturing_batches table.
type ManufacturingBatch struct {
	BatchID            string     `db:"batch_id"`
	BatchNumber        string     `db:"batch_number"`
	ProductID          string     `db:"product_id"`
	QuantityProduced   int64      `db:"quantity_produced"`
	Status             string     `db:"status"`
	StartDate          time.Time  `db:"start_date"`
	ExpectedCompletion *time.Time `db:"expected_completion"` // Nullable
	AuditFields
}

// MaterialUsage is the row shape of the material_usages table.
type MaterialUsage struct {
	UsageID          string          `db:"usage_id"`
	BatchID          string          `db:"batch_id"`
	MaterialID       string          `db:"material_id"`
	QuantityRequired decimal.Decimal `db:"quantity_required"`
}
