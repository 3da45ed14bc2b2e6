package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus is the production state of a manufacturing batch.
type BatchStatus string

const (
	BatchPending    BatchStatus = "PENDING"
	BatchInProgress BatchStatus = "IN_PROGRESS"
	BatchCompleted  BatchStatus = "COMPLETED"
)

// ManufacturingBatch is a production run of one product. Creating a batch
// atomically decrements the stock of every consumed raw material; if any
// material is short the whole batch is aborted.
type ManufacturingBatch struct {
	BatchID            string          `json:"batchID"`     // Primary Key (UUID)
	BatchNumber        string          `json:"batchNumber"` // BATCH-YYYYMMDD-NNNN, unique
	ProductID          string          `json:"productID"`
	QuantityProduced   int64           `json:"quantityProduced"`
	Status             BatchStatus     `json:"status"`
	StartDate          time.Time       `json:"startDate"`
	ExpectedCompletion *time.Time      `json:"expectedCompletion,omitempty"`
	Materials          []MaterialUsage `json:"materials,omitempty"`
	AuditFields
}

// MaterialUsage is one raw-material consumption line of a batch.
type MaterialUsage struct {
	UsageID          string          `json:"usageID"` // Primary Key (UUID)
	BatchID          string          `json:"batchID"`
	MaterialID       string          `json:"materialID"`
	QuantityRequired decimal.Decimal `json:"quantityRequired"`
}
