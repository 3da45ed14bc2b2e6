package dto

import (
	"time"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MaterialLineRequest is one raw-material consumption line of a batch request.
type MaterialLineRequest struct {
	MaterialID       string          `json:"materialID" binding:"required"`
	QuantityRequired decimal.Decimal `json:"quantityRequired" binding:"required,dgt0"`
}

// CreateBatchRequest defines the data needed to start a manufacturing batch.
type CreateBatchRequest struct {
	ProductID          string                `json:"productID" binding:"required"`
	QuantityProduced   int64                 `json:"quantityProduced" binding:"required,gt=0"`
	StartDate          time.Time             `json:"startDate" binding:"required"`
	ExpectedCompletion *time.Time            `json:"expectedCompletion"`
	Materials          []MaterialLineRequest `json:"materials" binding:"required,min=1,dive"`
}

// MaterialUsageResponse mirrors domain.MaterialUsage for API output.
type MaterialUsageResponse struct {
	UsageID          string          `json:"usageID"`
	MaterialID       string          `json:"materialID"`
	QuantityRequired decimal.Decimal `json:"quantityRequired"`
}

// BatchResponse mirrors domain.ManufacturingBatch for API output.
type BatchResponse struct {
	BatchID            string                  `json:"batchID"`
	BatchNumber        string                  `json:"batchNumber"`
	ProductID          string                  `json:"productID"`
	QuantityProduced   int64                   `json:"quantityProduced"`
	Status             domain.BatchStatus      `json:"status"`
	StartDate          time.Time               `json:"startDate"`
	ExpectedCompletion *time.Time              `json:"expectedCompletion,omitempty"`
	Materials          []MaterialUsageResponse `json:"materials"`
	CreatedAt          time.Time               `json:"createdAt"`
	CreatedBy          string                  `json:"createdBy"`
}

// ToBatchResponse converts a domain.ManufacturingBatch to a BatchResponse DTO
func ToBatchResponse(b *domain.ManufacturingBatch) BatchResponse {
	materials := make([]MaterialUsageResponse, len(b.Materials))
	for i, m := range b.Materials {
		materials[i] = MaterialUsageResponse{
			UsageID:          m.UsageID,
			MaterialID:       m.MaterialID,
			QuantityRequired: m.QuantityRequired,
		}
	}
	return BatchResponse{
		BatchID:            b.BatchID,
		BatchNumber:        b.BatchNumber,
		ProductID:          b.ProductID,
		QuantityProduced:   b.QuantityProduced,
		Status:             b.Status,
		StartDate:          b.StartDate,
		ExpectedCompletion: b.ExpectedCompletion,
		Materials:          materials,
		CreatedAt:          b.CreatedAt,
		CreatedBy:          b.CreatedBy,
	}
}
