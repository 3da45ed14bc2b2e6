package services

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// PurchaseSvcFacade defines operations for material purchase settlement
type PurchaseSvcFacade interface {
	// CreatePurchase validates the purchase arithmetic and settles it against
	// the paying fund in a single transaction.
	CreatePurchase(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)

	// GetPurchaseByID retrieves a purchase with its line items.
	GetPurchaseByID(ctx context.Context, actor domain.Actor, purchaseID string) (*domain.Purchase, error)
}

// ManufacturingSvcFacade defines operations for manufacturing batches
type ManufacturingSvcFacade interface {
	// CreateBatch generates a batch number, checks material availability and
	// deducts the required materials atomically.
	CreateBatch(ctx context.Context, actor domain.Actor, req dto.CreateBatchRequest) (*domain.ManufacturingBatch, error)

	// GetBatchByID retrieves a batch with its material usage lines.
	GetBatchByID(ctx context.Context, actor domain.Actor, batchID string) (*domain.ManufacturingBatch, error)
}
