package repositories

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// PurchaseRepository defines persistence operations for purchases.
type PurchaseRepository interface {
	// SavePurchase persists the purchase and its line items and applies the
	// fund usage debit, all in one transaction. The usage amount must equal
	// the purchase total; the debit goes through the shared fund-usage
	// primitive (FundWriter.ApplyUsageInTx).
	SavePurchase(ctx context.Context, purchase domain.Purchase, usage domain.FundUsage) error

	// FindPurchaseByID retrieves a purchase with its line items.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
}

// BatchRepository defines persistence operations for manufacturing batches.
type BatchRepository interface {
	// SaveBatch persists the batch and its material usages and decrements
	// each consumed raw material's stock, all in one transaction. Material
	// rows are locked and re-checked; any shortage aborts the whole batch.
	SaveBatch(ctx context.Context, batch domain.ManufacturingBatch) error

	// FindBatchByID retrieves a batch with its material usages.
	FindBatchByID(ctx context.Context, batchID string) (*domain.ManufacturingBatch, error)

	// BatchNumberExists reports whether a batch number is already taken.
	BatchNumberExists(ctx context.Context, batchNumber string) (bool, error)
}
