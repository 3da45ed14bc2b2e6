package repositories

import (
	"context"
	"time"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// InventoryReader defines read operations for inventory data
type InventoryReader interface {
	// FindRecord retrieves the inventory record for a product at a location.
	// shopkeeperID scopes the lookup for WHOLESALE records and must be nil otherwise.
	FindRecord(ctx context.Context, productID string, location domain.Location, shopkeeperID *string) (*domain.InventoryRecord, error)

	// ListRecordsByProduct retrieves every location record for a product.
	ListRecordsByProduct(ctx context.Context, productID string) ([]domain.InventoryRecord, error)

	// FindTransferByID retrieves a transfer by its unique identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.InventoryTransfer, error)

	// ListTransfers retrieves a paginated list of transfers, newest first,
	// optionally filtered by status.
	ListTransfers(ctx context.Context, status *domain.TransferStatus, limit int, nextToken *string) ([]domain.InventoryTransfer, *string, error)
}

// InventoryWriter defines write operations for inventory data
type InventoryWriter interface {
	// ApplyTransfer atomically executes a transfer: lock the source record,
	// re-check sufficiency, debit the source, upsert-credit the destination
	// and insert the transfer row. The quantity conservation invariant is
	// enforced here and nowhere else.
	ApplyTransfer(ctx context.Context, transfer domain.InventoryTransfer) error

	// ConfirmTransfer atomically confirms receipt of a PENDING transfer: lock
	// the transfer row, lock and debit the transit record, upsert-credit the
	// wholesale record scoped to destShopkeeperID and mark the transfer
	// CONFIRMED. A transfer that is no longer pending yields
	// apperrors.ErrNotFound so confirmation happens at most once.
	ConfirmTransfer(ctx context.Context, transferID string, confirmedBy string, destShopkeeperID string, notes string, now time.Time) (*domain.InventoryTransfer, error)
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}

// InventoryRepositoryWithTx extends InventoryRepositoryFacade with transaction capabilities
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
