package services

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// InventoryReaderSvc defines read operations for stock data
type InventoryReaderSvc interface {
	// GetProductStock retrieves all stock records for a product across locations.
	GetProductStock(ctx context.Context, actor domain.Actor, productID string) (*dto.ProductStockResponse, error)

	// GetTransferByID retrieves a single transfer visible to the actor.
	GetTransferByID(ctx context.Context, actor domain.Actor, transferID string) (*domain.InventoryTransfer, error)

	// ListTransfers retrieves a page of transfers, optionally filtered by status.
	ListTransfers(ctx context.Context, actor domain.Actor, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)
}

// InventoryWriterSvc defines write operations for stock data
type InventoryWriterSvc interface {
	// TransferInventory atomically moves quantity between locations and
	// records the movement.
	TransferInventory(ctx context.Context, actor domain.Actor, req dto.TransferInventoryRequest) (*domain.InventoryTransfer, error)

	// ConfirmReceipt marks a pending transfer as confirmed by its recipient, exactly once.
	ConfirmReceipt(ctx context.Context, actor domain.Actor, transferID string, req dto.ConfirmReceiptRequest) (*domain.InventoryTransfer, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
