package dto

import (
	"time"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// TransferInventoryRequest defines the data needed to move stock between locations.
type TransferInventoryRequest struct {
	ProductID        string          `json:"productID" binding:"required"`
	FromLocation     domain.Location `json:"fromLocation" binding:"required,oneof=MANUFACTURING TRANSIT WHOLESALE"`
	ToLocation       domain.Location `json:"toLocation" binding:"required,oneof=MANUFACTURING TRANSIT WHOLESALE"`
	Quantity         int64           `json:"quantity" binding:"required,gt=0"`
	ShopkeeperID     *string         `json:"shopkeeperID"`     // Destination shopkeeper; required for WHOLESALE
	FromShopkeeperID *string         `json:"fromShopkeeperID"` // Source shopkeeper; required when moving out of WHOLESALE
	Notes            string          `json:"notes"`
}

// ConfirmReceiptRequest carries optional notes for a receipt confirmation.
type ConfirmReceiptRequest struct {
	Notes string `json:"notes"`
}

// InventoryTransferResponse mirrors domain.InventoryTransfer for API output.
type InventoryTransferResponse struct {
	TransferID       string                `json:"transferID"`
	ProductID        string                `json:"productID"`
	FromLocation     domain.Location       `json:"fromLocation"`
	ToLocation       domain.Location       `json:"toLocation"`
	Quantity         int64                 `json:"quantity"`
	Status           domain.TransferStatus `json:"status"`
	InitiatedBy      string                `json:"initiatedBy"`
	ConfirmedBy      *string               `json:"confirmedBy,omitempty"`
	ShopkeeperID     *string               `json:"shopkeeperID,omitempty"`
	FromShopkeeperID *string               `json:"fromShopkeeperID,omitempty"`
	TransferDate     time.Time             `json:"transferDate"`
	ConfirmationDate *time.Time            `json:"confirmationDate,omitempty"`
	Notes            string                `json:"notes"`
}

// ToInventoryTransferResponse converts a domain.InventoryTransfer to its DTO
func ToInventoryTransferResponse(t *domain.InventoryTransfer) InventoryTransferResponse {
	return InventoryTransferResponse{
		TransferID:       t.TransferID,
		ProductID:        t.ProductID,
		FromLocation:     t.FromLocation,
		ToLocation:       t.ToLocation,
		Quantity:         t.Quantity,
		Status:           t.Status,
		InitiatedBy:      t.InitiatedBy,
		ConfirmedBy:      t.ConfirmedBy,
		ShopkeeperID:     t.ShopkeeperID,
		FromShopkeeperID: t.FromShopkeeperID,
		TransferDate:     t.TransferDate,
		ConfirmationDate: t.ConfirmationDate,
		Notes:            t.Notes,
	}
}

// StockRecordResponse is one location line of a product's stock.
type StockRecordResponse struct {
	ProductID    string          `json:"productID"`
	Location     domain.Location `json:"location"`
	ShopkeeperID *string         `json:"shopkeeperID,omitempty"`
	Quantity     int64           `json:"quantity"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductStockResponse is every location record for one product.
type ProductStockResponse struct {
	ProductID string                `json:"productID"`
	Records   []StockRecordResponse `json:"records"`
	Total     int64                 `json:"total"`
}

// ListTransfersParams carries filters and pagination for transfer listings.
type ListTransfersParams struct {
	Status    *domain.TransferStatus `form:"status"`
	Limit     int                    `form:"limit"`
	NextToken *string                `form:"nextToken"`
}

// ListTransfersResponse is a page of inventory transfers.
type ListTransfersResponse struct {
	Transfers []InventoryTransferResponse `json:"transfers"`
	NextToken *string                     `json:"nextToken,omitempty"`
}
