package mapping

import (
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/models"
)

// ToDomainInventoryRecord converts a model InventoryRecord to a domain InventoryRecord
func ToDomainInventoryRecord(m models.InventoryRecord) domain.InventoryRecord {
	return domain.InventoryRecord{
		ProductID:    m.ProductID,
		Location:     domain.Location(m.Location),
		ShopkeeperID: m.ShopkeeperID,
		Quantity:     m.Quantity,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToModelInventoryTransfer converts a domain InventoryTransfer to a model InventoryTransfer
func ToModelInventoryTransfer(d domain.InventoryTransfer) models.InventoryTransfer {
	return models.InventoryTransfer{
		TransferID:       d.TransferID,
		ProductID:        d.ProductID,
		FromLocation:     string(d.FromLocation),
		ToLocation:       string(d.ToLocation),
		Quantity:         d.Quantity,
		Status:           string(d.Status),
		InitiatedBy:      d.InitiatedBy,
		ConfirmedBy:      d.ConfirmedBy,
		ShopkeeperID:     d.ShopkeeperID,
		FromShopkeeperID: d.FromShopkeeperID,
		TransferDate:     d.TransferDate,
		ConfirmationDate: d.ConfirmationDate,
		Notes:            d.Notes,
	}
}

// ToDomainInventoryTransfer converts a model InventoryTransfer to a domain InventoryTransfer
func ToDomainInventoryTransfer(m models.InventoryTransfer) domain.InventoryTransfer {
	return domain.InventoryTransfer{
		TransferID:       m.TransferID,
		ProductID:        m.ProductID,
		FromLocation:     domain.Location(m.FromLocation),
		ToLocation:       domain.Location(m.ToLocation),
		Quantity:         m.Quantity,
		Status:           domain.TransferStatus(m.Status),
		InitiatedBy:      m.InitiatedBy,
		ConfirmedBy:      m.ConfirmedBy,
		ShopkeeperID:     m.ShopkeeperID,
		FromShopkeeperID: m.FromShopkeeperID,
		TransferDate:     m.TransferDate,
		ConfirmationDate: m.ConfirmationDate,
		Notes:            m.Notes,
	}
}
