package models

import "time"

// InventoryRecord is the row shape of the inventory_records table.
// ShopkeeperID is null for MANUFACTURING and TRANSIT locations.
type InventoryRecord struct {
	ProductID    string    `db:"product_id"`
	Location     string    `db:"location"`
	ShopkeeperID *string   `db:"shopkeeper_id"`
	Quantity     int64     `db:"quantity"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// InventoryTransfer is the row shape of the inventory_transfers table.
type InventoryTransfer struct {
	TransferID       string     `db:"transfer_id"`
	ProductID        string     `db:"product_id"`
	FromLocation     string     `db:"from_location"`
	ToLocation       string     `db:"to_location"`
	Quantity         int64      `db:"quantity"`
	Status           string     `db:"status"`
	InitiatedBy      string     `db:"initiated_by"`
	ConfirmedBy      *string    `db:"confirmed_by"`       // Nullable
	ShopkeeperID     *string    `db:"shopkeeper_id"`      // Nullable
	FromShopkeeperID *string    `db:"from_shopkeeper_id"` // Nullable
	TransferDate     time.Time  `db:"transfer_date"`
	ConfirmationDate *time.Time `db:"confirmation_date"`  // Nullable
	Notes            string     `db:"notes"`
}
