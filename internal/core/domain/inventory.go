package domain

import "time"

// Location is a point in the physical inventory flow.
type Location string

const (
	LocationManufacturing Location = "MANUFACTURING"
	LocationTransit       Location = "TRANSIT"
	LocationWholesale     Location = "WHOLESALE"
)

// ValidLocation reports whether the given location is known.
func ValidLocation(l Location) bool {
	switch l {
	case LocationManufacturing, LocationTransit, LocationWholesale:
		return true
	}
	return false
}

// InventoryRecord is the quantity of one product at one location. Wholesale
// records are additionally scoped to the shopkeeper holding the stock; there is
// at most one record per (product, location, shopkeeper scope). Quantity never
// goes negative.
type InventoryRecord struct {
	ProductID    string    `json:"productID"`
	Location     Location  `json:"location"`
	ShopkeeperID *string   `json:"shopkeeperID,omitempty"` // Required iff location is WHOLESALE
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TransferStatus is the state of an inventory transfer.
type TransferStatus string

const (
	// TransferPending means the quantity sits in TRANSIT awaiting a receipt confirmation.
	TransferPending TransferStatus = "PENDING"
	// TransferCompleted means the debit and credit both happened at creation time.
	TransferCompleted TransferStatus = "COMPLETED"
	// TransferConfirmed means a pending transfer's receipt was confirmed.
	TransferConfirmed TransferStatus = "CONFIRMED"
)

// InventoryTransfer records quantity moved between locations. Transfers into
// TRANSIT start PENDING and need a confirm-receipt action to land the quantity
// in the destination shopkeeper's wholesale stock; everything else completes
// synchronously at creation.
type InventoryTransfer struct {
	TransferID       string         `json:"transferID"` // Primary Key (UUID)
	ProductID        string         `json:"productID"`
	FromLocation     Location       `json:"fromLocation"`
	ToLocation       Location       `json:"toLocation"`
	Quantity         int64          `json:"quantity"`
	Status           TransferStatus `json:"status"`
	InitiatedBy      string         `json:"initiatedBy"`
	ConfirmedBy      *string        `json:"confirmedBy,omitempty"`
	ShopkeeperID     *string        `json:"shopkeeperID,omitempty"`     // Destination shopkeeper
	FromShopkeeperID *string        `json:"fromShopkeeperID,omitempty"` // Source shopkeeper, set when moving out of WHOLESALE
	TransferDate     time.Time      `json:"transferDate"`
	ConfirmationDate *time.Time     `json:"confirmationDate,omitempty"`
	Notes            string         `json:"notes"`
}

// IsPending reports whether the transfer still awaits receipt confirmation.
func (t *InventoryTransfer) IsPending() bool {
	return t.Status == TransferPending
}

// CanConfirm reports whether the given actor may confirm receipt of this
// transfer: either the designated shopkeeper or an owner.
func (t *InventoryTransfer) CanConfirm(actor Actor) bool {
	if actor.IsOwner() {
		return true
	}
	return t.ShopkeeperID != nil && *t.ShopkeeperID == actor.UserID
}
