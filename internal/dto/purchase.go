package dto

import (
	"time"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one line of a purchase request.
type PurchaseItemRequest struct {
	ProductID  string          `json:"productID" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitPrice" binding:"required,dgt0"`
	TotalPrice decimal.Decimal `json:"totalPrice" binding:"required,dgt0"`
}

// CreatePurchaseRequest defines the data needed to record a purchase against a fund.
type CreatePurchaseRequest struct {
	FundID      string                `json:"fundID" binding:"required"`
	SupplierID  string                `json:"supplierID" binding:"required"`
	TotalAmount decimal.Decimal       `json:"totalAmount" binding:"required,dgt0"`
	Items       []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes       string                `json:"notes"`
}

// PurchaseItemResponse mirrors domain.PurchaseItem for API output.
type PurchaseItemResponse struct {
	ItemID     string          `json:"itemID"`
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// PurchaseResponse mirrors domain.Purchase for API output, including the
// fund's balance after settlement.
type PurchaseResponse struct {
	PurchaseID    string                 `json:"purchaseID"`
	SupplierID    string                 `json:"supplierID"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	PaymentStatus domain.PaymentStatus   `json:"paymentStatus"`
	FundID        string                 `json:"fundID"`
	FundBalance   *decimal.Decimal       `json:"fundBalance,omitempty"`
	Items         []PurchaseItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ToPurchaseResponse converts a domain.Purchase to a PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase, fundBalance *decimal.Decimal) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemResponse{
			ItemID:     item.ItemID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return PurchaseResponse{
		PurchaseID:    p.PurchaseID,
		SupplierID:    p.SupplierID,
		TotalAmount:   p.TotalAmount,
		PaymentStatus: p.PaymentStatus,
		FundID:        p.FundID,
		FundBalance:   fundBalance,
		Items:         items,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}
