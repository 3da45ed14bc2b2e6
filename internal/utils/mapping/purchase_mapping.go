package mapping

import (
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/models"
)

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:    d.PurchaseID,
		SupplierID:    d.SupplierID,
		TotalAmount:   d.TotalAmount,
		PaymentStatus: string(d.PaymentStatus),
		FundID:        d.FundID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:    m.PurchaseID,
		SupplierID:    m.SupplierID,
		TotalAmount:   m.TotalAmount,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		FundID:        m.FundID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseItem converts a domain PurchaseItem to a model PurchaseItem
func ToModelPurchaseItem(d domain.PurchaseItem) models.PurchaseItem {
	return models.PurchaseItem{
		ItemID:     d.ItemID,
		PurchaseID: d.PurchaseID,
		ProductID:  d.ProductID,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		TotalPrice: d.TotalPrice,
	}
}

// ToDomainPurchaseItem converts a model PurchaseItem to a domain PurchaseItem
func ToDomainPurchaseItem(m models.PurchaseItem) domain.PurchaseItem {
	return domain.PurchaseItem{
		ItemID:     m.ItemID,
		PurchaseID: m.PurchaseID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		TotalPrice: m.TotalPrice,
	}
}

// ToModelBatch converts a domain ManufacturingBatch to a model ManufacturingBatch
func ToModelBatch(d domain.ManufacturingBatch) models.ManufacturingBatch {
	return models.ManufacturingBatch{
		BatchID:            d.BatchID,
		BatchNumber:        d.BatchNumber,
		ProductID:          d.ProductID,
		QuantityProduced:   d.QuantityProduced,
		Status:             string(d.Status),
		StartDate:          d.StartDate,
		ExpectedCompletion: d.ExpectedCompletion,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a model ManufacturingBatch to a domain ManufacturingBatch
func ToDomainBatch(m models.ManufacturingBatch) domain.ManufacturingBatch {
	return domain.ManufacturingBatch{
		BatchID:            m.BatchID,
		BatchNumber:        m.BatchNumber,
		ProductID:          m.ProductID,
		QuantityProduced:   m.QuantityProduced,
		Status:             domain.BatchStatus(m.Status),
		StartDate:          m.StartDate,
		ExpectedCompletion: m.ExpectedCompletion,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMaterialUsage converts a model MaterialUsage to a domain MaterialUsage
func ToDomainMaterialUsage(m models.MaterialUsage) domain.MaterialUsage {
	return domain.MaterialUsage{
		UsageID:          m.UsageID,
		BatchID:          m.BatchID,
		MaterialID:       m.MaterialID,
		QuantityRequired: m.QuantityRequired,
	}
}
