package repositories

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// Reference data is read-only for the core: lookups by ID with "not found"
// treated as a validation failure by the services.

// ProductRepository defines read operations for products.
type ProductRepository interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// RawMaterialRepository defines read operations for raw materials. Stock
// mutation happens only inside BatchRepository.SaveBatch.
type RawMaterialRepository interface {
	FindRawMaterialByID(ctx context.Context, materialID string) (*domain.RawMaterial, error)
	FindRawMaterialsByIDs(ctx context.Context, materialIDs []string) (map[string]domain.RawMaterial, error)
}

// SupplierRepository defines read operations for suppliers.
type SupplierRepository interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

// SaleRepository defines read operations for sales.
type SaleRepository interface {
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
}
