package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	"github.com/knitworks/garment_mgmt_app/internal/models"
	"github.com/knitworks/garment_mgmt_app/internal/utils/mapping"
)

// Reference data repositories are read-only for the core. Stock mutation of
// raw materials happens only inside the batch repository's transaction.

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{pool: pool}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

// Helper to convert models.Product from DB to domain.Product
func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		SKU:         m.SKU,
		IsActive:    m.IsActive,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, name, sku, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1;
	`
	var m models.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	p := toDomainProduct(m)
	return &p, nil
}

type PgxRawMaterialRepository struct {
	pool *pgxpool.Pool
}

func newPgxRawMaterialRepository(pool *pgxpool.Pool) portsrepo.RawMaterialRepository {
	return &PgxRawMaterialRepository{pool: pool}
}

var _ portsrepo.RawMaterialRepository = (*PgxRawMaterialRepository)(nil)

func toDomainRawMaterial(m models.RawMaterial) domain.RawMaterial {
	return domain.RawMaterial{
		MaterialID:    m.MaterialID,
		Name:          m.Name,
		Unit:          m.Unit,
		StockQuantity: m.StockQuantity,
		AuditFields:   mapping.ToDomainAuditFields(m.AuditFields),
	}
}

const rawMaterialColumns = `material_id, name, unit, stock_quantity, created_at, created_by, last_updated_at, last_updated_by`

func scanRawMaterial(row pgx.Row) (*domain.RawMaterial, error) {
	var m models.RawMaterial
	err := row.Scan(
		&m.MaterialID,
		&m.Name,
		&m.Unit,
		&m.StockQuantity,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	mat := toDomainRawMaterial(m)
	return &mat, nil
}

// FindRawMaterialByID retrieves a raw material by its ID.
func (r *PgxRawMaterialRepository) FindRawMaterialByID(ctx context.Context, materialID string) (*domain.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE material_id = $1;`
	mat, err := scanRawMaterial(r.pool.QueryRow(ctx, query, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find raw material by ID %s: %w", materialID, err)
	}
	return mat, nil
}

// FindRawMaterialsByIDs retrieves multiple raw materials by their IDs. Missing
// IDs simply do not appear in the map; the caller checks completeness.
func (r *PgxRawMaterialRepository) FindRawMaterialsByIDs(ctx context.Context, materialIDs []string) (map[string]domain.RawMaterial, error) {
	if len(materialIDs) == 0 {
		return map[string]domain.RawMaterial{}, nil
	}

	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE material_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, materialIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw materials by IDs: %w", err)
	}
	defer rows.Close()

	materials := make(map[string]domain.RawMaterial)
	for rows.Next() {
		mat, err := scanRawMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raw material row: %w", err)
		}
		materials[mat.MaterialID] = *mat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw material rows: %w", err)
	}
	return materials, nil
}

type PgxSupplierRepository struct {
	pool *pgxpool.Pool
}

func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepository {
	return &PgxSupplierRepository{pool: pool}
}

var _ portsrepo.SupplierRepository = (*PgxSupplierRepository)(nil)

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		WHERE supplier_id = $1;
	`
	var m models.Supplier
	err := r.pool.QueryRow(ctx, query, supplierID).Scan(
		&m.SupplierID,
		&m.Name,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID %s: %w", supplierID, err)
	}
	return &domain.Supplier{
		SupplierID:  m.SupplierID,
		Name:        m.Name,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}, nil
}

type PgxSaleRepository struct {
	pool *pgxpool.Pool
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepository {
	return &PgxSaleRepository{pool: pool}
}

var _ portsrepo.SaleRepository = (*PgxSaleRepository)(nil)

// FindSaleByID retrieves a sale by its ID.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT sale_id, shopkeeper_id, customer_id, net_amount, sale_date
		FROM sales
		WHERE sale_id = $1;
	`
	var m models.Sale
	err := r.pool.QueryRow(ctx, query, saleID).Scan(
		&m.SaleID,
		&m.ShopkeeperID,
		&m.CustomerID,
		&m.NetAmount,
		&m.SaleDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	return &domain.Sale{
		SaleID:       m.SaleID,
		ShopkeeperID: m.ShopkeeperID,
		CustomerID:   m.CustomerID,
		NetAmount:    m.NetAmount,
		SaleDate:     m.SaleDate,
	}, nil
}
