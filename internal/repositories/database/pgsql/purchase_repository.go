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

type PgxPurchaseRepository struct {
	BaseRepository
	fundRepo portsrepo.FundWriter
}

// newPgxPurchaseRepository creates a new repository for purchase data. It
// takes the fund repository so purchase settlement can run the fund debit
// inside its own transaction.
func newPgxPurchaseRepository(pool *pgxpool.Pool, fundRepo portsrepo.FundWriter) portsrepo.PurchaseRepository {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}, fundRepo: fundRepo}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepository
var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

// SavePurchase persists the purchase with its line items and debits the
// paying fund, all in one transaction. The debit goes through the shared
// fund-usage primitive so a concurrent purchase against the same fund
// serializes on the fund row lock.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, usage domain.FundUsage) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPurchase(purchase)
	purchaseQuery := `
		INSERT INTO purchases (purchase_id, supplier_id, total_amount, payment_status, fund_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, purchaseQuery,
		m.PurchaseID,
		m.SupplierID,
		m.TotalAmount,
		m.PaymentStatus,
		m.FundID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase with ID %s already exists", apperrors.ErrDuplicate, m.PurchaseID)
		}
		return fmt.Errorf("failed to insert purchase %s: %w", m.PurchaseID, err)
	}

	itemQuery := `
		INSERT INTO purchase_items (item_id, purchase_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range purchase.Items {
		mi := mapping.ToModelPurchaseItem(item)
		batch.Queue(itemQuery, mi.ItemID, mi.PurchaseID, mi.ProductID, mi.Quantity, mi.UnitPrice, mi.TotalPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert purchase item for purchase %s: %w", m.PurchaseID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close purchase item batch: %w", err)
	}

	if _, err := r.fundRepo.ApplyUsageInTx(ctx, tx, usage); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindPurchaseByID retrieves a purchase with its line items.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `
		SELECT purchase_id, supplier_id, total_amount, payment_status, fund_id, created_at, created_by, last_updated_at, last_updated_by
		FROM purchases
		WHERE purchase_id = $1;
	`
	var m models.Purchase
	err := r.Pool.QueryRow(ctx, query, purchaseID).Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.TotalAmount,
		&m.PaymentStatus,
		&m.FundID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}
	purchase := mapping.ToDomainPurchase(m)

	itemsQuery := `
		SELECT item_id, purchase_id, product_id, quantity, unit_price, total_price
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY item_id;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mi models.PurchaseItem
		err := rows.Scan(&mi.ItemID, &mi.PurchaseID, &mi.ProductID, &mi.Quantity, &mi.UnitPrice, &mi.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase item row: %w", err)
		}
		purchase.Items = append(purchase.Items, mapping.ToDomainPurchaseItem(mi))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase item rows: %w", err)
	}
	return &purchase, nil
}
