package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	"github.com/knitworks/garment_mgmt_app/internal/models"
	"github.com/knitworks/garment_mgmt_app/internal/utils/mapping"
	"github.com/knitworks/garment_mgmt_app/internal/utils/pagination"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryWithTx
var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

const recordColumns = `product_id, location, shopkeeper_id, quantity, updated_at`

func scanRecord(row pgx.Row) (*domain.InventoryRecord, error) {
	var m models.InventoryRecord
	err := row.Scan(&m.ProductID, &m.Location, &m.ShopkeeperID, &m.Quantity, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec := mapping.ToDomainInventoryRecord(m)
	return &rec, nil
}

// FindRecord retrieves the inventory record for a product at a location.
func (r *PgxInventoryRepository) FindRecord(ctx context.Context, productID string, location domain.Location, shopkeeperID *string) (*domain.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE product_id = $1 AND location = $2`
	args := []interface{}{productID, string(location)}
	if shopkeeperID != nil {
		query += ` AND shopkeeper_id = $3;`
		args = append(args, *shopkeeperID)
	} else {
		query += ` AND shopkeeper_id IS NULL;`
	}

	rec, err := scanRecord(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory record for product %s at %s: %w", productID, location, err)
	}
	return rec, nil
}

// ListRecordsByProduct retrieves every location record for a product.
func (r *PgxInventoryRepository) ListRecordsByProduct(ctx context.Context, productID string) ([]domain.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records
		WHERE product_id = $1
		ORDER BY location, shopkeeper_id NULLS FIRST;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory records for product %s: %w", productID, err)
	}
	defer rows.Close()

	records := []domain.InventoryRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory record rows: %w", err)
	}
	return records, nil
}

const transferColumns = `transfer_id, product_id, from_location, to_location, quantity, status, initiated_by, confirmed_by, shopkeeper_id, from_shopkeeper_id, transfer_date, confirmation_date, notes`

func scanTransfer(row pgx.Row) (*domain.InventoryTransfer, error) {
	var m models.InventoryTransfer
	err := row.Scan(
		&m.TransferID,
		&m.ProductID,
		&m.FromLocation,
		&m.ToLocation,
		&m.Quantity,
		&m.Status,
		&m.InitiatedBy,
		&m.ConfirmedBy,
		&m.ShopkeeperID,
		&m.FromShopkeeperID,
		&m.TransferDate,
		&m.ConfirmationDate,
		&m.Notes,
	)
	if err != nil {
		return nil, err
	}
	t := mapping.ToDomainInventoryTransfer(m)
	return &t, nil
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxInventoryRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.InventoryTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM inventory_transfers WHERE transfer_id = $1;`
	t, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer by ID %s: %w", transferID, err)
	}
	return t, nil
}

// ListTransfers retrieves a page of transfers, newest first, optionally filtered by status.
func (r *PgxInventoryRepository) ListTransfers(ctx context.Context, status *domain.TransferStatus, limit int, nextToken *string) ([]domain.InventoryTransfer, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transferColumns + ` FROM inventory_transfers WHERE 1=1`
	args := []interface{}{}

	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if nextToken != nil && *nextToken != "" {
		before, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		args = append(args, before)
		query += fmt.Sprintf(` AND transfer_date < $%d`, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY transfer_date DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	transfers := []domain.InventoryTransfer{}
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		transfers = append(transfers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}

	var newToken *string
	if len(transfers) > limit {
		transfers = transfers[:limit]
		token := pagination.EncodeDateBasedToken(transfers[len(transfers)-1].TransferDate)
		newToken = &token
	}
	return transfers, newToken, nil
}

// debitRecord locks a record row and decrements it, failing if the remaining
// quantity would go negative. The quantity guard in the WHERE clause is the
// final word even if the caller pre-checked.
func (r *PgxInventoryRepository) debitRecord(ctx context.Context, tx pgx.Tx, productID string, location domain.Location, shopkeeperID *string, quantity int64, now time.Time) error {
	lockQuery := `SELECT quantity FROM inventory_records WHERE product_id = $1 AND location = $2`
	lockArgs := []interface{}{productID, string(location)}
	if shopkeeperID != nil {
		lockQuery += ` AND shopkeeper_id = $3 FOR UPDATE;`
		lockArgs = append(lockArgs, *shopkeeperID)
	} else {
		lockQuery += ` AND shopkeeper_id IS NULL FOR UPDATE;`
	}

	var available int64
	if err := tx.QueryRow(ctx, lockQuery, lockArgs...).Scan(&available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no stock of product %s at %s", apperrors.ErrInsufficientStock, productID, location)
		}
		return fmt.Errorf("failed to lock inventory record for product %s at %s: %w", productID, location, err)
	}
	if available < quantity {
		return fmt.Errorf("%w: product %s at %s has %d, requested %d", apperrors.ErrInsufficientStock, productID, location, available, quantity)
	}

	var (
		ct  pgconn.CommandTag
		err error
	)
	if shopkeeperID != nil {
		ct, err = tx.Exec(ctx, `
			UPDATE inventory_records
			SET quantity = quantity - $4, updated_at = $5
			WHERE product_id = $1 AND location = $2 AND shopkeeper_id = $3 AND quantity >= $4;
		`, productID, string(location), *shopkeeperID, quantity, now)
	} else {
		ct, err = tx.Exec(ctx, `
			UPDATE inventory_records
			SET quantity = quantity - $3, updated_at = $4
			WHERE product_id = $1 AND location = $2 AND shopkeeper_id IS NULL AND quantity >= $3;
		`, productID, string(location), quantity, now)
	}
	if err != nil {
		return fmt.Errorf("failed to debit inventory record for product %s at %s: %w", productID, location, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s at %s", apperrors.ErrInsufficientStock, productID, location)
	}
	return nil
}

// creditRecord upserts quantity into a record row. The partial unique indexes
// on inventory_records make ON CONFLICT resolve to the one row per
// (product, location, shopkeeper scope).
func (r *PgxInventoryRepository) creditRecord(ctx context.Context, tx pgx.Tx, productID string, location domain.Location, shopkeeperID *string, quantity int64, now time.Time) error {
	var query string
	var args []interface{}
	if shopkeeperID != nil {
		query = `
			INSERT INTO inventory_records (product_id, location, shopkeeper_id, quantity, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (product_id, location, shopkeeper_id) WHERE shopkeeper_id IS NOT NULL
			DO UPDATE SET quantity = inventory_records.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at;
		`
		args = []interface{}{productID, string(location), *shopkeeperID, quantity, now}
	} else {
		query = `
			INSERT INTO inventory_records (product_id, location, shopkeeper_id, quantity, updated_at)
			VALUES ($1, $2, NULL, $3, $4)
			ON CONFLICT (product_id, location) WHERE shopkeeper_id IS NULL
			DO UPDATE SET quantity = inventory_records.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at;
		`
		args = []interface{}{productID, string(location), quantity, now}
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to credit inventory record for product %s at %s: %w", productID, location, err)
	}
	return nil
}

// insertTransfer writes the movement row.
func (r *PgxInventoryRepository) insertTransfer(ctx context.Context, tx pgx.Tx, transfer domain.InventoryTransfer) error {
	m := mapping.ToModelInventoryTransfer(transfer)
	query := `
		INSERT INTO inventory_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.TransferID,
		m.ProductID,
		m.FromLocation,
		m.ToLocation,
		m.Quantity,
		m.Status,
		m.InitiatedBy,
		m.ConfirmedBy,
		m.ShopkeeperID,
		m.FromShopkeeperID,
		m.TransferDate,
		m.ConfirmationDate,
		m.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer with ID %s already exists", apperrors.ErrDuplicate, m.TransferID)
		}
		return fmt.Errorf("failed to insert transfer %s: %w", m.TransferID, err)
	}
	return nil
}

// ApplyTransfer executes a transfer atomically: debit the source under a row
// lock, credit the destination and record the movement. Source and destination
// quantities change by the same amount in the same transaction or not at all.
func (r *PgxInventoryRepository) ApplyTransfer(ctx context.Context, transfer domain.InventoryTransfer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Wholesale is the only shopkeeper-scoped location. The source and
	// destination scopes come from separate fields so a wholesale-sourced
	// transfer debits the right shopkeeper's row.
	var srcShopkeeper, dstShopkeeper *string
	if transfer.FromLocation == domain.LocationWholesale {
		srcShopkeeper = transfer.FromShopkeeperID
	}
	if transfer.ToLocation == domain.LocationWholesale {
		dstShopkeeper = transfer.ShopkeeperID
	}

	if err := r.debitRecord(ctx, tx, transfer.ProductID, transfer.FromLocation, srcShopkeeper, transfer.Quantity, transfer.TransferDate); err != nil {
		return err
	}
	if err := r.creditRecord(ctx, tx, transfer.ProductID, transfer.ToLocation, dstShopkeeper, transfer.Quantity, transfer.TransferDate); err != nil {
		return err
	}
	if err := r.insertTransfer(ctx, tx, transfer); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ConfirmTransfer lands a PENDING transfer's quantity in the destination
// shopkeeper's wholesale stock. The pending filter in the locking query makes
// the transition happen at most once; a second confirmer gets ErrNotFound.
func (r *PgxInventoryRepository) ConfirmTransfer(ctx context.Context, transferID string, confirmedBy string, destShopkeeperID string, notes string, now time.Time) (*domain.InventoryTransfer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + transferColumns + ` FROM inventory_transfers WHERE transfer_id = $1 AND status = $2 FOR UPDATE;`
	transfer, err := scanTransfer(tx.QueryRow(ctx, lockQuery, transferID, string(domain.TransferPending)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pending transfer %s", apperrors.ErrNotFound, transferID)
		}
		return nil, fmt.Errorf("failed to lock transfer %s: %w", transferID, err)
	}

	if err := r.debitRecord(ctx, tx, transfer.ProductID, domain.LocationTransit, nil, transfer.Quantity, now); err != nil {
		return nil, err
	}
	if err := r.creditRecord(ctx, tx, transfer.ProductID, domain.LocationWholesale, &destShopkeeperID, transfer.Quantity, now); err != nil {
		return nil, err
	}

	if notes == "" {
		notes = transfer.Notes
	}
	updateQuery := `
		UPDATE inventory_transfers
		SET status = $2, confirmed_by = $3, confirmation_date = $4, notes = $5
		WHERE transfer_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery, transferID, string(domain.TransferConfirmed), confirmedBy, now, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update transfer %s: %w", transferID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	transfer.Status = domain.TransferConfirmed
	transfer.ConfirmedBy = &confirmedBy
	confirmedAt := now
	transfer.ConfirmationDate = &confirmedAt
	transfer.Notes = notes
	return transfer, nil
}
