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
	"github.com/shopspring/decimal"
)

type PgxBatchRepository struct {
	BaseRepository
}

// newPgxBatchRepository creates a new repository for manufacturing batches.
func newPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepository {
	return &PgxBatchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBatchRepository implements portsrepo.BatchRepository
var _ portsrepo.BatchRepository = (*PgxBatchRepository)(nil)

// SaveBatch persists the batch with its material usages and decrements the
// stock of every consumed material in one transaction. Material rows are
// locked and re-checked under the lock; any shortage aborts the whole batch.
func (r *PgxBatchRepository) SaveBatch(ctx context.Context, batch domain.ManufacturingBatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	materialIDs := make([]string, 0, len(batch.Materials))
	required := make(map[string]decimal.Decimal, len(batch.Materials))
	for _, mu := range batch.Materials {
		materialIDs = append(materialIDs, mu.MaterialID)
		required[mu.MaterialID] = required[mu.MaterialID].Add(mu.QuantityRequired)
	}

	lockQuery := `
		SELECT material_id, name, stock_quantity
		FROM raw_materials
		WHERE material_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, materialIDs)
	if err != nil {
		return fmt.Errorf("failed to lock raw materials: %w", err)
	}

	type lockedMaterial struct {
		name  string
		stock decimal.Decimal
	}
	locked := make(map[string]lockedMaterial, len(materialIDs))
	for rows.Next() {
		var id, name string
		var stock decimal.Decimal
		if err := rows.Scan(&id, &name, &stock); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked raw material row: %w", err)
		}
		locked[id] = lockedMaterial{name: name, stock: stock}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked raw material rows: %w", err)
	}

	// Availability check happens under the locks so concurrent batches
	// consuming the same materials serialize.
	for id, need := range required {
		mat, found := locked[id]
		if !found {
			return fmt.Errorf("%w: raw material %s", apperrors.ErrNotFound, id)
		}
		if mat.stock.LessThan(need) {
			return fmt.Errorf("%w: material %s has %s %s, batch needs %s",
				apperrors.ErrInsufficientStock, mat.name, mat.stock.String(), id, need.String())
		}
	}

	m := mapping.ToModelBatch(batch)
	batchQuery := `
		INSERT INTO manufacturing_batches (batch_id, batch_number, product_id, quantity_produced, status, start_date, expected_completion, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, batchQuery,
		m.BatchID,
		m.BatchNumber,
		m.ProductID,
		m.QuantityProduced,
		m.Status,
		m.StartDate,
		m.ExpectedCompletion,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Batch number collision, the service retries with a fresh number.
			return fmt.Errorf("%w: batch number %s already exists", apperrors.ErrDuplicate, m.BatchNumber)
		}
		return fmt.Errorf("failed to insert batch %s: %w", m.BatchID, err)
	}

	usageQuery := `
		INSERT INTO material_usages (usage_id, batch_id, material_id, quantity_required)
		VALUES ($1, $2, $3, $4);
	`
	decrementQuery := `
		UPDATE raw_materials
		SET stock_quantity = stock_quantity - $2, last_updated_at = $3, last_updated_by = $4
		WHERE material_id = $1 AND stock_quantity >= $2;
	`
	batchOps := &pgx.Batch{}
	for _, mu := range batch.Materials {
		batchOps.Queue(usageQuery, mu.UsageID, mu.BatchID, mu.MaterialID, mu.QuantityRequired)
	}
	for id, need := range required {
		batchOps.Queue(decrementQuery, id, need, batch.LastUpdatedAt, batch.LastUpdatedBy)
	}

	br := tx.SendBatch(ctx, batchOps)
	var batchErr error
	for i := 0; i < batchOps.Len(); i++ {
		ct, err := br.Exec()
		if err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to apply batch material operation: %w", err)
		} else if err == nil && i >= len(batch.Materials) && ct.RowsAffected() == 0 {
			// Decrement guard fired despite the lock check.
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: raw material stock changed during batch save", apperrors.ErrInsufficientStock)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close batch material operations: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}

// FindBatchByID retrieves a batch with its material usages.
func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.ManufacturingBatch, error) {
	query := `
		SELECT batch_id, batch_number, product_id, quantity_produced, status, start_date, expected_completion, created_at, created_by, last_updated_at, last_updated_by
		FROM manufacturing_batches
		WHERE batch_id = $1;
	`
	var m models.ManufacturingBatch
	err := r.Pool.QueryRow(ctx, query, batchID).Scan(
		&m.BatchID,
		&m.BatchNumber,
		&m.ProductID,
		&m.QuantityProduced,
		&m.Status,
		&m.StartDate,
		&m.ExpectedCompletion,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch by ID %s: %w", batchID, err)
	}
	batch := mapping.ToDomainBatch(m)

	usagesQuery := `
		SELECT usage_id, batch_id, material_id, quantity_required
		FROM material_usages
		WHERE batch_id = $1
		ORDER BY usage_id;
	`
	rows, err := r.Pool.Query(ctx, usagesQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query material usages for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mu models.MaterialUsage
		if err := rows.Scan(&mu.UsageID, &mu.BatchID, &mu.MaterialID, &mu.QuantityRequired); err != nil {
			return nil, fmt.Errorf("failed to scan material usage row: %w", err)
		}
		batch.Materials = append(batch.Materials, mapping.ToDomainMaterialUsage(mu))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material usage rows: %w", err)
	}
	return &batch, nil
}

// BatchNumberExists reports whether a batch number is already taken.
func (r *PgxBatchRepository) BatchNumberExists(ctx context.Context, batchNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM manufacturing_batches WHERE batch_number = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, batchNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check batch number %s: %w", batchNumber, err)
	}
	return exists, nil
}
