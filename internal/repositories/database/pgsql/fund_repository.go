package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	"github.com/knitworks/garment_mgmt_app/internal/models"
	"github.com/knitworks/garment_mgmt_app/internal/utils/mapping"
	"github.com/knitworks/garment_mgmt_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxFundRepository struct {
	BaseRepository
}

// newPgxFundRepository creates a new repository for fund data.
func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryWithTx {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFundRepository implements portsrepo.FundRepositoryWithTx
var _ portsrepo.FundRepositoryWithTx = (*PgxFundRepository)(nil)

const fundColumns = `fund_id, amount, balance, from_user_id, to_user_id, fund_type, status, description, reference_sale_id, transferred_at, created_at, created_by, last_updated_at, last_updated_by`

func scanFund(row pgx.Row) (*domain.Fund, error) {
	var m models.Fund
	err := row.Scan(
		&m.FundID,
		&m.Amount,
		&m.Balance,
		&m.FromUserID,
		&m.ToUserID,
		&m.FundType,
		&m.Status,
		&m.Description,
		&m.ReferenceSaleID,
		&m.TransferredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	fund := mapping.ToDomainFund(m)
	return &fund, nil
}

// SaveFund inserts a new fund.
func (r *PgxFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	return r.saveFund(ctx, r.Pool, fund)
}

// saveFund runs the fund insert against either the pool or a transaction.
func (r *PgxFundRepository) saveFund(ctx context.Context, q queryExecer, fund domain.Fund) error {
	m := mapping.ToModelFund(fund)
	query := `
		INSERT INTO funds (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := q.Exec(ctx, query,
		m.FundID,
		m.Amount,
		m.Balance,
		m.FromUserID,
		m.ToUserID,
		m.FundType,
		m.Status,
		m.Description,
		m.ReferenceSaleID,
		m.TransferredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fund with ID %s already exists", apperrors.ErrDuplicate, m.FundID)
		}
		return fmt.Errorf("failed to save fund %s: %w", m.FundID, err)
	}
	return nil
}

// FindFundByID retrieves a fund by its ID.
func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = $1;`
	fund, err := scanFund(r.Pool.QueryRow(ctx, query, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund by ID %s: %w", fundID, err)
	}
	return fund, nil
}

// ListFundsByUser retrieves a page of funds held by a user, newest first.
// The page token carries the last row's (transferred_at, created_at) pair.
func (r *PgxFundRepository) ListFundsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Fund, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + fundColumns + ` FROM funds WHERE to_user_id = $1`
	args := []interface{}{userID}

	if nextToken != nil && *nextToken != "" {
		transferredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		query += ` AND (transferred_at, created_at) < ($2, $3)`
		args = append(args, transferredAt, createdAt)
	}

	query += fmt.Sprintf(` ORDER BY transferred_at DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // Fetch one extra to detect the next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query funds for user %s: %w", userID, err)
	}
	defer rows.Close()

	funds := []domain.Fund{}
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan fund row: %w", err)
		}
		funds = append(funds, *fund)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating fund rows: %w", err)
	}

	var newToken *string
	if len(funds) > limit {
		funds = funds[:limit]
		last := funds[len(funds)-1]
		token := pagination.EncodeToken(last.TransferredAt, last.CreatedAt)
		newToken = &token
	}
	return funds, newToken, nil
}

// FindUsagesByFundID retrieves all usage debits recorded against a fund, oldest first.
func (r *PgxFundRepository) FindUsagesByFundID(ctx context.Context, fundID string) ([]domain.FundUsage, error) {
	query := `
		SELECT usage_id, fund_id, amount, usage_type, reference_id, used_by, notes, used_at
		FROM fund_usages
		WHERE fund_id = $1
		ORDER BY used_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query usages for fund %s: %w", fundID, err)
	}
	defer rows.Close()

	usages := []domain.FundUsage{}
	for rows.Next() {
		var m models.FundUsage
		err := rows.Scan(&m.UsageID, &m.FundID, &m.Amount, &m.UsageType, &m.ReferenceID, &m.UsedBy, &m.Notes, &m.UsedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund usage row: %w", err)
		}
		usages = append(usages, mapping.ToDomainFundUsage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund usage rows: %w", err)
	}
	return usages, nil
}

// ApplyUsage applies a usage debit inside its own transaction.
func (r *PgxFundRepository) ApplyUsage(ctx context.Context, usage domain.FundUsage) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	newBalance, err := r.ApplyUsageInTx(ctx, tx, usage)
	if err != nil {
		return decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// ApplyUsageInTx is the single primitive through which every fund debit flows.
// It locks the fund row, re-checks the balance under the lock, inserts the
// usage, decrements the balance and flips the fund to DEPLETED when the
// balance hits zero.
func (r *PgxFundRepository) ApplyUsageInTx(ctx context.Context, tx pgx.Tx, usage domain.FundUsage) (decimal.Decimal, error) {
	lockQuery := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = $1 FOR UPDATE;`
	fund, err := scanFund(tx.QueryRow(ctx, lockQuery, usage.FundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, usage.FundID)
		}
		return decimal.Zero, fmt.Errorf("failed to lock fund %s: %w", usage.FundID, err)
	}

	// The check must happen under the row lock so concurrent debits serialize.
	if !fund.CanDebit(usage.Amount) {
		return decimal.Zero, fmt.Errorf("%w: fund %s has balance %s, requested %s",
			apperrors.ErrInsufficientFunds, fund.FundID, fund.Balance.String(), usage.Amount.String())
	}

	mUsage := mapping.ToModelFundUsage(usage)
	insertQuery := `
		INSERT INTO fund_usages (usage_id, fund_id, amount, usage_type, reference_id, used_by, notes, used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		mUsage.UsageID,
		mUsage.FundID,
		mUsage.Amount,
		mUsage.UsageType,
		mUsage.ReferenceID,
		mUsage.UsedBy,
		mUsage.Notes,
		mUsage.UsedAt,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to insert fund usage %s: %w", mUsage.UsageID, err)
	}

	newBalance := fund.Balance.Sub(usage.Amount)
	status := domain.FundActive
	if !newBalance.IsPositive() {
		status = domain.FundDepleted
	}

	updateQuery := `
		UPDATE funds
		SET balance = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fund_id = $1;
	`
	ct, err := tx.Exec(ctx, updateQuery, fund.FundID, newBalance, string(status), usage.UsedAt, usage.UsedBy)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance for fund %s: %w", fund.FundID, err)
	}
	if ct.RowsAffected() == 0 {
		return decimal.Zero, fmt.Errorf("%w: fund %s vanished during balance update", apperrors.ErrNotFound, fund.FundID)
	}
	return newBalance, nil
}

// SaveFundReturn persists a new pending return claim. The sale row is locked
// first so concurrent claims against the same sale serialize, then the cap is
// re-checked against the in-transaction sum of non-rejected returns before the
// insert. Callers may pre-check for a friendlier error; this is the final word.
func (r *PgxFundRepository) SaveFundReturn(ctx context.Context, ret domain.FundReturn, netAmount decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var saleID string
	err = tx.QueryRow(ctx, `SELECT sale_id FROM sales WHERE sale_id = $1 FOR UPDATE;`, ret.SaleID).Scan(&saleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, ret.SaleID)
		}
		return fmt.Errorf("failed to lock sale %s: %w", ret.SaleID, err)
	}

	var claimed decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM fund_returns
		WHERE sale_id = $1 AND status != $2;
	`, ret.SaleID, string(domain.ReturnRejected)).Scan(&claimed)
	if err != nil {
		return fmt.Errorf("failed to sum returns for sale %s: %w", ret.SaleID, err)
	}
	if claimed.Add(ret.Amount).GreaterThan(netAmount) {
		return fmt.Errorf("%w: sale %s has %s returnable, %s already claimed",
			apperrors.ErrValidation, ret.SaleID, netAmount.String(), claimed.String())
	}

	m := mapping.ToModelFundReturn(ret)
	query := `
		INSERT INTO fund_returns (return_id, sale_id, amount, returned_by, status, notes, returned_at, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.ReturnID,
		m.SaleID,
		m.Amount,
		m.ReturnedBy,
		m.Status,
		m.Notes,
		m.ReturnedAt,
		m.ApprovedBy,
		m.ApprovedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fund return with ID %s already exists", apperrors.ErrDuplicate, m.ReturnID)
		}
		return fmt.Errorf("failed to save fund return %s: %w", m.ReturnID, err)
	}
	return r.Commit(ctx, tx)
}

const fundReturnColumns = `return_id, sale_id, amount, returned_by, status, notes, returned_at, approved_by, approved_at`

func scanFundReturn(row pgx.Row) (*domain.FundReturn, error) {
	var m models.FundReturn
	err := row.Scan(
		&m.ReturnID,
		&m.SaleID,
		&m.Amount,
		&m.ReturnedBy,
		&m.Status,
		&m.Notes,
		&m.ReturnedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	ret := mapping.ToDomainFundReturn(m)
	return &ret, nil
}

// FindReturnByID retrieves a fund return by its ID.
func (r *PgxFundRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.FundReturn, error) {
	query := `SELECT ` + fundReturnColumns + ` FROM fund_returns WHERE return_id = $1;`
	ret, err := scanFundReturn(r.Pool.QueryRow(ctx, query, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund return by ID %s: %w", returnID, err)
	}
	return ret, nil
}

// SumReturnsBySale sums non-rejected return amounts recorded against a sale.
func (r *PgxFundRepository) SumReturnsBySale(ctx context.Context, saleID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM fund_returns
		WHERE sale_id = $1 AND status != $2;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, saleID, string(domain.ReturnRejected)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum returns for sale %s: %w", saleID, err)
	}
	return total, nil
}

// ListReturnsByStatus retrieves a page of returns in the given status, oldest first.
func (r *PgxFundRepository) ListReturnsByStatus(ctx context.Context, status domain.ReturnStatus, limit int, nextToken *string) ([]domain.FundReturn, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + fundReturnColumns + ` FROM fund_returns WHERE status = $1`
	args := []interface{}{string(status)}

	if nextToken != nil && *nextToken != "" {
		after, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		query += ` AND returned_at > $2`
		args = append(args, after)
	}

	query += fmt.Sprintf(` ORDER BY returned_at ASC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query returns by status %s: %w", status, err)
	}
	defer rows.Close()

	returns := []domain.FundReturn{}
	for rows.Next() {
		ret, err := scanFundReturn(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan fund return row: %w", err)
		}
		returns = append(returns, *ret)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating fund return rows: %w", err)
	}

	var newToken *string
	if len(returns) > limit {
		returns = returns[:limit]
		token := pagination.EncodeDateBasedToken(returns[len(returns)-1].ReturnedAt)
		newToken = &token
	}
	return returns, newToken, nil
}

// ProcessReturn transitions a PENDING return to APPROVED or REJECTED exactly
// once. The row is locked with the pending filter in the query itself, so a
// second processor finds no row and gets ErrNotFound. On approval the new
// RETURN fund is inserted in the same transaction.
func (r *PgxFundRepository) ProcessReturn(ctx context.Context, returnID string, approve bool, approver string, notes string, newFund *domain.Fund, now time.Time) (*domain.FundReturn, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + fundReturnColumns + ` FROM fund_returns WHERE return_id = $1 AND status = $2 FOR UPDATE;`
	ret, err := scanFundReturn(tx.QueryRow(ctx, lockQuery, returnID, string(domain.ReturnPending)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing or already processed, indistinguishable on purpose.
			return nil, fmt.Errorf("%w: pending fund return %s", apperrors.ErrNotFound, returnID)
		}
		return nil, fmt.Errorf("failed to lock fund return %s: %w", returnID, err)
	}

	newStatus := domain.ReturnRejected
	if approve {
		newStatus = domain.ReturnApproved
	}

	updateQuery := `
		UPDATE fund_returns
		SET status = $2, notes = $3, approved_by = $4, approved_at = $5
		WHERE return_id = $1;
	`
	if notes == "" {
		notes = ret.Notes
	}
	_, err = tx.Exec(ctx, updateQuery, returnID, string(newStatus), notes, approver, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update fund return %s: %w", returnID, err)
	}

	if approve && newFund != nil {
		if err := r.saveFund(ctx, tx, *newFund); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	ret.Status = newStatus
	ret.Notes = notes
	ret.ApprovedBy = &approver
	approvedAt := now
	ret.ApprovedAt = &approvedAt
	return ret, nil
}
