package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundReader defines read operations for fund data
type FundReader interface {
	// FindFundByID retrieves a specific fund by its unique identifier.
	FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error)

	// ListFundsByUser retrieves a paginated list of funds held by a user
	// (to_user_id), newest first, using token-based pagination.
	ListFundsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Fund, *string, error)

	// FindUsagesByFundID retrieves all usage debits recorded against a fund.
	FindUsagesByFundID(ctx context.Context, fundID string) ([]domain.FundUsage, error)
}

// FundWriter defines write operations for fund data
type FundWriter interface {
	// SaveFund persists a new fund.
	SaveFund(ctx context.Context, fund domain.Fund) error

	// ApplyUsage atomically applies a usage debit to its fund: lock the fund
	// row, re-check it is active with sufficient balance, insert the usage,
	// decrement the balance and flip the fund to DEPLETED when the balance
	// reaches zero. Returns the new balance. This is the single primitive
	// through which every fund debit in the system flows.
	ApplyUsage(ctx context.Context, usage domain.FundUsage) (decimal.Decimal, error)

	// ApplyUsageInTx is ApplyUsage running inside a caller-owned transaction,
	// used by purchase settlement to make the purchase insert and the fund
	// debit one atomic unit.
	ApplyUsageInTx(ctx context.Context, tx pgx.Tx, usage domain.FundUsage) (decimal.Decimal, error)
}

// FundReturnReader defines read operations for fund return claims
type FundReturnReader interface {
	// FindReturnByID retrieves a fund return by its unique identifier.
	FindReturnByID(ctx context.Context, returnID string) (*domain.FundReturn, error)

	// SumReturnsBySale sums the amounts of all non-rejected returns recorded
	// against a sale. Used to enforce the sale-cap at request time.
	SumReturnsBySale(ctx context.Context, saleID string) (decimal.Decimal, error)

	// ListReturnsByStatus retrieves a paginated list of returns in the given
	// status, oldest first.
	ListReturnsByStatus(ctx context.Context, status domain.ReturnStatus, limit int, nextToken *string) ([]domain.FundReturn, *string, error)
}

// FundReturnWriter defines write operations for fund return claims
type FundReturnWriter interface {
	// SaveFundReturn persists a new pending return claim, enforcing the
	// sale-cap under a lock on the sale row: the non-rejected returns
	// against the sale plus the new claim may not exceed netAmount. The
	// re-check under the lock is the final word; concurrent claims against
	// the same sale serialize here. Exceeding the cap yields
	// apperrors.ErrValidation.
	SaveFundReturn(ctx context.Context, ret domain.FundReturn, netAmount decimal.Decimal) error

	// ProcessReturn atomically transitions a PENDING return to APPROVED or
	// REJECTED. The row is locked for the duration of the transaction; a
	// return that is not pending yields apperrors.ErrNotFound so the
	// transition happens at most once. On approval the provided fund is
	// inserted in the same transaction.
	ProcessReturn(ctx context.Context, returnID string, approve bool, approver string, notes string, newFund *domain.Fund, now time.Time) (*domain.FundReturn, error)
}

// FundRepositoryFacade combines all fund-related repository interfaces
type FundRepositoryFacade interface {
	FundReader
	FundWriter
	FundReturnReader
	FundReturnWriter
}

// FundRepositoryWithTx extends FundRepositoryFacade with transaction capabilities
type FundRepositoryWithTx interface {
	FundRepositoryFacade
	TransactionManager
}
