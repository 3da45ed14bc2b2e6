package services

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// FundReaderSvc defines read operations for fund data
type FundReaderSvc interface {
	// GetFundByID retrieves a fund visible to the actor (owner, sender or holder).
	GetFundByID(ctx context.Context, actor domain.Actor, fundID string) (*domain.Fund, error)

	// ListFunds retrieves a page of the actor's funds.
	ListFunds(ctx context.Context, actor domain.Actor, params dto.ListFundsParams) (*dto.ListFundsResponse, error)

	// GetFundUsages retrieves the usage debits of a fund visible to the actor.
	GetFundUsages(ctx context.Context, actor domain.Actor, fundID string) ([]dto.FundUsageResponse, error)
}

// FundWriterSvc defines write operations for fund data
type FundWriterSvc interface {
	// TransferFunds creates a new active fund handed from the owner to an incharge.
	TransferFunds(ctx context.Context, actor domain.Actor, req dto.TransferFundsRequest) (*domain.Fund, error)

	// RecordFundUsage debits a fund the actor holds through the shared atomic
	// primitive and returns the resulting balance/status.
	RecordFundUsage(ctx context.Context, actor domain.Actor, fundID string, req dto.RecordFundUsageRequest) (*dto.RecordFundUsageResponse, error)
}

// FundReturnSvc defines operations on fund return claims
type FundReturnSvc interface {
	// RequestFundReturn records a pending return claim against a sale,
	// enforcing the sale-cap at write time.
	RequestFundReturn(ctx context.Context, actor domain.Actor, req dto.RequestFundReturnRequest) (*domain.FundReturn, error)

	// ProcessFundReturn approves or rejects a pending return, exactly once.
	ProcessFundReturn(ctx context.Context, actor domain.Actor, returnID string, req dto.ProcessFundReturnRequest) (*domain.FundReturn, error)

	// ListPendingReturns retrieves pending returns for owner review.
	ListPendingReturns(ctx context.Context, actor domain.Actor, params dto.ListReturnsParams) (*dto.ListReturnsResponse, error)
}

// FundSvcFacade combines all fund-related service interfaces
type FundSvcFacade interface {
	FundReaderSvc
	FundWriterSvc
	FundReturnSvc
}
