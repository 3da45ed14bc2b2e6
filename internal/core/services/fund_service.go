package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// fundServiceImpl implements the FundSvcFacade interface
type fundServiceImpl struct {
	BaseService
	fundRepo portsrepo.FundRepositoryWithTx
	saleRepo portsrepo.SaleRepository
	userRepo portsrepo.UserReader
	notifier portssvc.NotifierSvc
	activity portssvc.ActivityLogSvc
}

// FundServiceOption is a functional option for configuring the fund service
type FundServiceOption func(*fundServiceImpl)

// WithNotifier adds the notification sink dependency
func WithNotifier(n portssvc.NotifierSvc) FundServiceOption {
	return func(s *fundServiceImpl) {
		s.notifier = n
	}
}

// WithActivityLog adds the audit trail dependency
func WithActivityLog(a portssvc.ActivityLogSvc) FundServiceOption {
	return func(s *fundServiceImpl) {
		s.activity = a
	}
}

// NewFundService creates a new fund service with the provided options
func NewFundService(fundRepo portsrepo.FundRepositoryWithTx, saleRepo portsrepo.SaleRepository, userRepo portsrepo.UserReader, options ...FundServiceOption) portssvc.FundSvcFacade {
	svc := &fundServiceImpl{
		fundRepo: fundRepo,
		saleRepo: saleRepo,
		userRepo: userRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure fundServiceImpl implements the FundSvcFacade interface
var _ portssvc.FundSvcFacade = (*fundServiceImpl)(nil)

// canViewFund reports whether the actor may see a fund: owners, the sender
// and the holder.
func canViewFund(actor domain.Actor, fund *domain.Fund) bool {
	return actor.IsOwner() || fund.ToUserID == actor.UserID || fund.FromUserID == actor.UserID
}

func (s *fundServiceImpl) TransferFunds(ctx context.Context, actor domain.Actor, req dto.TransferFundsRequest) (*domain.Fund, error) {
	if !actor.IsOwner() {
		return nil, fmt.Errorf("%w: only the owner can transfer funds", apperrors.ErrForbidden)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	recipient, err := s.userRepo.FindUserByID(ctx, req.ToUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find fund recipient", slog.String("to_user_id", req.ToUserID))
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if !recipient.IsActive {
		return nil, fmt.Errorf("%w: recipient %s is inactive", apperrors.ErrValidation, req.ToUserID)
	}
	// Investment funds only ever land with an incharge.
	if recipient.Role != domain.RoleIncharge {
		return nil, fmt.Errorf("%w: recipient %s does not hold the incharge role", apperrors.ErrValidation, req.ToUserID)
	}

	now := time.Now().UTC()
	fund := domain.Fund{
		FundID:        uuid.NewString(),
		Amount:        req.Amount,
		Balance:       req.Amount,
		FromUserID:    actor.UserID,
		ToUserID:      req.ToUserID,
		FundType:      domain.FundInvestment,
		Status:        domain.FundActive,
		Description:   req.Description,
		TransferredAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
		s.LogError(ctx, err, "Failed to save fund", slog.String("fund_id", fund.FundID))
		return nil, err
	}

	s.LogInfo(ctx, "Fund transferred",
		slog.String("fund_id", fund.FundID),
		slog.String("to_user_id", fund.ToUserID),
		slog.String("amount", fund.Amount.String()))

	if s.notifier != nil {
		s.notifier.Notify(ctx, fund.ToUserID, domain.NotifyFundReceived,
			fmt.Sprintf("You received a fund of %s", fund.Amount.String()), fund.FundID)
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "transfer_funds", "funds", fund.FundID,
			fmt.Sprintf("Transferred %s to %s", fund.Amount.String(), recipient.Name))
	}
	return &fund, nil
}

func (s *fundServiceImpl) GetFundByID(ctx context.Context, actor domain.Actor, fundID string) (*domain.Fund, error) {
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if !canViewFund(actor, fund) {
		return nil, fmt.Errorf("%w: fund %s", apperrors.ErrForbidden, fundID)
	}
	return fund, nil
}

func (s *fundServiceImpl) ListFunds(ctx context.Context, actor domain.Actor, params dto.ListFundsParams) (*dto.ListFundsResponse, error) {
	funds, nextToken, err := s.fundRepo.ListFundsByUser(ctx, actor.UserID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list funds", slog.String("user_id", actor.UserID))
		return nil, err
	}

	resp := &dto.ListFundsResponse{
		Funds:     make([]dto.FundResponse, len(funds)),
		NextToken: nextToken,
	}
	for i := range funds {
		resp.Funds[i] = dto.ToFundResponse(&funds[i])
	}
	return resp, nil
}

func (s *fundServiceImpl) GetFundUsages(ctx context.Context, actor domain.Actor, fundID string) ([]dto.FundUsageResponse, error) {
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if !canViewFund(actor, fund) {
		return nil, fmt.Errorf("%w: fund %s", apperrors.ErrForbidden, fundID)
	}

	usages, err := s.fundRepo.FindUsagesByFundID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FundUsageResponse, len(usages))
	for i, u := range usages {
		resp[i] = dto.ToFundUsageResponse(u)
	}
	return resp, nil
}

func (s *fundServiceImpl) RecordFundUsage(ctx context.Context, actor domain.Actor, fundID string, req dto.RecordFundUsageRequest) (*dto.RecordFundUsageResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: usage amount must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidUsageType(req.UsageType) {
		return nil, fmt.Errorf("%w: unknown usage type %s", apperrors.ErrValidation, req.UsageType)
	}

	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	// Only the holder spends a fund. Owners can inspect but not debit on
	// someone else's behalf.
	if fund.ToUserID != actor.UserID {
		return nil, fmt.Errorf("%w: fund %s is not held by the caller", apperrors.ErrForbidden, fundID)
	}
	// Pre-check for a friendly error; the repository re-checks under the row lock.
	if !fund.CanDebit(req.Amount) {
		return nil, fmt.Errorf("%w: fund %s has balance %s, requested %s",
			apperrors.ErrInsufficientFunds, fundID, fund.Balance.String(), req.Amount.String())
	}

	usage := domain.FundUsage{
		UsageID:     uuid.NewString(),
		FundID:      fundID,
		Amount:      req.Amount,
		UsageType:   req.UsageType,
		ReferenceID: req.ReferenceID,
		UsedBy:      actor.UserID,
		Notes:       req.Notes,
		UsedAt:      time.Now().UTC(),
	}

	newBalance, err := s.fundRepo.ApplyUsage(ctx, usage)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply fund usage", slog.String("fund_id", fundID))
		return nil, err
	}

	status := domain.FundActive
	if !newBalance.IsPositive() {
		status = domain.FundDepleted
	}
	s.LogInfo(ctx, "Fund usage recorded",
		slog.String("fund_id", fundID),
		slog.String("usage_id", usage.UsageID),
		slog.String("new_balance", newBalance.String()))

	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "record_fund_usage", "funds", usage.UsageID,
			fmt.Sprintf("Used %s from fund %s", usage.Amount.String(), fundID))
	}
	return &dto.RecordFundUsageResponse{
		FundID:     fundID,
		NewBalance: newBalance,
		Status:     status,
	}, nil
}

func (s *fundServiceImpl) RequestFundReturn(ctx context.Context, actor domain.Actor, req dto.RequestFundReturnRequest) (*domain.FundReturn, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: return amount must be positive", apperrors.ErrValidation)
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, req.SaleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find sale for return", slog.String("sale_id", req.SaleID))
		return nil, fmt.Errorf("invalid sale: %w", err)
	}
	if !actor.IsOwner() && sale.ShopkeeperID != actor.UserID {
		return nil, fmt.Errorf("%w: sale %s belongs to another shopkeeper", apperrors.ErrForbidden, req.SaleID)
	}

	// Sale-cap pre-check for a friendly error: the sum of non-rejected
	// returns against a sale never exceeds the sale's net amount. The
	// repository re-checks under a lock on the sale row before inserting.
	claimed, err := s.fundRepo.SumReturnsBySale(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if claimed.Add(req.Amount).GreaterThan(sale.NetAmount) {
		return nil, fmt.Errorf("%w: sale %s has %s returnable, %s already claimed",
			apperrors.ErrValidation, req.SaleID, sale.NetAmount.String(), claimed.String())
	}

	ret := domain.FundReturn{
		ReturnID:   uuid.NewString(),
		SaleID:     req.SaleID,
		Amount:     req.Amount,
		ReturnedBy: actor.UserID,
		Status:     domain.ReturnPending,
		Notes:      req.Notes,
		ReturnedAt: time.Now().UTC(),
	}
	if err := s.fundRepo.SaveFundReturn(ctx, ret, sale.NetAmount); err != nil {
		s.LogError(ctx, err, "Failed to save fund return", slog.String("return_id", ret.ReturnID))
		return nil, err
	}

	s.LogInfo(ctx, "Fund return requested",
		slog.String("return_id", ret.ReturnID),
		slog.String("sale_id", ret.SaleID),
		slog.String("amount", ret.Amount.String()))

	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "request_fund_return", "funds", ret.ReturnID,
			fmt.Sprintf("Requested return of %s for sale %s", ret.Amount.String(), ret.SaleID))
	}
	return &ret, nil
}

func (s *fundServiceImpl) ProcessFundReturn(ctx context.Context, actor domain.Actor, returnID string, req dto.ProcessFundReturnRequest) (*domain.FundReturn, error) {
	if !actor.IsOwner() {
		return nil, fmt.Errorf("%w: only the owner can process fund returns", apperrors.ErrForbidden)
	}
	approve := req.Action == "approve"

	pending, err := s.fundRepo.FindReturnByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var newFund *domain.Fund
	if approve {
		// Approval creates a RETURN fund held by the owner, traceable to the sale.
		newFund = &domain.Fund{
			FundID:          uuid.NewString(),
			Amount:          pending.Amount,
			Balance:         pending.Amount,
			FromUserID:      pending.ReturnedBy,
			ToUserID:        actor.UserID,
			FundType:        domain.FundReturned,
			Status:          domain.FundActive,
			Description:     fmt.Sprintf("Return from sale %s", pending.SaleID),
			ReferenceSaleID: &pending.SaleID,
			TransferredAt:   now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
	}

	processed, err := s.fundRepo.ProcessReturn(ctx, returnID, approve, actor.UserID, req.Notes, newFund, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to process fund return", slog.String("return_id", returnID))
		return nil, err
	}

	s.LogInfo(ctx, "Fund return processed",
		slog.String("return_id", returnID),
		slog.String("status", string(processed.Status)))

	if s.notifier != nil {
		if approve {
			s.notifier.Notify(ctx, processed.ReturnedBy, domain.NotifyReturnApproved,
				fmt.Sprintf("Your return of %s was approved", processed.Amount.String()), returnID)
		} else {
			s.notifier.Notify(ctx, processed.ReturnedBy, domain.NotifyReturnRejected,
				fmt.Sprintf("Your return of %s was rejected", processed.Amount.String()), returnID)
		}
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "process_fund_return", "funds", returnID,
			fmt.Sprintf("%s return of %s", req.Action, processed.Amount.String()))
	}
	return processed, nil
}

func (s *fundServiceImpl) ListPendingReturns(ctx context.Context, actor domain.Actor, params dto.ListReturnsParams) (*dto.ListReturnsResponse, error) {
	if !actor.IsOwner() {
		return nil, fmt.Errorf("%w: only the owner can review pending returns", apperrors.ErrForbidden)
	}

	returns, nextToken, err := s.fundRepo.ListReturnsByStatus(ctx, domain.ReturnPending, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListReturnsResponse{
		Returns:   make([]dto.FundReturnResponse, len(returns)),
		NextToken: nextToken,
	}
	for i := range returns {
		resp.Returns[i] = dto.ToFundReturnResponse(&returns[i])
	}
	return resp, nil
}
