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
	"github.com/knitworks/garment_mgmt_app/internal/utils/accounting"
)

// purchaseServiceImpl implements the PurchaseSvcFacade interface
type purchaseServiceImpl struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepository
	fundRepo     portsrepo.FundRepositoryWithTx
	supplierRepo portsrepo.SupplierRepository
	productRepo  portsrepo.ProductRepository
	activity     portssvc.ActivityLogSvc
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepository, fundRepo portsrepo.FundRepositoryWithTx, supplierRepo portsrepo.SupplierRepository, productRepo portsrepo.ProductRepository, activity portssvc.ActivityLogSvc) portssvc.PurchaseSvcFacade {
	return &purchaseServiceImpl{
		purchaseRepo: purchaseRepo,
		fundRepo:     fundRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		activity:     activity,
	}
}

// Ensure purchaseServiceImpl implements the PurchaseSvcFacade interface
var _ portssvc.PurchaseSvcFacade = (*purchaseServiceImpl)(nil)

func (s *purchaseServiceImpl) CreatePurchase(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: purchase total must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	purchaseID := uuid.NewString()

	items := make([]domain.PurchaseItem, len(req.Items))
	for i, line := range req.Items {
		if _, err := s.productRepo.FindProductByID(ctx, line.ProductID); err != nil {
			return nil, fmt.Errorf("invalid product %s: %w", line.ProductID, err)
		}
		items[i] = domain.PurchaseItem{
			ItemID:     uuid.NewString(),
			PurchaseID: purchaseID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		}
	}
	if err := accounting.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	purchase := domain.Purchase{
		PurchaseID:    purchaseID,
		SupplierID:    req.SupplierID,
		TotalAmount:   req.TotalAmount,
		PaymentStatus: domain.PaymentPaid,
		FundID:        req.FundID,
		Items:         items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	// The declared total must agree with the summed lines within the shared
	// tolerance before any money moves.
	if !purchase.TotalsMatch() {
		return nil, fmt.Errorf("%w: total %s does not match item sum %s",
			apperrors.ErrValidation, purchase.TotalAmount.String(), purchase.ItemsTotal().String())
	}

	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("invalid supplier: %w", err)
	}

	fund, err := s.fundRepo.FindFundByID(ctx, req.FundID)
	if err != nil {
		return nil, fmt.Errorf("invalid fund: %w", err)
	}
	if fund.ToUserID != actor.UserID {
		return nil, fmt.Errorf("%w: fund %s is not held by the caller", apperrors.ErrForbidden, req.FundID)
	}
	// Friendly pre-check; the settlement transaction re-checks under the lock.
	if !fund.CanDebit(req.TotalAmount) {
		return nil, fmt.Errorf("%w: fund %s has balance %s, purchase needs %s",
			apperrors.ErrInsufficientFunds, req.FundID, fund.Balance.String(), req.TotalAmount.String())
	}

	usage := domain.FundUsage{
		UsageID:     uuid.NewString(),
		FundID:      req.FundID,
		Amount:      req.TotalAmount,
		UsageType:   domain.UsagePurchase,
		ReferenceID: purchaseID,
		UsedBy:      actor.UserID,
		Notes:       req.Notes,
		UsedAt:      now,
	}

	if err := s.purchaseRepo.SavePurchase(ctx, purchase, usage); err != nil {
		s.LogError(ctx, err, "Failed to save purchase",
			slog.String("purchase_id", purchaseID),
			slog.String("fund_id", req.FundID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase settled",
		slog.String("purchase_id", purchaseID),
		slog.String("fund_id", req.FundID),
		slog.String("total", req.TotalAmount.String()))

	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "create_purchase", "purchases", purchaseID,
			fmt.Sprintf("Purchased %s worth of stock from supplier %s", req.TotalAmount.String(), req.SupplierID))
	}

	resp := dto.ToPurchaseResponse(&purchase, nil)
	if settled, err := s.fundRepo.FindFundByID(ctx, req.FundID); err == nil {
		resp.FundBalance = &settled.Balance
	}
	return &resp, nil
}

func (s *purchaseServiceImpl) GetPurchaseByID(ctx context.Context, actor domain.Actor, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !actor.IsOwner() && purchase.CreatedBy != actor.UserID {
		return nil, fmt.Errorf("%w: purchase %s", apperrors.ErrForbidden, purchaseID)
	}
	return purchase, nil
}
