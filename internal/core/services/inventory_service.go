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

// inventoryServiceImpl implements the InventorySvcFacade interface
type inventoryServiceImpl struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryWithTx
	productRepo   portsrepo.ProductRepository
	userRepo      portsrepo.UserReader
	notifier      portssvc.NotifierSvc
	activity      portssvc.ActivityLogSvc
}

// InventoryServiceOption is a functional option for configuring the inventory service
type InventoryServiceOption func(*inventoryServiceImpl)

// WithInventoryNotifier adds the notification sink dependency
func WithInventoryNotifier(n portssvc.NotifierSvc) InventoryServiceOption {
	return func(s *inventoryServiceImpl) {
		s.notifier = n
	}
}

// WithInventoryActivityLog adds the audit trail dependency
func WithInventoryActivityLog(a portssvc.ActivityLogSvc) InventoryServiceOption {
	return func(s *inventoryServiceImpl) {
		s.activity = a
	}
}

// NewInventoryService creates a new inventory service with the provided options
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryWithTx, productRepo portsrepo.ProductRepository, userRepo portsrepo.UserReader, options ...InventoryServiceOption) portssvc.InventorySvcFacade {
	svc := &inventoryServiceImpl{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure inventoryServiceImpl implements the InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryServiceImpl)(nil)

func (s *inventoryServiceImpl) TransferInventory(ctx context.Context, actor domain.Actor, req dto.TransferInventoryRequest) (*domain.InventoryTransfer, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: transfer quantity must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidLocation(req.FromLocation) || !domain.ValidLocation(req.ToLocation) {
		return nil, fmt.Errorf("%w: unknown location", apperrors.ErrValidation)
	}
	if req.FromLocation == req.ToLocation {
		return nil, fmt.Errorf("%w: source and destination locations are the same", apperrors.ErrValidation)
	}

	if _, err := s.productRepo.FindProductByID(ctx, req.ProductID); err != nil {
		s.LogError(ctx, err, "Failed to find product for transfer", slog.String("product_id", req.ProductID))
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	// A destination shopkeeper is mandatory for wholesale, where stock is
	// scoped per shopkeeper. For transit it is optional: an undesignated
	// pending transfer can still be confirmed by an owner.
	if req.ToLocation == domain.LocationWholesale && (req.ShopkeeperID == nil || *req.ShopkeeperID == "") {
		return nil, fmt.Errorf("%w: destination shopkeeper is required", apperrors.ErrValidation)
	}
	if req.ShopkeeperID != nil && *req.ShopkeeperID != "" {
		shopkeeper, err := s.userRepo.FindUserByID(ctx, *req.ShopkeeperID)
		if err != nil {
			return nil, fmt.Errorf("invalid shopkeeper: %w", err)
		}
		if shopkeeper.Role != domain.RoleShopkeeper {
			return nil, fmt.Errorf("%w: user %s is not a shopkeeper", apperrors.ErrValidation, shopkeeper.UserID)
		}
	}

	// Wholesale stock only exists scoped to a shopkeeper, so moving out of
	// wholesale needs the source shopkeeper to pick the row to debit.
	if req.FromLocation == domain.LocationWholesale {
		if req.FromShopkeeperID == nil || *req.FromShopkeeperID == "" {
			return nil, fmt.Errorf("%w: source shopkeeper is required when moving out of wholesale", apperrors.ErrValidation)
		}
		if actor.Role == domain.RoleShopkeeper && *req.FromShopkeeperID != actor.UserID {
			return nil, fmt.Errorf("%w: shopkeepers can only move their own wholesale stock", apperrors.ErrForbidden)
		}
	} else if req.FromShopkeeperID != nil && *req.FromShopkeeperID != "" {
		return nil, fmt.Errorf("%w: source shopkeeper only applies to wholesale sources", apperrors.ErrValidation)
	}

	// Movements into transit wait for a receipt confirmation; everything else
	// lands immediately.
	status := domain.TransferCompleted
	if req.ToLocation == domain.LocationTransit {
		status = domain.TransferPending
	}

	transfer := domain.InventoryTransfer{
		TransferID:       uuid.NewString(),
		ProductID:        req.ProductID,
		FromLocation:     req.FromLocation,
		ToLocation:       req.ToLocation,
		Quantity:         req.Quantity,
		Status:           status,
		InitiatedBy:      actor.UserID,
		ShopkeeperID:     req.ShopkeeperID,
		FromShopkeeperID: req.FromShopkeeperID,
		TransferDate:     time.Now().UTC(),
		Notes:            req.Notes,
	}

	if err := s.inventoryRepo.ApplyTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Failed to apply transfer",
			slog.String("product_id", req.ProductID),
			slog.String("from", string(req.FromLocation)),
			slog.String("to", string(req.ToLocation)))
		return nil, err
	}

	s.LogInfo(ctx, "Inventory transferred",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("product_id", transfer.ProductID),
		slog.Int64("quantity", transfer.Quantity),
		slog.String("status", string(transfer.Status)))

	if s.notifier != nil && status == domain.TransferPending && transfer.ShopkeeperID != nil {
		s.notifier.Notify(ctx, *transfer.ShopkeeperID, domain.NotifyStockIncoming,
			fmt.Sprintf("%d units of product %s are on the way", transfer.Quantity, transfer.ProductID), transfer.TransferID)
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "transfer_inventory", "inventory", transfer.TransferID,
			fmt.Sprintf("Moved %d of product %s from %s to %s", transfer.Quantity, transfer.ProductID, transfer.FromLocation, transfer.ToLocation))
	}
	return &transfer, nil
}

func (s *inventoryServiceImpl) ConfirmReceipt(ctx context.Context, actor domain.Actor, transferID string, req dto.ConfirmReceiptRequest) (*domain.InventoryTransfer, error) {
	transfer, err := s.inventoryRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !transfer.CanConfirm(actor) {
		return nil, fmt.Errorf("%w: transfer %s is not addressed to the caller", apperrors.ErrForbidden, transferID)
	}

	// The stock lands in the designated shopkeeper's wholesale scope. An
	// owner confirming on behalf of an undesignated transfer takes it
	// themselves.
	destShopkeeperID := actor.UserID
	if transfer.ShopkeeperID != nil {
		destShopkeeperID = *transfer.ShopkeeperID
	}

	confirmed, err := s.inventoryRepo.ConfirmTransfer(ctx, transferID, actor.UserID, destShopkeeperID, req.Notes, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to confirm transfer", slog.String("transfer_id", transferID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer receipt confirmed",
		slog.String("transfer_id", transferID),
		slog.String("confirmed_by", actor.UserID))

	if s.notifier != nil {
		s.notifier.Notify(ctx, confirmed.InitiatedBy, domain.NotifyStockConfirmed,
			fmt.Sprintf("Transfer of %d units of product %s was received", confirmed.Quantity, confirmed.ProductID), transferID)
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor.UserID, "confirm_receipt", "inventory", transferID,
			fmt.Sprintf("Confirmed receipt of %d of product %s", confirmed.Quantity, confirmed.ProductID))
	}
	return confirmed, nil
}

func (s *inventoryServiceImpl) GetProductStock(ctx context.Context, actor domain.Actor, productID string) (*dto.ProductStockResponse, error) {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	records, err := s.inventoryRepo.ListRecordsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductStockResponse{
		ProductID: productID,
		Records:   make([]dto.StockRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, dto.StockRecordResponse{
			ProductID:    rec.ProductID,
			Location:     rec.Location,
			ShopkeeperID: rec.ShopkeeperID,
			Quantity:     rec.Quantity,
			UpdatedAt:    rec.UpdatedAt,
		})
		resp.Total += rec.Quantity
	}
	return resp, nil
}

func (s *inventoryServiceImpl) GetTransferByID(ctx context.Context, actor domain.Actor, transferID string) (*domain.InventoryTransfer, error) {
	transfer, err := s.inventoryRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !actor.IsOwner() && transfer.InitiatedBy != actor.UserID &&
		(transfer.ShopkeeperID == nil || *transfer.ShopkeeperID != actor.UserID) {
		return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrForbidden, transferID)
	}
	return transfer, nil
}

func (s *inventoryServiceImpl) ListTransfers(ctx context.Context, actor domain.Actor, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	if params.Status != nil {
		switch *params.Status {
		case domain.TransferPending, domain.TransferCompleted, domain.TransferConfirmed:
		default:
			return nil, fmt.Errorf("%w: unknown transfer status %s", apperrors.ErrValidation, *params.Status)
		}
	}

	transfers, nextToken, err := s.inventoryRepo.ListTransfers(ctx, params.Status, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListTransfersResponse{
		Transfers: make([]dto.InventoryTransferResponse, 0, len(transfers)),
		NextToken: nextToken,
	}
	for i := range transfers {
		t := &transfers[i]
		// Shopkeepers only see transfers addressed to them or started by them.
		if !actor.IsOwner() && actor.Role == domain.RoleShopkeeper &&
			t.InitiatedBy != actor.UserID &&
			(t.ShopkeeperID == nil || *t.ShopkeeperID != actor.UserID) {
			continue
		}
		resp.Transfers = append(resp.Transfers, dto.ToInventoryTransferResponse(t))
	}
	return resp, nil
}
