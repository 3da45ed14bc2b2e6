package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
	"github.com/knitworks/garment_mgmt_app/internal/utils"
	"github.com/shopspring/decimal"
)

// batchNumberAttempts bounds the retry loop on batch number collisions. The
// unique constraint on batch_number is the backstop either way.
const batchNumberAttempts = 5

// manufacturingServiceImpl implements the ManufacturingSvcFacade interface
type manufacturingServiceImpl struct {
	BaseService
	batchRepo       portsrepo.BatchRepository
	productRepo     portsrepo.ProductRepository
	rawMaterialRepo portsrepo.RawMaterialRepository
	activity        portssvc.ActivityLogSvc
}

// NewManufacturingService creates a new manufacturing service
func NewManufacturingService(batchRepo portsrepo.BatchRepository, productRepo portsrepo.ProductRepository, rawMaterialRepo portsrepo.RawMaterialRepository, activity portssvc.ActivityLogSvc) portssvc.ManufacturingSvcFacade {
	return &manufacturingServiceImpl{
		batchRepo:       batchRepo,
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		activity:        activity,
	}
}

// Ensure manufacturingServiceImpl implements the ManufacturingSvcFacade interface
var _ portssvc.ManufacturingSvcFacade = (*manufacturingServiceImpl)(nil)

func (s *manufacturingServiceImpl) CreateBatch(ctx context.Context, actor domain.Actor, req dto.CreateBatchRequest) (*domain.ManufacturingBatch, error) {
	if req.QuantityProduced <= 0 {
		return nil, fmt.Errorf("%w: batch quantity must be positive", apperrors.ErrValidation)
	}
	if len(req.Materials) == 0 {
		return nil, fmt.Errorf("%w: batch must consume at least one material", apperrors.ErrValidation)
	}

	if _, err := s.productRepo.FindProductByID(ctx, req.ProductID); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	materialIDs := make([]string, 0, len(req.Materials))
	needed := make(map[string]decimal.Decimal, len(req.Materials))
	for _, line := range req.Materials {
		if !line.QuantityRequired.IsPositive() {
			return nil, fmt.Errorf("%w: material quantity must be positive for %s", apperrors.ErrValidation, line.MaterialID)
		}
		materialIDs = append(materialIDs, line.MaterialID)
		needed[line.MaterialID] = needed[line.MaterialID].Add(line.QuantityRequired)
	}

	// Pre-check for a friendly error listing the shortage; the save
	// transaction re-checks under the material row locks.
	materials, err := s.rawMaterialRepo.FindRawMaterialsByIDs(ctx, materialIDs)
	if err != nil {
		return nil, err
	}
	for id, need := range needed {
		mat, found := materials[id]
		if !found {
			return nil, fmt.Errorf("%w: raw material %s", apperrors.ErrNotFound, id)
		}
		if mat.StockQuantity.LessThan(need) {
			return nil, fmt.Errorf("%w: material %s has %s %s, batch needs %s",
				apperrors.ErrInsufficientStock, mat.Name, mat.StockQuantity.String(), mat.Unit, need.String())
		}
	}

	now := time.Now().UTC()
	batchID := uuid.NewString()

	usages := make([]domain.MaterialUsage, len(req.Materials))
	for i, line := range req.Materials {
		usages[i] = domain.MaterialUsage{
			UsageID:          uuid.NewString(),
			BatchID:          batchID,
			MaterialID:       line.MaterialID,
			QuantityRequired: line.QuantityRequired,
		}
	}

	batch := domain.ManufacturingBatch{
		BatchID:            batchID,
		ProductID:          req.ProductID,
		QuantityProduced:   req.QuantityProduced,
		Status:             domain.BatchPending,
		StartDate:          req.StartDate,
		ExpectedCompletion: req.ExpectedCompletion,
		Materials:          usages,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	// Batch numbers are date-scoped with a random suffix, so a collision is
	// rare but possible. Retry with a fresh number when the insert trips the
	// unique constraint.
	for attempt := 0; attempt < batchNumberAttempts; attempt++ {
		number, err := utils.GenerateBatchNumber(now)
		if err != nil {
			return nil, fmt.Errorf("failed to generate batch number: %w", err)
		}
		if taken, err := s.batchRepo.BatchNumberExists(ctx, number); err != nil {
			return nil, err
		} else if taken {
			continue
		}
		batch.BatchNumber = number

		err = s.batchRepo.SaveBatch(ctx, batch)
		if err == nil {
			s.LogInfo(ctx, "Manufacturing batch created",
				slog.String("batch_id", batch.BatchID),
				slog.String("batch_number", batch.BatchNumber),
				slog.Int64("quantity", batch.QuantityProduced))
			if s.activity != nil {
				s.activity.Record(ctx, actor.UserID, "create_batch", "manufacturing", batch.BatchID,
					fmt.Sprintf("Started batch %s producing %d of product %s", batch.BatchNumber, batch.QuantityProduced, batch.ProductID))
			}
			return &batch, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save batch", slog.String("batch_id", batch.BatchID))
			return nil, err
		}
		s.LogDebug(ctx, "Batch number collision, retrying", slog.String("batch_number", number))
	}
	return nil, apperrors.NewAppError(500, "could not allocate a unique batch number", apperrors.ErrDuplicate)
}

func (s *manufacturingServiceImpl) GetBatchByID(ctx context.Context, actor domain.Actor, batchID string) (*domain.ManufacturingBatch, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !actor.IsOwner() && batch.CreatedBy != actor.UserID {
		return nil, fmt.Errorf("%w: batch %s", apperrors.ErrForbidden, batchID)
	}
	return batch, nil
}
