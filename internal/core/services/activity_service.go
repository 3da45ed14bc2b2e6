package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
)

// activityServiceImpl implements the ActivityLogSvc interface. Audit writes
// are fire and forget; a failed write is logged and never rolls back the
// operation it describes.
type activityServiceImpl struct {
	BaseService
	activityRepo portsrepo.ActivityLogRepository
}

// NewActivityService creates a new activity log service
func NewActivityService(activityRepo portsrepo.ActivityLogRepository) portssvc.ActivityLogSvc {
	return &activityServiceImpl{activityRepo: activityRepo}
}

// Ensure activityServiceImpl implements the ActivityLogSvc interface
var _ portssvc.ActivityLogSvc = (*activityServiceImpl)(nil)

func (s *activityServiceImpl) Record(ctx context.Context, actorID string, action string, entityType string, entityID string, details string) {
	log := domain.ActivityLog{
		LogID:       uuid.NewString(),
		UserID:      actorID,
		ActionType:  action,
		Module:      entityType,
		Description: details,
		EntityID:    entityID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.activityRepo.SaveActivityLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to save activity log",
			slog.String("action", action),
			slog.String("entity_id", entityID))
	}
}
