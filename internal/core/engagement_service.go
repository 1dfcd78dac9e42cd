package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// engagementService implements the EngagementService interface.
type engagementService struct {
	engagementRepo db.EngagementRepository
	logger         *zap.Logger
}

// NewEngagementService creates a new EngagementService instance.
func NewEngagementService(engagementRepo db.EngagementRepository, logger *zap.Logger) EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		logger:         logger,
	}
}

// LogEngagement records that a user unlocked a vendor's service, keyed by
// the deterministic (serviceID, userID) composite so repeated unlocks
// collapse into one record. Every guard failure and every storage error is
// swallowed after logging: engagement is observability, not a correctness
// path, and must never make the triggering unlock fail.
func (s *engagementService) LogEngagement(ctx context.Context, vendorID string, svc *models.VendorService, userID, userName, userPhone, role string) {
	if !IsNonPrivilegedRole(role) {
		return
	}
	if vendorID == "" || svc == nil || svc.VendorID == "" || svc.ID == "" || userID == "" {
		return
	}

	record := models.Engagement{
		EngagementID:          models.EngagementID(svc.ID, userID),
		ServiceID:             svc.ID,
		ServiceName:           svc.Name,
		ServiceCategory:       svc.Category,
		ServiceCity:           svc.City,
		UnlockedByUserID:      userID,
		UnlockedByName:        userName,
		UnlockedByPhoneNumber: userPhone,
		UnlockedByRole:        role,
		UnlockedAt:            time.Now().UTC(),
	}

	created, err := s.engagementRepo.Append(ctx, vendorID, record)
	if err != nil {
		s.logger.Warn("engagement log write failed",
			zap.String("vendorId", vendorID),
			zap.String("engagementId", record.EngagementID),
			zap.Error(err),
		)
		return
	}
	if created {
		s.logger.Info("engagement recorded",
			zap.String("vendorId", vendorID),
			zap.String("engagementId", record.EngagementID),
		)
	}
}

// GetVendorEngagements returns the vendor's engagement records, most
// recent unlock first.
func (s *engagementService) GetVendorEngagements(ctx context.Context, vendorID string) ([]models.Engagement, error) {
	records, err := s.engagementRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements for vendor '%s': %w", vendorID, err)
	}
	return records, nil
}
