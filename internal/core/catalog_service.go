package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// Custom errors for the CatalogService.
var (
	ErrServiceNotFound       = errors.New("service not found")
	ErrForbiddenAccess       = errors.New("user does not have permission for this action on the service")
	ErrServiceDeletionFailed = errors.New("failed to delete service")
	ErrUnlockCleanupFailed   = errors.New("failed to clean unlocked-sets for deleted service")
)

// catalogService implements the CatalogService interface.
type catalogService struct {
	serviceRepo      db.ServiceRepository
	availabilityRepo db.AvailabilityRepository
	bookingRepo      db.BookingRepository
	reviewRepo       db.ReviewRepository
	cartRepo         db.CartRepository
	userRepo         db.UserRepository
	engagementRepo   db.EngagementRepository
	availability     AvailabilityService
	labels           *LabelCache
	logger           *zap.Logger
}

// NewCatalogService creates a new CatalogService instance. The wide
// dependency list exists because service deletion owns referential
// integrity across every collection that stores a service ID.
func NewCatalogService(
	serviceRepo db.ServiceRepository,
	availabilityRepo db.AvailabilityRepository,
	bookingRepo db.BookingRepository,
	reviewRepo db.ReviewRepository,
	cartRepo db.CartRepository,
	userRepo db.UserRepository,
	engagementRepo db.EngagementRepository,
	availability AvailabilityService,
	labelTTL time.Duration,
	logger *zap.Logger,
) CatalogService {
	s := &catalogService{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		reviewRepo:       reviewRepo,
		cartRepo:         cartRepo,
		userRepo:         userRepo,
		engagementRepo:   engagementRepo,
		availability:     availability,
		logger:           logger,
	}
	s.labels = NewLabelCache(serviceRepo.CategoryLabels, labelTTL, nil)
	return s
}

// NormalizeID lowercases and hyphenates a display name into the form used
// for city and category document IDs ("New Delhi" -> "new-delhi").
func NormalizeID(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(normalized), "-")
}

// SaveVendorService upserts a listing at its normalized city/category
// path. createdAt is preserved across edits; updatedAt moves on every
// write. A missing serviceId means creation, with the ID derived from the
// normalized name plus the vendor ID so re-registration is idempotent.
func (s *catalogService) SaveVendorService(ctx context.Context, vendorID string, req models.SaveServiceRequest) (*models.VendorService, models.ServiceKey, error) {
	if vendorID == "" {
		return nil, models.ServiceKey{}, errors.New("vendorID is required for SaveVendorService")
	}

	key := models.ServiceKey{
		CityID:     NormalizeID(req.City),
		CategoryID: NormalizeID(req.Category),
		ServiceID:  req.ServiceID,
	}
	if key.ServiceID == "" {
		key.ServiceID = NormalizeID(req.Name) + "_" + vendorID
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	svc := &models.VendorService{
		ID:                     key.ServiceID,
		VendorID:               vendorID,
		Name:                   req.Name,
		Category:               req.Category,
		City:                   req.City,
		CityID:                 key.CityID,
		State:                  req.State,
		Description:            req.Description,
		StartingPrice:          req.StartingPrice,
		PricingUnit:            req.PricingUnit,
		PhoneNumber:            req.PhoneNumber,
		AlternativePhoneNumber: req.AlternativePhoneNumber,
		ImageURLs:              req.ImageURLs,
		Active:                 active,
		CreatedAt:              time.Now().UTC(),
	}

	existing, err := s.serviceRepo.Get(ctx, key)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, models.ServiceKey{}, fmt.Errorf("failed to check existing service '%s': %w", key.ServiceID, err)
	}
	if existing != nil {
		if existing.VendorID != vendorID {
			return nil, models.ServiceKey{}, fmt.Errorf("%w: vendor '%s' does not own service '%s'", ErrForbiddenAccess, vendorID, key.ServiceID)
		}
		// Edits keep the original creation time and the admin-owned
		// verified flag.
		svc.CreatedAt = existing.CreatedAt
		svc.Verified = existing.Verified
	}

	if err := s.serviceRepo.Save(ctx, key, svc); err != nil {
		return nil, models.ServiceKey{}, fmt.Errorf("failed to save service '%s': %w", key.ServiceID, err)
	}
	return svc, key, nil
}

// GetService retrieves a single service document.
func (s *catalogService) GetService(ctx context.Context, key models.ServiceKey) (*models.VendorService, error) {
	svc, err := s.serviceRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, key.ServiceID)
		}
		return nil, fmt.Errorf("failed to get service '%s': %w", key.ServiceID, err)
	}
	return svc, nil
}

// SetActive flips the visibility toggle. Owners and admins only; the
// write touches nothing but active and updatedAt.
func (s *catalogService) SetActive(ctx context.Context, key models.ServiceKey, requesterID string, caps Capabilities, active bool) error {
	svc, err := s.GetService(ctx, key)
	if err != nil {
		return err
	}
	if svc.VendorID != requesterID && !caps.CanManageAnyService {
		return fmt.Errorf("%w: '%s' cannot toggle service '%s'", ErrForbiddenAccess, requesterID, key.ServiceID)
	}
	if err := s.serviceRepo.SetFlag(ctx, key, "active", active); err != nil {
		return fmt.Errorf("failed to set active=%v on '%s': %w", active, key.ServiceID, err)
	}
	return nil
}

// SetVerified flips the admin-owned trust flag.
func (s *catalogService) SetVerified(ctx context.Context, key models.ServiceKey, caps Capabilities, verified bool) error {
	if !caps.CanVerifyVendors {
		return fmt.Errorf("%w: verified flag requires admin capability", ErrForbiddenAccess)
	}
	if err := s.serviceRepo.SetFlag(ctx, key, "verified", verified); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrServiceNotFound, key.ServiceID)
		}
		return fmt.Errorf("failed to set verified=%v on '%s': %w", verified, key.ServiceID, err)
	}
	return nil
}

// DeleteVendorService permanently removes a service and every
// cross-collection reference to it. The service ID is the join key across
// availability, bookings, reviews, carts, unlocked-sets and engagement
// logs, and the store enforces no foreign keys, so this fan-out owns
// referential integrity.
//
// The primary delete, the availability cleanup and the unlocked-set
// cleanup are integrity-critical: their failure fails the operation so the
// caller can retry. Booking, review, cart and engagement cleanup are
// best-effort: failures are logged and the delete still succeeds.
func (s *catalogService) DeleteVendorService(ctx context.Context, key models.ServiceKey, requesterID string, caps Capabilities) error {
	svc, err := s.GetService(ctx, key)
	if err != nil {
		return err
	}
	if svc.VendorID != requesterID && !caps.CanManageAnyService {
		return fmt.Errorf("%w: '%s' cannot delete service '%s'", ErrForbiddenAccess, requesterID, key.ServiceID)
	}

	if err := s.serviceRepo.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrServiceDeletionFailed, err)
	}
	if err := s.availabilityRepo.DeleteByServiceID(ctx, key.ServiceID); err != nil {
		return fmt.Errorf("%w: availability cleanup: %w", ErrServiceDeletionFailed, err)
	}
	if err := s.userRepo.RemoveServiceFromAllUnlockSets(ctx, key.ServiceID); err != nil {
		return fmt.Errorf("%w: %w", ErrUnlockCleanupFailed, err)
	}

	if err := s.bookingRepo.DeleteByServiceID(ctx, key.ServiceID); err != nil {
		s.logger.Warn("booking cleanup failed during service delete",
			zap.String("serviceId", key.ServiceID), zap.Error(err))
	}
	if err := s.reviewRepo.DeleteByServiceID(ctx, key.ServiceID); err != nil {
		s.logger.Warn("review cleanup failed during service delete",
			zap.String("serviceId", key.ServiceID), zap.Error(err))
	}
	if err := s.cartRepo.RemoveServiceFromAllCarts(ctx, key.ServiceID); err != nil {
		s.logger.Warn("cart cleanup failed during service delete",
			zap.String("serviceId", key.ServiceID), zap.Error(err))
	}
	if err := s.engagementRepo.RemoveServiceRecords(ctx, key.ServiceID); err != nil {
		s.logger.Warn("engagement cleanup failed during service delete",
			zap.String("serviceId", key.ServiceID), zap.Error(err))
	}

	s.logger.Info("service deleted with cascade",
		zap.String("serviceId", key.ServiceID),
		zap.String("vendorId", svc.VendorID),
	)
	return nil
}

// Browse lists active, verified services in a city+category under the
// given price ceiling (0 = no ceiling), optionally filtered to those fully
// available over [dateFrom, dateTo].
func (s *catalogService) Browse(ctx context.Context, cityID, categoryID string, maxPrice int64, dateFrom, dateTo string) ([]*models.VendorService, error) {
	services, err := s.serviceRepo.ListByCategory(ctx, cityID, categoryID, maxPrice, true)
	if err != nil {
		return nil, fmt.Errorf("failed to browse %s/%s: %w", cityID, categoryID, err)
	}

	if dateFrom != "" && dateTo != "" {
		services, err = s.availability.FilterAvailable(ctx, services, dateFrom, dateTo)
		if err != nil {
			return nil, fmt.Errorf("failed to filter %s/%s by availability: %w", cityID, categoryID, err)
		}
	}
	return services, nil
}

// ListVendorServices returns a vendor's own listings, inactive included.
func (s *catalogService) ListVendorServices(ctx context.Context, cityID, categoryID, vendorID string) ([]*models.VendorService, error) {
	services, err := s.serviceRepo.ListByVendor(ctx, cityID, categoryID, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services for vendor '%s': %w", vendorID, err)
	}
	return services, nil
}

// CategoryLabel resolves a category ID to its display label through the
// TTL cache. Unknown or unloadable labels fall back to the raw ID.
func (s *catalogService) CategoryLabel(ctx context.Context, categoryID string) string {
	labels, err := s.labels.Labels(ctx)
	if err != nil {
		s.logger.Warn("category label load failed", zap.Error(err))
		return categoryID
	}
	if label, ok := labels[categoryID]; ok && label != "" {
		return label
	}
	return categoryID
}
