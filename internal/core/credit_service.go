package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// Stable decision reasons, surfaced verbatim to the UI. The client keys on
// ReasonNoCredits to offer a top-up path instead of a dead-end error.
const (
	ReasonLoginRequired   = "login required"
	ReasonRoleExempted    = "role exempted"
	ReasonAlreadyUnlocked = "already unlocked"
	ReasonHasCredits      = "has credits"
	ReasonNoCredits       = "not enough credits"
)

// engagementWriteTimeout bounds the background engagement write after the
// originating request has finished.
const engagementWriteTimeout = 15 * time.Second

// creditService implements the CreditService interface.
type creditService struct {
	userRepo          db.UserRepository
	engagementService EngagementService
	logger            *zap.Logger
}

// NewCreditService creates a new CreditService instance.
func NewCreditService(userRepo db.UserRepository, es EngagementService, logger *zap.Logger) CreditService {
	return &creditService{
		userRepo:          userRepo,
		engagementService: es,
		logger:            logger,
	}
}

// CanViewContact decides whether the viewer may see a service's contact
// details right now. Pure decision over current state; first match wins,
// nothing is deducted.
func (s *creditService) CanViewContact(ctx context.Context, userID, serviceID, role string) (ContactDecision, error) {
	if userID == "" {
		return ContactDecision{Allowed: false, Reason: ReasonLoginRequired}, nil
	}
	if ResolveCapabilities(role).CanBypassCredits {
		return ContactDecision{Allowed: true, Reason: ReasonRoleExempted}, nil
	}

	set, err := s.userRepo.GetUnlockedServices(ctx, userID)
	if err != nil {
		return ContactDecision{}, fmt.Errorf("failed to read unlocked set for '%s': %w", userID, err)
	}
	if set.Contains(serviceID) {
		return ContactDecision{Allowed: true, Reason: ReasonAlreadyUnlocked}, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ContactDecision{}, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return ContactDecision{}, fmt.Errorf("failed to read user '%s': %w", userID, err)
	}
	if user.Credits > 0 {
		return ContactDecision{Allowed: true, Reason: ReasonHasCredits}, nil
	}
	return ContactDecision{Allowed: false, Reason: ReasonNoCredits}, nil
}

// DeductCredit spends one credit to permanently unlock svc for the user.
// The balance check, decrement and unlocked-set append are one atomic
// claim in the repository, so N calls for the same (user, service) pair
// spend exactly one credit no matter how they interleave. A successful
// first-time claim triggers the engagement log write in the background;
// that write can neither block nor undo the deduction.
func (s *creditService) DeductCredit(ctx context.Context, userID string, svc *models.VendorService, viewer ViewerInfo) (models.OpResult, error) {
	if userID == "" {
		return models.OpResult{Success: false, Message: ReasonLoginRequired}, nil
	}
	if svc == nil || svc.ID == "" {
		return models.OpResult{}, errors.New("service is required for DeductCredit")
	}

	claim, err := s.userRepo.ClaimUnlock(ctx, userID, svc.ID)
	if err != nil {
		return models.OpResult{}, fmt.Errorf("unlock claim failed for user '%s', service '%s': %w", userID, svc.ID, err)
	}

	switch claim.Outcome {
	case db.ClaimAlreadyUnlocked:
		return models.OpResult{Success: true, Message: ReasonAlreadyUnlocked}, nil
	case db.ClaimInsufficientCredits:
		return models.OpResult{Success: false, Message: ReasonNoCredits}, nil
	}

	// First-time unlock. Only ordinary roles leave an analytics trace, and
	// only when the snapshot names an owning vendor.
	if IsNonPrivilegedRole(viewer.Role) && svc.VendorID != "" {
		snapshot := *svc
		go func() {
			bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), engagementWriteTimeout)
			defer cancel()
			s.engagementService.LogEngagement(bgCtx, snapshot.VendorID, &snapshot, userID, viewer.Name, viewer.PhoneNumber, viewer.Role)
		}()
	}

	s.logger.Info("contact unlocked",
		zap.String("userId", userID),
		zap.String("serviceId", svc.ID),
		zap.Int("remainingCredits", claim.RemainingCredits),
	)
	return models.OpResult{Success: true, Message: "contact unlocked"}, nil
}
