package db

import (
	"context"

	"weddinghub-backend-go/internal/models"
)

// ClaimOutcome is the result of an atomic unlock claim against a user's
// credit record.
type ClaimOutcome int

const (
	// ClaimGranted: one credit was spent and the service was added to the
	// unlocked set, both in the same transaction.
	ClaimGranted ClaimOutcome = iota
	// ClaimAlreadyUnlocked: the service was already in the unlocked set;
	// nothing was charged.
	ClaimAlreadyUnlocked
	// ClaimInsufficientCredits: balance was zero and the service was not
	// yet unlocked; nothing was mutated.
	ClaimInsufficientCredits
)

// ClaimResult carries the claim outcome plus the balance after the claim.
type ClaimResult struct {
	Outcome          ClaimOutcome
	RemainingCredits int
}

// UserRepository defines storage operations for user credit records and
// their unlocked-service sets.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetUnlockedServices(ctx context.Context, userID string) (*models.UnlockedServices, error)
	// ClaimUnlock atomically checks the unlocked set, decrements the
	// balance by one and appends serviceID to the set. The three steps are
	// a single transaction so a crash can never leave credits spent
	// without the unlock recorded, or vice versa.
	ClaimUnlock(ctx context.Context, userID, serviceID string) (*ClaimResult, error)
	// RemoveServiceFromAllUnlockSets strips serviceID from every user's
	// unlocked set, as part of the cascading service delete.
	RemoveServiceFromAllUnlockSets(ctx context.Context, serviceID string) error
}

// EngagementRepository defines storage operations for per-vendor
// engagement logs.
type EngagementRepository interface {
	// Append adds the record to the vendor's log unless an entry with the
	// same engagement ID already exists. Returns true when a record was
	// actually written.
	Append(ctx context.Context, vendorID string, record models.Engagement) (bool, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Engagement, error)
	RemoveServiceRecords(ctx context.Context, serviceID string) error
}

// CartRepository defines storage operations for per-user cart documents.
type CartRepository interface {
	// Get returns the user's cart, or ErrNotFound if no cart document
	// exists yet.
	Get(ctx context.Context, userID string) (*models.Cart, error)
	// PutEntry merges a single entry into the cart document, creating the
	// document if absent and leaving sibling entries untouched.
	PutEntry(ctx context.Context, userID, serviceID string, entry models.CartEntry) error
	RemoveEntry(ctx context.Context, userID, serviceID string) error
	RemoveServiceFromAllCarts(ctx context.Context, serviceID string) error
}

// ServiceRepository defines storage operations for the vendor service
// catalog, laid out as services/{cityID}/{categoryID}/{serviceID}.
type ServiceRepository interface {
	Get(ctx context.Context, key models.ServiceKey) (*models.VendorService, error)
	Save(ctx context.Context, key models.ServiceKey, svc *models.VendorService) error
	// SetFlag performs a narrow update of a single boolean field plus
	// updatedAt, never a full document overwrite.
	SetFlag(ctx context.Context, key models.ServiceKey, field string, value bool) error
	Delete(ctx context.Context, key models.ServiceKey) error
	ListByCategory(ctx context.Context, cityID, categoryID string, maxPrice int64, verifiedOnly bool) ([]*models.VendorService, error)
	ListByVendor(ctx context.Context, cityID, categoryID, vendorID string) ([]*models.VendorService, error)
	CategoryLabels(ctx context.Context) (map[string]string, error)
}

// AvailabilityRepository defines read and cleanup operations for
// per-(service, month) calendar documents.
type AvailabilityRepository interface {
	// GetMonth returns the calendar for one service-month, or ErrNotFound
	// when no document exists (meaning every day is available).
	GetMonth(ctx context.Context, serviceID, month string) (*models.AvailabilityMonth, error)
	DeleteByServiceID(ctx context.Context, serviceID string) error
}

// BookingRepository defines storage operations for booking records.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (string, error)
	DeleteByServiceID(ctx context.Context, serviceID string) error
}

// ReviewRepository defines storage operations for review records.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (string, error)
	DeleteByServiceID(ctx context.Context, serviceID string) error
}
