package core

import (
	"context"

	"weddinghub-backend-go/internal/models"
)

// ContactDecision is the outcome of the pure contact-visibility check.
// Reason is one of the stable strings surfaced verbatim to the UI.
type ContactDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// ViewerInfo identifies the user performing an unlock, for the engagement
// snapshot.
type ViewerInfo struct {
	Name        string
	PhoneNumber string
	Role        string
}

// UserService defines account and credit-record operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID, creating the credit record with
	// the configured signup balance on first sight. The boolean reports
	// whether a record was created.
	GetOrCreate(ctx context.Context, userID, displayName, phoneNumber, role string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetUnlockedServices(ctx context.Context, userID string) (*models.UnlockedServices, error)
}

// CreditService owns the credit-gated contact unlock state machine.
type CreditService interface {
	// CanViewContact is a pure permission check; it never mutates state.
	CanViewContact(ctx context.Context, userID, serviceID, role string) (ContactDecision, error)
	// DeductCredit performs the atomic claim (at most one credit per
	// (user, service) pair, ever) and fires the engagement log write on a
	// successful first-time unlock. Soft outcomes come back in the
	// OpResult; only integrity-critical failures surface as errors.
	DeductCredit(ctx context.Context, userID string, svc *models.VendorService, viewer ViewerInfo) (models.OpResult, error)
}

// EngagementService records and serves vendor lead analytics.
type EngagementService interface {
	// LogEngagement is best-effort observability: it swallows every
	// failure and must never make the triggering unlock fail.
	LogEngagement(ctx context.Context, vendorID string, svc *models.VendorService, userID, userName, userPhone, role string)
	GetVendorEngagements(ctx context.Context, vendorID string) ([]models.Engagement, error)
}

// CartService manages the per-user cart and its derived active count.
type CartService interface {
	AddToCart(ctx context.Context, userID string, req models.AddToCartRequest) (models.OpResult, error)
	RemoveFromCart(ctx context.Context, userID, serviceID string) (models.OpResult, error)
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	// ActiveCount counts only entries whose service still exists and is
	// active. The raw cart document is never pruned by this read.
	ActiveCount(ctx context.Context, userID string) (int, error)
}

// CatalogService owns vendor service lifecycle, including the cascading
// delete across every collection that references a service ID.
type CatalogService interface {
	SaveVendorService(ctx context.Context, vendorID string, req models.SaveServiceRequest) (*models.VendorService, models.ServiceKey, error)
	GetService(ctx context.Context, key models.ServiceKey) (*models.VendorService, error)
	SetActive(ctx context.Context, key models.ServiceKey, requesterID string, caps Capabilities, active bool) error
	SetVerified(ctx context.Context, key models.ServiceKey, caps Capabilities, verified bool) error
	DeleteVendorService(ctx context.Context, key models.ServiceKey, requesterID string, caps Capabilities) error
	Browse(ctx context.Context, cityID, categoryID string, maxPrice int64, dateFrom, dateTo string) ([]*models.VendorService, error)
	ListVendorServices(ctx context.Context, cityID, categoryID, vendorID string) ([]*models.VendorService, error)
	CategoryLabel(ctx context.Context, categoryID string) string
}

// AvailabilityService is the read-only availability consultation.
type AvailabilityService interface {
	// FilterAvailable drops every service that has a booked or blocked
	// date inside [from, to]. Absence of calendar data means available.
	FilterAvailable(ctx context.Context, services []*models.VendorService, from, to string) ([]*models.VendorService, error)
	// DateStatuses returns the per-day status map for one service over a
	// date range; days absent from the map are available.
	DateStatuses(ctx context.Context, serviceID, from, to string) (map[string]string, error)
}

// BookingService creates booking and review records.
type BookingService interface {
	CreateBooking(ctx context.Context, userID string, key models.ServiceKey, req models.CreateBookingRequest) (*models.Booking, error)
	CreateReview(ctx context.Context, userID, userName string, key models.ServiceKey, req models.CreateReviewRequest) (*models.Review, error)
}
