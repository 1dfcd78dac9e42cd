package core

import (
	"context"
	"fmt"
	"sync"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// In-memory repository fakes. They honor the same contracts as the
// Firestore implementations: db.ErrNotFound for missing documents, and an
// atomic check-deduct-append in ClaimUnlock.

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	unlocks map[string][]string

	claimErr  error
	unlockErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[string]*models.User{},
		unlocks: map[string][]string{},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user '%s' already exists", user.ID)
	}
	clone := *user
	r.users[user.ID] = &clone
	r.unlocks[user.ID] = []string{}
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", userID, db.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetUnlockedServices(_ context.Context, userID string) (*models.UnlockedServices, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	services := append([]string{}, r.unlocks[userID]...)
	return &models.UnlockedServices{UserID: userID, Services: services}, nil
}

func (r *fakeUserRepo) ClaimUnlock(_ context.Context, userID, serviceID string) (*db.ClaimResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimErr != nil {
		return nil, r.claimErr
	}
	user, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", userID, db.ErrNotFound)
	}
	for _, id := range r.unlocks[userID] {
		if id == serviceID {
			return &db.ClaimResult{Outcome: db.ClaimAlreadyUnlocked, RemainingCredits: user.Credits}, nil
		}
	}
	if user.Credits <= 0 {
		return &db.ClaimResult{Outcome: db.ClaimInsufficientCredits, RemainingCredits: user.Credits}, nil
	}
	user.Credits--
	r.unlocks[userID] = append(r.unlocks[userID], serviceID)
	return &db.ClaimResult{Outcome: db.ClaimGranted, RemainingCredits: user.Credits}, nil
}

func (r *fakeUserRepo) RemoveServiceFromAllUnlockSets(_ context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unlockErr != nil {
		return r.unlockErr
	}
	for userID, services := range r.unlocks {
		kept := services[:0]
		for _, id := range services {
			if id != serviceID {
				kept = append(kept, id)
			}
		}
		r.unlocks[userID] = kept
	}
	return nil
}

func (r *fakeUserRepo) credits(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].Credits
}

func (r *fakeUserRepo) unlocked(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.unlocks[userID]...)
}

type fakeEngagementRepo struct {
	mu        sync.Mutex
	records   map[string][]models.Engagement
	appendErr error
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{records: map[string][]models.Engagement{}}
}

func (r *fakeEngagementRepo) Append(_ context.Context, vendorID string, record models.Engagement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return false, r.appendErr
	}
	for _, e := range r.records[vendorID] {
		if e.EngagementID == record.EngagementID {
			return false, nil
		}
	}
	r.records[vendorID] = append(r.records[vendorID], record)
	return true, nil
}

func (r *fakeEngagementRepo) ListByVendor(_ context.Context, vendorID string) ([]models.Engagement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Engagement{}, r.records[vendorID]...), nil
}

func (r *fakeEngagementRepo) RemoveServiceRecords(_ context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for vendorID, records := range r.records {
		kept := records[:0]
		for _, e := range records {
			if e.ServiceID != serviceID {
				kept = append(kept, e)
			}
		}
		r.records[vendorID] = kept
	}
	return nil
}

func (r *fakeEngagementRepo) count(vendorID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records[vendorID])
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]map[string]models.CartEntry
	puts  int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]map[string]models.CartEntry{}}
}

func (r *fakeCartRepo) Get(_ context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart '%s': %w", userID, db.ErrNotFound)
	}
	cloned := make(map[string]models.CartEntry, len(items))
	for k, v := range items {
		cloned[k] = v
	}
	return &models.Cart{UserID: userID, Items: cloned}, nil
}

func (r *fakeCartRepo) PutEntry(_ context.Context, userID, serviceID string, entry models.CartEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.carts[userID] == nil {
		r.carts[userID] = map[string]models.CartEntry{}
	}
	r.carts[userID][serviceID] = entry
	r.puts++
	return nil
}

func (r *fakeCartRepo) RemoveEntry(_ context.Context, userID, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.carts[userID]
	if !ok {
		return fmt.Errorf("cart '%s': %w", userID, db.ErrNotFound)
	}
	delete(items, serviceID)
	return nil
}

func (r *fakeCartRepo) RemoveServiceFromAllCarts(_ context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, items := range r.carts {
		delete(items, serviceID)
	}
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[models.ServiceKey]*models.VendorService
	labels   map[string]string
	labelErr error

	labelLoads int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		services: map[models.ServiceKey]*models.VendorService{},
		labels:   map[string]string{},
	}
}

func (r *fakeServiceRepo) Get(_ context.Context, key models.ServiceKey) (*models.VendorService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[key]
	if !ok {
		return nil, fmt.Errorf("service '%s': %w", key.ServiceID, db.ErrNotFound)
	}
	clone := *svc
	return &clone, nil
}

func (r *fakeServiceRepo) Save(_ context.Context, key models.ServiceKey, svc *models.VendorService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *svc
	r.services[key] = &clone
	return nil
}

func (r *fakeServiceRepo) SetFlag(_ context.Context, key models.ServiceKey, field string, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[key]
	if !ok {
		return fmt.Errorf("service '%s': %w", key.ServiceID, db.ErrNotFound)
	}
	switch field {
	case "active":
		svc.Active = value
	case "verified":
		svc.Verified = value
	default:
		return fmt.Errorf("unsupported service flag %q", field)
	}
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, key models.ServiceKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, key)
	return nil
}

func (r *fakeServiceRepo) ListByCategory(_ context.Context, cityID, categoryID string, maxPrice int64, verifiedOnly bool) ([]*models.VendorService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.VendorService
	for key, svc := range r.services {
		if key.CityID != cityID || key.CategoryID != categoryID {
			continue
		}
		if !svc.Active {
			continue
		}
		if verifiedOnly && !svc.Verified {
			continue
		}
		if maxPrice > 0 && svc.StartingPrice > maxPrice {
			continue
		}
		clone := *svc
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeServiceRepo) ListByVendor(_ context.Context, cityID, categoryID, vendorID string) ([]*models.VendorService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.VendorService
	for key, svc := range r.services {
		if key.CityID == cityID && key.CategoryID == categoryID && svc.VendorID == vendorID {
			clone := *svc
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) CategoryLabels(_ context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labelLoads++
	if r.labelErr != nil {
		return nil, r.labelErr
	}
	cloned := make(map[string]string, len(r.labels))
	for k, v := range r.labels {
		cloned[k] = v
	}
	return cloned, nil
}

type fakeAvailabilityRepo struct {
	mu     sync.Mutex
	months map[string]*models.AvailabilityMonth // keyed by AvailabilityDocID
	errID  string                               // doc ID whose read fails
	reads  int
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{months: map[string]*models.AvailabilityMonth{}}
}

func (r *fakeAvailabilityRepo) GetMonth(_ context.Context, serviceID, month string) (*models.AvailabilityMonth, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	docID := models.AvailabilityDocID(serviceID, month)
	if r.errID != "" && r.errID == docID {
		return nil, fmt.Errorf("simulated read failure for '%s'", docID)
	}
	doc, ok := r.months[docID]
	if !ok {
		return nil, fmt.Errorf("availability '%s': %w", docID, db.ErrNotFound)
	}
	clone := *doc
	return &clone, nil
}

func (r *fakeAvailabilityRepo) DeleteByServiceID(_ context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for docID, doc := range r.months {
		if doc.ServiceID == serviceID {
			delete(r.months, docID)
		}
	}
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*models.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	r.bookings = append(r.bookings, booking)
	return booking.ID, nil
}

func (r *fakeBookingRepo) DeleteByServiceID(_ context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.bookings[:0]
	for _, b := range r.bookings {
		if b.ServiceID != serviceID {
			kept = append(kept, b)
		}
	}
	r.bookings = kept
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = fmt.Sprintf("review-%d", len(r.reviews)+1)
	r.reviews = append(r.reviews, review)
	return review.ID, nil
}

func (r *fakeReviewRepo) DeleteByServiceID(_ context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reviews[:0]
	for _, rv := range r.reviews {
		if rv.ServiceID != serviceID {
			kept = append(kept, rv)
		}
	}
	r.reviews = kept
	return nil
}
