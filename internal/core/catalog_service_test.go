package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weddinghub-backend-go/internal/models"
)

type catalogFixture struct {
	serviceRepo      *fakeServiceRepo
	availabilityRepo *fakeAvailabilityRepo
	bookingRepo      *fakeBookingRepo
	reviewRepo       *fakeReviewRepo
	cartRepo         *fakeCartRepo
	userRepo         *fakeUserRepo
	engagementRepo   *fakeEngagementRepo
	catalog          CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		serviceRepo:      newFakeServiceRepo(),
		availabilityRepo: newFakeAvailabilityRepo(),
		bookingRepo:      &fakeBookingRepo{},
		reviewRepo:       &fakeReviewRepo{},
		cartRepo:         newFakeCartRepo(),
		userRepo:         newFakeUserRepo(),
		engagementRepo:   newFakeEngagementRepo(),
	}
	availability := NewAvailabilityService(f.availabilityRepo, zap.NewNop())
	f.catalog = NewCatalogService(
		f.serviceRepo,
		f.availabilityRepo,
		f.bookingRepo,
		f.reviewRepo,
		f.cartRepo,
		f.userRepo,
		f.engagementRepo,
		availability,
		time.Minute,
		zap.NewNop(),
	)
	return f
}

func saveReq(name string) models.SaveServiceRequest {
	return models.SaveServiceRequest{
		Name:          name,
		Category:      "Photographers",
		City:          "New Delhi",
		StartingPrice: 50000,
		PhoneNumber:   "+911234567890",
	}
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "new-delhi", NormalizeID("New Delhi"))
	assert.Equal(t, "new-delhi", NormalizeID("  new   DELHI  "))
	assert.Equal(t, "photographers", NormalizeID("Photographers"))
	assert.Equal(t, "", NormalizeID("   "))
}

func TestSaveVendorServiceCreates(t *testing.T) {
	f := newCatalogFixture()

	svc, key, err := f.catalog.SaveVendorService(context.Background(), "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)

	assert.Equal(t, "new-delhi", key.CityID)
	assert.Equal(t, "photographers", key.CategoryID)
	assert.Equal(t, "rose-garden_vendor-1", key.ServiceID)
	assert.Equal(t, "vendor-1", svc.VendorID)
	assert.True(t, svc.Active)
	assert.False(t, svc.Verified)
	assert.False(t, svc.CreatedAt.IsZero())
}

func TestSaveVendorServiceEditPreservesCreatedAtAndVerified(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	svc, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)
	createdAt := svc.CreatedAt

	require.NoError(t, f.serviceRepo.SetFlag(ctx, key, "verified", true))

	req := saveReq("Rose Garden")
	req.ServiceID = key.ServiceID
	req.Description = "Updated description"
	updated, _, err := f.catalog.SaveVendorService(ctx, "vendor-1", req)
	require.NoError(t, err)

	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.True(t, updated.Verified)
	assert.Equal(t, "Updated description", updated.Description)
}

func TestSaveVendorServiceRejectsForeignEdit(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)

	req := saveReq("Rose Garden")
	req.ServiceID = key.ServiceID
	_, _, err = f.catalog.SaveVendorService(ctx, "vendor-2", req)
	assert.ErrorIs(t, err, ErrForbiddenAccess)
}

func TestSetActivePermissions(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)

	err = f.catalog.SetActive(ctx, key, "vendor-2", Capabilities{}, false)
	assert.ErrorIs(t, err, ErrForbiddenAccess)

	require.NoError(t, f.catalog.SetActive(ctx, key, "vendor-1", Capabilities{}, false))
	svc, err := f.serviceRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, svc.Active)

	// Admins may toggle services they do not own.
	require.NoError(t, f.catalog.SetActive(ctx, key, "admin-1", ResolveCapabilities(models.RoleAdmin), true))
	svc, err = f.serviceRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, svc.Active)
}

func TestSetActiveUnknownService(t *testing.T) {
	f := newCatalogFixture()
	key := models.ServiceKey{CityID: "new-delhi", CategoryID: "photographers", ServiceID: "missing"}

	err := f.catalog.SetActive(context.Background(), key, "vendor-1", Capabilities{}, true)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestSetVerifiedRequiresCapability(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)

	err = f.catalog.SetVerified(ctx, key, Capabilities{}, true)
	assert.ErrorIs(t, err, ErrForbiddenAccess)

	require.NoError(t, f.catalog.SetVerified(ctx, key, ResolveCapabilities(models.RoleAdmin), true))
	svc, err := f.serviceRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, svc.Verified)
}

func TestDeleteVendorServiceCascades(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)
	serviceID := key.ServiceID

	// Seed references to the service in every dependent collection.
	seedUser(t, f.userRepo, "user-1", models.RoleCouple, 3)
	_, err = f.userRepo.ClaimUnlock(ctx, "user-1", serviceID)
	require.NoError(t, err)
	require.NoError(t, f.cartRepo.PutEntry(ctx, "user-1", serviceID, models.CartEntry{City: "New Delhi", Category: "Photographers"}))
	_, err = f.bookingRepo.Create(ctx, &models.Booking{ServiceID: serviceID, UserID: "user-1", Date: "2026-10-10"})
	require.NoError(t, err)
	_, err = f.reviewRepo.Create(ctx, &models.Review{ServiceID: serviceID, UserID: "user-1", Rating: 5})
	require.NoError(t, err)
	_, err = f.engagementRepo.Append(ctx, "vendor-1", models.Engagement{
		EngagementID: models.EngagementID(serviceID, "user-1"),
		ServiceID:    serviceID,
	})
	require.NoError(t, err)
	f.availabilityRepo.months[models.AvailabilityDocID(serviceID, "2026-10")] = &models.AvailabilityMonth{
		ServiceID: serviceID,
		Month:     "2026-10",
		Dates:     map[string]string{"2026-10-10": models.DateBooked},
	}

	require.NoError(t, f.catalog.DeleteVendorService(ctx, key, "vendor-1", Capabilities{}))

	_, err = f.serviceRepo.Get(ctx, key)
	assert.Error(t, err)
	assert.Empty(t, f.userRepo.unlocked("user-1"))
	assert.Empty(t, f.availabilityRepo.months)
	assert.Empty(t, f.bookingRepo.bookings)
	assert.Empty(t, f.reviewRepo.reviews)
	assert.Equal(t, 0, f.engagementRepo.count("vendor-1"))
	cart, err := f.cartRepo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestDeleteVendorServicePermissions(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)

	err = f.catalog.DeleteVendorService(ctx, key, "vendor-2", Capabilities{})
	assert.ErrorIs(t, err, ErrForbiddenAccess)

	require.NoError(t, f.catalog.DeleteVendorService(ctx, key, "admin-1", ResolveCapabilities(models.RoleAdmin)))
}

func TestDeleteVendorServiceUnlockCleanupFailureSurfaces(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, key, err := f.catalog.SaveVendorService(ctx, "vendor-1", saveReq("Rose Garden"))
	require.NoError(t, err)

	f.userRepo.unlockErr = errors.New("store unavailable")
	err = f.catalog.DeleteVendorService(ctx, key, "vendor-1", Capabilities{})
	assert.ErrorIs(t, err, ErrUnlockCleanupFailed)
}

func TestBrowseVerifiedActiveOnly(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	key := func(id string) models.ServiceKey {
		return models.ServiceKey{CityID: "new-delhi", CategoryID: "photographers", ServiceID: id}
	}
	require.NoError(t, f.serviceRepo.Save(ctx, key("listed"), &models.VendorService{ID: "listed", Active: true, Verified: true, StartingPrice: 40000}))
	require.NoError(t, f.serviceRepo.Save(ctx, key("unverified"), &models.VendorService{ID: "unverified", Active: true, StartingPrice: 40000}))
	require.NoError(t, f.serviceRepo.Save(ctx, key("inactive"), &models.VendorService{ID: "inactive", Active: false, Verified: true, StartingPrice: 40000}))
	require.NoError(t, f.serviceRepo.Save(ctx, key("pricey"), &models.VendorService{ID: "pricey", Active: true, Verified: true, StartingPrice: 90000}))

	services, err := f.catalog.Browse(ctx, "new-delhi", "photographers", 50000, "", "")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "listed", services[0].ID)
}

func TestBrowseWithDateRange(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	key := func(id string) models.ServiceKey {
		return models.ServiceKey{CityID: "new-delhi", CategoryID: "photographers", ServiceID: id}
	}
	require.NoError(t, f.serviceRepo.Save(ctx, key("free"), &models.VendorService{ID: "free", Active: true, Verified: true}))
	require.NoError(t, f.serviceRepo.Save(ctx, key("busy"), &models.VendorService{ID: "busy", Active: true, Verified: true}))
	f.availabilityRepo.months[models.AvailabilityDocID("busy", "2026-10")] = &models.AvailabilityMonth{
		ServiceID: "busy",
		Month:     "2026-10",
		Dates:     map[string]string{"2026-10-11": models.DateBooked},
	}

	services, err := f.catalog.Browse(ctx, "new-delhi", "photographers", 0, "2026-10-10", "2026-10-12")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "free", services[0].ID)
}

func TestCategoryLabelFallsBackToID(t *testing.T) {
	f := newCatalogFixture()
	f.serviceRepo.labels["photographers"] = "Photographers"

	assert.Equal(t, "Photographers", f.catalog.CategoryLabel(context.Background(), "photographers"))
	assert.Equal(t, "unknown-category", f.catalog.CategoryLabel(context.Background(), "unknown-category"))
}
