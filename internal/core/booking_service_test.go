package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinghub-backend-go/internal/models"
)

func newBookingFixture(t *testing.T) (*fakeBookingRepo, *fakeReviewRepo, models.ServiceKey, BookingService) {
	t.Helper()
	bookingRepo := &fakeBookingRepo{}
	reviewRepo := &fakeReviewRepo{}
	serviceRepo := newFakeServiceRepo()

	key := models.ServiceKey{CityID: "new-delhi", CategoryID: "photographers", ServiceID: "svc1"}
	err := serviceRepo.Save(context.Background(), key, &models.VendorService{ID: "svc1", VendorID: "vendor-1", Active: true})
	require.NoError(t, err)

	return bookingRepo, reviewRepo, key, NewBookingService(bookingRepo, reviewRepo, serviceRepo)
}

func TestCreateBooking(t *testing.T) {
	bookingRepo, _, key, svc := newBookingFixture(t)

	booking, err := svc.CreateBooking(context.Background(), "user-1", key, models.CreateBookingRequest{Date: "2026-10-10", Note: "morning slot"})
	require.NoError(t, err)

	assert.Equal(t, "svc1", booking.ServiceID)
	assert.Equal(t, "vendor-1", booking.VendorID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.NotEmpty(t, booking.ID)
	assert.Len(t, bookingRepo.bookings, 1)
}

func TestCreateBookingRejectsBadDate(t *testing.T) {
	_, _, key, svc := newBookingFixture(t)

	_, err := svc.CreateBooking(context.Background(), "user-1", key, models.CreateBookingRequest{Date: "10/10/2026"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBookingUnknownService(t *testing.T) {
	_, _, _, svc := newBookingFixture(t)
	missing := models.ServiceKey{CityID: "new-delhi", CategoryID: "photographers", ServiceID: "ghost"}

	_, err := svc.CreateBooking(context.Background(), "user-1", missing, models.CreateBookingRequest{Date: "2026-10-10"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateReview(t *testing.T) {
	_, reviewRepo, key, svc := newBookingFixture(t)

	review, err := svc.CreateReview(context.Background(), "user-1", "Priya", key, models.CreateReviewRequest{Rating: 5, Comment: "wonderful"})
	require.NoError(t, err)

	assert.Equal(t, "svc1", review.ServiceID)
	assert.Equal(t, 5, review.Rating)
	assert.NotEmpty(t, review.ID)
	assert.Len(t, reviewRepo.reviews, 1)
}
