package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// bookingService implements the BookingService interface.
type bookingService struct {
	bookingRepo db.BookingRepository
	reviewRepo  db.ReviewRepository
	serviceRepo db.ServiceRepository
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(bookingRepo db.BookingRepository, reviewRepo db.ReviewRepository, serviceRepo db.ServiceRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		serviceRepo: serviceRepo,
	}
}

// CreateBooking records a reservation against an existing service.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, key models.ServiceKey, req models.CreateBookingRequest) (*models.Booking, error) {
	if userID == "" {
		return nil, errors.New("userID is required for CreateBooking")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateRange, req.Date)
	}

	svc, err := s.serviceRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, key.ServiceID)
		}
		return nil, fmt.Errorf("failed to resolve service '%s' for booking: %w", key.ServiceID, err)
	}

	booking := &models.Booking{
		ServiceID: svc.ID,
		VendorID:  svc.VendorID,
		UserID:    userID,
		Date:      req.Date,
		Note:      req.Note,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking for '%s': %w", svc.ID, err)
	}
	return booking, nil
}

// CreateReview records feedback against an existing service.
func (s *bookingService) CreateReview(ctx context.Context, userID, userName string, key models.ServiceKey, req models.CreateReviewRequest) (*models.Review, error) {
	if userID == "" {
		return nil, errors.New("userID is required for CreateReview")
	}

	svc, err := s.serviceRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, key.ServiceID)
		}
		return nil, fmt.Errorf("failed to resolve service '%s' for review: %w", key.ServiceID, err)
	}

	review := &models.Review{
		ServiceID: svc.ID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review for '%s': %w", svc.ID, err)
	}
	return review, nil
}
