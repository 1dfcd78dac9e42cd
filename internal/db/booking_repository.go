package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"weddinghub-backend-go/internal/models"
)

const bookingsCollection = "bookings"

// firestoreBookingRepository implements the BookingRepository interface
// using Firestore, with auto-generated document IDs.
type firestoreBookingRepository struct {
	client *firestore.Client
}

// NewFirestoreBookingRepository creates a new instance of firestoreBookingRepository.
func NewFirestoreBookingRepository(client *firestore.Client) BookingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BookingRepository.")
	}
	return &firestoreBookingRepository{client: client}
}

// Create adds a new booking document with an auto-generated ID.
func (r *firestoreBookingRepository) Create(ctx context.Context, booking *models.Booking) (string, error) {
	if booking.ServiceID == "" || booking.UserID == "" {
		return "", errors.New("booking requires serviceId and userId")
	}
	docRef := r.client.Collection(bookingsCollection).NewDoc()
	booking.ID = docRef.ID
	if _, err := docRef.Create(ctx, booking); err != nil {
		return "", fmt.Errorf("failed to create booking for service '%s': %w", booking.ServiceID, err)
	}
	return docRef.ID, nil
}

// DeleteByServiceID removes every booking referencing serviceID.
func (r *firestoreBookingRepository) DeleteByServiceID(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for DeleteByServiceID")
	}
	return deleteByFieldEquality(ctx, r.client, bookingsCollection, "serviceId", serviceID)
}
