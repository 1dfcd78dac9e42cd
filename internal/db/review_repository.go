package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"weddinghub-backend-go/internal/models"
)

const reviewsCollection = "reviews"

// firestoreReviewRepository implements the ReviewRepository interface
// using Firestore, with auto-generated document IDs.
type firestoreReviewRepository struct {
	client *firestore.Client
}

// NewFirestoreReviewRepository creates a new instance of firestoreReviewRepository.
func NewFirestoreReviewRepository(client *firestore.Client) ReviewRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ReviewRepository.")
	}
	return &firestoreReviewRepository{client: client}
}

// Create adds a new review document with an auto-generated ID.
func (r *firestoreReviewRepository) Create(ctx context.Context, review *models.Review) (string, error) {
	if review.ServiceID == "" || review.UserID == "" {
		return "", errors.New("review requires serviceId and userId")
	}
	docRef := r.client.Collection(reviewsCollection).NewDoc()
	review.ID = docRef.ID
	if _, err := docRef.Create(ctx, review); err != nil {
		return "", fmt.Errorf("failed to create review for service '%s': %w", review.ServiceID, err)
	}
	return docRef.ID, nil
}

// DeleteByServiceID removes every review referencing serviceID.
func (r *firestoreReviewRepository) DeleteByServiceID(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for DeleteByServiceID")
	}
	return deleteByFieldEquality(ctx, r.client, reviewsCollection, "serviceId", serviceID)
}
