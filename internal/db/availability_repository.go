package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"weddinghub-backend-go/internal/models"
)

const availabilityCollection = "availability"

// firestoreAvailabilityRepository implements the AvailabilityRepository
// interface using Firestore. Document IDs are "{serviceID}_{YYYY-MM}" so a
// month lookup is a single point read, and the serviceId field supports the
// equality query used during cascading deletes.
type firestoreAvailabilityRepository struct {
	client *firestore.Client
}

// NewFirestoreAvailabilityRepository creates a new instance of firestoreAvailabilityRepository.
func NewFirestoreAvailabilityRepository(client *firestore.Client) AvailabilityRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AvailabilityRepository.")
	}
	return &firestoreAvailabilityRepository{client: client}
}

// GetMonth retrieves the calendar document for one service-month.
// ErrNotFound means no dates have been booked or blocked that month.
func (r *firestoreAvailabilityRepository) GetMonth(ctx context.Context, serviceID, month string) (*models.AvailabilityMonth, error) {
	if serviceID == "" || month == "" {
		return nil, errors.New("serviceID and month are required for GetMonth")
	}
	docID := models.AvailabilityDocID(serviceID, month)
	docSnap, err := r.client.Collection(availabilityCollection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("availability '%s' not found: %w", docID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get availability '%s': %w", docID, err)
	}

	var monthDoc models.AvailabilityMonth
	if err := docSnap.DataTo(&monthDoc); err != nil {
		return nil, fmt.Errorf("failed to decode availability '%s': %w", docID, err)
	}
	return &monthDoc, nil
}

// DeleteByServiceID removes every calendar document referencing serviceID.
func (r *firestoreAvailabilityRepository) DeleteByServiceID(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for DeleteByServiceID")
	}
	return deleteByFieldEquality(ctx, r.client, availabilityCollection, "serviceId", serviceID)
}

// deleteByFieldEquality queries collection for documents whose field equals
// value and deletes them through a BulkWriter. Shared by the availability,
// booking and review cleanup steps of the cascading delete.
func deleteByFieldEquality(ctx context.Context, client *firestore.Client, collection, field, value string) error {
	iter := client.Collection(collection).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	bw := client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to iterate %s where %s=%s: %w", collection, field, value, err)
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			bw.End()
			return fmt.Errorf("failed to queue delete of %s/%s: %w", collection, doc.Ref.ID, err)
		}
	}
	bw.End()
	return nil
}
