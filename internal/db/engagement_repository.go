package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"weddinghub-backend-go/internal/models"
)

const engagementsCollection = "vendorEngagements"

// firestoreEngagementRepository implements the EngagementRepository
// interface using Firestore. Each vendor has one document holding a
// "records" array; appends use ArrayUnion so concurrent writes from
// different users never clobber each other.
type firestoreEngagementRepository struct {
	client *firestore.Client
}

// NewFirestoreEngagementRepository creates a new instance of firestoreEngagementRepository.
func NewFirestoreEngagementRepository(client *firestore.Client) EngagementRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for EngagementRepository.")
	}
	return &firestoreEngagementRepository{client: client}
}

// Append adds record to the vendor's engagement document unless a record
// with the same engagement ID already exists. The read-then-union sequence
// is sufficient for de-duplication because the engagement ID is a
// deterministic (serviceID, userID) composite: a racing duplicate append
// writes an identical logical record, and readers key on EngagementID.
func (r *firestoreEngagementRepository) Append(ctx context.Context, vendorID string, record models.Engagement) (bool, error) {
	if vendorID == "" {
		return false, errors.New("vendorID cannot be empty for Append operation")
	}
	if record.EngagementID == "" {
		return false, errors.New("engagement ID cannot be empty for Append operation")
	}

	docRef := r.client.Collection(engagementsCollection).Doc(vendorID)
	docSnap, err := docRef.Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return false, fmt.Errorf("failed to read engagement log for vendor '%s': %w", vendorID, err)
	}
	if err == nil {
		existing, decodeErr := decodeEngagementRecords(docSnap)
		if decodeErr != nil {
			return false, decodeErr
		}
		for _, e := range existing {
			if e.EngagementID == record.EngagementID {
				return false, nil
			}
		}
	}

	_, err = docRef.Set(ctx, map[string]interface{}{
		"vendorId": vendorID,
		"records":  firestore.ArrayUnion(record),
	}, firestore.MergeAll)
	if err != nil {
		return false, fmt.Errorf("failed to append engagement '%s' for vendor '%s': %w", record.EngagementID, vendorID, err)
	}
	return true, nil
}

// ListByVendor returns all engagement records for a vendor sorted by
// UnlockedAt descending. A vendor with no document gets an empty list.
func (r *firestoreEngagementRepository) ListByVendor(ctx context.Context, vendorID string) ([]models.Engagement, error) {
	if vendorID == "" {
		return nil, errors.New("vendorID cannot be empty for ListByVendor operation")
	}

	docSnap, err := r.client.Collection(engagementsCollection).Doc(vendorID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []models.Engagement{}, nil
		}
		return nil, fmt.Errorf("failed to read engagement log for vendor '%s': %w", vendorID, err)
	}

	records, err := decodeEngagementRecords(docSnap)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UnlockedAt.After(records[j].UnlockedAt)
	})
	return records, nil
}

// RemoveServiceRecords filters out every engagement record referencing
// serviceID across all vendor documents, as part of the cascading delete.
func (r *firestoreEngagementRepository) RemoveServiceRecords(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for RemoveServiceRecords")
	}

	iter := r.client.Collection(engagementsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to iterate engagement logs: %w", err)
		}

		records, decodeErr := decodeEngagementRecords(doc)
		if decodeErr != nil {
			log.Printf("Skipping undecodable engagement log '%s': %v", doc.Ref.ID, decodeErr)
			continue
		}

		kept := records[:0]
		for _, e := range records {
			if e.ServiceID != serviceID {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(records) {
			continue
		}
		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "records", Value: kept},
		}); err != nil {
			return fmt.Errorf("failed to rewrite engagement log '%s': %w", doc.Ref.ID, err)
		}
	}
	return nil
}

// decodeEngagementRecords unpacks the "records" array of a vendor
// engagement document.
func decodeEngagementRecords(doc *firestore.DocumentSnapshot) ([]models.Engagement, error) {
	var container struct {
		Records []models.Engagement `firestore:"records"`
	}
	if err := doc.DataTo(&container); err != nil {
		return nil, fmt.Errorf("failed to decode engagement records for '%s': %w", doc.Ref.ID, err)
	}
	return container.Records, nil
}
