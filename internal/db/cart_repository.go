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

const cartsCollection = "carts"

// firestoreCartRepository implements the CartRepository interface using
// Firestore. Each user has one cart document with an "items" map keyed by
// service ID.
type firestoreCartRepository struct {
	client *firestore.Client
}

// NewFirestoreCartRepository creates a new instance of firestoreCartRepository.
func NewFirestoreCartRepository(client *firestore.Client) CartRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CartRepository.")
	}
	return &firestoreCartRepository{client: client}
}

// Get retrieves a user's cart document. Returns ErrNotFound when the user
// has never added anything to the cart.
func (r *firestoreCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Get operation")
	}
	docSnap, err := r.client.Collection(cartsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("cart for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user '%s': %w", userID, err)
	}

	var cart models.Cart
	if err := docSnap.DataTo(&cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart for user '%s': %w", userID, err)
	}
	cart.UserID = docSnap.Ref.ID
	if cart.Items == nil {
		cart.Items = map[string]models.CartEntry{}
	}
	return &cart, nil
}

// PutEntry merges one entry into the cart document under items.{serviceID}.
// MergeAll keeps sibling entries intact and creates the document if absent.
func (r *firestoreCartRepository) PutEntry(ctx context.Context, userID, serviceID string, entry models.CartEntry) error {
	if userID == "" || serviceID == "" {
		return errors.New("userID and serviceID are required for PutEntry")
	}
	_, err := r.client.Collection(cartsCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"items": map[string]models.CartEntry{serviceID: entry},
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to put cart entry '%s' for user '%s': %w", serviceID, userID, err)
	}
	return nil
}

// RemoveEntry deletes the items.{serviceID} field from the cart document.
// Deleting an absent field is a no-op on the Firestore side.
func (r *firestoreCartRepository) RemoveEntry(ctx context.Context, userID, serviceID string) error {
	if userID == "" || serviceID == "" {
		return errors.New("userID and serviceID are required for RemoveEntry")
	}
	_, err := r.client.Collection(cartsCollection).Doc(userID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"items", serviceID}, Value: firestore.Delete},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("cart for user '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to remove cart entry '%s' for user '%s': %w", serviceID, userID, err)
	}
	return nil
}

// RemoveServiceFromAllCarts scans every cart document and strips the
// serviceID key where present. Acceptable at moderate scale; a reverse
// index would replace the scan if cart volume outgrows it.
func (r *firestoreCartRepository) RemoveServiceFromAllCarts(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for RemoveServiceFromAllCarts")
	}

	iter := r.client.Collection(cartsCollection).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to iterate carts: %w", err)
		}

		var cart models.Cart
		if decodeErr := doc.DataTo(&cart); decodeErr != nil {
			log.Printf("Skipping undecodable cart '%s': %v", doc.Ref.ID, decodeErr)
			continue
		}
		if _, present := cart.Items[serviceID]; !present {
			continue
		}
		if _, err := bw.Update(doc.Ref, []firestore.Update{
			{FieldPath: firestore.FieldPath{"items", serviceID}, Value: firestore.Delete},
		}); err != nil {
			bw.End()
			return fmt.Errorf("failed to queue cart cleanup for '%s': %w", doc.Ref.ID, err)
		}
	}
	bw.End()
	return nil
}
