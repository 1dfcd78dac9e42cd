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

const (
	servicesCollection   = "services"
	categoriesCollection = "categories"
)

// firestoreServiceRepository implements the ServiceRepository interface
// using Firestore. Service documents live at
// services/{cityID}/{categoryID}/{serviceID}; city documents are pure
// containers for the per-category subcollections.
type firestoreServiceRepository struct {
	client *firestore.Client
}

// NewFirestoreServiceRepository creates a new instance of firestoreServiceRepository.
func NewFirestoreServiceRepository(client *firestore.Client) ServiceRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ServiceRepository.")
	}
	return &firestoreServiceRepository{client: client}
}

func (r *firestoreServiceRepository) docRef(key models.ServiceKey) *firestore.DocumentRef {
	return r.client.Collection(servicesCollection).
		Doc(key.CityID).
		Collection(key.CategoryID).
		Doc(key.ServiceID)
}

func validateKey(key models.ServiceKey) error {
	if key.CityID == "" || key.CategoryID == "" || key.ServiceID == "" {
		return errors.New("service key requires cityID, categoryID and serviceID")
	}
	return nil
}

// Get retrieves a service document by its full key.
func (r *firestoreServiceRepository) Get(ctx context.Context, key models.ServiceKey) (*models.VendorService, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	docSnap, err := r.docRef(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("service '%s' not found: %w", key.ServiceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service '%s': %w", key.ServiceID, err)
	}

	var svc models.VendorService
	if err := docSnap.DataTo(&svc); err != nil {
		return nil, fmt.Errorf("failed to decode service '%s': %w", key.ServiceID, err)
	}
	svc.ID = docSnap.Ref.ID
	return &svc, nil
}

// Save upserts the full service document. The caller is responsible for
// carrying CreatedAt over from the existing document on edits; UpdatedAt
// is stamped server-side via the model's serverTimestamp tag.
func (r *firestoreServiceRepository) Save(ctx context.Context, key models.ServiceKey, svc *models.VendorService) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := r.docRef(key).Set(ctx, svc); err != nil {
		return fmt.Errorf("failed to save service '%s': %w", key.ServiceID, err)
	}
	return nil
}

// SetFlag narrowly updates one boolean field plus updatedAt. It must never
// overwrite the full document: category-specific attributes and image lists
// stay untouched.
func (r *firestoreServiceRepository) SetFlag(ctx context.Context, key models.ServiceKey, field string, value bool) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if field != "active" && field != "verified" {
		return fmt.Errorf("unsupported service flag %q", field)
	}
	_, err := r.docRef(key).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("service '%s' not found: %w", key.ServiceID, ErrNotFound)
		}
		return fmt.Errorf("failed to set %s=%v on service '%s': %w", field, value, key.ServiceID, err)
	}
	return nil
}

// Delete removes the primary service document.
func (r *firestoreServiceRepository) Delete(ctx context.Context, key models.ServiceKey) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := r.docRef(key).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete service '%s': %w", key.ServiceID, err)
	}
	return nil
}

// ListByCategory returns services within one city+category, optionally
// capped by starting price and restricted to verified listings. Only
// active services are returned; this is the public browse query.
func (r *firestoreServiceRepository) ListByCategory(ctx context.Context, cityID, categoryID string, maxPrice int64, verifiedOnly bool) ([]*models.VendorService, error) {
	if cityID == "" || categoryID == "" {
		return nil, errors.New("cityID and categoryID are required for ListByCategory")
	}

	query := r.client.Collection(servicesCollection).
		Doc(cityID).
		Collection(categoryID).
		Where("active", "==", true)
	if verifiedOnly {
		query = query.Where("verified", "==", true)
	}
	if maxPrice > 0 {
		query = query.Where("startingPrice", "<=", maxPrice).OrderBy("startingPrice", firestore.Asc)
	}

	return r.collectServices(ctx, query, cityID, categoryID)
}

// ListByVendor returns a vendor's own listings within one city+category,
// including inactive ones, for the vendor dashboard.
func (r *firestoreServiceRepository) ListByVendor(ctx context.Context, cityID, categoryID, vendorID string) ([]*models.VendorService, error) {
	if cityID == "" || categoryID == "" || vendorID == "" {
		return nil, errors.New("cityID, categoryID and vendorID are required for ListByVendor")
	}
	query := r.client.Collection(servicesCollection).
		Doc(cityID).
		Collection(categoryID).
		Where("vendorId", "==", vendorID)
	return r.collectServices(ctx, query, cityID, categoryID)
}

func (r *firestoreServiceRepository) collectServices(ctx context.Context, query firestore.Query, cityID, categoryID string) ([]*models.VendorService, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var services []*models.VendorService
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate services in %s/%s: %w", cityID, categoryID, err)
		}

		var svc models.VendorService
		if decodeErr := doc.DataTo(&svc); decodeErr != nil {
			log.Printf("Skipping undecodable service '%s' in %s/%s: %v", doc.Ref.ID, cityID, categoryID, decodeErr)
			continue
		}
		svc.ID = doc.Ref.ID
		services = append(services, &svc)
	}
	return services, nil
}

// CategoryLabels reads the static categories collection and returns a map
// of category ID to display label. Consumed through the label cache; this
// read is not on any hot path directly.
func (r *firestoreServiceRepository) CategoryLabels(ctx context.Context) (map[string]string, error) {
	iter := r.client.Collection(categoriesCollection).Documents(ctx)
	defer iter.Stop()

	labels := make(map[string]string)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}

		var category struct {
			Label string `firestore:"label"`
		}
		if decodeErr := doc.DataTo(&category); decodeErr != nil {
			log.Printf("Skipping undecodable category '%s': %v", doc.Ref.ID, decodeErr)
			continue
		}
		labels[doc.Ref.ID] = category.Label
	}
	return labels, nil
}
