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
	usersCollection   = "users"
	unlocksCollection = "userUnlocks"
)

// ErrNotFound is the common error for a document missing from Firestore,
// shared by all repositories in this package.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document and its empty unlocked-set document.
// The user.ID (Firebase Auth UID) is used as the Firestore document ID for
// both; CreatedAt/UpdatedAt are populated server-side via serverTimestamp.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID '%s' already exists: %w", user.ID, err)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}

	// The unlocked set starts empty. Create (not Set) so a document already
	// written by a concurrent unlock is never clobbered.
	_, err = r.client.Collection(unlocksCollection).Doc(user.ID).Create(ctx, map[string]interface{}{
		"services":  []string{},
		"updatedAt": firestore.ServerTimestamp,
	})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to create unlocked-set for user '%s': %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user document from Firestore by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = docSnap.Ref.ID

	return &user, nil
}

// GetUnlockedServices retrieves the user's unlocked-service set. A missing
// document is treated as an empty set, not an error: signup creates it, but
// a user created before that behavior existed should still be readable.
func (r *firestoreUserRepository) GetUnlockedServices(ctx context.Context, userID string) (*models.UnlockedServices, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetUnlockedServices operation")
	}
	docSnap, err := r.client.Collection(unlocksCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &models.UnlockedServices{UserID: userID, Services: []string{}}, nil
		}
		return nil, fmt.Errorf("failed to get unlocked-set for user '%s': %w", userID, err)
	}

	var set models.UnlockedServices
	if err := docSnap.DataTo(&set); err != nil {
		return nil, fmt.Errorf("failed to decode unlocked-set for user '%s': %w", userID, err)
	}
	set.UserID = docSnap.Ref.ID
	return &set, nil
}

// ClaimUnlock runs the check-deduct-append sequence inside one Firestore
// transaction. Two concurrent claims for the same (user, service) pair
// serialize on the transaction, so a single unlock can never be charged
// twice and the balance can never go negative.
func (r *firestoreUserRepository) ClaimUnlock(ctx context.Context, userID, serviceID string) (*ClaimResult, error) {
	if userID == "" || serviceID == "" {
		return nil, errors.New("userID and serviceID are required for ClaimUnlock")
	}

	userRef := r.client.Collection(usersCollection).Doc(userID)
	unlockRef := r.client.Collection(unlocksCollection).Doc(userID)

	var result ClaimResult
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		userSnap, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("failed to read user '%s': %w", userID, err)
		}
		var user models.User
		if err := userSnap.DataTo(&user); err != nil {
			return fmt.Errorf("failed to decode user '%s': %w", userID, err)
		}

		var set models.UnlockedServices
		unlockSnap, err := tx.Get(unlockRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return fmt.Errorf("failed to read unlocked-set for '%s': %w", userID, err)
		}
		if err == nil {
			if err := unlockSnap.DataTo(&set); err != nil {
				return fmt.Errorf("failed to decode unlocked-set for '%s': %w", userID, err)
			}
		}

		if set.Contains(serviceID) {
			result = ClaimResult{Outcome: ClaimAlreadyUnlocked, RemainingCredits: user.Credits}
			return nil
		}
		if user.Credits <= 0 {
			result = ClaimResult{Outcome: ClaimInsufficientCredits, RemainingCredits: user.Credits}
			return nil
		}

		if err := tx.Update(userRef, []firestore.Update{
			{Path: "credits", Value: user.Credits - 1},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		}); err != nil {
			return fmt.Errorf("failed to decrement credits for '%s': %w", userID, err)
		}
		if err := tx.Set(unlockRef, map[string]interface{}{
			"services":  firestore.ArrayUnion(serviceID),
			"updatedAt": firestore.ServerTimestamp,
		}, firestore.MergeAll); err != nil {
			return fmt.Errorf("failed to append unlock for '%s': %w", userID, err)
		}

		result = ClaimResult{Outcome: ClaimGranted, RemainingCredits: user.Credits - 1}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveServiceFromAllUnlockSets strips serviceID from every unlocked set
// that contains it. The array-contains query narrows the scan to only the
// documents that actually reference the service.
func (r *firestoreUserRepository) RemoveServiceFromAllUnlockSets(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for RemoveServiceFromAllUnlockSets")
	}

	iter := r.client.Collection(unlocksCollection).
		Where("services", "array-contains", serviceID).
		Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to iterate unlocked-sets referencing '%s': %w", serviceID, err)
		}
		if _, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "services", Value: firestore.ArrayRemove(serviceID)},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		}); err != nil {
			bw.End()
			return fmt.Errorf("failed to queue unlock removal for doc '%s': %w", doc.Ref.ID, err)
		}
	}
	bw.End()
	return nil
}
