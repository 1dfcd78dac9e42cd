package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// Soft cart outcomes, surfaced verbatim to the UI. Neither is an error:
// re-adding is a benign "already there" state, not a dialog-worthy failure.
const (
	MsgAlreadyInCart = "already in cart"
	MsgCartNotFound  = "cart not found"
)

// cartService implements the CartService interface.
type cartService struct {
	cartRepo    db.CartRepository
	serviceRepo db.ServiceRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService instance. serviceRepo is used
// only to resolve entries for the derived active count.
func NewCartService(cartRepo db.CartRepository, serviceRepo db.ServiceRepository, logger *zap.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// AddToCart inserts the service into the user's cart. A second add for the
// same service is a no-op that reports "already in cart" without writing.
func (s *cartService) AddToCart(ctx context.Context, userID string, req models.AddToCartRequest) (models.OpResult, error) {
	if userID == "" {
		return models.OpResult{}, errors.New("userID is required for AddToCart")
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return models.OpResult{}, fmt.Errorf("failed to read cart for '%s': %w", userID, err)
	}
	if cart != nil {
		if _, present := cart.Items[req.ServiceID]; present {
			return models.OpResult{Success: false, Message: MsgAlreadyInCart}, nil
		}
	}

	entry := models.CartEntry{
		Category: req.Category,
		City:     req.City,
		AddedAt:  time.Now().UTC(),
	}
	if err := s.cartRepo.PutEntry(ctx, userID, req.ServiceID, entry); err != nil {
		return models.OpResult{}, fmt.Errorf("failed to add '%s' to cart for '%s': %w", req.ServiceID, userID, err)
	}
	return models.OpResult{Success: true, Message: "added to cart"}, nil
}

// RemoveFromCart deletes the entry key. A user with no cart document gets
// a soft "cart not found"; removing an absent key succeeds because the end
// state (key absent) already holds.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, serviceID string) (models.OpResult, error) {
	if userID == "" || serviceID == "" {
		return models.OpResult{}, errors.New("userID and serviceID are required for RemoveFromCart")
	}

	if err := s.cartRepo.RemoveEntry(ctx, userID, serviceID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.OpResult{Success: false, Message: MsgCartNotFound}, nil
		}
		return models.OpResult{}, fmt.Errorf("failed to remove '%s' from cart for '%s': %w", serviceID, userID, err)
	}
	return models.OpResult{Success: true, Message: "removed from cart"}, nil
}

// GetCart returns the raw cart map; a user without a cart document gets an
// empty cart rather than an error.
func (s *cartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: map[string]models.CartEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to read cart for '%s': %w", userID, err)
	}
	return cart, nil
}

// ActiveCount resolves every raw entry against the catalog and counts only
// services that still exist with active=true. Stale entries stay in the
// raw document indefinitely; only this view filters them, and it never
// prunes the stored map.
func (s *cartService) ActiveCount(ctx context.Context, userID string) (int, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for serviceID, entry := range cart.Items {
		key := models.ServiceKey{
			CityID:     NormalizeID(entry.City),
			CategoryID: NormalizeID(entry.Category),
			ServiceID:  serviceID,
		}
		svc, err := s.serviceRepo.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				continue // deleted service silently drops out of the count
			}
			s.logger.Warn("cart entry resolution failed, excluding from active count",
				zap.String("userId", userID),
				zap.String("serviceId", serviceID),
				zap.Error(err),
			)
			continue
		}
		if svc.Active {
			count++
		}
	}
	return count, nil
}
