package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weddinghub-backend-go/internal/models"
)

func newCartFixture() (*fakeCartRepo, *fakeServiceRepo, CartService) {
	cartRepo := newFakeCartRepo()
	serviceRepo := newFakeServiceRepo()
	return cartRepo, serviceRepo, NewCartService(cartRepo, serviceRepo, zap.NewNop())
}

func addReq(serviceID string) models.AddToCartRequest {
	return models.AddToCartRequest{ServiceID: serviceID, Category: "Photographers", City: "New Delhi"}
}

func TestAddToCartIdempotent(t *testing.T) {
	cartRepo, _, svc := newCartFixture()
	ctx := context.Background()

	result, err := svc.AddToCart(ctx, "user-1", addReq("svc1"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, cartRepo.puts)

	// The duplicate add reports the soft outcome without a second write.
	result, err = svc.AddToCart(ctx, "user-1", addReq("svc1"))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, MsgAlreadyInCart, result.Message)
	assert.Equal(t, 1, cartRepo.puts)
}

func TestAddToCartFirstWriteCreatesCart(t *testing.T) {
	cartRepo, _, svc := newCartFixture()

	result, err := svc.AddToCart(context.Background(), "user-1", addReq("svc1"))
	require.NoError(t, err)
	assert.True(t, result.Success)

	cart, err := cartRepo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	entry, ok := cart.Items["svc1"]
	require.True(t, ok)
	assert.Equal(t, "Photographers", entry.Category)
	assert.Equal(t, "New Delhi", entry.City)
	assert.False(t, entry.AddedAt.IsZero())
}

func TestRemoveFromCartSoftOutcomes(t *testing.T) {
	_, _, svc := newCartFixture()
	ctx := context.Background()

	// No cart document yet.
	result, err := svc.RemoveFromCart(ctx, "user-1", "svc1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, MsgCartNotFound, result.Message)

	_, err = svc.AddToCart(ctx, "user-1", addReq("svc1"))
	require.NoError(t, err)

	result, err = svc.RemoveFromCart(ctx, "user-1", "svc1")
	require.NoError(t, err)
	assert.True(t, result.Success)

	// Removing an absent key from an existing cart still succeeds: the
	// desired end state already holds.
	result, err = svc.RemoveFromCart(ctx, "user-1", "svc1")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestGetCartWithoutDocument(t *testing.T) {
	_, _, svc := newCartFixture()

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestActiveCountFiltersStaleEntries(t *testing.T) {
	cartRepo, serviceRepo, svc := newCartFixture()
	ctx := context.Background()

	key := func(id string) models.ServiceKey {
		return models.ServiceKey{CityID: "new-delhi", CategoryID: "photographers", ServiceID: id}
	}
	require.NoError(t, serviceRepo.Save(ctx, key("svc-active"), &models.VendorService{ID: "svc-active", Active: true}))
	require.NoError(t, serviceRepo.Save(ctx, key("svc-inactive"), &models.VendorService{ID: "svc-inactive", Active: false}))

	for _, id := range []string{"svc-active", "svc-inactive", "svc-deleted"} {
		_, err := svc.AddToCart(ctx, "user-1", addReq(id))
		require.NoError(t, err)
	}

	count, err := svc.ActiveCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The raw cart keeps all three entries; the count is a lazy view.
	cart, err := cartRepo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 3)
}

func TestActiveCountEmptyCart(t *testing.T) {
	_, _, svc := newCartFixture()

	count, err := svc.ActiveCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
