package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weddinghub-backend-go/internal/models"
)

func TestLogEngagementDeduplicates(t *testing.T) {
	engRepo := newFakeEngagementRepo()
	svc := NewEngagementService(engRepo, zap.NewNop())
	ctx := context.Background()
	listing := testVendorService("svc1")

	svc.LogEngagement(ctx, "vendor-1", listing, "user-1", "Priya", "+919999999999", models.RoleCouple)
	svc.LogEngagement(ctx, "vendor-1", listing, "user-1", "Priya", "+919999999999", models.RoleCouple)
	assert.Equal(t, 1, engRepo.count("vendor-1"))

	// A different user unlocking the same service is a distinct record.
	svc.LogEngagement(ctx, "vendor-1", listing, "user-2", "", "", models.RoleVendor)
	assert.Equal(t, 2, engRepo.count("vendor-1"))
}

func TestLogEngagementSkipsPrivilegedRoles(t *testing.T) {
	engRepo := newFakeEngagementRepo()
	svc := NewEngagementService(engRepo, zap.NewNop())

	svc.LogEngagement(context.Background(), "vendor-1", testVendorService("svc1"), "admin-1", "", "", models.RoleAdmin)
	assert.Equal(t, 0, engRepo.count("vendor-1"))
}

func TestLogEngagementSkipsIncompleteInput(t *testing.T) {
	engRepo := newFakeEngagementRepo()
	svc := NewEngagementService(engRepo, zap.NewNop())
	ctx := context.Background()

	svc.LogEngagement(ctx, "", testVendorService("svc1"), "user-1", "", "", models.RoleCouple)
	svc.LogEngagement(ctx, "vendor-1", nil, "user-1", "", "", models.RoleCouple)
	svc.LogEngagement(ctx, "vendor-1", testVendorService("svc1"), "", "", "", models.RoleCouple)
	assert.Equal(t, 0, engRepo.count("vendor-1"))
}

func TestLogEngagementSwallowsStorageErrors(t *testing.T) {
	engRepo := newFakeEngagementRepo()
	engRepo.appendErr = errors.New("store unavailable")
	svc := NewEngagementService(engRepo, zap.NewNop())

	// Must not panic or propagate; the unlock that triggered it already
	// succeeded.
	svc.LogEngagement(context.Background(), "vendor-1", testVendorService("svc1"), "user-1", "", "", models.RoleCouple)
	assert.Equal(t, 0, engRepo.count("vendor-1"))
}

func TestGetVendorEngagements(t *testing.T) {
	engRepo := newFakeEngagementRepo()
	svc := NewEngagementService(engRepo, zap.NewNop())
	ctx := context.Background()

	records, err := svc.GetVendorEngagements(ctx, "vendor-1")
	require.NoError(t, err)
	assert.Empty(t, records)

	svc.LogEngagement(ctx, "vendor-1", testVendorService("svc1"), "user-1", "Priya", "", models.RoleCouple)
	records, err = svc.GetVendorEngagements(ctx, "vendor-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "svc1_user-1", records[0].EngagementID)
}
