package models

import (
	"fmt"
	"time"
)

// Engagement records that a user unlocked a vendor service's contact
// details. One record exists per (vendor, service, user) triple; the
// deterministic ID makes repeated unlocks collapse into a single entry.
// Service fields are a snapshot taken at unlock time and are deliberately
// never refreshed if the service is edited later.
type Engagement struct {
	EngagementID          string    `json:"engagementId" firestore:"engagementId"`
	ServiceID             string    `json:"serviceId" firestore:"serviceId"`
	ServiceName           string    `json:"serviceName" firestore:"serviceName"`
	ServiceCategory       string    `json:"serviceCategory" firestore:"serviceCategory"`
	ServiceCity           string    `json:"serviceCity" firestore:"serviceCity"`
	UnlockedByUserID      string    `json:"unlockedByUserId" firestore:"unlockedByUserId"`
	UnlockedByName        string    `json:"unlockedByName,omitempty" firestore:"unlockedByName,omitempty"`
	UnlockedByPhoneNumber string    `json:"unlockedByPhoneNumber,omitempty" firestore:"unlockedByPhoneNumber,omitempty"`
	UnlockedByRole        string    `json:"unlockedByRole" firestore:"unlockedByRole"`
	UnlockedAt            time.Time `json:"unlockedAt" firestore:"unlockedAt"`
}

// EngagementID builds the deterministic composite key used for
// de-duplication, so no separate uniqueness index is needed.
func EngagementID(serviceID, userID string) string {
	return fmt.Sprintf("%s_%s", serviceID, userID)
}
