package models

import "time"

// Roles recognized by the platform. Couples and vendors are ordinary users;
// admins bypass the credit gate and never generate engagement records.
const (
	RoleCouple = "couple"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// User represents a marketplace account with its credit balance.
// The Firebase Auth UID is the Firestore document ID.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty" firestore:"phoneNumber,omitempty"`
	Role        string    `json:"role" firestore:"role"`
	Credits     int       `json:"credits" firestore:"credits"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// UnlockedServices is the per-user set of service IDs whose contact details
// the user has paid (or been granted) access to. Membership is permanent
// until the referenced service is hard-deleted from the catalog.
type UnlockedServices struct {
	UserID    string    `json:"userId" firestore:"-"`
	Services  []string  `json:"services" firestore:"services"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Contains reports whether serviceID is already in the unlocked set.
func (u *UnlockedServices) Contains(serviceID string) bool {
	for _, id := range u.Services {
		if id == serviceID {
			return true
		}
	}
	return false
}
