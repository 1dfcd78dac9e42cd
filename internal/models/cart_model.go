package models

import "time"

// CartEntry is one saved service inside a user's cart. Category and city
// are kept alongside the key so the entry can be resolved back to its
// nested catalog document.
type CartEntry struct {
	Category string    `json:"category" firestore:"category"`
	City     string    `json:"city" firestore:"city"`
	AddedAt  time.Time `json:"addedAt" firestore:"addedAt"`
}

// Cart is the per-user cart document: a map of service ID to entry.
// The raw map may hold entries whose service has since been deactivated
// or deleted; the active count filters those out without mutating the map.
type Cart struct {
	UserID string               `json:"userId" firestore:"-"`
	Items  map[string]CartEntry `json:"items" firestore:"items"`
}
