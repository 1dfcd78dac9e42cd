package models

// Date statuses within an availability month. A date absent from the map is
// available; there is no explicit "available" marker.
const (
	DateBooked  = "booked"
	DateBlocked = "blocked"
)

// AvailabilityMonth is the per-(service, year-month) calendar document,
// stored with document ID "{serviceID}_{YYYY-MM}". Dates maps individual
// YYYY-MM-DD strings to a status.
type AvailabilityMonth struct {
	ServiceID string            `json:"serviceId" firestore:"serviceId"`
	Month     string            `json:"month" firestore:"month"` // YYYY-MM
	Dates     map[string]string `json:"dates" firestore:"dates"`
}

// AvailabilityDocID builds the deterministic document ID for a
// service-month calendar.
func AvailabilityDocID(serviceID, month string) string {
	return serviceID + "_" + month
}
