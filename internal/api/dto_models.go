package api

import (
	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreditsResponse reports a user's balance and unlocked services.
type CreditsResponse struct {
	Credits  int      `json:"credits"`
	Unlocked []string `json:"unlocked"`
}

// ContactResponse carries a service's contact details once the credit gate
// has passed.
type ContactResponse struct {
	Allowed                bool   `json:"allowed"`
	Reason                 string `json:"reason"`
	PhoneNumber            string `json:"phoneNumber,omitempty"`
	AlternativePhoneNumber string `json:"alternativePhoneNumber,omitempty"`
}

// UnlockResponse reports the outcome of a credit deduction.
type UnlockResponse struct {
	models.OpResult
	RemainingCredits int `json:"remainingCredits"`
}

// CartCountResponse carries the derived active cart count.
type CartCountResponse struct {
	ActiveCount int `json:"activeCount"`
}

// ServiceListResponse wraps a browse result with its resolved category label.
type ServiceListResponse struct {
	Category      string                  `json:"category"`
	CategoryLabel string                  `json:"categoryLabel"`
	Services      []*models.VendorService `json:"services"`
}

// currentUserID extracts the authenticated user's ID set by the auth
// middleware. The second return is false when the middleware did not run
// or stored an unusable value.
func currentUserID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// serviceKeyFromPath builds the catalog key from the standard
// :city/:category/:serviceId route params.
func serviceKeyFromPath(c *gin.Context) models.ServiceKey {
	return models.ServiceKey{
		CityID:     c.Param("city"),
		CategoryID: c.Param("category"),
		ServiceID:  c.Param("serviceId"),
	}
}
