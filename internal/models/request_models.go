package models

// SaveServiceRequest is the payload for creating or updating a vendor
// service listing.
type SaveServiceRequest struct {
	ServiceID              string   `json:"serviceId"`
	Name                   string   `json:"name" binding:"required"`
	Category               string   `json:"category" binding:"required"`
	City                   string   `json:"city" binding:"required"`
	State                  string   `json:"state"`
	Description            string   `json:"description"`
	StartingPrice          int64    `json:"startingPrice" binding:"required"`
	PricingUnit            string   `json:"pricingUnit"`
	PhoneNumber            string   `json:"phoneNumber" binding:"required"`
	AlternativePhoneNumber string   `json:"alternativePhoneNumber"`
	ImageURLs              []string `json:"imageUrls"`
	Active                 *bool    `json:"active"`
}

// AddToCartRequest is the payload for saving a service into the cart.
type AddToCartRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Category  string `json:"category" binding:"required"`
	City      string `json:"city" binding:"required"`
}

// ToggleRequest flips a single boolean lifecycle flag (active or verified).
type ToggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// CreateBookingRequest reserves a date on a service.
type CreateBookingRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Note string `json:"note"`
}

// CreateReviewRequest leaves feedback on a service.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// OpResult is the uniform outcome for user-facing mutations. Expected
// soft failures ("not enough credits", "already in cart") are carried in
// Message with Success=false rather than surfacing as errors.
type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
