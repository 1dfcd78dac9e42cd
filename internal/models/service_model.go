package models

import "time"

// VendorService is a vendor's offering, stored at
// services/{cityID}/{categoryID}/{serviceID}. The service ID is the join key
// across carts, unlocked sets, availability, bookings, reviews and
// engagement logs; deleting a service must fan out to all of them.
type VendorService struct {
	ID                     string    `json:"id" firestore:"-"`
	VendorID               string    `json:"vendorId" firestore:"vendorId"`
	Name                   string    `json:"name" firestore:"name"`
	Category               string    `json:"category" firestore:"category"`
	City                   string    `json:"city" firestore:"city"`
	CityID                 string    `json:"cityId" firestore:"cityId"`
	State                  string    `json:"state,omitempty" firestore:"state,omitempty"`
	Description            string    `json:"description,omitempty" firestore:"description,omitempty"`
	StartingPrice          int64     `json:"startingPrice" firestore:"startingPrice"`
	PricingUnit            string    `json:"pricingUnit,omitempty" firestore:"pricingUnit,omitempty"`
	PhoneNumber            string    `json:"phoneNumber" firestore:"phoneNumber"`
	AlternativePhoneNumber string    `json:"alternativePhoneNumber,omitempty" firestore:"alternativePhoneNumber,omitempty"`
	ImageURLs              []string  `json:"imageUrls,omitempty" firestore:"imageUrls,omitempty"`
	// Active is the vendor/admin visibility toggle; it hides the listing
	// without destroying data. Verified is the admin-controlled trust flag.
	// The two are independent of each other and of hard deletion.
	Active    bool      `json:"active" firestore:"active"`
	Verified  bool      `json:"verified" firestore:"verified"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// ServiceKey locates a service document within the nested
// city/category layout. All three parts are normalized IDs.
type ServiceKey struct {
	CityID     string `json:"cityId"`
	CategoryID string `json:"categoryId"`
	ServiceID  string `json:"serviceId"`
}

// Booking is a confirmed reservation against a service date.
type Booking struct {
	ID        string    `json:"id" firestore:"-"`
	ServiceID string    `json:"serviceId" firestore:"serviceId"`
	VendorID  string    `json:"vendorId" firestore:"vendorId"`
	UserID    string    `json:"userId" firestore:"userId"`
	Date      string    `json:"date" firestore:"date"` // YYYY-MM-DD
	Note      string    `json:"note,omitempty" firestore:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Review is user feedback on a service.
type Review struct {
	ID        string    `json:"id" firestore:"-"`
	ServiceID string    `json:"serviceId" firestore:"serviceId"`
	UserID    string    `json:"userId" firestore:"userId"`
	UserName  string    `json:"userName,omitempty" firestore:"userName,omitempty"`
	Rating    int       `json:"rating" firestore:"rating"`
	Comment   string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
