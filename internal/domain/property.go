package domain

import "time"

// Property is a listing owned by a seller. Unverified listings stay hidden
// from buyers until an administrator flips Verified.
type Property struct {
	ID           int64
	Title        string
	Description  string
	Price        float64
	SellerID     int64
	ImageURL     string
	DocsURL      string
	Verified     bool
	Location     string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Area         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
