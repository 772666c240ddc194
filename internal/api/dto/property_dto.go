package dto

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// CreatePropertyRequest payload for new listings. seller_id is not accepted
// from clients; it is stamped from the authenticated identity.
type CreatePropertyRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	Location     string  `json:"location"`
	PropertyType string  `json:"propertyType"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Area         int     `json:"area"`
}

// UpdatePropertyRequest payload for listing updates. Verified is honored only
// for administrators.
type UpdatePropertyRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	ImageURL     *string  `json:"image_url"`
	Location     *string  `json:"location"`
	PropertyType *string  `json:"propertyType"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	Area         *int     `json:"area"`
	Verified     *bool    `json:"verified"`
}

// PropertyResponse is the wire view of a listing.
type PropertyResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	SellerID     int64   `json:"seller_id"`
	ImageURL     string  `json:"image_url"`
	DocsURL      string  `json:"docs_url"`
	Verified     bool    `json:"verified"`
	Location     string  `json:"location"`
	PropertyType string  `json:"propertyType"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Area         int     `json:"area"`
	CreatedAt    string  `json:"created_at"`
}

// NewPropertyResponse maps a domain listing onto its wire view.
func NewPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		SellerID:     p.SellerID,
		ImageURL:     p.ImageURL,
		DocsURL:      p.DocsURL,
		Verified:     p.Verified,
		Location:     p.Location,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
