package service

import (
	"context"
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// PropertyService implements listing CRUD with role-scoped visibility.
type PropertyService struct {
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
}

// NewPropertyService builds the service.
func NewPropertyService(properties repository.PropertyRepository, dispatcher events.Dispatcher) *PropertyService {
	return &PropertyService{properties: properties, dispatcher: dispatcher}
}

// ListFor returns the listings the caller may see: admins see everything,
// sellers their own listings, buyers only verified ones.
func (s *PropertyService) ListFor(ctx context.Context, viewer *domain.User) ([]domain.Property, error) {
	switch viewer.Role {
	case domain.RoleAdmin:
		return s.properties.ListAll(ctx)
	case domain.RoleSeller:
		return s.properties.ListBySeller(ctx, viewer.ID)
	default:
		return s.properties.ListVerified(ctx)
	}
}

// GetFor loads a single listing, applying the same visibility rules. An
// unverified listing is visible only to admins and its own seller.
func (s *PropertyService) GetFor(ctx context.Context, viewer *domain.User, id int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.Verified || viewer.Role == domain.RoleAdmin {
		return property, nil
	}
	if viewer.Role == domain.RoleSeller && property.SellerID == viewer.ID {
		return property, nil
	}
	return nil, apperrors.NewForbidden("listing not available")
}

// PropertyInput carries client-supplied listing fields. SellerID is absent on
// purpose: it is always stamped from the authenticated identity.
type PropertyInput struct {
	Title        string
	Description  string
	Price        float64
	ImageURL     string
	Location     string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Area         int
}

// Create stores a new listing owned by the acting seller.
func (s *PropertyService) Create(ctx context.Context, actor *domain.User, input PropertyInput) (*domain.Property, error) {
	property := &domain.Property{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		SellerID:     actor.ID,
		ImageURL:     input.ImageURL,
		Location:     input.Location,
		PropertyType: input.PropertyType,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyCreated, actor, property.ID, events.PropertyCreatedPayload{
		Title:    property.Title,
		Price:    property.Price,
		SellerID: property.SellerID,
	})
	return property, nil
}

// PropertyUpdateInput carries optional listing fields. Nil means unchanged.
// Verified is honored only for administrators.
type PropertyUpdateInput struct {
	Title        *string
	Description  *string
	Price        *float64
	ImageURL     *string
	Location     *string
	PropertyType *string
	Bedrooms     *int
	Bathrooms    *int
	Area         *int
	Verified     *bool
}

// Update modifies a listing. Ownership is enforced by the route guard; the
// verified flag is additionally restricted to administrators here.
func (s *PropertyService) Update(ctx context.Context, actor *domain.User, id int64, input PropertyUpdateInput) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.ImageURL != nil {
		property.ImageURL = *input.ImageURL
	}
	if input.Location != nil {
		property.Location = *input.Location
	}
	if input.PropertyType != nil {
		property.PropertyType = *input.PropertyType
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.Area != nil {
		property.Area = *input.Area
	}

	verifiedChanged := false
	if input.Verified != nil && actor.Role == domain.RoleAdmin {
		verifiedChanged = property.Verified != *input.Verified
		property.Verified = *input.Verified
	}

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	if verifiedChanged {
		s.publish(ctx, events.EventPropertyVerified, actor, property.ID, events.PropertyVerifiedPayload{
			Verified: property.Verified,
		})
	}
	return property, nil
}

// Delete removes a listing. Ownership is enforced by the route guard.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	return s.properties.Delete(ctx, id)
}

// SetImageURL records an uploaded image location on the listing.
func (s *PropertyService) SetImageURL(ctx context.Context, id int64, url string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	property.ImageURL = url
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// AttachDocs records uploaded verification documents and resets the verified
// flag so an administrator has to re-review the listing.
func (s *PropertyService) AttachDocs(ctx context.Context, actor *domain.User, id int64, url string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	property.DocsURL = url
	property.Verified = false
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyDocsUploaded, actor, property.ID, events.PropertyDocsUploadedPayload{
		DocsURL: url,
	})
	return property, nil
}

// OwnerID exposes owner resolution for the ownership guard.
func (s *PropertyService) OwnerID(ctx context.Context, id int64) (int64, error) {
	return s.properties.OwnerID(ctx, id)
}

func (s *PropertyService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, propertyID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		PropertyID: propertyID,
		Actor:      events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}
