package events

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventPropertyCreated      EventType = "property_created"
	EventPropertyVerified     EventType = "property_verified"
	EventPropertyDocsUploaded EventType = "property_docs_uploaded"
)

// Actor captures who triggered an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	Type       EventType   `json:"type"`
	PropertyID int64       `json:"property_id,omitempty"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// PropertyCreatedPayload payload.
type PropertyCreatedPayload struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	SellerID int64   `json:"seller_id"`
}

// PropertyVerifiedPayload payload.
type PropertyVerifiedPayload struct {
	Verified bool `json:"verified"`
}

// PropertyDocsUploadedPayload payload.
type PropertyDocsUploadedPayload struct {
	DocsURL string `json:"docs_url"`
}
