package events

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
	EventUserCreated    EventType = "user_created"
	EventUserDeleted    EventType = "user_deleted"
	EventLoginSucceeded EventType = "login_succeeded"
)

// Actor encapsulates actor metadata for an event. SubjectID is zero for
// unauthenticated actions such as registration.
type Actor struct {
	SubjectID int64       `json:"subject_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProductPayload accompanies product lifecycle events.
type ProductPayload struct {
	ProductID int64  `json:"product_id"`
	Code      string `json:"code"`
	CityID    int64  `json:"city_id"`
	OwnerID   int64  `json:"owner_id"`
}

// UserPayload accompanies user lifecycle events. Never carries the CPF or
// any credential material.
type UserPayload struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// LoginPayload accompanies successful logins.
type LoginPayload struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
