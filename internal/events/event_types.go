package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventPlaceCreated   EventType = "place_created"
	EventPlaceUpdated   EventType = "place_updated"
	EventPlaceDeleted   EventType = "place_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PlaceCreatedPayload payload.
type PlaceCreatedPayload struct {
	PlaceID string `json:"place_id"`
	Title   string `json:"title"`
	Address string `json:"address"`
}

// PlaceUpdatedPayload payload.
type PlaceUpdatedPayload struct {
	PlaceID string `json:"place_id"`
	Title   string `json:"title"`
}

// PlaceDeletedPayload payload.
type PlaceDeletedPayload struct {
	PlaceID string `json:"place_id"`
}
