package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOwnerRegistered      EventType = "owner_registered"
	EventOwnerContactUpdated  EventType = "owner_contact_updated"
	EventOwnerPasswordChanged EventType = "owner_password_changed"
	EventMenuGroupCreated     EventType = "menu_group_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OwnerID   string      `json:"owner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OwnerRegisteredPayload payload.
type OwnerRegisteredPayload struct {
	Mail string `json:"mail"`
	Tel  string `json:"tel"`
}

// OwnerContactUpdatedPayload payload.
type OwnerContactUpdatedPayload struct {
	MailChanged bool `json:"mail_changed"`
	TelChanged  bool `json:"tel_changed"`
}

// MenuGroupCreatedPayload payload.
type MenuGroupCreatedPayload struct {
	MenuGroupID int64  `json:"menu_group_id"`
	ShopID      int64  `json:"shop_id"`
	Name        string `json:"name"`
}
