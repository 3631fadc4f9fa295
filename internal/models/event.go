package models

const (
	EventContactCreated = "contact.created"
	EventContactUpdated = "contact.updated"
	EventContactDeleted = "contact.deleted"
)

// ContactEvent tells clients holding a cached list that it is stale.
type ContactEvent struct {
	Type    string   `json:"type"`
	ID      int64    `json:"id"`
	Contact *Contact `json:"contact,omitempty"`
}
