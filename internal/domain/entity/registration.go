package entity

import (
	"time"

	"github.com/google/uuid"
)

// Registration links a user to an event they registered for. Many
// registrations may reference the same event, and a user registered twice for
// the same event is represented by two rows.
type Registration struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the registration.
	EventID   uuid.UUID `json:"event_id"`   // The ID of the event the user registered for.
	UserID    uuid.UUID `json:"user_id"`    // The ID of the registered user.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the registration was created.
}
