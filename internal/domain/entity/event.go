// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a scheduled event users can register for. Events are owned
// by an external system; this service only reads them.
type Event struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the event.
	Name      string    `json:"name"`       // The display name of the event.
	Location  string    `json:"location"`   // The human-readable location of the event.
	EventDate time.Time `json:"event_date"` // The scheduled start time of the event.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this event was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}
