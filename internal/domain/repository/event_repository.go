// Package repository defines the interfaces for the persistence layer.
// All stores are read-only to this service: events, registrations and users
// are owned by external systems.
package repository

import (
	"context"
	"time"

	"reminder/internal/domain/entity"
)

// EventRepository defines the read-only query interface over events.
type EventRepository interface {
	// FindEventsDueBefore retrieves all events whose eventDate is at or
	// before the cutoff. The cutoff is a forward-looking threshold, so the
	// result includes events already overdue. Returns an empty slice (not an
	// error) when nothing qualifies.
	FindEventsDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Event, error)
}
