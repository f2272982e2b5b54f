package repository

import (
	"context"

	"github.com/google/uuid"
)

// RegistrationRepository defines the read-only lookup from an event to its
// registered users.
type RegistrationRepository interface {
	// FindUserIDsByEvent retrieves the user IDs registered for the event.
	// Duplicate registrations yield duplicate IDs; no dedup is applied here.
	// Returns an empty slice when no one is registered.
	FindUserIDsByEvent(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
}
