package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The FCM token is optional: a user who
// has not installed or enabled push notifications has an empty token and is
// silently excluded from dispatches.
type User struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the user.
	Email     string    `json:"email"`      // The user's primary contact email.
	Name      string    `json:"name"`       // The user's display name.
	FCMToken  string    `json:"fcm_token"`  // Firebase Cloud Messaging token; empty when push is not enabled.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this user account was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}

// HasToken reports whether the user can receive push notifications.
func (u *User) HasToken() bool {
	return u != nil && u.FCMToken != ""
}
