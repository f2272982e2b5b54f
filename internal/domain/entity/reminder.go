package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReminderMessage is a composed push notification for a single
// (event, registered user with token) pair. It is transient: built during a
// pipeline run, handed to the push transport, then discarded.
type ReminderMessage struct {
	EventID uuid.UUID `json:"event_id"` // The event this reminder is about.
	UserID  uuid.UUID `json:"user_id"`  // The user the reminder is addressed to.
	Token   string    `json:"token"`    // The FCM device token to deliver to.
	Title   string    `json:"title"`    // Notification title.
	Body    string    `json:"body"`     // Notification body.
}

// NewReminderMessage composes the reminder for an event and a device token.
// It is deterministic given identical inputs. The body is a fixed template:
// it always says "starts in 15 minutes" regardless of the event's actual
// time-to-start, matching the reminder window the dispatcher scans with.
func NewReminderMessage(event *Event, userID uuid.UUID, token string) *ReminderMessage {
	return &ReminderMessage{
		EventID: event.ID,
		UserID:  userID,
		Token:   token,
		Title:   fmt.Sprintf("Upcoming Event: %s", event.Name),
		Body:    fmt.Sprintf("Reminder! Your event %q starts in 15 minutes at %s.", event.Name, event.Location),
	}
}

// DispatchReport summarizes a single pipeline run. Delivery failures are
// surfaced here (and in logs/metrics) but never retried within the run; the
// next scheduled run is the only retry mechanism.
type DispatchReport struct {
	RunAt         time.Time `json:"run_at"`         // When the run started.
	Cutoff        time.Time `json:"cutoff"`         // The eventDate threshold used for the scan.
	DueEvents     int       `json:"due_events"`     // Number of events selected by the scan.
	Composed      int       `json:"composed"`       // Number of reminder messages composed.
	Sent          int       `json:"sent"`           // Number of messages accepted by the push transport.
	Failed        int       `json:"failed"`         // Number of messages the transport reported as failed.
	InvalidTokens []string  `json:"invalid_tokens"` // Tokens the transport classified as invalid or unregistered.
	DryRun        bool      `json:"dry_run"`        // True when composition ran but dispatch was skipped.
}
