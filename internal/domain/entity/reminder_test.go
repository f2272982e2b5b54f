package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewReminderMessage_Templates(t *testing.T) {
	event := &Event{
		ID:        uuid.New(),
		Name:      "Launch Party",
		Location:  "HQ Roof",
		EventDate: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
	}
	userID := uuid.New()

	msg := NewReminderMessage(event, userID, "token-123")

	assert.Equal(t, "Upcoming Event: Launch Party", msg.Title)
	assert.Equal(t, `Reminder! Your event "Launch Party" starts in 15 minutes at HQ Roof.`, msg.Body)
	assert.Equal(t, "token-123", msg.Token)
	assert.Equal(t, event.ID, msg.EventID)
	assert.Equal(t, userID, msg.UserID)
}

func TestNewReminderMessage_BodyIgnoresActualStartTime(t *testing.T) {
	// The body template is fixed even for overdue events.
	overdue := &Event{
		ID:        uuid.New(),
		Name:      "Standup",
		Location:  "Room 2",
		EventDate: time.Now().Add(-time.Hour),
	}

	msg := NewReminderMessage(overdue, uuid.New(), "t")

	assert.Contains(t, msg.Body, "starts in 15 minutes")
}

func TestNewReminderMessage_Deterministic(t *testing.T) {
	event := &Event{ID: uuid.New(), Name: "Demo Day", Location: "Lobby"}
	userID := uuid.New()

	first := NewReminderMessage(event, userID, "tok")
	second := NewReminderMessage(event, userID, "tok")

	assert.Equal(t, first, second)
}

func TestUser_HasToken(t *testing.T) {
	assert.False(t, (*User)(nil).HasToken())
	assert.False(t, (&User{}).HasToken())
	assert.True(t, (&User{FCMToken: "abc"}).HasToken())
}
