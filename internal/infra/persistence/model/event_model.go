// Package model contains the GORM-specific structs mirroring the external tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel mirrors the 'events' table. The table is owned by the event
// management system; this service only reads it.
type EventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Location  string    `gorm:"type:varchar(255);not null"`
	EventDate time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}
