package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationModel mirrors the 'registrations' table linking users to events.
type RegistrationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RegistrationModel) TableName() string {
	return "registrations"
}
