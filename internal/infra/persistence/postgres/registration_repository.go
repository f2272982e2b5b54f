package postgres

import (
	"context"

	"reminder/internal/domain/repository"
	"reminder/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// registrationRepository implements the repository.RegistrationRepository interface.
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository is the constructor for registrationRepository.
func NewRegistrationRepository(db *gorm.DB) repository.RegistrationRepository {
	return &registrationRepository{
		db: db,
	}
}

// FindUserIDsByEvent retrieves the user IDs registered for the event.
// Duplicate registrations are returned as-is; composing one reminder per
// registration row is the documented behavior.
func (repo *registrationRepository) FindUserIDsByEvent(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	if err := repo.db.WithContext(ctx).
		Model(&model.RegistrationModel{}).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find registrations by event")
	}

	return userIDs, nil
}
