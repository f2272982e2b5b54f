// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"reminder/internal/domain/entity"
	"reminder/internal/domain/repository"
	"reminder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// eventRepository implements the repository.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// FindEventsDueBefore retrieves all events starting at or before the cutoff.
// Overdue events are included: the comparison is a plain upper bound, exactly
// like the reminder window it serves.
func (repo *eventRepository) FindEventsDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Event, error) {
	var eventModels []*model.EventModel

	if err := repo.db.WithContext(ctx).
		Where("event_date <= ?", cutoff).
		Order("event_date ASC").
		Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find due events")
	}

	events := make([]*entity.Event, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toEventDomain(eventM))
	}

	return events, nil
}

// toEventDomain converts a GORM EventModel to a domain Event entity.
func toEventDomain(data *model.EventModel) *entity.Event {
	if data == nil {
		return nil
	}

	return &entity.Event{
		ID:        data.ID,
		Name:      data.Name,
		Location:  data.Location,
		EventDate: data.EventDate,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
