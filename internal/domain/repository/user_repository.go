package repository

import (
	"context"

	"reminder/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when a user record does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the read-only lookup for user records.
type UserRepository interface {
	// FindUserByID retrieves a user by its unique ID. Returns
	// ErrUserNotFound when the record does not exist.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
