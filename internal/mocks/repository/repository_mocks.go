// Package repository contains testify-based test doubles for the persistence
// interfaces.
package repository

import (
	"context"
	"time"

	"reminder/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventRepository is a mock implementation of repository.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

// NewMockEventRepository creates a mock with cleanup-time expectation checks.
func NewMockEventRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventRepository {
	m := &MockEventRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventRepository) FindEventsDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Event, error) {
	args := m.Called(ctx, cutoff)

	events, _ := args.Get(0).([]*entity.Event)

	return events, args.Error(1)
}

// MockRegistrationRepository is a mock implementation of repository.RegistrationRepository.
type MockRegistrationRepository struct {
	mock.Mock
}

// NewMockRegistrationRepository creates a mock with cleanup-time expectation checks.
func NewMockRegistrationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRegistrationRepository {
	m := &MockRegistrationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRegistrationRepository) FindUserIDsByEvent(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, eventID)

	userIDs, _ := args.Get(0).([]uuid.UUID)

	return userIDs, args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock with cleanup-time expectation checks.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}
