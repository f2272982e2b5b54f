// Package service contains testify-based test doubles for the domain service
// interfaces.
package service

import (
	"context"

	"reminder/internal/domain/entity"
	"reminder/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPushSender is a mock implementation of service.PushSender.
type MockPushSender struct {
	mock.Mock
}

// NewMockPushSender creates a mock with cleanup-time expectation checks.
func NewMockPushSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPushSender {
	m := &MockPushSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPushSender) SendAll(ctx context.Context, messages []*entity.ReminderMessage) (*service.BatchResult, error) {
	args := m.Called(ctx, messages)

	result, _ := args.Get(0).(*service.BatchResult)

	return result, args.Error(1)
}

// MockReportPublisher is a mock implementation of service.ReportPublisher.
type MockReportPublisher struct {
	mock.Mock
}

// NewMockReportPublisher creates a mock with cleanup-time expectation checks.
func NewMockReportPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportPublisher {
	m := &MockReportPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReportPublisher) PublishDispatchReport(ctx context.Context, event *service.DispatchReportEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockReportPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
