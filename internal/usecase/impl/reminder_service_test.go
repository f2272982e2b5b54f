package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"reminder/config"
	"reminder/internal/domain/entity"
	"reminder/internal/domain/repository"
	"reminder/internal/domain/service"
	mockRepo "reminder/internal/mocks/repository"
	mockSvc "reminder/internal/mocks/service"
	"reminder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestReminderService(t *testing.T) (
	usecase.ReminderUsecase,
	*mockRepo.MockEventRepository,
	*mockRepo.MockRegistrationRepository,
	*mockRepo.MockUserRepository,
	*mockSvc.MockPushSender,
) {
	eventRepo := mockRepo.NewMockEventRepository(t)
	registrationRepo := mockRepo.NewMockRegistrationRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	pushSender := mockSvc.NewMockPushSender(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{
		Scheduler: &config.SchedulerConfig{HorizonMinutes: 15},
	}

	svc := NewReminderService(logger, cfg, eventRepo, registrationRepo, userRepo, pushSender, nil)

	return svc, eventRepo, registrationRepo, userRepo, pushSender
}

func tokenPtrUser(id uuid.UUID, token string) *entity.User {
	return &entity.User{ID: id, FCMToken: token}
}

func TestReminderService_Run_NoDueEvents(t *testing.T) {
	svc, eventRepo, _, _, pushSender := createTestReminderService(t)

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	eventRepo.On("FindEventsDueBefore", mock.Anything, now.Add(15*time.Minute)).
		Return([]*entity.Event{}, nil)

	report, err := svc.Run(ctx, usecase.RunOptions{Now: now})

	require.NoError(t, err)
	assert.Equal(t, 0, report.DueEvents)
	assert.Equal(t, 0, report.Composed)
	pushSender.AssertNotCalled(t, "SendAll", mock.Anything, mock.Anything)
}

func TestReminderService_Run_ComposesOnlyUsersWithTokens(t *testing.T) {
	svc, eventRepo, registrationRepo, userRepo, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Launch Party", Location: "HQ Roof"}
	withToken1 := uuid.New()
	withToken2 := uuid.New()
	withoutToken := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{withToken1, withoutToken, withToken2}, nil)
	userRepo.On("FindUserByID", mock.Anything, withToken1).
		Return(tokenPtrUser(withToken1, "token-1"), nil)
	userRepo.On("FindUserByID", mock.Anything, withToken2).
		Return(tokenPtrUser(withToken2, "token-2"), nil)
	userRepo.On("FindUserByID", mock.Anything, withoutToken).
		Return(&entity.User{ID: withoutToken}, nil)

	pushSender.On("SendAll", mock.Anything, mock.MatchedBy(func(messages []*entity.ReminderMessage) bool {
		return len(messages) == 2 &&
			messages[0].Token == "token-1" &&
			messages[1].Token == "token-2"
	})).Return(&service.BatchResult{SuccessCount: 2}, nil).Once()

	report, err := svc.Run(ctx, usecase.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.DueEvents)
	assert.Equal(t, 2, report.Composed)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 0, report.Failed)
}

func TestReminderService_Run_MissingUserDoesNotAbort(t *testing.T) {
	svc, eventRepo, registrationRepo, userRepo, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Demo Day", Location: "Lobby"}
	missing := uuid.New()
	present := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{missing, present}, nil)
	userRepo.On("FindUserByID", mock.Anything, missing).
		Return(nil, repository.ErrUserNotFound)
	userRepo.On("FindUserByID", mock.Anything, present).
		Return(tokenPtrUser(present, "token-p"), nil)

	pushSender.On("SendAll", mock.Anything, mock.MatchedBy(func(messages []*entity.ReminderMessage) bool {
		return len(messages) == 1 && messages[0].Token == "token-p"
	})).Return(&service.BatchResult{SuccessCount: 1}, nil).Once()

	report, err := svc.Run(ctx, usecase.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Composed)
	assert.Equal(t, 1, report.Sent)
}

func TestReminderService_Run_NoTokensSkipsDispatch(t *testing.T) {
	svc, eventRepo, registrationRepo, userRepo, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Standup", Location: "Room 2"}
	userID := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{userID}, nil)
	userRepo.On("FindUserByID", mock.Anything, userID).
		Return(&entity.User{ID: userID}, nil)

	report, err := svc.Run(ctx, usecase.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.DueEvents)
	assert.Equal(t, 0, report.Composed)
	pushSender.AssertNotCalled(t, "SendAll", mock.Anything, mock.Anything)
}

func TestReminderService_Run_RepeatRunsResendIdenticalBatches(t *testing.T) {
	// Documented limitation: no "already notified" state exists, so two runs
	// within the same window dispatch identical batches.
	svc, eventRepo, registrationRepo, userRepo, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Launch Party", Location: "HQ Roof"}
	userID := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{userID}, nil)
	userRepo.On("FindUserByID", mock.Anything, userID).
		Return(tokenPtrUser(userID, "token-1"), nil)

	var batches [][]*entity.ReminderMessage
	pushSender.On("SendAll", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			messages, _ := args.Get(1).([]*entity.ReminderMessage)
			batches = append(batches, messages)
		}).
		Return(&service.BatchResult{SuccessCount: 1}, nil).Times(2)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := svc.Run(ctx, usecase.RunOptions{Now: now})
	require.NoError(t, err)
	_, err = svc.Run(ctx, usecase.RunOptions{Now: now})
	require.NoError(t, err)

	require.Len(t, batches, 2)
	assert.Equal(t, batches[0], batches[1])
}

func TestReminderService_Run_EventQueryFailureAbortsBeforeDispatch(t *testing.T) {
	svc, eventRepo, _, _, pushSender := createTestReminderService(t)

	ctx := context.Background()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return(nil, errors.New("store unreachable"))

	report, err := svc.Run(ctx, usecase.RunOptions{})

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to scan due events")
	pushSender.AssertNotCalled(t, "SendAll", mock.Anything, mock.Anything)
}

func TestReminderService_Run_RegistrationFailureAbortsRun(t *testing.T) {
	svc, eventRepo, registrationRepo, _, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Demo Day", Location: "Lobby"}

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return(nil, errors.New("store unreachable"))

	_, err := svc.Run(ctx, usecase.RunOptions{})

	require.Error(t, err)
	pushSender.AssertNotCalled(t, "SendAll", mock.Anything, mock.Anything)
}

func TestReminderService_Run_TransportFailurePropagates(t *testing.T) {
	svc, eventRepo, registrationRepo, userRepo, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Demo Day", Location: "Lobby"}
	userID := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{userID}, nil)
	userRepo.On("FindUserByID", mock.Anything, userID).
		Return(tokenPtrUser(userID, "token-1"), nil)
	pushSender.On("SendAll", mock.Anything, mock.Anything).
		Return(nil, errors.New("transport down"))

	_, err := svc.Run(ctx, usecase.RunOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to dispatch reminder batch")
}

func TestReminderService_Run_DryRunSkipsDispatch(t *testing.T) {
	svc, eventRepo, registrationRepo, userRepo, pushSender := createTestReminderService(t)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Demo Day", Location: "Lobby"}
	userID := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{userID}, nil)
	userRepo.On("FindUserByID", mock.Anything, userID).
		Return(tokenPtrUser(userID, "token-1"), nil)

	report, err := svc.Run(ctx, usecase.RunOptions{DryRun: true})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Composed)
	assert.Equal(t, 0, report.Sent)
	pushSender.AssertNotCalled(t, "SendAll", mock.Anything, mock.Anything)
}

func TestReminderService_Run_HorizonOverride(t *testing.T) {
	svc, eventRepo, _, _, _ := createTestReminderService(t)

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	eventRepo.On("FindEventsDueBefore", mock.Anything, now.Add(30*time.Minute)).
		Return([]*entity.Event{}, nil)

	report, err := svc.Run(ctx, usecase.RunOptions{Now: now, Horizon: 30 * time.Minute})

	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), report.Cutoff)
}

func TestReminderService_Run_PublishesDispatchReport(t *testing.T) {
	eventRepo := mockRepo.NewMockEventRepository(t)
	registrationRepo := mockRepo.NewMockRegistrationRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	pushSender := mockSvc.NewMockPushSender(t)
	reportPublisher := mockSvc.NewMockReportPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{Scheduler: &config.SchedulerConfig{HorizonMinutes: 15}}
	svc := NewReminderService(logger, cfg, eventRepo, registrationRepo, userRepo, pushSender, reportPublisher)

	ctx := context.Background()
	event := &entity.Event{ID: uuid.New(), Name: "Launch Party", Location: "HQ Roof"}
	userID := uuid.New()

	eventRepo.On("FindEventsDueBefore", mock.Anything, mock.Anything).
		Return([]*entity.Event{event}, nil)
	registrationRepo.On("FindUserIDsByEvent", mock.Anything, event.ID).
		Return([]uuid.UUID{userID}, nil)
	userRepo.On("FindUserByID", mock.Anything, userID).
		Return(tokenPtrUser(userID, "token-1"), nil)
	pushSender.On("SendAll", mock.Anything, mock.Anything).
		Return(&service.BatchResult{SuccessCount: 1, FailureCount: 0}, nil)

	reportPublisher.On("PublishDispatchReport", mock.Anything, mock.MatchedBy(func(event *service.DispatchReportEvent) bool {
		return event.Composed == 1 && event.Sent == 1 && event.Failed == 0
	})).Return(nil).Once()

	_, err := svc.Run(ctx, usecase.RunOptions{})

	require.NoError(t, err)
}
