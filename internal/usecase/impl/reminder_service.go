// Package impl contains the concrete use case implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"reminder/config"
	deliverycontext "reminder/internal/delivery/context"
	"reminder/internal/domain/entity"
	"reminder/internal/domain/repository"
	"reminder/internal/domain/service"
	"reminder/internal/infra/metrics"
	"reminder/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// tokenLookupConcurrency bounds the per-event fan-out of user token lookups.
const tokenLookupConcurrency = 8

type reminderService struct {
	logger           *slog.Logger
	horizon          time.Duration
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
	userRepo         repository.UserRepository
	pushSender       service.PushSender
	reportPublisher  service.ReportPublisher
}

// NewReminderService creates the reminder pipeline use case.
func NewReminderService(
	logger *slog.Logger,
	cfg *config.Config,
	eventRepo repository.EventRepository,
	registrationRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
	pushSender service.PushSender,
	reportPublisher service.ReportPublisher,
) usecase.ReminderUsecase {
	horizon := time.Duration(cfg.Scheduler.HorizonMinutes) * time.Minute

	return &reminderService{
		logger:           logger,
		horizon:          horizon,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		pushSender:       pushSender,
		reportPublisher:  reportPublisher,
	}
}

// Run executes one pipeline pass.
func (s *reminderService) Run(ctx context.Context, opts usecase.RunOptions) (*entity.DispatchReport, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	start := time.Now()

	now := opts.Now
	if now.IsZero() {
		now = start
	}
	horizon := opts.Horizon
	if horizon <= 0 {
		horizon = s.horizon
	}
	cutoff := now.Add(horizon)

	report := &entity.DispatchReport{
		RunAt:  now,
		Cutoff: cutoff,
		DryRun: opts.DryRun,
	}

	events, err := s.eventRepo.FindEventsDueBefore(ctx, cutoff)
	if err != nil {
		metrics.DispatchRunsFailed.Inc()

		return nil, errors.Wrap(err, "failed to scan due events")
	}
	report.DueEvents = len(events)

	if len(events) == 0 {
		logger.Info("No upcoming events within reminder window",
			slog.Time("cutoff", cutoff),
		)
		s.finishRun(ctx, logger, report, start)

		return report, nil
	}

	messages, err := s.collectMessages(ctx, logger, events)
	if err != nil {
		metrics.DispatchRunsFailed.Inc()

		return nil, err
	}
	report.Composed = len(messages)

	if len(messages) == 0 {
		logger.Info("No registered users with device tokens for due events",
			slog.Int("due_events", len(events)),
		)
		s.finishRun(ctx, logger, report, start)

		return report, nil
	}

	if opts.DryRun {
		logger.Info("Dry run, skipping dispatch",
			slog.Int("composed", len(messages)),
		)
		s.finishRun(ctx, logger, report, start)

		return report, nil
	}

	result, err := s.pushSender.SendAll(ctx, messages)
	if err != nil {
		metrics.DispatchRunsFailed.Inc()

		return nil, errors.Wrap(err, "failed to dispatch reminder batch")
	}

	report.Sent = result.SuccessCount
	report.Failed = result.FailureCount
	report.InvalidTokens = result.InvalidTokens

	s.finishRun(ctx, logger, report, start)

	return report, nil
}

// collectMessages walks due events and composes one reminder per registered
// user that has a device token. Token lookups for a single event fan out
// concurrently; each branch writes its own slot, and the slots are flattened
// afterwards so no shared accumulator needs locking.
func (s *reminderService) collectMessages(ctx context.Context, logger *slog.Logger, events []*entity.Event) ([]*entity.ReminderMessage, error) {
	messages := make([]*entity.ReminderMessage, 0)

	for _, event := range events {
		userIDs, err := s.registrationRepo.FindUserIDsByEvent(ctx, event.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch registrations for event %s", event.ID)
		}

		if len(userIDs) == 0 {
			logger.Debug("No registrations for due event",
				slog.String("event_id", event.ID.String()),
				slog.String("event_name", event.Name),
			)

			continue
		}

		slots := make([]*entity.ReminderMessage, len(userIDs))
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(tokenLookupConcurrency)

		for idx, userID := range userIDs {
			group.Go(func() error {
				user, err := s.userRepo.FindUserByID(groupCtx, userID)
				if errors.Is(err, repository.ErrUserNotFound) {
					// A registration pointing at a missing user is skipped,
					// never aborts the run.
					logger.Warn("Registration references missing user",
						slog.String("event_id", event.ID.String()),
						slog.String("user_id", userID.String()),
					)

					return nil
				}
				if err != nil {
					return errors.Wrapf(err, "failed to fetch user %s", userID)
				}

				if !user.HasToken() {
					return nil
				}

				slots[idx] = entity.NewReminderMessage(event, userID, user.FCMToken)

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, err
		}

		for _, msg := range slots {
			if msg != nil {
				messages = append(messages, msg)
			}
		}
	}

	return messages, nil
}

// finishRun records metrics, publishes the report and logs the summary.
// Publishing is best effort: a publisher failure never fails the run.
func (s *reminderService) finishRun(ctx context.Context, logger *slog.Logger, report *entity.DispatchReport, start time.Time) {
	metrics.DispatchRunsCompleted.Inc()
	metrics.RemindersSent.Add(float64(report.Sent))
	metrics.RemindersFailed.Add(float64(report.Failed))
	metrics.DispatchDuration.Observe(time.Since(start).Seconds())

	if s.reportPublisher != nil {
		reportEvent := &service.DispatchReportEvent{
			RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
			RunAt:         report.RunAt.Format(time.RFC3339),
			DueEvents:     report.DueEvents,
			Composed:      report.Composed,
			Sent:          report.Sent,
			Failed:        report.Failed,
			InvalidTokens: report.InvalidTokens,
		}
		if err := s.reportPublisher.PublishDispatchReport(ctx, reportEvent); err != nil {
			logger.Warn("Failed to publish dispatch report", slog.Any("error", err))
		}
	}

	logger.Info("Reminder run completed",
		slog.Int("due_events", report.DueEvents),
		slog.Int("composed", report.Composed),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Int("invalid_tokens", len(report.InvalidTokens)),
		slog.Bool("dry_run", report.DryRun),
		slog.Duration("elapsed", time.Since(start)),
	)
}
