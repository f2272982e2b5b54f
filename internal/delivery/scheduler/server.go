// Package scheduler provides the in-process timer trigger for the reminder
// pipeline.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"reminder/config"
	"reminder/internal/delivery"
	deliverycontext "reminder/internal/delivery/context"
	"reminder/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type schedulerServer struct {
	cfg         *config.SchedulerConfig
	logger      *slog.Logger
	reminderSvc usecase.ReminderUsecase
	quit        chan struct{}
}

// ServerParams holds dependencies for the scheduler server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	ReminderSvc usecase.ReminderUsecase
}

// NewServer creates the ticker-driven scheduler delivery. One run fires per
// tick; runs execute sequentially in a single goroutine, so ticks never
// overlap within one process. Nothing prevents overlap across processes.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &schedulerServer{
		cfg:         params.Cfg.Scheduler,
		logger:      params.Logger,
		reminderSvc: params.ReminderSvc,
		quit:        make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve runs the ticker loop until shutdown.
func (s *schedulerServer) Serve(ctx context.Context) error {
	if s.cfg == nil || !s.cfg.Enabled {
		s.logger.Info("Scheduler trigger disabled")

		return nil
	}

	s.logger.Info("Starting scheduler trigger",
		slog.Duration("interval", s.cfg.Interval),
		slog.Int("horizon_minutes", s.cfg.HorizonMinutes),
	)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.quit:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes one pipeline pass with a run-scoped logger. Errors are
// logged, never propagated: the next tick is the retry mechanism.
func (s *schedulerServer) runOnce(ctx context.Context) {
	runID := uuid.New().String()
	runLogger := s.logger.With(slog.String("request_id", runID))

	runCtx := deliverycontext.WithRequestID(ctx, runID)
	runCtx = deliverycontext.WithLogger(runCtx, runLogger)

	if _, err := s.reminderSvc.Run(runCtx, usecase.RunOptions{}); err != nil {
		runLogger.Error("[Scheduler] Reminder run failed", slog.Any("error", err))
	}
}

// stop ends the ticker loop.
func (s *schedulerServer) stop(ctx context.Context) error {
	s.logger.Info("Shutting down scheduler trigger")
	close(s.quit)

	return nil
}
