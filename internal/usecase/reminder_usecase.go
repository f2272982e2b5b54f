package usecase

import (
	"context"
	"time"

	"reminder/internal/domain/entity"
)

// RunOptions tunes a single pipeline run.
type RunOptions struct {
	// Now anchors the scan window; the zero value means time.Now().
	Now time.Time

	// Horizon overrides the configured scan window; zero means the default.
	Horizon time.Duration

	// DryRun composes messages but skips the dispatch call.
	DryRun bool
}

// ReminderUsecase defines the scheduled reminder pipeline: scan due events,
// fan out to registered users and their device tokens, compose reminders and
// dispatch them as one batch.
type ReminderUsecase interface {
	// Run executes one pipeline pass. Data-access errors abort the run
	// before any dispatch; the next scheduled run is the only retry
	// mechanism. Repeat runs within the same window re-send reminders:
	// no "already notified" state is tracked.
	Run(ctx context.Context, opts RunOptions) (*entity.DispatchReport, error)
}
