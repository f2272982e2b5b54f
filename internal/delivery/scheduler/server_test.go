package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"reminder/config"
	"reminder/internal/domain/entity"
	"reminder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingUsecase struct {
	runs atomic.Int64
	err  error
}

func (c *countingUsecase) Run(ctx context.Context, opts usecase.RunOptions) (*entity.DispatchReport, error) {
	c.runs.Add(1)

	if c.err != nil {
		return nil, c.err
	}

	return &entity.DispatchReport{RunAt: time.Now()}, nil
}

func newTestServer(cfg *config.SchedulerConfig, uc usecase.ReminderUsecase) *schedulerServer {
	return &schedulerServer{
		cfg:         cfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		reminderSvc: uc,
		quit:        make(chan struct{}),
	}
}

func TestSchedulerServer_DisabledReturnsImmediately(t *testing.T) {
	uc := &countingUsecase{}
	srv := newTestServer(&config.SchedulerConfig{Enabled: false}, uc)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return for a disabled scheduler")
	}

	assert.Equal(t, int64(0), uc.runs.Load())
}

func TestSchedulerServer_TicksRunPipeline(t *testing.T) {
	uc := &countingUsecase{}
	srv := newTestServer(&config.SchedulerConfig{Enabled: true, Interval: 10 * time.Millisecond, HorizonMinutes: 15}, uc)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background()) }()

	assert.Eventually(t, func() bool {
		return uc.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, srv.stop(context.Background()))
	require.NoError(t, <-done)
}

func TestSchedulerServer_RunErrorsDoNotStopLoop(t *testing.T) {
	uc := &countingUsecase{err: context.DeadlineExceeded}
	srv := newTestServer(&config.SchedulerConfig{Enabled: true, Interval: 10 * time.Millisecond}, uc)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background()) }()

	assert.Eventually(t, func() bool {
		return uc.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, srv.stop(context.Background()))
	require.NoError(t, <-done)
}

func TestSchedulerServer_ContextCancelStopsLoop(t *testing.T) {
	uc := &countingUsecase{}
	srv := newTestServer(&config.SchedulerConfig{Enabled: true, Interval: time.Hour}, uc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}
