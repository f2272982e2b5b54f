package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reminder/internal/domain/entity"
	"reminder/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	lastOpts usecase.RunOptions
	report   *entity.DispatchReport
	err      error
}

func (s *stubUsecase) Run(ctx context.Context, opts usecase.RunOptions) (*entity.DispatchReport, error) {
	s.lastOpts = opts

	if s.err != nil {
		return nil, s.err
	}

	return s.report, nil
}

func newTestHandler(uc usecase.ReminderUsecase) *TriggerHandler {
	return &TriggerHandler{
		verifyAuth:  false,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate:    validator.New(),
		reminderSvc: uc,
	}
}

func doTrigger(t *testing.T, h *TriggerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/trigger", reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandleTrigger(e.NewContext(req, rec)))

	return rec
}

func TestTriggerHandler_EmptyBodyRunsWithDefaults(t *testing.T) {
	uc := &stubUsecase{report: &entity.DispatchReport{DueEvents: 2, Composed: 3, Sent: 3}}
	h := newTestHandler(uc)

	rec := doTrigger(t, h, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Duration(0), uc.lastOpts.Horizon)
	assert.False(t, uc.lastOpts.DryRun)
	assert.Contains(t, rec.Body.String(), `"sent":3`)
}

func TestTriggerHandler_BodyOverridesOptions(t *testing.T) {
	uc := &stubUsecase{report: &entity.DispatchReport{}}
	h := newTestHandler(uc)

	rec := doTrigger(t, h, `{"horizon_minutes": 30, "dry_run": true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30*time.Minute, uc.lastOpts.Horizon)
	assert.True(t, uc.lastOpts.DryRun)
}

func TestTriggerHandler_RejectsInvalidHorizon(t *testing.T) {
	uc := &stubUsecase{report: &entity.DispatchReport{}}
	h := newTestHandler(uc)

	rec := doTrigger(t, h, `{"horizon_minutes": 100000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerHandler_RejectsMalformedBody(t *testing.T) {
	uc := &stubUsecase{report: &entity.DispatchReport{}}
	h := newTestHandler(uc)

	rec := doTrigger(t, h, `{"horizon_minutes": "nope"`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerHandler_RunFailureReturns500(t *testing.T) {
	uc := &stubUsecase{err: errors.New("store unreachable")}
	h := newTestHandler(uc)

	rec := doTrigger(t, h, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTriggerHandler_MissingTokenRejectedWhenAuthRequired(t *testing.T) {
	uc := &stubUsecase{report: &entity.DispatchReport{}}
	h := newTestHandler(uc)
	h.verifyAuth = true

	rec := doTrigger(t, h, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
