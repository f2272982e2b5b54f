package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"reminder/config"
	deliverycontext "reminder/internal/delivery/context"
	"reminder/internal/domain/constants"
	"reminder/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// TriggerRequest is the optional body of a trigger call. External schedulers
// usually POST with an empty body; the fields exist for manual invocations.
type TriggerRequest struct {
	// HorizonMinutes overrides the configured scan window for this run.
	HorizonMinutes int `json:"horizon_minutes" validate:"omitempty,min=1,max=1440"`

	// DryRun composes messages but skips the dispatch call.
	DryRun bool `json:"dry_run"`
}

// TriggerHandler handles external scheduler calls that fire the reminder pipeline.
type TriggerHandler struct {
	verifyAuth  bool
	logger      *slog.Logger
	validate    *validator.Validate
	reminderSvc usecase.ReminderUsecase
}

// TriggerHandlerParams holds dependencies for the TriggerHandler
type TriggerHandlerParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	ReminderSvc usecase.ReminderUsecase
}

// NewTriggerHandler creates a new trigger handler
func NewTriggerHandler(params TriggerHandlerParams) *TriggerHandler {
	// OIDC verification is meant for Cloud Scheduler push targets; it stays
	// off for local development regardless of config.
	verifyAuth := params.Config.Trigger != nil &&
		params.Config.Trigger.VerifyAuth &&
		params.Config.Env.Env != constants.EnvDevelop

	return &TriggerHandler{
		verifyAuth:  verifyAuth,
		logger:      params.Logger,
		validate:    validator.New(),
		reminderSvc: params.ReminderSvc,
	}
}

// HandleTrigger fires one reminder pipeline run.
func (h *TriggerHandler) HandleTrigger(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if h.verifyAuth {
		if err := verifySchedulerToken(c.Request()); err != nil {
			logger.Warn("[Trigger] Invalid scheduler token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var req TriggerRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			logger.Warn("[Trigger] Failed to parse trigger request", slog.Any("error", err))

			return c.NoContent(http.StatusBadRequest)
		}
		if err := h.validate.Struct(&req); err != nil {
			logger.Warn("[Trigger] Invalid trigger request", slog.Any("error", err))

			return c.NoContent(http.StatusBadRequest)
		}
	}

	opts := usecase.RunOptions{
		Horizon: time.Duration(req.HorizonMinutes) * time.Minute,
		DryRun:  req.DryRun,
	}

	report, err := h.reminderSvc.Run(ctx, opts)
	if err != nil {
		logger.Error("[Trigger] Reminder run failed", slog.Any("error", err))

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, report)
}

// verifySchedulerToken verifies the OIDC token attached by Cloud Scheduler
// (or Pub/Sub push) requests.
// Reference: https://cloud.google.com/scheduler/docs/http-target-auth
func verifySchedulerToken(req *http.Request) error {
	// Get the Authorization header
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	// Extract Bearer token
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The expected audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	// Validate the token using Google's ID token validator
	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	// Verify email is verified (if email claim exists)
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
