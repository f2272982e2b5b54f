package service

import (
	"context"
)

// DispatchReportEvent is the wire form of a dispatch report published after a
// pipeline run, for downstream consumers (dashboards, alerting).
type DispatchReportEvent struct {
	RequestID     string   `json:"request_id,omitempty"` // For distributed tracing
	RunAt         string   `json:"run_at"`               // RFC3339 start time of the run.
	DueEvents     int      `json:"due_events"`
	Composed      int      `json:"composed"`
	Sent          int      `json:"sent"`
	Failed        int      `json:"failed"`
	InvalidTokens []string `json:"invalid_tokens,omitempty"`
}

// ReportPublisher defines the interface for publishing dispatch reports to a
// message queue.
type ReportPublisher interface {
	// PublishDispatchReport publishes a report event for async consumption.
	PublishDispatchReport(ctx context.Context, event *DispatchReportEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
