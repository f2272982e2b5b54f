// Package service defines the interfaces for external collaborators of the
// domain: the push transport and the report event publisher.
package service

import (
	"context"

	"reminder/internal/domain/entity"
)

// BatchResult reports the outcome of a batched push dispatch. Per-message
// failures are counted and classified, never retried.
type BatchResult struct {
	SuccessCount  int      // Messages accepted by the transport.
	FailureCount  int      // Messages the transport failed to deliver.
	InvalidTokens []string // Tokens classified as invalid or unregistered.
}

// PushSender defines the interface for the push-delivery transport.
type PushSender interface {
	// SendAll submits the full batch in one logical dispatch. The transport
	// decides per-message delivery order and timing; a failure for one token
	// does not block the others. An empty batch is a no-op.
	SendAll(ctx context.Context, messages []*entity.ReminderMessage) (*BatchResult, error)
}
