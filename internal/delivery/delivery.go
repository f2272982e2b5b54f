// Package delivery defines the entry surfaces of the service.
package delivery

import "context"

// Delivery is a long-running entry point (HTTP server, scheduler loop)
// started by the application container.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
