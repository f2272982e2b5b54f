// Package lifecycle holds shared lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown steps.
const DefaultTimeout = 10 * time.Second
