// Package lifecycle holds shared timing values for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook, such as a ping or a graceful shutdown.
const DefaultTimeout = 10 * time.Second
