// Package lifecycle holds values shared by fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start or stop hook.
const DefaultTimeout = 10 * time.Second
