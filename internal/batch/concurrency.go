// internal/batch/concurrency.go
package batch

import (
	"runtime"
)

// maxConcurrency caps the auto-tuned worker count
const maxConcurrency = 32

// OptimalConcurrency calculates the worker count for parsing saved pages.
// Parsing is CPU bound with a short file read in front of it, so one
// worker per CPU plus a little headroom keeps every core busy.
func OptimalConcurrency() int {
	optimal := runtime.NumCPU() + 2

	if optimal > maxConcurrency {
		optimal = maxConcurrency
	}
	return optimal
}
