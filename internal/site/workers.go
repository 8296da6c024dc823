package site

import (
	"runtime"

	"github.com/alnah/go-lightbox/internal/config"
)

// Worker bounds for the read phase.
const (
	MinWorkers = 1
	MaxWorkers = config.MaxWorkers
)

// ResolveWorkers returns the read-phase concurrency. An explicit positive
// value wins, clamped to MaxWorkers; otherwise GOMAXPROCS, which
// automaxprocs adjusts for container CPU quotas.
func ResolveWorkers(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
