package ports

import "time"

// CancelFunc drops a scheduled callback before it fires. Safe to call more
// than once and after the callback ran.
type CancelFunc func()

// Scheduler runs callbacks after a delay. The battle session keys every
// pending callback to its lifetime so abandoning a session cancels them
// instead of letting them fire against stale state.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}
