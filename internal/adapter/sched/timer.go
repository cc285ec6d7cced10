// Package sched provides the production Scheduler backed by time.AfterFunc.
package sched

import (
	"time"

	"basaegochi/internal/app/ports"
)

type Timer struct{}

func NewTimer() Timer { return Timer{} }

func (Timer) After(d time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

var _ ports.Scheduler = Timer{}
