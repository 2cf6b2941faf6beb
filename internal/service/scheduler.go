package service

import "time"

// Task is a scheduled callback that can be called off before it runs.
type Task interface {
	// Stop reports whether the call prevented the callback from running.
	Stop() bool
}

// Scheduler runs callbacks after a delay on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timerScheduler struct{}

// NewScheduler returns a Scheduler backed by the runtime timer.
func NewScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}
