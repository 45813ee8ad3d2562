package controller

import "time"

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Effects receives the decorative side effects of a completed day.
type Effects interface {
	Burst(idx int)
	Chime()
}

type noEffects struct{}

func (noEffects) Burst(int) {}
func (noEffects) Chime()    {}
