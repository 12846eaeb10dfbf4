package wizard

import "time"

// Timer is the subset of *time.Timer the wizard needs.
type Timer interface {
	Stop() bool
}

// Clock supplies the current time and debounce timers. Tests swap in a
// manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
