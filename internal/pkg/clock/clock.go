package clock

import "time"

// Clocker is the time source used by code that needs the current time.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

// New returns the system-clock implementation.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now reports the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}
