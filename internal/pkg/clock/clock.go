package clock

import "time"

// Clocker is the time source injected into usecases.
type Clocker interface {
	Now() time.Time
}

// UTCClocker reads system time normalized to UTC. Expiry comparisons across
// the service assume a single zone, so wall time never leaves this package
// in a local zone.
type UTCClocker struct{}

// New returns the production clock.
func New() *UTCClocker {
	return &UTCClocker{}
}

// Now returns the current time in UTC.
func (*UTCClocker) Now() time.Time {
	return time.Now().UTC()
}
