package factory

import "time"

// Clock supplies the current instant. The factory reads "now" exclusively
// through this interface so tests can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock, in UTC.
func SystemClock() Clock { return systemClock{} }
