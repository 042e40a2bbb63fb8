package domain

import "time"

// Clock supplies the observation time for temporal invariants. Services take
// a Clock instead of reading time.Now directly so tests can pin arbitrary
// instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock { return systemClock{} }
