// Package clock provides time sources for the application layer.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System is the wall clock in UTC.
func System() Clock { return systemClock{} }

// Monotonic wraps a Clock and guarantees that every returned instant is
// strictly after the previous one at microsecond precision, which is what
// PostgreSQL timestamps keep.
type Monotonic struct {
	mu   sync.Mutex
	src  Clock
	last time.Time
}

func NewMonotonic(src Clock) *Monotonic {
	return &Monotonic{src: src}
}

func (m *Monotonic) Now() time.Time {
	now := m.src.Now().Truncate(time.Microsecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now
	return now
}

// Fixed always returns the same instant. Handy in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
