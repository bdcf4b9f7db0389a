package retry

import (
	"fmt"

	"sockui/internal/errors"
)

// Breaker trips after a run of consecutive failures and then rejects
// every call until Reset.  It is not safe for concurrent use; the draw
// loop that owns it is single-threaded.
type Breaker struct {
	// MaxFailures is the consecutive-failure threshold (default 3).
	MaxFailures int
	// OnTrip, if set, runs once when the breaker opens.
	OnTrip func(last error)

	failures int
	open     bool
}

// Execute runs fn unless the breaker is open.  An open breaker returns
// an error wrapping errors.ErrCircuitOpen without calling fn.
func (b *Breaker) Execute(fn func() error) error {
	if b.open {
		return fmt.Errorf("%w after %d consecutive failures", errors.ErrCircuitOpen, b.failures)
	}

	err := fn()
	if err == nil {
		b.failures = 0
		return nil
	}

	b.failures++
	if b.failures >= b.threshold() {
		b.open = true
		if b.OnTrip != nil {
			b.OnTrip(err)
		}
	}
	return err
}

// Open reports whether the breaker has tripped.
func (b *Breaker) Open() bool { return b.open }

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int { return b.failures }

// Reset closes the breaker and clears the failure count.
func (b *Breaker) Reset() {
	b.failures = 0
	b.open = false
}

func (b *Breaker) threshold() int {
	if b.MaxFailures <= 0 {
		return 3
	}
	return b.MaxFailures
}
