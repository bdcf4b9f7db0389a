// Package errors provides domain-specific error types for sockui.
//
// Every failure the session engine can report carries a Kind that tells
// the caller which of the three recoverable classes it belongs to:
// a failed syscall, an invalid Unicode input, or a short socket write.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNotAttached = errors.New("no client attached")
	ErrClosed      = errors.New("session is closed")
	ErrSizeReply   = errors.New("malformed cursor position report")
	ErrBadGrid     = errors.New("grid dimensions do not match cell count")
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ── Kinds ────────────────────────────────────────────────────────────

// Kind classifies an engine failure.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in the
	// engine (context cancellation, sentinels, foreign errors).
	KindUnknown Kind = iota
	// KindSystem means an underlying syscall failed.
	KindSystem
	// KindIllegalSequence means a codepoint was a surrogate or beyond
	// U+10FFFF.
	KindIllegalSequence
	// KindIO means a socket write delivered fewer bytes than requested.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindIllegalSequence:
		return "illegal-sequence"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ── Structured error types ───────────────────────────────────────────

// Error is a classified engine failure.
type Error struct {
	Kind Kind
	Op   string // "read", "write", "encode", "listen", "accept", ...
	Err  error  // underlying error (a unix.Errno for KindSystem)
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind.describe())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// System wraps a failed syscall.
func System(op string, err error) *Error {
	return &Error{Kind: KindSystem, Op: op, Err: err}
}

// IllegalSequence reports an unencodable codepoint at index i.
func IllegalSequence(op string, r rune, i int) *Error {
	return &Error{
		Kind: KindIllegalSequence,
		Op:   op,
		Err:  fmt.Errorf("invalid codepoint %#x at index %d", uint32(r), i),
	}
}

// ShortWrite reports a write that delivered n of want bytes.
func ShortWrite(op string, n, want int) *Error {
	return &Error{
		Kind: KindIO,
		Op:   op,
		Err:  fmt.Errorf("short write: %d of %d bytes", n, want),
	}
}

// ── Classification helpers ───────────────────────────────────────────

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Describe returns a human-readable description of err.  System errors
// pass through the platform error text.
func Describe(err error) string {
	if err == nil {
		return "no error"
	}
	var e *Error
	if !errors.As(err, &e) {
		return "unknown error"
	}
	if e.Kind == KindSystem && e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.describe()
}

func (k Kind) describe() string {
	switch k {
	case KindSystem:
		return "system call failed"
	case KindIllegalSequence:
		return "illegal Unicode sequence"
	case KindIO:
		return "failed to read or write socket"
	default:
		return "unknown error"
	}
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use sockui/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
