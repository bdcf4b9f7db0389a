package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the listen port of the demo server.
	DefaultPort = 6969

	// DefaultInputBuffer is the input ring capacity.
	DefaultInputBuffer = 32

	// DefaultScratchBuffer is the transcode scratch capacity.
	DefaultScratchBuffer = 128

	// MinScratchBuffer must hold one cursor position report
	// ("\x1b[9999;9999R" plus slack) and any single codepoint.
	MinScratchBuffer = 16

	// MaxBuffer caps both engine buffers.
	MaxBuffer = 64 * 1024

	// DefaultSizeDelay is how long the size negotiator waits for the
	// terminal's cursor position report.
	DefaultSizeDelay = 100 * time.Millisecond

	// DefaultSizeAttempts keeps size negotiation single-shot.
	DefaultSizeAttempts = 1

	// MaxSizeAttempts bounds the retry-with-backoff loop.
	MaxSizeAttempts = 10

	// DefaultDrawInterval is the demo's redraw period.
	DefaultDrawInterval = 250 * time.Millisecond

	// DefaultPollInterval is the pause between input polls.
	DefaultPollInterval = time.Millisecond

	// DefaultRows and DefaultCols are used when the terminal does not
	// answer the size query.
	DefaultRows = 24
	DefaultCols = 80

	// DefaultQuitKey ends the demo.
	DefaultQuitKey = "q"

	// DefaultMaxDrawFailures is how many consecutive failed draws the
	// demo tolerates before ending the session.
	DefaultMaxDrawFailures = 3

	// DefaultConnTimeout is the client dial timeout.
	DefaultConnTimeout = 10 * time.Second
)
