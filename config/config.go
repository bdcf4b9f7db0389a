// Package config defines the runtime configuration for sockui and
// provides helpers for parsing ports and quit keys.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds every tuneable for a single sockui run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host      string // connect mode: server host
	Port      int    // connect mode: server port
	LocalPort int    // -p: listen port
	Listen    bool
	Timeout   time.Duration // connect-mode dial timeout

	// ── Engine ───────────────────────────────────────────────────────
	InputBuffer   int           // input ring capacity in bytes
	ScratchBuffer int           // transcode scratch capacity in bytes
	SizeDelay     time.Duration // wait between size query and reply read
	SizeAttempts  int           // size negotiation attempts (1 = single shot)

	// ── Demo ─────────────────────────────────────────────────────────
	DrawInterval    time.Duration
	PollInterval    time.Duration
	FallbackRows    int // used when size negotiation fails
	FallbackCols    int
	QuitKey         string // single byte that ends the demo
	MaxDrawFailures int    // consecutive draw failures before giving up

	// ── Client ───────────────────────────────────────────────────────
	NoRaw bool // do not switch the local terminal to raw mode

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	DryRun  bool
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		LocalPort:       DefaultPort,
		Timeout:         DefaultConnTimeout,
		InputBuffer:     DefaultInputBuffer,
		ScratchBuffer:   DefaultScratchBuffer,
		SizeDelay:       DefaultSizeDelay,
		SizeAttempts:    DefaultSizeAttempts,
		DrawInterval:    DefaultDrawInterval,
		PollInterval:    DefaultPollInterval,
		FallbackRows:    DefaultRows,
		FallbackCols:    DefaultCols,
		QuitKey:         DefaultQuitKey,
		MaxDrawFailures: DefaultMaxDrawFailures,
		Verbose:         1,
	}
}

// QuitByte returns the byte that ends the demo, or 0 when unset.
func (c *Config) QuitByte() byte {
	if len(c.QuitKey) != 1 {
		return 0
	}
	return c.QuitKey[0]
}

// ── Port helpers ─────────────────────────────────────────────────────

// ParsePort accepts a decimal port number in 1-65535.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}
