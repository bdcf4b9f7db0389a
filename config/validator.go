package config

import (
	"fmt"

	"sockui/internal/errors"
)

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Listen {
		if c.LocalPort < 1 || c.LocalPort > 65535 {
			return &errors.ConfigError{
				Field:   "port",
				Value:   c.LocalPort,
				Message: "listen mode requires a port in 1-65535",
				Hint:    fmt.Sprintf("try: sockui -l -p %d", DefaultPort),
			}
		}
	} else {
		if c.Host == "" {
			return fmt.Errorf("hostname is required (use --help for usage)")
		}
		if c.Port < 1 || c.Port > 65535 {
			return &errors.ConfigError{
				Field:   "port",
				Value:   c.Port,
				Message: "destination port out of range 1-65535",
			}
		}
		return nil
	}

	if c.InputBuffer < 1 || c.InputBuffer > MaxBuffer {
		return &errors.ConfigError{
			Field:   "input-buf",
			Value:   c.InputBuffer,
			Message: fmt.Sprintf("must be between 1 and %d", MaxBuffer),
		}
	}
	if c.ScratchBuffer < MinScratchBuffer || c.ScratchBuffer > MaxBuffer {
		return &errors.ConfigError{
			Field:   "scratch-buf",
			Value:   c.ScratchBuffer,
			Message: fmt.Sprintf("must be between %d and %d", MinScratchBuffer, MaxBuffer),
			Hint:    "the scratch buffer also receives the cursor position report",
		}
	}
	if c.SizeDelay <= 0 {
		return &errors.ConfigError{
			Field:   "size-delay",
			Value:   c.SizeDelay,
			Message: "must be positive",
			Hint:    "terminals usually answer within 100ms",
		}
	}
	if c.SizeAttempts < 1 || c.SizeAttempts > MaxSizeAttempts {
		return &errors.ConfigError{
			Field:   "size-attempts",
			Value:   c.SizeAttempts,
			Message: fmt.Sprintf("must be between 1 and %d", MaxSizeAttempts),
		}
	}
	if c.DrawInterval <= 0 || c.PollInterval <= 0 {
		return fmt.Errorf("draw and poll intervals must be positive")
	}
	if c.FallbackRows < 1 || c.FallbackCols < 1 {
		return &errors.ConfigError{
			Field:   "rows",
			Value:   fmt.Sprintf("%dx%d", c.FallbackRows, c.FallbackCols),
			Message: "fallback dimensions must be positive",
		}
	}
	if len(c.QuitKey) != 1 || c.QuitKey[0] == 0x0C {
		return &errors.ConfigError{
			Field:   "quit-key",
			Value:   c.QuitKey,
			Message: "must be a single byte other than Ctrl-L",
			Hint:    `Ctrl-L is reserved for repaint requests; use e.g. --quit-key=q`,
		}
	}
	if c.MaxDrawFailures < 1 {
		return &errors.ConfigError{
			Field:   "max-draw-failures",
			Value:   c.MaxDrawFailures,
			Message: "must be at least 1",
		}
	}

	return nil
}
