package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the SOCKUI_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).  Durations use Go
// syntax ("150ms", "2s").

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty,
// well-formed env vars override the existing value.  This should be
// called BEFORE CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("SOCKUI_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("SOCKUI_PORT"); v > 0 {
		cfg.LocalPort = v
	}
	if envBool("SOCKUI_LISTEN") {
		cfg.Listen = true
	}
	if v := envDuration("SOCKUI_TIMEOUT"); v > 0 {
		cfg.Timeout = v
	}

	// Engine
	if v := envInt("SOCKUI_INPUT_BUF"); v > 0 {
		cfg.InputBuffer = v
	}
	if v := envInt("SOCKUI_SCRATCH_BUF"); v > 0 {
		cfg.ScratchBuffer = v
	}
	if v := envDuration("SOCKUI_SIZE_DELAY"); v > 0 {
		cfg.SizeDelay = v
	}
	if v := envInt("SOCKUI_SIZE_ATTEMPTS"); v > 0 {
		cfg.SizeAttempts = v
	}

	// Demo
	if v := envDuration("SOCKUI_INTERVAL"); v > 0 {
		cfg.DrawInterval = v
	}
	if v := envInt("SOCKUI_ROWS"); v > 0 {
		cfg.FallbackRows = v
	}
	if v := envInt("SOCKUI_COLS"); v > 0 {
		cfg.FallbackCols = v
	}
	if v := os.Getenv("SOCKUI_QUIT_KEY"); v != "" {
		cfg.QuitKey = v
	}

	// Client
	if envBool("SOCKUI_NO_RAW") {
		cfg.NoRaw = true
	}

	// Output
	if v := envInt("SOCKUI_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}
