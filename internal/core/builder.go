package core

import (
	"fmt"

	"sockui/config"
	"sockui/internal/capability"
	"sockui/internal/metrics"
	"sockui/internal/session"
	"sockui/internal/transport"
	"sockui/util"
)

// Build constructs the appropriate Mode from the given configuration.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	if cfg.Listen {
		return buildServe(cfg, logger)
	}
	return buildConnect(cfg, logger)
}

// ── mode builders ────────────────────────────────────────────────────

func buildServe(cfg *config.Config, logger *util.Logger) (Mode, error) {
	quit := cfg.QuitByte()
	if quit == 0 {
		return nil, fmt.Errorf("quit key %q must be a single byte", cfg.QuitKey)
	}

	return &ServeMode{
		Port: cfg.LocalPort,
		Options: session.Options{
			InputBuffer:   cfg.InputBuffer,
			ScratchBuffer: cfg.ScratchBuffer,
			SizeDelay:     cfg.SizeDelay,
			SizeAttempts:  cfg.SizeAttempts,
		},
		Fallback: session.Size{Rows: cfg.FallbackRows, Cols: cfg.FallbackCols},
		Capability: &capability.Demo{
			Interval:        cfg.DrawInterval,
			PollInterval:    cfg.PollInterval,
			QuitKey:         quit,
			MaxDrawFailures: cfg.MaxDrawFailures,
			Logger:          logger.Named("demo"),
		},
		Metrics: metrics.New(),
		Logger:  logger,
	}, nil
}

func buildConnect(cfg *config.Config, logger *util.Logger) (Mode, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("connect mode needs a host and port")
	}

	return &ConnectMode{
		Dialer:  &transport.TCPDialer{Timeout: cfg.Timeout},
		Network: "tcp",
		Address: util.FormatAddr(cfg.Host, cfg.Port),
		Raw:     !cfg.NoRaw,
		Logger:  logger,
	}, nil
}
