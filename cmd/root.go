// Package cmd wires up the CLI flags and dispatches to the core modes.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"sockui/config"
	"sockui/internal/core"
	"sockui/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X sockui/cmd.version=1.1.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate sockui mode.
// Precedence is flags, then SOCKUI_* environment variables, then
// the defaults in config/defaults.go.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("sockui", flag.ContinueOnError)

	// ── mode ─────────────────────────────────────────────────────
	fs.BoolVarP(&cfg.Listen, "listen", "l", cfg.Listen, "Serve the demo menu")
	fs.IntVarP(&cfg.LocalPort, "port", "p", cfg.LocalPort, "Listen port")

	timeoutSec := int(cfg.Timeout / time.Second)
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Connect timeout in seconds")
	fs.BoolVar(&cfg.NoRaw, "no-raw", cfg.NoRaw, "Keep the local terminal in cooked mode (client)")

	// ── engine ───────────────────────────────────────────────────
	fs.IntVar(&cfg.InputBuffer, "input-buf", cfg.InputBuffer, "Input ring size in bytes")
	fs.IntVar(&cfg.ScratchBuffer, "scratch-buf", cfg.ScratchBuffer, "UTF-8 scratch buffer size in bytes")
	fs.DurationVar(&cfg.SizeDelay, "size-delay", cfg.SizeDelay, "Wait for the terminal size reply")
	fs.IntVar(&cfg.SizeAttempts, "size-attempts", cfg.SizeAttempts, "Size queries before falling back")

	// ── demo ─────────────────────────────────────────────────────
	fs.DurationVar(&cfg.DrawInterval, "interval", cfg.DrawInterval, "Redraw period")
	fs.IntVar(&cfg.FallbackRows, "rows", cfg.FallbackRows, "Rows assumed when size negotiation fails")
	fs.IntVar(&cfg.FallbackCols, "cols", cfg.FallbackCols, "Columns assumed when size negotiation fails")
	fs.StringVar(&cfg.QuitKey, "quit-key", cfg.QuitKey, "Key that ends the demo")

	// ── output ───────────────────────────────────────────────────
	var verbosity int
	fs.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate the configuration and exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("sockui %s\n", version)
		return nil
	}

	cfg.Verbose += verbosity
	if fs.Changed("timeout") {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		printPlan(cfg)
		return nil
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if cfg.Listen {
		switch len(remaining) {
		case 0: // sockui -l [-p PORT]
		case 1: // sockui -l PORT
			port, err := config.ParsePort(remaining[0])
			if err != nil {
				return fmt.Errorf("port: %w", err)
			}
			cfg.LocalPort = port
		default:
			return fmt.Errorf("too many arguments for listen mode")
		}
		return nil
	}

	// Connect mode: host port
	if len(remaining) < 1 && cfg.Host == "" {
		return fmt.Errorf("hostname required (use --help for usage)")
	}
	if len(remaining) >= 1 {
		cfg.Host = remaining[0]
	}
	if len(remaining) >= 2 {
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
	}
	if len(remaining) > 2 {
		return fmt.Errorf("too many arguments for connect mode")
	}
	if cfg.Port == 0 {
		return fmt.Errorf("port required")
	}
	return nil
}

func printPlan(cfg *config.Config) {
	if cfg.Listen {
		fmt.Printf("serve demo on 0.0.0.0:%d (input %dB, scratch %dB, size delay %s x%d, interval %s, fallback %dx%d, quit %q)\n",
			cfg.LocalPort, cfg.InputBuffer, cfg.ScratchBuffer, cfg.SizeDelay, cfg.SizeAttempts,
			cfg.DrawInterval, cfg.FallbackRows, cfg.FallbackCols, cfg.QuitKey)
		return
	}
	mode := "raw"
	if cfg.NoRaw {
		mode = "cooked"
	}
	fmt.Printf("connect to %s (timeout %s, %s terminal)\n",
		util.FormatAddr(cfg.Host, cfg.Port), cfg.Timeout, mode)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `sockui – terminal UI over a raw TCP socket v%s

Serves a small animated menu to any terminal that connects, negotiating
its size with ANSI cursor queries. Ctrl-L repaints, the quit key exits.

Usage:
  sockui -l [-p <port>] [options]          Serve the demo
  sockui [options] <host> <port>           Connect with a raw-mode terminal

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  SOCKUI_PORT, SOCKUI_INPUT_BUF, SOCKUI_SCRATCH_BUF, SOCKUI_SIZE_DELAY,
  SOCKUI_INTERVAL, SOCKUI_QUIT_KEY, SOCKUI_VERBOSE, ... (flags win)

Examples:
  sockui -l                                Serve on port 6969
  sockui -l -p 7000 --interval 100ms       Faster animation
  sockui localhost 6969                    Connect from this terminal
  stty raw -echo; nc localhost 6969        Connect with netcat
`)
}
