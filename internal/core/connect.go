package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"sockui/internal/transport"
	"sockui/util"
)

// ConnectMode dials a sockui server and relays the local terminal to
// it.  With Raw set and stdin a terminal, the terminal is switched to
// raw mode for the duration so single keystrokes (including Ctrl-L)
// reach the server unbuffered.
type ConnectMode struct {
	Dialer  transport.Dialer
	Network string
	Address string
	Raw     bool
	Logger  *util.Logger

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O; raw mode only ever
	// applies to the real stdin.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ConnectMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ConnectMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run dials the server and relays until either side closes.  The
// local terminal state is restored before Run returns.
func (m *ConnectMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()

	m.Logger.Verbose("connecting to %s (%s)", m.Address, m.Network)

	conn, err := m.Dialer.Dial(ctx, m.Network, m.Address)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", m.Address, err)
	}
	defer conn.Close()

	m.Logger.Verbose("connected to %s", conn.RemoteAddr())

	if m.Raw && m.Stdin == nil {
		restore, err := m.makeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return err
		}
		defer restore()
	}

	return util.BidirectionalCopy(ctx, conn, m.stdin(), m.stdout())
}

// makeRaw switches fd to raw mode when it is a terminal and returns a
// function that restores it.
func (m *ConnectMode) makeRaw(fd int) (func(), error) {
	if !term.IsTerminal(fd) {
		m.Logger.Verbose("stdin is not a terminal, relaying as-is")
		return func() {}, nil
	}

	if w, h, err := term.GetSize(fd); err == nil {
		m.Logger.Debug("local terminal is %dx%d", h, w)
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	m.Logger.Debug("terminal switched to raw mode")
	return func() {
		term.Restore(fd, old) //nolint:errcheck
	}, nil
}
