// Package session drives one terminal client over a raw, non-blocking
// TCP descriptor: it drains keyboard input, negotiates the terminal
// size with cursor-position queries, and renders codepoint grids row by
// row through a bounded UTF-8 scratch buffer.
//
// A Session is single-threaded.  Recv, Size and Draw must not be called
// concurrently; the caller's loop sets the cadence.
package session

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"sockui/internal/errors"
	"sockui/internal/metrics"
	"sockui/internal/transport"
	"sockui/util"
)

// Buffer sizing used when Options leaves a field unset.
const (
	DefaultInputBuffer   = 32
	DefaultScratchBuffer = 128
	// MinScratchBuffer leaves room for several 4-byte codepoints per chunk.
	MinScratchBuffer = 16
	// DefaultSizeDelay is how long a terminal gets to answer a size query.
	DefaultSizeDelay = 100 * time.Millisecond
)

// Options tunes a Session.  Zero fields take the package defaults.
type Options struct {
	InputBuffer   int           // input ring capacity in bytes
	ScratchBuffer int           // UTF-8 scratch capacity in bytes
	SizeDelay     time.Duration // wait between size query and reply read
	SizeAttempts  int           // size queries before giving up
}

func (o Options) withDefaults() Options {
	if o.InputBuffer <= 0 {
		o.InputBuffer = DefaultInputBuffer
	}
	if o.ScratchBuffer <= 0 {
		o.ScratchBuffer = DefaultScratchBuffer
	}
	if o.ScratchBuffer < MinScratchBuffer {
		o.ScratchBuffer = MinScratchBuffer
	}
	if o.SizeDelay <= 0 {
		o.SizeDelay = DefaultSizeDelay
	}
	if o.SizeAttempts < 1 {
		o.SizeAttempts = 1
	}
	return o
}

// Session owns the listening descriptor, at most one client descriptor,
// and the fixed buffers used to talk to that client.
type Session struct {
	opts     Options
	logger   *util.Logger
	metrics  *metrics.Collector
	listener *transport.Listener

	fd int // client descriptor, -1 when detached

	// Input ring: [0, idx) consumed, [idx, filled) pending.
	ibuf       []byte
	idx        int
	filled     int
	peerClosed bool

	scratch []byte
	redraw  bool
	closed  bool

	term Size // last known client terminal size
}

// New allocates a detached Session.  logger and m may be nil.
func New(opts Options, logger *util.Logger, m *metrics.Collector) *Session {
	opts = opts.withDefaults()
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &Session{
		opts:    opts,
		logger:  logger.Named("session"),
		metrics: m,
		fd:      -1,
		ibuf:    make([]byte, opts.InputBuffer),
		scratch: make([]byte, opts.ScratchBuffer),
	}
}

// Init opens the listening socket on port and resets the buffers.
func (s *Session) Init(port int) error {
	if s.closed {
		return errors.ErrClosed
	}
	if s.listener != nil {
		return fmt.Errorf("session already listening on %s", s.listener.Addr())
	}
	l, err := transport.Listen(port)
	if err != nil {
		return err
	}
	s.listener = l
	s.resetInput()
	clear(s.scratch)
	s.logger.Verbose("listening on %s", l.Addr())
	return nil
}

// Port returns the bound listening port, or 0 before Init.
func (s *Session) Port() int {
	if s.listener == nil {
		return 0
	}
	return s.listener.Port()
}

// Accept waits for the next client on the listener.
func (s *Session) Accept(ctx context.Context) (int, error) {
	if s.closed {
		return -1, errors.ErrClosed
	}
	if s.listener == nil {
		return -1, errors.New("session is not listening")
	}
	return s.listener.Accept(ctx)
}

// Attach adopts fd as the client, switches it to non-blocking mode, and
// puts the terminal on the alternate screen with the cursor hidden.
// The Session owns fd from here on, even when Attach fails.
func (s *Session) Attach(fd int) error {
	if s.closed {
		unix.Close(fd) //nolint:errcheck
		return errors.ErrClosed
	}
	if s.fd >= 0 {
		unix.Close(fd) //nolint:errcheck
		return fmt.Errorf("client %d already attached", s.fd)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd) //nolint:errcheck
		return errors.System("setnonblock", err)
	}

	s.fd = fd
	s.resetInput()
	s.redraw = false
	s.metrics.ClientAttached()
	s.logger.Verbose("client attached (fd %d)", fd)
	return s.write(seqAttach)
}

// Attached reports whether a client descriptor is held.
func (s *Session) Attached() bool { return s.fd >= 0 }

// Terminal returns the client size recorded by the last successful
// Size call or by SetTerminal.  It is zero until one of those happens.
func (s *Session) Terminal() Size { return s.term }

// SetTerminal records sz as the client size, for callers that fall
// back to assumed dimensions when negotiation fails.
func (s *Session) SetTerminal(sz Size) { s.term = sz }

// RedrawRequested reports whether the client asked for a repaint since
// the last ClearRedraw.
func (s *Session) RedrawRequested() bool { return s.redraw }

// ClearRedraw acknowledges a repaint request.
func (s *Session) ClearRedraw() { s.redraw = false }

// Close restores the client terminal and releases both descriptors.
// Calling it again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.fd >= 0 {
		if err := s.write(seqDetach); err != nil {
			s.logger.Debug("restore terminal: %v", err)
		}
		if err := unix.Close(s.fd); err != nil {
			errs = append(errs, errors.System("close", err))
		}
		s.logger.Verbose("client detached (fd %d)", s.fd)
		s.fd = -1
	}
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// write sends p to the client as a single write.
func (s *Session) write(p []byte) error {
	if s.fd < 0 {
		return errors.ErrNotAttached
	}
	if err := transport.WriteAll(s.fd, p); err != nil {
		s.metrics.RecordError(err.Error())
		return err
	}
	s.metrics.BytesSent(int64(len(p)))
	return nil
}

func (s *Session) resetInput() {
	s.idx = 0
	s.filled = 0
	s.peerClosed = false
}
