package capability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"sockui/internal/errors"
	"sockui/internal/menu"
	"sockui/internal/retry"
	"sockui/internal/session"
	"sockui/util"
)

// Demo defaults, mirrored in config/defaults.go.
const (
	DefaultDrawInterval = 250 * time.Millisecond
	DefaultPollInterval = time.Millisecond
	DefaultQuitKey      = 'q'

	// maxMenuWidth keeps the box compact on wide terminals.
	maxMenuWidth = 32
)

// Demo animates a small box menu: a tick counter advances every
// Interval, received keystrokes are logged and shown, Ctrl-L repaints
// at once, and QuitKey ends the session.
type Demo struct {
	Interval        time.Duration // between scheduled repaints
	PollInterval    time.Duration // between input polls
	QuitKey         byte
	MaxDrawFailures int // consecutive failed draws before giving up
	Logger          *util.Logger
}

// demoState is what the menu shows.
type demoState struct {
	tick    int
	lastKey byte
	keys    int
}

// Handle runs the poll loop until the client quits or disconnects or
// ctx is cancelled.  Draw failures are retried on the next tick; a run
// of MaxDrawFailures of them ends the session with the last error.
func (d *Demo) Handle(ctx context.Context, sess *session.Session) error {
	log := d.logger()
	interval := orDefault(d.Interval, DefaultDrawInterval)
	poll := orDefault(d.PollInterval, DefaultPollInterval)
	quit := d.QuitKey
	if quit == 0 {
		quit = DefaultQuitKey
	}

	breaker := &retry.Breaker{
		MaxFailures: d.MaxDrawFailures,
		OnTrip: func(last error) {
			log.Error("giving up after repeated draw failures: %s", errors.Describe(last))
		},
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var st demoState
	var nextDraw time.Time
	for {
		done, err := d.drainInput(sess, &st, quit)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if done {
			return nil
		}

		now := time.Now()
		scheduled := !now.Before(nextDraw)
		if scheduled {
			if !nextDraw.IsZero() {
				st.tick++
			}
			nextDraw = now.Add(interval)
		}
		if scheduled || sess.RedrawRequested() {
			err := breaker.Execute(func() error { return d.draw(sess, st) })
			switch {
			case err == nil:
				sess.ClearRedraw()
			case breaker.Open():
				return fmt.Errorf("draw failed %d times in a row: %w", breaker.Failures(), err)
			default:
				log.Warn("draw failed: %s", errors.Describe(err))
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// drainInput consumes every pending byte.  It reports true when the
// client pressed the quit key or closed the connection.
func (d *Demo) drainInput(sess *session.Session, st *demoState, quit byte) (bool, error) {
	log := d.logger()
	for {
		in, err := sess.Recv()
		if errors.Is(err, unix.ECONNRESET) {
			log.Verbose("client reset the connection")
			return true, nil
		}
		if err != nil {
			return false, err
		}
		switch in.Kind {
		case session.InputNone:
			return false, nil
		case session.InputEOF:
			log.Verbose("client disconnected")
			return true, nil
		}

		if in.Byte == quit {
			log.Info("quit key pressed")
			return true, nil
		}
		log.Info("received %s", keyName(in.Byte))
		st.lastKey = in.Byte
		st.keys++
	}
}

// draw renders the menu sized to the client terminal.  A terminal too
// small for a frame is skipped without error.
func (d *Demo) draw(sess *session.Session, st demoState) error {
	term := sess.Terminal()
	width := min(term.Cols, maxMenuWidth)
	if width < menu.MinBoxWidth || term.Rows < 2 {
		return nil
	}

	labels := d.labels(st)
	if len(labels) > term.Rows-2 {
		labels = labels[:term.Rows-2]
	}
	g, err := menu.Box(labels, width)
	if err != nil {
		return err
	}
	return sess.Draw(g.Cells, g.Rows, g.Cols)
}

func (d *Demo) labels(st demoState) []string {
	last := "none"
	if st.keys > 0 {
		last = keyName(st.lastKey)
	}
	quit := d.QuitKey
	if quit == 0 {
		quit = DefaultQuitKey
	}
	return []string{
		"sockui demo",
		fmt.Sprintf("tick %d", st.tick),
		fmt.Sprintf("keys %d, last %s", st.keys, last),
		fmt.Sprintf("%s quits, ^L repaints", keyName(quit)),
	}
}

func (d *Demo) logger() *util.Logger {
	if d.Logger == nil {
		d.Logger = util.NewLogger(0)
	}
	return d.Logger
}

// keyName renders b printably: control bytes in caret notation and
// bytes above ASCII in hex.
func keyName(b byte) string {
	switch {
	case b < 0x20:
		return "^" + string(rune(b+'@'))
	case b == 0x7f:
		return "^?"
	case b >= 0x80:
		return fmt.Sprintf("\\x%02x", b)
	default:
		return fmt.Sprintf("'%c'", b)
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
