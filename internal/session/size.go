package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"sockui/internal/errors"
	"sockui/internal/retry"
	"sockui/internal/transport"
)

// maxDimension bounds each reported dimension.  The query parks the
// cursor at 9999;9999, so larger values cannot be genuine.
const maxDimension = 9999

// Size is a terminal size in character cells.
type Size struct {
	Rows int
	Cols int
}

func (sz Size) String() string { return fmt.Sprintf("%dx%d", sz.Rows, sz.Cols) }

// Size asks the client terminal for its dimensions.  It moves the cursor
// to the far corner, requests a cursor-position report, restores the
// cursor, and parses the reply after the configured delay.  Stale input
// is discarded first.
//
// A malformed or missing reply is ErrSizeReply and is retried up to
// Options.SizeAttempts times; socket failures are returned at once.
func (s *Session) Size(ctx context.Context) (Size, error) {
	if s.fd < 0 {
		return Size{}, errors.ErrNotAttached
	}

	var size Size
	b := retry.Backoff{
		InitialDelay: s.opts.SizeDelay,
		MaxDelay:     10 * s.opts.SizeDelay,
		MaxAttempts:  s.opts.SizeAttempts,
	}
	err := b.Do(ctx, func(attempt int) error {
		sz, err := s.querySize(ctx)
		s.metrics.SizeQuery(err == nil)
		if err == nil {
			size = sz
			return nil
		}
		s.logger.Debug("size query attempt %d: %v", attempt, err)
		if errors.Is(err, errors.ErrSizeReply) {
			return err
		}
		return retry.Permanent(err)
	})
	if err != nil {
		return Size{}, fmt.Errorf("size negotiation: %w", err)
	}
	s.term = size
	s.logger.Verbose("client terminal is %s", size)
	return size, nil
}

func (s *Session) querySize(ctx context.Context) (Size, error) {
	if _, err := transport.Drain(s.fd, nil); err != nil {
		return Size{}, fmt.Errorf("discard stale input: %w", err)
	}
	if err := s.write(seqSizeQuery); err != nil {
		return Size{}, err
	}

	t := time.NewTimer(s.opts.SizeDelay)
	select {
	case <-ctx.Done():
		t.Stop()
		return Size{}, ctx.Err()
	case <-t.C:
	}

	n, err := transport.Drain(s.fd, s.scratch)
	s.metrics.BytesReceived(int64(n))
	if err == io.EOF {
		return Size{}, fmt.Errorf("read size reply: %w", err)
	}
	if err != nil {
		return Size{}, err
	}
	return parseCursorReport(s.scratch[:n])
}

// parseCursorReport decodes "ESC [ rows ; cols R" at the start of b.
// Anything after the final 'R' is ignored.
func parseCursorReport(b []byte) (Size, error) {
	bad := func() (Size, error) {
		return Size{}, fmt.Errorf("%w: %q", errors.ErrSizeReply, b)
	}

	if len(b) < 2 || b[0] != 0x1b || b[1] != '[' {
		return bad()
	}
	rows, i, ok := parseDimension(b, 2)
	if !ok || i >= len(b) || b[i] != ';' {
		return bad()
	}
	cols, j, ok := parseDimension(b, i+1)
	if !ok || j >= len(b) || b[j] != 'R' {
		return bad()
	}
	return Size{Rows: rows, Cols: cols}, nil
}

// parseDimension reads a decimal in [1, maxDimension] starting at b[i]
// and returns it with the index of the first byte after it.
func parseDimension(b []byte, i int) (int, int, bool) {
	start := i
	v := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		v = v*10 + int(b[i]-'0')
		if v > maxDimension {
			return 0, i, false
		}
		i++
	}
	if i == start || v < 1 {
		return 0, i, false
	}
	return v, i, true
}
