package transport

import (
	"io"

	"golang.org/x/sys/unix"

	"sockui/internal/errors"
)

// Drain reads from the non-blocking descriptor fd until the read would
// block, buf is full, or the peer closes.  A nil buf discards everything
// pending.
//
// It returns the number of bytes stored.  End of stream is reported as
// io.EOF alongside any bytes read before it, so (0, nil) always means
// "nothing available right now".  Syscall failures are KindSystem.
func Drain(fd int, buf []byte) (int, error) {
	discard := buf == nil
	if discard {
		var sink [64]byte
		buf = sink[:]
	}

	total := 0
	for {
		p := buf
		if !discard {
			p = buf[total:]
		}
		if len(p) == 0 {
			return total, nil
		}

		n, err := unix.Read(fd, p)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
			return total, nil
		case err != nil:
			return total, errors.System("read", err)
		case n == 0:
			return total, io.EOF
		}
		total += n
	}
}

// WriteAll writes p to fd in a single call.  A failed syscall is
// KindSystem; a partial write is KindIO.
func WriteAll(fd int, p []byte) error {
	if len(p) == 0 {
		return nil
	}

	n, err := unix.Write(fd, p)
	for err == unix.EINTR {
		n, err = unix.Write(fd, p)
	}
	if err != nil {
		return errors.System("write", err)
	}
	if n != len(p) {
		return errors.ShortWrite("write", n, len(p))
	}
	return nil
}
