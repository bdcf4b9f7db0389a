package session

import (
	"io"

	"sockui/internal/errors"
	"sockui/internal/transport"
)

// InputKind tags the result of Recv.
type InputKind int

const (
	// InputNone means no byte is available right now.
	InputNone InputKind = iota
	// InputByte carries one received byte in Input.Byte.
	InputByte
	// InputEOF means the client closed its end and every byte it sent
	// has been delivered.
	InputEOF
)

func (k InputKind) String() string {
	switch k {
	case InputByte:
		return "byte"
	case InputEOF:
		return "eof"
	default:
		return "none"
	}
}

// Input is one result from Recv.
type Input struct {
	Kind InputKind
	Byte byte
}

// Recv returns the next pending input byte without blocking.
//
// When the ring is exhausted it is refilled with whatever the socket has
// buffered.  A RedrawByte is swallowed: it sets the redraw flag, clears
// the client screen, and Recv moves on to the next byte.
func (s *Session) Recv() (Input, error) {
	if s.fd < 0 {
		return Input{}, errors.ErrNotAttached
	}

	for {
		if s.idx >= s.filled {
			if s.peerClosed {
				return Input{Kind: InputEOF}, nil
			}
			if err := s.fill(); err != nil {
				return Input{}, err
			}
			if s.filled == 0 {
				if s.peerClosed {
					return Input{Kind: InputEOF}, nil
				}
				return Input{Kind: InputNone}, nil
			}
		}

		b := s.ibuf[s.idx]
		s.idx++
		if b != RedrawByte {
			return Input{Kind: InputByte, Byte: b}, nil
		}

		s.redraw = true
		s.metrics.RedrawRequested()
		if err := s.write(seqClear); err != nil {
			return Input{}, err
		}
	}
}

// fill replaces the consumed ring with a fresh read from the socket.
func (s *Session) fill() error {
	n, err := transport.Drain(s.fd, s.ibuf)
	s.idx = 0
	s.filled = n
	s.metrics.BytesReceived(int64(n))

	switch {
	case err == io.EOF:
		s.peerClosed = true
		s.logger.Debug("client closed its end after %d bytes", n)
		return nil
	case err != nil:
		s.filled = 0
		s.metrics.RecordError(err.Error())
		return err
	}
	return nil
}
