package session

import (
	"bytes"
	"context"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"sockui/internal/errors"
	"sockui/internal/transport"
)

// respond plays the client terminal: each time the size query arrives
// on peer it answers with the next reply.  It returns once every reply
// has been sent or the deadline passes.
func respond(t *testing.T, peer int, replies ...string) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(5 * time.Second)
		var seen []byte
		buf := make([]byte, 256)
		for len(replies) > 0 && time.Now().Before(deadline) {
			n, err := transport.Drain(peer, buf)
			if err != nil {
				return
			}
			seen = append(seen, buf[:n]...)
			if i := bytes.Index(seen, seqSizeQuery); i >= 0 {
				seen = seen[i+len(seqSizeQuery):]
				transport.WriteAll(peer, []byte(replies[0])) //nolint:errcheck
				replies = replies[1:]
				continue
			}
			time.Sleep(time.Millisecond)
		}
	}()
	return done
}

func TestSize_Replies(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    Size
		wantErr bool
	}{
		{"standard", "\x1b[24;80R", Size{24, 80}, false},
		{"trailing keystrokes ignored", "\x1b[50;132Rabc", Size{50, 132}, false},
		{"max", "\x1b[9999;9999R", Size{9999, 9999}, false},
		{"truncated", "\x1b[24;80", Size{}, true},
		{"garbage", "hello", Size{}, true},
		{"keystroke first", "q\x1b[24;80R", Size{}, true},
		{"empty", "", Size{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, peer, m := attached(t, Options{SizeDelay: 100 * time.Millisecond})
			var done <-chan struct{}
			if tt.reply != "" {
				done = respond(t, peer, tt.reply)
			}

			got, err := s.Size(context.Background())
			if done != nil {
				<-done
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrSizeReply) {
					t.Fatalf("Size() error = %v, want ErrSizeReply", err)
				}
				if got != (Size{}) {
					t.Errorf("failed Size returned %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Size: %v", err)
			}
			if got != tt.want {
				t.Errorf("Size() = %v, want %v", got, tt.want)
			}
			if s.Terminal() != tt.want {
				t.Errorf("Terminal() = %v after Size", s.Terminal())
			}
			if m.SizeQueries() != 1 {
				t.Errorf("SizeQueries() = %d, want 1", m.SizeQueries())
			}
		})
	}
}

func TestSize_DiscardsStaleInput(t *testing.T) {
	s, peer, _ := attached(t, Options{SizeDelay: 100 * time.Millisecond})
	writePeer(t, peer, "stale keys")
	done := respond(t, peer, "\x1b[10;20R")

	got, err := s.Size(context.Background())
	<-done
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if got != (Size{10, 20}) {
		t.Errorf("Size() = %v", got)
	}
	if in, _ := s.Recv(); in.Kind != InputNone {
		t.Errorf("stale input leaked into Recv: %+v", in)
	}
}

func TestSize_RetriesMalformedReply(t *testing.T) {
	s, peer, _ := attached(t, Options{SizeDelay: 50 * time.Millisecond, SizeAttempts: 3})
	done := respond(t, peer, "junk", "\x1b[5;7R")

	got, err := s.Size(context.Background())
	<-done
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if got != (Size{5, 7}) {
		t.Errorf("Size() = %v, want 5x7", got)
	}
}

func TestSize_PeerGone(t *testing.T) {
	s, peer, _ := attached(t, Options{SizeDelay: 10 * time.Millisecond, SizeAttempts: 5})
	if err := unix.Shutdown(peer, unix.SHUT_WR); err != nil {
		t.Fatal(err)
	}

	_, err := s.Size(context.Background())
	if err == nil {
		t.Fatal("Size should fail once the peer has closed")
	}
	if errors.Is(err, errors.ErrSizeReply) {
		t.Errorf("end of stream should not look like a bad reply: %v", err)
	}
}

func TestSize_Cancelled(t *testing.T) {
	s, _, _ := attached(t, Options{SizeDelay: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Size(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Size() = %v, want context.Canceled", err)
	}
}

func TestSize_NotAttached(t *testing.T) {
	s := New(Options{}, nil, nil)
	if _, err := s.Size(context.Background()); !errors.Is(err, errors.ErrNotAttached) {
		t.Errorf("Size() = %v", err)
	}
}

func TestParseCursorReport(t *testing.T) {
	tests := []struct {
		in   string
		want Size
		ok   bool
	}{
		{"\x1b[1;1R", Size{1, 1}, true},
		{"\x1b[24;80R", Size{24, 80}, true},
		{"\x1b[024;080R", Size{24, 80}, true},
		{"\x1b[24;80R\x1b[1;1R", Size{24, 80}, true},
		{"\x1b[0;80R", Size{}, false},
		{"\x1b[24;0R", Size{}, false},
		{"\x1b[10000;80R", Size{}, false},
		{"\x1b[24;80", Size{}, false},
		{"\x1b[24R", Size{}, false},
		{"\x1b[;80R", Size{}, false},
		{"[24;80R", Size{}, false},
		{"\x1b", Size{}, false},
		{"", Size{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCursorReport([]byte(tt.in))
			if tt.ok != (err == nil) {
				t.Fatalf("parseCursorReport(%q) error = %v", tt.in, err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrSizeReply) {
				t.Errorf("error %v is not ErrSizeReply", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
