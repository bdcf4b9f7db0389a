package transport

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"
)

// TestTCPDialer_SingleKeystroke verifies a one-byte write reaches a
// listening descriptor promptly.
func TestTCPDialer_SingleKeystroke(t *testing.T) {
	ln, err := Listen(0)
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	d := &TCPDialer{Timeout: 2 * time.Second}
	conn, err := d.Dial(context.Background(), "tcp", fmt.Sprintf("127.0.0.1:%d", ln.Port()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	fd, err := ln.Accept(ctx)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	defer closeFd(fd)

	if _, err := conn.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 4)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		n, err := Drain(fd, buf)
		if err != nil {
			t.Fatalf("Drain: %v", err)
		}
		if n > 0 {
			if string(buf[:n]) != "q" {
				t.Errorf("got %q, want %q", buf[:n], "q")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("keystroke never arrived")
}

// TestTCPDialer_NoDelay verifies Nagle is off on dialled connections.
func TestTCPDialer_NoDelay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	d := &TCPDialer{Timeout: 2 * time.Second}
	conn, err := d.Dial(context.Background(), "tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	raw, err := conn.(*net.TCPConn).SyscallConn()
	if err != nil {
		t.Fatal(err)
	}
	var nodelay int
	var serr error
	raw.Control(func(fd uintptr) { //nolint:errcheck
		nodelay, serr = getsockoptNoDelay(int(fd))
	})
	if serr != nil {
		t.Fatal(serr)
	}
	if nodelay == 0 {
		t.Error("TCP_NODELAY not set")
	}
}

// TestTCPDialer_ContextCancel verifies that a cancelled context stops the dial.
func TestTCPDialer_ContextCancel(t *testing.T) {
	d := &TCPDialer{Timeout: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Dial(ctx, "tcp", "127.0.0.1:1"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

// TestTCPDialer_Close verifies Close is a no-op.
func TestTCPDialer_Close(t *testing.T) {
	var d Dialer = &TCPDialer{}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
