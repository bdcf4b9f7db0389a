package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"sockui/internal/errors"
)

// acceptPollMs bounds how long Accept blocks before re-checking ctx.
const acceptPollMs = 100

// Listener owns a listening IPv4 TCP descriptor.
type Listener struct {
	fd   int
	port int
}

// Listen opens a TCP socket on 0.0.0.0:port with SO_REUSEADDR and a
// backlog of one.  Port 0 selects an ephemeral port; see [Listener.Port].
func Listen(port int) (*Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, errors.System("socket", err)
	}
	unix.CloseOnExec(fd)

	fail := func(op string, err error) (*Listener, error) {
		unix.Close(fd) //nolint:errcheck
		return nil, errors.System(op, err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fail("setsockopt", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: port}); err != nil {
		return fail("bind", err)
	}
	if err := unix.Listen(fd, 1); err != nil {
		return fail("listen", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return fail("setnonblock", err)
	}

	sa, err := unix.Getsockname(fd)
	if err != nil {
		return fail("getsockname", err)
	}
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return fail("getsockname", fmt.Errorf("unexpected address family %T", sa))
	}

	return &Listener{fd: fd, port: in4.Port}, nil
}

// Port returns the bound port.
func (l *Listener) Port() int { return l.port }

// Addr returns the listening address in host:port form.
func (l *Listener) Addr() string { return fmt.Sprintf("0.0.0.0:%d", l.port) }

// Accept waits for one client and returns its descriptor, already
// non-blocking and close-on-exec.  It returns ctx.Err() once ctx is done.
func (l *Listener) Accept(ctx context.Context) (int, error) {
	if l.fd < 0 {
		return -1, errors.ErrClosed
	}

	fds := []unix.PollFd{{Fd: int32(l.fd), Events: unix.POLLIN}}
	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}

		nfd, _, err := unix.Accept(l.fd)
		switch err {
		case nil:
			unix.CloseOnExec(nfd)
			if err := unix.SetNonblock(nfd, true); err != nil {
				unix.Close(nfd) //nolint:errcheck
				return -1, errors.System("setnonblock", err)
			}
			return nfd, nil
		case unix.EAGAIN, unix.EINTR, unix.ECONNABORTED:
		default:
			return -1, errors.System("accept", err)
		}

		if _, err := unix.Poll(fds, acceptPollMs); err != nil && err != unix.EINTR {
			return -1, errors.System("poll", err)
		}
	}
}

// Close releases the listening descriptor.  Calling it twice is safe.
func (l *Listener) Close() error {
	if l.fd < 0 {
		return nil
	}
	fd := l.fd
	l.fd = -1
	if err := unix.Close(fd); err != nil {
		return errors.System("close", err)
	}
	return nil
}

// PeerAddr returns the remote address of a connected descriptor, or
// "unknown" when it cannot be determined.
func PeerAddr(fd int) string {
	sa, err := unix.Getpeername(fd)
	if err != nil {
		return "unknown"
	}
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	case *unix.SockaddrInet6:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	case *unix.SockaddrUnix:
		return "unix:" + a.Name
	}
	return "unknown"
}
