// Package transport provides the socket layer under the session engine.
//
// The server side works on raw, non-blocking descriptors: [Drain] and
// [WriteAll] are the only read/write primitives the session uses, and
// [Listener] opens the single IPv4 listening socket.  The client side
// ([Dialer]) stays on net.Conn because it only relays bytes.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound network connections for the client mode.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer.
	// Stateless dialers return nil.
	Close() error
}
