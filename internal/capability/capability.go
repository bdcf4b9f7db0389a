// Package capability defines what happens once a client is attached.
// Each Capability encapsulates a single behaviour and operates on a
// Session rather than a raw descriptor, which keeps capabilities
// testable over socket pairs and decoupled from how the client arrived.
package capability

import (
	"context"

	"sockui/internal/session"
)

// Capability drives an attached session.  The Demo menu is the only
// implementation shipped with sockui.
type Capability interface {
	// Handle runs the capability against the given session.  It
	// returns when the client quits or disconnects, the capability
	// fails, or the context is cancelled.
	Handle(ctx context.Context, sess *session.Session) error
}
