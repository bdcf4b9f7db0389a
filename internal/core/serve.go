package core

import (
	"context"
	"fmt"

	"sockui/internal/capability"
	"sockui/internal/errors"
	"sockui/internal/metrics"
	"sockui/internal/session"
	"sockui/internal/transport"
	"sockui/util"
)

// ServeMode listens on Port, accepts a single terminal client,
// negotiates its size, and runs the capability against it.  The
// session is closed (terminal restored, descriptors released) when Run
// returns, including on context cancellation.
type ServeMode struct {
	Port       int
	Options    session.Options
	Fallback   session.Size // assumed when size negotiation fails
	Capability capability.Capability
	Metrics    *metrics.Collector
	Logger     *util.Logger

	// Ready, when set, receives the bound port once the listener is up.
	Ready chan<- int
}

// Run serves one client.
func (m *ServeMode) Run(ctx context.Context) error {
	sess := session.New(m.Options, m.Logger, m.Metrics)
	defer func() {
		if err := sess.Close(); err != nil {
			m.Logger.Warn("close session: %v", err)
		}
		if m.Metrics != nil {
			m.Logger.Debug("session metrics: %s", m.Metrics.JSON())
		}
	}()

	if err := sess.Init(m.Port); err != nil {
		return fmt.Errorf("listen on port %d: %w", m.Port, err)
	}
	m.Logger.Info("listening on port %d", sess.Port())
	if m.Ready != nil {
		m.Ready <- sess.Port()
	}

	fd, err := sess.Accept(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("accept: %w", err)
	}
	m.Logger.Verbose("connection from %s", transport.PeerAddr(fd))

	if err := sess.Attach(fd); err != nil {
		return fmt.Errorf("attach client: %w", err)
	}

	if _, err := sess.Size(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		m.Logger.Warn("size negotiation failed (%s), assuming %s", describe(err), m.Fallback)
		sess.SetTerminal(m.Fallback)
	}

	return m.Capability.Handle(ctx, sess)
}

// describe prefers the engine's classification and falls back to the
// error text for sentinels such as ErrSizeReply.
func describe(err error) string {
	if errors.KindOf(err) != errors.KindUnknown {
		return errors.Describe(err)
	}
	return err.Error()
}
