// Package metrics provides lightweight, lock-free counters for tracking
// runtime statistics of a sockui session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a sockui session.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	clientsTotal   atomic.Int64
	bytesIn        atomic.Int64
	bytesOut       atomic.Int64
	draws          atomic.Int64
	drawFailures   atomic.Int64
	redrawRequests atomic.Int64
	sizeQueries    atomic.Int64
	sizeFailures   atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Client metrics ───────────────────────────────────────────────────

// ClientAttached records a client attach.
func (c *Collector) ClientAttached() {
	if c == nil {
		return
	}
	c.clientsTotal.Add(1)
}

// TotalClients returns the lifetime attach count.
func (c *Collector) TotalClients() int64 {
	if c == nil {
		return 0
	}
	return c.clientsTotal.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n bytes read from the client.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the client.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Render metrics ───────────────────────────────────────────────────

// Draw records a draw attempt and whether it succeeded.
func (c *Collector) Draw(ok bool) {
	if c == nil {
		return
	}
	c.draws.Add(1)
	if !ok {
		c.drawFailures.Add(1)
	}
}

// Draws returns the number of draw attempts.
func (c *Collector) Draws() int64 {
	if c == nil {
		return 0
	}
	return c.draws.Load()
}

// DrawFailures returns the number of failed draws.
func (c *Collector) DrawFailures() int64 {
	if c == nil {
		return 0
	}
	return c.drawFailures.Load()
}

// RedrawRequested records an intercepted repaint request.
func (c *Collector) RedrawRequested() {
	if c == nil {
		return
	}
	c.redrawRequests.Add(1)
}

// RedrawRequests returns the number of intercepted repaint requests.
func (c *Collector) RedrawRequests() int64 {
	if c == nil {
		return 0
	}
	return c.redrawRequests.Load()
}

// ── Size negotiation ─────────────────────────────────────────────────

// SizeQuery records a size negotiation attempt and its outcome.
func (c *Collector) SizeQuery(ok bool) {
	if c == nil {
		return
	}
	c.sizeQueries.Add(1)
	if !ok {
		c.sizeFailures.Add(1)
	}
}

// SizeQueries returns the number of size negotiation attempts.
func (c *Collector) SizeQueries() int64 {
	if c == nil {
		return 0
	}
	return c.sizeQueries.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	ClientsTotal     int64  `json:"clients_total"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	Draws            int64  `json:"draws"`
	DrawFailures     int64  `json:"draw_failures"`
	RedrawRequests   int64  `json:"redraw_requests"`
	SizeQueries      int64  `json:"size_queries"`
	SizeFailures     int64  `json:"size_failures"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Second).String(),
		ClientsTotal:   c.clientsTotal.Load(),
		BytesIn:        c.bytesIn.Load(),
		BytesOut:       c.bytesOut.Load(),
		Draws:          c.draws.Load(),
		DrawFailures:   c.drawFailures.Load(),
		RedrawRequests: c.redrawRequests.Load(),
		SizeQueries:    c.sizeQueries.Load(),
		SizeFailures:   c.sizeFailures.Load(),
		ErrorsTotal:    c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
