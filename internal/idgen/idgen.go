// Package idgen supplies the two correlation identifiers the server attaches
// to log lines: a process-wide monotonic request counter, and a
// per-connection UUID used to group every request handled on one TCP
// connection.
package idgen

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Counter is the "request counter: monotonic u64" field of the Server
// context. Mutated under relaxed ordering, used only for log
// correlation, never for request semantics.
type Counter struct {
	n atomic.Uint64
}

// Next returns the next request id, starting at 1.
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}

// NewConnectionID returns a fresh UUID to tag every request on one
// connection in the logs, grounded on curol-go-net's direct dependency on
// github.com/google/uuid.
func NewConnectionID() string {
	return uuid.New().String()
}
