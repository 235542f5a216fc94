// Package serverpool bounds the number of connections served concurrently,
// the way curol-go-net/server/server.go's "go Serve(conn, s)" loop dispatches
// one goroutine per accepted connection — generalized here to cap how many
// of those goroutines serve a connection at once, using the semaphore
// weighted lock the pack declares but never wires. The cap does not limit
// the goroutines themselves: one beyond capacity waits in Acquire.
package serverpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool admits at most capacity concurrent holders of its semaphore.
type Pool struct {
	sem *semaphore.Weighted
}

// New returns a Pool with room for capacity concurrent connections.
func New(capacity int) *Pool {
	return &Pool{sem: semaphore.NewWeighted(int64(capacity))}
}

// Acquire blocks until a slot is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release returns a slot to the pool.
func (p *Pool) Release() {
	p.sem.Release(1)
}
