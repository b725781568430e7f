/*
Package deadpool provides a fixed-size pool of workers that run
deferred jobs submitted by callers.

A Pool owns a single dispatch channel and a constant number of worker
goroutines. Every job accepted by Submit is handed to exactly one
worker, which runs it to completion before claiming another. Closing
the pool stops intake, lets the workers drain what was already
accepted, and blocks until every worker has exited.

The pool/ sub-package contains the implementation; the rest/ package
exposes a pool's state over HTTP.
*/
package deadpool

import "context"

// Job is a single unit of deferred work. Pools invoke each Job
// exactly once, on one arbitrary worker, and never pass it
// arguments: anything the job needs must be captured when it is
// created.
type Job func()

// Pool describes a fixed-size set of workers consuming Jobs from a
// shared queue.
type Pool interface {
	// ID returns a unique identifier for the pool, used in log
	// messages and stats.
	ID() string

	// Size returns the number of workers the pool was
	// constructed with. Pools are never resized.
	Size() int

	// Submit adds a job to the pool's queue. The context only
	// provides trace lineage for the job, and canceling it does
	// not affect an accepted job. Returns an error that satisfies
	// IsPoolClosedError if the pool has begun shutting down.
	Submit(context.Context, Job) error

	// Stats returns a snapshot of the pool's counters.
	Stats() PoolStats

	// Closed reports whether shutdown has begun.
	Closed() bool

	// Close stops accepting jobs and blocks until every worker
	// has finished its current job, drained the queue, and
	// exited. Close is safe to call more than once; only the
	// first call releases resources, and every call returns the
	// aggregated job failures.
	Close() error
}
