package pool

import (
	"sync"

	"github.com/mongodb/deadpool"
	"go.opentelemetry.io/otel/trace"
)

// dispatchUnit is a job in transit between a submitter and the
// worker that claims it.
type dispatchUnit struct {
	job  deadpool.Job
	seq  int
	span trace.SpanContext
}

// dispatcher is an unbounded FIFO queue shared by all workers of a
// pool. The producer side (send and close) belongs to the pool; every
// worker claims from the same consumer side, serialized by mu.
type dispatcher struct {
	mu     sync.Mutex
	ready  *sync.Cond
	buffer []dispatchUnit
	total  int
	closed bool
}

func newDispatcher() *dispatcher {
	d := &dispatcher{}
	d.ready = sync.NewCond(&d.mu)
	return d
}

// send appends a job and wakes one waiting claimer. Once the
// dispatcher is closed, send rejects all jobs.
func (d *dispatcher) send(job deadpool.Job, span trace.SpanContext) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, deadpool.NewPoolClosedError("pool is closed and not accepting jobs")
	}

	d.total++
	d.buffer = append(d.buffer, dispatchUnit{job: job, seq: d.total, span: span})
	d.ready.Signal()

	return d.total, nil
}

// claim removes the next job from the queue, blocking while the queue
// is empty and open. It returns false only when the dispatcher is
// closed and every queued job has been claimed.
func (d *dispatcher) claim() (dispatchUnit, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for len(d.buffer) == 0 && !d.closed {
		d.ready.Wait()
	}

	if len(d.buffer) == 0 {
		return dispatchUnit{}, false
	}

	unit := d.buffer[0]
	d.buffer[0] = dispatchUnit{}
	d.buffer = d.buffer[1:]

	return unit, true
}

// close marks the queue closed and wakes every blocked claimer. Only
// the first call has an effect; it reports whether this call closed
// the queue.
func (d *dispatcher) close() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	d.closed = true
	d.ready.Broadcast()

	return true
}

func (d *dispatcher) stats() (total, pending int, closed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.total, len(d.buffer), d.closed
}
