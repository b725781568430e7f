/*
Local Workers Pool

LocalWorkers is a worker pool implementation that spawns a collection
of (n) workers at construction and dispatches submitted jobs to them
through a single shared queue.
*/
package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/google/uuid"
	"github.com/mongodb/deadpool"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mongodb/deadpool/pool"

// LocalWorkers is a fixed-size worker pool, and implements the
// deadpool.Pool interface.
type LocalWorkers struct {
	id       string
	name     string
	size     int
	dispatch *dispatcher
	workers  []*worker
	tracer   trace.Tracer
	catcher  grip.Catcher

	live      atomic.Int64
	running   atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64

	runtime struct {
		sync.Mutex
		avg ewma.MovingAverage
	}

	closer   sync.Once
	closeErr error
}

// NewLocalWorkers constructs a pool with the given number of workers,
// which start claiming jobs immediately. Returns an error, and no
// pool, if size is less than 1.
func NewLocalWorkers(size int) (*LocalWorkers, error) {
	return NewLocalWorkersWithOptions(deadpool.PoolOptions{Size: size})
}

// MustNewLocalWorkers is like NewLocalWorkers but panics when the
// size is invalid.
func MustNewLocalWorkers(size int) *LocalWorkers {
	p, err := NewLocalWorkers(size)
	if err != nil {
		panic(err)
	}

	return p
}

// NewLocalWorkersWithOptions constructs a pool from validated
// options.
func NewLocalWorkersWithOptions(opts deadpool.PoolOptions) (*LocalWorkers, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pool options")
	}

	p := &LocalWorkers{
		id:       uuid.New().String(),
		name:     opts.Name,
		size:     opts.Size,
		dispatch: newDispatcher(),
		tracer:   otel.Tracer(tracerName),
		catcher:  grip.NewBasicCatcher(),
	}
	p.runtime.avg = ewma.NewMovingAverage()

	p.workers = make([]*worker, 0, p.size)
	for id := 0; id < p.size; id++ {
		p.workers = append(p.workers, startWorker(id, p))
	}

	grip.Info(message.Fields{
		"message": "started worker pool",
		"pool":    p.id,
		"name":    p.name,
		"size":    p.size,
	})

	return p, nil
}

// ID returns the pool's unique identifier.
func (p *LocalWorkers) ID() string { return p.id }

// Name returns the name from the pool's options, if any.
func (p *LocalWorkers) Name() string { return p.name }

// Size returns the number of workers in the pool.
func (p *LocalWorkers) Size() int { return p.size }

// Closed returns true once Close has been called.
func (p *LocalWorkers) Closed() bool {
	_, _, closed := p.dispatch.stats()
	return closed
}

// Submit queues a job for exactly one of the pool's workers. It never
// waits for a worker to become available. The span in ctx, if any,
// becomes the parent of the job's span; ctx has no other effect.
func (p *LocalWorkers) Submit(ctx context.Context, j deadpool.Job) error {
	if j == nil {
		return errors.New("cannot submit a nil job")
	}

	if _, err := p.dispatch.send(j, trace.SpanContextFromContext(ctx)); err != nil {
		return errors.Wrapf(err, "problem submitting job to pool '%s'", p.id)
	}

	return nil
}

// Close stops the pool from accepting jobs, then waits, worker by
// worker in the order they were started, for each one to finish the
// remaining jobs and exit. Returns an error aggregating every job that
// panicked during the life of the pool, which satisfies
// deadpool.IsJobPanicError. Subsequent calls wait for the
// first one to finish and return the same error.
//
// Calling Close from inside a job deadlocks, since the calling worker
// would wait on itself.
func (p *LocalWorkers) Close() error {
	p.closer.Do(func() {
		p.dispatch.close()

		grip.Info(message.Fields{
			"message": "worker pool shutting down",
			"pool":    p.id,
			"name":    p.name,
			"pending": p.Stats().Pending,
		})

		for _, w := range p.workers {
			w.join()
		}

		p.closeErr = deadpool.MakeJobPanicErrors(p.catcher.Errors())

		grip.Info(message.MakeFieldsMessage("all workers have exited", p.Stats().Fields()))
	})

	return p.closeErr
}

// Stats returns a snapshot of the pool's counters.
func (p *LocalWorkers) Stats() deadpool.PoolStats {
	total, pending, closed := p.dispatch.stats()

	return deadpool.PoolStats{
		ID:             p.id,
		Name:           p.name,
		Size:           p.size,
		Workers:        int(p.live.Load()),
		Submitted:      total,
		Pending:        pending,
		Running:        int(p.running.Load()),
		Completed:      int(p.completed.Load()),
		Panicked:       int(p.panicked.Load()),
		AverageRuntime: p.averageRuntime(),
		Closed:         closed,
	}
}

func (p *LocalWorkers) recordRuntime(dur time.Duration) {
	p.runtime.Lock()
	defer p.runtime.Unlock()

	p.runtime.avg.Add(float64(dur))
}

func (p *LocalWorkers) averageRuntime() time.Duration {
	p.runtime.Lock()
	defer p.runtime.Unlock()

	return time.Duration(p.runtime.avg.Value())
}
