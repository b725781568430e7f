package pool

import (
	"context"
	"time"

	"github.com/mongodb/deadpool"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/logging"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// worker is one slot of a LocalWorkers pool. The id is only used for
// diagnostics.
type worker struct {
	id   int
	pool *LocalWorkers
	done chan struct{}
}

// startWorker spawns the worker's goroutine, which claims and runs
// jobs until the pool's dispatcher is closed and drained.
func startWorker(id int, p *LocalWorkers) *worker {
	w := &worker{
		id:   id,
		pool: p,
		done: make(chan struct{}),
	}

	p.live.Add(1)
	go w.run()

	return w
}

func (w *worker) run() {
	defer close(w.done)
	defer w.pool.live.Add(-1)

	grip.Debugf("worker (%d) of pool '%s' waiting for jobs", w.id, w.pool.id)

	for {
		unit, ok := w.pool.dispatch.claim()
		if !ok {
			break
		}

		executeJob(w, unit)
	}

	grip.Debugf("worker (%d) of pool '%s' exiting", w.id, w.pool.id)
}

// join blocks until the worker's goroutine has returned.
func (w *worker) join() {
	<-w.done
}

func executeJob(w *worker, unit dispatchUnit) {
	p := w.pool

	ctx := trace.ContextWithSpanContext(context.Background(), unit.span)
	_, span := p.tracer.Start(ctx, "deadpool.job", trace.WithAttributes(
		attribute.String("deadpool.pool.id", p.id),
		attribute.Int("deadpool.worker.id", w.id),
		attribute.Int("deadpool.job.seq", unit.seq),
	))
	defer span.End()

	p.running.Add(1)
	startAt := time.Now()
	err := runJob(w, unit)
	runtime := time.Since(startAt)
	p.running.Add(-1)

	p.recordRuntime(runtime)
	p.completed.Add(1)

	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "job panicked")

	p.panicked.Add(1)
	p.catcher.Add(deadpool.NewJobPanicError(w.id, err))
}

// runJob invokes the job, converting a panic into an error. A panic is
// reported once, as a single message carrying the job's location.
func runJob(w *worker, unit dispatchUnit) (err error) {
	defer func() {
		err = recovery.SendMessageWithPanicError(recover(), nil, logging.MakeGrip(grip.GetSender()), message.Fields{
			"operation": "job execution",
			"pool":      w.pool.id,
			"worker":    w.id,
			"seq":       unit.seq,
		})
	}()

	unit.job()

	return nil
}
