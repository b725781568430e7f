/*
Package management holds the tooling behind the deadpool command line
tool: a synthetic workload driver for pools, the options file loader,
and the report renderer.
*/
package management

import (
	"context"
	"fmt"
	"time"

	"github.com/mongodb/deadpool"
	"github.com/mongodb/deadpool/pool"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Workload describes a batch of synthetic jobs.
type Workload struct {
	// Jobs is the number of jobs to submit.
	Jobs int `bson:"jobs" json:"jobs" yaml:"jobs"`
	// Duration is how long each job sleeps.
	Duration time.Duration `bson:"duration" json:"duration" yaml:"duration"`
	// Panics is the number of jobs, out of Jobs, that panic after
	// sleeping.
	Panics int `bson:"panics" json:"panics" yaml:"panics"`
}

// Validate checks that the workload is runnable.
func (w Workload) Validate() error {
	catcher := grip.NewBasicCatcher()

	if w.Jobs < 0 {
		catcher.Add(errors.Errorf("cannot run a negative number of jobs (%d)", w.Jobs))
	}
	if w.Duration < 0 {
		catcher.Add(errors.Errorf("job duration cannot be negative (%s)", w.Duration))
	}
	if w.Panics < 0 || w.Panics > w.Jobs {
		catcher.Add(errors.Errorf("panicking jobs (%d) must be between 0 and the number of jobs (%d)", w.Panics, w.Jobs))
	}

	return catcher.Resolve()
}

// Report summarizes one workload run.
type Report struct {
	Workload Workload           `bson:"workload" json:"workload" yaml:"workload"`
	Stats    deadpool.PoolStats `bson:"stats" json:"stats" yaml:"stats"`
	Elapsed  time.Duration      `bson:"elapsed" json:"elapsed" yaml:"elapsed"`
	Errors   []string           `bson:"errors,omitempty" json:"errors,omitempty" yaml:"errors,omitempty"`
}

// RunWorkload builds a pool from opts, submits the workload's jobs,
// and closes the pool. The report is populated even when the run
// returns an error for jobs that panicked.
func RunWorkload(ctx context.Context, opts deadpool.PoolOptions, wl Workload) (*Report, error) {
	if err := wl.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid workload")
	}

	p, err := pool.NewLocalWorkersWithOptions(opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ctx, span := otel.Tracer("github.com/mongodb/deadpool/management").Start(ctx, "deadpool.workload",
		trace.WithAttributes(
			attribute.String("deadpool.pool.id", p.ID()),
			attribute.Int("deadpool.workload.jobs", wl.Jobs),
		))
	defer span.End()

	startAt := time.Now()
	catcher := grip.NewBasicCatcher()
	for i := 0; i < wl.Jobs; i++ {
		catcher.Add(p.Submit(ctx, syntheticJob(i, wl.Duration, i < wl.Panics)))
	}

	catcher.Add(p.Close())

	report := &Report{
		Workload: wl,
		Stats:    p.Stats(),
		Elapsed:  time.Since(startAt),
	}
	for _, err := range catcher.Errors() {
		report.Errors = append(report.Errors, err.Error())
	}

	grip.Info(message.Fields{
		"message":  "workload complete",
		"pool":     p.ID(),
		"jobs":     wl.Jobs,
		"elapsed":  report.Elapsed.String(),
		"panicked": report.Stats.Panicked,
	})

	return report, catcher.Resolve()
}

func syntheticJob(n int, dur time.Duration, fails bool) deadpool.Job {
	return func() {
		if dur > 0 {
			time.Sleep(dur)
		}

		if fails {
			panic(fmt.Sprintf("synthetic job %d failed", n))
		}
	}
}
