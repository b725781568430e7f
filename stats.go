package deadpool

import (
	"fmt"
	"time"

	"github.com/mongodb/grip/message"
)

// PoolStats is a snapshot of a pool's state, returned by the Stats()
// method of the Pool interface, and provides a common format for
// different Pool implementations to report on their work.
type PoolStats struct {
	ID             string        `bson:"id" json:"id" yaml:"id"`
	Name           string        `bson:"name" json:"name" yaml:"name"`
	Size           int           `bson:"size" json:"size" yaml:"size"`
	Workers        int           `bson:"workers" json:"workers" yaml:"workers"`
	Submitted      int           `bson:"submitted" json:"submitted" yaml:"submitted"`
	Pending        int           `bson:"pending" json:"pending" yaml:"pending"`
	Running        int           `bson:"running" json:"running" yaml:"running"`
	Completed      int           `bson:"completed" json:"completed" yaml:"completed"`
	Panicked       int           `bson:"panicked" json:"panicked" yaml:"panicked"`
	AverageRuntime time.Duration `bson:"average_runtime" json:"average_runtime" yaml:"average_runtime"`
	Closed         bool          `bson:"closed" json:"closed" yaml:"closed"`
}

// Idle returns true when no job is queued or running. Jobs submitted
// concurrently may make the result stale immediately.
func (s PoolStats) Idle() bool {
	return s.Pending == 0 && s.Running == 0
}

// Fields renders the stats as a structured log message.
func (s PoolStats) Fields() message.Fields {
	return message.Fields{
		"pool":          s.ID,
		"name":          s.Name,
		"size":          s.Size,
		"workers":       s.Workers,
		"submitted":     s.Submitted,
		"pending":       s.Pending,
		"running":       s.Running,
		"completed":     s.Completed,
		"panicked":      s.Panicked,
		"avg_runtime_s": s.AverageRuntime.Seconds(),
		"closed":        s.Closed,
	}
}

func (s PoolStats) String() string {
	return fmt.Sprintf("pool %s: %d/%d workers, %d submitted, %d pending, %d running, %d completed, %d panicked",
		s.ID, s.Workers, s.Size, s.Submitted, s.Pending, s.Running, s.Completed, s.Panicked)
}
