package deadpool

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// PoolOptions configure a pool at construction time. Pools cannot be
// reconfigured once built.
type PoolOptions struct {
	// Name is a human readable label included in log messages and
	// stats. Optional.
	Name string `bson:"name" json:"name" yaml:"name"`
	// Size is the number of workers, and must be at least 1.
	Size int `bson:"size" json:"size" yaml:"size"`
}

// Validate checks the options and returns an error describing every
// problem found.
func (o *PoolOptions) Validate() error {
	catcher := grip.NewBasicCatcher()

	if o.Size < 1 {
		catcher.Add(errors.Errorf("pool size must be at least 1, not %d", o.Size))
	}

	return catcher.Resolve()
}
