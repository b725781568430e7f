package management

import (
	"os"
	"time"

	"github.com/mongodb/deadpool"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RunConfig is the file form of the run command's settings.
type RunConfig struct {
	Pool     deadpool.PoolOptions `yaml:"pool"`
	Workload Workload             `yaml:"workload"`
}

// LoadRunConfig reads a YAML run configuration. An empty path returns
// the defaults.
func LoadRunConfig(path string) (*RunConfig, error) {
	conf := DefaultRunConfig()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "problem reading config file '%s'", path)
	}

	if err = yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "problem parsing config file '%s'", path)
	}

	return conf, nil
}

// DefaultRunConfig returns the settings used when neither a file nor
// flags specify a value.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Pool: deadpool.PoolOptions{
			Name: "deadpool",
			Size: 4,
		},
		Workload: Workload{
			Jobs:     100,
			Duration: 10 * time.Millisecond,
		},
	}
}
