package management

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const (
	levelFlag    = "level"
	configFlag   = "config"
	nameFlag     = "name"
	workersFlag  = "workers"
	jobsFlag     = "jobs"
	durationFlag = "duration"
	panicsFlag   = "panics"
)

// NewApp builds the deadpool command line application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "deadpool"
	app.Usage = "run synthetic workloads through a fixed size worker pool"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  levelFlag,
			Value: "info",
			Usage: "minimum log level (debug, info, notice, warning, error)",
		},
	}
	app.Before = func(c *cli.Context) error {
		return setLogLevel(c.String(levelFlag))
	}
	app.Commands = []cli.Command{
		Run(),
	}

	return app
}

// Run returns the command that drives one workload through a pool and
// prints a report. Flags override values from the config file.
func Run() cli.Command {
	defaults := DefaultRunConfig()

	return cli.Command{
		Name:  "run",
		Usage: "submit a batch of sleeping jobs to a new pool and report on the run",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  configFlag,
				Usage: "path to a YAML file with 'pool' and 'workload' sections",
			},
			cli.StringFlag{
				Name:  nameFlag,
				Value: defaults.Pool.Name,
				Usage: "label for the pool in logs and the report",
			},
			cli.IntFlag{
				Name:  workersFlag,
				Value: defaults.Pool.Size,
				Usage: "number of workers in the pool",
			},
			cli.IntFlag{
				Name:  jobsFlag,
				Value: defaults.Workload.Jobs,
				Usage: "number of jobs to submit",
			},
			cli.DurationFlag{
				Name:  durationFlag,
				Value: defaults.Workload.Duration,
				Usage: "time each job sleeps",
			},
			cli.IntFlag{
				Name:  panicsFlag,
				Usage: "number of jobs that panic",
			},
		},
		Action: func(c *cli.Context) error {
			conf, err := LoadRunConfig(c.String(configFlag))
			if err != nil {
				return errors.WithStack(err)
			}

			if c.IsSet(nameFlag) {
				conf.Pool.Name = c.String(nameFlag)
			}
			if c.IsSet(workersFlag) {
				conf.Pool.Size = c.Int(workersFlag)
			}
			if c.IsSet(jobsFlag) {
				conf.Workload.Jobs = c.Int(jobsFlag)
			}
			if c.IsSet(durationFlag) {
				conf.Workload.Duration = c.Duration(durationFlag)
			}
			if c.IsSet(panicsFlag) {
				conf.Workload.Panics = c.Int(panicsFlag)
			}

			report, err := RunWorkload(context.Background(), conf.Pool, conf.Workload)
			if report != nil {
				report.Render(c.App.Writer)
			}

			return errors.Wrap(err, "workload did not run cleanly")
		},
	}
}

func setLogLevel(name string) error {
	threshold := level.FromString(name)
	if threshold == level.Invalid {
		return errors.Errorf("'%s' is not a valid log level", name)
	}

	sender := grip.GetSender()
	return errors.WithStack(sender.SetLevel(send.LevelInfo{
		Default:   sender.Level().Default,
		Threshold: threshold,
	}))
}
