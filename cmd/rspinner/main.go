package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.homedepot.com/wrm6768/rspinner"
)

var (
	printLine = fmt.Println
	sleep     = time.Sleep
	// overrides the spinner stream when set
	spinnerOutput io.Writer
)

type options struct {
	message      string
	steps        []string
	stepDuration time.Duration
	fail         bool
	stdout       bool
	elapsed      bool
	noColor      bool
	verbose      bool
}

// NewRootCmd returns the rspinner command.
func NewRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "rspinner",
		Short: "Animate a terminal spinner over a sequence of steps",
		Example: `  # spin for two seconds and finish with a success line
  rspinner --step-duration 2s

  # run three steps and fail the last one
  rspinner --steps fetch,build,deploy --fail`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	opts.RegisterFlags(cmd.Flags())
	return cmd
}

// RegisterFlags registers the command flags.
func (opts *options) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&opts.message, "message", "m", rspinner.DefaultMessage, "Message shown when no steps are given.")
	flags.StringSliceVar(&opts.steps, "steps", nil, "Comma separated list of step messages.")
	flags.DurationVar(&opts.stepDuration, "step-duration", time.Second, "How long each step animates.")
	flags.BoolVar(&opts.fail, "fail", false, "End the last step with an error.")
	flags.BoolVar(&opts.stdout, "stdout", false, "Render to standard output instead of standard error.")
	flags.BoolVar(&opts.elapsed, "elapsed", false, "Append the step duration to final lines.")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log spinner lifecycle events.")
}

func run(opts options) error {
	spinnerOpts := []rspinner.Option{
		rspinner.WithMessage(opts.message),
		rspinner.WithLogger(newLogger(opts.verbose)),
		rspinner.WithoutAutoStart(),
	}
	if opts.stdout {
		spinnerOpts = append(spinnerOpts, rspinner.WithStream(rspinner.Stdout))
	}
	if spinnerOutput != nil {
		spinnerOpts = append(spinnerOpts, rspinner.WithWriter(spinnerOutput))
	}
	if opts.elapsed {
		spinnerOpts = append(spinnerOpts, rspinner.WithElapsed())
	}
	if opts.noColor {
		spinnerOpts = append(spinnerOpts, rspinner.WithColor(false))
	}

	sp := rspinner.New(spinnerOpts...)
	defer sp.Close()

	if len(opts.steps) == 0 {
		if err := sp.Start(); err != nil {
			return err
		}
		sleep(opts.stepDuration)
		return sp.Success()
	}

	for i, step := range opts.steps {
		if err := sp.Start(step); err != nil {
			return err
		}
		sleep(opts.stepDuration)

		if opts.fail && i == len(opts.steps)-1 {
			if err := sp.Error(fmt.Sprintf("%s failed", step)); err != nil {
				return err
			}
			return errors.Errorf("step %q failed", step)
		}

		if err := sp.Success(fmt.Sprintf("%s done", step)); err != nil {
			return err
		}
	}

	return nil
}

func newLogger(verbose bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func printErrorAndExit(message string) {
	color.New(color.FgRed, color.Bold).Println("FAILED")
	printLine(message)
	os.Exit(1)
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		printErrorAndExit(err.Error())
	}
}
