package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/timecalc"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

// errFailed means at least one expression failed. Its message is already on
// the output, so main only sets the exit status.
var errFailed = errors.New("evaluation failed")

// options are the settings of a run, from flags and the config file.
type options struct {
	in      string
	output  string
	color   string
	now     string
	config  string
	workers int
	echo    bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "timecalc:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:   "timecalc [flags] [expr ...]",
		Short: "Calculate with dates, times, and durations",
		Long: `timecalc evaluates expressions mixing numbers, dates (2024_01_31),
times of day (9:30pm), and durations (1h30m), e.g. "now - 2020_06_15".
With no arguments, it reads one expression per line from --in or stdin.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setup(cmd, &opts)
			if err != nil {
				return err
			}
			return runEval(cmd, args, &opts, log)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.config, "config", "", "config file (default <user config dir>/timecalc/config.toml)")
	pf.StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	pf.StringVar(&opts.now, "now", "", "instant to use for the now keyword (default current time)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "trace evaluation to stderr")

	f := root.Flags()
	f.StringVar(&opts.in, "in", "", "input file, one expression per line (default stdin if no args given)")
	f.StringVarP(&opts.output, "output", "o", "text", "output format (text|json|yaml)")
	f.IntVarP(&opts.workers, "workers", "j", runtime.GOMAXPROCS(0), "number of expressions to evaluate at once")
	f.BoolVar(&opts.echo, "echo", false, "print each expression before its result")

	root.AddCommand(newTokensCmd(&opts))
	return root
}

// setup merges the config file into opts and creates the logger.
func setup(cmd *cobra.Command, opts *options) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	path, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if path != "" {
		log.WithField("path", path).Debug("loaded config")
	}
	switch opts.color {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color %q: must be auto, on, or off", opts.color)
	}
	return log, nil
}

// evalOptions converts the command's options to evaluation options.
func evalOptions(opts *options, log *logrus.Logger) ([]timecalc.Option, error) {
	var r []timecalc.Option
	if opts.now != "" {
		t, err := cast.ToTimeE(opts.now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now %q: %w", opts.now, err)
		}
		t = t.UTC()
		r = append(r, timecalc.Clock(func() time.Time { return t }))
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		r = append(r, timecalc.Logger(log))
	}
	return r, nil
}

func runEval(cmd *cobra.Command, args []string, opts *options, log *logrus.Logger) error {
	format := strings.ToLower(opts.output)
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid --output %q: must be text, json, or yaml", opts.output)
	}
	eo, err := evalOptions(opts, log)
	if err != nil {
		return err
	}
	srcs := args
	if len(srcs) == 0 {
		srcs, err = readInput(cmd, opts.in)
		if err != nil {
			return err
		}
	}
	res, err := evalAll(cmd.Context(), srcs, opts.workers, eo)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"expressions": len(res), "workers": opts.workers}).Debug("evaluated")

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		err = writeJSON(w, res)
	case "yaml":
		err = writeYAML(w, res)
	default:
		err = writeText(w, res, opts.echo, useColor(opts.color, w))
	}
	if err != nil {
		return err
	}
	for _, r := range res {
		if r.Error != "" {
			return errFailed
		}
	}
	return nil
}
