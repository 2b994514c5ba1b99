// Package main provides the parinfer CLI: parallel inference of the digit
// classifier over a CSV data set.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/born-ml/parinfer/internal/backend"
	"github.com/born-ml/parinfer/internal/config"
	"github.com/born-ml/parinfer/internal/loader"
	"github.com/born-ml/parinfer/internal/metrics"
	"github.com/born-ml/parinfer/internal/nn"
	"github.com/born-ml/parinfer/internal/parallel"
	"github.com/born-ml/parinfer/internal/viewer"
)

const version = "v0.1.0"

// Stage names used in the timing table.
const (
	stageLoad    = "Data Loading"
	stageView    = "Sample Viewing"
	stageForward = "Forward Pass"
	stageScore   = "Accuracy Calculation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// stageError names the stage a fatal error came from.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

func fail(stage string, err error) error {
	return &stageError{stage: stage, err: err}
}

// options are the parsed command line.
type options struct {
	configPath string
	exportPath string
	overrides  config.Overrides
}

var errUsage = errors.New("usage")

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("parinfer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: parinfer [flags] <workers>")
		fmt.Fprintln(stderr, "       parinfer version")
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to YAML config")
	fs.StringVar(&opts.exportPath, "export", "", "Write the loaded parameters as a SafeTensors bundle")
	fs.StringVar(&opts.overrides.DataDir, "data", "", "Data directory (skips discovery)")
	fs.IntVar(&opts.overrides.Seed, "seed", 0, "Parameter file seed")
	fs.IntVar(&opts.overrides.Samples, "samples", 0, "Number of samples to classify")
	fs.StringVar(&opts.overrides.Backend, "backend", "", fmt.Sprintf("Matmul backend %v", backend.Names()))
	fs.IntVar(&opts.overrides.MaxErrorsLogged, "max-errors", 0, "Maximum mismatches listed in the error log")
	fs.IntVar(&opts.overrides.Preview, "preview", 0, "Number of predictions printed next to their labels")
	fs.BoolVar(&opts.overrides.PinThreads, "pin", false, "Lock each execution unit to an OS thread")
	fs.BoolVar(&opts.overrides.View, "view", false, "Browse samples in the terminal before inference")

	if err := fs.Parse(args); err != nil {
		return opts, errUsage
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.overrides.SeedSet = true
		}
	})
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errUsage
	}
	workers, err := strconv.Atoi(fs.Arg(0))
	if err != nil || workers <= 0 {
		fmt.Fprintf(stderr, "Error: workers must be a positive integer (got %q)\n", fs.Arg(0))
		fs.Usage()
		return opts, errUsage
	}
	opts.overrides.Workers = workers
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 1 && args[0] == "version" {
		fmt.Fprintf(stdout, "parinfer %s\n", version)
		return 0
	}

	opts, err := parseArgs(args, stderr)
	if err != nil {
		return 1
	}

	logger := log.New(stderr, "", log.LstdFlags)
	if err := execute(opts, stdin, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyOverrides(opts.overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func execute(opts options, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fail("config", err)
	}
	fill, err := cfg.Fill()
	if err != nil {
		return fail("config", err)
	}
	mm, err := backend.Lookup(cfg.Backend)
	if err != nil {
		return fail("config", err)
	}

	host := parallel.DescribeHost()
	logger.Printf("host %s", host)
	if host.Oversubscribed(cfg.Workers) {
		logger.Printf("warning workers=%d exceed hardware threads=%d", cfg.Workers, host.Cores())
	}

	var timings metrics.Timings

	var (
		net *nn.Network
		ds  *loader.Dataset
	)
	err = timings.Time(stageLoad, func() error {
		dir, err := loader.Discover(cfg.Candidates())
		if err != nil {
			return err
		}
		logger.Printf("data_dir=%s seed=%d samples=%d fill=%s", dir, cfg.Seed, cfg.Samples, fill.Name)

		l := loader.New(loader.Layout{Dir: dir, Seed: cfg.Seed})
		l.Fill = fill
		l.Logger = logger
		if net, err = l.LoadNetwork(nn.DefaultTopology); err != nil {
			return err
		}
		sum := net.Fingerprint()
		logger.Printf("network topology=%v fingerprint=%s", net.Topology(), hex.EncodeToString(sum[:8]))

		if ds, err = l.LoadDataset(cfg.Samples, net.InputSize()); err != nil {
			return err
		}
		if zero := loader.ZeroRows(ds.Samples); len(zero) > 0 {
			logger.Printf("warning zero_rows=%d of %d first=%d", len(zero), ds.Samples.Rows(), zero[0])
			if len(zero) == ds.Samples.Rows() {
				logger.Printf("warning every sample is zero; check the CSV format of %s", l.Layout.DataPath())
			}
		}
		return nil
	})
	if err != nil {
		return fail("load", err)
	}

	if opts.exportPath != "" {
		if err := exportBundle(opts.exportPath, net, cfg.Seed); err != nil {
			return fail("export", err)
		}
		logger.Printf("exported parameters to %s", opts.exportPath)
	}

	if cfg.View {
		side := int(math.Sqrt(float64(net.InputSize())))
		v := &viewer.Viewer{Samples: ds.Samples, Labels: ds.Labels, Width: side, Height: side}
		err = timings.Time(stageView, func() error {
			_, err := v.Run(stdin, stdout)
			return err
		})
		if err != nil {
			return fail("view", err)
		}
	}

	var result *parallel.Result
	err = timings.Time(stageForward, func() error {
		engine, err := parallel.NewEngine(mm, net, parallel.Config{
			Workers:    cfg.Workers,
			PinThreads: cfg.PinThreads,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		result, err = engine.Run(ds.Samples)
		return err
	})
	if err != nil {
		return fail("inference", err)
	}

	var accuracy float64
	err = timings.Time(stageScore, func() error {
		fmt.Fprintf(stdout, "\nComparing first %d predictions with actual digits:\n", min(cfg.Preview, len(result.Predictions)))
		for i := 0; i < cfg.Preview && i < len(result.Predictions); i++ {
			fmt.Fprintf(stdout, "Sample %d: Predicted %d, Actual %.0f\n", i, result.Predictions[i], ds.Labels[i])
		}

		var err error
		if accuracy, err = metrics.Accuracy(result.Predictions, ds.Labels); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nFinal Prediction Accuracy: %.2f%%\n\n", accuracy)

		report, err := metrics.ErrorLog(result.Predictions, ds.Labels, cfg.MaxErrorsLogged)
		if err != nil {
			return err
		}
		_, err = report.WriteTo(stdout)
		return err
	})
	if err != nil {
		return fail("scoring", err)
	}

	fmt.Fprintln(stdout, "\n=== Performance Measurements ===")
	if _, err := timings.WriteTo(stdout); err != nil {
		return fail("report", err)
	}
	fmt.Fprintf(stdout, "\nFinal Prediction Accuracy: %.2f%%\n", accuracy)
	return nil
}

func exportBundle(path string, net *nn.Network, seed int) error {
	//nolint:gosec // G304: export path is provided by the operator.
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := loader.WriteBundle(f, net, map[string]string{"seed": strconv.Itoa(seed)}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
