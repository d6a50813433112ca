// Package main is the entry point for the rangesel script runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/rangesel/internal/config"
	"github.com/dshills/rangesel/internal/logging"
	"github.com/dshills/rangesel/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// defaultConfigPath is read when -config is not given. It may be absent.
const defaultConfigPath = "rangesel.toml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath  string
	logLevel    string
	logFormat   string
	watch       bool
	keepGoing   bool
	showVersion bool
	showHelp    bool
	scripts     []string
	set         map[string]bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if opts.showHelp {
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "rangesel %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}
	if len(opts.scripts) == 0 {
		fmt.Fprintf(stderr, "Error: no scripts given\n")
		return 1
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	r := &runner{cfg: cfg, logger: logger, out: stdout}

	failed := false
	for _, path := range opts.scripts {
		if err := r.replay(ctx, path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			failed = true
		}
	}

	if opts.watch {
		logger.Info("watching %d scripts", len(opts.scripts))
		err := watcher.Watch(ctx, opts.scripts, cfg.Watch.Debounce, func(ev watcher.Event) {
			if !shouldReplay(ev) {
				return
			}
			logger.WithField("op", ev.Op).Debug("%s changed", ev.Path)
			if err := r.replay(ctx, ev.Path); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: watching scripts: %v\n", err)
			return 1
		}
		return 0
	}

	if failed {
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("rangesel", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", defaultConfigPath, "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, json)")
	fs.BoolVar(&opts.watch, "watch", false, "Replay scripts whenever they change")
	fs.BoolVar(&opts.watch, "w", false, "Replay scripts whenever they change (shorthand)")
	fs.BoolVar(&opts.keepGoing, "keep-going", false, "Skip failing steps instead of stopping")
	fs.BoolVar(&opts.keepGoing, "k", false, "Skip failing steps instead of stopping (shorthand)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "rangesel - multi-range selection script runner\n\n")
		fmt.Fprintf(stderr, "Usage: rangesel [options] script.yaml...\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  rangesel edit.yaml              Replay a script\n")
		fmt.Fprintf(stderr, "  rangesel -k a.yaml b.yaml       Replay scripts, skipping failing steps\n")
		fmt.Fprintf(stderr, "  rangesel -w edit.yaml           Replay on every save\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.showHelp {
		fs.Usage()
	}

	opts.scripts = fs.Args()
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// loadConfig merges the config file and environment, then applies flags
// that were given explicitly. Only the default config file may be absent.
func loadConfig(opts options) (config.Config, error) {
	if opts.set["config"] || opts.set["c"] {
		if _, err := os.Stat(opts.configPath); err != nil {
			return config.Config{}, fmt.Errorf("config file: %w", err)
		}
	}

	cfg, err := config.Load(config.WithFile(opts.configPath))
	if err != nil {
		return config.Config{}, err
	}

	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.set["log-format"] {
		cfg.Logging.Format = opts.logFormat
	}
	if opts.set["keep-going"] || opts.set["k"] {
		cfg.Script.StopOnError = !opts.keepGoing
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
