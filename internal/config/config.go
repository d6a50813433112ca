package config

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/dshills/rangesel/internal/config/loader"
)

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultMaxEntries  = 1000
	DefaultStopOnError = true
	DefaultDebounce    = 100 * time.Millisecond

	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "RANGESEL_"
)

// Config holds the merged rangesel settings.
// Config is a plain value; mutating a copy does not affect other copies.
type Config struct {
	Logging LoggingConfig
	History HistoryConfig
	Script  ScriptConfig
	Watch   WatchConfig
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string

	// Format is the log encoding ("text", "json").
	Format string
}

// HistoryConfig controls the snapshot history.
type HistoryConfig struct {
	// MaxEntries is the number of snapshots kept before the oldest is dropped.
	MaxEntries int
}

// ScriptConfig controls script replay.
type ScriptConfig struct {
	// StopOnError stops a replay at the first failing step.
	// When false the failure is recorded and the step is skipped.
	StopOnError bool
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after a change before replaying.
	Debounce time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		History: HistoryConfig{MaxEntries: DefaultMaxEntries},
		Script:  ScriptConfig{StopOnError: DefaultStopOnError},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
	}
}

// loadOptions configures Load.
type loadOptions struct {
	path    string
	fs      loader.FileSystem
	environ func() []string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithFile sets the TOML file to load. A missing file is not an error.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithFileSystem sets the file system the config file is read from.
func WithFileSystem(fs loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnviron sets the environment source, os.Environ by default.
func WithEnviron(environ func() []string) LoadOption {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load merges the defaults, the config file and the environment.
func Load(opts ...LoadOption) (Config, error) {
	o := loadOptions{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	var loaders []loader.Loader
	if o.path != "" {
		loaders = append(loaders, loader.NewTOMLLoaderWithFS(o.fs, o.path))
	}
	if o.environ != nil {
		loaders = append(loaders, loader.NewEnvLoaderWithEnviron(EnvPrefix, o.environ))
	} else {
		loaders = append(loaders, loader.NewEnvLoader(EnvPrefix))
	}

	merged := make(map[string]any)
	for _, l := range loaders {
		data, err := l.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading config: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	return FromMap(merged)
}

// setting applies one value to a Config.
type setting func(c *Config, path string, v any) error

var settings = map[string]setting{
	"logging.level": func(c *Config, path string, v any) (err error) {
		c.Logging.Level, err = asString(path, v)
		return err
	},
	"logging.format": func(c *Config, path string, v any) (err error) {
		c.Logging.Format, err = asString(path, v)
		return err
	},
	"history.maxEntries": func(c *Config, path string, v any) (err error) {
		c.History.MaxEntries, err = asInt(path, v)
		return err
	},
	"script.stopOnError": func(c *Config, path string, v any) (err error) {
		c.Script.StopOnError, err = asBool(path, v)
		return err
	},
	"watch.debounce": func(c *Config, path string, v any) (err error) {
		c.Watch.Debounce, err = asDuration(path, v)
		return err
	},
}

// FromMap applies a nested settings map on top of the defaults and validates
// the result. Unknown settings are rejected.
func FromMap(data map[string]any) (Config, error) {
	c := Default()

	values := make(map[string]any)
	flatten("", data, values)
	paths := make([]string, 0, len(values))
	for path := range values {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		apply, ok := settings[path]
		if !ok {
			return Config{}, &ValidationError{
				Path:    path,
				Message: "unknown setting",
				Value:   values[path],
				Code:    ErrCodeUnknownSetting,
			}
		}
		if err := apply(&c, path, values[path]); err != nil {
			return Config{}, err
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every setting against its allowed values.
func (c Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}
	if !slices.Contains([]string{"text", "json"}, c.Logging.Format) {
		return &ValidationError{
			Path:    "logging.format",
			Message: "must be one of text, json",
			Value:   c.Logging.Format,
			Code:    ErrCodeInvalidEnum,
		}
	}
	if c.History.MaxEntries < 1 {
		return &ValidationError{
			Path:    "history.maxEntries",
			Message: "must be at least 1",
			Value:   c.History.MaxEntries,
			Code:    ErrCodeOutOfRange,
		}
	}
	if c.Watch.Debounce < 0 {
		return &ValidationError{
			Path:    "watch.debounce",
			Message: "must not be negative",
			Value:   c.Watch.Debounce,
			Code:    ErrCodeOutOfRange,
		}
	}
	return nil
}

// flatten collects the leaves of a nested map under dot-separated paths.
func flatten(prefix string, data map[string]any, out map[string]any) {
	for key, v := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if m, ok := v.(map[string]any); ok {
			flatten(path, m, out)
			continue
		}
		out[path] = v
	}
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
		return 0, &ValidationError{Path: path, Message: "integer out of range", Value: n, Code: ErrCodeOutOfRange}
	case float64:
		if n < math.MinInt || n >= math.MaxInt {
			return 0, &ValidationError{Path: path, Message: "integer out of range", Value: n, Code: ErrCodeOutOfRange}
		}
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "integer", Actual: fmt.Sprintf("%T", v)}
}

func asBool(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: fmt.Sprintf("%T", v)}
	}
	return b, nil
}

// asDuration accepts duration strings ("250ms") and integer milliseconds.
func asDuration(path string, v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: err.Error(), Value: d, Code: ErrCodeOutOfRange}
		}
		return parsed, nil
	case int64:
		return time.Duration(d) * time.Millisecond, nil
	case int:
		return time.Duration(d) * time.Millisecond, nil
	}
	return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("%T", v)}
}
