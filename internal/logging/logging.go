// Package logging provides the leveled logger used by the rangesel command
// and script runner. It is a thin layer over zap: messages are printf-style,
// context is attached with WithField and WithComponent.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level [debug,info,warn,error]: %q", s)
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Config configures the logger.
type Config struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string
	// Format is the encoding ("text", "json"). Defaults to text.
	Format string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
}

// Logger provides structured logging.
// A nil *Logger discards everything.
type Logger struct {
	zl *zap.Logger
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{zl: zap.NewNop()}

var textEncoderConfig = zapcore.EncoderConfig{
	MessageKey:       "msg",
	LevelKey:         "level",
	TimeKey:          "time",
	NameKey:          "logger",
	EncodeLevel:      zapcore.CapitalLevelEncoder,
	EncodeTime:       zapcore.ISO8601TimeEncoder,
	EncodeDuration:   zapcore.StringDurationEncoder,
	EncodeName:       zapcore.FullNameEncoder,
	ConsoleSeparator: " ",
}

var jsonEncoderConfig = zapcore.EncoderConfig{
	MessageKey:     "msg",
	LevelKey:       "level",
	TimeKey:        "time",
	NameKey:        "logger",
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeName:     zapcore.FullNameEncoder,
}

// New creates a logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	encoder, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	core := zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(output)),
		zap.NewAtomicLevelAt(level.zapLevel()),
	)
	return NewWithCore(core), nil
}

// NewWithCore creates a logger writing to an existing zap core.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zl: zap.New(core)}
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "text", "":
		return zapcore.NewConsoleEncoder(textEncoderConfig), nil
	case "json":
		return zapcore.NewJSONEncoder(jsonEncoderConfig), nil
	default:
		return nil, fmt.Errorf("unknown log format [text,json]: %q", format)
	}
}

func (l *Logger) base() *zap.Logger {
	if l == nil || l.zl == nil {
		return NullLogger.zl
	}
	return l.zl
}

// Zap returns the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	return l.base()
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{zl: l.base().With(zap.Any(key, value))}
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	return &Logger{zl: l.base().With(zf...)}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l.base().Core().Enabled(level.zapLevel())
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level Level, msg string, args ...any) {
	zl := l.base()
	ce := zl.Check(level.zapLevel(), "")
	if ce == nil {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	ce.Message = msg
	ce.Write()
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.base().Sync()
}
