// Package logger provides structured logging and run metrics for daily60s.
//
// Logging is backed by zap. Entries are emitted as JSON (one object per line)
// or in zap's console layout, and every entry can carry arbitrary structured
// fields. A package-level default logger serves the convenience functions.
//
// Metrics tracking includes counters (incrementing values), gauges (point-in-time values),
// and timings (duration measurements) with automatic statistical aggregation.
//
// Example usage:
//
//	log := logger.New(logger.LevelInfo, logger.FormatJSON, os.Stderr)
//	log.Info("feed fetched", logger.Fields{
//	    "feed":  "digest",
//	    "items": 15,
//	})
//
//	log.Error("webhook rejected message", logger.Fields{
//	    "kind": "history",
//	}, err)
//
//	metrics := logger.DefaultMetrics()
//	metrics.IncrCounter("messages.sent")
//	metrics.RecordTiming("fetch.digest", duration)
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Output formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ParseLevel maps a config string ("debug", "INFO", ...) to a Level.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
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

// Logger provides structured logging
type Logger struct {
	zl *zap.Logger
}

// Fields represents structured log fields
type Fields map[string]interface{}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, FormatJSON, os.Stdout)
}

// New creates a new logger with the specified minimum log level, output format
// and destination. Messages below the minimum level are discarded. The format
// is matched case-insensitively; anything but "console" yields JSON.
func New(level Level, format string, output io.Writer) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	enc := zapcore.NewJSONEncoder(encCfg)
	if strings.EqualFold(strings.TrimSpace(format), FormatConsole) {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(output), zap.NewAtomicLevelAt(level.zapLevel()))

	return &Logger{zl: zap.New(core)}
}

// SetDefault sets the package-level logger returned by Default. Components
// constructed without a logger fall back to it.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// With returns a child logger that attaches fields to every entry.
func (l *Logger) With(fields Fields) *Logger {
	return &Logger{zl: l.zl.With(toZap(fields)...)}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}

	switch level {
	case LevelDebug:
		l.zl.Debug(message, zf...)
	case LevelWarn:
		l.zl.Warn(message, zf...)
	case LevelError:
		l.zl.Error(message, zf...)
	default:
		l.zl.Info(message, zf...)
	}
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Metrics tracks operational metrics including counters, gauges, and timings.
// All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

var defaultMetrics *Metrics

func init() {
	defaultMetrics = NewMetrics()
}

// NewMetrics creates a new metrics tracker with empty counters, gauges, and timings.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge sets a gauge to the specified value, overwriting any previous value.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming records a duration measurement.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// GetSnapshot returns a snapshot of all metrics as a map containing:
//   - "counters": map of counter names to values
//   - "gauges": map of gauge names to values
//   - "timings": map of timing names to statistics (count, total, average, min, max)
//
// The snapshot is a deep copy, safe to use concurrently with metric updates.
func (m *Metrics) GetSnapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]interface{})

	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}
	snapshot["counters"] = counters

	gauges := make(map[string]float64, len(m.gauges))
	for k, v := range m.gauges {
		gauges[k] = v
	}
	snapshot["gauges"] = gauges

	timings := make(map[string]map[string]interface{})
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}

		var total time.Duration
		min := durations[0]
		max := durations[0]

		for _, d := range durations {
			total += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}

		timings[name] = map[string]interface{}{
			"count":   len(durations),
			"total":   total.String(),
			"average": (total / time.Duration(len(durations))).String(),
			"min":     min.String(),
			"max":     max.String(),
		}
	}
	snapshot["timings"] = timings

	return snapshot
}

// DefaultMetrics returns the package-level metrics tracker.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}

// GetMetricsSnapshot returns a snapshot of all metrics from the default tracker.
func GetMetricsSnapshot() map[string]interface{} {
	return defaultMetrics.GetSnapshot()
}
