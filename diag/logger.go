package diag

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the subset of zerolog levels the core cares about.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the wire shape of emitted log lines.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config configures a Logger. The zero Config yields info-level JSON to
// stderr.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger is the core's diagnostic sink. It never panics and never aborts a
// caller — every method here is a side-effecting write, nothing more.
type Logger struct {
	z zerolog.Logger
}

// NewLogger builds a Logger from cfg.
func NewLogger(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	var out io.Writer = cfg.Output
	if cfg.Format == FormatText {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339, NoColor: false}
	}
	z := zerolog.New(out).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}
	return &Logger{z: z}
}

// Nop returns a Logger that discards everything — the default used when the
// caller doesn't care to configure one (construction helpers fall back to
// this rather than nil-checking diag.Logger everywhere).
func Nop() *Logger {
	return &Logger{z: zerolog.New(io.Discard)}
}

// WithField returns a child Logger carrying one extra structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{z: l.z.With().Interface(key, value).Logger()}
}

// UnreachableNode warns that a node has no path to any PPO (SPEC_FULL.md §7
// "Unreachable logic" — harmless, yields untestable faults).
func (l *Logger) UnreachableNode(nodeID int) {
	l.z.Warn().Int("node_id", nodeID).Msg("node has no path to any PPO; its faults will be untestable")
}

// SATUnknown records that the solver returned Unknown for a fault (resource
// limit hit; never retried inside the core).
func (l *Logger) SATUnknown(faultID int) {
	l.z.Warn().Int("fault_id", faultID).Msg("SAT solver returned Unknown")
}

// PropagationOverflow records that a condition generator hit its iteration
// cap before covering every PPO.
func (l *Logger) PropagationOverflow(faultID int, uncovered int) {
	l.z.Warn().Int("fault_id", faultID).Int("uncovered_ppos", uncovered).Msg("propagation condition generator overflowed")
}

// Info logs a free-form informational message.
func (l *Logger) Info(msg string) { l.z.Info().Msg(msg) }

// Debug logs a free-form debug message.
func (l *Logger) Debug(msg string) { l.z.Debug().Msg(msg) }
