package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config configures a LogrusLogger.
type Config struct {
	// Level is the minimum level emitted.
	Level LogLevel
	// Format is FormatText (default) or FormatJSON.
	Format string
	// Output receives log lines. Ignored when OutputPath is set;
	// defaults to stderr.
	Output io.Writer
	// OutputPath appends log lines to a file, creating parent
	// directories as needed.
	OutputPath string
	// Fields are attached to every entry.
	Fields map[string]any
}

// LogrusLogger implements Logger on top of a logrus entry.
type LogrusLogger struct {
	entry  *logrus.Entry
	closer io.Closer
}

// New creates a LogrusLogger from cfg.
func New(cfg Config) (*LogrusLogger, error) {
	base := logrus.New()
	base.SetLevel(toLogrusLevel(cfg.Level))

	switch cfg.Format {
	case "", FormatText:
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	case FormatJSON:
		base.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var closer io.Closer
	switch {
	case cfg.OutputPath != "":
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0755); err != nil {
			return nil, fmt.Errorf(
				"failed to create log directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			cfg.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		base.SetOutput(file)
		closer = file
	case cfg.Output != nil:
		base.SetOutput(cfg.Output)
	default:
		base.SetOutput(os.Stderr)
	}

	return &LogrusLogger{
		entry:  base.WithFields(logrus.Fields(cfg.Fields)),
		closer: closer,
	}, nil
}

func toLogrusLevel(l LogLevel) logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func toLogrusFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// Info logs an informational message.
func (l *LogrusLogger) Info(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Info(msg)
}

// Warn logs a warning message.
func (l *LogrusLogger) Warn(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Warn(msg)
}

// Error logs an error message.
func (l *LogrusLogger) Error(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Error(msg)
}

// Debug logs a debug message.
func (l *LogrusLogger) Debug(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Debug(msg)
}

// WithFields returns a child logger sharing the same output.
// Closing the child is a no-op.
func (l *LogrusLogger) WithFields(fields ...Field) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(toLogrusFields(fields))}
}

// Close closes the log file if the logger owns one.
func (l *LogrusLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}
