package logging

import "github.com/hashicorp/go-multierror"

// MultiLogger writes every entry to each of its sinks, for example
// the console and a log file.
type MultiLogger struct {
	sinks []Logger
}

// NewMultiLogger combines sinks. Nil sinks are dropped.
func NewMultiLogger(sinks ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

func (m *MultiLogger) Info(msg string, fields ...Field) {
	for _, s := range m.sinks {
		s.Info(msg, fields...)
	}
}

func (m *MultiLogger) Warn(msg string, fields ...Field) {
	for _, s := range m.sinks {
		s.Warn(msg, fields...)
	}
}

func (m *MultiLogger) Error(msg string, fields ...Field) {
	for _, s := range m.sinks {
		s.Error(msg, fields...)
	}
}

func (m *MultiLogger) Debug(msg string, fields ...Field) {
	for _, s := range m.sinks {
		s.Debug(msg, fields...)
	}
}

// WithFields applies fields to every sink.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	child := &MultiLogger{sinks: make([]Logger, len(m.sinks))}
	for i, s := range m.sinks {
		child.sinks[i] = s.WithFields(fields...)
	}
	return child
}

// Close closes every sink and reports all failures together.
func (m *MultiLogger) Close() error {
	var errs *multierror.Error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
