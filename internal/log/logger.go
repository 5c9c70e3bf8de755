// Package log is the application's logging facade. It wraps logrus with a
// small option-based constructor, a package-level logger and helpers that
// turn application errors into structured fields.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"wordcounter/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured entries through logrus.
type Logger struct {
	base *logrus.Logger
	file *os.File
	json bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends entries to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.json = true
	}
}

// WithFile appends entries to path in addition to stdout.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", path, err)
			return
		}
		l.file = f
		l.base.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// NewLogger creates a logger writing text entries to stdout unless
// options say otherwise.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{base: base}
	for _, opt := range opts {
		opt(l)
	}

	if l.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			DisableQuote:    true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	prev := logger
	logger = NewLogger(opts...)
	if prev != nil {
		prev.Close()
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

// SetDebug toggles debug entries for every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// Entry is a pending log line with fields attached.
type Entry struct {
	l      *Logger
	fields logrus.Fields
}

// With returns an entry carrying the given fields.
func (l *Logger) With(fields ...Field) *Entry {
	return (&Entry{l: l, fields: logrus.Fields{}}).With(fields...)
}

// With adds fields to a copy of the entry.
func (e *Entry) With(fields ...Field) *Entry {
	next := make(logrus.Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		next[k] = v
	}
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			next[f.Key] = err.Error()
			continue
		}
		next[f.Key] = f.Value
	}
	return &Entry{l: e.l, fields: next}
}

func (e *Entry) log(level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !isDebug {
		return
	}
	fields := make(logrus.Fields, len(e.fields)+1)
	for k, v := range e.fields {
		fields[k] = v
	}
	fields["caller"] = caller()
	e.l.base.WithFields(fields).Log(level, msg)
}

func (e *Entry) Info(msg string)  { e.log(logrus.InfoLevel, msg) }
func (e *Entry) Warn(msg string)  { e.log(logrus.WarnLevel, msg) }
func (e *Entry) Error(msg string) { e.log(logrus.ErrorLevel, msg) }
func (e *Entry) Debug(msg string) { e.log(logrus.DebugLevel, msg) }

func (e *Entry) Infof(format string, args ...interface{}) {
	e.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (e *Entry) Warnf(format string, args ...interface{}) {
	e.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (e *Entry) Errorf(format string, args ...interface{}) {
	e.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(msg string)  { l.With().Info(msg) }
func (l *Logger) Warn(msg string)  { l.With().Warn(msg) }
func (l *Logger) Error(msg string) { l.With().Error(msg) }
func (l *Logger) Debug(msg string) { l.With().Debug(msg) }

func (l *Logger) Infof(format string, args ...interface{})  { l.With().Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.With().Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.With().Errorf(format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.With().Debugf(format, args...) }

// Info logs through the package-level logger.
func Info(msg string) { logger.With().Info(msg) }

// Infof logs a formatted message through the package-level logger.
func Infof(format string, args ...interface{}) { logger.With().Infof(format, args...) }

func Warn(msg string)                          { logger.With().Warn(msg) }
func Warnf(format string, args ...interface{}) { logger.With().Warnf(format, args...) }

func Error(msg string)                          { logger.With().Error(msg) }
func Errorf(format string, args ...interface{}) { logger.With().Errorf(format, args...) }

func Debug(msg string)                          { logger.With().Debug(msg) }
func Debugf(format string, args ...interface{}) { logger.With().Debugf(format, args...) }

// LogWithFields starts an entry on the package-level logger.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError starts an entry describing err: its message, kind and
// whatever context the error type carries.
func LogWithError(err error) *Entry {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var countErr *errors.CountError
	if errors.As(err, &countErr) {
		if countErr.Path() != "" {
			fields = append(fields, F("path", countErr.Path()))
		}
		if countErr.Format() != "" {
			fields = append(fields, F("format", countErr.Format()))
		}
	}

	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}

	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// caller reports the first frame outside this file and logrus.
func caller() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasSuffix(frame.File, "internal/log/logger.go") &&
			!strings.Contains(frame.File, "sirupsen/logrus") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			return "unknown"
		}
	}
}
