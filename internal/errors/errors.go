// Package errors provides standardized error handling for the word counter.
// It defines the closed set of error kinds a count attempt can fail with,
// the error types carrying them, and helpers for creating, wrapping and
// matching errors across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// UnsupportedFormatMessage is shown for any extension outside txt, docx and pdf.
const UnsupportedFormatMessage = "Непідтримуваний формат файлу"

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Count error kinds
	UnsupportedFormat
	IOError
	ArchiveError
	ParseError
	ExtractionError
	MissingDocumentBody
	// Config error kinds
	InvalidConfig
)

var kindNames = map[ErrorKind]string{
	Unknown:             "unknown",
	UnsupportedFormat:   "unsupported_format",
	IOError:             "io",
	ArchiveError:        "archive",
	ParseError:          "parse",
	ExtractionError:     "extraction",
	MissingDocumentBody: "missing_document_body",
	InvalidConfig:       "invalid_config",
}

// String returns a stable name for the kind, used in log fields.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// CountError is returned by a failed count attempt. The message is what the
// user sees; path and format are kept for logging.
type CountError struct {
	ApplicationError
	path   string
	format string
}

// NewCountError creates a new count error
func NewCountError(msg, path, format string, kind ErrorKind, err error) *CountError {
	return &CountError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path:   path,
		format: format,
	}
}

// Path returns the file path the attempt was made on
func (e *CountError) Path() string {
	return e.path
}

// Format returns the detected format (lowercase extension)
func (e *CountError) Format() string {
	return e.format
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first kinded error in err's chain that is
// not Unknown. Errors from outside the package report Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsKind checks if err carries the given kind anywhere in its chain
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsUnsupportedFormat checks if the error is an unsupported format error
func IsUnsupportedFormat(err error) bool {
	return IsKind(err, UnsupportedFormat)
}

// IsMissingDocumentBody checks if a DOCX package had no main document part
func IsMissingDocumentBody(err error) bool {
	return IsKind(err, MissingDocumentBody)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
