package models

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrCancelled is returned when a comparison is stopped before producing a digest
var ErrCancelled = errors.New("comparison cancelled")

// Error kinds reported by ErrorKind
const (
	KindValidation    = "validation"
	KindNotFound      = "not_found"
	KindIO            = "io"
	KindConfiguration = "configuration"
	KindCancelled     = "cancelled"
	KindUnknown       = "unknown"
)

// ValidationError represents a bad input combination or invalid setting
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NotFoundError is returned when a path vanished before or during a comparison
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "path does not exist: " + e.Path
}

// IOError wraps a read failure on a path
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when no usable hash algorithm is available
type ConfigurationError struct {
	Message   string
	Available []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Available) == 0 {
		return e.Message
	}
	return e.Message + " (available: " + strings.Join(e.Available, ", ") + ")"
}

// ErrorKind classifies err into one of the Kind* constants
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		validation *ValidationError
		notFound   *NotFoundError
		ioErr      *IOError
		cfgErr     *ConfigurationError
	)

	switch {
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &ioErr):
		return KindIO
	default:
		return KindUnknown
	}
}

// WrapPathError maps a filesystem error on path onto the comparison error
// taxonomy: cancellation, NotFoundError or IOError.
func WrapPathError(op, path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCancelled
	case errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Path: path}
	default:
		return &IOError{Op: op, Path: path, Err: err}
	}
}
