package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrUnknownWord       = errors.New("unknown word")
	ErrNoPrediction      = errors.New("cannot predict")
	ErrTooManyCandidates = errors.New("too many candidates")
	ErrConfig            = errors.New("configuration error")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrValidation        = errors.New("validation error")
)

// ConfigError describes a static-data defect found at startup
// (grammar, sound tables or reducer wiring).
type ConfigError struct {
	Component string
	Message   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// NewConfigError creates a ConfigError for the given component.
func NewConfigError(component, format string, args ...any) *ConfigError {
	return &ConfigError{Component: component, Message: fmt.Sprintf(format, args...)}
}
