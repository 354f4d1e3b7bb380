package errs

import (
	"errors"
	"fmt"
)

// InputError marks a malformed or unreadable source document: broken xref,
// unsupported encryption, zero-area page geometry. Recovered per document.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// RenderError marks a failed render/encode attempt on a single page.
// Recovered locally by the fallback encoder.
type RenderError struct {
	Backend string
	Page    int
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: backend %s page %d: %v", e.Backend, e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ResourceError marks a failure of the output sink (directory not creatable,
// disk full). Not locally recoverable; aborts the run.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ConfigError marks an invalid configuration value. Surfaced before any
// processing begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// IsInput reports whether err wraps an InputError.
func IsInput(err error) bool {
	var e *InputError
	return errors.As(err, &e)
}

// IsRender reports whether err wraps a RenderError.
func IsRender(err error) bool {
	var e *RenderError
	return errors.As(err, &e)
}

// IsResource reports whether err wraps a ResourceError.
func IsResource(err error) bool {
	var e *ResourceError
	return errors.As(err, &e)
}

// IsConfig reports whether err wraps a ConfigError.
func IsConfig(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
