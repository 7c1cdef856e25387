package llm

import (
	"errors"
	"fmt"
)

// TransientBackendError is a failure worth retrying on the same model:
// throttling, timeouts, temporary unavailability.
type TransientBackendError struct {
	Model string
	Code  string
	Cause error
}

func (e *TransientBackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("transient error from %s (%s): %v", e.Model, e.Code, e.Cause)
	}
	return fmt.Sprintf("transient error from %s: %v", e.Model, e.Cause)
}

func (e *TransientBackendError) Unwrap() error {
	return e.Cause
}

// TerminalBackendError is a failure that will not go away by retrying the same model:
// access denied, validation errors, unknown model.
type TerminalBackendError struct {
	Model string
	Code  string
	Cause error
}

func (e *TerminalBackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("terminal error from %s (%s): %v", e.Model, e.Code, e.Cause)
	}
	return fmt.Sprintf("terminal error from %s: %v", e.Model, e.Cause)
}

func (e *TerminalBackendError) Unwrap() error {
	return e.Cause
}

// MalformedOutputError means the backend answered but the output could not be used.
type MalformedOutputError struct {
	Message string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Message)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}

// IsTerminal reports whether err is classified as terminal for its model.
func IsTerminal(err error) bool {
	var terminal *TerminalBackendError
	return errors.As(err, &terminal)
}

// IsMalformed reports whether err describes unusable model output.
func IsMalformed(err error) bool {
	var malformed *MalformedOutputError
	return errors.As(err, &malformed)
}
