package dispatch

import (
	"errors"
	"fmt"
)

// ErrAllModelsExhausted is matched by every *ExhaustedError.
var ErrAllModelsExhausted = errors.New("all models exhausted")

// DegradedMessage is the text returned to callers when no model produced a usable result.
const DegradedMessage = "The resume optimization service is temporarily degraded. Please try again in a few minutes."

// ExhaustedError reports that every model used up its attempt budget.
// Cause is the last attempt's error, or the context error when the caller gave up first.
type ExhaustedError struct {
	Attempts int
	Models   int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("all %d models exhausted after %d attempts: %v", e.Models, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("all %d models exhausted after %d attempts", e.Models, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrAllModelsExhausted) true.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllModelsExhausted
}
