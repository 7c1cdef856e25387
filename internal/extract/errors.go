package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is matched by every *FetchError.
	ErrFetch = errors.New("could not fetch job page")
	// ErrNoJobData is matched by every *NoJobDataFoundError.
	ErrNoJobData = errors.New("no job data found")
)

// FetchError means the page could not be retrieved: bad URL, network failure, non-2xx status.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch job page %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// NoJobDataFoundError means the page was retrieved but no strategy found a title or description.
type NoJobDataFoundError struct {
	URL      string
	Strategy string
}

func (e *NoJobDataFoundError) Error() string {
	return fmt.Sprintf("no job data found at %s (strategy %s)", e.URL, e.Strategy)
}

func (e *NoJobDataFoundError) Is(target error) bool {
	return target == ErrNoJobData
}
