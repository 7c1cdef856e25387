package optimize

import (
	"errors"

	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/extract"
)

var (
	// ErrEmptyResume is returned when the resume has no text after cleaning.
	ErrEmptyResume = errors.New("resume text is empty")
	// ErrEmptyJob is returned when the job text yields neither a title nor a description.
	ErrEmptyJob = errors.New("job description is empty")
	// ErrNoExtractor is returned for a job URL when the service has no extractor.
	ErrNoExtractor = errors.New("job URL given but no extractor configured")
)

// UserMessage maps an Optimize error to text that can be shown to an end user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dispatch.ErrAllModelsExhausted):
		return dispatch.DegradedMessage
	case errors.Is(err, extract.ErrFetch):
		return "We could not load that job posting. Check the link, or paste the job description instead."
	case errors.Is(err, extract.ErrNoJobData):
		return "We could not find job details on that page. Paste the job description instead."
	case errors.Is(err, ErrEmptyResume):
		return "Your resume appears to be empty."
	case errors.Is(err, ErrEmptyJob):
		return "The job description appears to be empty."
	default:
		return "Something went wrong while optimizing your resume. Please try again."
	}
}
