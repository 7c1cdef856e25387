package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/llm"
)

// Outcome classifies one attempt.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeTransient Outcome = "transient"
	OutcomeTerminal  Outcome = "terminal"
	OutcomeMalformed Outcome = "malformed"
)

// Attempt records one call to one model.
type Attempt struct {
	ID      uuid.UUID
	Model   llm.ModelSpec
	Number  int // 1-based within the model's budget
	Outcome Outcome
	Err     error
	Latency time.Duration
}

// attemptResult is what a single try hands back to the loop: either text or a classified failure.
type attemptResult struct {
	text    string
	outcome Outcome
	err     error
}

func (r attemptResult) retryable() bool {
	return r.outcome == OutcomeTransient || r.outcome == OutcomeMalformed
}

// classify maps a backend or validation error onto an outcome.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case llm.IsTerminal(err):
		return OutcomeTerminal
	case llm.IsMalformed(err):
		return OutcomeMalformed
	default:
		return OutcomeTransient
	}
}
