package optimize

// Progress steps
const (
	StepJobPosting      = "job_posting"
	StepPrompt          = "prompt"
	StepDispatch        = "dispatch"
	StepOptimizedResume = "optimized_resume"
)

// Progress categories
const (
	CategoryIngestion  = "ingestion"
	CategoryGeneration = "generation"
)

// ProgressEvent represents a progress update during an optimization run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when optimization progress occurs
type ProgressCallback func(event ProgressEvent)
