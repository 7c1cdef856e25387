package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Run statuses
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusDegraded  = "degraded"
	StatusFailed    = "failed"
)

// IsTerminalStatus reports whether a run with this status has finished.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusSucceeded, StatusDegraded, StatusFailed:
		return true
	}
	return false
}

// Run represents an optimization run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	JobURL       string     `json:"job_url"`
	Company      string     `json:"company"`
	RoleTitle    string     `json:"role_title"`
	Status       string     `json:"status"`
	Model        string     `json:"model,omitempty"`
	Attempts     int        `json:"attempts"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	Result       []byte     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RunInput describes a run being started
type RunInput struct {
	JobURL    string
	Company   string
	RoleTitle string
}

// RunCompletion is the final state written by CompleteRun
type RunCompletion struct {
	Status   string
	Model    string
	Attempts int
	Error    string
	// Result is marshalled to JSON when non-nil.
	Result any
}

// JobPosting is a stored job posting row
type JobPosting struct {
	ID             uuid.UUID `json:"id"`
	URL            string    `json:"url"`
	Site           string    `json:"site"`
	Company        string    `json:"company"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Seniority      string    `json:"seniority"`
	Description    string    `json:"description"`
	ContentHash    string    `json:"content_hash"`
	FetchedAt      time.Time `json:"fetched_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Posting converts the row back to the extractor's type.
func (p *JobPosting) Posting() *types.JobPosting {
	return &types.JobPosting{
		Site:           p.Site,
		URL:            p.URL,
		Company:        p.Company,
		Title:          p.Title,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		Seniority:      p.Seniority,
		Description:    p.Description,
	}
}

// HashJobContent generates a SHA-256 hash of the posting description
func HashJobContent(text string) string {
	return ingestion.ContentHash(text)
}
