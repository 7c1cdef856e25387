package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobPosting_Valid(t *testing.T) {
	tests := []struct {
		name    string
		posting *JobPosting
		want    bool
	}{
		{"nil posting", nil, false},
		{"empty posting", &JobPosting{Site: SiteGeneric}, false},
		{"whitespace only", &JobPosting{Title: "  ", Description: "\n"}, false},
		{"title only", &JobPosting{Title: "Backend Engineer"}, true},
		{"description only", &JobPosting{Description: "Build services."}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.posting.Valid())
		})
	}
}

func TestJobPosting_Text(t *testing.T) {
	posting := &JobPosting{
		Title:       "Senior Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Description: "Design APIs in Go.",
	}

	text := posting.Text()
	assert.Contains(t, text, "Title: Senior Backend Engineer")
	assert.Contains(t, text, "Company: Acme")
	assert.Contains(t, text, "Location: Remote")
	assert.NotContains(t, text, "Seniority")
	assert.Contains(t, text, "\n\nDesign APIs in Go.")
}

func TestJobPosting_TextNil(t *testing.T) {
	var posting *JobPosting
	assert.Empty(t, posting.Text())
}
