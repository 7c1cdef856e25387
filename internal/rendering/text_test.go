package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-optimizer/internal/types"
)

func TestRenderText(t *testing.T) {
	resume := &types.OptimizedResume{
		FullName:            "José María",
		ContactInfo:         "abidshariﬀ009@gmail.com | (716) 970-9249",
		ProfessionalSummary: "Backend engineer — ten years.",
		Skills:              []string{"Go", "PostgreSQL", " "},
		Experience: []types.Experience{
			{Title: "Senior Engineer", Company: "Acme", Dates: "2020–2024", Achievements: []string{"Cut latency 40%"}},
			{Title: "Engineer", Company: "Initech", Achievements: []string{"Built “billing”"}},
		},
		Education: []types.Education{
			{Degree: "BSc", Institution: "Université Laval", Dates: "2016", Details: ""},
		},
	}

	want := `Jose Maria
abidshariff009@gmail.com | (716) 970-9249

SUMMARY
=======
Backend engineer - ten years.

SKILLS
======
Go, PostgreSQL

EXPERIENCE
==========
Senior Engineer | Acme | 2020-2024
- Cut latency 40%

Engineer | Initech
- Built "billing"

EDUCATION
=========
BSc | Universite Laval | 2016
`
	assert.Equal(t, want, RenderText(resume))
}

func TestRenderText_Nil(t *testing.T) {
	assert.Equal(t, "", RenderText(nil))
}
