package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validResume() *OptimizedResume {
	return &OptimizedResume{
		FullName:            "Jose Maria",
		ContactInfo:         "jose@example.com",
		ProfessionalSummary: "Backend engineer.",
		Skills:              []string{"Go", "PostgreSQL"},
		Experience: []Experience{
			{Title: "Engineer", Company: "Acme", Dates: "2020-2024", Achievements: []string{"Shipped things"}},
		},
		Education: []Education{
			{Degree: "BS Computer Science", Institution: "State University", Dates: "2016-2020"},
		},
	}
}

func TestOptimizedResume_Validate(t *testing.T) {
	assert.NoError(t, validResume().Validate())
}

func TestOptimizedResume_ValidateEmptySections(t *testing.T) {
	r := validResume()
	r.Education = []Education{}
	r.Experience = []Experience{}
	assert.NoError(t, r.Validate())
}

func TestOptimizedResume_ValidateMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *OptimizedResume)
	}{
		{"missing name", func(r *OptimizedResume) { r.FullName = "" }},
		{"missing summary", func(r *OptimizedResume) { r.ProfessionalSummary = "" }},
		{"nil skills", func(r *OptimizedResume) { r.Skills = nil }},
		{"empty skill", func(r *OptimizedResume) { r.Skills = []string{"Go", ""} }},
		{"empty skills list", func(r *OptimizedResume) { r.Skills = []string{} }},
		{"experience without company", func(r *OptimizedResume) { r.Experience[0].Company = "" }},
		{"education without degree", func(r *OptimizedResume) { r.Education[0].Degree = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResume()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}
