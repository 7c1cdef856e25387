// Package parsing turns raw model text into validated structured results.
package parsing

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ParseOptimizedResume extracts the JSON document from text, checks it against the
// resume schema and field rules, and normalizes the skills list.
// Every failure is a *llm.MalformedOutputError so the dispatcher retries it.
func ParseOptimizedResume(text string) (*types.OptimizedResume, error) {
	jsonText := llm.CleanJSONBlock(text)
	if jsonText == "" {
		return nil, malformed(&ParseError{Message: "empty response"})
	}

	if err := schemas.ValidateOptimizedResume(jsonText); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			first := schemaErr.Errors[0]
			return nil, malformed(&ValidationError{Message: first.Message, Field: first.Field, Cause: err})
		}
		return nil, malformed(&ParseError{Message: "schema check failed", Cause: err})
	}

	var resume types.OptimizedResume
	if err := json.Unmarshal([]byte(jsonText), &resume); err != nil {
		return nil, malformed(&ParseError{Message: "failed to parse JSON", Cause: err})
	}

	resume.Skills = NormalizeSkills(resume.Skills)
	trimResume(&resume)

	if err := resume.Validate(); err != nil {
		field := ""
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field = fieldErrs[0].Namespace()
		}
		return nil, malformed(&ValidationError{Message: "required field missing or empty", Field: field, Cause: err})
	}

	return &resume, nil
}

// ValidateOptimizedResume is ParseOptimizedResume shaped as a dispatcher validator.
func ValidateOptimizedResume(text string) error {
	_, err := ParseOptimizedResume(text)
	return err
}

func malformed(cause error) error {
	return &llm.MalformedOutputError{Message: "optimized resume rejected", Cause: cause}
}

func trimResume(r *types.OptimizedResume) {
	r.FullName = strings.TrimSpace(r.FullName)
	r.ContactInfo = strings.TrimSpace(r.ContactInfo)
	r.ProfessionalSummary = strings.TrimSpace(r.ProfessionalSummary)
	for i := range r.Experience {
		e := &r.Experience[i]
		e.Title = strings.TrimSpace(e.Title)
		e.Company = strings.TrimSpace(e.Company)
		e.Dates = strings.TrimSpace(e.Dates)
		e.Achievements = dropBlank(e.Achievements)
	}
	for i := range r.Education {
		e := &r.Education[i]
		e.Degree = strings.TrimSpace(e.Degree)
		e.Institution = strings.TrimSpace(e.Institution)
		e.Dates = strings.TrimSpace(e.Dates)
		e.Details = strings.TrimSpace(e.Details)
	}
}

func dropBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
