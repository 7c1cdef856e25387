// Package rendering produces PDF-safe plain text from optimized resumes.
package rendering

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// RenderText lays out a resume as plain text sections, every field passed through CleanPDFText.
func RenderText(r *types.OptimizedResume) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	line := func(s string) {
		if s = strings.TrimSpace(CleanPDFText(s)); s != "" {
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
	}
	heading := func(s string) {
		sb.WriteByte('\n')
		sb.WriteString(s)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("=", len(s)))
		sb.WriteByte('\n')
	}

	line(r.FullName)
	line(r.ContactInfo)

	if strings.TrimSpace(r.ProfessionalSummary) != "" {
		heading("SUMMARY")
		line(r.ProfessionalSummary)
	}

	if len(r.Skills) > 0 {
		heading("SKILLS")
		skills := make([]string, 0, len(r.Skills))
		for _, s := range r.Skills {
			if s = strings.TrimSpace(CleanPDFText(s)); s != "" {
				skills = append(skills, s)
			}
		}
		line(strings.Join(skills, ", "))
	}

	if len(r.Experience) > 0 {
		heading("EXPERIENCE")
		for i, e := range r.Experience {
			if i > 0 {
				sb.WriteByte('\n')
			}
			line(joinNonEmpty(" | ", e.Title, e.Company, e.Dates))
			for _, a := range e.Achievements {
				line("- " + a)
			}
		}
	}

	if len(r.Education) > 0 {
		heading("EDUCATION")
		for _, e := range r.Education {
			line(joinNonEmpty(" | ", e.Degree, e.Institution, e.Dates))
			line(e.Details)
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
