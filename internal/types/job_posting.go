// Package types provides type definitions for structured data shared by the extractor, dispatcher and CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Site tags identify which extraction strategy produced a JobPosting.
const (
	SiteMastercard = "mastercard"
	SiteGreenhouse = "greenhouse"
	SiteLever      = "lever"
	SiteNetflix    = "netflix"
	SiteWorkday    = "workday"
	SiteLinkedIn   = "linkedin"
	SiteAshby      = "ashby"
	SiteGeneric    = "generic"
	SiteManual     = "manual" // pasted job description, no page fetched
)

// JobPosting is the normalized result of scraping a job page.
type JobPosting struct {
	Site           string `json:"site"`
	URL            string `json:"url,omitempty"`
	Company        string `json:"company,omitempty"`
	Title          string `json:"title,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	Seniority      string `json:"seniority,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Valid reports whether the posting carries a title or a description.
// Postings failing this check are treated as failed extractions.
func (p *JobPosting) Valid() bool {
	if p == nil {
		return false
	}
	return strings.TrimSpace(p.Title) != "" || strings.TrimSpace(p.Description) != ""
}

// Text returns the posting as a single block suitable for prompt construction.
func (p *JobPosting) Text() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	writeField := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	writeField("Title", p.Title)
	writeField("Company", p.Company)
	writeField("Location", p.Location)
	writeField("Employment Type", p.EmploymentType)
	writeField("Seniority", p.Seniority)
	if p.Description != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Description)
	}
	return strings.TrimSpace(sb.String())
}
