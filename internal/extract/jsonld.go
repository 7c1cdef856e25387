package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
)

// StructuredPosting is the subset of a schema.org JobPosting the extractor reads.
type StructuredPosting struct {
	Title          string
	Description    string
	Company        string
	Location       string
	EmploymentType string
	URL            string
}

var employmentTypes = map[string]string{
	"FULL_TIME":  "Full-time",
	"PART_TIME":  "Part-time",
	"CONTRACTOR": "Contract",
	"CONTRACT":   "Contract",
	"TEMPORARY":  "Temporary",
	"INTERN":     "Internship",
	"INTERNSHIP": "Internship",
	"VOLUNTEER":  "Volunteer",
	"PER_DIEM":   "Per diem",
}

// StructuredPosting returns the first schema.org JobPosting embedded in the page, or nil.
func (p *Page) StructuredPosting() *StructuredPosting {
	if p.ldRead {
		return p.ld
	}
	p.ldRead = true

	p.Doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		if obj := findJobPosting(raw); obj != nil {
			p.ld = toJobPostingLD(obj)
			return false
		}
		return true
	})
	return p.ld
}

func findJobPosting(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if obj := findJobPosting(item); obj != nil {
				return obj
			}
		}
	case map[string]any:
		if hasType(t["@type"], "JobPosting") {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return findJobPosting(graph)
		}
	}
	return nil
}

func hasType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func toJobPostingLD(obj map[string]any) *StructuredPosting {
	ld := &StructuredPosting{
		Title:       ingestion.CleanInline(str(obj["title"])),
		Description: ingestion.Clean(str(obj["description"])),
		Company:     ingestion.CleanInline(nameOf(obj["hiringOrganization"])),
		Location:    ingestion.CleanInline(location(obj["jobLocation"])),
		URL:         strings.TrimSpace(str(obj["url"])),
	}
	if ld.Location == "" && strings.EqualFold(str(obj["jobLocationType"]), "TELECOMMUTE") {
		ld.Location = "Remote"
	}

	var labels []string
	for _, et := range strs(obj["employmentType"]) {
		key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(et), "-", "_"))
		if label, ok := employmentTypes[key]; ok {
			labels = append(labels, label)
		} else if et != "" {
			labels = append(labels, et)
		}
	}
	ld.EmploymentType = strings.Join(labels, ", ")
	return ld
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func strs(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func nameOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		return str(t["name"])
	}
	return ""
}

func location(v any) string {
	switch t := v.(type) {
	case []any:
		var parts []string
		for _, item := range t {
			if l := location(item); l != "" {
				parts = append(parts, l)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		addr, ok := t["address"].(map[string]any)
		if !ok {
			return nameOf(t)
		}
		var parts []string
		for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
			if s := strings.TrimSpace(nameOf(addr[key])); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case string:
		return t
	}
	return ""
}
