package extract

import (
	"regexp"
	"strings"
)

// TitleParts is what a page title tag says about the posting.
type TitleParts struct {
	Title    string
	Company  string
	Location string
}

// TitleParser splits a <title> into parts. Sites format their titles differently.
type TitleParser func(title string) TitleParts

var (
	titleSeparators   = regexp.MustCompile(`\s+[|–—-]\s+`)
	greenhouseTitle   = regexp.MustCompile(`(?i)^job application for (.+?) at (.+)$`)
	linkedInTitle     = regexp.MustCompile(`(?i)^(.+?) hiring (.+?)(?: in (.+?))?\s*\|\s*linkedin$`)
	atCompanyTitle    = regexp.MustCompile(`^(.+?)\s+@\s+(.+)$`)
	junkTitleSegments = map[string]bool{
		"careers": true, "jobs": true, "job board": true, "home": true, "job details": true,
		"job description": true, "apply": true, "linkedin": true, "workday": true,
	}
)

// splitTitle splits on " | ", " - ", " – " and " — ".
func splitTitle(title string) []string {
	parts := titleSeparators.Split(strings.TrimSpace(title), -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// plausibleTitle rejects empty segments and site chrome such as "Careers".
func plausibleTitle(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if len(s) < 2 || junkTitleSegments[lower] || strings.HasSuffix(lower, " careers") {
		return ""
	}
	return s
}

// FirstSegmentTitle takes the first segment as the title and the last as the company.
func FirstSegmentTitle(title string) TitleParts {
	segments := splitTitle(title)
	switch len(segments) {
	case 0:
		return TitleParts{}
	case 1:
		return TitleParts{Title: plausibleTitle(segments[0])}
	default:
		return TitleParts{
			Title:   plausibleTitle(segments[0]),
			Company: plausibleTitle(strings.TrimSuffix(segments[len(segments)-1], " Careers")),
		}
	}
}

// GreenhouseTitle parses "Job Application for <title> at <company>".
func GreenhouseTitle(title string) TitleParts {
	if m := greenhouseTitle.FindStringSubmatch(strings.TrimSpace(title)); m != nil {
		return TitleParts{Title: strings.TrimSpace(m[1]), Company: strings.TrimSpace(m[2])}
	}
	return FirstSegmentTitle(title)
}

// LeverTitle parses "<company> - <title>".
func LeverTitle(title string) TitleParts {
	segments := splitTitle(title)
	if len(segments) < 2 {
		return FirstSegmentTitle(title)
	}
	return TitleParts{
		Company: plausibleTitle(segments[0]),
		Title:   plausibleTitle(strings.Join(segments[1:], " - ")),
	}
}

// LinkedInTitle parses "<company> hiring <title> in <location> | LinkedIn".
func LinkedInTitle(title string) TitleParts {
	if m := linkedInTitle.FindStringSubmatch(strings.TrimSpace(title)); m != nil {
		return TitleParts{
			Company:  strings.TrimSpace(m[1]),
			Title:    strings.TrimSpace(m[2]),
			Location: strings.TrimSpace(m[3]),
		}
	}
	return FirstSegmentTitle(title)
}

// AshbyTitle parses "<title> @ <company>".
func AshbyTitle(title string) TitleParts {
	if m := atCompanyTitle.FindStringSubmatch(strings.TrimSpace(title)); m != nil {
		return TitleParts{Title: strings.TrimSpace(m[1]), Company: strings.TrimSpace(m[2])}
	}
	return FirstSegmentTitle(title)
}
