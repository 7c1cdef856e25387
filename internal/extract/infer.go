package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type keywordLabel struct {
	pattern *regexp.Regexp
	label   string
}

// Checked in order; the first hit wins.
var seniorityKeywords = []keywordLabel{
	{regexp.MustCompile(`(?i)\bintern(ship)?\b`), "Internship"},
	{regexp.MustCompile(`(?i)\b(vp|vice president|chief|head of)\b`), "Executive"},
	{regexp.MustCompile(`(?i)\bdirector\b`), "Director"},
	{regexp.MustCompile(`(?i)\bprincipal\b`), "Principal"},
	{regexp.MustCompile(`(?i)\bstaff\b`), "Staff"},
	{regexp.MustCompile(`(?i)\b(senior|sr)\b`), "Senior"},
	{regexp.MustCompile(`(?i)\blead\b`), "Lead"},
	{regexp.MustCompile(`(?i)\b(mid[- ]level|intermediate)\b`), "Mid level"},
	{regexp.MustCompile(`(?i)\b(junior|jr|entry[- ]level|graduate|new grad)\b`), "Entry level"},
}

var employmentKeywords = []keywordLabel{
	{regexp.MustCompile(`(?i)\bfull[- ]time\b`), "Full-time"},
	{regexp.MustCompile(`(?i)\bpart[- ]time\b`), "Part-time"},
	{regexp.MustCompile(`(?i)\binternship\b`), "Internship"},
	{regexp.MustCompile(`(?i)\b(contract|contractor|freelance)\b`), "Contract"},
	{regexp.MustCompile(`(?i)\b(temporary|temp)\b`), "Temporary"},
}

func firstLabel(text string, keywords []keywordLabel) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, k := range keywords {
		if k.pattern.MatchString(text) {
			return k.label
		}
	}
	return ""
}

// InferSeniority guesses a seniority level from a job title.
func InferSeniority(title string) string {
	return firstLabel(title, seniorityKeywords)
}

// InferEmploymentType guesses the employment type from free text.
func InferEmploymentType(text string) string {
	return firstLabel(text, employmentKeywords)
}

// hostedBoards put the company slug in the first path segment.
var hostedBoards = []string{"greenhouse.io", "lever.co", "ashbyhq.com", "workable.com", "smartrecruiters.com"}

var genericHostLabels = map[string]bool{
	"www": true, "careers": true, "jobs": true, "job": true, "boards": true, "apply": true,
	"job-boards": true, "com": true, "co": true, "io": true, "net": true, "org": true,
}

// CompanyFromURL derives a display company name from a job URL.
func CompanyFromURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())

	for _, board := range hostedBoards {
		if strings.HasSuffix(host, board) {
			segments := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(segments) > 0 && segments[0] != "" && segments[0] != "embed" {
				return displayName(segments[0])
			}
			return ""
		}
	}

	// acme.wd5.myworkdayjobs.com
	if strings.HasSuffix(host, "myworkdayjobs.com") {
		return displayName(strings.Split(host, ".")[0])
	}

	labels := strings.Split(host, ".")
	for i := len(labels) - 2; i >= 0; i-- {
		if !genericHostLabels[labels[i]] {
			return displayName(labels[i])
		}
	}
	return ""
}

func displayName(slug string) string {
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	return cases.Title(language.English).String(slug)
}
