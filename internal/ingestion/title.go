package ingestion

import (
	"strings"
	"unicode/utf8"
)

// Title scan limits.
const (
	TitleScanLines = 30
	MinTitleLength = 10
	MaxTitleLength = 100
)

// RoleKeywords mark a line as a plausible job title.
var RoleKeywords = []string{
	"engineer", "manager", "analyst", "developer", "specialist",
	"director", "lead", "coordinator", "architect",
}

// FindTitleLine returns the first of the leading TitleScanLines non-empty lines of text
// that mentions a role keyword and is between MinTitleLength and MaxTitleLength characters.
func FindTitleLine(text string) (string, bool) {
	scanned := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), strings.TrimSpace(Bullet)))
		if line == "" {
			continue
		}
		scanned++
		if scanned > TitleScanLines {
			break
		}
		if isTitleCandidate(line) {
			return line, true
		}
	}
	return "", false
}

func isTitleCandidate(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < MinTitleLength || n > MaxTitleLength {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range RoleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
