package ingestion

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// IngestFromFile reads a text or HTML file and returns its cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText := Clean(string(content))
	if cleanedText == "" {
		return "", nil, fmt.Errorf("file %s has no text content", path)
	}
	return cleanedText, NewMetadata(cleanedText, path), nil
}

// PostingFromText builds a posting from a pasted job description.
// The title is the first keyword-bearing line; the description is the whole cleaned text.
func PostingFromText(raw string) *types.JobPosting {
	text := Clean(raw)
	posting := &types.JobPosting{
		Site:        types.SiteManual,
		Description: text,
	}
	if title, ok := FindTitleLine(text); ok {
		posting.Title = title
	}
	return posting
}

// IsURL reports whether s is a single http(s) URL rather than pasted text.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \n\t") {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
