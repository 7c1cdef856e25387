package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeSkillName trims a skill and maps known variants to their canonical name.
// Unknown skills keep their casing.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if canonical, ok := skillNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills normalizes every skill, dropping blanks and case-insensitive duplicates.
// The first occurrence wins and order is preserved.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool)
	for _, skill := range skills {
		normalized := NormalizeSkillName(skill)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, normalized)
	}
	return out
}

// GroundSkills keeps only the skills that the job text mentions, directly or through a known variant.
func GroundSkills(skills []string, jobText string) []string {
	text := strings.ToLower(jobText)
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if mentionsSkill(text, skill) {
			out = append(out, skill)
		}
	}
	return out
}

func mentionsSkill(lowerText, skill string) bool {
	lowerSkill := strings.ToLower(strings.TrimSpace(skill))
	if lowerSkill == "" {
		return false
	}
	if containsTerm(lowerText, lowerSkill) {
		return true
	}
	canonical := NormalizeSkillName(skill)
	for variant, c := range skillNormalizations {
		if c == canonical && containsTerm(lowerText, variant) {
			return true
		}
	}
	return false
}

// containsTerm reports whether term occurs in text with no letter or digit directly on either side.
func containsTerm(text, term string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
