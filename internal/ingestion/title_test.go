package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindTitleLine(t *testing.T) {
	text := "Acme Careers\nHome\nSenior Backend Engineer\nLocation: Remote"

	title, ok := FindTitleLine(text)
	assert.True(t, ok)
	assert.Equal(t, "Senior Backend Engineer", title)
}

func TestFindTitleLine_LengthBounds(t *testing.T) {
	long := "We are looking for an engineer " + strings.Repeat("who loves building things ", 5)
	text := "Lead\n" + long + "\nData Analyst II"

	title, ok := FindTitleLine(text)
	assert.True(t, ok)
	assert.Equal(t, "Data Analyst II", title)
}

func TestFindTitleLine_OnlyFirstLines(t *testing.T) {
	lines := make([]string, 0, TitleScanLines+1)
	for i := 0; i < TitleScanLines; i++ {
		lines = append(lines, "nothing to see here")
	}
	lines = append(lines, "Staff Software Engineer")

	_, ok := FindTitleLine(strings.Join(lines, "\n"))
	assert.False(t, ok)
}

func TestFindTitleLine_BulletedAndBlankLines(t *testing.T) {
	title, ok := FindTitleLine("\n\n• Product Manager, Payments\n")
	assert.True(t, ok)
	assert.Equal(t, "Product Manager, Payments", title)
}
