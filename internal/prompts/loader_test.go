package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	clearCache()

	prompt, err := Get(OptimizeFile, "optimize-user")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.JobDescription}}")
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGet_InvalidFile(t *testing.T) {
	clearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	clearCache()

	_, err := Get(OptimizeFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_System(t *testing.T) {
	clearCache()

	prompt, err := Get(OptimizeFile, "optimize-system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}! {{.Missing}}"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp! {{.Missing}}", Format(template, data))
	assert.Equal(t, template, Format(template, nil))
}

func TestFormat_ValuesAreNotExpanded(t *testing.T) {
	template := "{{.ResumeText}} / {{.Company}}"
	data := map[string]string{
		"ResumeText": "I wrote {{.Company}} literally",
		"Company":    "Acme",
	}

	assert.Equal(t, "I wrote {{.Company}} literally / Acme", Format(template, data))
}

func TestRender(t *testing.T) {
	clearCache()

	out, err := Render(OptimizeFile, "optimize-user", map[string]string{
		"JobTitle":       "Backend Engineer",
		"Company":        "Acme",
		"JobDescription": "Go and PostgreSQL",
		"ResumeText":     "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "JOB TITLE: Backend Engineer")
	assert.NotContains(t, out, "{{.")
}
