package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const leverPage = `<html><head><title>Acme - Senior Backend Engineer</title></head><body>
<div class="posting-headline">
  <h2>Senior Backend Engineer</h2>
  <div class="posting-categories">
    <div class="location">Remote, US</div>
    <div class="commitment">Full-time</div>
  </div>
</div>
<div class="section-wrapper page-full-width">
  <p>We build payment infrastructure in Go and Postgres for thousands of merchants.</p>
</div>
</body></html>`

// runCLI executes the root command in-process and returns stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESUME_DATABASE_URL", "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCleanText_Stdin(t *testing.T) {
	out, _, err := runCLI(t, "<p>Senior Engineer</p><p>Build things</p>", "clean-text")
	require.NoError(t, err)

	assert.Contains(t, out, "Senior Engineer")
	assert.Contains(t, out, "Build things")
	assert.NotContains(t, out, "<p>")
}

func TestCleanText_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("Café “quoted”"), 0o644))

	out, _, err := runCLI(t, "", "clean-text", "--in", path, "--pdf")
	require.NoError(t, err)

	assert.Equal(t, "Cafe \"quoted\"\n", out)
}

func TestCleanText_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "clean-text", "--in", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestModels(t *testing.T) {
	out, _, err := runCLI(t, "", "models")
	require.NoError(t, err)

	assert.Contains(t, out, "MODEL CHAIN")
	assert.Contains(t, out, "Worst-case latency")
}

func TestExtractJob_HTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(leverPage), 0o644))

	out, _, err := runCLI(t, "", "extract-job", "--url", "https://jobs.lever.co/acme/123", "--html-file", path)
	require.NoError(t, err)

	var posting types.JobPosting
	require.NoError(t, json.Unmarshal([]byte(out), &posting))
	assert.Equal(t, types.SiteLever, posting.Site)
	assert.Equal(t, "Senior Backend Engineer", posting.Title)
	assert.Equal(t, "Acme", posting.Company)
	assert.Equal(t, "Remote, US", posting.Location)
}

func TestExtractJob_OutDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(leverPage), 0o644))
	outDir := filepath.Join(dir, "out")

	out, _, err := runCLI(t, "", "extract-job", "--url", "https://jobs.lever.co/acme/123", "--html-file", path, "--out", outDir)
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.FileExists(t, filepath.Join(outDir, "0.json"))
	assert.FileExists(t, filepath.Join(outDir, "0.meta.json"))
}

func TestExtractJob_HTMLFileNeedsOneURL(t *testing.T) {
	_, _, err := runCLI(t, "", "extract-job",
		"--url", "https://jobs.lever.co/acme/1",
		"--url", "https://jobs.lever.co/acme/2",
		"--html-file", "page.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one --url")
}

func TestExtractJob_NoJobData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html><body><nav>Home</nav></body></html>"), 0o644))

	_, _, err := runCLI(t, "", "extract-job", "--url", "https://example.com/jobs/1", "--html-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 extractions failed")
}

func TestOptimize_FlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing resume",
			args: []string{"optimize", "--job-text", "Engineer"},
			want: "resume",
		},
		{
			name: "no job source",
			args: []string{"optimize", "--resume", "r.txt"},
			want: "job-url",
		},
		{
			name: "two job sources",
			args: []string{"optimize", "--resume", "r.txt", "--job-text", "x", "--job-file", "j.txt"},
			want: "job-file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStatus_NoDatabase(t *testing.T) {
	_, _, err := runCLI(t, "", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database configured")
}
