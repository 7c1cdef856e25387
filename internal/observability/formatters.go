// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// descriptionPreviewLines caps how much of a job description is shown
	descriptionPreviewLines = 6
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	width := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, width))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, width), width))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintJobPosting outputs a summary of an extracted job posting.
func (p *Printer) PrintJobPosting(posting *types.JobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	field := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%-11s %s\n", label+":", value))
		}
	}
	field("Site", posting.Site)
	field("Company", posting.Company)
	field("Title", posting.Title)
	field("Location", posting.Location)
	field("Type", posting.EmploymentType)
	field("Seniority", posting.Seniority)
	field("URL", posting.URL)

	if posting.Description != "" {
		sb.WriteString("\nDescription:\n")
		lines := nonEmptyLines(posting.Description)
		count := min(len(lines), descriptionPreviewLines)
		for _, line := range lines[:count] {
			sb.WriteString("  " + line + "\n")
		}
		if len(lines) > descriptionPreviewLines {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-descriptionPreviewLines))
		}
	}

	p.printBox("JOB POSTING", sb.String())
}

// PrintOptimizedResume outputs a summary of the optimized resume.
func (p *Printer) PrintOptimizedResume(resume *types.OptimizedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.FullName))
	if resume.ContactInfo != "" {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", resume.ContactInfo))
	}
	sb.WriteString("\n")

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(resume.Skills)))
		count := min(len(resume.Skills), maxItemsToShow)
		for _, skill := range resume.Skills[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", skill))
		}
		if len(resume.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resume.Experience) > 0 {
		sb.WriteString("Experience:\n")
		for _, exp := range resume.Experience {
			sb.WriteString(fmt.Sprintf("  • %s, %s (%d bullets)\n", exp.Title, exp.Company, len(exp.Achievements)))
		}
		sb.WriteString("\n")
	}

	if len(resume.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range resume.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.Institution))
		}
	}

	p.printBox("OPTIMIZED RESUME", sb.String())
}

// PrintAttempts outputs one line per dispatch attempt.
func (p *Printer) PrintAttempts(attempts []dispatch.Attempt) {
	if len(attempts) == 0 {
		return
	}

	var sb strings.Builder
	for _, a := range attempts {
		sb.WriteString(fmt.Sprintf("%s #%d  %-9s %s\n",
			a.Model.String(), a.Number, a.Outcome, a.Latency.Round(time.Millisecond)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal attempts: %d\n", len(attempts)))

	p.printBox("MODEL ATTEMPTS", sb.String())
}

// PrintModels outputs the configured chain and its worst-case latency.
func (p *Printer) PrintModels(models []llm.ModelSpec, worstCase time.Duration) {
	var sb strings.Builder
	for i, m := range models {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, m.String()))
		sb.WriteString(fmt.Sprintf("   %s / %s / %d tokens", m.Provider, m.Shape, m.MaxTokens))
		if m.CostTier != "" {
			sb.WriteString(fmt.Sprintf(" / %s", m.CostTier))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nWorst-case latency: %s\n", worstCase))

	p.printBox("MODEL CHAIN", sb.String())
}

// PrintRun outputs a stored optimization run.
func (p *Printer) PrintRun(run *db.Run) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:        %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", run.Status))
	if run.RoleTitle != "" || run.Company != "" {
		sb.WriteString(fmt.Sprintf("Role:      %s\n", strings.TrimSpace(run.RoleTitle+" "+atCompany(run.Company))))
	}
	if run.JobURL != "" {
		sb.WriteString(fmt.Sprintf("Job URL:   %s\n", run.JobURL))
	}
	if run.Model != "" {
		sb.WriteString(fmt.Sprintf("Model:     %s\n", run.Model))
	}
	sb.WriteString(fmt.Sprintf("Attempts:  %d\n", run.Attempts))
	sb.WriteString(fmt.Sprintf("Started:   %s\n", run.CreatedAt.Format(time.RFC3339)))
	if run.CompletedAt != nil {
		sb.WriteString(fmt.Sprintf("Finished:  %s\n", run.CompletedAt.Format(time.RFC3339)))
	}
	if run.ErrorMessage != nil {
		sb.WriteString(fmt.Sprintf("Error:     %s\n", *run.ErrorMessage))
	}

	p.printBox("OPTIMIZATION RUN", sb.String())
}

func atCompany(company string) string {
	if company == "" {
		return ""
	}
	return "at " + company
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
