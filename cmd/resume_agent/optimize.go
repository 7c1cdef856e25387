package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/optimize"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Output formats
const (
	formatJSON = "json"
	formatText = "text"
)

type optimizeFlags struct {
	resumeFile string
	jobURL     string
	jobFile    string
	jobText    string
	out        string
	format     string
	dbURL      string
	verbose    bool
}

func newOptimizeCmd(a *app) *cobra.Command {
	var f optimizeFlags
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Rewrite a resume for a job posting",
		Long: "Rewrite a resume for one job posting. The job is read from a URL, a file or inline text; " +
			"the result is written as JSON or as PDF-safe plain text.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOptimize(cmd, a, f)
		},
	}

	cmd.Flags().StringVarP(&f.resumeFile, "resume", "r", "", "Path to the resume (text or HTML)")
	cmd.Flags().StringVarP(&f.jobURL, "job-url", "u", "", "URL of the job posting")
	cmd.Flags().StringVar(&f.jobFile, "job-file", "", "Path to a file containing the job description")
	cmd.Flags().StringVar(&f.jobText, "job-text", "", "Job description text")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&f.format, "format", formatJSON, "Output format: json or text")
	cmd.Flags().StringVar(&f.dbURL, "db-url", "", "PostgreSQL URL for run tracking (overrides config)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print job posting, attempts and resume summaries to stderr")

	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job-url", "job-file", "job-text")
	cmd.MarkFlagsOneRequired("job-url", "job-file", "job-text")
	return cmd
}

func runOptimize(cmd *cobra.Command, a *app, f optimizeFlags) error {
	if f.format != formatJSON && f.format != formatText {
		return fmt.Errorf("unknown --format %q (want json or text)", f.format)
	}
	ctx := cmd.Context()

	resumeText, _, err := ingestion.IngestFromFile(f.resumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	job := f.jobURL
	switch {
	case f.jobFile != "":
		raw, err := os.ReadFile(f.jobFile)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		job = string(raw)
	case f.jobText != "":
		job = f.jobText
	}

	dispatcher, backends, err := a.dispatcher(ctx)
	if err != nil {
		return err
	}
	defer backends.Close()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if f.verbose {
		printer.PrintModels(dispatcher.Models(), dispatcher.WorstCaseLatency())
	}

	store, err := a.store(ctx, f.dbURL)
	if err != nil {
		a.log.Warn("continuing without run tracking", zap.Error(err))
	}

	svc := &optimize.Service{
		Extractor:  a.extractor(),
		Dispatcher: dispatcher,
		Logger:     a.log,
		OnProgress: func(e optimize.ProgressEvent) {
			a.log.Info(e.Message, zap.String("progress", e.Step), zap.String("category", e.Category))
		},
	}
	if store != nil {
		defer store.Close()
		svc.Store = store
	}

	result, err := svc.Optimize(ctx, optimize.Input{ResumeText: resumeText, Job: job})

	if f.verbose && result != nil {
		printer.PrintJobPosting(result.Posting)
		printer.PrintAttempts(result.Attempts)
		printer.PrintOptimizedResume(result.Resume)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), optimize.UserMessage(err))
		return err
	}

	return writeResume(cmd.OutOrStdout(), f.out, f.format, result.Resume)
}

func writeResume(stdout io.Writer, path, format string, resume *types.OptimizedResume) error {
	if resume == nil {
		return errors.New("no resume produced")
	}

	var data []byte
	switch format {
	case formatText:
		data = []byte(rendering.CleanPDFText(rendering.RenderText(resume)))
	default:
		var err error
		if data, err = json.MarshalIndent(resume, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal resume: %w", err)
		}
		data = append(data, '\n')
	}

	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
