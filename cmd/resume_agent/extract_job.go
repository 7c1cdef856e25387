package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/logger"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/types"
)

type extractJobFlags struct {
	urls     []string
	htmlFile string
	outDir   string
	verbose  bool
}

func newExtractJobCmd(a *app) *cobra.Command {
	var f extractJobFlags
	cmd := &cobra.Command{
		Use:   "extract-job",
		Short: "Extract structured job postings from job board URLs",
		Long: "Fetch each --url and extract title, company, location, employment type, seniority and " +
			"description. With --html-file the page is read from disk and --url only selects the site strategy.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtractJob(cmd, a, f)
		},
	}

	cmd.Flags().StringSliceVarP(&f.urls, "url", "u", nil, "Job posting URL (repeatable)")
	cmd.Flags().StringVar(&f.htmlFile, "html-file", "", "Extract from a saved page instead of fetching (single --url)")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "Output directory for <n>.json and <n>.meta.json (default stdout)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print a summary box per posting to stderr")

	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runExtractJob(cmd *cobra.Command, a *app, f extractJobFlags) error {
	if f.htmlFile != "" && len(f.urls) != 1 {
		return fmt.Errorf("--html-file needs exactly one --url")
	}
	ctx := cmd.Context()
	extractor := a.extractor()

	postings := make([]*types.JobPosting, len(f.urls))
	errs := make([]error, len(f.urls))

	if f.htmlFile != "" {
		raw, err := os.ReadFile(f.htmlFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.htmlFile, err)
		}
		postings[0], errs[0] = extractor.ExtractHTML(string(raw), f.urls[0])
	} else {
		var g errgroup.Group
		g.SetLimit(a.cfg.Extract.Concurrency)
		for i, url := range f.urls {
			g.Go(func() error {
				// failures are reported per URL; one bad page must not cancel the others
				postings[i], errs[i] = extractor.Extract(ctx, url)
				return nil
			})
		}
		_ = g.Wait()
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	var ok []*types.JobPosting
	for i, url := range f.urls {
		if errs[i] != nil {
			a.log.Error("extraction failed", zap.String(logger.FieldURL, url), zap.Error(errs[i]))
			continue
		}
		if f.verbose {
			printer.PrintJobPosting(postings[i])
		}
		if f.outDir != "" {
			if err := writePosting(f.outDir, i, postings[i]); err != nil {
				return err
			}
		}
		ok = append(ok, postings[i])
	}

	if f.outDir == "" && len(ok) > 0 {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if len(f.urls) == 1 {
			if err := enc.Encode(ok[0]); err != nil {
				return err
			}
		} else if err := enc.Encode(ok); err != nil {
			return err
		}
	}

	if failed := errors.Join(errs...); failed != nil {
		return fmt.Errorf("%d of %d extractions failed: %w", len(f.urls)-len(ok), len(f.urls), failed)
	}
	return nil
}

func writePosting(dir string, n int, posting *types.JobPosting) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(posting, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal posting: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("%d.json", n)), data, 0o644); err != nil {
		return fmt.Errorf("failed to write posting: %w", err)
	}

	meta, err := ingestion.NewMetadata(posting.Description, posting.URL).ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("%d.meta.json", n)), meta, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
