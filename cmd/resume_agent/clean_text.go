package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/rendering"
)

func newCleanTextCmd(_ *app) *cobra.Command {
	var (
		inFile string
		pdf    bool
	)
	cmd := &cobra.Command{
		Use:   "clean-text",
		Short: "Clean job or resume text",
		Long: "Read text or HTML from --in (or stdin), strip markup and job-board boilerplate, and normalize " +
			"whitespace. With --pdf the result is further reduced to characters that are safe for PDF rendering.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var raw []byte
			var err error
			if inFile != "" {
				raw, err = os.ReadFile(inFile)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			text := ingestion.Clean(string(raw))
			if pdf {
				text = rendering.CleanPDFText(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Input file (default stdin)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Apply the PDF-safe character normalizer")
	return cmd
}
