package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/observability"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show the model fallback chain and its worst-case latency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			usable, skipped := a.cfg.UsableModels()
			d := a.cfg.Dispatch
			worst := dispatch.WorstCaseLatency(len(usable), d.MaxRetries, d.AttemptTimeout, d.Backoff)

			observability.NewPrinter(cmd.OutOrStdout()).PrintModels(usable, worst)
			for _, m := range skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s: no %s credentials\n", m.String(), m.Provider)
			}
			return nil
		},
	}
}
