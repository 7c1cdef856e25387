package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/observability"
)

func newStatusCmd(a *app) *cobra.Command {
	var (
		runID      string
		dbURL      string
		limit      int
		showResult bool
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of optimization runs",
		Long:  "Show one run with --run-id, or the most recent runs. Requires a database URL.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.store(ctx, dbURL)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("no database configured; set database_url, DATABASE_URL or --db-url")
			}
			defer store.Close()

			printer := observability.NewPrinter(cmd.OutOrStdout())

			if runID == "" {
				runs, err := store.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				for i := range runs {
					printer.PrintRun(&runs[i])
				}
				return nil
			}

			id, err := uuid.Parse(runID)
			if err != nil {
				return fmt.Errorf("invalid --run-id: %w", err)
			}
			run, err := store.GetRun(ctx, id)
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", id)
			}
			printer.PrintRun(run)

			if showResult && len(run.Result) > 0 {
				var pretty any
				if err := json.Unmarshal(run.Result, &pretty); err != nil {
					return fmt.Errorf("stored result is not valid JSON: %w", err)
				}
				out, _ := json.MarshalIndent(pretty, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "Run ID to show (default: list recent runs)")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL URL (overrides config)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of recent runs to list")
	cmd.Flags().BoolVar(&showResult, "result", false, "Also print the stored resume JSON")
	return cmd
}
