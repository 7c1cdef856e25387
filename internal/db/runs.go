package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const runColumns = `id, job_url, company, role_title, status, model, attempts, error_message,
		        result, created_at, completed_at`

// CreateRun records a new run in the running state and returns its ID
func (db *DB) CreateRun(ctx context.Context, input RunInput) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO optimization_runs (job_url, company, role_title, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		input.JobURL, input.Company, input.RoleTitle, StatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun stores the final status of a run
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, c RunCompletion) error {
	if !IsTerminalStatus(c.Status) {
		return fmt.Errorf("cannot complete run with status %q", c.Status)
	}

	var result []byte
	if c.Result != nil {
		var err error
		if result, err = json.Marshal(c.Result); err != nil {
			return fmt.Errorf("failed to marshal run result: %w", err)
		}
	}
	var errorMessage *string
	if c.Error != "" {
		errorMessage = &c.Error
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE optimization_runs
		 SET status = $1, model = $2, attempts = $3, error_message = $4, result = $5, completed_at = NOW()
		 WHERE id = $6`,
		c.Status, c.Model, c.Attempts, errorMessage, result, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// GetRun retrieves a run by ID. It returns nil when the run does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM optimization_runs WHERE id = $1`,
		runID,
	)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM optimization_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.JobURL, &run.Company, &run.RoleTitle, &run.Status, &run.Model,
		&run.Attempts, &run.ErrorMessage, &run.Result, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
