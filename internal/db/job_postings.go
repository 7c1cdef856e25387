package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const jobPostingColumns = `id, url, site, company, title, location, employment_type, seniority,
		        description, content_hash, fetched_at, created_at, updated_at`

// ErrMissingURL is returned when storing a posting that has no URL.
var ErrMissingURL = errors.New("job posting has no URL")

// UpsertJobPosting creates or refreshes the posting stored under its URL
func (db *DB) UpsertJobPosting(ctx context.Context, posting *types.JobPosting) (*JobPosting, error) {
	if posting == nil || posting.URL == "" {
		return nil, ErrMissingURL
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (url, site, company, title, location, employment_type,
		                           seniority, description, content_hash, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		 ON CONFLICT (url) DO UPDATE SET
		     site = $2,
		     company = $3,
		     title = $4,
		     location = $5,
		     employment_type = $6,
		     seniority = $7,
		     description = $8,
		     content_hash = $9,
		     fetched_at = NOW(),
		     updated_at = NOW()
		 RETURNING `+jobPostingColumns,
		posting.URL, posting.Site, posting.Company, posting.Title, posting.Location,
		posting.EmploymentType, posting.Seniority, posting.Description, HashJobContent(posting.Description),
	)

	p, err := scanJobPosting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return p, nil
}

// GetJobPostingByURL retrieves a job posting by its URL. It returns nil when none is stored.
func (db *DB) GetJobPostingByURL(ctx context.Context, url string) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE url = $1`,
		url,
	)

	p, err := scanJobPosting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.URL, &p.Site, &p.Company, &p.Title, &p.Location,
		&p.EmploymentType, &p.Seniority, &p.Description, &p.ContentHash,
		&p.FetchedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
