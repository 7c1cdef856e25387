// Package extract turns job board pages into JobPostings. Each site has a strategy selected
// by host; every field is read through an ordered list of tactics.
package extract

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/logger"
	"github.com/jonathan/resume-optimizer/internal/types"
)

var errNoFetcher = errors.New("no fetcher configured")

// Fetcher retrieves a page. *fetch.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Extractor fetches job pages and runs the matching strategy.
type Extractor struct {
	fetcher Fetcher
	routes  RoutingTable
	log     *zap.Logger
}

// New returns an Extractor. A nil routes table uses DefaultRoutes.
func New(fetcher Fetcher, routes RoutingTable, log *zap.Logger) *Extractor {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Extractor{fetcher: fetcher, routes: routes, log: logger.OrNop(log)}
}

// Extract fetches url and extracts the posting. Errors are *FetchError or *NoJobDataFoundError.
func (e *Extractor) Extract(ctx context.Context, url string) (*types.JobPosting, error) {
	if _, err := fetch.ValidateURL(url); err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	if e.fetcher == nil {
		return nil, &FetchError{URL: url, Cause: errNoFetcher}
	}

	result, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}

	pageURL := url
	if result.URL != "" {
		pageURL = result.URL
	}
	return e.ExtractHTML(result.HTML, pageURL)
}

// ExtractHTML extracts a posting from an already-fetched page.
func (e *Extractor) ExtractHTML(html, pageURL string) (*types.JobPosting, error) {
	page, err := NewPage(html, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Cause: err}
	}

	strategy := e.routes.Select(page.Host)
	if strategy == nil {
		return nil, &NoJobDataFoundError{URL: pageURL, Strategy: "none"}
	}
	log := logger.WithFields(e.log,
		zap.String(logger.FieldURL, pageURL),
		zap.String(logger.FieldSite, strategy.Name()),
	)

	posting, ok := strategy.Extract(page)
	if !ok {
		fallback := e.routes.Fallback()
		if fallback == nil || fallback.Name() == strategy.Name() {
			log.Debug("no job data", zap.Any("trace", page.Trace()))
			return nil, &NoJobDataFoundError{URL: pageURL, Strategy: strategy.Name()}
		}
		log.Info("site strategy found nothing, trying fallback", zap.String("fallback", fallback.Name()))
		page, _ = NewPage(html, pageURL)
		if posting, ok = fallback.Extract(page); !ok {
			log.Debug("no job data", zap.Any("trace", page.Trace()))
			return nil, &NoJobDataFoundError{URL: pageURL, Strategy: strategy.Name()}
		}
	}

	log.Debug("extracted job posting",
		zap.String("title", posting.Title),
		zap.String("company", posting.Company),
		zap.Int("description_chars", len(posting.Description)),
		zap.Any("trace", page.Trace()),
	)
	return posting, nil
}
