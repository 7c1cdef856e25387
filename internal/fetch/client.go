package fetch

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/logger"
)

// Client fetches job pages: one HTTP request, then optionally one browser render when the
// static page has too little visible text.
type Client struct {
	Options    *Options
	UseBrowser bool
	Browser    BrowserOptions
	Logger     *zap.Logger

	// render is WithBrowser unless a test replaces it
	render func(ctx context.Context, url string, opts BrowserOptions) (string, error)
}

// NewClient returns a Client with default options.
func NewClient(opts *Options, useBrowser bool, log *zap.Logger) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Client{
		Options:    opts,
		UseBrowser: useBrowser,
		Browser:    BrowserOptions{UserAgent: opts.UserAgent, Logger: log},
		Logger:     logger.OrNop(log),
		render:     WithBrowser,
	}
}

// Fetch retrieves url. A failed browser render keeps the static result.
func (c *Client) Fetch(ctx context.Context, url string) (*Result, error) {
	log := logger.WithFields(c.Logger, zap.String(logger.FieldURL, url))

	result, err := URL(ctx, url, c.Options)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched page", zap.Int("bytes", len(result.HTML)), zap.Int("status", result.StatusCode))

	if !c.UseBrowser || c.render == nil {
		return result, nil
	}

	visible := ingestion.Clean(result.HTML)
	if !ShouldUseBrowser(visible) {
		return result, nil
	}

	log.Info("static page too short, rendering in browser",
		zap.Int("visible_chars", len(visible)),
		zap.Int("min_chars", MinContentLength),
	)
	html, err := c.render(ctx, url, c.Browser)
	if err != nil {
		log.Warn("browser rendering failed, using static page", zap.Error(err))
		return result, nil
	}

	return &Result{
		URL:         result.URL,
		HTML:        html,
		ContentType: result.ContentType,
		StatusCode:  result.StatusCode,
		Rendered:    true,
	}, nil
}
