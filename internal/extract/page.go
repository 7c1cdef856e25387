package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
)

// chromeSelectors are removed before reading descriptions.
var chromeSelectors = []string{
	"nav", "footer", "header", "script", "style", "noscript",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".popup",
	// application forms
	"form", "#application-form", ".application-form", ".application--container",
	".apply-button-container", "[data-testid='application-form']",
	// EEO and legal
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']",
	".legal-disclosure", ".self-identification",
	// social, cookies
	".social-share", ".share-buttons", ".social-links", ".cookie-consent", ".gdpr-notice",
}

// Page is one parsed job page. It is read by a single strategy and is not safe for concurrent use.
type Page struct {
	URL  *url.URL
	Host string
	Doc  *goquery.Document

	html    string
	content *goquery.Document
	visible *string
	ld      *StructuredPosting
	ldRead  bool
	trace   map[string]string
}

// NewPage parses html fetched from pageURL.
func NewPage(html, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{
		URL:   u,
		Host:  strings.ToLower(u.Hostname()),
		Doc:   doc,
		html:  html,
		trace: make(map[string]string),
	}, nil
}

// TitleText is the cleaned <title> element.
func (p *Page) TitleText() string {
	return ingestion.CleanTextInline(p.Doc.Find("head title, title").First().Text())
}

// Meta returns the content of <meta property=key> or <meta name=key>.
func (p *Page) Meta(key string) string {
	sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)
	v, _ := p.Doc.Find(sel).First().Attr("content")
	return ingestion.CleanTextInline(v)
}

// VisibleText is the cleaned visible text of the whole page.
func (p *Page) VisibleText() string {
	if p.visible == nil {
		text := ingestion.Clean(p.html)
		p.visible = &text
	}
	return *p.visible
}

// Content returns a second parse of the page with chrome and the given noise removed.
// The first call fixes the noise set.
func (p *Page) Content(noise []string) *goquery.Document {
	if p.content != nil {
		return p.content
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.html))
	if err != nil {
		doc = p.Doc
	}
	doc.Find(strings.Join(chromeSelectors, ", ")).Remove()
	if len(noise) > 0 {
		doc.Find(strings.Join(noise, ", ")).Remove()
	}
	p.content = doc
	return doc
}

// Trace records which tactic produced each field.
func (p *Page) Trace() map[string]string {
	out := make(map[string]string, len(p.trace))
	for k, v := range p.trace {
		out[k] = v
	}
	return out
}

func (p *Page) note(field, tactic string) {
	if tactic != "" {
		p.trace[field] = tactic
	}
}

// resolve makes href absolute against the page URL.
func (p *Page) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.URL.ResolveReference(ref).String()
}
