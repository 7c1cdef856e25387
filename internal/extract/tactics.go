package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
)

const (
	// MinBlockLength is how long a paragraph's text must be to count as substantial.
	MinBlockLength = 50
	// MaxFallbackBlocks caps how many substantial blocks form a fallback description.
	MaxFallbackBlocks = 5
)

// MetaTactic reads a <meta> property such as og:title.
func MetaTactic(key string) Tactic {
	return Tactic{Name: "meta:" + key, Run: func(p *Page) string { return p.Meta(key) }}
}

// InlineSelectors yields the single-line text of the first selector that matches non-empty text.
func InlineSelectors(name string, selectors ...string) Tactic {
	return Tactic{Name: name, Run: func(p *Page) string {
		return firstSelectorText(p.Doc, selectors, ingestion.SingleLine)
	}}
}

// BlockSelectors yields the multi-line text of the first matching description container,
// read from the noise-stripped page.
func BlockSelectors(name string, noise []string, selectors ...string) Tactic {
	return Tactic{Name: name, Run: func(p *Page) string {
		return firstSelectorText(p.Content(noise), selectors, func(s string) string { return s })
	}}
}

func firstSelectorText(doc *goquery.Document, selectors []string, clean func(string) string) string {
	for _, sel := range selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			html, err := goquery.OuterHtml(s)
			if err != nil {
				return true
			}
			if text := clean(ingestion.Clean(html)); text != "" {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// KeywordScanTactic finds a title-like line among the first lines of visible text.
func KeywordScanTactic() Tactic {
	return Tactic{Name: "keyword-scan", Run: func(p *Page) string {
		title, _ := ingestion.FindTitleLine(p.VisibleText())
		return title
	}}
}

// StructuredTactic reads one field of the page's schema.org JobPosting.
func StructuredTactic(field string, get func(*StructuredPosting) string) Tactic {
	return Tactic{Name: "json-ld:" + field, Run: func(p *Page) string {
		if ld := p.StructuredPosting(); ld != nil {
			return get(ld)
		}
		return ""
	}}
}

// CriteriaTactic reads a labelled criteria list, such as LinkedIn's "Seniority level".
func CriteriaTactic(itemSelector, labelSelector, valueSelector, label string) Tactic {
	return Tactic{Name: "criteria:" + strings.ToLower(label), Run: func(p *Page) string {
		var value string
		p.Doc.Find(itemSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
			if strings.EqualFold(ingestion.CleanTextInline(item.Find(labelSelector).Text()), label) {
				value = ingestion.CleanTextInline(item.Find(valueSelector).Text())
				return false
			}
			return true
		})
		return value
	}}
}

// SubstantialBlocksTactic joins the first paragraph-level blocks whose text exceeds MinBlockLength.
func SubstantialBlocksTactic(noise []string) Tactic {
	return Tactic{Name: "substantial-blocks", Run: func(p *Page) string {
		var blocks []string
		seen := make(map[string]bool)
		p.Content(noise).Find("p, div, li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if goquery.NodeName(s) == "div" && s.Find("p, div, ul, ol, table, section, article").Length() > 0 {
				return true
			}
			text := ingestion.CleanTextInline(s.Text())
			if utf8.RuneCountInString(text) <= MinBlockLength || seen[text] {
				return true
			}
			seen[text] = true
			blocks = append(blocks, text)
			return len(blocks) < MaxFallbackBlocks
		})
		return strings.Join(blocks, "\n\n")
	}}
}

// SynthesizedDescription is the last resort: one sentence naming the role.
func SynthesizedDescription(title, company string) string {
	if title == "" {
		return ""
	}
	if company == "" {
		return fmt.Sprintf("%s position.", title)
	}
	return fmt.Sprintf("%s position at %s.", title, company)
}

// canonicalURL prefers link[rel=canonical], then og:url, then the page URL without its fragment.
func canonicalURL(p *Page) string {
	if href, ok := p.Doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if u := p.resolve(href); u != "" {
			return u
		}
	}
	if u := p.resolve(p.Meta("og:url")); u != "" {
		return u
	}
	u := *p.URL
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
