// Package ingestion turns raw job and resume text into clean plain text.
// Every extractor field goes through Clean or CleanInline.
package ingestion

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Bullet prefixes list items recovered from markup.
const Bullet = "• "

// BoilerplatePhrases is job-board chrome stripped from extracted text. Matching is case-insensitive.
var BoilerplatePhrases = []string{
	"Apply now",
	"Easy Apply",
	"Save job",
	"Apply for this job",
	"Share this job",
	"Back to jobs",
	"Back to search results",
	"Report this job",
}

// markupElements are the tag names that mark text as HTML. Anything else in angle brackets,
// such as a generic parameter like <T>, is literal text.
var markupElements = []string{
	"html", "head", "body", "meta", "link", "title", "script", "style", "noscript", "template",
	"p", "div", "span", "br", "hr", "a", "b", "i", "u", "em", "strong", "small", "sup", "sub", "font",
	"ul", "ol", "li", "dl", "dt", "dd", "h[1-6]", "table", "thead", "tbody", "tr", "td", "th",
	"section", "article", "main", "header", "footer", "nav", "aside", "blockquote", "pre", "code",
	"img", "figure", "figcaption", "address", "form", "label", "button", "input", "iframe", "svg",
}

var markupPattern = regexp.MustCompile(`(?i)<!--|<!doctype\b|</?(?:` +
	strings.Join(markupElements, "|") + `)(?:\s[^>]*)?/?>`)

var (
	spacePattern       = regexp.MustCompile(`\s+`)
	boilerplatePattern = compileBoilerplate(BoilerplatePhrases)
)

func compileBoilerplate(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	// trailing arrows and chevrons are part of the button label
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b[ \t]*[»›>→!]*`)
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "svg": true, "iframe": true, "#comment": true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "blockquote": true, "pre": true, "form": true,
	"hr": true, "address": true, "figure": true, "figcaption": true,
}

// Clean normalizes raw text or HTML into plain text with one paragraph per line group:
// markup becomes lines (list items bulleted), entities are decoded exactly once, whitespace
// inside each line collapses to single spaces, at most one blank line separates paragraphs,
// and boilerplate phrases are removed. Entity-encoded markup, as found in schema.org
// descriptions, is decoded and then rendered like any other markup. Clean never fails.
//
// Clean must see raw input. Text that has already been decoded, such as goquery's Text(),
// goes through CleanText instead.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return CleanText(decode(raw))
}

// CleanInline is Clean for single-line fields: every whitespace run, newlines included,
// becomes one space.
func CleanInline(raw string) string {
	return SingleLine(Clean(raw))
}

// CleanText cleans text that is already decoded: it neither decodes entities nor parses
// markup, so a literal "<div>" or "&lt;" survives.
func CleanText(text string) string {
	return removeBoilerplate(collapseLines(text))
}

// CleanTextInline is CleanText for single-line fields.
func CleanTextInline(text string) string {
	return SingleLine(CleanText(text))
}

// SingleLine collapses every whitespace run, newlines included, into one space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// decode turns raw input into plain text. Markup is rendered by the HTML parser, which
// also decodes its entities; plain text is unescaped and rendered if that reveals markup.
func decode(raw string) string {
	if LooksLikeHTML(raw) {
		if visible, ok := visibleText(raw); ok {
			return visible
		}
		return raw
	}

	text := html.UnescapeString(raw)
	if LooksLikeHTML(text) {
		if visible, ok := visibleText(text); ok {
			return visible
		}
	}
	return text
}

// LooksLikeHTML reports whether s contains HTML tags or comments.
func LooksLikeHTML(s string) bool {
	return markupPattern.MatchString(s)
}

// visibleText renders the document's visible text with structural line breaks.
func visibleText(raw string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	writeVisible(root, &sb)
	return sb.String(), true
}

func writeVisible(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			// source whitespace is insignificant in markup
			sb.WriteString(spacePattern.ReplaceAllString(child.Text(), " "))
		case skippedElements[name]:
		case name == "br":
			sb.WriteByte('\n')
		case name == "li":
			sb.WriteString("\n" + Bullet)
			writeVisible(child, sb)
		case blockElements[name]:
			sb.WriteString("\n\n")
			writeVisible(child, sb)
			sb.WriteString("\n\n")
		case name == "td" || name == "th":
			writeVisible(child, sb)
			sb.WriteByte(' ')
		default:
			writeVisible(child, sb)
		}
	})
}

// collapseLines trims and squeezes every line and keeps at most one blank line in a row.
func collapseLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// removeBoilerplate strips boilerplate phrases and drops lines left with no content.
func removeBoilerplate(text string) string {
	if !boilerplatePattern.MatchString(text) {
		return text
	}

	bullet := strings.TrimSpace(Bullet)
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !boilerplatePattern.MatchString(line) {
			kept = append(kept, line)
			continue
		}
		line = strings.TrimSpace(boilerplatePattern.ReplaceAllString(line, ""))
		if line == "" || line == bullet {
			continue
		}
		kept = append(kept, line)
	}
	return collapseLines(strings.Join(kept, "\n"))
}
