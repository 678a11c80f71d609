// Package goquery implements brochure.Extractor using CSS selectors.
// It strips boilerplate elements from static HTML, normalizes the visible
// text and collects internal links for the link selector.
package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brochure"
)

// boilerplateSelector matches elements that never contribute brochure
// content: code, styling, chrome and media placeholders.
const boilerplateSelector = "script, style, noscript, iframe, nav, footer, header, img, input, svg"

// skippedExtensions lists binary or non-page link targets that are never
// worth a second fetch.
var skippedExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".zip",
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".mp4",
}

// Ensure Extractor implements brochure.Extractor at compile time.
var _ brochure.Extractor = (*Extractor)(nil)

// Extractor parses HTML into a brochure.ScrapedPage.
type Extractor struct {
	maxTextLength int
	now           func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxTextLength sets the per-page visible-text budget in characters.
// Defaults to brochure.DefaultMaxContentLength.
func WithMaxTextLength(n int) Option {
	return func(e *Extractor) {
		e.maxTextLength = n
	}
}

// WithNow overrides the clock used for FetchedAt stamps. Test hook.
func WithNow(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		maxTextLength: brochure.DefaultMaxContentLength,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses HTML and returns the cleaned page content. The visible
// text never exceeds the configured budget and truncation is deterministic.
func (e *Extractor) Extract(html string, baseURL string) (*brochure.ScrapedPage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, brochure.Errorf(brochure.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &brochure.Error{
			Code:    brochure.EPARSE,
			Message: "failed to parse HTML: " + err.Error(),
			URL:     baseURL,
		}
	}

	title := collapseWhitespace(doc.Find("title").First().Text())
	if title == "" {
		title = "No title found"
	}

	// Links are collected before boilerplate removal so navigation
	// anchors (About, Careers, ...) survive.
	links := extractLinks(doc, base)

	doc.Find(boilerplateSelector).Remove()

	body := doc.Find("body")
	var text string
	if body.Length() > 0 {
		text = collapseWhitespace(body.Text())
	}
	text = brochure.TruncateText(text, e.maxTextLength)

	return &brochure.ScrapedPage{
		URL:       baseURL,
		Title:     title,
		Text:      text,
		Links:     links,
		FetchedAt: e.now(),
	}, nil
}

// extractLinks collects every anchor's visible text and absolute href in
// document order, keeping only same-host page links and dropping
// duplicates.
func extractLinks(doc *goquery.Document, base *url.URL) []brochure.Link {
	var links []brochure.Link
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		if !isSameHost(base, resolved) {
			return
		}
		if hasSkippedExtension(resolved) {
			return
		}

		seen[resolved] = true
		links = append(links, brochure.Link{
			Text: collapseWhitespace(sel.Text()),
			Href: resolved,
		})
	})

	return links
}

// isNonHTTPLink reports whether href is a scheme or fragment goquery can't
// follow (javascript:, mailto:, tel:, data:, or bare fragments).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	if strings.HasPrefix(lower, "#") {
		return true
	}
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func hasSkippedExtension(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// resolveURL resolves a relative URL against a base URL, stripping any
// fragment so the same page is not fetched twice.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// collapseWhitespace trims s and collapses interior whitespace runs
// (including newlines) into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
