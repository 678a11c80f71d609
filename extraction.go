package brochure

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extraction aggregates the landing page and the selected sub-pages.
// Ordering is deterministic: the landing page first, then sub-pages in the
// order the link selector chose them, regardless of fetch completion order.
type Extraction struct {
	Landing  *ScrapedPage
	Subpages []*ScrapedPage
}

// Pages returns all pages in combination order.
func (e *Extraction) Pages() []*ScrapedPage {
	pages := make([]*ScrapedPage, 0, len(e.Subpages)+1)
	if e.Landing != nil {
		pages = append(pages, e.Landing)
	}
	return append(pages, e.Subpages...)
}

// CombinedText renders the extraction as a single labeled text blob bounded
// by budget bytes. When the combination would exceed the budget, later
// sub-pages are dropped whole before the landing page is trimmed. A budget
// of zero or less yields an empty string.
func (e *Extraction) CombinedText(budget int) string {
	if budget <= 0 {
		return ""
	}

	var b strings.Builder

	landing := formatSection("Landing page", e.Landing)
	if len(landing) > budget {
		landing = TruncateText(landing, budget)
	}
	b.WriteString(landing)

	for _, page := range e.Subpages {
		section := formatSection("Sub-page", page)
		if b.Len()+len(section) > budget {
			break
		}
		b.WriteString(section)
	}

	return b.String()
}

func formatSection(label string, page *ScrapedPage) string {
	if page == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s):\n", label, page.URL)
	fmt.Fprintf(&b, "Webpage Title:\n%s\n", page.Title)
	fmt.Fprintf(&b, "Webpage Contents:\n%s\n\n", page.Text)
	return b.String()
}

// TruncateText shortens s to at most max bytes, cutting at the last space
// before the limit when one exists so words are not split. The cut never
// lands mid-rune, so the result is always valid UTF-8. The result is
// deterministic: the same input and budget always yield the same output.
func TruncateText(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	end := max
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	cut := s[:end]
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace)
}
