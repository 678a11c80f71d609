package brochure

import (
	"context"
	"time"
)

// Link represents an anchor discovered on a scraped page. Href is always
// absolute, resolved against the page's base URL.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// ScrapedPage represents the normalized content of a single fetched page.
type ScrapedPage struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"` // bounded by the extractor's max length
	Links     []Link    `json:"links"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Fetcher retrieves raw HTML from URLs.
// Implementations handle timeouts, redirects and status-code mapping;
// they do not execute JavaScript.
type Fetcher interface {
	// Fetch performs a single GET request and returns the response body.
	// Returns ENETWORK/ETIMEOUT on connection failure, EHTTPSTATUS on a
	// non-2xx response, and EPARSE if the response is not HTML.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Extractor turns raw HTML into a ScrapedPage.
// Implementations strip boilerplate elements, normalize whitespace,
// enforce the text budget and collect internal links.
type Extractor interface {
	// Extract parses HTML and returns the cleaned page content.
	// The baseURL is used to resolve relative link hrefs.
	// Returns EPARSE if the document cannot be parsed.
	Extract(html string, baseURL string) (*ScrapedPage, error)
}
