package mock

import (
	"github.com/fwojciec/brochure"
)

var _ brochure.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of brochure.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string) (*brochure.ScrapedPage, error)
}

func (e *Extractor) Extract(html, baseURL string) (*brochure.ScrapedPage, error) {
	return e.ExtractFn(html, baseURL)
}
