package mock

import (
	"github.com/fwojciec/brochure"
)

var _ brochure.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of brochure.LinkSelector.
type LinkSelector struct {
	SelectFn func(links []brochure.Link, limit int) []brochure.Link
}

func (s *LinkSelector) Select(links []brochure.Link, limit int) []brochure.Link {
	return s.SelectFn(links, limit)
}
