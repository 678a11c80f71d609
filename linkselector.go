package brochure

import (
	"sort"
	"strings"
)

// LinkSelector picks the subset of discovered links worth a second fetch.
type LinkSelector interface {
	// Select returns up to limit links, most relevant first.
	// Selection is deterministic: the same input yields the same output.
	Select(links []Link, limit int) []Link
}

// DefaultLinkKeywords is the vocabulary used by KeywordLinkSelector to
// recognize pages worth including in a brochure.
func DefaultLinkKeywords() []string {
	return []string{
		"about", "company", "team", "careers", "jobs", "culture",
		"mission", "vision", "values", "history", "leadership",
		"services", "products", "solutions", "portfolio", "customers",
	}
}

// DefaultLinkLimit is the number of sub-pages selected for a second fetch.
const DefaultLinkLimit = 3

// Ensure KeywordLinkSelector implements LinkSelector at compile time.
var _ LinkSelector = (*KeywordLinkSelector)(nil)

// KeywordLinkSelector scores links by case-insensitive keyword matches
// against their visible text and href. No network calls, no ML; a link
// mentioning "About" or "Careers" simply outranks one that doesn't.
type KeywordLinkSelector struct {
	keywords []string
}

// NewKeywordLinkSelector creates a selector with the given vocabulary.
// If keywords is empty, DefaultLinkKeywords is used.
func NewKeywordLinkSelector(keywords []string) *KeywordLinkSelector {
	if len(keywords) == 0 {
		keywords = DefaultLinkKeywords()
	}
	return &KeywordLinkSelector{keywords: keywords}
}

// Select returns up to limit links sorted by descending keyword score.
// Ties keep discovery order. Links that match no keyword are excluded even
// when fewer than limit links qualify, so irrelevant pages are never
// fetched just to fill the quota.
func (s *KeywordLinkSelector) Select(links []Link, limit int) []Link {
	if limit <= 0 {
		limit = DefaultLinkLimit
	}

	type scored struct {
		link  Link
		score int
		pos   int
	}

	candidates := make([]scored, 0, len(links))
	for i, link := range links {
		if score := s.score(link); score > 0 {
			candidates = append(candidates, scored{link: link, score: score, pos: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos < candidates[j].pos
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	selected := make([]Link, len(candidates))
	for i, c := range candidates {
		selected[i] = c.link
	}
	return selected
}

func (s *KeywordLinkSelector) score(link Link) int {
	text := strings.ToLower(link.Text)
	href := strings.ToLower(link.Href)

	var score int
	for _, kw := range s.keywords {
		if strings.Contains(text, kw) {
			score += 2
		}
		if strings.Contains(href, kw) {
			score++
		}
	}
	return score
}
