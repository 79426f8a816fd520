// Package search narrows a card list by text, category, faction, keyword and
// numeric-range criteria.
package search

import (
	"strings"

	"github.com/kakita-works/shugenja/internal/card"
)

// Range is an inclusive bound on a numeric attribute. A nil end is open.
type Range struct {
	Min *int
	Max *int
}

// IsSet reports whether either end is bounded
func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether v lies within the range
func (r Range) Contains(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Criteria is a conjunction of filters. Zero-valued fields are unset.
type Criteria struct {
	SearchTerm string
	Category   card.Category // CategoryUnknown means any category
	Faction    string
	Keywords   []string // a card matches when it has any of them
	Ranges     map[card.Attribute]Range
}

// IsEmpty reports whether no filter is set
func (c Criteria) IsEmpty() bool {
	if strings.TrimSpace(c.SearchTerm) != "" || c.Category != card.CategoryUnknown {
		return false
	}
	if strings.TrimSpace(c.Faction) != "" || len(c.Keywords) > 0 {
		return false
	}
	for _, r := range c.Ranges {
		if r.IsSet() {
			return false
		}
	}
	return true
}

// Filter returns the cards matching every set criterion, in input order.
// Empty criteria return the input unchanged.
func Filter(cards []*card.Card, criteria Criteria) []*card.Card {
	if criteria.IsEmpty() {
		return cards
	}

	out := make([]*card.Card, 0, len(cards))
	for _, c := range cards {
		if Matches(c, criteria) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether a single card satisfies the criteria
func Matches(c *card.Card, criteria Criteria) bool {
	if !MatchesText(c, criteria.SearchTerm) {
		return false
	}
	if !MatchesCategory(c, criteria.Category) {
		return false
	}
	if !MatchesFaction(c, criteria.Faction) {
		return false
	}
	if !MatchesKeywords(c, criteria.Keywords) {
		return false
	}
	for attr, r := range criteria.Ranges {
		if !MatchesRange(c, attr, r) {
			return false
		}
	}
	return true
}

// MatchesText checks for a case-insensitive substring of the name, the
// formatted name, the rules text or any keyword
func MatchesText(c *card.Card, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	if strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.FormattedName), term) ||
		strings.Contains(strings.ToLower(c.Text), term) {
		return true
	}
	for _, k := range c.Keywords {
		if strings.Contains(strings.ToLower(k), term) {
			return true
		}
	}
	return false
}

// MatchesCategory checks the card category; CategoryUnknown matches all
func MatchesCategory(c *card.Card, category card.Category) bool {
	return category == card.CategoryUnknown || c.Category == category
}

// MatchesFaction checks the clan alignment, falling back to a keyword that
// names the faction (e.g. "Scorpion Clan")
func MatchesFaction(c *card.Card, faction string) bool {
	faction = strings.TrimSpace(faction)
	if faction == "" || strings.EqualFold(faction, "all") {
		return true
	}

	if strings.EqualFold(c.Faction, faction) {
		return true
	}
	lower := strings.ToLower(faction)
	for _, k := range c.Keywords {
		if strings.Contains(strings.ToLower(k), lower) {
			return true
		}
	}
	return false
}

// MatchesKeywords checks that the card has at least one of the keywords
func MatchesKeywords(c *card.Card, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, k := range keywords {
		if c.HasKeyword(strings.TrimSpace(k)) {
			return true
		}
	}
	return false
}

// MatchesRange checks an attribute against an inclusive range. Cards
// without the attribute fail any bounded range.
func MatchesRange(c *card.Card, attr card.Attribute, r Range) bool {
	if !r.IsSet() {
		return true
	}
	v, ok := c.Stats.Get(attr)
	if !ok {
		return false
	}
	return r.Contains(v)
}
