package card

import (
	"fmt"
	"strings"
)

// Card represents a single card record from the catalog
type Card struct {
	ID            string   // Unique within a catalog
	Name          string   // Primary name as printed in the card database
	FormattedName string   // Display name, e.g. "Moto Chen - Experienced 2"
	Category      Category // personality, holding, stronghold, ...
	Faction       string   // Clan alignment, empty when unaligned
	Stats         Stats    // Optional numeric attributes
	Text          string   // Rules text with markup and keyword line removed
	Keywords      []string // Mechanical keywords
	Legality      []string // Format/era tags
	Banned        bool     // Advisory ban flag
	BannedReason  string   // Optional reason for the ban
	Artwork       string   // Artwork reference (relative image path)
	Back          *Face    // Second face for dual-sided cards
	Set           string   // Edition of the primary printing
	Rarity        string
	Artist        string
	Flavor        string
}

// Face is the alternate side of a physical dual-sided card
type Face struct {
	Artwork  string
	Text     string
	Keywords []string
}

// HasKeyword reports whether the card carries the keyword, ignoring case
func (c *Card) HasKeyword(keyword string) bool {
	for _, k := range c.Keywords {
		if strings.EqualFold(k, keyword) {
			return true
		}
	}
	return false
}

// IsUnique reports whether the card is limited to a single copy per deck
func (c *Card) IsUnique() bool {
	return c.HasKeyword(KeywordUnique)
}

// DisplayName returns the formatted name when present, the primary name otherwise
func (c *Card) DisplayName() string {
	if c.FormattedName != "" {
		return c.FormattedName
	}
	return c.Name
}

// NameCandidates returns the ordered list of names a deck list may use to
// refer to this card.
func (c *Card) NameCandidates() []string {
	candidates := make([]string, 0, 3)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		for _, existing := range candidates {
			if existing == name {
				return
			}
		}
		candidates = append(candidates, name)
	}

	add(c.Name)
	add(c.FormattedName)
	if base, level := ParseExperienced(c.Name); level > 0 {
		add(FormatExperienced(base, level))
	}
	return candidates
}

// IsLegalIn reports whether the card carries any of the given legality tags.
// An empty tag list means every card is legal.
func (c *Card) IsLegalIn(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, have := range c.Legality {
		for _, want := range tags {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func (c *Card) String() string {
	return fmt.Sprintf("%s [%s]", c.DisplayName(), c.Category)
}
