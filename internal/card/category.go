package card

import (
	"fmt"
	"strings"
)

// Category is the printed card type
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPersonality
	CategoryHolding
	CategoryCelestial
	CategoryRegion
	CategoryEvent
	CategoryStronghold
	CategorySensei
	CategoryStrategy
	CategorySpell
	CategoryItem
	CategoryFollower
	CategoryRing
)

// Categories lists every known category in deck listing order
var Categories = []Category{
	CategoryPersonality,
	CategoryHolding,
	CategoryCelestial,
	CategoryRegion,
	CategoryEvent,
	CategoryStronghold,
	CategorySensei,
	CategoryStrategy,
	CategorySpell,
	CategoryItem,
	CategoryFollower,
	CategoryRing,
}

func (c Category) String() string {
	switch c {
	case CategoryPersonality:
		return "personality"
	case CategoryHolding:
		return "holding"
	case CategoryCelestial:
		return "celestial"
	case CategoryRegion:
		return "region"
	case CategoryEvent:
		return "event"
	case CategoryStronghold:
		return "stronghold"
	case CategorySensei:
		return "sensei"
	case CategoryStrategy:
		return "strategy"
	case CategorySpell:
		return "spell"
	case CategoryItem:
		return "item"
	case CategoryFollower:
		return "follower"
	case CategoryRing:
		return "ring"
	default:
		return "unknown"
	}
}

// Plural returns the section heading used in deck lists, e.g. "Personalities"
func (c Category) Plural() string {
	switch c {
	case CategoryPersonality:
		return "Personalities"
	case CategoryHolding:
		return "Holdings"
	case CategoryCelestial:
		return "Celestials"
	case CategoryRegion:
		return "Regions"
	case CategoryEvent:
		return "Events"
	case CategoryStronghold:
		return "Stronghold"
	case CategorySensei:
		return "Sensei"
	case CategoryStrategy:
		return "Strategies"
	case CategorySpell:
		return "Spells"
	case CategoryItem:
		return "Items"
	case CategoryFollower:
		return "Followers"
	case CategoryRing:
		return "Rings"
	default:
		return "Unknown"
	}
}

// ParseCategory parses a category name, ignoring case and surrounding space
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if c.String() == name {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown card category: %q", s)
}

// Super is the top-level deck a category belongs to
type Super int

const (
	SuperNone Super = iota
	SuperDynasty
	SuperFate
)

func (s Super) String() string {
	switch s {
	case SuperDynasty:
		return "Dynasty"
	case SuperFate:
		return "Fate"
	default:
		return "None"
	}
}

// Super returns the deck the category is shuffled into. Strongholds and
// senseis sit outside both decks.
func (c Category) Super() Super {
	switch c {
	case CategoryPersonality, CategoryHolding, CategoryCelestial, CategoryRegion, CategoryEvent:
		return SuperDynasty
	case CategoryStrategy, CategorySpell, CategoryItem, CategoryFollower, CategoryRing:
		return SuperFate
	default:
		return SuperNone
	}
}

// attributesByCategory lists the numeric attributes printed on each category
var attributesByCategory = map[Category][]Attribute{
	CategoryPersonality: {AttrCost, AttrForce, AttrChi, AttrPersonalHonor, AttrHonorRequirement},
	CategoryHolding:     {AttrCost, AttrGoldProduction},
	CategoryStronghold:  {AttrGoldProduction},
	CategorySensei:      {AttrGoldProduction},
	CategoryStrategy:    {AttrCost, AttrFocus},
	CategorySpell:       {AttrCost, AttrFocus},
	CategoryItem:        {AttrCost, AttrFocus, AttrForce, AttrChi, AttrHonorRequirement},
	CategoryFollower:    {AttrCost, AttrFocus, AttrForce, AttrChi, AttrHonorRequirement},
	CategoryRing:        {AttrCost, AttrFocus},
}

// Supports reports whether the attribute is meaningful for the category
func (c Category) Supports(a Attribute) bool {
	for _, have := range attributesByCategory[c] {
		if have == a {
			return true
		}
	}
	return false
}
