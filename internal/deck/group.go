package deck

import "github.com/kakita-works/shugenja/internal/card"

// Section is one category of a deck listing
type Section struct {
	Category card.Category
	Entries  []Entry
}

// Count returns the number of cards in the section
func (s Section) Count() int {
	total := 0
	for _, e := range s.Entries {
		total += e.Quantity
	}
	return total
}

// Title returns the heading used for the section, e.g. "Personalities"
func (s Section) Title() string {
	return s.Category.Plural()
}

// Groups is a deck partitioned for display and export
type Groups struct {
	Stronghold []Entry
	Sensei     []Entry
	Dynasty    []Section // populated sections only, in listing order
	Fate       []Section
}

var (
	dynastyOrder = []card.Category{
		card.CategoryPersonality,
		card.CategoryHolding,
		card.CategoryCelestial,
		card.CategoryRegion,
		card.CategoryEvent,
	}
	fateOrder = []card.Category{
		card.CategoryStrategy,
		card.CategorySpell,
		card.CategoryItem,
		card.CategoryFollower,
		card.CategoryRing,
	}
)

// Group partitions the deck by category. Entries keep the order in which
// they were first added; entries for distinct printings sharing a name are
// merged into the first.
func (d Deck) Group() Groups {
	merged := mergeByName(d.entries)

	byCategory := make(map[card.Category][]Entry)
	for _, e := range merged {
		byCategory[e.Card.Category] = append(byCategory[e.Card.Category], e)
	}

	g := Groups{
		Stronghold: byCategory[card.CategoryStronghold],
		Sensei:     byCategory[card.CategorySensei],
	}
	for _, c := range dynastyOrder {
		if entries := byCategory[c]; len(entries) > 0 {
			g.Dynasty = append(g.Dynasty, Section{Category: c, Entries: entries})
		}
	}
	for _, c := range fateOrder {
		if entries := byCategory[c]; len(entries) > 0 {
			g.Fate = append(g.Fate, Section{Category: c, Entries: entries})
		}
	}
	return g
}

func mergeByName(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Card.Name]; ok {
			out[i].Quantity += e.Quantity
			continue
		}
		index[e.Card.Name] = len(out)
		out = append(out, e)
	}
	return out
}
