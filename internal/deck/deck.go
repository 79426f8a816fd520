// Package deck models a deck as an ordered multiset of cards. Decks are
// values: every mutation returns a new Deck and leaves the receiver as it was.
package deck

import (
	"github.com/kakita-works/shugenja/internal/card"
)

// Rules holds the composition limits a deck is built and validated under
type Rules struct {
	MinDynasty int
	MinFate    int
	MaxCopies  int
}

// DefaultRules returns the Samurai Extended limits
func DefaultRules() Rules {
	return Rules{
		MinDynasty: 40,
		MinFate:    40,
		MaxCopies:  3,
	}
}

// CopyLimit returns the per-card copy limit, never less than one
func (r Rules) CopyLimit() int {
	if r.MaxCopies < 1 {
		return 1
	}
	return r.MaxCopies
}

// Entry is a card and the number of copies in the deck
type Entry struct {
	Card     *card.Card
	Quantity int
}

// Deck represents a deck under construction
type Deck struct {
	rules   Rules
	entries []Entry
}

// New returns an empty deck built under rules
func New(rules Rules) Deck {
	return Deck{rules: rules}
}

// Rules returns the limits the deck is built under
func (d Deck) Rules() Rules {
	return d.rules
}

// Entries returns a copy of the entries in insertion order
func (d Deck) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// IsEmpty reports whether the deck holds no cards
func (d Deck) IsEmpty() bool {
	return len(d.entries) == 0
}

func (d Deck) indexOf(cardID string) int {
	for i, e := range d.entries {
		if e.Card.ID == cardID {
			return i
		}
	}
	return -1
}

// with returns a copy of d whose entries may be modified freely
func (d Deck) with() Deck {
	entries := make([]Entry, len(d.entries), len(d.entries)+1)
	copy(entries, d.entries)
	return Deck{rules: d.rules, entries: entries}
}

// Add puts one more copy of c in the deck. Copies are counted by card name,
// so printings sharing a name share the limit. Unique cards already present
// and cards already at the copy limit leave the deck unchanged.
func (d Deck) Add(c *card.Card) Deck {
	if c == nil {
		return d
	}

	have := d.NameCount(c.Name)
	if have > 0 && c.IsUnique() {
		return d
	}
	if have >= d.rules.CopyLimit() {
		return d
	}

	next := d.with()
	if i := d.indexOf(c.ID); i >= 0 {
		next.entries[i].Quantity++
		return next
	}
	next.entries = append(next.entries, Entry{Card: c, Quantity: 1})
	return next
}

// Accumulate adds n copies of c without checking copy limits. Importers use
// it so that over-limit lists survive and are reported by validation.
func (d Deck) Accumulate(c *card.Card, n int) Deck {
	if c == nil || n <= 0 {
		return d
	}

	next := d.with()
	if i := d.indexOf(c.ID); i >= 0 {
		next.entries[i].Quantity += n
		return next
	}
	next.entries = append(next.entries, Entry{Card: c, Quantity: n})
	return next
}

// Remove takes one copy of the card out of the deck, dropping the entry when
// none remain. Unknown IDs leave the deck unchanged.
func (d Deck) Remove(cardID string) Deck {
	i := d.indexOf(cardID)
	if i < 0 {
		return d
	}

	next := d.with()
	if next.entries[i].Quantity > 1 {
		next.entries[i].Quantity--
		return next
	}
	next.entries = append(next.entries[:i], next.entries[i+1:]...)
	return next
}

// Clear returns an empty deck under the same rules
func (d Deck) Clear() Deck {
	return New(d.rules)
}

// CountOf returns the number of copies of a card
func (d Deck) CountOf(cardID string) int {
	if i := d.indexOf(cardID); i >= 0 {
		return d.entries[i].Quantity
	}
	return 0
}

// NameCount returns the number of copies of every printing named name
func (d Deck) NameCount(name string) int {
	return d.sum(func(c *card.Card) bool { return c.Name == name })
}

// Total returns the number of cards in the deck
func (d Deck) Total() int {
	return d.sum(func(*card.Card) bool { return true })
}

// DynastyCount returns the number of Dynasty cards
func (d Deck) DynastyCount() int {
	return d.sum(func(c *card.Card) bool { return c.Category.Super() == card.SuperDynasty })
}

// FateCount returns the number of Fate cards
func (d Deck) FateCount() int {
	return d.sum(func(c *card.Card) bool { return c.Category.Super() == card.SuperFate })
}

// CategoryCount returns the number of cards of one category
func (d Deck) CategoryCount(category card.Category) int {
	return d.sum(func(c *card.Card) bool { return c.Category == category })
}

// UniqueEntryCount returns the number of distinct cards
func (d Deck) UniqueEntryCount() int {
	return len(d.entries)
}

func (d Deck) sum(match func(*card.Card) bool) int {
	total := 0
	for _, e := range d.entries {
		if match(e.Card) {
			total += e.Quantity
		}
	}
	return total
}
