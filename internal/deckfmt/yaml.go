package deckfmt

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kakita-works/shugenja/internal/deck"
)

// DeckFile represents the top-level YAML structure
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// NamedResult is the import result of one deck in a YAML file
type NamedResult struct {
	Name string
	*Result
}

// ImportYAML resolves every deck in a YAML deck file. Entries with a
// non-positive count are skipped; names resolve as in Import.
func (im *Importer) ImportYAML(data []byte) ([]NamedResult, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("%w: parse deck YAML: %v", ErrNotText, err)
	}

	results := make([]NamedResult, 0, len(df.Decks))
	for _, entry := range df.Decks {
		res := &Result{
			Deck:         deck.New(im.Rules),
			MissingCards: []MissingCard{},
			BannedCards:  []BannedCard{},
		}
		for _, c := range entry.Cards {
			if c.Count <= 0 || c.Name == "" {
				res.Skipped++
				continue
			}
			im.add(c.Name, c.Count, res)
		}
		results = append(results, NamedResult{Name: entry.Name, Result: res})
	}
	return results, nil
}

// ExportYAML writes the deck as a single-deck YAML file, listing cards in
// the same order as Export
func ExportYAML(name string, d deck.Deck) ([]byte, error) {
	g := d.Group()

	entry := DeckEntry{Name: name, Cards: []CardEntry{}}
	appendEntries := func(entries []deck.Entry) {
		for _, e := range entries {
			entry.Cards = append(entry.Cards, CardEntry{Name: e.Card.Name, Count: e.Quantity})
		}
	}
	appendEntries(g.Stronghold)
	appendEntries(g.Sensei)
	for _, s := range g.Dynasty {
		appendEntries(s.Entries)
	}
	for _, s := range g.Fate {
		appendEntries(s.Entries)
	}

	out, err := yaml.Marshal(DeckFile{Decks: []DeckEntry{entry}})
	if err != nil {
		return nil, fmt.Errorf("encode deck YAML: %w", err)
	}
	return out, nil
}
