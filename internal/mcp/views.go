package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/deck"
	"github.com/kakita-works/shugenja/internal/deckfmt"
	"github.com/kakita-works/shugenja/internal/validator"
)

// CardView is the JSON form of a card returned by the tools
type CardView struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	DisplayName  string         `json:"displayName"`
	Category     string         `json:"category"`
	Faction      string         `json:"faction,omitempty"`
	Stats        map[string]int `json:"stats,omitempty"`
	Keywords     []string       `json:"keywords"`
	Text         string         `json:"text,omitempty"`
	Legality     []string       `json:"legality,omitempty"`
	Banned       bool           `json:"banned,omitempty"`
	BannedReason string         `json:"bannedReason,omitempty"`
	Set          string         `json:"set,omitempty"`
	Rarity       string         `json:"rarity,omitempty"`
	Artist       string         `json:"artist,omitempty"`
	Flavor       string         `json:"flavor,omitempty"`
	BackText     string         `json:"backText,omitempty"`
}

func newCardView(c *card.Card, full bool) CardView {
	v := CardView{
		ID:           c.ID,
		Name:         c.Name,
		DisplayName:  c.DisplayName(),
		Category:     c.Category.String(),
		Faction:      c.Faction,
		Keywords:     c.Keywords,
		Banned:       c.Banned,
		BannedReason: c.BannedReason,
	}
	if v.Keywords == nil {
		v.Keywords = []string{}
	}
	for _, a := range card.Attributes {
		if n, ok := c.Stats.Get(a); ok {
			if v.Stats == nil {
				v.Stats = make(map[string]int)
			}
			v.Stats[a.Key()] = n
		}
	}
	if full {
		v.Text = c.Text
		v.Legality = c.Legality
		v.Set = c.Set
		v.Rarity = c.Rarity
		v.Artist = c.Artist
		v.Flavor = c.Flavor
		if c.Back != nil {
			v.BackText = c.Back.Text
		}
	}
	return v
}

// EntryView is one line of a deck listing
type EntryView struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SectionView is one category of a deck listing
type SectionView struct {
	Section string      `json:"section"`
	Count   int         `json:"count"`
	Cards   []EntryView `json:"cards"`
}

// GroupsView is the grouped JSON form of a deck
type GroupsView struct {
	Stronghold []EntryView   `json:"stronghold"`
	Sensei     []EntryView   `json:"sensei"`
	Dynasty    []SectionView `json:"dynasty"`
	Fate       []SectionView `json:"fate"`
	Total      int           `json:"total"`
}

func newGroupsView(d deck.Deck) GroupsView {
	g := d.Group()
	return GroupsView{
		Stronghold: entryViews(g.Stronghold),
		Sensei:     entryViews(g.Sensei),
		Dynasty:    sectionViews(g.Dynasty),
		Fate:       sectionViews(g.Fate),
		Total:      d.Total(),
	}
}

func entryViews(entries []deck.Entry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryView{Name: e.Card.Name, Quantity: e.Quantity})
	}
	return out
}

func sectionViews(sections []deck.Section) []SectionView {
	out := make([]SectionView, 0, len(sections))
	for _, s := range sections {
		out = append(out, SectionView{Section: s.Title(), Count: s.Count(), Cards: entryViews(s.Entries)})
	}
	return out
}

// DeckReport is the response of validate_deck
type DeckReport struct {
	Deck         GroupsView                  `json:"deck"`
	Validation   validator.ValidationResults `json:"validation"`
	MissingCards []deckfmt.MissingCard       `json:"missingCards"`
	BannedCards  []deckfmt.BannedCard        `json:"bannedCards"`
	Skipped      int                         `json:"skippedLines"`
}

// SearchResponse is the response of search_cards
type SearchResponse struct {
	Total    int        `json:"total"`
	Returned int        `json:"returned"`
	Cards    []CardView `json:"cards"`
}

// ExportResponse is the response of export_deck
type ExportResponse struct {
	Text         string                `json:"text"`
	MissingCards []deckfmt.MissingCard `json:"missingCards"`
}

// ValuesResponse is the response of list_values
type ValuesResponse struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
