package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakita-works/shugenja/internal/card"
)

func intp(v int) *int { return &v }

func personality(id, name, faction string, cost, force int, keywords ...string) *card.Card {
	c := &card.Card{ID: id, Name: name, Category: card.CategoryPersonality, Faction: faction, Keywords: keywords}
	c.Stats.Set(card.AttrCost, cost)
	c.Stats.Set(card.AttrForce, force)
	return c
}

func testCards() []*card.Card {
	mine := &card.Card{ID: "h1", Name: "Copper Mine", Category: card.CategoryHolding, Text: "Bow: Produce 2 Gold."}
	mine.Stats.Set(card.AttrCost, 5)
	mine.Stats.Set(card.AttrGoldProduction, 2)

	return []*card.Card{
		personality("p1", "Shosuro Kameyoi", "Scorpion", 6, 3, "Samurai", "Courtier"),
		personality("p2", "Utaku Yu-Pan", "Unicorn", 8, 4, "Samurai", "Light Cavalry"),
		personality("p3", "Wandering Ronin", "", 4, 2, "Ronin", "Scorpion Clan"),
		mine,
		{ID: "s1", Name: "Strength of Purity", Category: card.CategoryStrategy, Text: "Battle: Target your Samurai."},
	}
}

func ids(cards []*card.Card) []string {
	out := []string{}
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterEmptyCriteriaReturnsInput(t *testing.T) {
	cards := testCards()
	assert.Equal(t, cards, Filter(cards, Criteria{}))
	assert.Equal(t, cards, Filter(cards, Criteria{Ranges: map[card.Attribute]Range{card.AttrCost: {}}}))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "text matches name case-insensitively",
			criteria: Criteria{SearchTerm: "kameyoi"},
			want:     []string{"p1"},
		},
		{
			name:     "text matches rules text and keywords",
			criteria: Criteria{SearchTerm: "samurai"},
			want:     []string{"p1", "p2", "s1"},
		},
		{
			name:     "category",
			criteria: Criteria{Category: card.CategoryHolding},
			want:     []string{"h1"},
		},
		{
			name:     "faction matches clan or clan keyword",
			criteria: Criteria{Faction: "scorpion"},
			want:     []string{"p1", "p3"},
		},
		{
			name:     "keywords are any-of",
			criteria: Criteria{Keywords: []string{"ronin", "Light Cavalry"}},
			want:     []string{"p2", "p3"},
		},
		{
			name:     "inclusive range",
			criteria: Criteria{Ranges: map[card.Attribute]Range{card.AttrCost: {Min: intp(5), Max: intp(6)}}},
			want:     []string{"p1", "h1"},
		},
		{
			name:     "cards lacking the attribute fail the range",
			criteria: Criteria{Ranges: map[card.Attribute]Range{card.AttrForce: {Max: intp(10)}}},
			want:     []string{"p1", "p2", "p3"},
		},
		{
			name:     "min above max is empty",
			criteria: Criteria{Ranges: map[card.Attribute]Range{card.AttrCost: {Min: intp(7), Max: intp(3)}}},
			want:     []string{},
		},
		{
			name: "criteria compose",
			criteria: Criteria{
				Category: card.CategoryPersonality,
				Keywords: []string{"Samurai"},
				Ranges:   map[card.Attribute]Range{card.AttrForce: {Min: intp(4)}},
			},
			want: []string{"p2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(testCards(), tt.criteria)))
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	cards := testCards()
	before := ids(cards)
	_ = Filter(cards, Criteria{Category: card.CategoryHolding})
	assert.Equal(t, before, ids(cards))
}

func TestOptionsCriteria(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`{
		"searchTerm": " mine ",
		"category": "Holding",
		"faction": "all",
		"keywords": ["Farm", ""],
		"costMin": 2,
		"goldProductionMax": 3
	}`), &opts))

	c, err := opts.Criteria()
	require.NoError(t, err)
	assert.Equal(t, "mine", c.SearchTerm)
	assert.Equal(t, card.CategoryHolding, c.Category)
	assert.Empty(t, c.Faction)
	assert.Equal(t, []string{"Farm"}, c.Keywords)
	require.Len(t, c.Ranges, 2)
	assert.Equal(t, 2, *c.Ranges[card.AttrCost].Min)
	assert.Nil(t, c.Ranges[card.AttrCost].Max)
	assert.Equal(t, 3, *c.Ranges[card.AttrGoldProduction].Max)
}

func TestOptionsCriteriaAllCategory(t *testing.T) {
	c, err := Options{Category: "all"}.Criteria()
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestOptionsCriteriaUnknownCategory(t *testing.T) {
	_, err := Options{Category: "dragon"}.Criteria()
	assert.Error(t, err)
}
