package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/deck"
)

func filler(prefix string, category card.Category, n int) []*card.Card {
	cards := make([]*card.Card, n)
	for i := range cards {
		cards[i] = &card.Card{
			ID:       fmt.Sprintf("%s%d", prefix, i),
			Name:     fmt.Sprintf("%s %d", prefix, i),
			Category: category,
			Legality: []string{"Samurai"},
		}
	}
	return cards
}

func legalDeck() deck.Deck {
	d := deck.New(deck.DefaultRules())
	d = d.Accumulate(&card.Card{ID: "sh", Name: "Midday Shadow Court", Category: card.CategoryStronghold, Legality: []string{"Samurai"}}, 1)
	for _, c := range filler("Holding", card.CategoryHolding, 20) {
		d = d.Accumulate(c, 2)
	}
	for _, c := range filler("Strategy", card.CategoryStrategy, 20) {
		d = d.Accumulate(c, 2)
	}
	return d
}

func TestValidateLegalDeck(t *testing.T) {
	v := NewValidator(deck.DefaultRules(), Format{Name: "Samurai Extended", Legal: []string{"samurai"}})
	r := v.Validate(legalDeck())

	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.NotNil(t, r.Errors)
	assert.Equal(t, 40, r.DynastyCount)
	assert.Equal(t, 40, r.FateCount)
	assert.Equal(t, 1, r.StrongholdCount)
	assert.Equal(t, 0, r.SenseiCount)
	assert.Equal(t, 41, r.UniqueCount)
}

func TestValidateEmptyDeck(t *testing.T) {
	r := NewValidator(deck.DefaultRules(), Format{}).Validate(deck.New(deck.DefaultRules()))

	assert.False(t, r.Valid)
	assert.Equal(t, []string{
		"Dynasty deck needs at least 40 cards (currently 0)",
		"Fate deck needs at least 40 cards (currently 0)",
		"Deck must contain exactly 1 Stronghold",
	}, r.Errors)
}

func TestValidateCompositionErrors(t *testing.T) {
	d := legalDeck().
		Accumulate(&card.Card{ID: "sh2", Name: "Second Keep", Category: card.CategoryStronghold}, 1).
		Accumulate(&card.Card{ID: "se1", Name: "Sensei A", Category: card.CategorySensei}, 2).
		Accumulate(&card.Card{ID: "u1", Name: "Bayushi Kachiko", Category: card.CategoryPersonality, Keywords: []string{"Unique"}}, 2).
		Accumulate(&card.Card{ID: "m1", Name: "Copper Mine", Category: card.CategoryHolding}, 4)

	r := NewValidator(deck.DefaultRules(), Format{}).Validate(d)

	assert.False(t, r.Valid)
	assert.Equal(t, []string{
		"Deck can only contain 1 Stronghold (currently 2)",
		"Deck can only contain 1 Sensei (currently 2)",
		"Bayushi Kachiko is Unique and may appear only once (currently 2)",
		"Copper Mine has too many copies (4/3)",
	}, r.Errors)
	assert.Equal(t, 2, r.StrongholdCount)
	assert.Equal(t, 2, r.SenseiCount)
}

func TestValidateCustomRules(t *testing.T) {
	rules := deck.Rules{MinDynasty: 1, MinFate: 0, MaxCopies: 5}
	d := deck.New(rules).
		Accumulate(&card.Card{ID: "sh", Name: "Keep", Category: card.CategoryStronghold}, 1).
		Accumulate(&card.Card{ID: "m1", Name: "Copper Mine", Category: card.CategoryHolding}, 5)

	r := NewValidator(rules, Format{}).Validate(d)
	assert.True(t, r.Valid, r.Errors)
}

func TestValidateWarnings(t *testing.T) {
	d := legalDeck().
		Accumulate(&card.Card{ID: "b1", Name: "Bad Card", Category: card.CategoryEvent, Banned: true, Legality: []string{"Samurai"}}, 1).
		Accumulate(&card.Card{ID: "b2", Name: "Worse Card", Category: card.CategoryEvent, Banned: true, BannedReason: "errata pending", Legality: []string{"Samurai"}}, 1).
		Accumulate(&card.Card{ID: "o1", Name: "Old Card", Category: card.CategoryEvent, Legality: []string{"Jade"}}, 1)

	r := NewValidator(deck.DefaultRules(), Format{Name: "Samurai Extended", Legal: []string{"Samurai"}}).Validate(d)

	assert.True(t, r.Valid, "bans and legality are advisory")
	assert.Equal(t, []string{
		"Bad Card is banned: this card is banned in Samurai Extended format",
		"Worse Card is banned: errata pending",
		"not legal in Samurai Extended format: Old Card",
	}, r.Warnings)

	r = NewValidator(deck.DefaultRules(), Format{}).Validate(d)
	assert.Equal(t, []string{
		"Bad Card is banned: this card is banned",
		"Worse Card is banned: errata pending",
	}, r.Warnings)
}

func TestValidateIsPure(t *testing.T) {
	d := legalDeck().Accumulate(&card.Card{ID: "m1", Name: "Copper Mine", Category: card.CategoryHolding}, 4)
	before := d.Entries()

	v := NewValidator(deck.DefaultRules(), Format{})
	first := v.Validate(d)
	second := v.Validate(d)

	assert.Equal(t, first, second)
	assert.Equal(t, before, d.Entries())
}

func TestValidateCountsPrintingsByName(t *testing.T) {
	d := legalDeck().
		Accumulate(&card.Card{ID: "a", Name: "Iron Mine", Category: card.CategoryHolding}, 2).
		Accumulate(&card.Card{ID: "b", Name: "Iron Mine", Category: card.CategoryHolding}, 2).
		Accumulate(&card.Card{ID: "k1", Name: "Bayushi Kachiko", Category: card.CategoryPersonality, Keywords: []string{"Unique"}}, 1).
		Accumulate(&card.Card{ID: "k2", Name: "Bayushi Kachiko", Category: card.CategoryPersonality}, 1)

	r := NewValidator(deck.DefaultRules(), Format{}).Validate(d)
	assert.Equal(t, []string{
		"Iron Mine has too many copies (4/3)",
		"Bayushi Kachiko is Unique and may appear only once (currently 2)",
	}, r.Errors)
}

func TestValidateZeroCopyLimit(t *testing.T) {
	rules := deck.Rules{MinDynasty: 0, MinFate: 0, MaxCopies: 0}
	d := deck.New(rules).
		Accumulate(&card.Card{ID: "sh", Name: "Keep", Category: card.CategoryStronghold}, 1).
		Add(&card.Card{ID: "m1", Name: "Copper Mine", Category: card.CategoryHolding})

	r := NewValidator(rules, Format{}).Validate(d)
	assert.True(t, r.Valid, r.Errors)
}
