package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kakita-works/shugenja/internal/card"
)

func newCard(id, name string, category card.Category, keywords ...string) *card.Card {
	return &card.Card{ID: id, Name: name, Category: category, Keywords: keywords}
}

var (
	mine     = newCard("h1", "Copper Mine", card.CategoryHolding)
	kachiko  = newCard("p1", "Bayushi Kachiko", card.CategoryPersonality, "Unique", "Samurai")
	ambush   = newCard("s1", "Ambush", card.CategoryStrategy)
	keep     = newCard("k1", "Midday Shadow Court", card.CategoryStronghold)
	ringFire = newCard("r1", "Ring of Fire", card.CategoryRing, "Unique")
)

func TestAdd(t *testing.T) {
	d := New(DefaultRules())

	d = d.Add(mine).Add(mine).Add(mine)
	assert.Equal(t, 3, d.CountOf("h1"))

	capped := d.Add(mine)
	assert.Equal(t, 3, capped.CountOf("h1"), "copy limit is a no-op")

	d = d.Add(kachiko)
	again := d.Add(kachiko)
	assert.Equal(t, 1, again.CountOf("p1"), "unique cards are added once")

	assert.Equal(t, d, d.Add(nil))
	assert.Equal(t, 0, d.CountOf("missing"))
}

func TestAddRemoveInverse(t *testing.T) {
	base := New(DefaultRules()).Add(mine).Add(ambush)

	for _, c := range []*card.Card{mine, ambush, kachiko, keep} {
		t.Run(c.Name, func(t *testing.T) {
			got := base.Add(c).Remove(c.ID)
			assert.Equal(t, base.Entries(), got.Entries())
		})
	}

	withUnique := base.Add(kachiko)
	got := withUnique.Add(kachiko).Remove(kachiko.ID)
	assert.Equal(t, 0, got.CountOf(kachiko.ID))
}

func TestRemove(t *testing.T) {
	d := New(DefaultRules()).Add(mine).Add(mine).Add(ambush)

	d = d.Remove("h1")
	assert.Equal(t, 1, d.CountOf("h1"))

	d = d.Remove("h1")
	assert.Equal(t, 0, d.CountOf("h1"))
	assert.Equal(t, 1, d.UniqueEntryCount())

	assert.Equal(t, d, d.Remove("unknown"))
}

func TestImmutability(t *testing.T) {
	d := New(DefaultRules()).Add(mine)
	snapshot := d.Entries()

	_ = d.Add(mine)
	_ = d.Add(ambush)
	_ = d.Remove("h1")
	_ = d.Accumulate(mine, 5)
	_ = d.Clear()

	assert.Equal(t, snapshot, d.Entries())

	entries := d.Entries()
	entries[0].Quantity = 99
	assert.Equal(t, 1, d.CountOf("h1"))
}

func TestAccumulate(t *testing.T) {
	d := New(DefaultRules()).
		Accumulate(mine, 2).
		Accumulate(mine, 3).
		Accumulate(kachiko, 2).
		Accumulate(ambush, 0).
		Accumulate(nil, 1)

	assert.Equal(t, 5, d.CountOf("h1"))
	assert.Equal(t, 2, d.CountOf("p1"))
	assert.Equal(t, 2, d.UniqueEntryCount())
}

func TestCounts(t *testing.T) {
	d := New(DefaultRules()).
		Accumulate(keep, 1).
		Accumulate(mine, 3).
		Accumulate(kachiko, 1).
		Accumulate(ambush, 2).
		Accumulate(ringFire, 1)

	assert.Equal(t, 8, d.Total())
	assert.Equal(t, 4, d.DynastyCount())
	assert.Equal(t, 3, d.FateCount())
	assert.Equal(t, 1, d.CategoryCount(card.CategoryStronghold))
	assert.Equal(t, 5, d.UniqueEntryCount())
	assert.False(t, d.IsEmpty())

	cleared := d.Clear()
	assert.True(t, cleared.IsEmpty())
	assert.Equal(t, DefaultRules(), cleared.Rules())
}

func TestGroup(t *testing.T) {
	exp := newCard("p2", "Bayushi Kachiko", card.CategoryPersonality)
	event := newCard("e1", "Rise of the Jade Champion", card.CategoryEvent)
	sensei := newCard("z1", "Hida Sensei", card.CategorySensei)

	d := New(DefaultRules()).
		Accumulate(ambush, 2).
		Accumulate(event, 1).
		Accumulate(mine, 3).
		Accumulate(kachiko, 1).
		Accumulate(keep, 1).
		Accumulate(ringFire, 1).
		Accumulate(exp, 1).
		Accumulate(sensei, 1)

	g := d.Group()

	assert.Equal(t, []Entry{{Card: keep, Quantity: 1}}, g.Stronghold)
	assert.Equal(t, []Entry{{Card: sensei, Quantity: 1}}, g.Sensei)

	var titles []string
	for _, s := range g.Dynasty {
		titles = append(titles, s.Title())
	}
	assert.Equal(t, []string{"Personalities", "Holdings", "Events"}, titles)

	personalities := g.Dynasty[0]
	assert.Equal(t, []Entry{{Card: kachiko, Quantity: 2}}, personalities.Entries, "printings sharing a name merge")
	assert.Equal(t, 2, personalities.Count())

	titles = nil
	for _, s := range g.Fate {
		titles = append(titles, s.Title())
	}
	assert.Equal(t, []string{"Strategies", "Rings"}, titles)

	assert.Empty(t, New(DefaultRules()).Group().Dynasty)
}

func TestAddCountsPrintingsByName(t *testing.T) {
	first := newCard("a", "Iron Mine", card.CategoryHolding)
	second := newCard("b", "Iron Mine", card.CategoryHolding)

	d := New(DefaultRules())
	for i := 0; i < 5; i++ {
		d = d.Add(first).Add(second)
	}
	assert.Equal(t, 3, d.NameCount("Iron Mine"))
	assert.Equal(t, 2, d.CountOf("a"))
	assert.Equal(t, 1, d.CountOf("b"))

	exp := newCard("p2", "Bayushi Kachiko", card.CategoryPersonality, "Unique")
	d = New(DefaultRules()).Add(kachiko).Add(exp)
	assert.Equal(t, 1, d.NameCount("Bayushi Kachiko"))
	assert.Equal(t, 0, d.CountOf("p2"))
}

func TestCopyLimitNeverBelowOne(t *testing.T) {
	rules := Rules{MinDynasty: 40, MinFate: 40, MaxCopies: 0}
	assert.Equal(t, 1, rules.CopyLimit())
	assert.Equal(t, 3, DefaultRules().CopyLimit())

	d := New(rules).Add(mine).Add(mine)
	assert.Equal(t, 1, d.CountOf("h1"))
}
