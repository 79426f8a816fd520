package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienced(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		level int
	}{
		{"Moto Chen", "Moto Chen", 0},
		{"Moto Chen - exp", "Moto Chen", 1},
		{"Moto Chen - exp2", "Moto Chen", 2},
		{"Moto Chen - Exp 3", "Moto Chen", 3},
		{"Moto Chen - Experienced", "Moto Chen", 1},
		{"Moto Chen - Experienced 4", "Moto Chen", 4},
		{"  Hida Kisada - experienced5 ", "Hida Kisada", 5},
		{"Path of the Experienced", "Path of the Experienced", 0},
		{"Moto Chen - exp0", "Moto Chen - exp0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, level := ParseExperienced(tt.name)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestFormatExperienced(t *testing.T) {
	assert.Equal(t, "Moto Chen", FormatExperienced("Moto Chen", 0))
	assert.Equal(t, "Moto Chen - Experienced", FormatExperienced("Moto Chen", 1))
	assert.Equal(t, "Moto Chen - Experienced 2", FormatExperienced("Moto Chen", 2))
	assert.Equal(t, "Experienced", ExperiencedKeyword(1))
	assert.Equal(t, "Experienced 3", ExperiencedKeyword(3))
}

func TestNameCandidates(t *testing.T) {
	c := &Card{Name: "Moto Chen - exp2"}
	assert.Equal(t, []string{"Moto Chen - exp2", "Moto Chen - Experienced 2"}, c.NameCandidates())

	c = &Card{Name: "Moto Chen - exp2", FormattedName: "Moto Chen - Experienced 2"}
	assert.Equal(t, []string{"Moto Chen - exp2", "Moto Chen - Experienced 2"}, c.NameCandidates())

	c = &Card{Name: "Copper Mine", FormattedName: " "}
	assert.Equal(t, []string{"Copper Mine"}, c.NameCandidates())
}

func TestKeywordsAndLegality(t *testing.T) {
	c := &Card{
		Name:     "Bayushi Kachiko",
		Keywords: []string{"Unique", "Samurai"},
		Legality: []string{"Samurai", "Jade"},
	}
	assert.True(t, c.IsUnique())
	assert.True(t, c.HasKeyword("samurai"))
	assert.False(t, c.HasKeyword("Ronin"))

	assert.True(t, c.IsLegalIn(nil))
	assert.True(t, c.IsLegalIn([]string{"celestial", "samurai"}))
	assert.False(t, c.IsLegalIn([]string{"ivory"}))

	assert.Equal(t, "Bayushi Kachiko", c.DisplayName())
	c.FormattedName = "Bayushi Kachiko - Experienced"
	assert.Equal(t, "Bayushi Kachiko - Experienced", c.DisplayName())
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(" " + c.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	got, err := ParseCategory("Personality")
	require.NoError(t, err)
	assert.Equal(t, CategoryPersonality, got)

	_, err = ParseCategory("wind")
	assert.Error(t, err)
}

func TestCategorySuper(t *testing.T) {
	assert.Equal(t, SuperDynasty, CategoryRegion.Super())
	assert.Equal(t, SuperFate, CategoryRing.Super())
	assert.Equal(t, SuperNone, CategoryStronghold.Super())
	assert.Equal(t, SuperNone, CategorySensei.Super())
	assert.Equal(t, "Personalities", CategoryPersonality.Plural())
	assert.Equal(t, "Strategies", CategoryStrategy.Plural())
}

func TestStatsRestrict(t *testing.T) {
	var s Stats
	for _, a := range Attributes {
		s.Set(a, 1)
	}
	s.Restrict(CategoryHolding)

	for _, a := range Attributes {
		_, ok := s.Get(a)
		assert.Equal(t, a == AttrCost || a == AttrGoldProduction, ok, a.String())
	}

	s.Restrict(CategoryCelestial)
	_, ok := s.Get(AttrCost)
	assert.False(t, ok)
}

func TestParseAttribute(t *testing.T) {
	a, err := ParseAttribute("personal-honor")
	require.NoError(t, err)
	assert.Equal(t, AttrPersonalHonor, a)

	a, err = ParseAttribute("honorRequirement")
	require.NoError(t, err)
	assert.Equal(t, AttrHonorRequirement, a)
	assert.Equal(t, "goldProduction", AttrGoldProduction.Key())

	_, err = ParseAttribute("strength")
	assert.Error(t, err)
}
