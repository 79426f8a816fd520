package keyword

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		raw  string
		want Result
	}{
		{
			name: "bulleted keyword line",
			raw:  "Samurai • Courtier • Crane Clan<br>Limited: Gain 2 gold.\n<b>Battle:</b> Bow target.",
			want: Result{
				Keywords: []string{"Samurai", "Courtier", "Crane Clan"},
				Text:     "Limited: Gain 2 gold.\n**Battle:** Bow target.",
			},
		},
		{
			name: "middle dot separator",
			raw:  "Samurai · Ronin<br>Reaction: Draw a card.",
			want: Result{
				Keywords: []string{"Samurai", "Ronin"},
				Text:     "Reaction: Draw a card.",
			},
		},
		{
			name: "windows bullet entity",
			raw:  "Samurai &#149; Courtier<br>Text &amp; more",
			want: Result{
				Keywords: []string{"Samurai", "Courtier"},
				Text:     "Text & more",
			},
		},
		{
			name: "single keyword line without bullet",
			raw:  "Unique<br>Deal damage.",
			want: Result{
				Keywords: []string{"Unique"},
				Text:     "Deal damage.",
			},
		},
		{
			name: "bold keywords removed from text",
			raw:  "<b>Unique</b> <b>Samurai</b><br>Some text",
			want: Result{
				Keywords: []string{"Unique", "Samurai"},
				Text:     "Some text",
			},
		},
		{
			name: "ability label kept",
			raw:  "<b>Battle:</b> Bow a target.",
			want: Result{
				Keywords: []string{},
				Text:     "**Battle:** Bow a target.",
			},
		},
		{
			name: "italic markers",
			raw:  "<i>Flavor</i> text",
			want: Result{
				Keywords: []string{},
				Text:     "*Flavor* text",
			},
		},
		{
			name: "blank lines squeezed",
			raw:  "First<br><br><br>Second<br>",
			want: Result{
				Keywords: []string{},
				Text:     "First\n\nSecond",
			},
		},
		{
			name: "escaped markup",
			raw:  "&lt;b&gt;Evil&lt;/b&gt; strikes&lt;br&gt;Cost &lt; 3",
			want: Result{
				Keywords: []string{},
				Text:     "**Evil** strikes\nCost < 3",
			},
		},
		{
			name: "escaped keyword line",
			raw:  "Samurai &#8226; Ronin&lt;br /&gt;&#60;b&#62;Unique&#60;/b&#62; Draw a card.",
			want: Result{
				Keywords: []string{"Samurai", "Ronin", "Unique"},
				Text:     "Draw a card.",
			},
		},
		{
			name: "empty",
			raw:  "  ",
			want: Result{Keywords: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeDeduplicatesKeywords(t *testing.T) {
	n := NewNormalizer(nil)
	got := n.Normalize("Samurai • samurai<br><b>Samurai</b> attacks.")
	assert.Equal(t, []string{"Samurai"}, got.Keywords)
	assert.Equal(t, "attacks.", got.Text)
}

func TestNormalizeCustomVocabulary(t *testing.T) {
	n := NewNormalizer(NewVocabulary([]string{"Gaijin"}))
	got := n.Normalize("Gaijin • Samurai<br>Text")
	assert.Equal(t, []string{"Gaijin"}, got.Keywords)
	assert.Equal(t, "Text", got.Text)
	assert.Equal(t, 1, n.Vocabulary().Len())
}

func TestNormalizeNeverKeepsTags(t *testing.T) {
	n := NewNormalizer(nil)
	for _, raw := range []string{
		"&lt;b&gt;Evil&lt;/b&gt;",
		"&#x3C;i&#x3E;Flavor&#x3C;/i&#x3E;",
		"<b>Open:</b> &lt;em&gt;bow&lt;/em&gt;",
	} {
		got := n.Normalize(raw)
		assert.NotRegexp(t, `</?[A-Za-z][^<>]*>`, got.Text, raw)
	}
}
