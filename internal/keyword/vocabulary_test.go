package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary([]string{"Unique", "unique", " ", "Cavalry"})
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"Unique", "Cavalry"}, v.Words())

	words := v.Words()
	words[0] = "changed"
	assert.Equal(t, "Unique", v.Words()[0])
}

func TestLookup(t *testing.T) {
	v := DefaultVocabulary()

	w, ok := v.Lookup(" crane clan ")
	assert.True(t, ok)
	assert.Equal(t, "Crane Clan", w)

	_, ok = v.Lookup("Crane")
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		segment string
		want    string
		ok      bool
	}{
		{"Cavalry", "Cavalry", true},
		{"Light Cavalry", "Light Cavalry", true},
		{"Elite Light Cavalry", "Light Cavalry", true},
		{"Heavy Cavalry Unit", "Heavy Cavalry", true},
		{"Cavalryman", "", false},
		{"Gaijin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			got, ok := v.Match(tt.segment)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
