package keyword

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Vocabulary is the closed list of mechanical keywords recognised in rules text
type Vocabulary struct {
	words   []string
	byLower map[string]string
	longest []string // lower-cased entries, longest first
}

// NewVocabulary builds a vocabulary from a word list. Blank entries and
// case-insensitive duplicates are dropped; the first spelling wins.
func NewVocabulary(words []string) *Vocabulary {
	v := &Vocabulary{byLower: make(map[string]string, len(words))}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		if _, ok := v.byLower[lower]; ok {
			continue
		}
		v.byLower[lower] = w
		v.words = append(v.words, w)
		v.longest = append(v.longest, lower)
	}
	sort.SliceStable(v.longest, func(i, j int) bool {
		return len(v.longest[i]) > len(v.longest[j])
	})
	return v
}

// Words returns the vocabulary entries in their original order
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Len returns the number of entries
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Lookup matches s against the vocabulary exactly, ignoring case, and
// returns the vocabulary spelling.
func (v *Vocabulary) Lookup(s string) (string, bool) {
	w, ok := v.byLower[strings.ToLower(strings.TrimSpace(s))]
	return w, ok
}

// Match resolves a keyword-line segment. An exact match wins; otherwise the
// longest entry found inside the segment on word boundaries is returned, so
// "Light Cavalry" beats "Cavalry".
func (v *Vocabulary) Match(segment string) (string, bool) {
	if w, ok := v.Lookup(segment); ok {
		return w, true
	}

	lower := strings.ToLower(strings.TrimSpace(segment))
	for _, entry := range v.longest {
		if containsWord(lower, entry) {
			return v.byLower[entry], true
		}
	}
	return "", false
}

// containsWord reports whether word occurs in s delimited by non-letters
func containsWord(s, word string) bool {
	for start := 0; start <= len(s)-len(word); {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)

		before, after := true, true
		if idx > 0 {
			r, _ := utf8.DecodeLastRuneInString(s[:idx])
			before = !isWordRune(r)
		}
		if end < len(s) {
			r, _ := utf8.DecodeRuneInString(s[end:])
			after = !isWordRune(r)
		}
		if before && after {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// defaultWords is the built-in Samurai Extended keyword list
var defaultWords = []string{
	"Unique",
	"Experienced",
	"Experienced 2",
	"Experienced 3",
	"Experienced 4",
	"Experienced 5",
	"Inexperienced",
	"Proud",
	"Loyal",
	"Resilient",
	"Conqueror",
	"Peacekeeper",
	"Destined",
	"Soul",
	"Singular",
	"Legacy",
	"Kharmic",
	"Reserve",
	"Samurai",
	"Ronin",
	"Courtier",
	"Shugenja",
	"Monk",
	"Ninja",
	"Kolat",
	"Bushi",
	"Berserker",
	"Magistrate",
	"Duelist",
	"Cavalry",
	"Light Cavalry",
	"Heavy Cavalry",
	"Commander",
	"Tactician",
	"Scout",
	"Sensei",
	"Paragon",
	"Naval",
	"Crab Clan",
	"Crane Clan",
	"Dragon Clan",
	"Lion Clan",
	"Mantis Clan",
	"Phoenix Clan",
	"Scorpion Clan",
	"Spider Clan",
	"Unicorn Clan",
	"Imperial",
	"Brotherhood",
	"Naga",
	"Shadowlands",
	"Oni",
	"Undead",
	"Nonhuman",
	"Spirit",
	"Ratling",
	"Goblin",
	"Lost",
	"Tainted",
	"Farm",
	"Mine",
	"Castle",
	"Temple",
	"Dojo",
	"Shrine",
	"Trading Post",
	"Library",
	"Kiho",
	"Kata",
	"Tattoo",
	"Ancestor",
	"Weapon",
	"Armor",
	"Artifact",
	"Sword",
	"Bow",
	"Spear",
	"Staff",
	"Fan",
	"Mount",
	"Horse",
	"Troop",
	"Ship",
	"Elemental",
	"Air",
	"Earth",
	"Fire",
	"Water",
	"Void",
	"Thunder",
	"Maho",
	"Battle Maiden",
	"Tactic",
	"Duel",
	"Air Ring",
	"Earth Ring",
	"Fire Ring",
	"Water Ring",
	"Void Ring",
}

// DefaultVocabulary returns the built-in keyword vocabulary
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultWords)
}
