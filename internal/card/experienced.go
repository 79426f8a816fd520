package card

import (
	"regexp"
	"strconv"
	"strings"
)

// KeywordUnique marks cards limited to one copy per deck
const KeywordUnique = "Unique"

// KeywordExperienced is the keyword carried by level 1 experienced printings
const KeywordExperienced = "Experienced"

var experiencedSuffix = regexp.MustCompile(`(?i)^(.*?)\s+-\s+(?:exp|experienced)\s*(\d*)$`)

// ParseExperienced splits an experienced card name into its base name and
// level. Names without an experienced suffix return level 0.
//
//	"Moto Chen - exp"            -> "Moto Chen", 1
//	"Moto Chen - exp2"           -> "Moto Chen", 2
//	"Moto Chen - Experienced 3"  -> "Moto Chen", 3
func ParseExperienced(name string) (string, int) {
	name = strings.TrimSpace(name)
	m := experiencedSuffix.FindStringSubmatch(name)
	if m == nil {
		return name, 0
	}

	level := 1
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 {
			return name, 0
		}
		level = n
	}
	return strings.TrimSpace(m[1]), level
}

// FormatExperienced returns the canonical display name of an experienced printing
func FormatExperienced(base string, level int) string {
	if level <= 0 {
		return base
	}
	if level == 1 {
		return base + " - " + KeywordExperienced
	}
	return base + " - " + ExperiencedKeyword(level)
}

// ExperiencedKeyword returns the keyword for an experience level
func ExperiencedKeyword(level int) string {
	if level <= 1 {
		return KeywordExperienced
	}
	return KeywordExperienced + " " + strconv.Itoa(level)
}
