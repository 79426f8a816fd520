package validator

import (
	"fmt"
	"strings"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/deck"
)

// Format describes the legality tags of the format decks are checked against
type Format struct {
	Name  string
	Legal []string
}

// ValidationResults is the outcome of validating a deck
type ValidationResults struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	DynastyCount    int `json:"dynastyCount"`
	FateCount       int `json:"fateCount"`
	StrongholdCount int `json:"strongholdCount"`
	SenseiCount     int `json:"senseiCount"`
	UniqueCount     int `json:"uniqueCount"`
}

// Validator checks decks against composition rules
type Validator struct {
	Rules  deck.Rules
	Format Format
}

// NewValidator returns a validator for the given rules and format
func NewValidator(rules deck.Rules, format Format) *Validator {
	return &Validator{
		Rules:  rules,
		Format: format,
	}
}

// Validate checks the deck. It never modifies the deck and returns the same
// results for the same deck.
func (v *Validator) Validate(d deck.Deck) ValidationResults {
	results := ValidationResults{
		Errors:          []string{},
		Warnings:        []string{},
		DynastyCount:    d.DynastyCount(),
		FateCount:       d.FateCount(),
		StrongholdCount: d.CategoryCount(card.CategoryStronghold),
		SenseiCount:     d.CategoryCount(card.CategorySensei),
		UniqueCount:     d.UniqueEntryCount(),
	}

	entries := d.Entries()
	v.validateDeckSizes(&results)
	v.validateStronghold(&results)
	v.validateSensei(&results)
	v.validateCopies(entries, &results)
	v.checkBanned(entries, &results)
	v.checkLegality(entries, &results)

	results.Valid = len(results.Errors) == 0
	return results
}

func (v *Validator) validateDeckSizes(r *ValidationResults) {
	if r.DynastyCount < v.Rules.MinDynasty {
		r.Errors = append(r.Errors,
			fmt.Sprintf("Dynasty deck needs at least %d cards (currently %d)", v.Rules.MinDynasty, r.DynastyCount))
	}

	if r.FateCount < v.Rules.MinFate {
		r.Errors = append(r.Errors,
			fmt.Sprintf("Fate deck needs at least %d cards (currently %d)", v.Rules.MinFate, r.FateCount))
	}
}

func (v *Validator) validateStronghold(r *ValidationResults) {
	switch {
	case r.StrongholdCount == 0:
		r.Errors = append(r.Errors, "Deck must contain exactly 1 Stronghold")
	case r.StrongholdCount > 1:
		r.Errors = append(r.Errors,
			fmt.Sprintf("Deck can only contain 1 Stronghold (currently %d)", r.StrongholdCount))
	}
}

func (v *Validator) validateSensei(r *ValidationResults) {
	if r.SenseiCount > 1 {
		r.Errors = append(r.Errors,
			fmt.Sprintf("Deck can only contain 1 Sensei (currently %d)", r.SenseiCount))
	}
}

// validateCopies checks per-card copy limits. Printings sharing a name count
// together. Strongholds and senseis are covered by their own checks.
func (v *Validator) validateCopies(entries []deck.Entry, r *ValidationResults) {
	type tally struct {
		quantity int
		unique   bool
	}
	var names []string
	byName := make(map[string]*tally)
	for _, e := range entries {
		if e.Card.Category.Super() == card.SuperNone {
			continue
		}
		t, ok := byName[e.Card.Name]
		if !ok {
			t = &tally{}
			byName[e.Card.Name] = t
			names = append(names, e.Card.Name)
		}
		t.quantity += e.Quantity
		t.unique = t.unique || e.Card.IsUnique()
	}

	limit := v.Rules.CopyLimit()
	for _, name := range names {
		t := byName[name]
		if t.unique {
			if t.quantity > 1 {
				r.Errors = append(r.Errors,
					fmt.Sprintf("%s is Unique and may appear only once (currently %d)", name, t.quantity))
			}
			continue
		}
		if t.quantity > limit {
			r.Errors = append(r.Errors,
				fmt.Sprintf("%s has too many copies (%d/%d)", name, t.quantity, limit))
		}
	}
}

func (v *Validator) checkBanned(entries []deck.Entry, r *ValidationResults) {
	for _, e := range entries {
		if !e.Card.Banned {
			continue
		}
		reason := e.Card.BannedReason
		if reason == "" {
			reason = v.bannedReason()
		}
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s is banned: %s", e.Card.Name, reason))
	}
}

func (v *Validator) bannedReason() string {
	if v.Format.Name == "" {
		return "this card is banned"
	}
	return fmt.Sprintf("this card is banned in %s format", v.Format.Name)
}

func (v *Validator) checkLegality(entries []deck.Entry, r *ValidationResults) {
	if len(v.Format.Legal) == 0 {
		return
	}

	var illegal []string
	for _, e := range entries {
		if !e.Card.IsLegalIn(v.Format.Legal) {
			illegal = append(illegal, e.Card.Name)
		}
	}
	if len(illegal) > 0 {
		name := v.Format.Name
		if name == "" {
			name = "the selected"
		}
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("not legal in %s format: %s", name, strings.Join(illegal, ", ")))
	}
}
