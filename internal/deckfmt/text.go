// Package deckfmt reads and writes deck lists: the plain-text format shared
// between players, and YAML deck files.
package deckfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/deck"
)

// ErrNotText is returned when deck input cannot be read as text
var ErrNotText = errors.New("deck input is not text")

// maxLineLength bounds a single deck-list line
const maxLineLength = 1 << 20

var linePattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// MissingCard is a deck-list line whose name did not resolve
type MissingCard struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// BannedCard is a resolved deck-list line naming a banned card
type BannedCard struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Result is the outcome of importing a deck list. Unresolved and banned
// names are diagnostics, not failures.
type Result struct {
	Deck         deck.Deck
	MissingCards []MissingCard
	BannedCards  []BannedCard
	Skipped      int // non-blank, non-comment lines that did not parse
}

// Importer resolves deck lists against a catalog
type Importer struct {
	Catalog *catalog.Catalog
	Rules   deck.Rules
	Format  string // format name used in default ban reasons
}

// NewImporter returns an importer for the catalog and rules
func NewImporter(c *catalog.Catalog, rules deck.Rules, format string) *Importer {
	if c == nil {
		c = catalog.Empty()
	}
	return &Importer{Catalog: c, Rules: rules, Format: format}
}

// ImportString imports a deck list held in memory
func (im *Importer) ImportString(text string) (*Result, error) {
	return im.Import(strings.NewReader(text))
}

// Import reads a deck list. Blank lines and lines starting with '#' are
// skipped; other lines must read "<quantity> <card name>" and are silently
// ignored otherwise. The only errors come from unreadable or non-UTF-8 input.
func (im *Importer) Import(r io.Reader) (*Result, error) {
	res := &Result{
		Deck:         deck.New(im.Rules),
		MissingCards: []MissingCard{},
		BannedCards:  []BannedCard{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: invalid UTF-8", ErrNotText)
		}
		im.importLine(strings.TrimSpace(line), res)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotText, err)
	}
	return res, nil
}

func (im *Importer) importLine(line string, res *Result) {
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	quantity, name, ok := parseLine(line)
	if !ok {
		res.Skipped++
		return
	}

	im.add(name, quantity, res)
}

// add resolves one (quantity, name) pair into the result
func (im *Importer) add(name string, quantity int, res *Result) {
	c, found := im.Catalog.FindByName(name)
	if !found {
		res.MissingCards = append(res.MissingCards, MissingCard{Name: name, Quantity: quantity})
		return
	}

	if c.Banned {
		reason := c.BannedReason
		if reason == "" {
			reason = im.defaultBanReason()
		}
		res.BannedCards = append(res.BannedCards, BannedCard{Name: name, Quantity: quantity, Reason: reason})
	}

	res.Deck = res.Deck.Accumulate(c, quantity)
}

func (im *Importer) defaultBanReason() string {
	if im.Format == "" {
		return "This card is banned"
	}
	return fmt.Sprintf("This card is banned in %s format", im.Format)
}

// parseLine splits "<quantity> <name>". Zero quantities do not parse.
func parseLine(line string) (int, string, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	quantity, err := strconv.Atoi(m[1])
	if err != nil || quantity <= 0 {
		return 0, "", false
	}
	name := strings.TrimSpace(m[2])
	if name == "" {
		return 0, "", false
	}
	return quantity, name, true
}

// Export writes the deck in the shared text format: Stronghold and Sensei
// sections, then Dynasty and Fate with one sub-heading per populated
// category. Empty sections are omitted.
func Export(d deck.Deck) string {
	g := d.Group()

	var blocks []string
	if len(g.Stronghold) > 0 {
		blocks = append(blocks, "# Stronghold\n"+cardLines(g.Stronghold))
	}
	if len(g.Sensei) > 0 {
		blocks = append(blocks, "# Sensei\n"+cardLines(g.Sensei))
	}
	if len(g.Dynasty) > 0 {
		blocks = append(blocks, "# Dynasty\n"+sectionLines(g.Dynasty))
	}
	if len(g.Fate) > 0 {
		blocks = append(blocks, "# Fate\n"+sectionLines(g.Fate))
	}

	return strings.Join(blocks, "\n")
}

func sectionLines(sections []deck.Section) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "# %s (%d)\n", s.Title(), s.Count())
		b.WriteString(cardLines(s.Entries))
	}
	return b.String()
}

func cardLines(entries []deck.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d %s\n", e.Quantity, e.Card.Name)
	}
	return b.String()
}
