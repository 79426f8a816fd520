// Package catalog loads card records and answers lookup queries over them.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/keyword"
)

var (
	// ErrDataUnavailable is returned when the catalog file is missing or malformed
	ErrDataUnavailable = errors.New("card data unavailable")
	// ErrCardNotFound is returned when a card reference does not resolve
	ErrCardNotFound = errors.New("card not found")
	// ErrUnknownField is returned by UniqueValues for unsupported fields
	ErrUnknownField = errors.New("unknown field")
)

// idNamespace seeds the name-derived IDs of records without an ID
var idNamespace = uuid.MustParse("5b0d2f3c-7a51-4d8e-9c1e-3f6a2b8d4e10")

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Options controls how records are turned into cards
type Options struct {
	Normalizer *keyword.Normalizer
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Normalizer == nil {
		o.Normalizer = keyword.NewNormalizer(nil)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Catalog is an immutable, ordered collection of cards
type Catalog struct {
	cards  []*card.Card
	byID   map[string]*card.Card
	byName map[string]*card.Card
}

// Empty returns a catalog without cards
func Empty() *Catalog {
	return New(nil)
}

// New builds a catalog from cards. Cards with an ID already seen are dropped.
func New(cards []*card.Card) *Catalog {
	c := &Catalog{
		byID:   make(map[string]*card.Card, len(cards)),
		byName: make(map[string]*card.Card, len(cards)),
	}
	for _, cd := range cards {
		if cd == nil {
			continue
		}
		if _, dup := c.byID[cd.ID]; dup {
			continue
		}
		c.byID[cd.ID] = cd
		c.cards = append(c.cards, cd)
		for _, name := range cd.NameCandidates() {
			if _, taken := c.byName[name]; !taken {
				c.byName[name] = cd
			}
		}
	}
	return c
}

// Load reads a JSON or YAML array of card records. Any failure to read or
// decode the file wraps ErrDataUnavailable.
func Load(path string, opts Options) (*Catalog, error) {
	opts = opts.withDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	records, err := DecodeRecords(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}

	c := FromRecords(records, opts)
	opts.Logger.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("cards", c.Len()))
	return c, nil
}

// Format is the serialization of a catalog file
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeRecords decodes a catalog document
func DecodeRecords(data []byte, format Format) ([]Record, error) {
	var records []Record
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	return records, nil
}

// FromRecords converts records to cards. Records without a name, with an
// unknown type, or with a duplicate ID are skipped and logged.
func FromRecords(records []Record, opts Options) *Catalog {
	opts = opts.withDefaults()
	log := opts.Logger

	cards := make([]*card.Card, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i := range records {
		cd, err := toCard(&records[i], i, opts.Normalizer)
		if err != nil {
			log.Warn("skipping card record", zap.Int("index", i), zap.Error(err))
			continue
		}
		if seen[cd.ID] {
			log.Warn("skipping duplicate card id",
				zap.String("id", cd.ID),
				zap.String("name", cd.Name))
			continue
		}
		seen[cd.ID] = true
		cards = append(cards, cd)
	}
	return New(cards)
}

// RecordID returns the record's ID, deriving a stable one from the name and
// position when the record has none.
func RecordID(r *Record, index int) string {
	if id := strings.TrimSpace(string(r.ID)); id != "" {
		return id
	}
	return uuid.NewSHA1(idNamespace, []byte(string(r.Name)+"#"+strconv.Itoa(index))).String()
}

func toCard(r *Record, index int, n *keyword.Normalizer) (*card.Card, error) {
	name := strings.TrimSpace(string(r.Name))
	if name == "" {
		return nil, errors.New("record has no name")
	}
	category, err := card.ParseCategory(string(r.Type))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	text := n.Normalize(string(r.Text))
	c := &card.Card{
		ID:            RecordID(r, index),
		Name:          name,
		FormattedName: strings.TrimSpace(string(r.FormattedName)),
		Category:      category,
		Faction:       strings.TrimSpace(string(r.Clan)),
		Text:          text.Text,
		Keywords:      mergeKeywords(r.Keywords, text.Keywords),
		Legality:      cleanList(r.Legality),
		Banned:        r.Banned,
		BannedReason:  strings.TrimSpace(r.BannedReason),
		Artwork:       strings.TrimSpace(r.ImagePath),
		Set:           strings.TrimSpace(string(r.Set)),
		Rarity:        strings.TrimSpace(string(r.Rarity)),
		Artist:        strings.TrimSpace(string(r.Artist)),
		Flavor:        n.Normalize(string(r.Flavor)).Text,
	}

	if base, level := card.ParseExperienced(name); level > 0 {
		if c.FormattedName == "" {
			c.FormattedName = card.FormatExperienced(base, level)
		}
		c.Keywords = mergeKeywords(c.Keywords, []string{card.ExperiencedKeyword(level)})
	}

	for attr, s := range map[card.Attribute]*Stat{
		card.AttrCost:             r.Cost,
		card.AttrForce:            r.Force,
		card.AttrChi:              r.Chi,
		card.AttrFocus:            r.Focus,
		card.AttrPersonalHonor:    r.PersonalHonor,
		card.AttrHonorRequirement: r.HonorRequirement,
		card.AttrGoldProduction:   r.GoldProduction,
	} {
		if s != nil && s.Valid {
			c.Stats.Set(attr, s.Value)
		}
	}
	c.Stats.Restrict(category)

	if r.Back != nil && (r.Back.ImagePath != "" || r.Back.Text != "") {
		back := n.Normalize(string(r.Back.Text))
		c.Back = &card.Face{
			Artwork:  strings.TrimSpace(r.Back.ImagePath),
			Text:     back.Text,
			Keywords: mergeKeywords(r.Back.Keywords, back.Keywords),
		}
	}

	return c, nil
}

// mergeKeywords joins explicit and extracted keywords, stripping markup and
// dropping case-insensitive duplicates.
func mergeKeywords(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, k := range list {
			k = strings.TrimSpace(tagPattern.ReplaceAllString(k, ""))
			if k == "" || seen[strings.ToLower(k)] {
				continue
			}
			seen[strings.ToLower(k)] = true
			out = append(out, k)
		}
	}
	return out
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of cards
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns the cards in catalog order
func (c *Catalog) Cards() []*card.Card {
	out := make([]*card.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// FindByID looks a card up by its identifier
func (c *Catalog) FindByID(id string) (*card.Card, error) {
	if cd, ok := c.byID[id]; ok {
		return cd, nil
	}
	return nil, fmt.Errorf("%w: id %q", ErrCardNotFound, id)
}

// FindByName resolves a name by exact equality against every card's name
// candidates. The first card in catalog order wins.
func (c *Catalog) FindByName(name string) (*card.Card, bool) {
	cd, ok := c.byName[name]
	return cd, ok
}

// Field names a card field with enumerable values
type Field string

const (
	FieldCategory Field = "category"
	FieldFaction  Field = "faction"
	FieldKeyword  Field = "keyword"
	FieldLegality Field = "legality"
	FieldSet      Field = "set"
	FieldRarity   Field = "rarity"
)

// Fields lists the fields supported by UniqueValues
var Fields = []Field{FieldCategory, FieldFaction, FieldKeyword, FieldLegality, FieldSet, FieldRarity}

// ParseField accepts a field name or one of its aliases (type, clan, keywords)
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "type":
		return FieldCategory, nil
	case "faction", "clan":
		return FieldFaction, nil
	case "keyword", "keywords":
		return FieldKeyword, nil
	case "legality", "legal":
		return FieldLegality, nil
	case "set", "edition":
		return FieldSet, nil
	case "rarity":
		return FieldRarity, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// UniqueValues returns the sorted set of values observed for a field
func (c *Catalog) UniqueValues(field Field) ([]string, error) {
	var extract func(*card.Card) []string
	switch field {
	case FieldCategory:
		extract = func(cd *card.Card) []string { return []string{cd.Category.String()} }
	case FieldFaction:
		extract = func(cd *card.Card) []string { return []string{cd.Faction} }
	case FieldKeyword:
		extract = func(cd *card.Card) []string { return cd.Keywords }
	case FieldLegality:
		extract = func(cd *card.Card) []string { return cd.Legality }
	case FieldSet:
		extract = func(cd *card.Card) []string { return []string{cd.Set} }
	case FieldRarity:
		extract = func(cd *card.Card) []string { return []string{cd.Rarity} }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	set := make(map[string]bool)
	for _, cd := range c.cards {
		for _, v := range extract(cd) {
			if v != "" {
				set[v] = true
			}
		}
	}

	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}
