package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is the on-disk shape of a card in a catalog file. Every field is
// optional except name and type.
type Record struct {
	ID            FlexString `json:"id" yaml:"id"`
	Name          FlexString `json:"name" yaml:"name"`
	FormattedName FlexString `json:"formattedName,omitempty" yaml:"formattedName,omitempty"`
	Type          FlexString `json:"type" yaml:"type"`
	Clan          FlexString `json:"clan,omitempty" yaml:"clan,omitempty"`

	Cost             *Stat `json:"cost,omitempty" yaml:"cost,omitempty"`
	Force            *Stat `json:"force,omitempty" yaml:"force,omitempty"`
	Chi              *Stat `json:"chi,omitempty" yaml:"chi,omitempty"`
	Focus            *Stat `json:"focus,omitempty" yaml:"focus,omitempty"`
	PersonalHonor    *Stat `json:"personalHonor,omitempty" yaml:"personalHonor,omitempty"`
	HonorRequirement *Stat `json:"honorRequirement,omitempty" yaml:"honorRequirement,omitempty"`
	GoldProduction   *Stat `json:"goldProduction,omitempty" yaml:"goldProduction,omitempty"`

	Text         RawText  `json:"text,omitempty" yaml:"text,omitempty"`
	Keywords     []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Legality     []string `json:"legality,omitempty" yaml:"legality,omitempty"`
	Banned       bool     `json:"banned,omitempty" yaml:"banned,omitempty"`
	BannedReason string   `json:"bannedReason,omitempty" yaml:"bannedReason,omitempty"`
	ImagePath    string   `json:"imagePath,omitempty" yaml:"imagePath,omitempty"`
	Back         *Face    `json:"back,omitempty" yaml:"back,omitempty"`

	Set    FlexString `json:"set,omitempty" yaml:"set,omitempty"`
	Rarity FlexString `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Artist FlexString `json:"artist,omitempty" yaml:"artist,omitempty"`
	Flavor RawText    `json:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// Face is the on-disk shape of the second side of a card
type Face struct {
	ImagePath string   `json:"imagePath,omitempty" yaml:"imagePath,omitempty"`
	Text      RawText  `json:"text,omitempty" yaml:"text,omitempty"`
	Keywords  []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Stat is a numeric attribute that may be written as a number or as a
// numeric string such as "+2". Anything else decodes as absent.
type Stat struct {
	Value int
	Valid bool
}

// NewStat returns a present stat
func NewStat(v int) *Stat {
	return &Stat{Value: v, Valid: true}
}

// ParseStat parses the textual forms found in card databases
func ParseStat(s string) Stat {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return Stat{}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Stat{}
	}
	return Stat{Value: v, Valid: true}
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = statFromAny(v)
	return nil
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.Value)), nil
}

func (s *Stat) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*s = Stat{}
		return nil
	}
	*s = ParseStat(node.Value)
	return nil
}

func statFromAny(v any) Stat {
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return Stat{}
		}
		return Stat{Value: int(t), Valid: true}
	case string:
		return ParseStat(t)
	case []any:
		if len(t) > 0 {
			return statFromAny(t[0])
		}
	}
	return Stat{}
}

// FlexString accepts a string, a number, or an array whose first element
// is used. Other shapes decode as empty.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexString(strings.TrimSpace(scalarString(v)))
	return nil
}

func (f *FlexString) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*f = FlexString(strings.TrimSpace(node.Value))
	case yaml.SequenceNode:
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.ScalarNode {
			*f = FlexString(strings.TrimSpace(node.Content[0].Value))
		}
	}
	return nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		if len(t) > 0 {
			return scalarString(t[0])
		}
	}
	return ""
}

// RawText is rules text that may arrive as a string or as a list of
// paragraphs, which are joined with line breaks. Other shapes decode as empty.
type RawText string

func (r *RawText) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*r = RawText(t)
	case []any:
		var parts []string
		for _, p := range t {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		*r = RawText(strings.Join(parts, "<br>"))
	default:
		*r = ""
	}
	return nil
}

func (r *RawText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*r = RawText(node.Value)
	case yaml.SequenceNode:
		var parts []string
		for _, c := range node.Content {
			if c.Kind == yaml.ScalarNode {
				parts = append(parts, c.Value)
			}
		}
		*r = RawText(strings.Join(parts, "<br>"))
	default:
		*r = ""
	}
	return nil
}

func (r *Record) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.ID)
}
