package search

import (
	"fmt"
	"strings"

	"github.com/kakita-works/shugenja/internal/card"
)

// Options is the flat filter configuration accepted from callers outside
// the package, such as command flags and tool arguments
type Options struct {
	SearchTerm string   `json:"searchTerm,omitempty"`
	Category   string   `json:"category,omitempty"`
	Faction    string   `json:"faction,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`

	CostMin             *int `json:"costMin,omitempty"`
	CostMax             *int `json:"costMax,omitempty"`
	ForceMin            *int `json:"forceMin,omitempty"`
	ForceMax            *int `json:"forceMax,omitempty"`
	ChiMin              *int `json:"chiMin,omitempty"`
	ChiMax              *int `json:"chiMax,omitempty"`
	FocusMin            *int `json:"focusMin,omitempty"`
	FocusMax            *int `json:"focusMax,omitempty"`
	PersonalHonorMin    *int `json:"personalHonorMin,omitempty"`
	PersonalHonorMax    *int `json:"personalHonorMax,omitempty"`
	HonorRequirementMin *int `json:"honorRequirementMin,omitempty"`
	HonorRequirementMax *int `json:"honorRequirementMax,omitempty"`
	GoldProductionMin   *int `json:"goldProductionMin,omitempty"`
	GoldProductionMax   *int `json:"goldProductionMax,omitempty"`
}

// Bounds returns pointers to the min and max fields of an attribute
func (o *Options) Bounds(attr card.Attribute) (lo, hi **int) {
	switch attr {
	case card.AttrCost:
		return &o.CostMin, &o.CostMax
	case card.AttrForce:
		return &o.ForceMin, &o.ForceMax
	case card.AttrChi:
		return &o.ChiMin, &o.ChiMax
	case card.AttrFocus:
		return &o.FocusMin, &o.FocusMax
	case card.AttrPersonalHonor:
		return &o.PersonalHonorMin, &o.PersonalHonorMax
	case card.AttrHonorRequirement:
		return &o.HonorRequirementMin, &o.HonorRequirementMax
	case card.AttrGoldProduction:
		return &o.GoldProductionMin, &o.GoldProductionMax
	}
	return nil, nil
}

// Criteria converts the options. An empty or "all" category or faction is
// unset; an unrecognized category is an error.
func (o Options) Criteria() (Criteria, error) {
	c := Criteria{
		SearchTerm: strings.TrimSpace(o.SearchTerm),
		Faction:    strings.TrimSpace(o.Faction),
		Ranges:     make(map[card.Attribute]Range),
	}
	if strings.EqualFold(c.Faction, "all") {
		c.Faction = ""
	}

	if category := strings.TrimSpace(o.Category); category != "" && !strings.EqualFold(category, "all") {
		parsed, err := card.ParseCategory(category)
		if err != nil {
			return Criteria{}, fmt.Errorf("category filter: %w", err)
		}
		c.Category = parsed
	}

	for _, k := range o.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			c.Keywords = append(c.Keywords, k)
		}
	}

	for _, attr := range card.Attributes {
		lo, hi := o.Bounds(attr)
		r := Range{Min: *lo, Max: *hi}
		if r.IsSet() {
			c.Ranges[attr] = r
		}
	}
	return c, nil
}
