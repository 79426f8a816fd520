package card

import (
	"fmt"
	"strings"
)

// Attribute identifies one of the optional numeric card attributes
type Attribute int

const (
	AttrCost Attribute = iota
	AttrForce
	AttrChi
	AttrFocus
	AttrPersonalHonor
	AttrHonorRequirement
	AttrGoldProduction

	numAttributes
)

// Attributes lists every numeric attribute
var Attributes = []Attribute{
	AttrCost,
	AttrForce,
	AttrChi,
	AttrFocus,
	AttrPersonalHonor,
	AttrHonorRequirement,
	AttrGoldProduction,
}

func (a Attribute) String() string {
	switch a {
	case AttrCost:
		return "cost"
	case AttrForce:
		return "force"
	case AttrChi:
		return "chi"
	case AttrFocus:
		return "focus"
	case AttrPersonalHonor:
		return "personal-honor"
	case AttrHonorRequirement:
		return "honor-requirement"
	case AttrGoldProduction:
		return "gold-production"
	default:
		return "unknown"
	}
}

// Key returns the camel-case form used in filter options, e.g. "personalHonor"
func (a Attribute) Key() string {
	parts := strings.Split(a.String(), "-")
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

// ParseAttribute accepts either the dashed or the camel-case attribute name
func ParseAttribute(s string) (Attribute, error) {
	name := strings.TrimSpace(s)
	for _, a := range Attributes {
		if strings.EqualFold(name, a.String()) || strings.EqualFold(name, a.Key()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute: %q", s)
}

// Stats holds the optional numeric attributes of a card. The zero value has
// no attribute set.
type Stats struct {
	values [numAttributes]int
	set    [numAttributes]bool
}

// Get returns the attribute value and whether it is present
func (s Stats) Get(a Attribute) (int, bool) {
	if a < 0 || a >= numAttributes {
		return 0, false
	}
	return s.values[a], s.set[a]
}

// Set stores a value for the attribute
func (s *Stats) Set(a Attribute, v int) {
	if a < 0 || a >= numAttributes {
		return
	}
	s.values[a] = v
	s.set[a] = true
}

// Unset removes the attribute
func (s *Stats) Unset(a Attribute) {
	if a < 0 || a >= numAttributes {
		return
	}
	s.values[a] = 0
	s.set[a] = false
}

// Restrict drops every attribute the category does not print
func (s *Stats) Restrict(c Category) {
	for _, a := range Attributes {
		if !c.Supports(a) {
			s.Unset(a)
		}
	}
}
