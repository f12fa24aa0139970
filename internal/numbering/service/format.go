package service

import (
	"strings"

	"numbering_backend/internal/numbering/registry"
)

// Group is one labeled run of digits in a display form.
type Group struct {
	Label  string `json:"label"`
	Digits string `json:"digits"`
}

// GroupSpec is one fixed-size group of a grouping rule.
type GroupSpec struct {
	Size  int
	Label string
}

// GroupingRule splits a national number for display. A rule with no specs is
// the generic fallback: groups of three, with a shorter final group.
type GroupingRule struct {
	Specs []GroupSpec
}

// Generic reports whether the rule is the fallback rule.
func (r GroupingRule) Generic() bool { return len(r.Specs) == 0 }

const (
	labelGroup = "group"
	labelRest  = "rest"
)

func nanp() GroupingRule {
	return GroupingRule{Specs: []GroupSpec{{3, "area"}, {3, "exchange"}, {4, "line"}}}
}

// blocks builds a rule whose first group is the prefix and the others blocks.
func blocks(sizes ...int) GroupingRule {
	specs := make([]GroupSpec, len(sizes))
	for i, size := range sizes {
		label := "block"
		if i == 0 {
			label = "prefix"
		}
		specs[i] = GroupSpec{Size: size, Label: label}
	}
	return GroupingRule{Specs: specs}
}

// groupingRules maps territory codes to their display rule. Territories not
// listed use the generic fallback.
var groupingRules = map[string]GroupingRule{
	"US": nanp(),
	"CA": nanp(),
	"PR": nanp(),
	"DO": nanp(),
	"BS": nanp(),
	"FR": blocks(2, 2, 2, 2, 2),
	"MA": blocks(1, 2, 2, 2, 2),
	"EH": blocks(1, 2, 2, 2, 2),
	"GB": blocks(4, 6),
	"NL": blocks(1, 4, 4),
	"BE": blocks(3, 2, 2, 2),
	"IT": blocks(3, 3, 4),
	"CH": blocks(2, 3, 2, 2),
	"SE": blocks(2, 3, 2, 2),
	"NO": blocks(3, 2, 3),
	"DK": blocks(2, 2, 2, 2),
	"RU": blocks(3, 3, 2, 2),
	"KZ": blocks(3, 3, 2, 2),
	"UA": blocks(2, 3, 2, 2),
	"TR": blocks(3, 3, 2, 2),
	"ZA": blocks(2, 3, 4),
	"IN": blocks(5, 5),
	"CN": blocks(3, 4, 4),
	"JP": blocks(2, 4, 4),
	"HK": blocks(4, 4),
	"SG": blocks(4, 4),
	"AU": blocks(3, 3, 3),
	"BR": blocks(2, 5, 4),
	"MX": blocks(3, 3, 4),
}

// RuleFor returns the grouping rule used for a territory.
func RuleFor(code string) GroupingRule {
	return groupingRules[code]
}

// Format renders a valid national number for display. Input that does not
// satisfy the territory pattern is returned unchanged.
func (s *Service) Format(national string, rec registry.CountryRecord) string {
	return Format(national, rec)
}

// Format is the engine-free form of Service.Format.
func Format(national string, rec registry.CountryRecord) string {
	groups, ok := FormatGroups(national, rec)
	if !ok {
		return national
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = g.Digits
	}
	return strings.Join(parts, " ")
}

// FormatGroups splits a valid national number into labeled groups. It
// returns false, and no groups, when national does not satisfy the pattern.
func FormatGroups(national string, rec registry.CountryRecord) ([]Group, bool) {
	if !rec.Matches(national) {
		return nil, false
	}
	return RuleFor(rec.Code).apply(national), true
}

func (r GroupingRule) apply(digits string) []Group {
	if r.Generic() {
		return generic(digits)
	}

	groups := make([]Group, 0, len(r.Specs)+1)
	rest := digits
	for _, spec := range r.Specs {
		if rest == "" {
			break
		}
		n := min(spec.Size, len(rest))
		groups = append(groups, Group{Label: spec.Label, Digits: rest[:n]})
		rest = rest[n:]
	}
	if rest != "" {
		groups = append(groups, Group{Label: labelRest, Digits: rest})
	}
	return groups
}

func generic(digits string) []Group {
	groups := make([]Group, 0, len(digits)/3+1)
	for len(digits) > 3 {
		groups = append(groups, Group{Label: labelGroup, Digits: digits[:3]})
		digits = digits[3:]
	}
	if digits != "" {
		groups = append(groups, Group{Label: labelGroup, Digits: digits})
	}
	return groups
}
