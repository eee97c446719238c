// Package resolve maps arbitrary user text to a catalog flow by keyword matching.
package resolve

import (
	"strings"
	"unicode"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/classify"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Rule identifies which matching rule accepted a flow.
type Rule int

const (
	RuleNone Rule = iota
	// RuleName: the display name contains the input.
	RuleName
	// RuleCompactName: the display name contains the input with whitespace removed on both sides.
	RuleCompactName
	// RuleID: the flow id contains the alef-normalized input.
	RuleID
	// RuleStem: every word of the id, minus a trailing teh marbuta, prefixes some input word.
	RuleStem
)

func (r Rule) String() string {
	switch r {
	case RuleName:
		return "name"
	case RuleCompactName:
		return "compact_name"
	case RuleID:
		return "id"
	case RuleStem:
		return "stem"
	}
	return "none"
}

// Catalog is the part of the flow catalog the resolver reads.
type Catalog interface {
	All() []domain.FlowDefinition
}

// Resolve returns the first flow, in catalog order, accepted by the name or
// id rules. Only when none accepts it is the stem rule tried, again in
// catalog order.
func Resolve(c Catalog, text string) (domain.FlowDefinition, Rule, bool) {
	text = classify.Canonical(text)
	if text == "" {
		return domain.FlowDefinition{}, RuleNone, false
	}
	all := c.All()
	for _, f := range all {
		if r := matchKeywords(f, text); r != RuleNone {
			return f, r, true
		}
	}
	normalized := classify.NormalizeAlef(text)
	for _, f := range all {
		if stemsMatch(f.ID, normalized) {
			return f, RuleStem, true
		}
	}
	return domain.FlowDefinition{}, RuleNone, false
}

// Match reports the first rule under which text selects flow f.
func Match(f domain.FlowDefinition, text string) Rule {
	text = classify.Canonical(text)
	if text == "" {
		return RuleNone
	}
	if r := matchKeywords(f, text); r != RuleNone {
		return r
	}
	if stemsMatch(f.ID, classify.NormalizeAlef(text)) {
		return RuleStem
	}
	return RuleNone
}

// matchKeywords applies the name and id rules to canonical text.
func matchKeywords(f domain.FlowDefinition, text string) Rule {
	normalized := classify.NormalizeAlef(text)

	if f.DisplayName != "" && strings.Contains(f.DisplayName, text) {
		return RuleName
	}
	if f.DisplayName != "" && strings.Contains(stripSpace(f.DisplayName), stripSpace(normalized)) {
		return RuleCompactName
	}
	if strings.Contains(f.ID, normalized) {
		return RuleID
	}
	return RuleNone
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func stemsMatch(id, input string) bool {
	words := strings.Fields(input)
	stems := 0
	for _, w := range strings.Fields(classify.NormalizeAlef(id)) {
		stem := strings.TrimSuffix(w, "ة")
		if stem == "" {
			continue
		}
		stems++
		if !anyHasPrefix(words, stem) {
			return false
		}
	}
	return stems > 0
}

func anyHasPrefix(words []string, prefix string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}
