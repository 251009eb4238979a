package engine

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/errors"
)

// Production turns the tokens matched by a pattern into a payload. It
// returns false to reject the match.
type Production func(children []*Token) (Payload, bool)

// Rule is a named pattern plus the production it feeds
type Rule struct {
	Name    string
	Dim     dimension.Kind
	Pattern []Item
	Produce Production

	// Priority breaks ranking ties between equal spans; higher wins
	Priority int
	// Tight requires items to touch with no whitespace between them
	Tight bool

	index int
}

// Index is the rule's position in its rule set
func (r *Rule) Index() int {
	return r.index
}

func (r *Rule) regexOnly() bool {
	for _, it := range r.Pattern {
		if !it.IsRegex() {
			return false
		}
	}
	return true
}

// RuleSet is an ordered, validated list of rules
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet validates rules and fixes their order
func NewRuleSet(rules ...*Rule) (*RuleSet, error) {
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, errors.Newf("rule %d has no name", i)
		}
		if seen[r.Name] {
			return nil, errors.Newf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
		if len(r.Pattern) == 0 {
			return nil, errors.Newf("rule %q has an empty pattern", r.Name)
		}
		if r.Produce == nil {
			return nil, errors.Newf("rule %q has no production", r.Name)
		}
		r.index = i
	}
	return &RuleSet{rules: rules}, nil
}

// Rules returns the rules in order
func (rs *RuleSet) Rules() []*Rule {
	return rs.rules
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// ForKinds keeps the rules that produce one of kinds or something they
// depend on. Rule indices are preserved.
func (rs *RuleSet) ForKinds(kinds []dimension.Kind) *RuleSet {
	wanted := dimension.NewKindSet(dimension.Closure(kinds)...)
	out := make([]*Rule, 0, len(rs.rules))
	for _, r := range rs.rules {
		if wanted.Has(r.Dim) {
			out = append(out, r)
		}
	}
	return &RuleSet{rules: out}
}
