// Package ranking reduces the resolved candidates of a parse to a
// non-overlapping answer.
//
// Selection is a deterministic greedy walk, not an optimisation: candidates
// are ordered by span length (longest first), then start offset, then
// confirmed before latent, then specificity (how many tokens the derivation
// consumed), then rule priority and finally rule order. Each candidate is
// accepted unless it overlaps one already accepted. Latent candidates are
// only considered after every confirmed one, so they fill gaps but never
// displace a confirmed reading, and never overlap a confirmed reading at
// least as specific as they are.
package ranking

import (
	"sort"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
)

// Candidate is a token together with its resolved value
type Candidate struct {
	Token *engine.Token
	Value dimension.Value
}

func (c Candidate) kind() dimension.Kind { return c.Value.Kind() }

func (c Candidate) priority() int {
	if c.Token.Rule == nil {
		return 0
	}
	return c.Token.Rule.Priority
}

func (c Candidate) ruleIndex() int {
	if c.Token.Rule == nil {
		return -1
	}
	return c.Token.Rule.Index()
}

// less is the preference order; it is total over distinct candidates of
// one parse
func less(a, b Candidate) bool {
	ta, tb := a.Token, b.Token
	switch {
	case ta.Len() != tb.Len():
		return ta.Len() > tb.Len()
	case ta.Start != tb.Start:
		return ta.Start < tb.Start
	case ta.Latent != tb.Latent:
		return !ta.Latent
	case ta.Specificity != tb.Specificity:
		return ta.Specificity > tb.Specificity
	case a.priority() != b.priority():
		return a.priority() > b.priority()
	case a.ruleIndex() != b.ruleIndex():
		return a.ruleIndex() < b.ruleIndex()
	case a.kind() != b.kind():
		return a.kind() < b.kind()
	}
	return a.Value.String() < b.Value.String()
}

// Select keeps the candidates of the requested kinds, drops latent ones
// unless withLatent, and returns a non-overlapping subset ordered by start
// offset. An empty kinds list selects nothing.
func Select(cands []Candidate, kinds []dimension.Kind, withLatent bool) []Candidate {
	wanted := dimension.NewKindSet(kinds...)
	if wanted.Empty() {
		return nil
	}

	var confirmed, latent []Candidate
	for _, c := range cands {
		if c.Token == nil || c.Value == nil || !wanted.Has(c.kind()) {
			continue
		}
		if c.Token.Latent {
			if withLatent {
				latent = append(latent, c)
			}
			continue
		}
		confirmed = append(confirmed, c)
	}

	sort.SliceStable(confirmed, func(i, j int) bool { return less(confirmed[i], confirmed[j]) })
	sort.SliceStable(latent, func(i, j int) bool { return less(latent[i], latent[j]) })

	var accepted []Candidate
	for _, c := range confirmed {
		if !overlapsAny(c, accepted) {
			accepted = append(accepted, c)
		}
	}
	for _, c := range latent {
		if !overlapsAny(c, accepted) && !shadowed(c, confirmed) {
			accepted = append(accepted, c)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Token.Start < accepted[j].Token.Start
	})
	return accepted
}

// shadowed reports a latent candidate overlapping a confirmed reading that
// is at least as specific, even one that lost to another confirmed reading
func shadowed(c Candidate, confirmed []Candidate) bool {
	for _, o := range confirmed {
		if o.Token.Specificity >= c.Token.Specificity && c.Token.Overlaps(o.Token) {
			return true
		}
	}
	return false
}

func overlapsAny(c Candidate, accepted []Candidate) bool {
	for _, a := range accepted {
		if c.Token.Overlaps(a.Token) {
			return true
		}
	}
	return false
}
