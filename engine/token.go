// Package engine implements the rule-driven chart parser: tokens, rules and
// the fixed-point loop that derives every token reachable from a text.
package engine

import (
	"github.com/teranos/qntx-dims/dimension"
)

// Payload is the dimension-specific intermediate value a token carries.
// Implementations live in the dimension packages.
type Payload interface {
	Kind() dimension.Kind
	// Key identifies the payload; two payloads with equal keys are equal
	Key() string
}

// Latenter is implemented by payloads that can be latent
type Latenter interface {
	Latent() bool
}

// Token is an immutable span-tagged interpretation. Raw regex matches are
// tokens with a nil Payload and the capture groups in Groups.
type Token struct {
	Start   int
	End     int
	Payload Payload
	Latent  bool

	// Rule produced the token; nil for raw regex matches
	Rule *Rule
	// Children are the tokens the rule consumed, in pattern order
	Children []*Token
	// Groups holds regex capture groups from the original text; "" when unmatched
	Groups []string
	// Specificity counts payload tokens in the derivation, this one included
	Specificity int

	round int
}

// Len is the span length in bytes
func (t *Token) Len() int {
	return t.End - t.Start
}

// Kind returns the payload kind; ok is false for raw regex matches
func (t *Token) Kind() (dimension.Kind, bool) {
	if t.Payload == nil {
		return 0, false
	}
	return t.Payload.Kind(), true
}

// Group returns capture group i of a regex match, "" when absent
func (t *Token) Group(i int) string {
	if i < 0 || i >= len(t.Groups) {
		return ""
	}
	return t.Groups[i]
}

// Overlaps reports whether two tokens claim a common byte
func (t *Token) Overlaps(o *Token) bool {
	return t.Start < o.End && o.Start < t.End
}

// RuleName returns the producing rule name, "regex" for raw matches
func (t *Token) RuleName() string {
	if t.Rule == nil {
		return "regex"
	}
	return t.Rule.Name
}

func newToken(rule *Rule, children []*Token, payload Payload, round int) *Token {
	spec := 1
	for _, c := range children {
		spec += c.Specificity
	}
	latent := false
	if l, ok := payload.(Latenter); ok {
		latent = l.Latent()
	}
	return &Token{
		Start:       children[0].Start,
		End:         children[len(children)-1].End,
		Payload:     payload,
		Latent:      latent,
		Rule:        rule,
		Children:    children,
		Specificity: spec,
		round:       round,
	}
}
