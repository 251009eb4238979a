package engine

import (
	"regexp"

	"github.com/teranos/qntx-dims/dimension"
)

type itemType int

const (
	itemRegex itemType = iota
	itemDim
	itemPred
)

// Item is one element of a rule pattern: a regular expression matched
// against the text, or a token of a dimension, optionally refined by a
// condition on its payload.
type Item struct {
	typ      itemType
	source   string
	re       *regexp.Regexp
	anchored *regexp.Regexp
	dim      dimension.Kind
	pred     func(Payload) bool
}

// Regex matches text case-insensitively. Invalid patterns panic; patterns
// are static rule data.
func Regex(pattern string) Item {
	return Item{
		typ:      itemRegex,
		source:   pattern,
		re:       regexp.MustCompile(`(?i)` + pattern),
		anchored: regexp.MustCompile(`(?i)\A(?:` + pattern + `)`),
	}
}

// Dim matches any token of kind k
func Dim(k dimension.Kind) Item {
	return Item{typ: itemDim, dim: k}
}

// Pred matches tokens of kind k whose payload satisfies cond
func Pred(k dimension.Kind, cond func(Payload) bool) Item {
	return Item{typ: itemPred, dim: k, pred: cond}
}

// IsRegex reports whether the item matches text directly
func (it Item) IsRegex() bool {
	return it.typ == itemRegex
}

func (it Item) String() string {
	switch it.typ {
	case itemRegex:
		return "/" + it.source + "/"
	case itemPred:
		return "<" + it.dim.String() + "?>"
	default:
		return "<" + it.dim.String() + ">"
	}
}

func (it Item) accepts(t *Token) bool {
	if t.Payload == nil || t.Payload.Kind() != it.dim {
		return false
	}
	return it.pred == nil || it.pred(t.Payload)
}

// regexToken builds a raw match token from submatch indices
func regexToken(doc *Document, loc []int) *Token {
	groups := make([]string, len(loc)/2)
	for g := range groups {
		if loc[2*g] >= 0 {
			groups[g] = doc.text[loc[2*g]:loc[2*g+1]]
		}
	}
	return &Token{Start: loc[0], End: loc[1], Groups: groups, round: -1}
}
