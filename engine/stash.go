package engine

import (
	"github.com/teranos/qntx-dims/dimension"
)

type stashKey struct {
	start   int
	end     int
	kind    dimension.Kind
	payload string
}

// Stash is the deduplicated set of tokens derived for one input. Tokens are
// kept in a flat slice in insertion order; the maps only index into it.
type Stash struct {
	tokens  []*Token
	index   map[stashKey]int
	byStart map[int][]*Token
}

// NewStash returns an empty stash
func NewStash() *Stash {
	return &Stash{
		index:   make(map[stashKey]int),
		byStart: make(map[int][]*Token),
	}
}

func keyOf(t *Token) stashKey {
	return stashKey{start: t.Start, end: t.End, kind: t.Payload.Kind(), payload: t.Payload.Key()}
}

// Contains reports whether an equal token (span, kind, payload) is present
func (s *Stash) Contains(t *Token) bool {
	_, ok := s.index[keyOf(t)]
	return ok
}

// Add inserts t unless an equal token exists; it reports whether t was added
func (s *Stash) Add(t *Token) bool {
	k := keyOf(t)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.tokens)
	s.tokens = append(s.tokens, t)
	s.byStart[t.Start] = append(s.byStart[t.Start], t)
	return true
}

// Len returns the number of tokens
func (s *Stash) Len() int {
	return len(s.tokens)
}

// Tokens returns all tokens in insertion order. The slice must not be modified.
func (s *Stash) Tokens() []*Token {
	return s.tokens
}

// StartingAt returns tokens that start exactly at pos
func (s *Stash) StartingAt(pos int) []*Token {
	return s.byStart[pos]
}

// OfKind returns tokens of the given kind in insertion order
func (s *Stash) OfKind(k dimension.Kind) []*Token {
	var out []*Token
	for _, t := range s.tokens {
		if t.Payload.Kind() == k {
			out = append(out, t)
		}
	}
	return out
}
