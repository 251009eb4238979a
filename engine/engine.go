package engine

import (
	"context"
	"slices"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/logger"
)

// DefaultMaxRounds bounds the fixed-point loop
const DefaultMaxRounds = 64

// Config tunes a Run
type Config struct {
	// MaxRounds caps derivation rounds; 0 means DefaultMaxRounds
	MaxRounds int
	// Logger receives round statistics; nil uses the engine component logger
	Logger *zap.SugaredLogger
}

// Stats describes a finished run
type Stats struct {
	Rounds int
	Tokens int
	Capped bool
}

type anchorKey struct {
	re  *Item
	pos int
}

type matcher struct {
	doc     *Document
	stash   *Stash
	seeds   map[string][]*Token
	anchors map[anchorKey]*Token
	misses  map[anchorKey]bool
}

// Run applies rules to doc until no new token appears and returns every
// derived token.
//
// Round 0 applies rules made only of regular expressions. Every later round
// only considers matches that consume at least one token produced in the
// previous round, so each derivation is attempted once; tokens produced in
// the current round become visible to matching in the next one.
func Run(ctx context.Context, doc *Document, rs *RuleSet, cfg Config) (*Stash, Stats, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.ComponentLogger("engine")
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	m := &matcher{
		doc:     doc,
		stash:   NewStash(),
		seeds:   make(map[string][]*Token),
		anchors: make(map[anchorKey]*Token),
		misses:  make(map[anchorKey]bool),
	}
	var stats Stats

	fresh := m.round(rs, 0)
	for round := 1; len(fresh) > 0; round++ {
		for _, t := range fresh {
			m.stash.Add(t)
		}
		stats.Rounds = round
		if err := ctx.Err(); err != nil {
			return nil, stats, errors.Wrap(err, "parse cancelled")
		}
		if round > maxRounds {
			stats.Capped = true
			log.Warnw("Derivation round limit reached",
				logger.FieldRounds, maxRounds,
				logger.FieldTokens, m.stash.Len(),
				logger.FieldTextLength, doc.Len())
			break
		}
		fresh = m.round(rs, round)
	}

	stats.Tokens = m.stash.Len()
	log.Debugw("Derivation finished",
		logger.FieldRounds, stats.Rounds,
		logger.FieldTokens, stats.Tokens)
	return m.stash, stats, nil
}

func (m *matcher) round(rs *RuleSet, round int) []*Token {
	pending := NewStash()
	var fresh []*Token
	for _, r := range rs.rules {
		if (round == 0) != r.regexOnly() {
			continue
		}
		m.walk(r, round, func(children []*Token) {
			payload, ok := r.Produce(children)
			if !ok || payload == nil {
				return
			}
			t := newToken(r, children, payload, round)
			if m.stash.Contains(t) || !pending.Add(t) {
				return
			}
			fresh = append(fresh, t)
		})
	}
	return fresh
}

// walk enumerates every way to match r's pattern against the document and
// current stash, calling yield with the matched children.
func (m *matcher) walk(r *Rule, round int, yield func([]*Token)) {
	children := make([]*Token, 0, len(r.Pattern))

	var step func(i, pos int, usedDelta bool)
	step = func(i, pos int, usedDelta bool) {
		if i == len(r.Pattern) {
			if round == 0 || usedDelta {
				yield(slices.Clone(children))
			}
			return
		}
		item := &r.Pattern[i]
		var candidates []*Token
		if i == 0 {
			candidates = m.first(item)
		} else {
			candidates = m.next(item, pos, r.Tight)
		}
		for _, c := range candidates {
			children = append(children, c)
			step(i+1, c.End, usedDelta || (c.Payload != nil && c.round == round-1))
			children = children[:len(children)-1]
		}
	}
	step(0, 0, false)
}

// first returns the candidates for a pattern's leading item anywhere in the text
func (m *matcher) first(item *Item) []*Token {
	if !item.IsRegex() {
		var out []*Token
		for _, t := range m.stash.tokens {
			if item.accepts(t) {
				out = append(out, t)
			}
		}
		return out
	}
	if cached, ok := m.seeds[item.source]; ok {
		return cached
	}
	var out []*Token
	for _, loc := range item.re.FindAllStringSubmatchIndex(m.doc.lower, -1) {
		if m.doc.validBoundary(loc[0], loc[1]) {
			out = append(out, regexToken(m.doc, loc))
		}
	}
	m.seeds[item.source] = out
	return out
}

// next returns candidates for a later item that start adjacent to pos
func (m *matcher) next(item *Item, pos int, tight bool) []*Token {
	last := m.doc.NextNonSpace(pos)
	if tight {
		last = pos
	}
	var out []*Token
	for p := pos; p <= last; p++ {
		if !item.IsRegex() {
			for _, t := range m.stash.StartingAt(p) {
				if item.accepts(t) {
					out = append(out, t)
				}
			}
			continue
		}
		if p < m.doc.Len() && !utf8.RuneStart(m.doc.text[p]) {
			continue
		}
		if t := m.anchored(item, p); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (m *matcher) anchored(item *Item, p int) *Token {
	key := anchorKey{re: item, pos: p}
	if t, ok := m.anchors[key]; ok {
		return t
	}
	if m.misses[key] {
		return nil
	}
	loc := item.anchored.FindStringSubmatchIndex(m.doc.lower[p:])
	if loc == nil {
		m.misses[key] = true
		return nil
	}
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += p
		}
	}
	if !m.doc.validBoundary(loc[0], loc[1]) {
		m.misses[key] = true
		return nil
	}
	t := regexToken(m.doc, loc)
	m.anchors[key] = t
	return t
}
