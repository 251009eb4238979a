package timex

import (
	"fmt"

	"github.com/teranos/qntx-dims/dimension"
)

// anchored reports predicates whose occurrences are fixed by the parse
// reference ("now", "in one hour", "today", "next friday"). Inside a
// composition they are searched from that reference, never from an
// occurrence of the other operand.
func anchored(p predicate) bool {
	switch p := p.(type) {
	case now, relative, cycle, nth:
		return true
	case intersection:
		return anchored(p.outer) || anchored(p.inner)
	case nthWithin:
		return anchored(p.outer)
	case interval:
		return anchored(p.from) || anchored(p.to)
	case shifted:
		return anchored(p.base)
	case lasting:
		return anchored(p.base)
	}
	return false
}

// searchFrom yields the occurrences of p to match against o in ascending
// order: the ones from o onwards, or for anchored predicates the ones
// around ref.
func searchFrom(p predicate, o, ref Object) series {
	if !anchored(p) {
		_, future := p.series(at(o.Start, dimension.Second))
		return future
	}
	past, future := p.series(ref)
	before := take(past, 1)
	return func(yield func(Object) bool) {
		for i := len(before) - 1; i >= 0; i-- {
			if !yield(before[i]) {
				return
			}
		}
		for x := range future {
			if !yield(x) {
				return
			}
		}
	}
}

// intersection keeps the occurrences of both predicates that overlap. The
// coarser predicate drives the search; the finer one is searched inside
// each of its occurrences.
type intersection struct {
	outer, inner predicate
}

func newIntersection(a, b predicate) intersection {
	if b.grain() > a.grain() {
		a, b = b, a
	}
	return intersection{outer: a, inner: b}
}

func (p intersection) series(ref Object) (series, series) {
	past, future := p.outer.series(ref)
	return fanOut(ref, past, future, func(o Object) []Object {
		var out []Object
		for _, x := range within(searchFrom(p.inner, o, ref), o) {
			if v, ok := overlap(o, x); ok {
				out = append(out, v)
			}
		}
		return out
	})
}

func (p intersection) grain() dimension.Grain { return p.inner.grain() }
func (p intersection) String() string {
	return "(" + p.outer.String() + " & " + p.inner.String() + ")"
}

// nthWithin picks the n-th occurrence of inner inside each occurrence of
// outer, counting from the end when n is negative: "first Monday of March",
// "last Friday of the month".
type nthWithin struct {
	inner, outer predicate
	n            int
}

func (p nthWithin) series(ref Object) (series, series) {
	past, future := p.outer.series(ref)
	return fanOut(ref, past, future, func(o Object) []Object {
		var hits []Object
		for _, x := range within(searchFrom(p.inner, o, ref), o) {
			if !x.Start.Before(o.Start) {
				hits = append(hits, x)
			}
		}
		i := p.n
		if i < 0 {
			i += len(hits)
		}
		if i < 0 || i >= len(hits) {
			return nil
		}
		return []Object{hits[i]}
	})
}

func (p nthWithin) grain() dimension.Grain { return p.inner.grain() }
func (p nthWithin) String() string {
	return fmt.Sprintf("nth(%d,%s in %s)", p.n, p.inner, p.outer)
}

// interval spans from each occurrence of from to the next occurrence of to.
// A closed interval includes the whole of its last occurrence.
type interval struct {
	from, to predicate
	closed   bool
}

func (p interval) series(ref Object) (series, series) {
	past, future := p.from.series(ref)
	return fanOut(ref, past, future, func(f Object) []Object {
		n := 0
		for t := range searchFrom(p.to, f, ref) {
			if n++; n > safeMax {
				break
			}
			if t.Start.Before(f.Start) {
				continue
			}
			end := t.Start
			if p.closed {
				end = t.EndTime()
			}
			if !end.After(f.Start) {
				continue
			}
			return []Object{span(f.Start, end, dimension.Min(f.Grain, t.Grain))}
		}
		return nil
	})
}

func (p interval) grain() dimension.Grain { return dimension.Min(p.from.grain(), p.to.grain()) }
func (p interval) String() string {
	sep := ".."
	if p.closed {
		sep = "..="
	}
	return "[" + p.from.String() + sep + p.to.String() + "]"
}

// lasting turns each occurrence into an interval of a fixed length:
// "3pm for 2 hours"
type lasting struct {
	base predicate
	unit dimension.Grain
	n    int
}

func (p lasting) series(ref Object) (series, series) {
	past, future := p.base.series(ref)
	return fanOut(ref, past, future, func(o Object) []Object {
		return []Object{span(o.Start, dimension.Add(o.Start, p.unit, p.n), dimension.Min(o.Grain, p.unit))}
	})
}

func (p lasting) grain() dimension.Grain { return dimension.Min(p.base.grain(), p.unit) }
func (p lasting) String() string         { return fmt.Sprintf("%s for %d%s", p.base, p.n, p.unit) }

// shifted moves every occurrence by n units: "2 days after Christmas"
type shifted struct {
	base predicate
	unit dimension.Grain
	n    int
}

func (p shifted) series(ref Object) (series, series) {
	past, future := p.base.series(ref)
	return fanOut(ref, past, future, func(o Object) []Object {
		return []Object{plus(o, p.unit, p.n)}
	})
}

func (p shifted) grain() dimension.Grain { return dimension.Min(p.base.grain(), p.unit) }
func (p shifted) String() string         { return fmt.Sprintf("%s%+d%s", p.base, p.n, p.unit) }

// nth pins one occurrence of base: n >= 0 counts into the future, n < 0
// into the past. With skipCurrent an occurrence containing ref is skipped,
// so "next March" in March means the following year.
type nth struct {
	base        predicate
	n           int
	skipCurrent bool
}

func (p nth) series(ref Object) (series, series) {
	past, future := p.base.series(ref)
	if p.n < 0 {
		for i, o := range take(past, -p.n) {
			if i == -p.n-1 {
				return split(o, ref)
			}
		}
		return none, none
	}
	items := take(future, p.n+2)
	if p.skipCurrent && len(items) > 0 && items[0].Contains(ref.Start) {
		items = items[1:]
	}
	if p.n < len(items) {
		return split(items[p.n], ref)
	}
	return none, none
}

func (p nth) grain() dimension.Grain { return p.base.grain() }
func (p nth) String() string {
	s := fmt.Sprintf("nth(%d,%s)", p.n, p.base)
	if p.skipCurrent {
		s += "!"
	}
	return s
}
