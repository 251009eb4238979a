package timex

import (
	"iter"
	"time"

	"github.com/teranos/qntx-dims/dimension"
)

// safeMax bounds every occurrence search
const safeMax = 400

// Object is one occurrence of a time predicate: a wall-clock start, its
// grain, and an explicit end for intervals. Start is a wall clock held in
// the UTC location.
type Object struct {
	Start time.Time
	Grain dimension.Grain
	End   *time.Time
}

// EndTime is the exclusive end: End when set, otherwise one grain after Start
func (o Object) EndTime() time.Time {
	if o.End != nil {
		return *o.End
	}
	return dimension.Add(o.Start, o.Grain, 1)
}

// Contains reports whether t falls inside the occurrence
func (o Object) Contains(t time.Time) bool {
	return !t.Before(o.Start) && t.Before(o.EndTime())
}

func at(t time.Time, g dimension.Grain) Object {
	return Object{Start: t, Grain: g}
}

func span(start, end time.Time, g dimension.Grain) Object {
	return Object{Start: start, Grain: g, End: &end}
}

// plus moves an occurrence by n grains; the result is a point at the finer grain
func plus(o Object, g dimension.Grain, n int) Object {
	return at(dimension.Add(o.Start, g, n), dimension.Min(o.Grain, g))
}

// overlap intersects two occurrences
func overlap(a, b Object) (Object, bool) {
	if a.Start.After(b.Start) {
		a, b = b, a
	}
	ea, eb := a.EndTime(), b.EndTime()
	if !ea.After(b.Start) {
		return Object{}, false
	}
	g := dimension.Min(a.Grain, b.Grain)
	out := Object{Start: b.Start, Grain: g}
	switch {
	case ea.Before(eb) || (a.Start.Equal(b.Start) && ea.Equal(eb) && a.End != nil):
		out.End = a.End
	default:
		out.End = b.End
	}
	if out.End == nil && g != b.Grain {
		end := dimension.Add(out.Start, g, 1)
		if e := minTime(ea, eb); !end.Equal(e) {
			out.End = &e
		}
	}
	return out, true
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

type series = iter.Seq[Object]

func none(func(Object) bool) {}

func one(o Object) series {
	return func(yield func(Object) bool) { yield(o) }
}

// split places a single occurrence in the future when it has not ended yet
func split(o Object, ref Object) (past, future series) {
	if o.EndTime().After(ref.Start) {
		return none, one(o)
	}
	return one(o), none
}

// stepping yields start, start+step, start+2*step ... up to safeMax items
func stepping(start Object, g dimension.Grain, step int) series {
	return func(yield func(Object) bool) {
		for i := 0; i < safeMax; i++ {
			o := start
			o.Start = dimension.Add(start.Start, g, i*step)
			if start.End != nil {
				end := dimension.Add(*start.End, g, i*step)
				o.End = &end
			}
			if !yield(o) {
				return
			}
		}
	}
}

// periodic builds the past and future of a cycle with the given anchor:
// the first occurrence that has not ended at ref
func periodic(anchor Object, g dimension.Grain, step int) (past, future series) {
	back := anchor
	back.Start = dimension.Add(anchor.Start, g, -step)
	if anchor.End != nil {
		end := dimension.Add(*anchor.End, g, -step)
		back.End = &end
	}
	return stepping(back, g, -step), stepping(anchor, g, step)
}

// take collects at most n items
func take(s series, n int) []Object {
	var out []Object
	if n <= 0 {
		return out
	}
	for o := range s {
		out = append(out, o)
		if len(out) == n {
			break
		}
	}
	return out
}

func first(s series) (Object, bool) {
	for o := range s {
		return o, true
	}
	return Object{}, false
}

// within yields inner occurrences that start inside outer
func within(inner series, outer Object) []Object {
	end := outer.EndTime()
	var out []Object
	n := 0
	for o := range inner {
		if n++; n > safeMax || !o.Start.Before(end) {
			break
		}
		out = append(out, o)
	}
	return out
}

// fanOut maps every occurrence of outer to zero or more derived occurrences
// and re-partitions them around ref. Results derived from an outer
// occurrence that is still running may already be over, and results derived
// from the latest past occurrence may still be running; both are moved to
// the side of ref they belong to.
func fanOut(ref Object, outerPast, outerFuture series, fn func(Object) []Object) (past, future series) {
	running := func(d Object) bool { return d.EndTime().After(ref.Start) }

	var early, late []Object
	for o := range outerFuture {
		if o.Start.After(ref.Start) {
			break
		}
		for _, d := range fn(o) {
			if !running(d) {
				early = append(early, d)
			}
		}
	}
	if o, ok := first(outerPast); ok {
		for _, d := range fn(o) {
			if running(d) {
				late = append(late, d)
			}
		}
	}

	future = func(yield func(Object) bool) {
		for _, d := range late {
			if !yield(d) {
				return
			}
		}
		n := 0
		for o := range outerFuture {
			if n++; n > safeMax {
				return
			}
			for _, d := range fn(o) {
				if !running(d) {
					continue
				}
				if !yield(d) {
					return
				}
			}
		}
	}
	past = func(yield func(Object) bool) {
		for i := len(early) - 1; i >= 0; i-- {
			if !yield(early[i]) {
				return
			}
		}
		n := 0
		for o := range outerPast {
			if n++; n > safeMax {
				return
			}
			derived := fn(o)
			for i := len(derived) - 1; i >= 0; i-- {
				if running(derived[i]) {
					continue
				}
				if !yield(derived[i]) {
					return
				}
			}
		}
	}
	return past, future
}
