package timex

import (
	"time"

	"github.com/teranos/qntx-dims/dimension"
)

// Resolve computes the concrete value of d for ctx. It reports false when
// the expression has no occurrence, e.g. "February 30" or a year out of
// range.
//
// Expressions with an explicit timezone are evaluated on that zone's wall
// clock and returned as UTC instants; all others are evaluated on the
// context zone's wall clock and returned naive.
func Resolve(d Data, ctx dimension.Context, opts dimension.Options) (dimension.TimeValue, bool) {
	loc := ctx.Zone()
	if d.zone != nil {
		loc = d.zone.Loc
	}
	ref := at(dimension.WallClock(ctx.ReferenceTime, loc), dimension.Second)
	past, future := d.pred.series(ref)

	primary, ok := d.primary(ref, past, future)
	if !ok || !representable(primary) {
		return dimension.TimeValue{}, false
	}

	instant := d.zone != nil
	spec := d.render(primary, instant, loc)
	tv := dimension.TimeValue{
		TimeSpec: spec,
		Values:   []dimension.TimeSpec{spec},
		Instant:  instant,
		Holiday:  d.Holiday,
	}
	if d.pinned {
		return tv, true
	}

	want := opts.Alternatives()
	n := 0
	for o := range future {
		if len(tv.Values) > want || n > safeMax {
			break
		}
		n++
		if !o.Start.After(primary.Start) || !representable(o) {
			continue
		}
		tv.Values = append(tv.Values, d.render(o, instant, loc))
	}
	return tv, true
}

// primary picks the occurrence an expression refers to. Strict expressions
// ("Friday", "3pm") take the first occurrence starting after ref; others
// take the occurrence in progress or the next one, falling back to the
// latest past one.
func (d Data) primary(ref Object, past, future series) (Object, bool) {
	if d.strict {
		n := 0
		for o := range future {
			if n++; n > safeMax {
				break
			}
			if o.Start.After(ref.Start) {
				return o, true
			}
		}
		return Object{}, false
	}
	if o, ok := first(future); ok {
		return o, true
	}
	return first(past)
}

func representable(o Object) bool {
	y := o.Start.Year()
	return y >= 1 && y <= 9999
}

func (d Data) render(o Object, instant bool, loc *time.Location) dimension.TimeSpec {
	point := func(t time.Time) *dimension.TimePoint {
		if instant {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc).UTC()
		}
		return &dimension.TimePoint{Value: t, Grain: o.Grain, Instant: instant}
	}

	switch {
	case d.open == After:
		return dimension.TimeSpec{From: point(o.Start)}
	case d.open == Before:
		return dimension.TimeSpec{To: point(o.Start)}
	case o.End != nil:
		return dimension.TimeSpec{From: point(o.Start), To: point(*o.End)}
	}
	return dimension.TimeSpec{Point: point(o.Start)}
}
