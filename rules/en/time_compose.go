package en

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/duration"
	"github.com/teranos/qntx-dims/dimension/timex"
	"github.com/teranos/qntx-dims/engine"
)

const rangeWord = `to|till|until|through|thru|and|-|~`

var (
	confirmed = timex.Match(timex.Confirmed, timex.Bounded)
	podForm   = timex.IsForm(timex.FormPartOfDay)
)

func intersect(i, j int) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		return timex.Intersect(timeOf(c[i]), timeOf(c[j]))
	}
}

// countsWeekdays reports pairs that only make sense as "the n-th weekday of
// a period": "the first monday" and "monday of march" are left to the
// nth-of rules instead of intersecting
func countsWeekdays(a, b timex.Data) bool {
	return (a.Form == timex.FormDayOfMonth && b.Form == timex.FormDayOfWeek) ||
		(a.Form == timex.FormDayOfWeek && b.Form == timex.FormMonth)
}

func intersectFields(i, j int) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		a, b := timeOf(c[i]), timeOf(c[j])
		if countsWeekdays(a, b) {
			return nil, false
		}
		return timex.Intersect(a, b)
	}
}

func interval(i, j int) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		return timex.Interval(timeOf(c[i]), timeOf(c[j]), true)
	}
}

func open(i int, side timex.Side) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		return timex.Open(timeOf(c[i]), side)
	}
}

// clockRange reads "3-5pm": an hour without am/pm takes the meridiem of
// the end of the range when that keeps the range ordered. A bare number
// that still runs backwards is a minute count or part of a spelled number
// ("15 to noon", "four twenty-three"), not the start of a range.
func clockRange(from, to timex.Data) (engine.Payload, bool) {
	end, _, ok := to.Clock()
	if !ok {
		return nil, false
	}
	if start, twelve, ok := from.Clock(); ok && twelve && end >= 12 {
		if pm, ok := from.WithMeridiem(true); ok && start%12+12 < end {
			from = pm
		}
	}
	if _, twelve, _ := to.Clock(); from.Latent() && !twelve {
		a, _ := from.DayMinute()
		b, _ := to.DayMinute()
		if a >= b {
			return nil, false
		}
	}
	return timex.Interval(from.NotLatent(), to, true)
}

func compositionRules() []*engine.Rule {
	t := dimension.Time
	clock := timex.Match(timeOfDay)
	return []*engine.Rule{
		rule("from <time> to <time>", t, interval(1, 3), re(`from|between`), confirmed, re(rangeWord), confirmed),
		rule("<time> - <time>", t, interval(0, 2), confirmed, re(`to|till|until|through|thru|-|~`), confirmed),

		rule("<time-of-day> - <time-of-day> (meridiem)", t, func(c []*engine.Token) (engine.Payload, bool) {
			return clockRange(timeOf(c[0]), timeOf(c[2]))
		}, clock, re(`to|till|until|through|-|~`), timex.Match(timeOfDay, timex.Confirmed)),

		rule("from <time-of-day> - <time-of-day> (meridiem)", t, func(c []*engine.Token) (engine.Payload, bool) {
			return clockRange(timeOf(c[1]), timeOf(c[3]))
		}, re(`from|between`), clock, re(rangeWord), timex.Match(timeOfDay, timex.Confirmed)),

		rule("until <time>", t, open(1, timex.Before), re(`until|till|before|no later than|by`), timex.Match(timex.Bounded)),
		rule("after <time>", t, open(1, timex.After), re(`after|since|from|no earlier than`), timex.Match(timex.Bounded)),

		rule("<time> for <duration>", t, func(c []*engine.Token) (engine.Payload, bool) {
			d := durationOf(c[2])
			return timex.Lasting(timeOf(c[0]), int(d.Value), d.Grain)
		}, confirmed, re(`for`), duration.Match(nil)),

		rule("on <date>", t, notLatent(1), re(`on|during`), timex.Match(timex.Bounded)),

		rule("intersect", t, intersectFields(0, 1), confirmed, confirmed),
		rule("intersect by , or of", t, intersectFields(0, 2), confirmed, re(`,|of`), confirmed),

		rule("<time> <part-of-day>", t, intersect(0, 1), confirmed, timex.Match(podForm)),
		rule("<time-of-day> in the <part-of-day>", t, intersect(0, 2), clock, re(`(?:in|during) the|this`), timex.Match(podForm)),
		rule("<time-of-day> <confirmed part-of-day>", t, intersect(0, 1), clock, timex.Match(timex.Confirmed, podForm)),
		rule("<part-of-day> of <time>", t, intersect(0, 2), timex.Match(podForm), re(`of|on`), confirmed),
	}
}
