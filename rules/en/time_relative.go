package en

import (
	"time"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/duration"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/dimension/ordinal"
	"github.com/teranos/qntx-dims/dimension/timex"
	"github.com/teranos/qntx-dims/engine"
)

const (
	thisWord = `this|current|coming`
	nextWord = `next|the following`
	lastWord = `last|past|previous`
)

// anchorable accepts confirmed, unpinned expressions that next/last can
// count occurrences of
func anchorable(d timex.Data) bool {
	return !d.Latent() && !d.IsOpen() && d.Form != timex.FormCycle && d.Form != timex.FormInterval
}

func cycleOf(n int) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		for _, t := range c {
			if u, ok := duration.UnitFrom(t); ok {
				return timex.Cycle(u.Grain, n), true
			}
		}
		return nil, false
	}
}

func nthOf(i, n int, skip bool) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		return timex.Nth(timeOf(c[i]), n, skip)
	}
}

// relative turns a duration into an offset from the reference time
func relative(d duration.Data, sign int) (engine.Payload, bool) {
	return timex.Relative(sign*int(d.Value), d.Grain), true
}

func cycleRules() []*engine.Rule {
	t := dimension.Time
	anyUnit := duration.MatchUnit(nil)
	count := numeral.Match(numeral.Between(1, 9999))
	return []*engine.Rule{
		rule("this <cycle>", t, cycleOf(0), re(thisWord), anyUnit),
		rule("next <cycle>", t, cycleOf(1), re(nextWord), anyUnit),
		rule("last <cycle>", t, cycleOf(-1), re(lastWord), anyUnit),
		rule("<cycle> after next", t, cycleOf(2), anyUnit, re(`after next`)),
		rule("<cycle> before last", t, cycleOf(-2), anyUnit, re(`before last`)),

		rule("next n <cycle>", t, func(c []*engine.Token) (engine.Payload, bool) {
			n, _ := numeralOf(c[1]).Int()
			g := unitOf(c[2])
			return timex.Interval(timex.Cycle(g, 1), timex.Cycle(g, n), true)
		}, re(`(?:the )?(?:next|following|coming)`), count, anyUnit),

		rule("last n <cycle>", t, func(c []*engine.Token) (engine.Payload, bool) {
			n, _ := numeralOf(c[1]).Int()
			g := unitOf(c[2])
			return timex.Interval(timex.Cycle(g, -n), timex.Cycle(g, -1), true)
		}, re(`(?:the )?(?:last|past|previous)`), count, anyUnit),

		rule("in <duration>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return relative(durationOf(c[1]), 1)
		}, re(`in`), duration.Match(nil)),

		rule("<duration> from now", t, func(c []*engine.Token) (engine.Payload, bool) {
			return relative(durationOf(c[0]), 1)
		}, duration.Match(nil), re(`from (?:now|today)|hence|later`)),

		rule("<duration> ago", t, func(c []*engine.Token) (engine.Payload, bool) {
			return relative(durationOf(c[0]), -1)
		}, duration.Match(nil), re(`ago|back|before now`)),

		rule("<duration> after <time>", t, func(c []*engine.Token) (engine.Payload, bool) {
			d := durationOf(c[0])
			return timex.Shift(timeOf(c[2]), int(d.Value), d.Grain)
		}, duration.Match(nil), re(`after|from`), timex.Match(timex.Confirmed, timex.Bounded)),

		rule("<duration> before <time>", t, func(c []*engine.Token) (engine.Payload, bool) {
			d := durationOf(c[0])
			return timex.Shift(timeOf(c[2]), -int(d.Value), d.Grain)
		}, duration.Match(nil), re(`before`), timex.Match(timex.Confirmed, timex.Bounded)),

		rule("next <day-of-week>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.Intersect(timex.Cycle(dimension.Week, 1), timeOf(c[1]))
		}, re(nextWord), timex.Match(timex.IsForm(timex.FormDayOfWeek))),

		rule("next <time>", t, nthOf(1, 0, true), re(nextWord), timex.Match(anchorable, notDayOfWeek)),
		rule("this <time>", t, nthOf(1, 0, false), re(thisWord), timex.Match(anchorable)),
		rule("last <time>", t, nthOf(1, -1, false), re(lastWord), timex.Match(anchorable)),
		rule("<time> after next", t, nthOf(0, 1, true), timex.Match(anchorable), re(`after next`)),
		rule("<time> before last", t, nthOf(0, -2, false), timex.Match(anchorable), re(`before last`)),

		rule("<ordinal> <time> of <time>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.NthWithin(timeOf(c[1]), timeOf(c[3]), int(ordinalOf(c[0]))-1)
		}, ordinal.Match(1, 5), timex.Match(timex.Confirmed), re(`of|in`), timex.Match(timex.Confirmed, timex.Bounded)),

		rule("the <ordinal> <time> of <time>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.NthWithin(timeOf(c[2]), timeOf(c[4]), int(ordinalOf(c[1]))-1)
		}, re(`the`), ordinal.Match(1, 5), timex.Match(timex.Confirmed), re(`of|in`), timex.Match(timex.Confirmed, timex.Bounded)),

		rule("last <time> of <time>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.NthWithin(timeOf(c[1]), timeOf(c[3]), -1)
		}, re(`(?:the )?last`), timex.Match(timex.Confirmed), re(`of|in`), timex.Match(timex.Confirmed, timex.Bounded)),
	}
}

func notDayOfWeek(d timex.Data) bool { return d.Form != timex.FormDayOfWeek }

type nthHoliday struct {
	name    string
	pattern string
	day     time.Weekday
	month   time.Month
	n       int
}

var fixedHolidays = []struct {
	name    string
	pattern string
	month   int
	day     int
}{
	{"Christmas Eve", `(?:christmas|xmas) eve`, 12, 24},
	{"Christmas", `(?:christmas|xmas)(?: day)?`, 12, 25},
	{"Boxing Day", `boxing day`, 12, 26},
	{"New Year's Eve", `new year(?:'?s'?)? eve`, 12, 31},
	{"New Year's Day", `new year(?:'?s'?)?(?: day)?`, 1, 1},
	{"Valentine's Day", `valentine(?:'?s'?)?(?: day)?`, 2, 14},
	{"St Patrick's Day", `(?:st\.? |saint )?patrick'?s day`, 3, 17},
	{"April Fools' Day", `april fools?'?(?: day)?`, 4, 1},
	{"Earth Day", `earth day`, 4, 22},
	{"Independence Day", `independence day|(?:the )?(?:4th|fourth) of july`, 7, 4},
	{"Halloween", `hall?owe?en`, 10, 31},
	{"Veterans Day", `veterans'? day`, 11, 11},
}

var nthHolidays = []nthHoliday{
	{"Martin Luther King's Day", `(?:mlk|martin luther king'?s?(?: jr\.?)?)(?: day)?`, time.Monday, time.January, 2},
	{"Presidents' Day", `presidents?'?s?'? day|washington'?s birthday`, time.Monday, time.February, 2},
	{"Mother's Day", `mother'?s'? day`, time.Sunday, time.May, 1},
	{"Memorial Day", `memorial day`, time.Monday, time.May, -1},
	{"Father's Day", `father'?s'? day`, time.Sunday, time.June, 2},
	{"Labor Day", `labou?r day`, time.Monday, time.September, 0},
	{"Thanksgiving Day", `thanks?giving(?: day)?`, time.Thursday, time.November, 3},
}

func (h nthHoliday) data() (timex.Data, bool) {
	month, ok := timex.Month(h.month)
	if !ok {
		return timex.Data{}, false
	}
	d, ok := timex.NthWithin(timex.DayOfWeek(h.day), month, h.n)
	return d.Named(h.name), ok
}

func holidayRules() []*engine.Rule {
	var rules []*engine.Rule
	for _, h := range fixedHolidays {
		rules = append(rules, constant(h.name, must(timex.Holiday(h.name, h.month, h.day)), re(h.pattern)))
	}
	for _, h := range nthHolidays {
		rules = append(rules, constant(h.name, must(h.data()), re(h.pattern)))
	}

	thanksgiving := must(nthHolidays[len(nthHolidays)-1].data())
	blackFriday := must(timex.Shift(thanksgiving, 1, dimension.Day)).Named("Black Friday")
	return append(rules, constant("Black Friday", blackFriday, re(`black friday`)))
}
