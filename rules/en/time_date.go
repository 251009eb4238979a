package en

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/dimension/ordinal"
	"github.com/teranos/qntx-dims/dimension/timex"
	"github.com/teranos/qntx-dims/engine"
	"github.com/teranos/qntx-dims/locale"
)

var (
	monthForm = timex.IsForm(timex.FormMonth)
	domForm   = timex.IsForm(timex.FormDayOfMonth)
	yearForm  = timex.IsForm(timex.FormYear)
)

// fullYear expands two-digit years: 13 is 2013, 87 is 1987
func fullYear(y int, digits int) int {
	if digits > 2 {
		return y
	}
	if y < 50 {
		return 2000 + y
	}
	return 1900 + y
}

// monthDay combines a month token with a day-of-month number
func monthDay(month *engine.Token, day int) (engine.Payload, bool) {
	m, ok := timeOf(month).MonthNumber()
	if !ok {
		return nil, false
	}
	return timex.MonthDay(int(m), day)
}

func dayNumber(t *engine.Token) int {
	d, _ := timeOf(t).DayNumber()
	return d
}

func dateRules(loc locale.Locale) []*engine.Rule {
	t := dimension.Time
	dayFirst := loc.DayFirst()

	// order returns month and day of a numeric date for the region
	order := func(a, b int) (int, int) {
		if dayFirst {
			return b, a
		}
		return a, b
	}

	return []*engine.Rule{
		rule("the <day-of-month> (ordinal)", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.DayOfMonth(int(ordinalOf(c[1])))
		}, re(`the`), ordinal.Match(1, 31)),

		rule("<day-of-month> (ordinal, latent)", t, func(c []*engine.Token) (engine.Payload, bool) {
			d, ok := timex.DayOfMonth(int(ordinalOf(c[0])))
			return d.AsLatent(), ok
		}, ordinal.Match(1, 31)),

		rule("<month> <day-of-month>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return monthDay(c[0], dayNumber(c[1]))
		}, timex.Match(monthForm), timex.Match(domForm)),

		rule("<month> <integer>", t, func(c []*engine.Token) (engine.Payload, bool) {
			day, _ := numeralOf(c[1]).Int()
			return monthDay(c[0], day)
		}, timex.Match(monthForm), numeral.Match(numeral.Between(1, 31))),

		rule("<day-of-month> <month>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return monthDay(c[1], dayNumber(c[0]))
		}, timex.Match(domForm), timex.Match(monthForm)),

		rule("<day-of-month> of <month>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return monthDay(c[2], dayNumber(c[0]))
		}, timex.Match(domForm), re(`of`), timex.Match(monthForm)),

		rule("<integer> <month>", t, func(c []*engine.Token) (engine.Payload, bool) {
			day, _ := numeralOf(c[0]).Int()
			return monthDay(c[1], day)
		}, numeral.Match(numeral.Between(1, 31)), timex.Match(monthForm)),

		rule("mm/dd/yyyy", t, func(c []*engine.Token) (engine.Payload, bool) {
			a, _ := atoi(c[0], 1)
			b, _ := atoi(c[0], 2)
			y, _ := atoi(c[0], 3)
			m, d := order(a, b)
			return timex.Date(fullYear(y, len(c[0].Group(3))), m, d)
		}, re(`(\d{1,2})[/.-](\d{1,2})[/.-](\d{4}|\d{2})`)),

		rule("mm/dd", t, func(c []*engine.Token) (engine.Payload, bool) {
			a, _ := atoi(c[0], 1)
			b, _ := atoi(c[0], 2)
			m, d := order(a, b)
			return timex.MonthDay(m, d)
		}, re(`(\d{1,2})/(\d{1,2})`)),

		rule("yyyy-mm-dd", t, func(c []*engine.Token) (engine.Payload, bool) {
			y, _ := atoi(c[0], 1)
			m, _ := atoi(c[0], 2)
			d, _ := atoi(c[0], 3)
			return timex.Date(y, m, d)
		}, re(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)),

		rule("year (latent)", t, func(c []*engine.Token) (engine.Payload, bool) {
			y, _ := numeralOf(c[0]).Int()
			d, ok := timex.Year(y)
			return d.AsLatent(), ok
		}, numeral.Match(numeral.Between(1000, 2100))),

		rule("in|during <year>", t, notLatent(1), re(`in|during|for`), timex.Match(yearForm)),

		rule("<time> <year>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.Intersect(timeOf(c[0]), timeOf(c[1]))
		}, timex.Match(timex.Confirmed, timex.Bounded, notYear), timex.Match(yearForm)),

		rule("<time> ,|of <year>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.Intersect(timeOf(c[0]), timeOf(c[2]))
		}, timex.Match(timex.Confirmed, timex.Bounded, notYear), re(`,|of|in`), timex.Match(yearForm)),

		rule("<ordinal> quarter", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.Quarter(int(ordinalOf(c[0])))
		}, ordinal.Match(1, 4), re(`quarter|qtr`)),

		rule("q<n>", t, func(c []*engine.Token) (engine.Payload, bool) {
			q, _ := atoi(c[0], 1)
			return timex.Quarter(q)
		}, re(`q([1-4])`)),
	}
}

func notYear(d timex.Data) bool { return d.Form != timex.FormYear && d.Form != timex.FormTimeOfDay }
