package en

import (
	"time"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/timex"
	"github.com/teranos/qntx-dims/engine"
	"github.com/teranos/qntx-dims/locale"
)

var weekdays = []struct {
	day     time.Weekday
	pattern string
}{
	{time.Monday, `mondays?|mon\.?`},
	{time.Tuesday, `tuesdays?|tues?\.?`},
	{time.Wednesday, `wednesdays?|wed\.?`},
	{time.Thursday, `thursdays?|thu(?:rs?)?\.?`},
	{time.Friday, `fridays?|fri\.?`},
	{time.Saturday, `saturdays?|sat\.?`},
	{time.Sunday, `sundays?|sun\.?`},
}

var months = []struct {
	month   time.Month
	pattern string
}{
	{time.January, `january|jan\.?`},
	{time.February, `february|feb\.?`},
	{time.March, `march|mar\.?`},
	{time.April, `april|apr\.?`},
	{time.May, `may`},
	{time.June, `june|jun\.?`},
	{time.July, `july|jul\.?`},
	{time.August, `august|aug\.?`},
	{time.September, `september|sept?\.?`},
	{time.October, `october|oct\.?`},
	{time.November, `november|nov\.?`},
	{time.December, `december|dec\.?`},
}

var partsOfDay = []struct {
	name    string
	part    timex.PartOfDay
	pattern string
}{
	{"morning", timex.Morning, `mornings?`},
	{"afternoon", timex.Afternoon, `after ?noons?`},
	{"evening", timex.Evening, `evenings?`},
	{"night", timex.Night, `nights?`},
	{"lunch", timex.Lunch, `lunch(?: ?time)?`},
}

var seasonWords = []struct {
	name    string
	season  timex.Season
	pattern string
}{
	{"spring", timex.Spring, `spring`},
	{"summer", timex.Summer, `summer`},
	{"fall", timex.Fall, `fall|autumn`},
	{"winter", timex.Winter, `winter`},
}

func timeRules(loc locale.Locale) []*engine.Rule {
	var rules []*engine.Rule
	rules = append(rules, nameRules()...)
	rules = append(rules, clockRules()...)
	rules = append(rules, zoneRules()...)
	rules = append(rules, dateRules(loc)...)
	rules = append(rules, cycleRules()...)
	rules = append(rules, holidayRules()...)
	rules = append(rules, compositionRules()...)
	return rules
}

func timeOf(t *engine.Token) timex.Data {
	d, _ := timex.From(t)
	return d
}

// constant is a rule producing the same time expression wherever its
// pattern matches
func constant(name string, d timex.Data, items ...engine.Item) *engine.Rule {
	return rule(name, dimension.Time, func([]*engine.Token) (engine.Payload, bool) {
		return d, true
	}, items...)
}

func must(d timex.Data, ok bool) timex.Data {
	if !ok {
		panic("invalid static time expression")
	}
	return d
}

// notLatent clears the latent flag of the token at index i
func notLatent(i int) produce {
	return func(c []*engine.Token) (engine.Payload, bool) {
		return timeOf(c[i]).NotLatent(), true
	}
}

func nameRules() []*engine.Rule {
	var rules []*engine.Rule
	for _, w := range weekdays {
		rules = append(rules, constant(w.day.String(), timex.DayOfWeek(w.day), re(w.pattern)))
	}
	for _, m := range months {
		rules = append(rules, constant(m.month.String(), must(timex.Month(m.month)), re(m.pattern)))
	}

	today := timex.Cycle(dimension.Day, 0)
	rules = append(rules,
		constant("now", timex.Now(), re(`right now|just now|immediately|at the moment|now`)),
		constant("today", today, re(`todays?|at this time`)),
		constant("tomorrow", timex.Cycle(dimension.Day, 1), re(`tmrw?|tomm?or?rows?`)),
		constant("yesterday", timex.Cycle(dimension.Day, -1), re(`yesterdays?`)),
		constant("day after tomorrow", timex.Cycle(dimension.Day, 2), re(`(?:the )?day after tomorrow`)),
		constant("day before yesterday", timex.Cycle(dimension.Day, -2), re(`(?:the )?day before yesterday`)),
		constant("weekend", timex.Weekend(), re(`(?:the )?week[ -]?ends?`)),
	)

	for _, p := range partsOfDay {
		rules = append(rules, constant(p.name, timex.DayPart(p.part), re(p.pattern)))
	}
	for _, s := range seasonWords {
		rules = append(rules, constant(s.name, timex.SeasonOf(s.season), re(s.pattern)))
	}

	evening := timex.DayPart(timex.Evening)
	rules = append(rules,
		constant("tonight", must(timex.Intersect(today, evening)), re(`toni(?:gh)?te?`)),
		constant("last night", must(timex.Intersect(timex.Cycle(dimension.Day, -1), timex.DayPart(timex.Night))), re(`last night`)),

		rule("this <part-of-day>", dimension.Time, func(c []*engine.Token) (engine.Payload, bool) {
			return timex.Intersect(today, timeOf(c[1]))
		}, re(`this|today`), timex.Match(timex.IsForm(timex.FormPartOfDay))),

		rule("in|during the <part-of-day>", dimension.Time, notLatent(1),
			re(`(?:in|during) the`), timex.Match(timex.IsForm(timex.FormPartOfDay))),
	)
	return rules
}
