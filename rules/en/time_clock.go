package en

import (
	"strings"
	"time"

	"github.com/teranos/qntx-dims/am/geotime"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/dimension/timex"
	"github.com/teranos/qntx-dims/engine"
)

const hour24 = `([01]?\d|2[0-3])`

var timeOfDay = timex.IsForm(timex.FormTimeOfDay)

// hourOnly accepts a time of day given to the hour without a zone
func hourOnly(d timex.Data) bool {
	_, _, ok := d.Clock()
	return ok && d.Form == timex.FormTimeOfDay && !d.HasMinutes() && !d.HasZone()
}

func meridiem(t *engine.Token, i int) bool {
	return group(t, i) == "p"
}

// withMinutes moves an hour by m minutes, keeping a latent hour latent
func withMinutes(hour timex.Data, m int) (engine.Payload, bool) {
	d, ok := hour.WithMinutes(m)
	if ok && hour.Latent() {
		d = d.AsLatent()
	}
	return d, ok
}

func clockRules() []*engine.Rule {
	t := dimension.Time
	return []*engine.Rule{
		constant("noon", must(timex.Hour(12, false)), re(`noon|mid-?day`)),
		constant("midnight", must(timex.Hour(0, false)), re(`midnight|eod|end of (?:the )?day`)),

		rule("time-of-day (latent)", t, func(c []*engine.Token) (engine.Payload, bool) {
			h, _ := numeralOf(c[0]).Int()
			d, ok := timex.Hour(h, true)
			return d.AsLatent(), ok
		}, numeral.Match(numeral.Between(0, 23), numeral.ForTime)),

		rule("hh:mm", t, func(c []*engine.Token) (engine.Payload, bool) {
			h, _ := atoi(c[0], 1)
			m, _ := atoi(c[0], 2)
			return timex.HourMinute(h, m, true)
		}, re(hour24+`[:h]([0-5]\d)`)),

		rule("hh:mm:ss", t, func(c []*engine.Token) (engine.Payload, bool) {
			h, _ := atoi(c[0], 1)
			m, _ := atoi(c[0], 2)
			s, _ := atoi(c[0], 3)
			return timex.HourMinuteSecond(h, m, s)
		}, re(hour24+`:([0-5]\d):([0-5]\d)`)),

		rule("hhmm (military)", t, func(c []*engine.Token) (engine.Payload, bool) {
			h, _ := atoi(c[0], 1)
			m, _ := atoi(c[0], 2)
			d, ok := timex.HourMinute(h, m, false)
			return d.AsLatent(), ok
		}, re(`([01]\d|2[0-3])([0-5]\d)`)),

		rule("hhmm (military) hours", t, func(c []*engine.Token) (engine.Payload, bool) {
			h, _ := atoi(c[0], 1)
			m, _ := atoi(c[0], 2)
			return timex.HourMinute(h, m, false)
		}, re(`([01]\d|2[0-3])([0-5]\d) ?(?:hrs|hours|h)`)),

		rule("<time-of-day> am|pm", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timeOf(c[0]).WithMeridiem(meridiem(c[1], 1))
		}, timex.Match(timex.Twelve), re(`(?:in the )?([ap])\.? ?m\.?`)),

		{
			Name:    "<time-of-day> a|p",
			Dim:     t,
			Tight:   true,
			Pattern: []engine.Item{timex.Match(timex.Twelve), re(`([ap])`)},
			Produce: func(c []*engine.Token) (engine.Payload, bool) {
				return timeOf(c[0]).WithMeridiem(meridiem(c[1], 1))
			},
		},

		rule("<time-of-day> o'clock", t, notLatent(0), timex.Match(timeOfDay), re(`o.?clock`)),

		rule("at <time-of-day>", t, notLatent(1), re(`at|@`), timex.Match(timeOfDay)),

		rule("half past <hour>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timeOf(c[1]).WithMinutes(30)
		}, re(`half (?:past|after)`), timex.Match(hourOnly)),

		rule("quarter past <hour>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timeOf(c[1]).WithMinutes(15)
		}, re(`(?:a )?quarter (?:past|after)`), timex.Match(hourOnly)),

		rule("quarter to <hour>", t, func(c []*engine.Token) (engine.Payload, bool) {
			return timeOf(c[1]).WithMinutes(-15)
		}, re(`(?:a )?quarter (?:to|till|before|of)`), timex.Match(hourOnly)),

		rule("<integer> past <hour>", t, func(c []*engine.Token) (engine.Payload, bool) {
			m, _ := numeralOf(c[0]).Int()
			return timeOf(c[2]).WithMinutes(m)
		}, numeral.Match(numeral.Between(1, 59)), re(`(?:min(?:ute)?s? )?(?:past|after)`), timex.Match(hourOnly)),

		rule("<integer> to <hour>", t, func(c []*engine.Token) (engine.Payload, bool) {
			m, _ := numeralOf(c[0]).Int()
			return timeOf(c[2]).WithMinutes(-m)
		}, numeral.Match(numeral.Between(1, 59)), re(`(?:min(?:ute)?s? )?(?:to|till|before|of)`), timex.Match(hourOnly)),

		rule("<hour> <integer> (as minutes)", t, func(c []*engine.Token) (engine.Payload, bool) {
			m, _ := numeralOf(c[1]).Int()
			return withMinutes(timeOf(c[0]), m)
		}, timex.Match(hourOnly, timex.Twelve), numeral.Match(numeral.Between(10, 59))),

		rule("<hour> half", t, func(c []*engine.Token) (engine.Payload, bool) {
			return withMinutes(timeOf(c[0]), 30)
		}, timex.Match(hourOnly, timex.Twelve), re(`half`)),
	}
}

// zoned attaches the zone of an abbreviation like "CET" or an offset
// like "UTC+2"
func zoned(d timex.Data, name string) (engine.Payload, bool) {
	name = strings.TrimSpace(name)
	loc, ok := geotime.Abbreviation(name)
	if !ok {
		loc, ok = geotime.ParseOffset(name)
	}
	if !ok {
		return nil, false
	}
	return d.In(timex.Zone{Name: loc.String(), Loc: loc})
}

// zoneable accepts confirmed expressions precise to the hour or finer
func zoneable(d timex.Data) bool {
	return !d.Latent() && !d.HasZone() && d.Grain() <= dimension.Hour
}

func zoneRules() []*engine.Rule {
	t := dimension.Time
	abbrs := alternation(geotime.Abbreviations())
	cities := alternation(geotime.Cities())
	return []*engine.Rule{
		rule("<time> timezone", t, func(c []*engine.Token) (engine.Payload, bool) {
			return zoned(timeOf(c[0]), c[1].Group(1))
		}, timex.Match(zoneable), re(`\(?`+abbrs+`\)?`)),

		rule("<time> utc offset", t, func(c []*engine.Token) (engine.Payload, bool) {
			return zoned(timeOf(c[0]), c[1].Group(1))
		}, timex.Match(zoneable), re(`((?:utc|gmt) ?[+-]\d{1,2}(?::?\d{2})?)`)),

		rule("<time> <city> time", t, func(c []*engine.Token) (engine.Payload, bool) {
			name := geotime.GuessTimezoneFromLocation(c[1].Group(1))
			if name == "" {
				return nil, false
			}
			loc, err := time.LoadLocation(name)
			if err != nil {
				return nil, false
			}
			return timeOf(c[0]).In(timex.Zone{Name: name, Loc: loc})
		}, timex.Match(zoneable), re(`(?:in )?`+cities+` time`)),
	}
}
