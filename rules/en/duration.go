package en

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/duration"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/engine"
)

var grainWords = []struct {
	grain   dimension.Grain
	pattern string
}{
	{dimension.Second, `sec(?:ond)?s?`},
	{dimension.Minute, `min(?:ute)?s?|m`},
	{dimension.Hour, `h(?:ours?|rs?)?`},
	{dimension.Day, `days?`},
	{dimension.Week, `weeks?|wks?`},
	{dimension.Month, `months?`},
	{dimension.Quarter, `(?:quarter|qtr)s?`},
	{dimension.Year, `y(?:ea)?rs?`},
}

func unitOf(t *engine.Token) dimension.Grain {
	u, _ := duration.UnitFrom(t)
	return u.Grain
}

func durationOf(t *engine.Token) duration.Data {
	d, _ := duration.From(t)
	return d
}

func grainRules() []*engine.Rule {
	rules := make([]*engine.Rule, 0, len(grainWords))
	for _, w := range grainWords {
		rules = append(rules, rule(w.grain.String()+" (grain)", dimension.TimeGrain, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Unit{Grain: w.grain}, true
		}, re(w.pattern)))
	}
	return rules
}

func nonNegative(d numeral.Data) bool { return d.Value >= 0 }

func durationRules() []*engine.Rule {
	d := dimension.Duration
	anyUnit := duration.MatchUnit(nil)
	half := re(`and (?:a )?half`)
	return []*engine.Rule{
		rule("<integer> <unit-of-duration>", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Fraction(numeralOf(c[0]).Value, unitOf(c[1]))
		}, numeral.Match(nonNegative), anyUnit),

		rule("a <unit-of-duration>", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Data{Value: 1, Grain: unitOf(c[1])}, true
		}, re(`an?`), anyUnit),

		rule("half a <unit-of-duration>", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Fraction(0.5, unitOf(c[1]))
		}, re(`half an?`), anyUnit),

		rule("quarter of an hour", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Data{Value: 15, Grain: dimension.Minute}, true
		}, re(`(?:an? )?quarter(?: of an?)?`), duration.MatchUnit(func(g dimension.Grain) bool { return g == dimension.Hour })),

		rule("<integer> and a half <unit-of-duration>", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Fraction(numeralOf(c[0]).Value+0.5, unitOf(c[2]))
		}, numeral.Match(numeral.Integer, nonNegative), half, anyUnit),

		rule("<integer> <unit-of-duration> and a half", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Fraction(numeralOf(c[0]).Value+0.5, unitOf(c[1]))
		}, numeral.Match(numeral.Integer, nonNegative), anyUnit, half),

		rule("a <unit-of-duration> and a half", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Fraction(1.5, unitOf(c[1]))
		}, re(`an?|one`), anyUnit, half),

		rule("composite <duration>", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Sum(durationOf(c[0]), durationOf(c[1]))
		}, duration.Match(nil), duration.Match(nil)),

		rule("composite <duration> (with and)", d, func(c []*engine.Token) (engine.Payload, bool) {
			return duration.Sum(durationOf(c[0]), durationOf(c[2]))
		}, duration.Match(nil), re(`,|and`), duration.Match(nil)),

		rule("about|exactly <duration>", d, func(c []*engine.Token) (engine.Payload, bool) {
			return durationOf(c[1]), true
		}, re(`approx(?:imately|\.)?|about|around|roughly|exactly|precisely`), duration.Match(nil)),
	}
}
