package en

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/measure"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/engine"
)

var currencies = []unitDef{
	{"USD", `usd|us\$`},
	{"AUD", `aud|a\$`},
	{"CAD", `cad|c\$`},
	{measure.Dollar, `dollars?|bucks?|\$`},
	{"EUR", `euros?|eur|€`},
	{"GBP", `pounds? sterling|pounds?|quid|gbp|£`},
	{"JPY", `yen|jpy|¥`},
	{"INR", `rupees?|inr|rs\.?|₹`},
	{"cent", `cents?|pennies|penny|¢`},
}

func moneyRules() []*engine.Rule {
	m := dimension.AmountOfMoney
	rules := unitRules(m, currencies)
	rules = append(rules, liftRule(m))
	rules = append(rules, valueRules(m)...)
	rules = append(rules,
		rule("<currency> <amount>", m, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[0]).WithValue(numeralOf(c[1]).Value), true
		}, measure.Match(m, measure.UnitNoValue), numeralMatch()),

		rule("<amount> <power>", m, func(c []*engine.Token) (engine.Payload, bool) {
			d := measureOf(c[0])
			return d.WithValue(*d.Value * numeralOf(c[1]).Value), true
		}, measure.Match(m, measure.Simple), numeral.Match(numeral.Multipliable)),

		rule("<amount> and <cents>", m, func(c []*engine.Token) (engine.Payload, bool) {
			d, cents := measureOf(c[0]), measureOf(c[2])
			if *cents.Value >= 100 {
				return nil, false
			}
			return d.WithValue(*d.Value + *cents.Value/100), true
		}, measure.Match(m, measure.Simple, notCents), re(`and`), measure.Match(m, measure.Simple, unitIn("cent"))),

		rule("<amount> <cents number>", m, func(c []*engine.Token) (engine.Payload, bool) {
			d := measureOf(c[0])
			n, ok := numeralOf(c[2]).Int()
			if !ok || n < 0 || n >= 100 || *d.Value != float64(int64(*d.Value)) {
				return nil, false
			}
			return d.WithValue(*d.Value + float64(n)/100), true
		}, measure.Match(m, measure.Simple, notCents), re(`and`), numeral.Match(numeral.Integer)),
	)
	return append(rules, intervalRules(m)...)
}

func notCents(d measure.Data) bool { return d.Unit != "cent" }
