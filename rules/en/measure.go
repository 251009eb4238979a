package en

import (
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/measure"
	"github.com/teranos/qntx-dims/engine"
)

// unitDef binds a unit name to the words that spell it. Patterns list
// longer spellings first.
type unitDef struct {
	unit    string
	pattern string
}

var distanceUnits = []unitDef{
	{"mile", `miles?`},
	{"yard", `yards?|yds?`},
	{"foot", `f(?:oo|ee)t|ft`},
	{"inch", `inch(?:es)?`},
	{"kilometre", `kilomet(?:er|re)s?|kms?`},
	{"centimetre", `centimet(?:er|re)s?|cms?`},
	{"millimetre", `millimet(?:er|re)s?|mms?`},
	{"metre", `met(?:er|re)s?|m`},
}

var volumeUnits = []unitDef{
	{"millilitre", `millilit(?:er|re)s?|ml`},
	{"hectolitre", `hectolit(?:er|re)s?|hl`},
	{"litre", `lit(?:er|re)s?|l`},
	{"gallon", `gallons?|gal`},
	{"cup", `cups?`},
	{"pint", `pints?|pt`},
	{"quart", `quarts?|qt`},
	{"tablespoon", `tablespoons?|tbsp`},
	{"teaspoon", `teaspoons?|tsp`},
	{"fluid ounce", `fluid ounces?|fl\.? ?oz`},
}

var quantityUnits = []unitDef{
	{"kilogram", `kilograms?|kilos?|kg`},
	{"milligram", `milligrams?|mg`},
	{"gram", `grams?|gr|g`},
	{"pound", `pounds?|lbs?`},
	{"ounce", `ounces?|oz`},
	{"cup", `cups?`},
}

var fractions = map[string]float64{
	"half": 0.5, "third": 1.0 / 3, "quarter": 0.25, "fifth": 0.2, "tenth": 0.1,
}

func measureOf(t *engine.Token) measure.Data {
	d, _ := measure.From(t)
	return d
}

func unitIn(units ...string) measure.Cond {
	return func(d measure.Data) bool {
		for _, u := range units {
			if d.Unit == u {
				return true
			}
		}
		return false
	}
}

func measureRules(dim dimension.Kind, units []unitDef) []*engine.Rule {
	var rules []*engine.Rule
	rules = append(rules, unitRules(dim, units)...)
	rules = append(rules, liftRule(dim))
	rules = append(rules, valueRules(dim)...)
	rules = append(rules, intervalRules(dim)...)
	return rules
}

func unitRules(dim dimension.Kind, units []unitDef) []*engine.Rule {
	rules := make([]*engine.Rule, 0, len(units))
	for _, u := range units {
		rules = append(rules, rule(dim.String()+" unit "+u.unit, dim, func(c []*engine.Token) (engine.Payload, bool) {
			return measure.UnitOnly(dim, u.unit), true
		}, re(u.pattern)))
	}
	return rules
}

// liftRule reads any number as a unitless, latent measurement so range
// rules can pair it with a following unit: "3 to 5 miles"
func liftRule(dim dimension.Kind) *engine.Rule {
	return rule("number as "+dim.String(), dim, func(c []*engine.Token) (engine.Payload, bool) {
		return measure.Of(dim, numeralOf(c[0]).Value).AsLatent(), true
	}, numeralMatch())
}

func valueRules(dim dimension.Kind) []*engine.Rule {
	name := dim.String()
	return []*engine.Rule{
		rule("<number> <"+name+" unit>", dim, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[1]).WithValue(numeralOf(c[0]).Value), true
		}, numeralMatch(), measure.Match(dim, measure.UnitNoValue)),

		rule("a <"+name+" unit>", dim, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[1]).WithValue(1), true
		}, re(`an?|one`), measure.Match(dim, measure.UnitNoValue)),

		rule("fraction of a <"+name+" unit>", dim, func(c []*engine.Token) (engine.Payload, bool) {
			f, ok := fractions[group(c[0], 1)]
			if !ok {
				return nil, false
			}
			return measureOf(c[1]).WithValue(f), true
		}, re(`(?:an? |one )?(half|third|quarter|fifth|tenth)(?: of)?(?: an?)?`), measure.Match(dim, measure.UnitNoValue)),
	}
}

func intervalRules(dim dimension.Kind) []*engine.Rule {
	name := dim.String()
	return []*engine.Rule{
		rule("about <"+name+">", dim, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[1]), true
		}, re(`approx(?:imately|\.)?|about|around|roughly|close to|near(?: to)?|almost|exactly|precisely`), measure.Match(dim, measure.Simple)),

		rule("between|from <"+name+"> and|to <"+name+">", dim, func(c []*engine.Token) (engine.Payload, bool) {
			return between(dim, measureOf(c[1]), measureOf(c[3]))
		}, re(`between|from`), measure.Match(dim, measure.SingleValue), re(`to|and|-|~`), measure.Match(dim, measure.Simple)),

		rule("<"+name+"> - <"+name+">", dim, func(c []*engine.Token) (engine.Payload, bool) {
			return between(dim, measureOf(c[0]), measureOf(c[2]))
		}, measure.Match(dim, measure.SingleValue), re(`-|~|to`), measure.Match(dim, measure.Simple)),

		rule("under|less than <"+name+">", dim, func(c []*engine.Token) (engine.Payload, bool) {
			d := measureOf(c[1])
			return measure.AtMost(dim, *d.Value, d.Unit), true
		}, re(`(?:less|lower|fewer|not? more|no higher) than|under|below|at most|up to`), measure.Match(dim, measure.Simple)),

		rule("over|more than <"+name+">", dim, func(c []*engine.Token) (engine.Payload, bool) {
			d := measureOf(c[1])
			return measure.AtLeast(dim, *d.Value, d.Unit), true
		}, re(`(?:more|larger|bigger|heavier|greater|higher|not? less) than|over|above|exceeding|beyond|at least`), measure.Match(dim, measure.Simple)),
	}
}

// between builds a closed range; a unitless lower bound borrows the upper
// bound's unit
func between(dim dimension.Kind, from, to measure.Data) (engine.Payload, bool) {
	if from.Unit != "" && from.Unit != to.Unit {
		return nil, false
	}
	if *from.Value >= *to.Value {
		return nil, false
	}
	return measure.Between(dim, *from.Value, *to.Value, to.Unit), true
}

func temperatureRules() []*engine.Rule {
	t := dimension.Temperature
	bare := measure.Match(t, measure.SingleValue, unitIn("", "degree"))
	rules := []*engine.Rule{
		liftRule(t),

		rule("<latent temp> degrees", t, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[0]).WithUnit("degree"), true
		}, measure.Match(t, measure.ValueNoUnit), re(`degrees?|degs?\.?|°`)),

		rule("<temp> celsius", t, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[0]).WithUnit("celsius"), true
		}, bare, re(`c(?:el[cs]?(?:ius)?|entigrade)?\.?`)),

		rule("<temp> fahrenheit", t, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[0]).WithUnit("fahrenheit"), true
		}, bare, re(`f(?:ah?rh?eh?n(?:h?eit)?)?\.?`)),

		rule("<temp> below zero", t, func(c []*engine.Token) (engine.Payload, bool) {
			d := measureOf(c[0])
			unit := d.Unit
			if unit == "" {
				unit = "degree"
			}
			return measure.Of(t, -*d.Value).WithUnit(unit), true
		}, measure.Match(t, measure.SingleValue, func(d measure.Data) bool { return *d.Value > 0 }), re(`below zero`)),
	}
	return append(rules, intervalRules(t)...)
}

func quantityRules() []*engine.Rule {
	q := dimension.Quantity
	return []*engine.Rule{
		rule("<quantity> of product", q, func(c []*engine.Token) (engine.Payload, bool) {
			return measureOf(c[0]).WithProduct(group(c[1], 1)), true
		}, measure.Match(q, measure.Simple, measure.NoProduct), re(`of ([a-z]+)`)),
	}
}
