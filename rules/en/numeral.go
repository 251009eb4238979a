package en

import (
	"math"
	"strconv"
	"strings"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/engine"
)

var smallNumbers = map[string]int{
	"zero": 0, "naught": 0, "nought": 0, "nil": 0,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19,
}

var tens = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fourty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var powers = map[string]int{
	"hundred": 2, "thousand": 3, "million": 6, "billion": 9, "trillion": 12,
	"lakh": 5, "lac": 5, "crore": 7,
}

var suffixes = map[string]float64{"k": 1e3, "m": 1e6, "g": 1e9, "b": 1e9}

func num(v float64) (engine.Payload, bool) {
	return numeral.New(v), true
}

func numeralOf(t *engine.Token) numeral.Data {
	d, _ := numeral.From(t)
	return d
}

func numeralMatch() engine.Item {
	return numeral.Match()
}

func isTens(d numeral.Data) bool {
	v, ok := d.Int()
	return ok && d.Grain == 1 && v >= 20 && v <= 90 && v%10 == 0
}

func hasGrain(d numeral.Data) bool { return d.Grain > 0 }

func notMultipliable(d numeral.Data) bool { return !d.Multipliable }

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v, err == nil && !math.IsInf(v, 0)
}

func numeralRules() []*engine.Rule {
	return []*engine.Rule{
		rule("integer (0..19)", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := smallNumbers[group(c[0], 1)]
			if !ok {
				return nil, false
			}
			return num(float64(v))
		}, re(alternation(keys(smallNumbers)))),

		rule("integer (20..90)", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := tens[group(c[0], 1)]
			if !ok {
				return nil, false
			}
			return numeral.Data{Value: float64(v), Grain: 1, OKForAnyTime: true}, true
		}, re(alternation(keys(tens)))),

		{
			Name:    "integer 21..99 hyphenated",
			Dim:     dimension.Numeral,
			Tight:   true,
			Pattern: []engine.Item{numeral.Match(isTens), re(`-`), numeral.Match(numeral.Between(1, 9))},
			Produce: func(c []*engine.Token) (engine.Payload, bool) {
				return numeral.Sum(numeralOf(c[0]), numeralOf(c[2]))
			},
		},

		rule("intersect 2 numbers", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return numeral.Sum(numeralOf(c[0]), numeralOf(c[1]))
		}, numeral.Match(hasGrain), numeral.Match(notMultipliable)),

		rule("intersect 2 numbers with and", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return numeral.Sum(numeralOf(c[0]), numeralOf(c[2]))
		}, numeral.Match(hasGrain), re(`and`), numeral.Match(notMultipliable)),

		rule("integer digits", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := parseFloat(c[0].Group(1))
			if !ok {
				return nil, false
			}
			return num(v)
		}, re(`(\d{1,18})`)),

		rule("decimal number", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := parseFloat(c[0].Group(1))
			if !ok {
				return nil, false
			}
			return num(v)
		}, re(`(\d*\.\d+)`)),

		rule("comma-separated number", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := parseFloat(c[0].Group(1))
			if !ok {
				return nil, false
			}
			return num(v)
		}, re(`(\d{1,3}(?:,\d\d\d)+(?:\.\d+)?)`)),

		{
			Name:    "number suffixes (K, M, G)",
			Dim:     dimension.Numeral,
			Tight:   true,
			Pattern: []engine.Item{numeral.Match(notMultipliable), re(`(k|m|g|b)`)},
			Produce: func(c []*engine.Token) (engine.Payload, bool) {
				d := numeralOf(c[0])
				if d.Grain > 0 {
					return nil, false
				}
				return num(d.Value * suffixes[group(c[1], 1)])
			},
		},

		rule("negative numbers", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return num(-numeralOf(c[1]).Value)
		}, re(`-|minus|negative`), numeral.Match(numeral.Positive, notMultipliable)),

		rule("powers of tens", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			exp, ok := powers[group(c[0], 1)]
			if !ok {
				return nil, false
			}
			return numeral.Power(exp), true
		}, re(alternation(keys(powers))+`s?`)),

		rule("dozen", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return numeral.Data{Value: 12, Grain: 1, Multipliable: true}, true
		}, re(`dozens?`)),

		rule("couple", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return numeral.New(2).NotForTime(), true
		}, re(`(?:a )?(?:couple|pair)(?: of)?`)),

		rule("few", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return numeral.New(3).NotForTime(), true
		}, re(`(?:a )?few`)),

		rule("compose by multiplication", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			return numeral.Multiply(numeralOf(c[0]), numeralOf(c[1]))
		}, numeral.Match(), numeral.Match(numeral.Multipliable)),

		rule("decimal with spelled point", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			frac, ok := fraction(numeralOf(c[2]))
			if !ok {
				return nil, false
			}
			return num(numeralOf(c[0]).Value + frac)
		}, numeral.Match(numeral.Integer, notMultipliable), re(`point|dot`), numeral.Match(numeral.Integer, numeral.GrainBelow(1))),

		rule("point decimal", dimension.Numeral, func(c []*engine.Token) (engine.Payload, bool) {
			frac, ok := fraction(numeralOf(c[1]))
			if !ok {
				return nil, false
			}
			return num(frac)
		}, re(`point`), numeral.Match(numeral.Integer, numeral.GrainBelow(1))),
	}
}

// fraction reads the digits of an integer as a decimal fraction: 77 is .77
func fraction(d numeral.Data) (float64, bool) {
	v, ok := d.Int()
	if !ok || v < 0 {
		return 0, false
	}
	digits := len(strconv.Itoa(v))
	return float64(v) / math.Pow10(digits), true
}
