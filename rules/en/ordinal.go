package en

import (
	"strconv"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/ordinal"
	"github.com/teranos/qntx-dims/engine"
)

var ordinalWords = map[string]int64{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14,
	"fifteenth": 15, "sixteenth": 16, "seventeenth": 17, "eighteenth": 18,
	"nineteenth": 19,
}

var ordinalTens = map[string]int64{
	"twentieth": 20, "thirtieth": 30, "fortieth": 40, "fiftieth": 50,
	"sixtieth": 60, "seventieth": 70, "eightieth": 80, "ninetieth": 90,
}

// cardinal tens that prefix a composite ordinal: "twenty-first"
var ordinalPrefixes = map[string]int64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var unitOrdinals = map[string]int64{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9,
}

func ordinalOf(t *engine.Token) int64 {
	d, _ := ordinal.From(t)
	return d.Value
}

func ordinalRules() []*engine.Rule {
	return []*engine.Rule{
		rule("ordinals (first..19th)", dimension.Ordinal, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := ordinalWords[group(c[0], 1)]
			return ordinal.Data{Value: v}, ok
		}, re(alternation(keys(ordinalWords)))),

		rule("ordinals (20th..90th)", dimension.Ordinal, func(c []*engine.Token) (engine.Payload, bool) {
			v, ok := ordinalTens[group(c[0], 1)]
			return ordinal.Data{Value: v}, ok
		}, re(alternation(keys(ordinalTens)))),

		rule("ordinals (composite, e.g. eighty-seven)", dimension.Ordinal, func(c []*engine.Token) (engine.Payload, bool) {
			t, ok1 := ordinalPrefixes[group(c[0], 1)]
			u, ok2 := unitOrdinals[group(c[0], 2)]
			return ordinal.Data{Value: t + u}, ok1 && ok2
		}, re(alternation(keys(ordinalPrefixes))+`[\s-]?`+alternation(keys(unitOrdinals)))),

		rule("ordinal (digits)", dimension.Ordinal, func(c []*engine.Token) (engine.Payload, bool) {
			v, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			return ordinal.Data{Value: v}, err == nil
		}, re(`0*(\d+) ?(?:st|nd|rd|th)`)),
	}
}
