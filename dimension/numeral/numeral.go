// Package numeral holds the Numeral payload and the helpers rule tables use
// to consume numeral tokens.
package numeral

import (
	"fmt"
	"math"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
)

// Data is the intermediate numeral value
type Data struct {
	Value float64
	// Grain is the power of ten a word like "hundred" (2) or "million" (6)
	// carries; 0 when none
	Grain int
	// Multipliable marks power words that may scale a preceding number
	Multipliable bool
	// OKForAnyTime is false for words like "couple" or "dozen" that must
	// not be read as clock hours
	OKForAnyTime bool
}

// New returns a plain numeral
func New(v float64) Data {
	return Data{Value: v, OKForAnyTime: true}
}

// Power returns a multipliable power-of-ten word value, e.g. Power(2) for "hundred"
func Power(exp int) Data {
	return Data{Value: math.Pow10(exp), Grain: exp, Multipliable: true, OKForAnyTime: true}
}

// NotForTime marks the value as unusable as a clock hour
func (d Data) NotForTime() Data {
	d.OKForAnyTime = false
	return d
}

func (Data) Kind() dimension.Kind { return dimension.Numeral }

func (d Data) Key() string {
	return fmt.Sprintf("%g|%d|%t|%t", d.Value, d.Grain, d.Multipliable, d.OKForAnyTime)
}

// Resolve produces the final value
func (d Data) Resolve() dimension.NumeralValue {
	return dimension.NumeralValue{Value: d.Value}
}

// IsInteger reports whether the value has no fractional part
func (d Data) IsInteger() bool {
	return d.Value == math.Trunc(d.Value) && !math.IsInf(d.Value, 0)
}

// Int returns the value as an int when it is integral
func (d Data) Int() (int, bool) {
	if !d.IsInteger() || math.Abs(d.Value) > math.MaxInt32 {
		return 0, false
	}
	return int(d.Value), true
}

// From extracts numeral data from a token
func From(t *engine.Token) (Data, bool) {
	d, ok := t.Payload.(Data)
	return d, ok
}

// Cond is a refinement on numeral tokens
type Cond func(Data) bool

// Match returns a pattern item accepting numerals that satisfy every cond
func Match(conds ...Cond) engine.Item {
	if len(conds) == 0 {
		return engine.Dim(dimension.Numeral)
	}
	return engine.Pred(dimension.Numeral, func(p engine.Payload) bool {
		d, ok := p.(Data)
		if !ok {
			return false
		}
		for _, c := range conds {
			if !c(d) {
				return false
			}
		}
		return true
	})
}

// Integer accepts integral values
func Integer(d Data) bool { return d.IsInteger() }

// Positive accepts values above zero
func Positive(d Data) bool { return d.Value > 0 }

// Multipliable accepts power words
func Multipliable(d Data) bool { return d.Multipliable }

// ForTime accepts values usable as clock components
func ForTime(d Data) bool { return d.OKForAnyTime }

// Between accepts integral values in [lo, hi]
func Between(lo, hi int) Cond {
	return func(d Data) bool {
		v, ok := d.Int()
		return ok && v >= lo && v <= hi
	}
}

// GrainBelow accepts values whose power grain is less than g
func GrainBelow(g int) Cond {
	return func(d Data) bool { return d.Grain < g }
}

// Multiply scales a by a power word b, keeping b's grain. It fails when a
// already carries a grain at least as large as b's.
func Multiply(a, b Data) (Data, bool) {
	if !b.Multipliable {
		return Data{}, false
	}
	if a.Grain != 0 && a.Grain >= b.Grain {
		return Data{}, false
	}
	return Data{Value: a.Value * b.Value, Grain: b.Grain, OKForAnyTime: true}, true
}

// Sum adds a lower-order value to a number carrying a power grain
// ("twenty" + "one", "three hundred" + "five"). The low part must be
// strictly smaller than the high part's magnitude.
func Sum(high, low Data) (Data, bool) {
	if high.Grain == 0 || low.Value < 0 || low.Value >= math.Pow10(high.Grain) {
		return Data{}, false
	}
	return Data{Value: high.Value + low.Value, OKForAnyTime: true}, true
}
