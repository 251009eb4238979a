// Package duration holds the TimeGrain and Duration payloads
package duration

import (
	"strconv"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
)

// Unit is a bare time unit word such as "hours" or "week"
type Unit struct {
	Grain dimension.Grain
}

func (Unit) Kind() dimension.Kind { return dimension.TimeGrain }

func (u Unit) Key() string { return u.Grain.String() }

// Resolve produces the final value
func (u Unit) Resolve() dimension.GrainValue {
	return dimension.GrainValue{Grain: u.Grain}
}

// Data is an amount of a grain, e.g. {3, Day}
type Data struct {
	Value int64
	Grain dimension.Grain
}

func (Data) Kind() dimension.Kind { return dimension.Duration }

func (d Data) Key() string { return strconv.FormatInt(d.Value, 10) + " " + d.Grain.String() }

// Resolve produces the final value; Seconds uses nominal grain lengths
func (d Data) Resolve() dimension.DurationValue {
	return dimension.DurationValue{Value: d.Value, Grain: d.Grain, Seconds: d.Value * d.Grain.Seconds()}
}

// Fraction builds a duration of v units of g. Fractional values are
// expressed in the next finer grain they divide evenly into ("1.5 hours" is
// 90 minutes).
func Fraction(v float64, g dimension.Grain) (Data, bool) {
	if v == float64(int64(v)) {
		return Data{Value: int64(v), Grain: g}, true
	}
	for fine := g; fine > dimension.Second; {
		fine = fine.Finer()
		r, ok := ratio(g, fine)
		if !ok {
			continue
		}
		n := v * float64(r)
		if n == float64(int64(n)) {
			return Data{Value: int64(n), Grain: fine}, true
		}
	}
	return Data{}, false
}

// Sum adds two durations in the finer of their grains. The coarser must be
// listed first, as in "1 hour and 30 minutes".
func Sum(a, b Data) (Data, bool) {
	if a.Grain <= b.Grain {
		return Data{}, false
	}
	r, ok := ratio(a.Grain, b.Grain)
	if !ok {
		return Data{}, false
	}
	return Data{Value: a.Value*r + b.Value, Grain: b.Grain}, true
}

var months = map[dimension.Grain]int64{dimension.Month: 1, dimension.Quarter: 3, dimension.Year: 12}

// ratio is how many fine units make one coarse unit, when that is whole
func ratio(coarse, fine dimension.Grain) (int64, bool) {
	if fm, ok := months[fine]; ok {
		cm := months[coarse]
		return cm / fm, cm%fm == 0 && cm > 0
	}
	c, f := coarse.Seconds(), fine.Seconds()
	return c / f, f > 0 && c%f == 0
}

// Negate flips the direction of a duration, used for "ago"
func (d Data) Negate() Data {
	d.Value = -d.Value
	return d
}

// UnitFrom extracts a grain unit from a token
func UnitFrom(t *engine.Token) (Unit, bool) {
	u, ok := t.Payload.(Unit)
	return u, ok
}

// From extracts duration data from a token
func From(t *engine.Token) (Data, bool) {
	d, ok := t.Payload.(Data)
	return d, ok
}

// MatchUnit accepts grain units for which cond holds; nil accepts all
func MatchUnit(cond func(dimension.Grain) bool) engine.Item {
	if cond == nil {
		return engine.Dim(dimension.TimeGrain)
	}
	return engine.Pred(dimension.TimeGrain, func(p engine.Payload) bool {
		u, ok := p.(Unit)
		return ok && cond(u.Grain)
	})
}

// Match accepts durations for which cond holds; nil accepts all
func Match(cond func(Data) bool) engine.Item {
	if cond == nil {
		return engine.Dim(dimension.Duration)
	}
	return engine.Pred(dimension.Duration, func(p engine.Payload) bool {
		d, ok := p.(Data)
		return ok && cond(d)
	})
}
