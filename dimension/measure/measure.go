// Package measure holds the payload shared by the unit-bearing dimensions:
// temperature, distance, volume, quantity and amount of money.
package measure

import (
	"strconv"
	"strings"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
	"github.com/teranos/qntx-dims/locale"
)

// Dollar is the ambiguous currency unit; it resolves per region
const Dollar = "$"

// Data is a measurement being built up by rules. A bare number lifted into
// a measurement dimension has a value and no unit; unit words attach the
// unit; range words turn it into an interval.
type Data struct {
	Dim     dimension.Kind
	Unit    string
	Value   *float64
	From    *float64
	To      *float64
	Product string

	latent bool
}

// Of lifts a bare value into dim
func Of(dim dimension.Kind, v float64) Data {
	return Data{Dim: dim, Value: &v}
}

// UnitOnly is a unit without a value yet, e.g. "a cup"
func UnitOnly(dim dimension.Kind, unit string) Data {
	return Data{Dim: dim, Unit: unit}
}

// Between is a closed interval
func Between(dim dimension.Kind, from, to float64, unit string) Data {
	return Data{Dim: dim, Unit: unit, From: &from, To: &to}
}

// AtLeast is an interval open above
func AtLeast(dim dimension.Kind, v float64, unit string) Data {
	return Data{Dim: dim, Unit: unit, From: &v}
}

// AtMost is an interval open below
func AtMost(dim dimension.Kind, v float64, unit string) Data {
	return Data{Dim: dim, Unit: unit, To: &v}
}

// WithUnit attaches a unit and clears latency
func (d Data) WithUnit(unit string) Data {
	d.Unit = unit
	d.latent = false
	return d
}

// WithValue sets a value on a unit-only measurement
func (d Data) WithValue(v float64) Data {
	d.Value = &v
	return d
}

// WithProduct names what is measured, e.g. "sugar" in "3 cups of sugar"
func (d Data) WithProduct(p string) Data {
	d.Product = p
	return d
}

// AsLatent marks the measurement as a weak reading
func (d Data) AsLatent() Data {
	d.latent = true
	return d
}

func (d Data) Kind() dimension.Kind { return d.Dim }

func (d Data) Latent() bool { return d.latent }

func (d Data) Key() string {
	var b strings.Builder
	b.WriteString(d.Unit)
	for _, f := range []*float64{d.Value, d.From, d.To} {
		b.WriteByte('|')
		if f != nil {
			b.WriteString(strconv.FormatFloat(*f, 'g', -1, 64))
		}
	}
	b.WriteByte('|')
	b.WriteString(d.Product)
	if d.latent {
		b.WriteString("|latent")
	}
	return b.String()
}

// IsSimple reports a single value with a unit
func (d Data) IsSimple() bool {
	return d.Value != nil && d.Unit != "" && d.From == nil && d.To == nil
}

// IsInterval reports whether a range bound is set
func (d Data) IsInterval() bool {
	return d.From != nil || d.To != nil
}

// Resolve produces the final value. Measurements without a unit do not
// resolve.
func (d Data) Resolve(loc locale.Locale) (dimension.MeasurementValue, bool) {
	if d.Unit == "" {
		return dimension.MeasurementValue{}, false
	}
	unit := d.Unit
	if unit == Dollar {
		unit = DollarCurrency(loc)
	}
	point := func(v *float64) *dimension.MeasurementPoint {
		if v == nil {
			return nil
		}
		return &dimension.MeasurementPoint{Value: *v, Unit: unit}
	}

	mv := dimension.MeasurementValue{Dim: d.Dim, Product: d.Product}
	switch {
	case d.Value != nil && !d.IsInterval():
		mv.Point = point(d.Value)
	case d.IsInterval():
		mv.From, mv.To = point(d.From), point(d.To)
	default:
		return dimension.MeasurementValue{}, false
	}
	return mv, true
}

// DollarCurrency is the currency a bare "$" means in a region
func DollarCurrency(loc locale.Locale) string {
	switch loc.Region {
	case locale.AU:
		return "AUD"
	case locale.CA:
		return "CAD"
	}
	return "USD"
}

// From extracts measurement data from a token
func From(t *engine.Token) (Data, bool) {
	d, ok := t.Payload.(Data)
	return d, ok
}

// Cond is a refinement on measurement tokens
type Cond func(Data) bool

// Match returns an item accepting dim tokens that satisfy every cond
func Match(dim dimension.Kind, conds ...Cond) engine.Item {
	return engine.Pred(dim, func(p engine.Payload) bool {
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

// Simple accepts a single value with a unit
func Simple(d Data) bool { return d.IsSimple() }

// ValueNoUnit accepts a bare lifted value
func ValueNoUnit(d Data) bool { return d.Value != nil && d.Unit == "" && !d.IsInterval() }

// SingleValue accepts a single value with or without unit
func SingleValue(d Data) bool { return d.Value != nil && !d.IsInterval() }

// UnitNoValue accepts a unit waiting for a value
func UnitNoValue(d Data) bool { return d.Value == nil && d.Unit != "" && !d.IsInterval() }

// NoProduct accepts measurements without a product
func NoProduct(d Data) bool { return d.Product == "" }
