// Package ordinal holds the Ordinal payload
package ordinal

import (
	"strconv"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
)

// Data is an ordinal position, e.g. 3 for "third" or "3rd"
type Data struct {
	Value int64
}

func (Data) Kind() dimension.Kind { return dimension.Ordinal }

func (d Data) Key() string { return strconv.FormatInt(d.Value, 10) }

// Resolve produces the final value
func (d Data) Resolve() dimension.OrdinalValue {
	return dimension.OrdinalValue{Value: d.Value}
}

// From extracts ordinal data from a token
func From(t *engine.Token) (Data, bool) {
	d, ok := t.Payload.(Data)
	return d, ok
}

// Match accepts ordinals in [lo, hi]
func Match(lo, hi int64) engine.Item {
	return engine.Pred(dimension.Ordinal, func(p engine.Payload) bool {
		d, ok := p.(Data)
		return ok && d.Value >= lo && d.Value <= hi
	})
}
