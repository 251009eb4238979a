package dimension

import (
	"encoding/json"
	"strconv"
	"time"
)

// Value is a fully resolved dimension value. The set of implementations is
// closed: one per dimension family, all defined in this file.
type Value interface {
	Kind() Kind
	// String is a short human rendering used by the CLI
	String() string
	sealed()
}

// NumeralValue resolves Numeral
type NumeralValue struct {
	Value float64 `json:"value" yaml:"value"`
}

func (NumeralValue) Kind() Kind { return Numeral }
func (NumeralValue) sealed()    {}
func (v NumeralValue) String() string {
	return formatFloat(v.Value)
}

// OrdinalValue resolves Ordinal
type OrdinalValue struct {
	Value int64 `json:"value" yaml:"value"`
}

func (OrdinalValue) Kind() Kind { return Ordinal }
func (OrdinalValue) sealed()    {}
func (v OrdinalValue) String() string {
	return strconv.FormatInt(v.Value, 10)
}

// MeasurementPoint is a value with its unit, e.g. {80, "fahrenheit"} or {42.5, "USD"}
type MeasurementPoint struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

func (p MeasurementPoint) String() string {
	if p.Unit == "" {
		return formatFloat(p.Value)
	}
	return formatFloat(p.Value) + " " + p.Unit
}

// MeasurementValue resolves Temperature, Distance, Volume, Quantity and
// AmountOfMoney. Exactly one of Point or (From, To) is set; an interval may
// be open on either end.
type MeasurementValue struct {
	Dim     Kind              `json:"-" yaml:"-"`
	Point   *MeasurementPoint `json:"point,omitempty" yaml:"point,omitempty"`
	From    *MeasurementPoint `json:"from,omitempty" yaml:"from,omitempty"`
	To      *MeasurementPoint `json:"to,omitempty" yaml:"to,omitempty"`
	Product string            `json:"product,omitempty" yaml:"product,omitempty"`
}

func (v MeasurementValue) Kind() Kind { return v.Dim }
func (MeasurementValue) sealed()      {}
func (v MeasurementValue) String() string {
	var s string
	switch {
	case v.Point != nil:
		s = v.Point.String()
	case v.From != nil && v.To != nil:
		s = v.From.String() + " .. " + v.To.String()
	case v.From != nil:
		s = ">= " + v.From.String()
	case v.To != nil:
		s = "<= " + v.To.String()
	}
	if v.Product != "" {
		s += " of " + v.Product
	}
	return s
}

// IsInterval reports whether the value is a range
func (v MeasurementValue) IsInterval() bool {
	return v.Point == nil
}

// ContactValue resolves Email, PhoneNumber, URL and CreditCardNumber
type ContactValue struct {
	Dim    Kind   `json:"-" yaml:"-"`
	Value  string `json:"value" yaml:"value"`
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Issuer string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
}

func (v ContactValue) Kind() Kind { return v.Dim }
func (ContactValue) sealed()      {}
func (v ContactValue) String() string {
	return v.Value
}

// GrainValue resolves TimeGrain
type GrainValue struct {
	Grain Grain `json:"value" yaml:"value"`
}

func (GrainValue) Kind() Kind { return TimeGrain }
func (GrainValue) sealed()    {}
func (v GrainValue) String() string {
	return v.Grain.String()
}

// DurationValue resolves Duration. Seconds is the nominal normalized length.
type DurationValue struct {
	Value   int64 `json:"value" yaml:"value"`
	Grain   Grain `json:"unit" yaml:"unit"`
	Seconds int64 `json:"normalized_seconds" yaml:"normalized_seconds"`
}

func (DurationValue) Kind() Kind { return Duration }
func (DurationValue) sealed()    {}
func (v DurationValue) String() string {
	unit := v.Grain.String()
	if v.Value != 1 {
		unit += "s"
	}
	return strconv.FormatInt(v.Value, 10) + " " + unit
}

const (
	naiveLayout   = "2006-01-02T15:04:05"
	instantLayout = "2006-01-02T15:04:05Z07:00"
)

// TimePoint is one resolved calendar point. A naive point holds a wall clock
// in the UTC location with no anchoring; an instant point is an absolute UTC
// moment.
type TimePoint struct {
	Value   time.Time
	Grain   Grain
	Instant bool
}

// String renders naive points without offset and instants in RFC 3339 UTC
func (p TimePoint) String() string {
	if p.Instant {
		return p.Value.UTC().Format(instantLayout)
	}
	return p.Value.Format(naiveLayout)
}

// MarshalJSON encodes {"value": "...", "grain": "hour"}
func (p TimePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value string `json:"value"`
		Grain Grain  `json:"grain"`
	}{p.String(), p.Grain})
}

// TimeSpec is one resolved reading of a time expression: a point, or an
// interval whose ends may be open
type TimeSpec struct {
	Point *TimePoint `json:"point,omitempty"`
	From  *TimePoint `json:"from,omitempty"`
	To    *TimePoint `json:"to,omitempty"`
}

// IsInterval reports whether the value is a range
func (s TimeSpec) IsInterval() bool {
	return s.Point == nil
}

func (s TimeSpec) String() string {
	switch {
	case s.Point != nil:
		return s.Point.String() + " (" + s.Point.Grain.String() + ")"
	case s.From != nil && s.To != nil:
		return s.From.String() + " .. " + s.To.String()
	case s.From != nil:
		return "from " + s.From.String()
	case s.To != nil:
		return "until " + s.To.String()
	}
	return ""
}

// TimeValue resolves Time. The embedded spec is the primary reading; Values
// lists the primary first followed by later occurrences for expressions
// that match more than one time.
type TimeValue struct {
	TimeSpec
	Values  []TimeSpec `json:"values,omitempty"`
	Instant bool       `json:"instant"`
	Holiday string     `json:"holiday,omitempty"`
}

func (TimeValue) Kind() Kind { return Time }
func (TimeValue) sealed()    {}
func (v TimeValue) String() string {
	return v.TimeSpec.String()
}

// Grain returns the primary reading's grain; for intervals the finer bound
func (v TimeValue) Grain() Grain {
	switch {
	case v.Point != nil:
		return v.Point.Grain
	case v.From != nil && v.To != nil:
		return Min(v.From.Grain, v.To.Grain)
	case v.From != nil:
		return v.From.Grain
	case v.To != nil:
		return v.To.Grain
	}
	return NoGrain
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
