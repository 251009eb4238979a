// Package dimension defines the dimension kinds, time grains, resolved values
// and the parse context shared by the engine, the rule tables and callers.
package dimension

import (
	"sort"
	"strings"

	"github.com/teranos/qntx-dims/errors"
)

// Kind is a category of extractable structured value
type Kind int

const (
	Numeral Kind = iota
	Ordinal
	Temperature
	Distance
	Volume
	Quantity
	AmountOfMoney
	Email
	PhoneNumber
	URL
	CreditCardNumber
	TimeGrain
	Duration
	Time
)

var kindNames = [...]string{
	Numeral:          "number",
	Ordinal:          "ordinal",
	Temperature:      "temperature",
	Distance:         "distance",
	Volume:           "volume",
	Quantity:         "quantity",
	AmountOfMoney:    "amount-of-money",
	Email:            "email",
	PhoneNumber:      "phone-number",
	URL:              "url",
	CreditCardNumber: "credit-card-number",
	TimeGrain:        "time-grain",
	Duration:         "duration",
	Time:             "time",
}

// aliases accepted by ParseKind in addition to the canonical names
var kindAliases = map[string]Kind{
	"numeral":     Numeral,
	"money":       AmountOfMoney,
	"phone":       PhoneNumber,
	"credit-card": CreditCardNumber,
	"grain":       TimeGrain,
}

// AllKinds lists every kind in declaration order
func AllKinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the stable wire name, e.g. "amount-of-money"
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText encodes the kind by its wire name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a wire name or alias
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a wire name ("time"), an alias ("money") or an
// underscore spelling ("amount_of_money")
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	for i, kn := range kindNames {
		if kn == n {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[n]; ok {
		return k, nil
	}
	return 0, errors.NewUnknownDimensionError(name)
}

// ParseKinds resolves a list of names, dropping duplicates
func ParseKinds(names []string) ([]Kind, error) {
	seen := make(map[Kind]bool, len(names))
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// Dependencies returns the kinds whose tokens rules of k consume
func (k Kind) Dependencies() []Kind {
	switch k {
	case Temperature, Distance, Volume, Quantity, AmountOfMoney:
		return []Kind{Numeral}
	case Duration:
		return []Kind{Numeral, TimeGrain}
	case Time:
		return []Kind{Numeral, Ordinal, Duration, TimeGrain}
	}
	return nil
}

// Closure returns the requested kinds plus their transitive dependencies,
// sorted in declaration order
func Closure(kinds []Kind) []Kind {
	set := make(map[Kind]bool)
	var visit func(Kind)
	visit = func(k Kind) {
		if set[k] {
			return
		}
		set[k] = true
		for _, d := range k.Dependencies() {
			visit(d)
		}
	}
	for _, k := range kinds {
		visit(k)
	}

	out := make([]Kind, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KindSet is a small membership set over kinds
type KindSet uint32

// NewKindSet builds a set from a list
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has reports membership
func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// Empty reports whether no kind is present
func (s KindSet) Empty() bool {
	return s == 0
}
