// Package en is the English rule table. Each file covers one family of
// dimensions; Rules assembles them in a fixed order so rule indices, and
// with them ranking tie-breaks, are stable.
package en

import (
	"strconv"
	"strings"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
	"github.com/teranos/qntx-dims/locale"
)

// Rules returns a fresh English rule list for loc. The region only changes
// the order of numeric dates.
func Rules(loc locale.Locale) []*engine.Rule {
	var rules []*engine.Rule
	rules = append(rules, numeralRules()...)
	rules = append(rules, ordinalRules()...)
	rules = append(rules, temperatureRules()...)
	rules = append(rules, measureRules(dimension.Distance, distanceUnits)...)
	rules = append(rules, measureRules(dimension.Volume, volumeUnits)...)
	rules = append(rules, measureRules(dimension.Quantity, quantityUnits)...)
	rules = append(rules, quantityRules()...)
	rules = append(rules, moneyRules()...)
	rules = append(rules, contactRules()...)
	rules = append(rules, grainRules()...)
	rules = append(rules, durationRules()...)
	rules = append(rules, timeRules(loc)...)
	return rules
}

type produce = engine.Production

func rule(name string, dim dimension.Kind, p produce, items ...engine.Item) *engine.Rule {
	return &engine.Rule{Name: name, Dim: dim, Pattern: items, Produce: p}
}

func re(pattern string) engine.Item {
	return engine.Regex(pattern)
}

// group returns a lower-cased capture group of a regex token
func group(t *engine.Token, i int) string {
	return strings.ToLower(t.Group(i))
}

// atoi reads a capture group as an int; empty groups fail
func atoi(t *engine.Token, i int) (int, bool) {
	n, err := strconv.Atoi(t.Group(i))
	return n, err == nil
}

// lookup maps a matched word through a table, tolerating a trailing "s"
// or "."
func lookup[V any](table map[string]V, word string) (V, bool) {
	word = strings.TrimSuffix(strings.ToLower(word), ".")
	if v, ok := table[word]; ok {
		return v, true
	}
	v, ok := table[strings.TrimSuffix(word, "s")]
	return v, ok
}

// alternation joins words into a regex group, longest first so a prefix
// never shadows a longer word
func alternation(words []string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && len(sorted[j]) > len(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return "(" + strings.Join(sorted, "|") + ")"
}

func keys[V any](table map[string]V) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	return out
}
