// Package rules binds locales to their rule tables. Tables are built once
// per locale and shared read-only by every parse.
package rules

import (
	"sync"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/locale"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/rules/en"
)

// Table is the immutable rule set of one locale
type Table struct {
	Locale locale.Locale

	all    *engine.RuleSet
	subset sync.Map // dimension.KindSet -> *engine.RuleSet
}

// All returns every rule of the table
func (t *Table) All() *engine.RuleSet {
	return t.all
}

// For returns the rules needed to produce kinds, including the rules of
// the kinds they depend on
func (t *Table) For(kinds []dimension.Kind) *engine.RuleSet {
	key := dimension.NewKindSet(kinds...)
	if rs, ok := t.subset.Load(key); ok {
		return rs.(*engine.RuleSet)
	}
	rs, _ := t.subset.LoadOrStore(key, t.all.ForKinds(kinds))
	return rs.(*engine.RuleSet)
}

type entry struct {
	once  sync.Once
	table *Table
	err   error
}

var tables sync.Map // locale string -> *entry

// For returns the table for loc, building it on first use
func For(loc locale.Locale) (*Table, error) {
	if !loc.Supported() {
		return nil, errors.NewUnsupportedLocaleError(loc.String())
	}
	v, _ := tables.LoadOrStore(loc.String(), &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.table, e.err = build(loc)
	})
	return e.table, e.err
}

func build(loc locale.Locale) (*Table, error) {
	var list []*engine.Rule
	switch loc.Lang {
	case locale.EN:
		list = en.Rules(loc)
	default:
		return nil, errors.NewUnsupportedLocaleError(loc.String())
	}

	rs, err := engine.NewRuleSet(list...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build rule table for %s", loc)
	}
	logger.ComponentLogger("rules").Debugw("Rule table built",
		logger.FieldLocale, loc.String(),
		logger.FieldCount, rs.Len())
	return &Table{Locale: loc, all: rs}, nil
}
