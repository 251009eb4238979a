// Package extract is the public entry point: it runs the rule engine over a
// text, resolves the candidate tokens against the parse context and selects
// the final entities.
package extract

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/qntx-dims/am/geotime"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/dimension/contact"
	"github.com/teranos/qntx-dims/dimension/duration"
	"github.com/teranos/qntx-dims/dimension/measure"
	"github.com/teranos/qntx-dims/dimension/numeral"
	"github.com/teranos/qntx-dims/dimension/ordinal"
	"github.com/teranos/qntx-dims/dimension/timex"
	"github.com/teranos/qntx-dims/engine"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/locale"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/ranking"
	"github.com/teranos/qntx-dims/rules"
)

// Option configures an Extractor
type Option func(*Extractor)

// WithLogger sets the logger; the default is the "extract" component logger
func WithLogger(log *zap.SugaredLogger) Option {
	return func(x *Extractor) { x.log = log }
}

// WithMaxRounds caps derivation rounds per parse
func WithMaxRounds(n int) Option {
	return func(x *Extractor) { x.maxRounds = n }
}

// Extractor parses texts. It holds no per-parse state and is safe for
// concurrent use.
type Extractor struct {
	log       *zap.SugaredLogger
	maxRounds int
}

// New creates an Extractor
func New(opts ...Option) *Extractor {
	x := &Extractor{}
	for _, opt := range opts {
		opt(x)
	}
	if x.log == nil {
		x.log = logger.ComponentLogger("extract")
	}
	return x
}

var defaultExtractor = New()

// Parse extracts the entities of the requested kinds from text using the
// default Extractor
func Parse(text string, loc locale.Locale, kinds []dimension.Kind, pctx dimension.Context, opts dimension.Options) ([]dimension.Entity, error) {
	return defaultExtractor.Parse(context.Background(), text, loc, kinds, pctx, opts)
}

// Parse extracts the entities of the requested kinds from text. The
// context locale, when set, overrides loc. Entities are disjoint, ordered
// by start offset, and carry byte offsets into text.
//
// Only invalid input is an error: a missing reference time or an
// unsupported locale. Cancelling ctx aborts the derivation.
func (x *Extractor) Parse(ctx context.Context, text string, loc locale.Locale, kinds []dimension.Kind, pctx dimension.Context, opts dimension.Options) ([]dimension.Entity, error) {
	if err := pctx.Validate(); err != nil {
		return nil, err
	}
	if pctx.Locale != nil {
		loc = *pctx.Locale
	}
	table, err := rules.For(loc)
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 || text == "" {
		return []dimension.Entity{}, nil
	}

	started := time.Now()
	log := x.log.With(logger.FieldsFromContext(ctx)...)

	stash, stats, err := engine.Run(ctx, engine.NewDocument(text), table.For(kinds), engine.Config{
		MaxRounds: x.maxRounds,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	wanted := dimension.NewKindSet(kinds...)
	var cands []ranking.Candidate
	for _, t := range stash.Tokens() {
		if !wanted.Has(t.Payload.Kind()) || (t.Latent && !opts.WithLatent) {
			continue
		}
		if v, ok := resolve(t.Payload, loc, pctx, opts); ok {
			cands = append(cands, ranking.Candidate{Token: t, Value: v})
		}
	}

	selected := ranking.Select(cands, kinds, opts.WithLatent)
	entities := make([]dimension.Entity, 0, len(selected))
	for _, c := range selected {
		entities = append(entities, entity(text, c))
	}

	log.Debugw("Parse finished",
		logger.FieldLocale, loc.String(),
		logger.FieldDims, kinds,
		logger.FieldTextLength, len(text),
		logger.FieldRounds, stats.Rounds,
		logger.FieldTokens, stats.Tokens,
		logger.FieldEntities, len(entities),
		logger.FieldDurationMS, time.Since(started).Milliseconds())
	return entities, nil
}

func entity(text string, c ranking.Candidate) dimension.Entity {
	e := dimension.Entity{
		Body:  text[c.Token.Start:c.Token.End],
		Start: c.Token.Start,
		End:   c.Token.End,
		Value: c.Value,
	}
	if c.Token.Latent {
		latent := true
		e.Latent = &latent
	}
	return e
}

// resolve turns a payload into its final value. It reports false for
// payloads that are valid intermediates but no answer, such as a unit
// without an amount.
func resolve(p engine.Payload, loc locale.Locale, pctx dimension.Context, opts dimension.Options) (dimension.Value, bool) {
	switch d := p.(type) {
	case numeral.Data:
		return d.Resolve(), true
	case ordinal.Data:
		return d.Resolve(), true
	case measure.Data:
		return d.Resolve(loc)
	case contact.Data:
		return d.Resolve(), true
	case duration.Unit:
		return d.Resolve(), true
	case duration.Data:
		return d.Resolve(), true
	case timex.Data:
		return timex.Resolve(d, pctx, opts)
	}
	return nil, false
}

// NewContext builds a parse context from a reference time and a timezone
// name as users write it ("Europe/Berlin", "CET", "+02:00"); an empty name
// is UTC
func NewContext(ref time.Time, tz string) (dimension.Context, error) {
	loc, err := geotime.Load(tz)
	if err != nil {
		return dimension.Context{}, errors.WrapInvalidInput(err, "timezone")
	}
	return dimension.Context{ReferenceTime: ref, Location: loc}, nil
}
