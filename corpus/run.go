package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/teranos/qntx-dims/am/geotime"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/extract"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/version"
)

// Result is the outcome of one case
type Result struct {
	Case     Case
	Got      []dimension.Entity
	Failures []string
	Err      error
	Duration time.Duration
}

// Passed reports a case that parsed and matched every expectation
func (r Result) Passed() bool {
	return r.Err == nil && len(r.Failures) == 0
}

// Report is the outcome of one corpus
type Report struct {
	Corpus  *Corpus
	Results []Result
	// Skipped is set when the build does not satisfy Requires
	Skipped string
}

// Counts returns passed and failed case counts
func (r *Report) Counts() (passed, failed int) {
	for _, res := range r.Results {
		if res.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// OK reports a corpus with no failed case
func (r *Report) OK() bool {
	_, failed := r.Counts()
	return failed == 0
}

// Run parses every case of c with ex. Case failures land in the report;
// the error is reserved for a corpus that cannot run at all.
func Run(ctx context.Context, ex *extract.Extractor, c *Corpus) (*Report, error) {
	report := &Report{Corpus: c}
	log := logger.ComponentLogger("corpus")

	ok, err := version.Get().Satisfies(c.Requires)
	if err != nil {
		return nil, errors.Wrapf(err, "corpus %s", c.Path)
	}
	if !ok {
		report.Skipped = fmt.Sprintf("requires %s, running %s", c.Requires, version.Get().Version)
		log.Infow("Corpus skipped", logger.FieldFile, c.Path, "reason", report.Skipped)
		return report, nil
	}

	loc, err := c.locale()
	if err != nil {
		return nil, err
	}
	ref, err := c.reference()
	if err != nil {
		return nil, err
	}
	zone, err := geotime.Load(c.Timezone)
	if err != nil {
		return nil, errors.WrapInvalidInput(err, "timezone")
	}
	pctx := dimension.Context{ReferenceTime: ref, Location: zone}

	for _, cs := range c.Cases {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "corpus run cancelled")
		}
		started := time.Now()
		res := Result{Case: cs}
		kinds, err := cs.kinds()
		if err == nil {
			res.Got, err = ex.Parse(ctx, cs.Text, loc, kinds, pctx, dimension.Options{WithLatent: cs.WithLatent})
		}
		res.Err = err
		if err == nil {
			res.Failures = Compare(cs.Expect, res.Got)
		}
		res.Duration = time.Since(started)
		report.Results = append(report.Results, res)
	}

	passed, failed := report.Counts()
	log.Debugw("Corpus finished",
		logger.FieldFile, c.Path,
		logger.FieldCount, len(c.Cases),
		"passed", passed,
		"failed", failed)
	return report, nil
}

// Compare matches entities against expectations position by position and
// describes every mismatch
func Compare(expect []Expectation, got []dimension.Entity) []string {
	var failures []string
	if len(expect) != len(got) {
		failures = append(failures, fmt.Sprintf("want %d entities, got %d: %s", len(expect), len(got), describe(got)))
	}
	for i := 0; i < len(expect) && i < len(got); i++ {
		e, g := expect[i], got[i]
		if e.Body != "" && e.Body != g.Body {
			failures = append(failures, fmt.Sprintf("entity %d: body %q, want %q", i, g.Body, e.Body))
		}
		if e.Kind != "" {
			k, _ := dimension.ParseKind(e.Kind)
			if k != g.Kind() {
				failures = append(failures, fmt.Sprintf("entity %d: kind %s, want %s", i, g.Kind(), k))
			}
		}
		if e.Value != "" && e.Value != Render(g.Value) {
			failures = append(failures, fmt.Sprintf("entity %d: value %q, want %q", i, Render(g.Value), e.Value))
		}
		if e.Grain != "" && e.Grain != GrainOf(g.Value) {
			failures = append(failures, fmt.Sprintf("entity %d: grain %s, want %s", i, GrainOf(g.Value), e.Grain))
		}
		if e.Start != nil && *e.Start != g.Start {
			failures = append(failures, fmt.Sprintf("entity %d: start %d, want %d", i, g.Start, *e.Start))
		}
	}
	return failures
}

// Render is the comparable form of a value: a time point without its
// grain, everything else as its String
func Render(v dimension.Value) string {
	if tv, ok := v.(dimension.TimeValue); ok && tv.Point != nil {
		return tv.Point.String()
	}
	return v.String()
}

// GrainOf returns the grain name of time, duration and grain values
func GrainOf(v dimension.Value) string {
	switch v := v.(type) {
	case dimension.TimeValue:
		return v.Grain().String()
	case dimension.DurationValue:
		return v.Grain.String()
	case dimension.GrainValue:
		return v.Grain.String()
	}
	return ""
}

func describe(entities []dimension.Entity) string {
	s := "["
	for i, e := range entities {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %q=%s", e.Kind(), e.Body, Render(e.Value))
	}
	return s + "]"
}
