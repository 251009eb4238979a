package dimension

import (
	"time"

	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/locale"
)

// DefaultMaxAlternatives bounds TimeValue.Values when Options leaves it zero
const DefaultMaxAlternatives = 3

// Context is the immutable per-parse reference frame
type Context struct {
	// ReferenceTime is the current instant; required
	ReferenceTime time.Time
	// Locale overrides the locale passed to Parse when set
	Locale *locale.Locale
	// Location is the zone naive values are read in; nil means UTC
	Location *time.Location
}

// Options tunes selection and resolution
type Options struct {
	// WithLatent admits latent candidates where nothing else covers them
	WithLatent bool
	// MaxAlternatives caps extra occurrences listed for ambiguous times;
	// zero means DefaultMaxAlternatives, negative means none
	MaxAlternatives int
}

// Alternatives returns the effective alternative count
func (o Options) Alternatives() int {
	switch {
	case o.MaxAlternatives < 0:
		return 0
	case o.MaxAlternatives == 0:
		return DefaultMaxAlternatives
	}
	return o.MaxAlternatives
}

// Validate rejects contexts that cannot anchor a parse
func (c Context) Validate() error {
	if c.ReferenceTime.IsZero() {
		return errors.NewInvalidInputError("reference time is required")
	}
	if c.Locale != nil && !c.Locale.Supported() {
		return errors.NewUnsupportedLocaleError(c.Locale.String())
	}
	return nil
}

// Zone returns the context location, UTC when unset
func (c Context) Zone() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// WallClock returns the reference instant as read on a clock in loc,
// re-expressed in the UTC location so calendar arithmetic ignores offsets
func WallClock(ref time.Time, loc *time.Location) time.Time {
	t := ref.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
