package dimension

import (
	"strings"
	"time"

	"github.com/teranos/qntx-dims/errors"
)

// Grain is a time unit, ordered from finest to coarsest
type Grain int

const (
	NoGrain Grain = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
)

var grainNames = [...]string{
	NoGrain: "none",
	Second:  "second",
	Minute:  "minute",
	Hour:    "hour",
	Day:     "day",
	Week:    "week",
	Month:   "month",
	Quarter: "quarter",
	Year:    "year",
}

// String returns the lowercase unit name
func (g Grain) String() string {
	if g < 0 || int(g) >= len(grainNames) {
		return "none"
	}
	return grainNames[g]
}

// MarshalText encodes the grain by name
func (g Grain) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText decodes a grain name
func (g *Grain) UnmarshalText(text []byte) error {
	parsed, err := ParseGrain(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGrain accepts singular or plural unit names
func ParseGrain(s string) (Grain, error) {
	n := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for i, name := range grainNames {
		if i != int(NoGrain) && name == n {
			return Grain(i), nil
		}
	}
	return NoGrain, errors.NewInvalidInputError("unknown grain %q", s)
}

// Finer returns the next finer grain; Second stays Second.
// Quarter steps down to Month.
func (g Grain) Finer() Grain {
	if g <= Second {
		return Second
	}
	return g - 1
}

// Min returns the finer of two grains
func Min(a, b Grain) Grain {
	if a == NoGrain {
		return b
	}
	if b == NoGrain || a < b {
		return a
	}
	return b
}

// Max returns the coarser of two grains
func Max(a, b Grain) Grain {
	if a > b {
		return a
	}
	return b
}

// Seconds is the nominal length of one unit, used to normalize durations.
// Months are 30 days, quarters 3 months, years 365 days.
func (g Grain) Seconds() int64 {
	switch g {
	case Second:
		return 1
	case Minute:
		return 60
	case Hour:
		return 3600
	case Day:
		return 86400
	case Week:
		return 7 * 86400
	case Month:
		return 30 * 86400
	case Quarter:
		return 90 * 86400
	case Year:
		return 365 * 86400
	}
	return 0
}

// Truncate rounds t down to the start of its grain. Weeks start on Monday.
// The location of t is preserved.
func Truncate(t time.Time, g Grain) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch g {
	case Second:
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	case Minute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
	case Hour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Quarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// Add moves t by n units of g using calendar arithmetic. Adding months,
// quarters or years clips the day to the end of the target month.
func Add(t time.Time, g Grain, n int) time.Time {
	switch g {
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return addMonthsClip(t, n)
	case Quarter:
		return addMonthsClip(t, 3*n)
	case Year:
		return addMonthsClip(t, 12*n)
	}
	return t
}

func addMonthsClip(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ty := y + floorDiv(total, 12)
	tm := time.Month(floorMod(total, 12) + 1)
	if last := DaysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether year-month-day names a real calendar day
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= DaysIn(year, time.Month(month))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
