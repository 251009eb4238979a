// Package timex models time expressions as predicates over the calendar
// and resolves them against a reference time.
//
// A predicate yields the occurrences it matches around a reference point:
// the future ones in ascending order and the past ones in descending
// order. Rules build predicates from fields ("Friday", "3pm", "March"),
// cycles ("next week"), offsets ("in 3 days") and compositions
// (intersections, intervals, nth-of); Resolve then picks the occurrence
// the expression refers to.
package timex

import (
	"fmt"
	"strings"
	"time"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/engine"
)

// Form is the shape of a time expression, used by rules to decide what may
// combine with what
type Form int

const (
	FormOther Form = iota
	FormDayOfWeek
	FormMonth
	FormDayOfMonth
	FormTimeOfDay
	FormPartOfDay
	FormYear
	FormDate
	FormCycle
	FormInterval
)

// Side marks open intervals
type Side int

const (
	Closed Side = iota
	After
	Before
)

// Zone is an explicit timezone carried by an expression
type Zone struct {
	Name string
	Loc  *time.Location
}

// Data is the Time payload
type Data struct {
	Form    Form
	Holiday string

	pred   predicate
	clock  *clock
	zone   *Zone
	open   Side
	latent bool
	// strict expressions resolve to the first occurrence starting after
	// the reference time rather than the one in progress
	strict bool
	// pinned expressions denote one occurrence and list no alternatives
	pinned bool
}

func (Data) Kind() dimension.Kind { return dimension.Time }

func (d Data) Latent() bool { return d.latent }

func (d Data) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "form=%d ", d.Form)
	b.WriteString(d.pred.String())
	if d.zone != nil {
		b.WriteString(" tz=" + d.zone.Name)
	}
	switch d.open {
	case After:
		b.WriteString(" after")
	case Before:
		b.WriteString(" before")
	}
	if d.Holiday != "" {
		b.WriteString(" holiday=" + d.Holiday)
	}
	if d.latent {
		b.WriteString(" latent")
	}
	if d.strict {
		b.WriteString(" strict")
	}
	if d.pinned {
		b.WriteString(" pinned")
	}
	return b.String()
}

// Grain is the natural grain of the expression
func (d Data) Grain() dimension.Grain { return d.pred.grain() }

// HasZone reports whether a timezone was given
func (d Data) HasZone() bool { return d.zone != nil }

// IsOpen reports a before/after interval
func (d Data) IsOpen() bool { return d.open != Closed }

// Clock returns the hour of a time-of-day expression and whether it is a
// 12-hour reading
func (d Data) Clock() (hour int, twelve bool, ok bool) {
	if d.clock == nil {
		return 0, false, false
	}
	return d.clock.hour, d.clock.twelve, true
}

// DayMinute returns the minute of the day of a time-of-day expression,
// counting 12-hour readings from midnight
func (d Data) DayMinute() (int, bool) {
	if d.clock == nil {
		return 0, false
	}
	h := d.clock.hour
	if d.clock.twelve {
		h %= 12
	}
	return h*60 + d.clock.minute, true
}

// MonthNumber returns the month of a bare month expression
func (d Data) MonthNumber() (time.Month, bool) {
	if m, ok := d.pred.(monthOfYear); ok && d.Form == FormMonth {
		return m.month, true
	}
	return 0, false
}

// DayNumber returns the day of a bare day-of-month expression
func (d Data) DayNumber() (int, bool) {
	if dom, ok := d.pred.(dayOfMonth); ok && d.Form == FormDayOfMonth {
		return dom.day, true
	}
	return 0, false
}

// Named tags the expression with a holiday name
func (d Data) Named(holiday string) Data {
	d.Holiday = holiday
	return d
}

// HasMinutes reports a time of day more precise than the hour
func (d Data) HasMinutes() bool {
	return d.clock != nil && d.clock.precision < dimension.Hour
}

// AsLatent marks a weak reading, e.g. a bare number read as an hour
func (d Data) AsLatent() Data {
	d.latent = true
	return d
}

// NotLatent confirms a reading
func (d Data) NotLatent() Data {
	d.latent = false
	return d
}

func newData(form Form, p predicate) Data {
	return Data{Form: form, pred: p}
}

// DayOfWeek matches a weekday
func DayOfWeek(day time.Weekday) Data {
	d := newData(FormDayOfWeek, dayOfWeek{day: day})
	d.strict = true
	return d
}

// Month matches a month of any year
func Month(m time.Month) (Data, bool) {
	if m < time.January || m > time.December {
		return Data{}, false
	}
	return newData(FormMonth, monthOfYear{month: m}), true
}

// DayOfMonth matches a day number in any month
func DayOfMonth(day int) (Data, bool) {
	if day < 1 || day > 31 {
		return Data{}, false
	}
	return newData(FormDayOfMonth, dayOfMonth{day: day}), true
}

// Hour matches a clock hour. twelve marks readings like "at 3" that may be
// morning or afternoon.
func Hour(h int, twelve bool) (Data, bool) {
	return clockData(clock{hour: h, precision: dimension.Hour, twelve: twelve && h >= 1 && h <= 12})
}

// HourMinute matches a clock time to the minute
func HourMinute(h, m int, twelve bool) (Data, bool) {
	return clockData(clock{hour: h, minute: m, precision: dimension.Minute, twelve: twelve && h >= 1 && h <= 12})
}

// HourMinuteSecond matches a clock time to the second
func HourMinuteSecond(h, m, s int) (Data, bool) {
	return clockData(clock{hour: h, minute: m, second: s, precision: dimension.Second})
}

func clockData(c clock) (Data, bool) {
	if c.hour < 0 || c.hour > 23 || c.minute < 0 || c.minute > 59 || c.second < 0 || c.second > 59 {
		return Data{}, false
	}
	d := newData(FormTimeOfDay, c)
	d.clock = &c
	d.strict = true
	return d, true
}

// WithMeridiem applies "am" or "pm" to a 12-hour time of day
func (d Data) WithMeridiem(pm bool) (Data, bool) {
	if d.clock == nil || !d.clock.twelve || d.zone != nil || d.IsOpen() {
		return Data{}, false
	}
	c := *d.clock
	c.hour %= 12
	if pm {
		c.hour += 12
	}
	c.twelve = false
	out, ok := clockData(c)
	out.latent = false
	return out, ok
}

// WithMinutes sets the minutes of an hour-only time of day: "half past 3"
// is WithMinutes(30) on 3, "quarter to 4" is WithMinutes(-15) on 4
func (d Data) WithMinutes(m int) (Data, bool) {
	if d.clock == nil || d.clock.precision != dimension.Hour || d.zone != nil || d.IsOpen() {
		return Data{}, false
	}
	c := *d.clock
	if m < 0 {
		c.hour = (c.hour + 23) % 24
		m += 60
		if c.twelve && c.hour == 0 {
			c.hour = 12
		}
	}
	return clockData(clock{hour: c.hour, minute: m, precision: dimension.Minute, twelve: c.twelve})
}

// Year matches a calendar year
func Year(y int) (Data, bool) {
	if y < 1 || y > 9999 {
		return Data{}, false
	}
	d := newData(FormYear, fixed{o: at(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), dimension.Year)})
	d.pinned = true
	return d, true
}

// Date matches one calendar day
func Date(y, m, day int) (Data, bool) {
	if y < 1 || y > 9999 || !dimension.ValidDate(y, m, day) {
		return Data{}, false
	}
	d := newData(FormDate, fixed{o: at(time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC), dimension.Day)})
	d.pinned = true
	return d, true
}

// MonthDay matches a day of a month in any year; February 29 is allowed
func MonthDay(m, day int) (Data, bool) {
	if !dimension.ValidDate(2000, m, day) {
		return Data{}, false
	}
	month, _ := Month(time.Month(m))
	dom, _ := DayOfMonth(day)
	out := newData(FormDate, newIntersection(month.pred, dom.pred))
	return out, true
}

// Now is the reference instant
func Now() Data {
	d := newData(FormOther, now{})
	d.pinned = true
	return d
}

// Cycle is the grain unit n steps away from the current one: Cycle(Day, 1)
// is tomorrow, Cycle(Week, -1) last week
func Cycle(g dimension.Grain, n int) Data {
	d := newData(FormCycle, cycle{unit: g, n: n})
	d.pinned = true
	return d
}

// Relative is an offset from the reference time: "in 3 days" is
// Relative(3, Day), "2 hours ago" Relative(-2, Hour)
func Relative(n int, g dimension.Grain) Data {
	d := newData(FormOther, relative{unit: g, n: n})
	d.pinned = true
	return d
}

// PartOfDay names the daily windows
type PartOfDay int

const (
	Morning PartOfDay = iota
	Afternoon
	Evening
	Night
	Lunch
)

var partsOfDay = map[PartOfDay]daily{
	Morning:   {name: "morning", from: 4, to: 12},
	Afternoon: {name: "afternoon", from: 12, to: 19},
	Evening:   {name: "evening", from: 18, to: 24},
	Night:     {name: "night", from: 18, to: 24},
	Lunch:     {name: "lunch", from: 12, to: 14},
}

// DayPart matches a window of each day. Bare parts of day are latent.
func DayPart(p PartOfDay) Data {
	d := newData(FormPartOfDay, partsOfDay[p])
	d.latent = true
	return d
}

// Weekend matches Friday evening through Sunday
func Weekend() Data {
	return newData(FormOther, weekend{})
}

// Quarter matches a quarter of any year
func Quarter(q int) (Data, bool) {
	if q < 1 || q > 4 {
		return Data{}, false
	}
	month := 3*(q-1) + 1
	return newData(FormOther, yearly{
		name:      "Q" + string(rune('0'+q)),
		fromMonth: month, fromDay: 1,
		precision: dimension.Quarter,
		point:     true,
	}), true
}

// Season names the astronomical seasons of the northern hemisphere
type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

var seasons = map[Season]yearly{
	Spring: {name: "spring", fromMonth: 3, fromDay: 20, toMonth: 6, toDay: 21, precision: dimension.Day},
	Summer: {name: "summer", fromMonth: 6, fromDay: 21, toMonth: 9, toDay: 23, precision: dimension.Day},
	Fall:   {name: "fall", fromMonth: 9, fromDay: 23, toMonth: 12, toDay: 21, precision: dimension.Day},
	Winter: {name: "winter", fromMonth: 12, fromDay: 21, toMonth: 3, toDay: 20, precision: dimension.Day},
}

// SeasonOf matches a season of any year
func SeasonOf(s Season) Data {
	return newData(FormOther, seasons[s])
}

// Holiday matches a fixed-date holiday
func Holiday(name string, m, day int) (Data, bool) {
	if !dimension.ValidDate(2000, m, day) {
		return Data{}, false
	}
	d := newData(FormDate, yearly{name: name, fromMonth: m, fromDay: day, precision: dimension.Day, point: true})
	d.Holiday = name
	return d, true
}

// Intersect combines two expressions that constrain each other, e.g.
// "tomorrow" and "3pm", or "March" and "the 5th"
func Intersect(a, b Data) (Data, bool) {
	if a.IsOpen() || b.IsOpen() {
		return Data{}, false
	}
	if a.Form == b.Form {
		switch a.Form {
		case FormDayOfWeek, FormMonth, FormDayOfMonth, FormTimeOfDay, FormYear, FormCycle:
			return Data{}, false
		}
	}
	zone, ok := mergeZone(a.zone, b.zone)
	if !ok {
		return Data{}, false
	}
	out := newData(composedForm(a, b), newIntersection(a.pred, b.pred))
	out.zone = zone
	out.strict = a.strict && b.strict
	out.pinned = a.pinned || b.pinned
	out.Holiday = firstNonEmpty(a.Holiday, b.Holiday)
	return out, true
}

func composedForm(a, b Data) Form {
	if a.Form == FormInterval || b.Form == FormInterval {
		return FormInterval
	}
	if a.Form == FormTimeOfDay || b.Form == FormTimeOfDay {
		return FormOther
	}
	return FormDate
}

// Interval spans from one expression to another. closed includes the end
// expression entirely ("Monday to Friday" covers Friday).
func Interval(from, to Data, closed bool) (Data, bool) {
	if from.IsOpen() || to.IsOpen() || from.Form == FormInterval || to.Form == FormInterval {
		return Data{}, false
	}
	zone, ok := mergeZone(from.zone, to.zone)
	if !ok {
		return Data{}, false
	}
	out := newData(FormInterval, interval{from: from.pred, to: to.pred, closed: closed})
	out.zone = zone
	out.strict = from.strict
	out.pinned = from.pinned
	return out, true
}

// Open turns an expression into an interval open on one side: "after 5pm"
// is Open(5pm, After)
func Open(d Data, side Side) (Data, bool) {
	if d.IsOpen() || d.Form == FormInterval {
		return Data{}, false
	}
	d.open = side
	d.latent = false
	return d, true
}

// Nth pins one occurrence: n >= 0 counts forward, n < 0 backward.
// skipCurrent passes over an occurrence in progress ("next March" in March).
func Nth(d Data, n int, skipCurrent bool) (Data, bool) {
	if d.IsOpen() || d.pinned {
		return Data{}, false
	}
	out := newData(d.Form, nth{base: d.pred, n: n, skipCurrent: skipCurrent})
	out.zone = d.zone
	out.clock = d.clock
	out.Holiday = d.Holiday
	out.pinned = true
	return out, true
}

// NthWithin picks the n-th occurrence of inner inside outer, from the end
// when n is negative: "the first Monday of March"
func NthWithin(inner, outer Data, n int) (Data, bool) {
	if inner.IsOpen() || outer.IsOpen() || inner.Grain() >= outer.Grain() {
		return Data{}, false
	}
	zone, ok := mergeZone(inner.zone, outer.zone)
	if !ok {
		return Data{}, false
	}
	out := newData(FormDate, nthWithin{inner: inner.pred, outer: outer.pred, n: n})
	out.zone = zone
	out.pinned = outer.pinned
	return out, true
}

// Shift moves an expression by n units: "3 days after Christmas"
func Shift(d Data, n int, g dimension.Grain) (Data, bool) {
	if d.IsOpen() {
		return Data{}, false
	}
	out := newData(FormOther, shifted{base: d.pred, unit: g, n: n})
	out.zone = d.zone
	out.strict = d.strict
	out.pinned = d.pinned
	return out, true
}

// Lasting makes an interval of n units starting at each occurrence of d:
// "3pm for 2 hours"
func Lasting(d Data, n int, g dimension.Grain) (Data, bool) {
	if d.IsOpen() || d.Form == FormInterval || n <= 0 {
		return Data{}, false
	}
	out := newData(FormInterval, lasting{base: d.pred, unit: g, n: n})
	out.zone = d.zone
	out.strict = d.strict
	out.pinned = d.pinned
	return out, true
}

// In attaches an explicit timezone; the expression resolves to an instant
func (d Data) In(z Zone) (Data, bool) {
	if d.zone != nil || z.Loc == nil {
		return Data{}, false
	}
	d.zone = &z
	d.latent = false
	return d, true
}

func mergeZone(a, b *Zone) (*Zone, bool) {
	switch {
	case a == nil:
		return b, true
	case b == nil:
		return a, true
	case a.Name == b.Name:
		return a, true
	}
	return nil, false
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// From extracts time data from a token
func From(t *engine.Token) (Data, bool) {
	d, ok := t.Payload.(Data)
	return d, ok
}

// Cond is a refinement on time tokens
type Cond func(Data) bool

// Match returns an item accepting time tokens that satisfy every cond
func Match(conds ...Cond) engine.Item {
	if len(conds) == 0 {
		return engine.Dim(dimension.Time)
	}
	return engine.Pred(dimension.Time, func(p engine.Payload) bool {
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

// IsForm accepts any of the given forms
func IsForm(forms ...Form) Cond {
	return func(d Data) bool {
		for _, f := range forms {
			if d.Form == f {
				return true
			}
		}
		return false
	}
}

// Confirmed rejects latent readings
func Confirmed(d Data) bool { return !d.latent }

// Twelve accepts 12-hour times of day
func Twelve(d Data) bool { return d.clock != nil && d.clock.twelve }

// NoZone accepts expressions without an explicit timezone
func NoZone(d Data) bool { return d.zone == nil }

// Bounded accepts expressions that are not open intervals
func Bounded(d Data) bool { return !d.IsOpen() }
