package timex

import (
	"fmt"
	"time"

	"github.com/teranos/qntx-dims/dimension"
)

// predicate describes a set of occurrences. series returns the occurrences
// that have not ended at ref in ascending order, and the ones that have, in
// descending order.
type predicate interface {
	series(ref Object) (past, future series)
	grain() dimension.Grain
	String() string
}

type dayOfWeek struct {
	day time.Weekday
}

func (p dayOfWeek) series(ref Object) (series, series) {
	today := dimension.Truncate(ref.Start, dimension.Day)
	shift := (int(p.day) - int(today.Weekday()) + 7) % 7
	return periodic(at(today.AddDate(0, 0, shift), dimension.Day), dimension.Week, 1)
}

func (dayOfWeek) grain() dimension.Grain { return dimension.Day }
func (p dayOfWeek) String() string       { return "dow:" + p.day.String() }

type monthOfYear struct {
	month time.Month
}

func (p monthOfYear) series(ref Object) (series, series) {
	anchor := time.Date(ref.Start.Year(), p.month, 1, 0, 0, 0, 0, time.UTC)
	if !dimension.Add(anchor, dimension.Month, 1).After(ref.Start) {
		anchor = anchor.AddDate(1, 0, 0)
	}
	return periodic(at(anchor, dimension.Month), dimension.Year, 1)
}

func (monthOfYear) grain() dimension.Grain { return dimension.Month }
func (p monthOfYear) String() string       { return "month:" + p.month.String() }

type dayOfMonth struct {
	day int
}

func (p dayOfMonth) series(ref Object) (series, series) {
	month := dimension.Truncate(ref.Start, dimension.Month)
	occurrence := func(m time.Time) (Object, bool) {
		if p.day > dimension.DaysIn(m.Year(), m.Month()) {
			return Object{}, false
		}
		return at(time.Date(m.Year(), m.Month(), p.day, 0, 0, 0, 0, time.UTC), dimension.Day), true
	}
	future := func(yield func(Object) bool) {
		for i := 0; i < safeMax; i++ {
			o, ok := occurrence(dimension.Add(month, dimension.Month, i))
			if !ok || !o.EndTime().After(ref.Start) {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
	past := func(yield func(Object) bool) {
		for i := 0; i < safeMax; i++ {
			o, ok := occurrence(dimension.Add(month, dimension.Month, -i))
			if !ok || o.EndTime().After(ref.Start) {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
	return past, future
}

func (dayOfMonth) grain() dimension.Grain { return dimension.Day }
func (p dayOfMonth) String() string       { return fmt.Sprintf("dom:%d", p.day) }

// clock is a time of day: an hour with optional minute and second. A
// 12-hour clock value repeats every 12 hours.
type clock struct {
	hour, minute, second int
	precision            dimension.Grain
	twelve               bool
}

func (p clock) period() int {
	if p.twelve && p.hour <= 12 {
		return 12
	}
	return 24
}

func (p clock) series(ref Object) (series, series) {
	day := dimension.Truncate(ref.Start, dimension.Day)
	h := p.hour % p.period()
	anchor := time.Date(day.Year(), day.Month(), day.Day(), h, p.minute, p.second, 0, time.UTC)
	o := at(anchor, p.precision)
	for !o.EndTime().After(ref.Start) {
		o.Start = o.Start.Add(time.Duration(p.period()) * time.Hour)
	}
	return periodic(o, dimension.Hour, p.period())
}

func (p clock) grain() dimension.Grain { return p.precision }

func (p clock) String() string {
	s := fmt.Sprintf("clock:%02d:%02d:%02d/%s", p.hour, p.minute, p.second, p.precision)
	if p.twelve {
		s += "/12h"
	}
	return s
}

// daily is a recurring interval inside each day, e.g. morning as
// [04:00, 12:00). to may be 24 for midnight.
type daily struct {
	name     string
	from, to int
}

func (p daily) series(ref Object) (series, series) {
	day := dimension.Truncate(ref.Start, dimension.Day)
	o := p.on(day)
	if !o.EndTime().After(ref.Start) {
		o = p.on(day.AddDate(0, 0, 1))
	}
	return periodic(o, dimension.Day, 1)
}

func (p daily) on(day time.Time) Object {
	return span(day.Add(time.Duration(p.from)*time.Hour), day.Add(time.Duration(p.to)*time.Hour), dimension.Hour)
}

func (daily) grain() dimension.Grain { return dimension.Hour }
func (p daily) String() string       { return "pod:" + p.name }

// weekend runs from Friday 18:00 to Monday 00:00
type weekend struct{}

func (weekend) series(ref Object) (series, series) {
	monday := dimension.Truncate(ref.Start, dimension.Week)
	o := span(monday.AddDate(0, 0, 4).Add(18*time.Hour), monday.AddDate(0, 0, 7), dimension.Hour)
	if !o.EndTime().After(ref.Start) {
		o = span(o.Start.AddDate(0, 0, 7), o.EndTime().AddDate(0, 0, 7), dimension.Hour)
	}
	return periodic(o, dimension.Week, 1)
}

func (weekend) grain() dimension.Grain { return dimension.Day }
func (weekend) String() string         { return "weekend" }

// yearly is a fixed span repeating every year, used for quarters and seasons
type yearly struct {
	name               string
	fromMonth, fromDay int
	toMonth, toDay     int
	precision          dimension.Grain
	point              bool
}

func (p yearly) in(year int) Object {
	start := time.Date(year, time.Month(p.fromMonth), p.fromDay, 0, 0, 0, 0, time.UTC)
	if p.point {
		return at(start, p.precision)
	}
	endYear := year
	if p.toMonth < p.fromMonth {
		endYear++
	}
	return span(start, time.Date(endYear, time.Month(p.toMonth), p.toDay, 0, 0, 0, 0, time.UTC), p.precision)
}

func (p yearly) series(ref Object) (series, series) {
	o := p.in(ref.Start.Year() - 1)
	for !o.EndTime().After(ref.Start) {
		o = p.in(o.Start.Year() + 1)
	}
	return periodic(o, dimension.Year, 1)
}

func (p yearly) grain() dimension.Grain {
	if p.point {
		return p.precision
	}
	return dimension.Month
}

func (p yearly) String() string { return "yearly:" + p.name }

// fixed is a single absolute occurrence such as a year or a full date
type fixed struct {
	o Object
}

func (p fixed) series(ref Object) (series, series) { return split(p.o, ref) }
func (p fixed) grain() dimension.Grain             { return p.o.Grain }
func (p fixed) String() string {
	return "at:" + p.o.Start.Format("2006-01-02T15:04:05") + "/" + p.o.Grain.String()
}

// now is the reference instant itself
type now struct{}

func (now) series(ref Object) (series, series) { return none, one(at(ref.Start, dimension.Second)) }
func (now) grain() dimension.Grain             { return dimension.Second }
func (now) String() string                     { return "now" }

// cycle is the grain unit n steps from the one containing ref: "today",
// "next week", "last year"
type cycle struct {
	unit dimension.Grain
	n    int
}

func (p cycle) series(ref Object) (series, series) {
	start := dimension.Add(dimension.Truncate(ref.Start, p.unit), p.unit, p.n)
	return split(at(start, p.unit), ref)
}

func (p cycle) grain() dimension.Grain { return p.unit }
func (p cycle) String() string         { return fmt.Sprintf("cycle:%s%+d", p.unit, p.n) }

// relative is a fixed offset from ref: "in 3 days", "2 hours ago". The
// result is kept at the next finer grain than the offset unit, and at day
// grain for weeks and longer.
type relative struct {
	unit dimension.Grain
	n    int
}

func (p relative) series(ref Object) (series, series) {
	g := p.grain()
	start := dimension.Truncate(dimension.Add(ref.Start, p.unit, p.n), g)
	return split(at(start, g), ref)
}

func (p relative) grain() dimension.Grain {
	if p.unit >= dimension.Week {
		return dimension.Day
	}
	return p.unit.Finer()
}
func (p relative) String() string         { return fmt.Sprintf("relative:%+d%s", p.n, p.unit) }
