package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/dimension"
)

// Tuesday
var ref = time.Date(2013, 2, 12, 4, 30, 0, 0, time.UTC)

func wall(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func resolve(t *testing.T, d Data) dimension.TimeValue {
	t.Helper()
	tv, ok := Resolve(d, dimension.Context{ReferenceTime: ref}, dimension.Options{})
	require.True(t, ok, "expected %s to resolve", d.Key())
	return tv
}

func must(d Data, ok bool) Data {
	if !ok {
		panic("expression rejected")
	}
	return d
}

func pm(h int) Data {
	return must(must(Hour(h, true)).WithMeridiem(true))
}

func TestResolvePoints(t *testing.T) {
	tests := []struct {
		name  string
		data  func() Data
		value time.Time
		grain dimension.Grain
	}{
		{"today", func() Data { return Cycle(dimension.Day, 0) }, wall(2013, 2, 12, 0, 0), dimension.Day},
		{"tomorrow at 3pm", func() Data {
			return must(Intersect(Cycle(dimension.Day, 1), pm(3)))
		}, wall(2013, 2, 13, 15, 0), dimension.Hour},
		{"3pm", func() Data { return pm(3) }, wall(2013, 2, 12, 15, 0), dimension.Hour},
		{"at 3", func() Data { return must(Hour(3, true)) }, wall(2013, 2, 12, 15, 0), dimension.Hour},
		{"3am", func() Data {
			d := must(Hour(3, true))
			return must(d.WithMeridiem(false))
		}, wall(2013, 2, 13, 3, 0), dimension.Hour},
		{"half past 4", func() Data {
			d := must(Hour(4, true))
			return must(d.WithMinutes(30))
		}, wall(2013, 2, 12, 16, 30), dimension.Minute},
		{"quarter to noon", func() Data {
			d := must(Hour(12, false))
			return must(d.WithMinutes(-15))
		}, wall(2013, 2, 12, 11, 45), dimension.Minute},
		{"tuesday", func() Data { return DayOfWeek(time.Tuesday) }, wall(2013, 2, 19, 0, 0), dimension.Day},
		{"last friday", func() Data {
			return must(Nth(DayOfWeek(time.Friday), -1, false))
		}, wall(2013, 2, 8, 0, 0), dimension.Day},
		{"next friday", func() Data {
			return must(Intersect(Cycle(dimension.Week, 1), DayOfWeek(time.Friday)))
		}, wall(2013, 2, 22, 0, 0), dimension.Day},
		{"next week", func() Data { return Cycle(dimension.Week, 1) }, wall(2013, 2, 18, 0, 0), dimension.Week},
		{"last month", func() Data { return Cycle(dimension.Month, -1) }, wall(2013, 1, 1, 0, 0), dimension.Month},
		{"march", func() Data { return must(Month(time.March)) }, wall(2013, 3, 1, 0, 0), dimension.Month},
		{"february", func() Data { return must(Month(time.February)) }, wall(2013, 2, 1, 0, 0), dimension.Month},
		{"next february", func() Data {
			m := must(Month(time.February))
			return must(Nth(m, 0, true))
		}, wall(2014, 2, 1, 0, 0), dimension.Month},
		{"the 5th", func() Data { return must(DayOfMonth(5)) }, wall(2013, 3, 5, 0, 0), dimension.Day},
		{"february 29", func() Data { return must(MonthDay(2, 29)) }, wall(2016, 2, 29, 0, 0), dimension.Day},
		{"2014", func() Data { return must(Year(2014)) }, wall(2014, 1, 1, 0, 0), dimension.Year},
		{"2013-03-15", func() Data { return must(Date(2013, 3, 15)) }, wall(2013, 3, 15, 0, 0), dimension.Day},
		{"in 3 days", func() Data { return Relative(3, dimension.Day) }, wall(2013, 2, 15, 4, 0), dimension.Hour},
		{"in 2 hours", func() Data { return Relative(2, dimension.Hour) }, wall(2013, 2, 12, 6, 30), dimension.Minute},
		{"2 hours ago", func() Data { return Relative(-2, dimension.Hour) }, wall(2013, 2, 12, 2, 30), dimension.Minute},
		{"in a month", func() Data { return Relative(1, dimension.Month) }, wall(2013, 3, 12, 0, 0), dimension.Day},
		{"now", func() Data { return Now() }, wall(2013, 2, 12, 4, 30), dimension.Second},
		{"first monday of march", func() Data {
			return must(NthWithin(DayOfWeek(time.Monday), must(Month(time.March)), 0))
		}, wall(2013, 3, 4, 0, 0), dimension.Day},
		{"last friday of march", func() Data {
			return must(NthWithin(DayOfWeek(time.Friday), must(Month(time.March)), -1))
		}, wall(2013, 3, 29, 0, 0), dimension.Day},
		{"christmas", func() Data { return must(Holiday("christmas", 12, 25)) }, wall(2013, 12, 25, 0, 0), dimension.Day},
		{"2 days after christmas", func() Data {
			return must(Shift(must(Holiday("christmas", 12, 25)), 2, dimension.Day))
		}, wall(2013, 12, 27, 0, 0), dimension.Day},
		{"third quarter", func() Data { return must(Quarter(3)) }, wall(2013, 7, 1, 0, 0), dimension.Quarter},
		{"friday the 15th", func() Data {
			return must(Intersect(DayOfWeek(time.Friday), must(DayOfMonth(15))))
		}, wall(2013, 2, 15, 0, 0), dimension.Day},
		{"march 5 at 9am", func() Data {
			nine := must(must(Hour(9, true)).WithMeridiem(false))
			return must(Intersect(must(MonthDay(3, 5)), nine))
		}, wall(2013, 3, 5, 9, 0), dimension.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := resolve(t, tt.data())
			require.NotNil(t, tv.Point)
			assert.Equal(t, tt.value, tv.Point.Value)
			assert.Equal(t, tt.grain, tv.Point.Grain)
			assert.False(t, tv.Instant)
			assert.False(t, tv.Point.Instant)
		})
	}
}

func TestResolveExplicitZoneIsInstant(t *testing.T) {
	cet := Zone{Name: "CET", Loc: time.FixedZone("CET", 3600)}
	d := must(pm(3).In(cet))

	tv := resolve(t, d)
	require.NotNil(t, tv.Point)
	assert.True(t, tv.Instant)
	assert.True(t, tv.Point.Instant)
	assert.Equal(t, time.Date(2013, 2, 12, 14, 0, 0, 0, time.UTC), tv.Point.Value)
	assert.Equal(t, dimension.Hour, tv.Point.Grain)
	assert.Equal(t, "2013-02-12T14:00:00Z", tv.Point.String())
}

func TestZonePropagatesThroughComposition(t *testing.T) {
	pst := Zone{Name: "PST", Loc: time.FixedZone("PST", -8*3600)}
	five := must(pm(5).In(pst))

	d := must(Interval(pm(3), five, false))
	tv := resolve(t, d)
	require.NotNil(t, tv.From)
	require.NotNil(t, tv.To)
	assert.True(t, tv.From.Instant)
	assert.True(t, tv.To.Instant)
	// reference is 2013-02-11 20:30 in PST, so 3pm is the next afternoon
	assert.Equal(t, time.Date(2013, 2, 12, 23, 0, 0, 0, time.UTC), tv.From.Value)
	assert.Equal(t, time.Date(2013, 2, 13, 1, 0, 0, 0, time.UTC), tv.To.Value)

	cet := Zone{Name: "CET", Loc: time.FixedZone("CET", 3600)}
	_, ok := Intersect(must(Cycle(dimension.Day, 1).In(cet)), five)
	assert.False(t, ok, "conflicting zones")
}

func TestResolveContextLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	ctx := dimension.Context{ReferenceTime: ref, Location: est}

	tv, ok := Resolve(Cycle(dimension.Day, 0), ctx, dimension.Options{})
	require.True(t, ok)
	assert.Equal(t, wall(2013, 2, 11, 0, 0), tv.Point.Value)
	assert.False(t, tv.Instant)
}

func TestResolveAlternatives(t *testing.T) {
	tv := resolve(t, DayOfWeek(time.Friday))

	require.Len(t, tv.Values, 4)
	want := []time.Time{wall(2013, 2, 15, 0, 0), wall(2013, 2, 22, 0, 0), wall(2013, 3, 1, 0, 0), wall(2013, 3, 8, 0, 0)}
	for i, v := range tv.Values {
		assert.Equal(t, want[i], v.Point.Value)
	}
	assert.Equal(t, tv.TimeSpec, tv.Values[0])

	tv, ok := Resolve(DayOfWeek(time.Friday), dimension.Context{ReferenceTime: ref}, dimension.Options{MaxAlternatives: -1})
	require.True(t, ok)
	assert.Len(t, tv.Values, 1)

	tv = resolve(t, Cycle(dimension.Day, 1))
	assert.Len(t, tv.Values, 1, "pinned expressions have no alternatives")
}

func TestResolveIntervals(t *testing.T) {
	tv := resolve(t, must(Interval(pm(3), pm(5), true)))
	require.NotNil(t, tv.From)
	require.NotNil(t, tv.To)
	assert.Equal(t, wall(2013, 2, 12, 15, 0), tv.From.Value)
	assert.Equal(t, wall(2013, 2, 12, 18, 0), tv.To.Value)
	assert.Equal(t, dimension.Hour, tv.Grain())

	tv = resolve(t, must(Interval(pm(3), pm(5), false)))
	assert.Equal(t, wall(2013, 2, 12, 17, 0), tv.To.Value)

	tv = resolve(t, Weekend())
	assert.Equal(t, wall(2013, 2, 15, 18, 0), tv.From.Value)
	assert.Equal(t, wall(2013, 2, 18, 0, 0), tv.To.Value)

	tv = resolve(t, DayPart(Morning))
	assert.Equal(t, wall(2013, 2, 12, 4, 0), tv.From.Value)
	assert.Equal(t, wall(2013, 2, 12, 12, 0), tv.To.Value)

	tv = resolve(t, must(Intersect(Cycle(dimension.Day, 1), DayPart(Evening))))
	assert.Equal(t, wall(2013, 2, 13, 18, 0), tv.From.Value)
	assert.Equal(t, wall(2013, 2, 14, 0, 0), tv.To.Value)

	tv = resolve(t, must(Lasting(pm(3), 2, dimension.Hour)))
	assert.Equal(t, wall(2013, 2, 12, 15, 0), tv.From.Value)
	assert.Equal(t, wall(2013, 2, 12, 17, 0), tv.To.Value)
}

func TestResolveOpenIntervals(t *testing.T) {
	tv := resolve(t, must(Open(pm(5), After)))
	require.NotNil(t, tv.From)
	assert.Nil(t, tv.To)
	assert.Equal(t, wall(2013, 2, 12, 17, 0), tv.From.Value)

	tv = resolve(t, must(Open(Cycle(dimension.Day, 1), Before)))
	assert.Nil(t, tv.From)
	require.NotNil(t, tv.To)
	assert.Equal(t, wall(2013, 2, 13, 0, 0), tv.To.Value)

	_, ok := Intersect(must(Open(pm(5), After)), Cycle(dimension.Day, 1))
	assert.False(t, ok)
}

func TestUnresolvable(t *testing.T) {
	_, ok := MonthDay(2, 30)
	assert.False(t, ok)
	_, ok = Date(2013, 2, 29)
	assert.False(t, ok)
	_, ok = Hour(24, false)
	assert.False(t, ok)
	_, ok = HourMinute(3, 60, true)
	assert.False(t, ok)

	feb := must(Month(time.February))
	thirty := must(DayOfMonth(30))
	d := must(Intersect(feb, thirty))
	_, ok = Resolve(d, dimension.Context{ReferenceTime: ref}, dimension.Options{})
	assert.False(t, ok)
}

func TestIntersectRejectsSameField(t *testing.T) {
	_, ok := Intersect(DayOfWeek(time.Monday), DayOfWeek(time.Tuesday))
	assert.False(t, ok)
	_, ok = Intersect(pm(3), pm(4))
	assert.False(t, ok)
}

func TestMeridiem(t *testing.T) {
	noon := must(must(Hour(12, true)).WithMeridiem(true))
	h, twelve, ok := noon.Clock()
	require.True(t, ok)
	assert.Equal(t, 12, h)
	assert.False(t, twelve)

	midnight := must(must(Hour(12, true)).WithMeridiem(false))
	h, _, _ = midnight.Clock()
	assert.Equal(t, 0, h)

	_, ok = must(Hour(15, false)).WithMeridiem(true)
	assert.False(t, ok)
}

func TestResolveIsIdempotent(t *testing.T) {
	d := must(Intersect(DayOfWeek(time.Friday), pm(3)))
	first := resolve(t, d)
	second := resolve(t, d)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Grain(), second.Grain())
	assert.Equal(t, wall(2013, 2, 15, 15, 0), first.Point.Value)
}

func TestKeysDistinguishReadings(t *testing.T) {
	three := must(Hour(3, true))
	assert.NotEqual(t, three.Key(), three.AsLatent().Key())
	assert.NotEqual(t, pm(3).Key(), three.Key())
	assert.Equal(t, pm(3).Key(), pm(3).Key())
}

func TestOpenIntervalsKeepTheirSide(t *testing.T) {
	until5 := must(Open(must(Hour(5, true)), Before))

	_, ok := until5.WithMeridiem(true)
	assert.False(t, ok, "am/pm applies before the interval is opened")
	_, ok = until5.WithMinutes(30)
	assert.False(t, ok)

	tv := resolve(t, must(Open(pm(5), Before)))
	assert.Nil(t, tv.From)
	require.NotNil(t, tv.To)
	assert.Equal(t, wall(2013, 2, 12, 17, 0), tv.To.Value)
}

func TestReferenceAnchoredInsideIntersections(t *testing.T) {
	today := Cycle(dimension.Day, 0)

	tv := resolve(t, must(Intersect(today, Relative(1, dimension.Hour))))
	require.NotNil(t, tv.Point)
	assert.Equal(t, wall(2013, 2, 12, 5, 30), tv.Point.Value)
	assert.Equal(t, dimension.Minute, tv.Point.Grain)

	tv = resolve(t, must(Intersect(today, Now())))
	require.NotNil(t, tv.Point)
	assert.Equal(t, ref, tv.Point.Value)

	// an offset that leaves the outer period matches nothing
	d := must(Intersect(today, Relative(1, dimension.Day)))
	_, ok := Resolve(d, dimension.Context{ReferenceTime: ref}, dimension.Options{})
	assert.False(t, ok)

	// "from yesterday until now"
	tv = resolve(t, must(Interval(Cycle(dimension.Day, -1), Now(), false)))
	require.NotNil(t, tv.From)
	require.NotNil(t, tv.To)
	assert.Equal(t, wall(2013, 2, 11, 0, 0), tv.From.Value)
	assert.Equal(t, ref, tv.To.Value)
}

func TestKeysDistinguishForms(t *testing.T) {
	dom := must(DayOfMonth(5))
	other := dom
	other.Form = FormDate
	assert.NotEqual(t, dom.Key(), other.Key())
}

func TestDayMinute(t *testing.T) {
	m, ok := must(Hour(12, true)).DayMinute()
	require.True(t, ok)
	assert.Equal(t, 0, m)

	m, _ = must(HourMinute(4, 20, true)).DayMinute()
	assert.Equal(t, 260, m)

	m, _ = must(Hour(15, true)).DayMinute()
	assert.Equal(t, 900, m)

	_, ok = DayOfWeek(time.Monday).DayMinute()
	assert.False(t, ok)
}
