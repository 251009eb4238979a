package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/dimension"
)

func TestFraction(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		grain dimension.Grain
		want  Data
		ok    bool
	}{
		{"whole", 3, dimension.Day, Data{3, dimension.Day}, true},
		{"one and a half hours", 1.5, dimension.Hour, Data{90, dimension.Minute}, true},
		{"half a day", 0.5, dimension.Day, Data{12, dimension.Hour}, true},
		{"half a year", 0.5, dimension.Year, Data{2, dimension.Quarter}, true},
		{"a third of a minute", 1.0 / 3, dimension.Minute, Data{20, dimension.Second}, true},
		{"irrational", 0.123456, dimension.Minute, Data{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Fraction(tt.value, tt.grain)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSum(t *testing.T) {
	got, ok := Sum(Data{1, dimension.Hour}, Data{30, dimension.Minute})
	require.True(t, ok)
	assert.Equal(t, Data{90, dimension.Minute}, got)

	got, ok = Sum(Data{1, dimension.Year}, Data{2, dimension.Month})
	require.True(t, ok)
	assert.Equal(t, Data{14, dimension.Month}, got)

	_, ok = Sum(Data{30, dimension.Minute}, Data{1, dimension.Hour})
	assert.False(t, ok, "coarser grain must come first")

	_, ok = Sum(Data{1, dimension.Month}, Data{1, dimension.Week})
	assert.False(t, ok, "a month is not a whole number of weeks")
}

func TestResolve(t *testing.T) {
	v := Data{2, dimension.Hour}.Resolve()
	assert.Equal(t, int64(7200), v.Seconds)
	assert.Equal(t, "2 hours", v.String())

	ago := Data{3, dimension.Day}.Negate()
	assert.Equal(t, int64(-3), ago.Value)

	assert.Equal(t, dimension.GrainValue{Grain: dimension.Week}, Unit{dimension.Week}.Resolve())
}
