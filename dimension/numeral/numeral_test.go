package numeral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiply(t *testing.T) {
	hundred := Power(2)
	thousand := Power(3)

	got, ok := Multiply(New(3), hundred)
	require.True(t, ok)
	assert.Equal(t, 300.0, got.Value)
	assert.Equal(t, 2, got.Grain)
	assert.False(t, got.Multipliable)

	got, ok = Multiply(got, thousand)
	require.True(t, ok, "three hundred thousand")
	assert.Equal(t, 300000.0, got.Value)

	_, ok = Multiply(thousand, hundred)
	assert.False(t, ok, "thousand hundred")

	_, ok = Multiply(New(3), New(4))
	assert.False(t, ok, "only power words multiply")
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		high     Data
		low      Data
		want     float64
		accepted bool
	}{
		{"twenty one", Data{Value: 20, Grain: 1}, New(1), 21, true},
		{"three hundred five", Data{Value: 300, Grain: 2}, New(5), 305, true},
		{"twenty twenty", Data{Value: 20, Grain: 1}, New(20), 0, false},
		{"no grain", New(3), New(1), 0, false},
		{"negative low", Data{Value: 20, Grain: 1}, New(-1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sum(tt.high, tt.low)
			assert.Equal(t, tt.accepted, ok)
			if ok {
				assert.Equal(t, tt.want, got.Value)
				assert.Equal(t, 0, got.Grain)
			}
		})
	}
}

func TestConditions(t *testing.T) {
	assert.True(t, Integer(New(12)))
	assert.False(t, Integer(New(1.5)))
	assert.True(t, Positive(New(1)))
	assert.False(t, Positive(New(0)))
	assert.True(t, Between(1, 12)(New(12)))
	assert.False(t, Between(1, 12)(New(13)))
	assert.False(t, Between(1, 12)(New(1.5)))
	assert.True(t, GrainBelow(2)(Data{Value: 20, Grain: 1}))
	assert.False(t, GrainBelow(2)(Power(2)))

	dozen := New(12).NotForTime()
	assert.False(t, ForTime(dozen))
	assert.NotEqual(t, New(12).Key(), dozen.Key())
}

func TestInt(t *testing.T) {
	v, ok := New(42).Int()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = New(4.2).Int()
	assert.False(t, ok)
	_, ok = New(1e12).Int()
	assert.False(t, ok)
}
