package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/locale"
)

func TestResolvePoint(t *testing.T) {
	mv, ok := Of(dimension.Temperature, 80).WithUnit("fahrenheit").Resolve(locale.Default)
	require.True(t, ok)
	require.NotNil(t, mv.Point)
	assert.Equal(t, dimension.MeasurementPoint{Value: 80, Unit: "fahrenheit"}, *mv.Point)
	assert.Nil(t, mv.From)
	assert.Nil(t, mv.To)
}

func TestResolveNeedsUnitAndValue(t *testing.T) {
	_, ok := Of(dimension.Distance, 3).Resolve(locale.Default)
	assert.False(t, ok, "bare number")

	_, ok = UnitOnly(dimension.Volume, "cup").Resolve(locale.Default)
	assert.False(t, ok, "unit without amount")

	mv, ok := UnitOnly(dimension.Volume, "cup").WithValue(3).WithProduct("sugar").Resolve(locale.Default)
	require.True(t, ok)
	assert.Equal(t, "sugar", mv.Product)
}

func TestResolveIntervals(t *testing.T) {
	mv, ok := Between(dimension.Distance, 3, 5, "mile").Resolve(locale.Default)
	require.True(t, ok)
	require.NotNil(t, mv.From)
	require.NotNil(t, mv.To)
	assert.Equal(t, 3.0, mv.From.Value)
	assert.Equal(t, 5.0, mv.To.Value)
	assert.Nil(t, mv.Point)

	mv, ok = AtMost(dimension.AmountOfMoney, 10, Dollar).Resolve(locale.Default)
	require.True(t, ok)
	assert.Nil(t, mv.From)
	assert.Equal(t, "USD", mv.To.Unit)

	mv, ok = AtLeast(dimension.Temperature, 80, "degree").Resolve(locale.Default)
	require.True(t, ok)
	assert.Nil(t, mv.To)
}

func TestDollarByRegion(t *testing.T) {
	tests := map[locale.Region]string{
		locale.US: "USD",
		locale.GB: "USD",
		locale.AU: "AUD",
		locale.CA: "CAD",
	}
	for region, want := range tests {
		assert.Equal(t, want, DollarCurrency(locale.Locale{Lang: locale.EN, Region: region}), string(region))
	}
}

func TestLatentAndKeys(t *testing.T) {
	bare := Of(dimension.Distance, 3).AsLatent()
	assert.True(t, bare.Latent())
	assert.False(t, bare.WithUnit("km").Latent(), "a unit confirms the reading")

	assert.NotEqual(t, bare.Key(), Of(dimension.Distance, 3).Key())
	assert.True(t, Of(dimension.Distance, 3).WithUnit("km").IsSimple())
	assert.True(t, AtLeast(dimension.Distance, 3, "km").IsInterval())
}
