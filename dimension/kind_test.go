package dimension

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"time", Time},
		{"number", Numeral},
		{"numeral", Numeral},
		{"amount-of-money", AmountOfMoney},
		{"amount_of_money", AmountOfMoney},
		{"Money", AmountOfMoney},
		{" url ", URL},
		{"credit-card-number", CreditCardNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("colour")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownDimension))
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestParseKindsDropsDuplicatesAndBlanks(t *testing.T) {
	kinds, err := ParseKinds([]string{"time", "", "number", "time"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{Time, Numeral}, kinds)
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestClosureIncludesTransitiveDependencies(t *testing.T) {
	assert.Equal(t, []Kind{Numeral, Ordinal, TimeGrain, Duration, Time}, Closure([]Kind{Time}))
	assert.Equal(t, []Kind{Numeral, Temperature}, Closure([]Kind{Temperature}))
	assert.Equal(t, []Kind{Email}, Closure([]Kind{Email}))
	assert.Empty(t, Closure(nil))
}

func TestKindSet(t *testing.T) {
	s := NewKindSet(Time, Email)
	assert.True(t, s.Has(Time))
	assert.True(t, s.Has(Email))
	assert.False(t, s.Has(Numeral))
	assert.True(t, NewKindSet().Empty())
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal([]Kind{PhoneNumber, Time})
	require.NoError(t, err)
	assert.JSONEq(t, `["phone-number","time"]`, string(data))

	var kinds []Kind
	require.NoError(t, json.Unmarshal([]byte(`["money","number"]`), &kinds))
	assert.Equal(t, []Kind{AmountOfMoney, Numeral}, kinds)
}
