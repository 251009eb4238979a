package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("reference time is required for %s", "parse")

	require.Error(t, err)
	assert.True(t, IsInvalidInputError(err))
	assert.Contains(t, err.Error(), "reference time is required for parse")
	assert.False(t, IsNotFoundError(err))
}

func TestWrapInvalidInput(t *testing.T) {
	err := WrapInvalidInput(New("bad offset"), "timezone")

	assert.True(t, IsInvalidInputError(err))
	assert.Contains(t, err.Error(), "timezone")
	assert.Contains(t, err.Error(), "bad offset")
}

func TestUnsupportedLocaleMatchesBothSentinels(t *testing.T) {
	err := NewUnsupportedLocaleError("fr_FR")

	assert.True(t, IsUnsupportedLocaleError(err))
	assert.True(t, IsInvalidInputError(err))
	assert.Contains(t, err.Error(), "fr_FR")
}

func TestUnknownDimensionCarriesHint(t *testing.T) {
	err := NewUnknownDimensionError("colour")

	assert.True(t, Is(err, ErrUnknownDimension))
	assert.True(t, IsInvalidInputError(err))
	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "dims")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsInvalidInputError(nil))
	assert.False(t, IsUnsupportedLocaleError(nil))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func ExampleWrap() {
	err := Wrap(New("no such file"), "failed to load corpus")
	fmt.Println(err)
	// Output: failed to load corpus: no such file
}
