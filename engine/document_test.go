package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentAdjacency(t *testing.T) {
	doc := NewDocument("ab  cd\te")

	assert.Equal(t, 4, doc.NextNonSpace(2))
	assert.Equal(t, 0, doc.NextNonSpace(0))
	assert.Equal(t, 7, doc.NextNonSpace(6))
	assert.Equal(t, 8, doc.NextNonSpace(8))

	assert.True(t, doc.IsAdjacent(2, 4))
	assert.True(t, doc.IsAdjacent(2, 2))
	assert.True(t, doc.IsAdjacent(6, 7))
	assert.False(t, doc.IsAdjacent(1, 4))
	assert.False(t, doc.IsAdjacent(4, 2))
}

func TestDocumentLowerKeepsOffsets(t *testing.T) {
	for _, text := range []string{"HELLO World", "İstanbul at 3PM", "ẞtraße", "Ωmega"} {
		doc := NewDocument(text)
		assert.Len(t, doc.lower, len(text), text)
	}
	assert.Equal(t, "hello world", NewDocument("HELLO World").lower)
}

func TestDocumentInvalidUTF8(t *testing.T) {
	text := "ｆｏｒｔｙ ＩＳ 42 \xff\xfe 7"
	doc := NewDocument(text)
	assert.Len(t, doc.lower, len(text))
	assert.Equal(t, "\xff\xfe", doc.lower[len(text)-4:len(text)-2])

	assert.NotPanics(t, func() {
		for start := 0; start < len(text); start++ {
			for end := start + 1; end <= len(text); end++ {
				doc.validBoundary(start, end)
			}
		}
	})
}

func TestDocumentBoundaries(t *testing.T) {
	doc := NewDocument("someone 123 x-1")

	assert.False(t, doc.validBoundary(4, 7))
	assert.True(t, doc.validBoundary(0, 7))
	assert.False(t, doc.validBoundary(8, 10))
	assert.True(t, doc.validBoundary(8, 11))
	assert.True(t, doc.validBoundary(13, 15))
	assert.False(t, doc.validBoundary(3, 3))
}
