package engine

import (
	"unicode"
	"unicode/utf8"
)

// Document is the input text plus precomputed lookups for adjacency and
// case-insensitive matching. Offsets are byte offsets into Text.
type Document struct {
	text  string
	lower string
	// nextNonSpace[i] is the first non-whitespace byte at or after i
	nextNonSpace []int
}

// NewDocument prepares text for matching
func NewDocument(text string) *Document {
	n := len(text)
	next := make([]int, n+1)
	next[n] = n
	pos := n
	for i := n; i > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
		if !unicode.IsSpace(r) {
			pos = i
		}
		for j := i; j < i+size; j++ {
			next[j] = pos
		}
	}

	return &Document{
		text:         text,
		lower:        lowerSameLength(text),
		nextNonSpace: next,
	}
}

// lowerSameLength lowercases rune by rune, keeping a rune unchanged when
// its lowercase form has a different UTF-8 length, so byte offsets into the
// lowered text stay valid for the original. Invalid bytes are copied as is.
func lowerSameLength(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			// invalid bytes pass through so offsets stay aligned
			buf = append(buf, s[i])
			i++
			continue
		}
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != size {
			l = r
		}
		buf = utf8.AppendRune(buf, l)
		i += size
	}
	return string(buf)
}

// Text returns the original input
func (d *Document) Text() string {
	return d.text
}

// Len returns the input length in bytes
func (d *Document) Len() int {
	return len(d.text)
}

// Slice returns the original substring for a span
func (d *Document) Slice(start, end int) string {
	return d.text[start:end]
}

// NextNonSpace returns the first non-whitespace offset at or after pos
func (d *Document) NextNonSpace(pos int) int {
	if pos >= len(d.nextNonSpace) {
		return len(d.text)
	}
	return d.nextNonSpace[pos]
}

// IsAdjacent reports whether only whitespace separates end from start
func (d *Document) IsAdjacent(end, start int) bool {
	if end > start {
		return false
	}
	return d.NextNonSpace(end) >= start
}

// validBoundary rejects regex matches that cut through a word or a
// number, e.g. "one" inside "someone" or "12" inside "123".
func (d *Document) validBoundary(start, end int) bool {
	if start >= end {
		return false
	}
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(d.text[:start])
		first, _ := utf8.DecodeRuneInString(d.text[start:])
		if sameClass(before, first) {
			return false
		}
	}
	if end < len(d.text) {
		last, _ := utf8.DecodeLastRuneInString(d.text[:end])
		after, _ := utf8.DecodeRuneInString(d.text[end:])
		if sameClass(last, after) {
			return false
		}
	}
	return true
}

func sameClass(a, b rune) bool {
	switch {
	case unicode.IsLetter(a) && unicode.IsLetter(b):
		return true
	case unicode.IsDigit(a) && unicode.IsDigit(b):
		return true
	}
	return false
}
