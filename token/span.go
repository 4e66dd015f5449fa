package token

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [From, To) into the source text.
type Span struct {
	From int
	To   int
}

func (s Span) Len() int {
	return s.To - s.From
}

func (s Span) Empty() bool {
	return s.From == s.To
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.From < s.From {
		s.From = other.From
	}
	if other.To > s.To {
		s.To = other.To
	}
	return s
}

// Text slices the spanned text out of source. Out-of-range spans yield "".
func (s Span) Text(source string) string {
	if s.From < 0 || s.To > len(source) || s.From > s.To {
		return ""
	}
	return source[s.From:s.To]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.From, s.To)
}

// Position is a human-facing location.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate converts a byte offset into a line/column position. Offsets past
// the end of source are clamped to it.
func Locate(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{
		Line:   line,
		Column: offset - lineStart + 1,
		Offset: offset,
	}
}
