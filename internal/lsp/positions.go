package lsp

import (
	"math"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex maps byte offsets of one source text to LSP positions, whose
// characters are counted in UTF-16 code units.
type lineIndex struct {
	source     string
	lineStarts []int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{source: source, lineStarts: starts}
}

// line returns the 0-based line containing offset.
func (li *lineIndex) line(offset int) int {
	return sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	}) - 1
}

// position converts a byte offset, clamped to the source, to an LSP
// position.
func (li *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(li.source)))
	line := li.line(offset)
	start := li.lineStarts[line]
	return protocol.Position{
		Line:      toUInteger(line),
		Character: toUInteger(utf16Len(li.source[start:offset])),
	}
}

func (li *lineIndex) span(from, to int) protocol.Range {
	return protocol.Range{Start: li.position(from), End: li.position(to)}
}

// offset converts an LSP position back to a byte offset.
func (li *lineIndex) offset(pos protocol.Position) int {
	return pos.IndexIn(li.source)
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func toUInteger(n int) protocol.UInteger {
	v, err := safecast.Conv[protocol.UInteger](n)
	if err != nil {
		if n < 0 {
			return 0
		}
		return math.MaxUint32
	}
	return v
}
