package lsp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestLineIndexPosition(t *testing.T) {
	source := "ab\n\"€𝄞\"x\n"
	li := newLineIndex(source)

	tests := []struct {
		offset int
		want   protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{4, protocol.Position{Line: 1, Character: 1}},  // after the quote
		{7, protocol.Position{Line: 1, Character: 2}},  // after the three-byte euro sign
		{11, protocol.Position{Line: 1, Character: 4}}, // after the surrogate pair
		{13, protocol.Position{Line: 1, Character: 6}},
		{14, protocol.Position{Line: 2, Character: 0}},
		{99, protocol.Position{Line: 2, Character: 0}},
		{-5, protocol.Position{Line: 0, Character: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, li.position(tt.offset), "offset %d", tt.offset)
	}
}

func TestLineIndexOffsetRoundTrip(t *testing.T) {
	source := "context A\n  inv: \"𝄞\" = x"
	li := newLineIndex(source)
	for offset := range len(source) + 1 {
		if offset > 0 && offset < len(source) && (source[offset]&0xC0) == 0x80 {
			continue // inside a multi-byte rune
		}
		assert.Equal(t, offset, li.offset(li.position(offset)), "offset %d", offset)
	}
}

func TestConvertErrorForeignError(t *testing.T) {
	diags := ConvertError("x", errors.New("boom"))
	require.Len(t, diags, 1)
	assert.Equal(t, "boom", diags[0].Message)
	assert.Nil(t, diags[0].Code)
	assert.Equal(t, protocol.Range{}, diags[0].Range)

	assert.NotNil(t, ConvertError("x", nil))
	assert.Empty(t, ConvertError("x", nil))
}

func TestCompletionItemsPrefix(t *testing.T) {
	labels := func(items []protocol.CompletionItem) []string {
		var out []string
		for _, item := range items {
			out = append(out, item.Label)
		}
		return out
	}

	assert.Equal(t, []string{"select", "size", "sortedBy", "sum"}, labels(completionItems("x->s", 4)))
	assert.Equal(t, []string{"includes", "includesAll", "including", "isEmpty", "isUnique"}, labels(completionItems("x -> i", 6)))
	assert.ElementsMatch(t, []string{"endif", "endpackage"}, labels(completionItems("e.end", 5)))
}
