package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"ocl/token"
)

// collectionOperations are offered after '->'.
var collectionOperations = []string{
	"any", "asBag", "asOrderedSet", "asSequence", "asSet", "collect",
	"count", "excludes", "excludesAll", "excluding", "exists", "first",
	"flatten", "forAll", "includes", "includesAll", "including", "isEmpty",
	"isUnique", "last", "notEmpty", "one", "reject", "select", "size",
	"sortedBy", "sum",
}

var collectionKinds = []string{"Bag", "Collection", "OrderedSet", "Sequence", "Set"}

// completionItems proposes words for the identifier ending at offset.
// After '->' these are collection operations; elsewhere keywords and
// collection kinds.
func completionItems(source string, offset int) []protocol.CompletionItem {
	offset = max(0, min(offset, len(source)))
	start := offset
	for start > 0 && isLetter(source[start-1]) {
		start--
	}
	prefix := source[start:offset]
	before := strings.TrimRight(source[:start], " \t\r\n")

	items := []protocol.CompletionItem{}
	add := func(words []string, kind protocol.CompletionItemKind, detail string) {
		for _, w := range words {
			if strings.HasPrefix(w, prefix) {
				items = append(items, protocol.CompletionItem{
					Label:  w,
					Kind:   &kind,
					Detail: &detail,
				})
			}
		}
	}

	if strings.HasSuffix(before, "->") {
		add(collectionOperations, protocol.CompletionItemKindMethod, "collection operation")
		return items
	}
	add(token.Keywords(), protocol.CompletionItemKindKeyword, "keyword")
	add(collectionKinds, protocol.CompletionItemKindClass, "collection kind")
	return items
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
