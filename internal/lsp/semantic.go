package lsp

import (
	"strings"

	"ocl/ast"
	"ocl/token"
)

// SemanticTokenTypes is the legend advertised to clients; a token's type is
// its index here.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"parameter",
	"variable",
	"property",
	"function",
	"keyword",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is the modifier legend; bit i stands for entry i.
var SemanticTokenModifiers = []string{
	"declaration",
	"static",
}

// SemanticToken is one decoded entry. Line and StartChar are 0-based and
// StartChar and Length count UTF-16 code units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

type identifierClass struct {
	tokenType string
	modifiers []string
}

// classifyIdentifiers assigns a semantic role to every identifier in doc,
// keyed by its start offset. The first role recorded for an offset wins,
// so parents can claim identifiers before the generic cases see them.
func classifyIdentifiers(doc *ast.Document) map[int]identifierClass {
	classes := make(map[int]identifierClass)
	if doc == nil {
		return classes
	}

	mark := func(id *ast.Identifier, tokenType string, modifiers ...string) {
		if id == nil {
			return
		}
		if _, ok := classes[id.Span.From]; !ok {
			classes[id.Span.From] = identifierClass{tokenType: tokenType, modifiers: modifiers}
		}
	}
	markParams := func(decls []*ast.VariableDeclaration) {
		for _, d := range decls {
			mark(d.Name, "parameter", "declaration")
		}
	}

	ast.Inspect(doc, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Package:
			if n.Name != nil {
				for _, id := range n.Name.Path {
					mark(id, "namespace")
				}
			}
		case *ast.ContextDeclaration:
			mark(n.Instance, "variable", "declaration")
		case *ast.OperationSignature:
			mark(n.Name, "function", "declaration")
			markParams(n.Parameters)
		case *ast.PropertySignature:
			mark(n.Name, "property", "declaration")
		case *ast.TypeName:
			for _, id := range n.Path {
				mark(id, "type")
			}
		case *ast.Definition:
			modifiers := []string{"declaration"}
			if n.Static {
				modifiers = append(modifiers, "static")
			}
			if n.Operation {
				mark(n.Variable, "function", modifiers...)
			} else {
				mark(n.Variable, "property", modifiers...)
			}
			mark(n.Name, "variable", "declaration")
			markParams(n.Parameters)
		case ast.Constraint:
			mark(n.ConstraintName(), "variable", "declaration")
		case *ast.VariableDeclaration:
			mark(n.Name, "variable", "declaration")
		case *ast.FunctionCall:
			mark(n.Name, "function")
		case *ast.IteratorCall:
			mark(n.Name, "function")
		case *ast.CollectionLiteral:
			mark(n.Kind, "type")
		case *ast.BinaryOperation:
			if n.Operator.IsNavigation() {
				if id, ok := ast.Value(n.Right).(*ast.Identifier); ok {
					mark(id, "property")
				}
			}
		case *ast.Identifier:
			mark(n, "variable")
		}
		return true
	})
	return classes
}

// collectSemanticTokens classifies every lexed token. Identifiers take the
// role found in doc, or "variable" when doc is nil. Tokens spanning lines
// are split per line.
func collectSemanticTokens(source string, tokens []token.Token, doc *ast.Document) []SemanticToken {
	li := newLineIndex(source)
	classes := classifyIdentifiers(doc)
	var out []SemanticToken

	for _, tok := range tokens {
		var class identifierClass
		switch tok.Kind {
		case token.KEYWORD:
			class.tokenType = "keyword"
		case token.OPERATOR:
			class.tokenType = "operator"
		case token.LITERAL:
			if tok.Literal.Kind == token.STRING {
				class.tokenType = "string"
			} else {
				class.tokenType = "number"
			}
		case token.IDENTIFIER:
			var ok bool
			if class, ok = classes[tok.Span.From]; !ok {
				class.tokenType = "variable"
			}
		default:
			continue
		}

		typeIndex := indexOf(class.tokenType, SemanticTokenTypes)
		modifiers := 0
		for _, m := range class.modifiers {
			modifiers |= 1 << indexOf(m, SemanticTokenModifiers)
		}

		from := tok.Span.From
		for _, part := range strings.SplitAfter(tok.Text(source), "\n") {
			text := strings.TrimSuffix(part, "\n")
			if text != "" {
				pos := li.position(from)
				out = append(out, SemanticToken{
					Line:           pos.Line,
					StartChar:      pos.Character,
					Length:         toUInteger(utf16Len(text)),
					TokenType:      typeIndex,
					TokenModifiers: modifiers,
				})
			}
			from += len(part)
		}
	}
	return out
}

// encodeSemanticTokens packs tokens into the LSP relative encoding.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, tok.Length, toUInteger(tok.TokenType), toUInteger(tok.TokenModifiers))
		prevLine = tok.Line
		prevStart = tok.StartChar
	}
	return data
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
