package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"ocl/ast"
	"ocl/token"
)

// documentSymbols outlines doc: packages contain context blocks, which
// contain their constraints.
func documentSymbols(source string, doc *ast.Document) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if doc == nil {
		return symbols
	}
	li := newLineIndex(source)

	for _, block := range doc.Blocks() {
		switch b := block.(type) {
		case *ast.Package:
			pkg := protocol.DocumentSymbol{
				Name:           b.Name.String(),
				Kind:           protocol.SymbolKindPackage,
				Range:          li.span(b.Span.From, b.Span.To),
				SelectionRange: li.span(b.Name.Span.From, b.Name.Span.To),
			}
			for _, ctx := range b.Contexts {
				pkg.Children = append(pkg.Children, contextSymbol(li, ctx))
			}
			symbols = append(symbols, pkg)
		case *ast.ContextBlock:
			symbols = append(symbols, contextSymbol(li, b))
		}
	}
	return symbols
}

func contextSymbol(li *lineIndex, block *ast.ContextBlock) protocol.DocumentSymbol {
	decl := block.Context
	kind := protocol.SymbolKindClass
	selection := decl.Type.Span
	switch {
	case decl.Operation != nil:
		kind = protocol.SymbolKindMethod
		selection = decl.Operation.Name.Span
	case decl.Property != nil:
		kind = protocol.SymbolKindProperty
		selection = decl.Property.Name.Span
	}

	sym := protocol.DocumentSymbol{
		Name:           strings.TrimPrefix(decl.String(), "context "),
		Kind:           kind,
		Range:          li.span(block.Span.From, block.Span.To),
		SelectionRange: li.span(selection.From, selection.To),
	}
	for _, c := range block.Constraints {
		sym.Children = append(sym.Children, constraintSymbol(li, c))
	}
	return sym
}

func constraintSymbol(li *lineIndex, c ast.Constraint) protocol.DocumentSymbol {
	span := c.NodeSpan()
	name := c.Stereotype().String()
	selection := token.Span{From: span.From, To: span.From + len(name)}
	if id := c.ConstraintName(); id != nil {
		name += " " + id.Name
		selection = id.Span
	}

	kind := protocol.SymbolKindConstant
	if def, ok := c.(*ast.Definition); ok {
		kind = protocol.SymbolKindField
		if def.Operation {
			kind = protocol.SymbolKindFunction
		}
		name = "def " + def.Variable.Name
		selection = def.Variable.Span
	}

	detail := c.Expression().String()
	return protocol.DocumentSymbol{
		Name:           name,
		Detail:         &detail,
		Kind:           kind,
		Range:          li.span(span.From, span.To),
		SelectionRange: li.span(selection.From, selection.To),
	}
}
