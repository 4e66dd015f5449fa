// Package parser implements the OCL lexer and a recursive-descent parser
// producing ast trees. Both stages are fail-fast: the first error aborts the
// call and no partial result is returned.
package parser

import (
	"ocl/ast"
	"ocl/token"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 256

type Options struct {
	// MaxDepth is the deepest expression nesting accepted before parsing
	// fails with a nesting error. Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func (o Options) normalized() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

type Parser struct {
	source  string
	tokens  []token.Token
	current int
	depth   int
	options Options
}

// NewParser creates a parser over tokens previously lexed from source.
func NewParser(source string, tokens []token.Token, opts Options) *Parser {
	return &Parser{
		source:  source,
		tokens:  tokens,
		options: opts.normalized(),
	}
}

// Parse lexes and parses a single constraint with default options.
func Parse(source string) (*ast.AbstractSyntaxTree, error) {
	return ParseWith(source, DefaultOptions())
}

func ParseWith(source string, opts Options) (*ast.AbstractSyntaxTree, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	return NewParser(source, tokens, opts).ParseTree()
}

// ParseDocument lexes and parses a source holding any number of context
// blocks, optionally wrapped in packages.
func ParseDocument(source string, opts Options) (*ast.Document, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	return NewParser(source, tokens, opts).ParseDocument()
}

// ParseTree parses exactly one constraint. The input is either a bare
// expression, which becomes an invariant without context, a constraint
// without context, or a context declaration followed by one constraint.
func (p *Parser) ParseTree() (*ast.AbstractSyntaxTree, error) {
	tree := &ast.AbstractSyntaxTree{Source: p.source}

	switch {
	case p.checkKeyword(token.CONTEXT):
		decl, err := p.parseContextDeclaration()
		if err != nil {
			return nil, err
		}
		root, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		tree.Context = decl
		tree.Root = root

	case p.checkConstraintStart():
		root, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		tree.Root = root

	default:
		stmt, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		tree.Root = &ast.Invariant{Span: stmt.NodeSpan(), Statement: stmt}
	}

	if !p.isAtEnd() {
		return nil, p.errorExpected("end of input")
	}
	return tree, nil
}

func (p *Parser) ParseDocument() (*ast.Document, error) {
	doc := &ast.Document{
		Source: p.source,
		Span:   token.Span{From: 0, To: len(p.source)},
	}

	for !p.isAtEnd() {
		switch {
		case p.checkKeyword(token.PACKAGE):
			pkg, err := p.parsePackage()
			if err != nil {
				return nil, err
			}
			doc.Packages = append(doc.Packages, pkg)
		case p.checkKeyword(token.CONTEXT):
			block, err := p.parseContextBlock()
			if err != nil {
				return nil, err
			}
			doc.Contexts = append(doc.Contexts, block)
		default:
			return nil, p.errorExpected("'context' or 'package'")
		}
	}
	return doc, nil
}
