// Package grammar is a declarative reference grammar for OCL built with
// participle. It accepts the same language as the hand-written parser in
// internal/parser and converts its parse tree into the same ast, which
// lets the two engines be checked against each other.
package grammar

import (
	stderrors "errors"
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"ocl/ast"
	"ocl/internal/errors"
	"ocl/internal/parser"
	"ocl/token"
)

var (
	unitParser     = buildParser[Unit]()
	documentParser = buildParser[Document]()
)

func buildParser[G any]() *participle.Parser[G] {
	p, err := participle.Build[G](
		participle.Lexer(OCLLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(participle.MaxLookahead),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// Parse parses a single constraint with the default options.
func Parse(source string) (*ast.AbstractSyntaxTree, error) {
	return ParseWith(source, parser.DefaultOptions())
}

// ParseWith parses a single constraint, failing once nesting goes past
// opts.MaxDepth.
func ParseWith(source string, opts parser.Options) (*ast.AbstractSyntaxTree, error) {
	if err := checkDepth(source, maxDepth(opts)); err != nil {
		return nil, err
	}
	unit, err := unitParser.ParseString("", source)
	if err != nil {
		return nil, convertError(source, err)
	}
	c := &converter{source: source}
	return c.unit(unit)
}

// ParseDocument parses a constraint document with the default options.
func ParseDocument(source string) (*ast.Document, error) {
	return ParseDocumentWith(source, parser.DefaultOptions())
}

// ParseDocumentWith parses a constraint document under opts.
func ParseDocumentWith(source string, opts parser.Options) (*ast.Document, error) {
	if err := checkDepth(source, maxDepth(opts)); err != nil {
		return nil, err
	}
	doc, err := documentParser.ParseString("", source)
	if err != nil {
		return nil, convertError(source, err)
	}
	c := &converter{source: source}
	return c.document(doc)
}

func maxDepth(opts parser.Options) int {
	if opts.MaxDepth <= 0 {
		return parser.DefaultMaxDepth
	}
	return opts.MaxDepth
}

// EBNF returns the grammar of a single constraint in EBNF form.
func EBNF() string {
	return unitParser.String()
}

// convertError maps participle diagnostics onto FrontEndError so callers
// see one error type regardless of engine.
func convertError(source string, err error) error {
	var lexErr *lexer.Error
	if stderrors.As(err, &lexErr) {
		return errors.Reference(errors.LexicalError, lexErr.Message(), charSpan(source, lexErr.Pos.Offset))
	}

	var unexpected *participle.UnexpectedTokenError
	if stderrors.As(err, &unexpected) {
		tok := unexpected.Unexpected
		sp := token.Span{From: tok.Pos.Offset, To: tok.Pos.Offset + len(tok.Value)}
		return errors.Reference(errors.SyntaxError, unexpected.Message(), sp)
	}

	var perr participle.Error
	if stderrors.As(err, &perr) {
		off := perr.Position().Offset
		return errors.Reference(errors.SyntaxError, perr.Message(), token.Span{From: off, To: off})
	}
	return err
}

func charSpan(source string, offset int) token.Span {
	if offset >= len(source) {
		return token.Span{From: len(source), To: len(source)}
	}
	_, size := utf8.DecodeRuneInString(source[offset:])
	return token.Span{From: offset, To: offset + size}
}

func numberError(sp token.Span, integer bool) error {
	if integer {
		return errors.IntegerOutOfRange(sp)
	}
	return errors.RealOutOfRange(sp)
}
