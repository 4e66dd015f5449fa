// Package ocl is the front end of an Object Constraint Language toolchain:
// a lexer turning constraint text into tokens and a parser building the
// syntax tree of a constraint or of a whole constraint document.
//
// Both stages are pure functions of their input. They stop at the first
// error, which is always an *Error carrying a message and the half-open
// byte range [From, To) it refers to:
//
//	tree, err := ocl.Parse("context Company inv: self.numberOfEmployees > 50")
//	var oclErr *ocl.Error
//	if errors.As(err, &oclErr) {
//		fmt.Println(oclErr.Message, oclErr.From, oclErr.To)
//	}
package ocl

import (
	"ocl/ast"
	"ocl/internal/errors"
	"ocl/internal/parser"
	"ocl/token"
)

// Error is the diagnostic returned by every front-end entry point.
type Error = errors.FrontEndError

// Options tunes the parser. The zero value uses the defaults.
type Options = parser.Options

const (
	LexicalError = errors.LexicalError
	SyntaxError  = errors.SyntaxError
)

// DefaultMaxDepth is the expression nesting limit used when
// Options.MaxDepth is zero.
const DefaultMaxDepth = parser.DefaultMaxDepth

// Lex scans source into tokens. On error no tokens are returned.
func Lex(source string) ([]token.Token, error) {
	return parser.Lex(source)
}

// Parse parses a single constraint: a bare expression, which becomes an
// invariant without context, or a context declaration followed by exactly
// one stereotyped constraint.
func Parse(source string) (*ast.AbstractSyntaxTree, error) {
	return parser.Parse(source)
}

func ParseWith(source string, opts Options) (*ast.AbstractSyntaxTree, error) {
	return parser.ParseWith(source, opts)
}

// ParseDocument parses any number of context blocks, each with one or
// more constraints, optionally grouped in package ... endpackage.
func ParseDocument(source string) (*ast.Document, error) {
	return parser.ParseDocument(source, parser.DefaultOptions())
}

func ParseDocumentWith(source string, opts Options) (*ast.Document, error) {
	return parser.ParseDocument(source, opts)
}
