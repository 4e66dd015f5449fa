// Package token defines the lexical vocabulary of OCL: keywords, operators,
// literals and the byte spans that tie every token back to its source.
package token

import (
	"fmt"
	"strconv"
)

// Kind is the lexical category of a token.
//
//go:generate stringer -type=Kind
type Kind int

const (
	ILLEGAL Kind = iota
	KEYWORD
	IDENTIFIER
	OPERATOR
	LITERAL
)

// LiteralKind distinguishes the three literal payloads.
type LiteralKind int

const (
	NO_LITERAL LiteralKind = iota
	INTEGER
	REAL
	STRING
)

func (k LiteralKind) String() string {
	switch k {
	case INTEGER:
		return "Integer"
	case REAL:
		return "Real"
	case STRING:
		return "String"
	}
	return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
}

// Literal is the payload of a LITERAL token. Value is the span of the
// literal's content: the digits of a numeral, or the characters strictly
// between the quotes of a string.
type Literal struct {
	Kind    LiteralKind
	Integer int64
	Real    float64
	Value   Span
}

// Token is a tagged variant; only the payload field matching Kind is set.
// Span always covers the full lexeme, quotes included.
type Token struct {
	Kind     Kind
	Keyword  Keyword
	Operator Operator
	Literal  Literal
	Span     Span
}

// Text returns the exact source text of the token.
func (t Token) Text(source string) string {
	return t.Span.Text(source)
}

// Is reports whether t is the operator op.
func (t Token) Is(op Operator) bool {
	return t.Kind == OPERATOR && t.Operator == op
}

// IsKeyword reports whether t is the keyword kw.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KEYWORD && t.Keyword == kw
}

// Describe renders the token for diagnostics, e.g. `'->'` or
// `identifier 'size'`.
func (t Token) Describe(source string) string {
	switch t.Kind {
	case KEYWORD:
		return "'" + t.Keyword.String() + "'"
	case OPERATOR:
		return "'" + t.Operator.String() + "'"
	case IDENTIFIER:
		return "identifier '" + t.Text(source) + "'"
	case LITERAL:
		switch t.Literal.Kind {
		case INTEGER:
			return "integer literal " + t.Text(source)
		case REAL:
			return "real literal " + t.Text(source)
		case STRING:
			return "string literal " + t.Text(source)
		}
	}
	return "illegal token"
}

func (t Token) String() string {
	switch t.Kind {
	case KEYWORD:
		return fmt.Sprintf("Keyword(%s)@%s", t.Keyword, t.Span)
	case OPERATOR:
		return fmt.Sprintf("Operator(%s)@%s", t.Operator, t.Span)
	case IDENTIFIER:
		return fmt.Sprintf("Identifier@%s", t.Span)
	case LITERAL:
		switch t.Literal.Kind {
		case INTEGER:
			return fmt.Sprintf("Literal(Integer(%d))@%s", t.Literal.Integer, t.Span)
		case REAL:
			return fmt.Sprintf("Literal(Real(%g))@%s", t.Literal.Real, t.Span)
		case STRING:
			return fmt.Sprintf("Literal(String%s)@%s", t.Literal.Value, t.Span)
		}
	}
	return fmt.Sprintf("Illegal@%s", t.Span)
}
