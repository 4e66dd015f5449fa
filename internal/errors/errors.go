package errors

import (
	"fmt"

	"ocl/token"
)

// Kind separates the two failure stages of the front end.
type Kind int

const (
	LexicalError Kind = iota + 1
	SyntaxError
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	}
	return "error"
}

// FrontEndError is the single diagnostic type shared by lexer and parser:
// a message plus the half-open byte range [From, To) it refers to.
type FrontEndError struct {
	Kind    Kind
	Code    string
	Message string
	From    int
	To      int
}

func (e *FrontEndError) Error() string {
	return fmt.Sprintf("%s[%s] at [%d, %d): %s", e.Kind, e.Code, e.From, e.To, e.Message)
}

// Span returns the error range as a token.Span.
func (e *FrontEndError) Span() token.Span {
	return token.Span{From: e.From, To: e.To}
}

func newError(kind Kind, code, message string, span token.Span) *FrontEndError {
	return &FrontEndError{
		Kind:    kind,
		Code:    code,
		Message: message,
		From:    span.From,
		To:      span.To,
	}
}

func InvalidCharacter(span token.Span) *FrontEndError {
	return newError(LexicalError, ErrorInvalidCharacter, "Invalid character", span)
}

func UnterminatedString(span token.Span) *FrontEndError {
	return newError(LexicalError, ErrorUnterminatedString, "String was not terminated. Awaited '\"'.", span)
}

func IntegerOutOfRange(span token.Span) *FrontEndError {
	return newError(LexicalError, ErrorNumberOutOfRange, "Integer literal out of range", span)
}

func RealOutOfRange(span token.Span) *FrontEndError {
	return newError(LexicalError, ErrorNumberOutOfRange, "Real literal out of range", span)
}

// UnexpectedToken reports that the token at span does not satisfy the
// production; expected describes what was required.
func UnexpectedToken(expected, found string, span token.Span) *FrontEndError {
	return newError(SyntaxError, ErrorUnexpectedToken, fmt.Sprintf("expected %s, found %s", expected, found), span)
}

// UnexpectedEnd reports running out of tokens; at is the end-of-input offset.
func UnexpectedEnd(expected string, at int) *FrontEndError {
	return newError(SyntaxError, ErrorUnexpectedEnd, fmt.Sprintf("expected %s, found end of input", expected), token.Span{From: at, To: at})
}

func MalformedArguments(message string, span token.Span) *FrontEndError {
	return newError(SyntaxError, ErrorMalformedArguments, message, span)
}

func NestingTooDeep(limit int, span token.Span) *FrontEndError {
	return newError(SyntaxError, ErrorNestingTooDeep, fmt.Sprintf("expression nesting exceeds the maximum depth of %d", limit), span)
}

// Reference wraps a diagnostic from the participle reference grammar.
// Lexical failures are reported as invalid characters and syntax failures
// as unexpected tokens.
func Reference(kind Kind, message string, span token.Span) *FrontEndError {
	code := ErrorUnexpectedToken
	if kind == LexicalError {
		code = ErrorInvalidCharacter
	}
	return newError(kind, code, message, span)
}
