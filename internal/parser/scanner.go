package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"ocl/internal/errors"
	"ocl/token"
)

// Scanner turns OCL source text into tokens in a single left-to-right pass.
// It stops at the first lexical error.
type Scanner struct {
	source  string
	tokens  []token.Token
	start   int
	current int
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// Lex scans source completely. On error no tokens are returned.
func Lex(source string) ([]token.Token, error) {
	return NewScanner(source).ScanTokens()
}

func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	return s.tokens, nil
}

// scanToken applies the lexical rules in priority order.
func (s *Scanner) scanToken() error {
	c := s.peek()
	switch {
	case isWhitespace(c):
		s.advance()
	case c == '-' && s.peekNext() == '-':
		s.scanLineComment()
	case isDigit(c):
		return s.scanNumber()
	case c == '"':
		return s.scanString()
	case token.IsOperatorStart(c):
		s.scanOperator()
	case isAlpha(c):
		s.scanIdentifier()
	default:
		return s.invalidCharacter()
	}
	return nil
}

func (s *Scanner) scanLineComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// scanNumber accepts digits with at most one interior '.'. A '.' that is
// not followed by a digit ends the numeral and is left for the operator
// rule, so "12.3.4" scans as 12.3 . 4 and "1..5" as 1 .. 5.
func (s *Scanner) scanNumber() error {
	for isDigit(s.peek()) {
		s.advance()
	}

	isReal := false
	if s.peek() == '.' && isDigit(s.peekNext()) {
		isReal = true
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	span := s.span()
	text := span.Text(s.source)
	lit := token.Literal{Value: span}

	if isReal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return errors.RealOutOfRange(span)
		}
		lit.Kind, lit.Real = token.REAL, v
	} else {
		// Numerals are unsigned; '-' is a separate operator, so the
		// int64 minimum has no literal form.
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return errors.IntegerOutOfRange(span)
		}
		lit.Kind, lit.Integer = token.INTEGER, v
	}

	s.addToken(token.Token{Kind: token.LITERAL, Literal: lit})
	return nil
}

// scanString reads verbatim up to the closing quote; there are no escapes.
func (s *Scanner) scanString() error {
	s.advance() // opening quote
	for !s.isAtEnd() && s.peek() != '"' {
		s.advance()
	}
	if s.isAtEnd() {
		return errors.UnterminatedString(s.span())
	}
	s.advance() // closing quote

	s.addToken(token.Token{
		Kind: token.LITERAL,
		Literal: token.Literal{
			Kind:  token.STRING,
			Value: token.Span{From: s.start + 1, To: s.current - 1},
		},
	})
	return nil
}

// scanOperator prefers a two-character operator when the next byte can
// complete one, and falls back to the single character otherwise.
func (s *Scanner) scanOperator() {
	s.advance()

	if !s.isAtEnd() && token.IsOperatorFollowUp(s.peek()) {
		if op, ok := token.LookupOperator(s.source[s.start : s.current+1]); ok {
			s.advance()
			s.addToken(token.Token{Kind: token.OPERATOR, Operator: op})
			return
		}
	}

	op, ok := token.LookupOperator(s.source[s.start:s.current])
	if !ok {
		// IsOperatorStart and the operator table disagree: scanner defect.
		panic(fmt.Sprintf("scanner: no operator for %q", s.source[s.start:s.current]))
	}
	s.addToken(token.Token{Kind: token.OPERATOR, Operator: op})
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.current]
	if kw, ok := token.LookupKeyword(text); ok {
		s.addToken(token.Token{Kind: token.KEYWORD, Keyword: kw})
		return
	}
	s.addToken(token.Token{Kind: token.IDENTIFIER})
}

func (s *Scanner) invalidCharacter() error {
	_, size := utf8.DecodeRuneInString(s.source[s.start:])
	if size < 1 {
		size = 1
	}
	return errors.InvalidCharacter(token.Span{From: s.start, To: s.start + size})
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) span() token.Span {
	return token.Span{From: s.start, To: s.current}
}

func (s *Scanner) addToken(tok token.Token) {
	tok.Span = s.span()
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isAlpha is ASCII-only; non-ASCII letters are invalid characters.
func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
