package parser

import (
	"ocl/ast"
	"ocl/internal/errors"
	"ocl/token"
)

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(op token.Operator) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Is(op)
}

func (p *Parser) checkKeyword(kw token.Keyword) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().IsKeyword(kw)
}

func (p *Parser) checkIdentifier() bool {
	return !p.isAtEnd() && p.peek().Kind == token.IDENTIFIER
}

// checkAt looks n tokens ahead of the current one.
func (p *Parser) checkAt(n int, op token.Operator) bool {
	i := p.current + n
	return i < len(p.tokens) && p.tokens[i].Is(op)
}

func (p *Parser) match(ops ...token.Operator) bool {
	for _, op := range ops {
		if p.check(op) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKeyword(kws ...token.Keyword) bool {
	for _, kw := range kws {
		if p.checkKeyword(kw) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(op token.Operator, expected string) (token.Token, error) {
	if p.check(op) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorExpected(expected)
}

func (p *Parser) consumeKeyword(kw token.Keyword, expected string) (token.Token, error) {
	if p.checkKeyword(kw) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorExpected(expected)
}

// consumeIdent consumes an identifier token and returns it as an
// ast.Identifier.
func (p *Parser) consumeIdent(expected string) (*ast.Identifier, error) {
	if !p.checkIdentifier() {
		return nil, p.errorExpected(expected)
	}
	return p.makeIdent(p.advance()), nil
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

// errorExpected reports the current token, or the end of input, as not
// satisfying the production.
func (p *Parser) errorExpected(expected string) error {
	if p.isAtEnd() {
		return errors.UnexpectedEnd(expected, len(p.source))
	}
	tok := p.peek()
	return errors.UnexpectedToken(expected, tok.Describe(p.source), tok.Span)
}

// currentSpan is the span of the current token, or the empty span at the
// end of input.
func (p *Parser) currentSpan() token.Span {
	if p.isAtEnd() {
		return token.Span{From: len(p.source), To: len(p.source)}
	}
	return p.peek().Span
}

func (p *Parser) makeIdent(tok token.Token) *ast.Identifier {
	return &ast.Identifier{Span: tok.Span, Name: tok.Text(p.source)}
}

// enter records one more level of expression nesting.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.options.MaxDepth {
		return errors.NestingTooDeep(p.options.MaxDepth, p.currentSpan())
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
