package parser

import (
	"ocl/ast"
	"ocl/internal/errors"
	"ocl/token"
)

type binaryOperator struct {
	op   ast.Operator
	prec int
}

var keywordPrecedence = map[token.Keyword]binaryOperator{
	token.IMPLIES: {ast.OpImplies, 1},
	token.OR:      {ast.OpOr, 2},
	token.XOR:     {ast.OpXor, 2},
	token.AND:     {ast.OpAnd, 3},
}

var operatorPrecedence = map[token.Operator]binaryOperator{
	token.EQUAL:         {ast.OpEqual, 4},
	token.NOT_EQUAL:     {ast.OpNotEqual, 4},
	token.LESS:          {ast.OpLess, 5},
	token.GREATER:       {ast.OpGreater, 5},
	token.LESS_EQUAL:    {ast.OpLessEqual, 5},
	token.GREATER_EQUAL: {ast.OpGreaterEqual, 5},
	token.PLUS:          {ast.OpAdd, 6},
	token.MINUS:         {ast.OpSubtract, 6},
	token.STAR:          {ast.OpMultiply, 7},
	token.SLASH:         {ast.OpDivide, 7},
}

var navigationOperators = map[token.Operator]ast.Operator{
	token.DOT:          ast.OpDot,
	token.ARROW:        ast.OpArrow,
	token.DOUBLE_COLON: ast.OpDoubleColon,
}

func lookupBinary(tok token.Token) (binaryOperator, bool) {
	switch tok.Kind {
	case token.KEYWORD:
		b, ok := keywordPrecedence[tok.Keyword]
		return b, ok
	case token.OPERATOR:
		b, ok := operatorPrecedence[tok.Operator]
		return b, ok
	}
	return binaryOperator{}, false
}

// parseExpression parses a full expression and counts one nesting level.
func (p *Parser) parseExpression() (ast.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parsePrattExpr(1)
}

// parsePrattExpr parses binary operators binding at least as tightly as
// minPrec. All binary levels are left-associative.
func (p *Parser) parsePrattExpr(minPrec int) (ast.Statement, error) {
	expr, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}

	for !p.isAtEnd() {
		bin, ok := lookupBinary(p.peek())
		if !ok || bin.prec < minPrec {
			break
		}

		p.advance()
		right, err := p.parsePrattExpr(bin.prec + 1)
		if err != nil {
			return nil, err
		}

		expr = &ast.BinaryOperation{
			Span:     expr.NodeSpan().Cover(right.NodeSpan()),
			Left:     expr,
			Operator: bin.op,
			Right:    right,
		}
	}

	return expr, nil
}

func (p *Parser) parsePrefixExpr() (ast.Statement, error) {
	var op ast.Operator
	switch {
	case p.checkKeyword(token.NOT):
		op = ast.OpNot
	case p.check(token.MINUS):
		op = ast.OpNegate
	default:
		return p.parsePostfixExpr()
	}

	tok := p.advance()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOperation{
		Span:     tok.Span.Cover(operand.NodeSpan()),
		Operator: op,
		Operand:  operand,
	}, nil
}

// parsePostfixExpr parses a primary followed by any number of navigations
// and '@pre' markers.
func (p *Parser) parsePostfixExpr() (ast.Statement, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for !p.isAtEnd() {
		tok := p.peek()
		if nav, ok := navigationOperators[tok.Operator]; ok && tok.Kind == token.OPERATOR {
			p.advance()
			member, err := p.parseMember(tok)
			if err != nil {
				return nil, err
			}
			expr = &ast.BinaryOperation{
				Span:     expr.NodeSpan().Cover(member.Span),
				Left:     expr,
				Operator: nav,
				Right:    member,
			}
			continue
		}

		if tok.Is(token.AT) {
			p.advance()
			pre, err := p.consumeKeyword(token.PRE, "'pre' after '@'")
			if err != nil {
				return nil, err
			}
			expr = &ast.UnaryOperation{
				Span:     expr.NodeSpan().Cover(pre.Span),
				Operator: ast.OpAtPre,
				Operand:  expr,
			}
			continue
		}

		break
	}

	return expr, nil
}

// parseMember parses the right operand of a navigation: a property name or
// a call. Calls after '->' may declare iterator variables.
func (p *Parser) parseMember(nav token.Token) (*ast.RValue, error) {
	name, err := p.consumeIdent("identifier after '" + nav.Operator.String() + "'")
	if err != nil {
		return nil, err
	}
	if !p.check(token.LEFT_PAREN) {
		return &ast.RValue{Span: name.Span, Value: name}, nil
	}
	if nav.Is(token.ARROW) && p.iteratorAhead() {
		call, err := p.parseIteratorCall(name)
		if err != nil {
			return nil, err
		}
		return &ast.RValue{Span: call.Span, Value: call}, nil
	}
	call, err := p.parseCall(name)
	if err != nil {
		return nil, err
	}
	return &ast.RValue{Span: call.Span, Value: call}, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Statement, error) {
	if p.isAtEnd() {
		return nil, p.errorExpected("expression")
	}
	tok := p.peek()

	switch tok.Kind {
	case token.LITERAL:
		p.advance()
		return p.rvalue(p.makeLiteral(tok)), nil

	case token.KEYWORD:
		switch tok.Keyword {
		case token.TRUE, token.FALSE:
			p.advance()
			return p.rvalue(&ast.Literal{Span: tok.Span, Kind: ast.BOOLEAN_LITERAL, Boolean: tok.Keyword == token.TRUE}), nil
		case token.NULL:
			p.advance()
			return p.rvalue(&ast.Literal{Span: tok.Span, Kind: ast.NULL_LITERAL}), nil
		case token.INVALID:
			p.advance()
			return p.rvalue(&ast.Literal{Span: tok.Span, Kind: ast.INVALID_LITERAL}), nil
		case token.SELF:
			p.advance()
			return p.rvalue(&ast.SelfReference{Span: tok.Span}), nil
		case token.IF:
			return p.parseIfExpr()
		case token.LET:
			return p.parseLetExpr()
		}

	case token.IDENTIFIER:
		name := p.makeIdent(p.advance())
		if ast.IsCollectionKind(name.Name) && p.check(token.LEFT_BRACE) {
			lit, err := p.parseCollectionLiteral(name)
			if err != nil {
				return nil, err
			}
			return p.rvalue(lit), nil
		}
		if p.check(token.LEFT_PAREN) {
			call, err := p.parseCall(name)
			if err != nil {
				return nil, err
			}
			return p.rvalue(call), nil
		}
		return p.rvalue(name), nil

	case token.OPERATOR:
		if tok.Is(token.LEFT_PAREN) {
			p.advance()
			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RIGHT_PAREN, "')'"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}

	return nil, p.errorExpected("expression")
}

func (p *Parser) rvalue(v ast.RValueVariant) *ast.RValue {
	return &ast.RValue{Span: v.NodeSpan(), Value: v}
}

func (p *Parser) makeLiteral(tok token.Token) *ast.Literal {
	lit := &ast.Literal{Span: tok.Span}
	switch tok.Literal.Kind {
	case token.INTEGER:
		lit.Kind = ast.INTEGER_LITERAL
		lit.Integer = tok.Literal.Integer
	case token.REAL:
		lit.Kind = ast.REAL_LITERAL
		lit.Real = tok.Literal.Real
	case token.STRING:
		lit.Kind = ast.STRING_LITERAL
		lit.Text = tok.Literal.Value.Text(p.source)
	}
	return lit
}

// parseCall parses '(' args ')' after name.
func (p *Parser) parseCall(name *ast.Identifier) (*ast.FunctionCall, error) {
	if _, err := p.consume(token.LEFT_PAREN, "'('"); err != nil {
		return nil, err
	}
	args, rparen, err := p.parseExprList(token.RIGHT_PAREN, "')'")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{
		Span:      name.Span.Cover(rparen.Span),
		Name:      name,
		Arguments: args,
	}, nil
}

// parseExprList parses a comma-separated, possibly empty list of
// expressions up to and including the closing operator.
func (p *Parser) parseExprList(closing token.Operator, closer string) (ast.ParameterList, token.Token, error) {
	var args ast.ParameterList
	if p.check(closing) {
		return args, p.advance(), nil
	}

	for {
		if p.check(token.COMMA) || p.check(closing) {
			return nil, token.Token{}, errors.MalformedArguments(
				"expected argument expression, found "+p.peek().Describe(p.source),
				p.peek().Span,
			)
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, token.Token{}, err
		}
		args = append(args, arg)

		if p.match(token.COMMA) {
			continue
		}
		end, err := p.consume(closing, "',' or "+closer)
		if err != nil {
			return nil, token.Token{}, err
		}
		return args, end, nil
	}
}

// iteratorAhead reports whether the tokens after the current '(' declare
// iterator variables: ident [':' Type] {',' ident [':' Type]} '|'.
func (p *Parser) iteratorAhead() bool {
	i := p.current + 1
	for {
		if i >= len(p.tokens) || p.tokens[i].Kind != token.IDENTIFIER {
			return false
		}
		i++
		if i < len(p.tokens) && p.tokens[i].Is(token.COLON) {
			var ok bool
			if i, ok = p.skipTypeName(i + 1); !ok {
				return false
			}
		}
		if i >= len(p.tokens) {
			return false
		}
		switch {
		case p.tokens[i].Is(token.PIPE):
			return true
		case p.tokens[i].Is(token.COMMA):
			i++
		default:
			return false
		}
	}
}

// skipTypeName is the lookahead twin of parseTypeName. It returns the
// index just past the type name. Nested type arguments are counted rather
// than recursed into; the real parse enforces the depth limit.
func (p *Parser) skipTypeName(i int) (int, bool) {
	open := 0
	for {
		if i >= len(p.tokens) || p.tokens[i].Kind != token.IDENTIFIER {
			return i, false
		}
		last := p.tokens[i]
		i++
		for i+1 < len(p.tokens) && p.tokens[i].Is(token.DOUBLE_COLON) && p.tokens[i+1].Kind == token.IDENTIFIER {
			last = p.tokens[i+1]
			i += 2
		}
		if i < len(p.tokens) && p.tokens[i].Is(token.LEFT_PAREN) && ast.IsCollectionKind(last.Text(p.source)) {
			open++
			i++
			continue
		}
		break
	}
	for ; open > 0; open-- {
		if i >= len(p.tokens) || !p.tokens[i].Is(token.RIGHT_PAREN) {
			return i, false
		}
		i++
	}
	return i, true
}

// parseIteratorCall parses '(' decls '|' body ')' after name.
func (p *Parser) parseIteratorCall(name *ast.Identifier) (*ast.IteratorCall, error) {
	if _, err := p.consume(token.LEFT_PAREN, "'('"); err != nil {
		return nil, err
	}

	var iterators []*ast.VariableDeclaration
	for {
		decl, err := p.parseVariableDeclaration(false)
		if err != nil {
			return nil, err
		}
		iterators = append(iterators, decl)
		if !p.match(token.COMMA) {
			break
		}
	}

	if _, err := p.consume(token.PIPE, "'|' after iterator variables"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rparen, err := p.consume(token.RIGHT_PAREN, "')'")
	if err != nil {
		return nil, err
	}

	return &ast.IteratorCall{
		Span:      name.Span.Cover(rparen.Span),
		Name:      name,
		Iterators: iterators,
		Body:      body,
	}, nil
}

func (p *Parser) parseCollectionLiteral(kind *ast.Identifier) (*ast.CollectionLiteral, error) {
	if _, err := p.consume(token.LEFT_BRACE, "'{'"); err != nil {
		return nil, err
	}
	lit := &ast.CollectionLiteral{Kind: kind}

	if p.check(token.RIGHT_BRACE) {
		end := p.advance()
		lit.Span = kind.Span.Cover(end.Span)
		return lit, nil
	}

	for {
		first, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := &ast.CollectionItem{Span: first.NodeSpan(), First: first}
		if p.match(token.DOUBLE_DOT) {
			last, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			item.Last = last
			item.Span = item.Span.Cover(last.NodeSpan())
		}
		lit.Items = append(lit.Items, item)

		if p.match(token.COMMA) {
			continue
		}
		end, err := p.consume(token.RIGHT_BRACE, "',' or '}'")
		if err != nil {
			return nil, err
		}
		lit.Span = kind.Span.Cover(end.Span)
		return lit, nil
	}
}

func (p *Parser) parseIfExpr() (ast.Statement, error) {
	start, err := p.consumeKeyword(token.IF, "'if'")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeKeyword(token.THEN, "'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeKeyword(token.ELSE, "'else'"); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	end, err := p.consumeKeyword(token.ENDIF, "'endif'")
	if err != nil {
		return nil, err
	}

	return &ast.IfExpression{
		Span:      start.Span.Cover(end.Span),
		Condition: cond,
		Then:      then,
		Else:      els,
	}, nil
}

func (p *Parser) parseLetExpr() (ast.Statement, error) {
	start, err := p.consumeKeyword(token.LET, "'let'")
	if err != nil {
		return nil, err
	}

	var vars []*ast.VariableDeclaration
	for {
		decl, err := p.parseVariableDeclaration(true)
		if err != nil {
			return nil, err
		}
		vars = append(vars, decl)
		if !p.match(token.COMMA) {
			break
		}
	}

	if _, err := p.consumeKeyword(token.IN, "'in' or ','"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.LetExpression{
		Span:      start.Span.Cover(body.NodeSpan()),
		Variables: vars,
		Body:      body,
	}, nil
}
