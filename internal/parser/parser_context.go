package parser

import (
	"ocl/ast"
	"ocl/token"
)

const stereotypeExpected = "constraint stereotype ('inv', 'pre', 'post', 'body', 'derive', 'init' or 'def')"

// parseContextDeclaration parses one of
//
//	context Type
//	context name : Type
//	context Type::operation(p : P, ...) [: Result]
//	context Type::property : Type
func (p *Parser) parseContextDeclaration() (*ast.ContextDeclaration, error) {
	start, err := p.consumeKeyword(token.CONTEXT, "'context'")
	if err != nil {
		return nil, err
	}

	first, err := p.consumeIdent("context type name")
	if err != nil {
		return nil, err
	}

	decl := &ast.ContextDeclaration{}
	if p.match(token.COLON) {
		decl.Instance = first
		if first, err = p.consumeIdent("type name after ':'"); err != nil {
			return nil, err
		}
	}

	path := []*ast.Identifier{first}
	for p.match(token.DOUBLE_COLON) {
		next, err := p.consumeIdent("identifier after '::'")
		if err != nil {
			return nil, err
		}
		path = append(path, next)
	}

	switch {
	case len(path) > 1 && p.check(token.LEFT_PAREN):
		owner := path[:len(path)-1]
		decl.Type = pathTypeName(owner)
		op, err := p.parseOperationSignature(path[len(path)-1])
		if err != nil {
			return nil, err
		}
		decl.Operation = op
		decl.Span = start.Span.Cover(op.Span)

	case len(path) > 1 && p.check(token.COLON):
		owner := path[:len(path)-1]
		decl.Type = pathTypeName(owner)
		p.advance()
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		name := path[len(path)-1]
		decl.Property = &ast.PropertySignature{
			Span: name.Span.Cover(typ.Span),
			Name: name,
			Type: typ,
		}
		decl.Span = start.Span.Cover(typ.Span)

	default:
		decl.Type = pathTypeName(path)
		decl.Span = start.Span.Cover(decl.Type.Span)
	}

	return decl, nil
}

func pathTypeName(path []*ast.Identifier) *ast.TypeName {
	return &ast.TypeName{
		Span: path[0].Span.Cover(path[len(path)-1].Span),
		Path: path,
	}
}

func (p *Parser) parseOperationSignature(name *ast.Identifier) (*ast.OperationSignature, error) {
	params, rparen, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	op := &ast.OperationSignature{
		Span:       name.Span.Cover(rparen.Span),
		Name:       name,
		Parameters: params,
	}
	if p.match(token.COLON) {
		result, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		op.Result = result
		op.Span = op.Span.Cover(result.Span)
	}
	return op, nil
}

// parseParameters parses '(' [decl {',' decl}] ')'.
func (p *Parser) parseParameters() ([]*ast.VariableDeclaration, token.Token, error) {
	if _, err := p.consume(token.LEFT_PAREN, "'('"); err != nil {
		return nil, token.Token{}, err
	}
	var params []*ast.VariableDeclaration
	if p.check(token.RIGHT_PAREN) {
		return params, p.advance(), nil
	}
	for {
		param, err := p.parseVariableDeclaration(false)
		if err != nil {
			return nil, token.Token{}, err
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	rparen, err := p.consume(token.RIGHT_PAREN, "',' or ')'")
	if err != nil {
		return nil, token.Token{}, err
	}
	return params, rparen, nil
}

// parseTypeName parses 'Name {:: Name}' with an optional '(Type)' argument
// on collection types.
func (p *Parser) parseTypeName() (*ast.TypeName, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	first, err := p.consumeIdent("type name")
	if err != nil {
		return nil, err
	}
	path := []*ast.Identifier{first}
	for p.check(token.DOUBLE_COLON) {
		p.advance()
		next, err := p.consumeIdent("identifier after '::'")
		if err != nil {
			return nil, err
		}
		path = append(path, next)
	}
	typ := pathTypeName(path)

	if ast.IsCollectionKind(typ.Name()) && p.match(token.LEFT_PAREN) {
		arg, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		rparen, err := p.consume(token.RIGHT_PAREN, "')'")
		if err != nil {
			return nil, err
		}
		typ.Argument = arg
		typ.Span = typ.Span.Cover(rparen.Span)
	}
	return typ, nil
}

// parseVariableDeclaration parses 'name [: Type]'. With withInit the
// declaration must also carry '= expr', as in let.
func (p *Parser) parseVariableDeclaration(withInit bool) (*ast.VariableDeclaration, error) {
	name, err := p.consumeIdent("variable name")
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{Span: name.Span, Name: name}

	if p.match(token.COLON) {
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		decl.Type = typ
		decl.Span = decl.Span.Cover(typ.Span)
	}

	if withInit {
		if _, err := p.consume(token.EQUAL, "'='"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = value
		decl.Span = decl.Span.Cover(value.NodeSpan())
	}
	return decl, nil
}

func (p *Parser) checkConstraintStart() bool {
	if p.isAtEnd() || p.peek().Kind != token.KEYWORD {
		return false
	}
	return p.peek().Keyword.IsStereotype() || p.peek().Keyword == token.STATIC
}

// parseConstraint parses 'stereotype [name] : expr' or a definition.
func (p *Parser) parseConstraint() (ast.Constraint, error) {
	if p.checkKeyword(token.STATIC) {
		start := p.advance()
		if !p.checkKeyword(token.DEF) {
			return nil, p.errorExpected("'def' after 'static'")
		}
		p.advance()
		return p.parseDefinition(start.Span, true)
	}

	if !p.checkConstraintStart() {
		return nil, p.errorExpected(stereotypeExpected)
	}
	kw := p.advance()
	if kw.Keyword == token.DEF {
		return p.parseDefinition(kw.Span, false)
	}

	var name *ast.Identifier
	if p.checkIdentifier() {
		name = p.makeIdent(p.advance())
	}
	if _, err := p.consume(token.COLON, "':'"); err != nil {
		return nil, err
	}

	stmt, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewConstraint(kw.Keyword, kw.Span.Cover(stmt.NodeSpan()), name, stmt), nil
}

// parseDefinition parses the rest of '[static] def [name] : var[(params)] [: Type] = expr'.
func (p *Parser) parseDefinition(start token.Span, static bool) (*ast.Definition, error) {
	def := &ast.Definition{Static: static}

	if p.checkIdentifier() {
		def.Name = p.makeIdent(p.advance())
	}
	if _, err := p.consume(token.COLON, "':'"); err != nil {
		return nil, err
	}

	variable, err := p.consumeIdent("defined name")
	if err != nil {
		return nil, err
	}
	def.Variable = variable

	if p.check(token.LEFT_PAREN) {
		params, _, err := p.parseParameters()
		if err != nil {
			return nil, err
		}
		def.Operation = true
		def.Parameters = params
	}

	if p.match(token.COLON) {
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		def.Type = typ
	}

	if _, err := p.consume(token.EQUAL, "'='"); err != nil {
		return nil, err
	}
	stmt, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	def.Statement = stmt
	def.Span = start.Cover(stmt.NodeSpan())
	return def, nil
}

// parseContextBlock parses a context declaration and every constraint that
// follows it.
func (p *Parser) parseContextBlock() (*ast.ContextBlock, error) {
	decl, err := p.parseContextDeclaration()
	if err != nil {
		return nil, err
	}
	block := &ast.ContextBlock{Span: decl.Span, Context: decl}

	for {
		c, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		block.Constraints = append(block.Constraints, c)
		block.Span = block.Span.Cover(c.NodeSpan())
		if !p.checkConstraintStart() {
			return block, nil
		}
	}
}

func (p *Parser) parsePackage() (*ast.Package, error) {
	start, err := p.consumeKeyword(token.PACKAGE, "'package'")
	if err != nil {
		return nil, err
	}
	name, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	pkg := &ast.Package{Name: name}

	for p.checkKeyword(token.CONTEXT) {
		block, err := p.parseContextBlock()
		if err != nil {
			return nil, err
		}
		pkg.Contexts = append(pkg.Contexts, block)
	}

	end, err := p.consumeKeyword(token.ENDPACKAGE, "'context' or 'endpackage'")
	if err != nil {
		return nil, err
	}
	pkg.Span = start.Span.Cover(end.Span)
	return pkg, nil
}
