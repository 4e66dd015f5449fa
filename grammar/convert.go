package grammar

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"ocl/ast"
	"ocl/token"
)

// converter turns the participle parse tree into the same ast the native
// parser produces, so both engines can be compared by printing.
type converter struct {
	source string
}

func span(pos, end lexer.Position) token.Span {
	return token.Span{From: pos.Offset, To: end.Offset}
}

func (c *converter) unit(u *Unit) (*ast.AbstractSyntaxTree, error) {
	tree := &ast.AbstractSyntaxTree{Source: c.source}
	if u.Context != nil {
		tree.Context = c.context(u.Context)
	}
	if u.Constraint != nil {
		root, err := c.constraint(u.Constraint)
		if err != nil {
			return nil, err
		}
		tree.Root = root
		return tree, nil
	}
	stmt, err := c.expression(u.Expression)
	if err != nil {
		return nil, err
	}
	tree.Root = &ast.Invariant{Span: stmt.NodeSpan(), Statement: stmt}
	return tree, nil
}

func (c *converter) document(d *Document) (*ast.Document, error) {
	doc := &ast.Document{Source: c.source, Span: token.Span{To: len(c.source)}}
	for _, item := range d.Items {
		if item.Package != nil {
			pkg := &ast.Package{
				Span: span(item.Package.Pos, item.Package.EndPos),
				Name: c.typeRef(item.Package.Name),
			}
			for _, block := range item.Package.Contexts {
				b, err := c.contextBlock(block)
				if err != nil {
					return nil, err
				}
				pkg.Contexts = append(pkg.Contexts, b)
			}
			doc.Packages = append(doc.Packages, pkg)
			continue
		}
		b, err := c.contextBlock(item.Context)
		if err != nil {
			return nil, err
		}
		doc.Contexts = append(doc.Contexts, b)
	}
	return doc, nil
}

func (c *converter) contextBlock(b *ContextBlock) (*ast.ContextBlock, error) {
	block := &ast.ContextBlock{
		Span:    span(b.Pos, b.EndPos),
		Context: c.context(b.Context),
	}
	for _, con := range b.Constraints {
		converted, err := c.constraint(con)
		if err != nil {
			return nil, err
		}
		block.Constraints = append(block.Constraints, converted)
	}
	return block, nil
}

func (c *converter) ident(id *PosIdent) *ast.Identifier {
	if id == nil {
		return nil
	}
	return &ast.Identifier{Span: span(id.Pos, id.EndPos), Name: id.Value}
}

func (c *converter) idents(ids []*PosIdent) []*ast.Identifier {
	out := make([]*ast.Identifier, len(ids))
	for i, id := range ids {
		out[i] = c.ident(id)
	}
	return out
}

func (c *converter) context(d *ContextDecl) *ast.ContextDeclaration {
	decl := &ast.ContextDeclaration{
		Span:     span(d.Pos, d.EndPos),
		Instance: c.ident(d.Instance),
	}
	path := c.idents(d.Path)
	owner := path
	if d.Operation != nil || d.Property != nil {
		owner = path[:len(path)-1]
	}
	if len(owner) > 0 {
		decl.Type = &ast.TypeName{Span: owner[0].Span.Cover(owner[len(owner)-1].Span), Path: owner}
	}

	name := path[len(path)-1]
	switch {
	case d.Operation != nil:
		decl.Operation = &ast.OperationSignature{
			Span:       name.Span.Cover(span(d.Operation.Pos, d.Operation.EndPos)),
			Name:       name,
			Parameters: c.varDecls(d.Operation.Params),
		}
		if d.Operation.Result != nil {
			decl.Operation.Result = c.typeRef(d.Operation.Result)
		}
	case d.Property != nil:
		typ := c.typeRef(d.Property.Type)
		decl.Property = &ast.PropertySignature{Span: name.Span.Cover(typ.Span), Name: name, Type: typ}
	}
	return decl
}

func (c *converter) typeRef(t *TypeRef) *ast.TypeName {
	if t == nil {
		return nil
	}
	typ := &ast.TypeName{Span: span(t.Pos, t.EndPos), Path: c.idents(t.Path)}
	if t.Argument != nil {
		typ.Argument = c.typeRef(t.Argument)
	}
	return typ
}

func (c *converter) varDecls(decls []*VarDecl) []*ast.VariableDeclaration {
	out := make([]*ast.VariableDeclaration, 0, len(decls))
	for _, d := range decls {
		out = append(out, &ast.VariableDeclaration{
			Span: span(d.Pos, d.EndPos),
			Name: c.ident(d.Name),
			Type: c.typeRef(d.Type),
		})
	}
	return out
}

func (c *converter) constraint(con *Constraint) (ast.Constraint, error) {
	if d := con.Definition; d != nil {
		stmt, err := c.expression(d.Expression)
		if err != nil {
			return nil, err
		}
		def := &ast.Definition{
			Span:      span(d.Pos, d.EndPos),
			Name:      c.ident(d.Name),
			Static:    d.Static,
			Variable:  c.ident(d.Variable),
			Type:      c.typeRef(d.Type),
			Statement: stmt,
		}
		if d.Params != nil {
			def.Operation = true
			def.Parameters = c.varDecls(d.Params.Params)
		}
		return def, nil
	}

	s := con.Stereotyped
	stmt, err := c.expression(s.Expression)
	if err != nil {
		return nil, err
	}
	kw, _ := token.LookupKeyword(s.Stereotype)
	return ast.NewConstraint(kw, span(s.Pos, s.EndPos), c.ident(s.Name), stmt), nil
}

func binary(left ast.Statement, op ast.Operator, right ast.Statement) ast.Statement {
	return &ast.BinaryOperation{
		Span:     left.NodeSpan().Cover(right.NodeSpan()),
		Left:     left,
		Operator: op,
		Right:    right,
	}
}

var grammarOperators = map[string]ast.Operator{
	"or": ast.OpOr, "xor": ast.OpXor,
	"=": ast.OpEqual, "<>": ast.OpNotEqual,
	"<": ast.OpLess, ">": ast.OpGreater, "<=": ast.OpLessEqual, ">=": ast.OpGreaterEqual,
	"+": ast.OpAdd, "-": ast.OpSubtract,
	"*": ast.OpMultiply, "/": ast.OpDivide,
	".": ast.OpDot, "->": ast.OpArrow, "::": ast.OpDoubleColon,
}

func (c *converter) expression(e *Expression) (ast.Statement, error) {
	left, err := c.or(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Ops {
		right, err := c.or(r)
		if err != nil {
			return nil, err
		}
		left = binary(left, ast.OpImplies, right)
	}
	return left, nil
}

func (c *converter) or(e *OrExpr) (ast.Statement, error) {
	left, err := c.and(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.and(op.Right)
		if err != nil {
			return nil, err
		}
		left = binary(left, grammarOperators[op.Operator], right)
	}
	return left, nil
}

func (c *converter) and(e *AndExpr) (ast.Statement, error) {
	left, err := c.equality(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Ops {
		right, err := c.equality(r)
		if err != nil {
			return nil, err
		}
		left = binary(left, ast.OpAnd, right)
	}
	return left, nil
}

func (c *converter) equality(e *EqualityExpr) (ast.Statement, error) {
	left, err := c.relational(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.relational(op.Right)
		if err != nil {
			return nil, err
		}
		left = binary(left, grammarOperators[op.Operator], right)
	}
	return left, nil
}

func (c *converter) relational(e *RelationalExpr) (ast.Statement, error) {
	left, err := c.additive(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.additive(op.Right)
		if err != nil {
			return nil, err
		}
		left = binary(left, grammarOperators[op.Operator], right)
	}
	return left, nil
}

func (c *converter) additive(e *AdditiveExpr) (ast.Statement, error) {
	left, err := c.multiplicative(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.multiplicative(op.Right)
		if err != nil {
			return nil, err
		}
		left = binary(left, grammarOperators[op.Operator], right)
	}
	return left, nil
}

func (c *converter) multiplicative(e *MultiplicativeExpr) (ast.Statement, error) {
	left, err := c.unary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := c.unary(op.Right)
		if err != nil {
			return nil, err
		}
		left = binary(left, grammarOperators[op.Operator], right)
	}
	return left, nil
}

func (c *converter) unary(e *UnaryExpr) (ast.Statement, error) {
	if e.Postfix != nil {
		return c.postfix(e.Postfix)
	}
	operand, err := c.unary(e.Operand)
	if err != nil {
		return nil, err
	}
	op := ast.OpNegate
	if *e.Operator == "not" {
		op = ast.OpNot
	}
	return &ast.UnaryOperation{
		Span:     token.Span{From: e.Pos.Offset, To: operand.NodeSpan().To},
		Operator: op,
		Operand:  operand,
	}, nil
}

func (c *converter) postfix(e *PostfixExpr) (ast.Statement, error) {
	expr, err := c.primary(e.Primary)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		if op.AtPre {
			expr = &ast.UnaryOperation{
				Span:     token.Span{From: expr.NodeSpan().From, To: op.EndPos.Offset},
				Operator: ast.OpAtPre,
				Operand:  expr,
			}
			continue
		}
		member, err := c.member(op.Member)
		if err != nil {
			return nil, err
		}
		expr = binary(expr, grammarOperators[op.Navigation], member)
	}
	return expr, nil
}

func rvalue(v ast.RValueVariant) *ast.RValue {
	return &ast.RValue{Span: v.NodeSpan(), Value: v}
}

func (c *converter) member(m *Member) (*ast.RValue, error) {
	name := c.ident(m.Name)
	if m.Call == nil {
		return rvalue(name), nil
	}
	callSpan := token.Span{From: m.Pos.Offset, To: m.Call.EndPos.Offset}

	if m.Call.Body != nil {
		body, err := c.expression(m.Call.Body)
		if err != nil {
			return nil, err
		}
		call := &ast.IteratorCall{Span: callSpan, Name: name, Body: body}
		for _, it := range m.Call.Iterators {
			call.Iterators = append(call.Iterators, &ast.VariableDeclaration{
				Span: span(it.Pos, it.EndPos),
				Name: c.ident(it.Name),
				Type: c.typeRef(it.Type),
			})
		}
		return rvalue(call), nil
	}

	call := &ast.FunctionCall{Span: callSpan, Name: name}
	for _, arg := range m.Call.Arguments {
		converted, err := c.expression(arg)
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, converted)
	}
	return rvalue(call), nil
}

func (c *converter) primary(p *Primary) (ast.Statement, error) {
	sp := span(p.Pos, p.EndPos)
	switch {
	case p.Real != nil:
		v, err := strconv.ParseFloat(*p.Real, 64)
		if err != nil {
			return nil, numberError(sp, false)
		}
		return rvalue(&ast.Literal{Span: sp, Kind: ast.REAL_LITERAL, Real: v}), nil
	case p.Integer != nil:
		v, err := strconv.ParseInt(*p.Integer, 10, 64)
		if err != nil {
			return nil, numberError(sp, true)
		}
		return rvalue(&ast.Literal{Span: sp, Kind: ast.INTEGER_LITERAL, Integer: v}), nil
	case p.String != nil:
		text := *p.String
		return rvalue(&ast.Literal{Span: sp, Kind: ast.STRING_LITERAL, Text: text[1 : len(text)-1]}), nil
	case p.Boolean != nil:
		return rvalue(&ast.Literal{Span: sp, Kind: ast.BOOLEAN_LITERAL, Boolean: *p.Boolean == "true"}), nil
	case p.Null:
		return rvalue(&ast.Literal{Span: sp, Kind: ast.NULL_LITERAL}), nil
	case p.Invalid:
		return rvalue(&ast.Literal{Span: sp, Kind: ast.INVALID_LITERAL}), nil
	case p.Self:
		return rvalue(&ast.SelfReference{Span: sp}), nil
	case p.If != nil:
		return c.ifExpr(p.If)
	case p.Let != nil:
		return c.letExpr(p.Let)
	case p.Collection != nil:
		return c.collection(p.Collection)
	case p.Member != nil:
		return c.member(p.Member)
	}
	return c.expression(p.Parens)
}

func (c *converter) ifExpr(e *IfExpr) (ast.Statement, error) {
	cond, err := c.expression(e.Condition)
	if err != nil {
		return nil, err
	}
	then, err := c.expression(e.Then)
	if err != nil {
		return nil, err
	}
	els, err := c.expression(e.Else)
	if err != nil {
		return nil, err
	}
	return &ast.IfExpression{Span: span(e.Pos, e.EndPos), Condition: cond, Then: then, Else: els}, nil
}

func (c *converter) letExpr(e *LetExpr) (ast.Statement, error) {
	let := &ast.LetExpression{Span: span(e.Pos, e.EndPos)}
	for _, v := range e.Variables {
		decl := &ast.VariableDeclaration{
			Span: span(v.Pos, v.EndPos),
			Name: c.ident(v.Name),
			Type: c.typeRef(v.Type),
		}
		if v.Init != nil {
			value, err := c.expression(v.Init)
			if err != nil {
				return nil, err
			}
			decl.Init = value
		}
		let.Variables = append(let.Variables, decl)
	}
	body, err := c.expression(e.Body)
	if err != nil {
		return nil, err
	}
	let.Body = body
	return let, nil
}

func (c *converter) collection(e *CollectionLiteral) (ast.Statement, error) {
	lit := &ast.CollectionLiteral{
		Span: span(e.Pos, e.EndPos),
		Kind: &ast.Identifier{Span: span(e.Kind.Pos, e.Kind.EndPos), Name: e.Kind.Value},
	}
	for _, item := range e.Items {
		first, err := c.expression(item.First)
		if err != nil {
			return nil, err
		}
		converted := &ast.CollectionItem{Span: span(item.Pos, item.EndPos), First: first}
		if item.Last != nil {
			last, err := c.expression(item.Last)
			if err != nil {
				return nil, err
			}
			converted.Last = last
		}
		lit.Items = append(lit.Items, converted)
	}
	return rvalue(lit), nil
}
