package ast

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/token"
)

func sp(from, to int) token.Span { return token.Span{From: from, To: to} }

func ident(name string, from int) *Identifier {
	return &Identifier{Span: sp(from, from+len(name)), Name: name}
}

func rv(v RValueVariant) *RValue {
	return &RValue{Span: v.NodeSpan(), Value: v}
}

func intLit(v int64, from, to int) *RValue {
	return rv(&Literal{Span: sp(from, to), Kind: INTEGER_LITERAL, Integer: v})
}

// self.age > 18  (offsets as in 'context c : Company inv: self.age > 18')
func sampleTree() *AbstractSyntaxTree {
	src := "context c : Company inv: self.age > 18"
	nav := &BinaryOperation{
		Span:     sp(25, 33),
		Left:     rv(&SelfReference{Span: sp(25, 29)}),
		Operator: OpDot,
		Right:    rv(ident("age", 30)),
	}
	cmp := &BinaryOperation{Span: sp(25, 38), Left: nav, Operator: OpGreater, Right: intLit(18, 36, 38)}
	return &AbstractSyntaxTree{
		Source: src,
		Context: &ContextDeclaration{
			Span:     sp(0, 19),
			Instance: ident("c", 8),
			Type:     &TypeName{Span: sp(12, 19), Path: []*Identifier{ident("Company", 12)}},
		},
		Root: &Invariant{Span: sp(20, 38), Statement: cmp},
	}
}

func TestTreeString(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, "context c : Company inv: (self.age > 18)", tree.String())
	assert.Equal(t, "self", tree.Text(sp(25, 29)))
}

func TestTreeStringWithoutContext(t *testing.T) {
	tree := sampleTree()
	tree.Context = nil
	assert.Equal(t, "inv: (self.age > 18)", tree.String())
}

func TestOperatorPrinting(t *testing.T) {
	one := intLit(1, 0, 1)
	two := intLit(2, 4, 5)

	tests := []struct {
		name string
		node Statement
		want string
	}{
		{"add", &BinaryOperation{Left: one, Operator: OpAdd, Right: two}, "(1 + 2)"},
		{"implies", &BinaryOperation{Left: one, Operator: OpImplies, Right: two}, "(1 implies 2)"},
		{"arrow", &BinaryOperation{Left: rv(ident("xs", 0)), Operator: OpArrow, Right: rv(&FunctionCall{Name: ident("size", 4)})}, "xs->size()"},
		{"path", &BinaryOperation{Left: rv(ident("A", 0)), Operator: OpDoubleColon, Right: rv(ident("B", 3))}, "A::B"},
		{"negate", &UnaryOperation{Operator: OpNegate, Operand: one}, "(-1)"},
		{"not", &UnaryOperation{Operator: OpNot, Operand: rv(&Literal{Kind: BOOLEAN_LITERAL, Boolean: true})}, "(not true)"},
		{"at pre", &UnaryOperation{Operator: OpAtPre, Operand: rv(ident("x", 0))}, "x@pre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestLiteralPrinting(t *testing.T) {
	tests := []struct {
		lit  *Literal
		want string
	}{
		{&Literal{Kind: INTEGER_LITERAL, Integer: 42}, "42"},
		{&Literal{Kind: REAL_LITERAL, Real: 1.5}, "1.5"},
		{&Literal{Kind: REAL_LITERAL, Real: 2}, "2.0"},
		{&Literal{Kind: STRING_LITERAL, Text: "abc"}, `"abc"`},
		{&Literal{Kind: BOOLEAN_LITERAL, Boolean: false}, "false"},
		{&Literal{Kind: NULL_LITERAL}, "null"},
		{&Literal{Kind: INVALID_LITERAL}, "invalid"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.lit.String())
	}
}

func TestCompoundPrinting(t *testing.T) {
	x := ident("x", 4)
	let := &LetExpression{
		Variables: []*VariableDeclaration{{
			Name: x,
			Type: &TypeName{Path: []*Identifier{ident("Integer", 8)}},
			Init: intLit(1, 18, 19),
		}},
		Body: rv(ident("x", 23)),
	}
	assert.Equal(t, "let x : Integer = 1 in x", let.String())

	ifExpr := &IfExpression{
		Condition: rv(&Literal{Kind: BOOLEAN_LITERAL, Boolean: true}),
		Then:      intLit(1, 0, 1),
		Else:      intLit(2, 0, 1),
	}
	assert.Equal(t, "if true then 1 else 2 endif", ifExpr.String())

	coll := &CollectionLiteral{
		Kind: ident("Set", 0),
		Items: []*CollectionItem{
			{First: intLit(1, 4, 5)},
			{First: intLit(2, 7, 8), Last: intLit(5, 10, 11)},
		},
	}
	assert.Equal(t, "Set{1, 2..5}", coll.String())

	iter := &IteratorCall{
		Name:      ident("forAll", 0),
		Iterators: []*VariableDeclaration{{Name: ident("e", 7), Type: &TypeName{Path: []*Identifier{ident("Employee", 11)}}}},
		Body:      rv(ident("ok", 22)),
	}
	assert.Equal(t, "forAll(e : Employee | ok)", iter.String())
}

func TestContextPrinting(t *testing.T) {
	company := &TypeName{Path: []*Identifier{ident("Company", 8)}}
	op := &ContextDeclaration{
		Type: company,
		Operation: &OperationSignature{
			Name:       ident("hire", 17),
			Parameters: []*VariableDeclaration{{Name: ident("p", 22), Type: &TypeName{Path: []*Identifier{ident("Person", 26)}}}},
			Result:     &TypeName{Path: []*Identifier{ident("Boolean", 36)}},
		},
	}
	assert.Equal(t, "context Company::hire(p : Person) : Boolean", op.String())

	prop := &ContextDeclaration{
		Type:     company,
		Property: &PropertySignature{Name: ident("size", 17), Type: &TypeName{Path: []*Identifier{ident("Integer", 24)}}},
	}
	assert.Equal(t, "context Company::size : Integer", prop.String())

	qualified := &TypeName{Path: []*Identifier{ident("pkg", 0), ident("Company", 5)}}
	assert.Equal(t, "pkg::Company", qualified.String())
	assert.Equal(t, "Company", qualified.Name())
}

func TestDefinitionPrinting(t *testing.T) {
	def := &Definition{
		Static:    true,
		Variable:  ident("twice", 0),
		Operation: true,
		Parameters: []*VariableDeclaration{
			{Name: ident("n", 0), Type: &TypeName{Path: []*Identifier{ident("Integer", 0)}}},
		},
		Type:      &TypeName{Path: []*Identifier{ident("Integer", 0)}},
		Statement: &BinaryOperation{Left: rv(ident("n", 0)), Operator: OpMultiply, Right: intLit(2, 0, 1)},
	}
	assert.Equal(t, "static def: twice(n : Integer) : Integer = (n * 2)", def.String())
	assert.Equal(t, token.DEF, def.Stereotype())
}

func TestNewConstraint(t *testing.T) {
	body := intLit(1, 0, 1)
	for _, kw := range []token.Keyword{token.INV, token.PRE, token.POST, token.BODY, token.DERIVE, token.INIT} {
		c := NewConstraint(kw, sp(0, 1), nil, body)
		require.NotNil(t, c, kw.String())
		assert.Equal(t, kw, c.Stereotype())
		assert.Same(t, body, c.Expression())
	}
	assert.Nil(t, NewConstraint(token.DEF, sp(0, 1), nil, body))
	assert.Nil(t, NewConstraint(token.IF, sp(0, 1), nil, body))

	named := NewConstraint(token.PRE, sp(0, 1), ident("ok", 4), body)
	assert.Equal(t, "pre ok: 1", named.String())
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	tree := sampleTree()
	var types []NodeType
	tree.Inspect(func(n Node) bool {
		types = append(types, n.NodeType())
		return true
	})
	assert.Equal(t, []NodeType{
		CONTEXT_DECLARATION, IDENTIFIER, TYPE_NAME, IDENTIFIER,
		INVARIANT, BINARY_OPERATION, BINARY_OPERATION, RVALUE, SELF_REFERENCE,
		RVALUE, IDENTIFIER, RVALUE, LITERAL,
	}, types)
}

func TestInspectPrune(t *testing.T) {
	tree := sampleTree()
	count := 0
	Inspect(tree.Root, func(n Node) bool {
		count++
		return n.NodeType() != BINARY_OPERATION
	})
	assert.Equal(t, 2, count)
}

func TestChildrenSpansAreNested(t *testing.T) {
	tree := sampleTree()
	Inspect(tree.Root, func(n Node) bool {
		parent := n.NodeSpan()
		for _, child := range Children(n) {
			cs := child.NodeSpan()
			assert.LessOrEqual(t, parent.From, cs.From)
			assert.LessOrEqual(t, cs.To, parent.To)
		}
		return true
	})
}

func TestDocumentOrdering(t *testing.T) {
	block := func(from int, name string) *ContextBlock {
		return &ContextBlock{
			Span:    sp(from, from+10),
			Context: &ContextDeclaration{Span: sp(from, from+10), Type: &TypeName{Path: []*Identifier{ident(name, from+8)}}},
			Constraints: []Constraint{
				&Invariant{Span: sp(from, from+10), Statement: intLit(1, from+9, from+10)},
			},
		}
	}
	doc := &Document{
		Packages: []*Package{{
			Span:     sp(20, 60),
			Name:     &TypeName{Path: []*Identifier{ident("p", 28)}},
			Contexts: []*ContextBlock{block(30, "B")},
		}},
		Contexts: []*ContextBlock{block(0, "A"), block(70, "C")},
	}

	var names []string
	for _, b := range doc.AllContexts() {
		names = append(names, b.Context.Type.Name())
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Len(t, doc.Constraints(), 3)
	assert.Len(t, doc.Blocks(), 3)
	assert.Contains(t, doc.String(), "package p\n  context B\n    inv: 1\nendpackage")
}

func TestDumpJSON(t *testing.T) {
	d := Dump(sampleTree().Root)
	require.NotNil(t, d)
	assert.Equal(t, "Invariant", d.Type)
	require.Len(t, d.Children, 1)
	assert.Equal(t, ">", d.Children[0].Value)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"BinaryOperation"`)
	assert.Contains(t, string(data), `"value":"age"`)
}

func TestDumpMsgpack(t *testing.T) {
	d := DumpTree(sampleTree())
	var buf bytes.Buffer
	require.NoError(t, WriteMsgpack(&buf, d))

	back, err := ReadMsgpack(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}
