package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/ast"
	"ocl/internal/errors"
	"ocl/token"
)

func parse(t *testing.T, source string) *ast.AbstractSyntaxTree {
	t.Helper()
	tree, err := Parse(source)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func parseError(t *testing.T, source string) *errors.FrontEndError {
	t.Helper()
	tree, err := Parse(source)
	require.Error(t, err)
	assert.Nil(t, tree, "no partial tree on error")

	var fe *errors.FrontEndError
	require.True(t, stderrors.As(err, &fe))
	return fe
}

func TestParseBareExpression(t *testing.T) {
	tree := parse(t, "self.numberOfEmployees > 50")

	assert.Nil(t, tree.Context)
	inv, ok := tree.Root.(*ast.Invariant)
	require.True(t, ok)
	assert.Nil(t, inv.Name)

	cmp, ok := inv.Statement.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ast.OpGreater, cmp.Operator)

	nav, ok := cmp.Left.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ast.OpDot, nav.Operator)
	assert.IsType(t, &ast.SelfReference{}, ast.Value(nav.Left))
	assert.Equal(t, "numberOfEmployees", ast.Value(nav.Right).(*ast.Identifier).Name)

	lit, ok := ast.Value(cmp.Right).(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.INTEGER_LITERAL, lit.Kind)
	assert.Equal(t, int64(50), lit.Integer)
}

func TestParseContextInvariant(t *testing.T) {
	tree := parse(t, "context Company inv:\nself.numberOfEmployees > 50")

	require.NotNil(t, tree.Context)
	assert.Nil(t, tree.Context.Instance)
	assert.Equal(t, "Company", tree.Context.Type.Name())

	inv, ok := tree.Root.(*ast.Invariant)
	require.True(t, ok)
	assert.Nil(t, inv.Name)

	bare := parse(t, "self.numberOfEmployees > 50")
	assert.Equal(t, bare.Root.Expression().String(), inv.Statement.String())
	assert.Equal(t, "context Company inv: (self.numberOfEmployees > 50)", tree.String())
}

func TestParseNamedInstanceAndConstraint(t *testing.T) {
	tree := parse(t, "context c : Company inv enoughEmployees:\nc.numberOfEmployees > 50")

	require.NotNil(t, tree.Context.Instance)
	assert.Equal(t, "c", tree.Context.Instance.Name)
	assert.Equal(t, "Company", tree.Context.Type.Name())

	inv, ok := tree.Root.(*ast.Invariant)
	require.True(t, ok)
	require.NotNil(t, inv.Name)
	assert.Equal(t, "enoughEmployees", inv.Name.Name)

	cmp := inv.Statement.(*ast.BinaryOperation)
	nav := cmp.Left.(*ast.BinaryOperation)
	assert.Equal(t, "c", ast.Value(nav.Left).(*ast.Identifier).Name)
	assert.Equal(t, "(c.numberOfEmployees > 50)", inv.Statement.String())
}

func TestParseConstraintKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Keyword
		want  string
	}{
		{
			"context Company::hire(p : Person) : Boolean pre: p.age >= 18",
			token.PRE,
			"context Company::hire(p : Person) : Boolean pre: (p.age >= 18)",
		},
		{
			"context Company::hire(p : Person) post hired: employees->includes(p)",
			token.POST,
			"context Company::hire(p : Person) post hired: employees->includes(p)",
		},
		{
			"context Company::headcount() : Integer body: employees->size()",
			token.BODY,
			"context Company::headcount() : Integer body: employees->size()",
		},
		{
			"context Company::size : Integer derive: employees->size()",
			token.DERIVE,
			"context Company::size : Integer derive: employees->size()",
		},
		{
			"context Person::age : Integer init: 0",
			token.INIT,
			"context Person::age : Integer init: 0",
		},
		{
			"context Person def: isAdult : Boolean = age >= 18",
			token.DEF,
			"context Person def: isAdult : Boolean = (age >= 18)",
		},
		{
			"context Person def helper: twice(n : Integer) : Integer = n * 2",
			token.DEF,
			"context Person def helper: twice(n : Integer) : Integer = (n * 2)",
		},
		{
			"context Person static def: zero : Integer = 0",
			token.DEF,
			"context Person static def: zero : Integer = 0",
		},
		{
			"inv: 1 = 1",
			token.INV,
			"inv: (1 = 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := parse(t, tt.input)
			assert.Equal(t, tt.kind, tree.Root.Stereotype())
			assert.Equal(t, tt.want, tree.String())
		})
	}
}

func TestParseOperationContext(t *testing.T) {
	tree := parse(t, "context pkg::Company::hire(p : Person, q : Set(Person)) : Boolean pre: true")

	ctx := tree.Context
	require.NotNil(t, ctx.Operation)
	assert.Nil(t, ctx.Property)
	assert.Equal(t, "pkg::Company", ctx.Type.String())
	assert.Equal(t, "hire", ctx.Operation.Name.Name)
	require.Len(t, ctx.Operation.Parameters, 2)
	assert.Equal(t, "p", ctx.Operation.Parameters[0].Name.Name)
	assert.Equal(t, "Set(Person)", ctx.Operation.Parameters[1].Type.String())
	assert.Equal(t, "Person", ctx.Operation.Parameters[1].Type.Argument.Name())
	assert.Equal(t, "Boolean", ctx.Operation.Result.Name())
}

func TestParseDefinitionShape(t *testing.T) {
	tree := parse(t, "context Person def helper: twice(n : Integer) : Integer = n * 2")

	def, ok := tree.Root.(*ast.Definition)
	require.True(t, ok)
	assert.False(t, def.Static)
	assert.True(t, def.Operation)
	assert.Equal(t, "helper", def.Name.Name)
	assert.Equal(t, "twice", def.Variable.Name)
	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "Integer", def.Type.Name())
}

func TestParseSpans(t *testing.T) {
	src := "context c : Company inv enoughEmployees:\nc.numberOfEmployees > 50"
	tree := parse(t, src)

	assert.Equal(t, token.Span{From: 0, To: 19}, tree.Context.Span)
	assert.Equal(t, 20, tree.Root.NodeSpan().From)
	assert.Equal(t, len(src), tree.Root.NodeSpan().To)
	assert.Equal(t, "enoughEmployees", tree.Text(tree.Root.ConstraintName().Span))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
		from    int
		to      int
	}{
		{"dangling operator", "a +", errors.ErrorUnexpectedEnd, "expected expression, found end of input", 3, 3},
		{"unclosed paren", "(a + b", errors.ErrorUnexpectedEnd, "expected ')', found end of input", 6, 6},
		{"missing operand", "a + )", errors.ErrorUnexpectedToken, "expected expression, found ')'", 4, 5},
		{"trailing comma", "f(1,)", errors.ErrorMalformedArguments, "expected argument expression, found ')'", 4, 5},
		{"leading comma", "f(,1)", errors.ErrorMalformedArguments, "expected argument expression, found ','", 2, 3},
		{"missing comma", "f(1 2)", errors.ErrorUnexpectedToken, "expected ',' or ')', found integer literal 2", 4, 5},
		{"trailing input", "a b", errors.ErrorUnexpectedToken, "expected end of input, found identifier 'b'", 2, 3},
		{"missing type", "context inv: x", errors.ErrorUnexpectedToken, "expected context type name, found 'inv'", 8, 11},
		{"missing stereotype", "context Company x", errors.ErrorUnexpectedToken, "expected " + stereotypeExpected + ", found identifier 'x'", 16, 17},
		{"missing colon", "context Company inv x", errors.ErrorUnexpectedEnd, "expected ':', found end of input", 21, 21},
		{"bad navigation", "self.1", errors.ErrorUnexpectedToken, "expected identifier after '.', found integer literal 1", 5, 6},
		{"bad at", "x@post", errors.ErrorUnexpectedToken, "expected 'pre' after '@', found 'post'", 2, 6},
		{"if without else", "if a then b endif", errors.ErrorUnexpectedToken, "expected 'else', found 'endif'", 12, 17},
		{"let without init", "let x in x", errors.ErrorUnexpectedToken, "expected '=', found 'in'", 6, 8},
		{"static without def", "static inv: x", errors.ErrorUnexpectedToken, "expected 'def' after 'static', found 'inv'", 7, 10},
		{"unclosed collection", "Set{1, 2", errors.ErrorUnexpectedEnd, "expected ',' or '}', found end of input", 8, 8},
		{"second constraint", "context A inv: x inv: y", errors.ErrorUnexpectedToken, "expected end of input, found 'inv'", 17, 20},
		{"empty input", "", errors.ErrorUnexpectedEnd, "expected expression, found end of input", 0, 0},
		{"comment only", "-- nothing", errors.ErrorUnexpectedEnd, "expected expression, found end of input", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := parseError(t, tt.input)
			assert.Equal(t, errors.SyntaxError, fe.Kind)
			assert.Equal(t, tt.code, fe.Code)
			assert.Equal(t, tt.message, fe.Message)
			assert.Equal(t, tt.from, fe.From)
			assert.Equal(t, tt.to, fe.To)
		})
	}
}

func TestParsePropagatesLexError(t *testing.T) {
	fe := parseError(t, "self.x $ 1")

	assert.Equal(t, errors.LexicalError, fe.Kind)
	assert.Equal(t, "Invalid character", fe.Message)
	assert.Equal(t, 7, fe.From)
	assert.Equal(t, 8, fe.To)
}

func TestNestingDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)

	fe := parseError(t, deep)
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
	assert.Contains(t, fe.Message, "256")

	tree, err := ParseWith(deep, Options{MaxDepth: 1000})
	require.NoError(t, err)
	assert.Equal(t, "1", tree.Root.Expression().String())

	fe = parseError(t, strings.Repeat("not ", 300)+"a")
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)

	shallow := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	_, err = Parse(shallow)
	assert.NoError(t, err)
}

func nestedSetType(depth int) string {
	return strings.Repeat("Set(", depth) + "T" + strings.Repeat(")", depth)
}

func TestNestingDepthLimitInTypes(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"let type", "let x : " + nestedSetType(2000) + " = 1 in x"},
		{"iterator type", "s->forAll(e : " + nestedSetType(2000) + " | e)"},
		{"operation parameter", "context A::op(x : " + nestedSetType(100000) + ") pre: 1"},
		{"operation result", "context A::op() : " + nestedSetType(2000) + " post: true"},
		{"property type", "context A::p : " + nestedSetType(2000) + " init: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := parseError(t, tt.source)
			assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
		})
	}

	tree := parse(t, "s->forAll(e : "+nestedSetType(20)+" | e)")
	assert.Contains(t, tree.String(), nestedSetType(20))

	_, err := ParseWith("let x : "+nestedSetType(5)+" = 1 in x", Options{MaxDepth: 4})
	var fe *errors.FrontEndError
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
}

func TestOptionsDefaults(t *testing.T) {
	assert.Equal(t, DefaultMaxDepth, Options{}.normalized().MaxDepth)
	assert.Equal(t, DefaultMaxDepth, Options{MaxDepth: -3}.normalized().MaxDepth)
	assert.Equal(t, 10, Options{MaxDepth: 10}.normalized().MaxDepth)

	_, err := ParseWith("((((1))))", Options{MaxDepth: 3})
	var fe *errors.FrontEndError
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
}

func TestParseIsDeterministic(t *testing.T) {
	src := "context c : Company inv enoughEmployees: c.employees->forAll(e : Person | e.age >= 18) and c.name <> \"\""
	first := parse(t, src)
	second := parse(t, src)
	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}
