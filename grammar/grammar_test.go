package grammar_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/ast"
	"ocl/grammar"
	"ocl/internal/errors"
	"ocl/internal/parser"
)

var corpus = []string{
	"self.numberOfEmployees > 50",
	"context Company inv:\nself.numberOfEmployees > 50",
	"context c : Company inv enoughEmployees:\nc.numberOfEmployees > 50",
	"a - b - c",
	"a implies b implies c",
	"not a and b",
	"-x.y",
	"- - x",
	"-a * b",
	"a or b and c xor d",
	"a = b < c",
	"(a + b) * c",
	"x@pre + 1",
	"self.salary@pre",
	"A::B::c",
	"p.oclAsType(Person).name",
	"f(1, g(2), x + 1)",
	"size()",
	"xs->forAll(e | e > 0)",
	"xs->forAll(a, b : Person | a <> b)",
	"xs->select(e : Set(Integer) | true)",
	"xs->includes(e)",
	"Set{1, 2..5}",
	"Sequence{}",
	"if a then 1 else 2 endif",
	"let x : Integer = 1, y = 2 in x + y",
	`name = "abc" and invalid <> null`,
	"1.5 * 2",
	"context Company::hire(p : Person) : Boolean pre: p.age >= 18",
	"context Company::size : Integer derive: employees->size()",
	"context Person::age : Integer init: 0",
	"context Company::headcount() : Integer body: employees->size()",
	"context Person def helper: twice(n : Integer) : Integer = n * 2",
	"context Person static def: zero : Integer = 0",
	"inv: 1 = 1",
}

func TestEnginesAgreeOnCorpus(t *testing.T) {
	for _, src := range corpus {
		t.Run(src, func(t *testing.T) {
			native, err := parser.Parse(src)
			require.NoError(t, err)

			reference, err := grammar.Parse(src)
			require.NoError(t, err)

			assert.Equal(t, native.String(), reference.String())
			assert.Equal(t, native.Root.Stereotype(), reference.Root.Stereotype())
		})
	}
}

func TestEnginesAgreeOnExamples(t *testing.T) {
	files, err := filepath.Glob("../examples/*.ocl")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			source, err := os.ReadFile(file)
			require.NoError(t, err)

			native, err := parser.ParseDocument(string(source), parser.DefaultOptions())
			require.NoError(t, err)

			reference, err := grammar.ParseDocument(string(source))
			require.NoError(t, err)

			assert.Equal(t, native.String(), reference.String())
			assert.Equal(t, len(native.Constraints()), len(reference.Constraints()))
		})
	}
}

func TestReferenceSpansStartAtNode(t *testing.T) {
	src := "context c : Company inv ok: c.size > 1"
	tree, err := grammar.Parse(src)
	require.NoError(t, err)

	assert.Equal(t, 0, tree.Context.Span.From)
	assert.Equal(t, "c", tree.Text(tree.Context.Instance.Span))
	assert.Equal(t, "ok", tree.Text(tree.Root.ConstraintName().Span))

	ast.Inspect(tree.Root, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			assert.Equal(t, id.Name, tree.Text(id.Span))
		}
		return true
	})
}

func TestReferenceErrors(t *testing.T) {
	_, err := grammar.Parse("self.x $ 1")
	var fe *errors.FrontEndError
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.LexicalError, fe.Kind)
	assert.Equal(t, 7, fe.From)
	assert.Equal(t, 8, fe.To)

	_, err = grammar.Parse("a + )")
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.SyntaxError, fe.Kind)

	_, err = grammar.Parse("99999999999999999999")
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.ErrorNumberOutOfRange, fe.Code)
}

func nested(open, inner, close string, n int) string {
	return strings.Repeat(open, n) + inner + strings.Repeat(close, n)
}

func TestNestingDepthLimit(t *testing.T) {
	tests := []struct {
		name    string
		shallow string
		deep    string
	}{
		{"parentheses", nested("(", "1", ")", 100), nested("(", "1", ")", 300)},
		{"not", strings.Repeat("not ", 100) + "a", strings.Repeat("not ", 300) + "a"},
		{"negation", strings.Repeat("- ", 100) + "x", strings.Repeat("- ", 300) + "x"},
		{"collection literals", nested("Set{", "1", "}", 100), nested("Set{", "1", "}", 300)},
		{"calls", nested("f(", "1", ")", 100), nested("f(", "1", ")", 300)},
		{"if", nested("if a then ", "b", " else c endif", 100), nested("if a then ", "b", " else c endif", 300)},
		{"let", strings.Repeat("let x = 1 in ", 100) + "x", strings.Repeat("let x = 1 in ", 300) + "x"},
		{"type arguments", "let x : " + nested("Set(", "T", ")", 100) + " = 1 in x", "let x : " + nested("Set(", "T", ")", 300) + " = 1 in x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			native, err := parser.Parse(tt.shallow)
			require.NoError(t, err)
			reference, err := grammar.Parse(tt.shallow)
			require.NoError(t, err)
			assert.Equal(t, native.String(), reference.String())

			for _, parse := range []func(string) error{
				func(s string) error { _, err := parser.Parse(s); return err },
				func(s string) error { _, err := grammar.Parse(s); return err },
			} {
				var fe *errors.FrontEndError
				require.True(t, stderrors.As(parse(tt.deep), &fe))
				assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
			}
		})
	}
}

func TestNestingDepthOptions(t *testing.T) {
	deep := nested("(", "1", ")", 300)

	tree, err := grammar.ParseWith(deep, parser.Options{MaxDepth: 1000})
	require.NoError(t, err)
	assert.Equal(t, "1", tree.Root.Expression().String())

	var fe *errors.FrontEndError
	_, err = grammar.ParseWith("((((1))))", parser.Options{MaxDepth: 3})
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
	assert.Equal(t, 2, fe.From)

	_, err = grammar.ParseDocumentWith("context A inv: ((a))", parser.Options{MaxDepth: 2})
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)

	_, err = grammar.Parse(nested("(", "1", ")", 200000))
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, errors.ErrorNestingTooDeep, fe.Code)
}

func TestEBNF(t *testing.T) {
	ebnf := grammar.EBNF()
	assert.Contains(t, ebnf, "Unit")
	assert.Contains(t, ebnf, `"context"`)
}
