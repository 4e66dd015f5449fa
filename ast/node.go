// Package ast defines the syntax tree produced by the OCL parser.
//
// Every node records the byte span it was parsed from. Names and string
// literals are substrings of the parsed source and share its memory, so a
// tree stays valid exactly as long as its source string is reachable; the
// AbstractSyntaxTree keeps that string alongside the root. Trees are never
// mutated after the parser returns them.
package ast

import "ocl/token"

type Node interface {
	NodeSpan() token.Span
	NodeType() NodeType
	String() string
}

// AbstractSyntaxTree owns one parsed constraint and the source it borrows
// from. Context is nil when the source was a bare expression.
type AbstractSyntaxTree struct {
	Source  string
	Context *ContextDeclaration
	Root    Constraint
}

// Text resolves a span against the tree's source.
func (t *AbstractSyntaxTree) Text(span token.Span) string {
	return span.Text(t.Source)
}

// Document is the result of parsing a multi-constraint source: top-level
// context blocks plus package blocks.
type Document struct {
	Span     token.Span
	Source   string
	Packages []*Package
	Contexts []*ContextBlock
}

// Package groups context blocks between 'package' and 'endpackage'.
type Package struct {
	Span     token.Span
	Name     *TypeName
	Contexts []*ContextBlock
}

// ContextBlock is one 'context' header with the constraints that follow it.
type ContextBlock struct {
	Span        token.Span
	Context     *ContextDeclaration
	Constraints []Constraint
}

// Constraints flattens the document in source order.
func (d *Document) Constraints() []Constraint {
	var out []Constraint
	for _, block := range d.AllContexts() {
		out = append(out, block.Constraints...)
	}
	return out
}

// AllContexts returns package-level and top-level context blocks in source
// order.
func (d *Document) AllContexts() []*ContextBlock {
	var out []*ContextBlock
	for _, b := range d.Blocks() {
		switch b := b.(type) {
		case *Package:
			out = append(out, b.Contexts...)
		case *ContextBlock:
			out = append(out, b)
		}
	}
	return out
}

// Blocks returns the top-level packages and context blocks in source order.
func (d *Document) Blocks() []Node {
	var out []Node
	pi, ci := 0, 0
	for pi < len(d.Packages) || ci < len(d.Contexts) {
		if ci >= len(d.Contexts) || (pi < len(d.Packages) && d.Packages[pi].Span.From < d.Contexts[ci].Span.From) {
			out = append(out, d.Packages[pi])
			pi++
			continue
		}
		out = append(out, d.Contexts[ci])
		ci++
	}
	return out
}

func (d *Document) NodeSpan() token.Span { return d.Span }
func (*Document) NodeType() NodeType     { return DOCUMENT }

func (p *Package) NodeSpan() token.Span { return p.Span }
func (*Package) NodeType() NodeType     { return PACKAGE }

func (b *ContextBlock) NodeSpan() token.Span { return b.Span }
func (*ContextBlock) NodeType() NodeType     { return CONTEXT_BLOCK }

func (c *ContextDeclaration) NodeSpan() token.Span { return c.Span }
func (*ContextDeclaration) NodeType() NodeType     { return CONTEXT_DECLARATION }

func (o *OperationSignature) NodeSpan() token.Span { return o.Span }
func (*OperationSignature) NodeType() NodeType     { return OPERATION_SIGNATURE }

func (p *PropertySignature) NodeSpan() token.Span { return p.Span }
func (*PropertySignature) NodeType() NodeType     { return PROPERTY_SIGNATURE }

func (t *TypeName) NodeSpan() token.Span { return t.Span }
func (*TypeName) NodeType() NodeType     { return TYPE_NAME }

func (v *VariableDeclaration) NodeSpan() token.Span { return v.Span }
func (*VariableDeclaration) NodeType() NodeType     { return VARIABLE_DECLARATION }

func (i *Invariant) NodeSpan() token.Span { return i.Span }
func (*Invariant) NodeType() NodeType     { return INVARIANT }

func (p *Precondition) NodeSpan() token.Span { return p.Span }
func (*Precondition) NodeType() NodeType     { return PRECONDITION }

func (p *Postcondition) NodeSpan() token.Span { return p.Span }
func (*Postcondition) NodeType() NodeType     { return POSTCONDITION }

func (b *BodyExpression) NodeSpan() token.Span { return b.Span }
func (*BodyExpression) NodeType() NodeType     { return BODY_EXPRESSION }

func (d *Derivation) NodeSpan() token.Span { return d.Span }
func (*Derivation) NodeType() NodeType     { return DERIVATION }

func (i *InitialValue) NodeSpan() token.Span { return i.Span }
func (*InitialValue) NodeType() NodeType     { return INITIAL_VALUE }

func (d *Definition) NodeSpan() token.Span { return d.Span }
func (*Definition) NodeType() NodeType     { return DEFINITION }

func (u *UnaryOperation) NodeSpan() token.Span { return u.Span }
func (*UnaryOperation) NodeType() NodeType     { return UNARY_OPERATION }

func (b *BinaryOperation) NodeSpan() token.Span { return b.Span }
func (*BinaryOperation) NodeType() NodeType     { return BINARY_OPERATION }

func (r *RValue) NodeSpan() token.Span { return r.Span }
func (*RValue) NodeType() NodeType     { return RVALUE }

func (i *IfExpression) NodeSpan() token.Span { return i.Span }
func (*IfExpression) NodeType() NodeType     { return IF_EXPRESSION }

func (l *LetExpression) NodeSpan() token.Span { return l.Span }
func (*LetExpression) NodeType() NodeType     { return LET_EXPRESSION }

func (l *Literal) NodeSpan() token.Span { return l.Span }
func (*Literal) NodeType() NodeType     { return LITERAL }

func (i *Identifier) NodeSpan() token.Span { return i.Span }
func (*Identifier) NodeType() NodeType     { return IDENTIFIER }

func (s *SelfReference) NodeSpan() token.Span { return s.Span }
func (*SelfReference) NodeType() NodeType     { return SELF_REFERENCE }

func (f *FunctionCall) NodeSpan() token.Span { return f.Span }
func (*FunctionCall) NodeType() NodeType     { return FUNCTION_CALL }

func (i *IteratorCall) NodeSpan() token.Span { return i.Span }
func (*IteratorCall) NodeType() NodeType     { return ITERATOR_CALL }

func (c *CollectionLiteral) NodeSpan() token.Span { return c.Span }
func (*CollectionLiteral) NodeType() NodeType     { return COLLECTION_LITERAL }

func (c *CollectionItem) NodeSpan() token.Span { return c.Span }
func (*CollectionItem) NodeType() NodeType     { return COLLECTION_ITEM }
