package ast

import "ocl/token"

// Statement is an OCL expression.
type Statement interface {
	Node
	isStatement()
}

func (*UnaryOperation) isStatement()  {}
func (*BinaryOperation) isStatement() {}
func (*RValue) isStatement()          {}
func (*IfExpression) isStatement()    {}
func (*LetExpression) isStatement()   {}

// RValueVariant is a leaf or call expression wrapped by RValue.
type RValueVariant interface {
	Node
	isRValue()
}

func (*Literal) isRValue()           {}
func (*Identifier) isRValue()        {}
func (*SelfReference) isRValue()     {}
func (*FunctionCall) isRValue()      {}
func (*IteratorCall) isRValue()      {}
func (*CollectionLiteral) isRValue() {}

// UnaryOperation covers prefix 'not' and '-' and postfix '@pre'.
type UnaryOperation struct {
	Span     token.Span
	Operator Operator
	Operand  Statement
}

type BinaryOperation struct {
	Span     token.Span
	Left     Statement
	Operator Operator
	Right    Statement
}

type RValue struct {
	Span  token.Span
	Value RValueVariant
}

type IfExpression struct {
	Span      token.Span
	Condition Statement
	Then      Statement
	Else      Statement
}

type LetExpression struct {
	Span      token.Span
	Variables []*VariableDeclaration
	Body      Statement
}

// Literal holds one literal value; only the field matching Kind is set.
// Text is the content of a string literal, without quotes.
type Literal struct {
	Span    token.Span
	Kind    LiteralKind
	Integer int64
	Real    float64
	Text    string
	Boolean bool
}

type Identifier struct {
	Span token.Span
	Name string
}

type SelfReference struct {
	Span token.Span
}

// ParameterList holds positional call arguments in source order.
type ParameterList []Statement

type FunctionCall struct {
	Span      token.Span
	Name      *Identifier
	Arguments ParameterList
}

// IteratorCall is a collection operation with declared iterator variables,
// e.g. 'forAll(e : Employee | e.age > 18)'.
type IteratorCall struct {
	Span      token.Span
	Name      *Identifier
	Iterators []*VariableDeclaration
	Body      Statement
}

// CollectionLiteral is 'Set{...}', 'Bag{...}', 'Sequence{...}',
// 'OrderedSet{...}' or 'Collection{...}'.
type CollectionLiteral struct {
	Span  token.Span
	Kind  *Identifier
	Items []*CollectionItem
}

// CollectionItem is a single element or, when Last is set, a range
// 'First..Last'.
type CollectionItem struct {
	Span  token.Span
	First Statement
	Last  Statement
}

// IsCollectionKind reports whether name may open a collection literal.
func IsCollectionKind(name string) bool {
	switch name {
	case "Set", "Bag", "Sequence", "OrderedSet", "Collection":
		return true
	}
	return false
}

// Value returns the r-value variant when s is an RValue, else nil.
func Value(s Statement) RValueVariant {
	if rv, ok := s.(*RValue); ok {
		return rv.Value
	}
	return nil
}
