package ast

import "strconv"

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Document structure
	DOCUMENT
	PACKAGE
	CONTEXT_BLOCK

	// Context declarations
	CONTEXT_DECLARATION
	OPERATION_SIGNATURE
	PROPERTY_SIGNATURE
	TYPE_NAME
	VARIABLE_DECLARATION

	// Constraints
	INVARIANT
	PRECONDITION
	POSTCONDITION
	BODY_EXPRESSION
	DERIVATION
	INITIAL_VALUE
	DEFINITION

	// Statements
	UNARY_OPERATION
	BINARY_OPERATION
	RVALUE
	IF_EXPRESSION
	LET_EXPRESSION

	// R-values
	LITERAL
	IDENTIFIER
	SELF_REFERENCE
	FUNCTION_CALL
	ITERATOR_CALL
	COLLECTION_LITERAL
	COLLECTION_ITEM
)

var nodeTypeNames = [...]string{
	ILLEGAL:              "Illegal",
	DOCUMENT:             "Document",
	PACKAGE:              "Package",
	CONTEXT_BLOCK:        "ContextBlock",
	CONTEXT_DECLARATION:  "ContextDeclaration",
	OPERATION_SIGNATURE:  "OperationSignature",
	PROPERTY_SIGNATURE:   "PropertySignature",
	TYPE_NAME:            "TypeName",
	VARIABLE_DECLARATION: "VariableDeclaration",
	INVARIANT:            "Invariant",
	PRECONDITION:         "Precondition",
	POSTCONDITION:        "Postcondition",
	BODY_EXPRESSION:      "BodyExpression",
	DERIVATION:           "Derivation",
	INITIAL_VALUE:        "InitialValue",
	DEFINITION:           "Definition",
	UNARY_OPERATION:      "UnaryOperation",
	BINARY_OPERATION:     "BinaryOperation",
	RVALUE:               "RValue",
	IF_EXPRESSION:        "IfExpression",
	LET_EXPRESSION:       "LetExpression",
	LITERAL:              "Literal",
	IDENTIFIER:           "Identifier",
	SELF_REFERENCE:       "SelfReference",
	FUNCTION_CALL:        "FunctionCall",
	ITERATOR_CALL:        "IteratorCall",
	COLLECTION_LITERAL:   "CollectionLiteral",
	COLLECTION_ITEM:      "CollectionItem",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Operator is the operator of a unary or binary operation. Navigation
// ('.', '->', '::') is a binary operator whose right operand is the
// property or call being navigated to.
type Operator int

const (
	OpInvalid Operator = iota

	// Unary
	OpNot
	OpNegate
	OpAtPre

	// Binary, loosest first
	OpImplies
	OpOr
	OpXor
	OpAnd
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpDot
	OpArrow
	OpDoubleColon
)

var operatorSymbols = [...]string{
	OpInvalid:      "<invalid>",
	OpNot:          "not",
	OpNegate:       "-",
	OpAtPre:        "@pre",
	OpImplies:      "implies",
	OpOr:           "or",
	OpXor:          "xor",
	OpAnd:          "and",
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpLess:         "<",
	OpGreater:      ">",
	OpLessEqual:    "<=",
	OpGreaterEqual: ">=",
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpDot:          ".",
	OpArrow:        "->",
	OpDoubleColon:  "::",
}

// String returns the operator as written in OCL source.
func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return "Operator(" + strconv.Itoa(int(o)) + ")"
}

// IsNavigation reports whether o is '.', '->' or '::'.
func (o Operator) IsNavigation() bool {
	return o == OpDot || o == OpArrow || o == OpDoubleColon
}

type LiteralKind int

const (
	INTEGER_LITERAL LiteralKind = iota + 1
	REAL_LITERAL
	STRING_LITERAL
	BOOLEAN_LITERAL
	NULL_LITERAL
	INVALID_LITERAL
)

func (k LiteralKind) String() string {
	switch k {
	case INTEGER_LITERAL:
		return "Integer"
	case REAL_LITERAL:
		return "Real"
	case STRING_LITERAL:
		return "String"
	case BOOLEAN_LITERAL:
		return "Boolean"
	case NULL_LITERAL:
		return "Null"
	case INVALID_LITERAL:
		return "Invalid"
	}
	return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
}
