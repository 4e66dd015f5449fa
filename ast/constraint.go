package ast

import "ocl/token"

// ContextDeclaration is the 'context' header. Exactly one of Operation or
// Property is set for operation and property contexts; for a classifier
// context both are nil and Type names the classifier.
type ContextDeclaration struct {
	Span      token.Span
	Instance  *Identifier // 'c' in 'context c : Company'
	Type      *TypeName
	Operation *OperationSignature
	Property  *PropertySignature
}

// OperationSignature is 'name(p : T, ...) : R' in an operation context.
type OperationSignature struct {
	Span       token.Span
	Name       *Identifier
	Parameters []*VariableDeclaration
	Result     *TypeName
}

// PropertySignature is 'name : T' in a property context.
type PropertySignature struct {
	Span token.Span
	Name *Identifier
	Type *TypeName
}

// TypeName is a possibly qualified type, optionally with one type
// argument: 'Company', 'pkg::Company', 'Set(Person)'.
type TypeName struct {
	Span     token.Span
	Path     []*Identifier
	Argument *TypeName
}

// Name returns the unqualified type name.
func (t *TypeName) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1].Name
}

// VariableDeclaration declares a let variable, iterator variable or
// parameter. Type and Init are optional.
type VariableDeclaration struct {
	Span token.Span
	Name *Identifier
	Type *TypeName
	Init Statement
}

// Constraint is a stereotyped expression: the root of an
// AbstractSyntaxTree. Implementations: *Invariant, *Precondition,
// *Postcondition, *BodyExpression, *Derivation, *InitialValue, *Definition.
type Constraint interface {
	Node
	Stereotype() token.Keyword
	ConstraintName() *Identifier
	Expression() Statement
	isConstraint()
}

type Invariant struct {
	Span      token.Span
	Name      *Identifier
	Statement Statement
}

type Precondition struct {
	Span      token.Span
	Name      *Identifier
	Statement Statement
}

type Postcondition struct {
	Span      token.Span
	Name      *Identifier
	Statement Statement
}

type BodyExpression struct {
	Span      token.Span
	Name      *Identifier
	Statement Statement
}

type Derivation struct {
	Span      token.Span
	Name      *Identifier
	Statement Statement
}

type InitialValue struct {
	Span      token.Span
	Name      *Identifier
	Statement Statement
}

// Definition is 'def: name : T = expr' or 'def: name(p : P) : T = expr'.
// Parameters is non-nil only for operation definitions.
type Definition struct {
	Span       token.Span
	Name       *Identifier
	Static     bool
	Variable   *Identifier
	Parameters []*VariableDeclaration
	Operation  bool
	Type       *TypeName
	Statement  Statement
}

func (*Invariant) Stereotype() token.Keyword      { return token.INV }
func (*Precondition) Stereotype() token.Keyword   { return token.PRE }
func (*Postcondition) Stereotype() token.Keyword  { return token.POST }
func (*BodyExpression) Stereotype() token.Keyword { return token.BODY }
func (*Derivation) Stereotype() token.Keyword     { return token.DERIVE }
func (*InitialValue) Stereotype() token.Keyword   { return token.INIT }
func (*Definition) Stereotype() token.Keyword     { return token.DEF }

func (i *Invariant) ConstraintName() *Identifier      { return i.Name }
func (p *Precondition) ConstraintName() *Identifier   { return p.Name }
func (p *Postcondition) ConstraintName() *Identifier  { return p.Name }
func (b *BodyExpression) ConstraintName() *Identifier { return b.Name }
func (d *Derivation) ConstraintName() *Identifier     { return d.Name }
func (i *InitialValue) ConstraintName() *Identifier   { return i.Name }
func (d *Definition) ConstraintName() *Identifier     { return d.Name }

func (i *Invariant) Expression() Statement      { return i.Statement }
func (p *Precondition) Expression() Statement   { return p.Statement }
func (p *Postcondition) Expression() Statement  { return p.Statement }
func (b *BodyExpression) Expression() Statement { return b.Statement }
func (d *Derivation) Expression() Statement     { return d.Statement }
func (i *InitialValue) Expression() Statement   { return i.Statement }
func (d *Definition) Expression() Statement     { return d.Statement }

func (*Invariant) isConstraint()      {}
func (*Precondition) isConstraint()   {}
func (*Postcondition) isConstraint()  {}
func (*BodyExpression) isConstraint() {}
func (*Derivation) isConstraint()     {}
func (*InitialValue) isConstraint()   {}
func (*Definition) isConstraint()     {}

// NewConstraint builds the constraint node for a stereotype keyword. It
// returns nil for DEF, whose node carries more than a name and a body, and
// for non-stereotype keywords.
func NewConstraint(stereotype token.Keyword, span token.Span, name *Identifier, stmt Statement) Constraint {
	switch stereotype {
	case token.INV:
		return &Invariant{Span: span, Name: name, Statement: stmt}
	case token.PRE:
		return &Precondition{Span: span, Name: name, Statement: stmt}
	case token.POST:
		return &Postcondition{Span: span, Name: name, Statement: stmt}
	case token.BODY:
		return &BodyExpression{Span: span, Name: name, Statement: stmt}
	case token.DERIVE:
		return &Derivation{Span: span, Name: name, Statement: stmt}
	case token.INIT:
		return &InitialValue{Span: span, Name: name, Statement: stmt}
	}
	return nil
}
