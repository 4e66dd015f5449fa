package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Unit is a single constraint: a bare expression, a constraint, or a
// context declaration followed by one constraint.
type Unit struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Context    *ContextDecl `@@?`
	Constraint *Constraint  `( @@`
	Expression *Expression  `| @@ )`
}

type Document struct {
	Items []*DocumentItem `@@*`
}

type DocumentItem struct {
	Package *Package      `  @@`
	Context *ContextBlock `| @@`
}

type Package struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     *TypeRef        `"package" @@`
	Contexts []*ContextBlock `@@* "endpackage"`
}

type ContextBlock struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Context     *ContextDecl  `@@`
	Constraints []*Constraint `@@+`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type ContextDecl struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Instance  *PosIdent     `"context" ( @@ ":" )?`
	Path      []*PosIdent   `@@ ( "::" @@ )*`
	Operation *OperationSig `( @@`
	Property  *PropertyType `| @@ )?`
}

type OperationSig struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Params []*VarDecl `"(" ( @@ ( "," @@ )* )? ")"`
	Result *TypeRef   `( ":" @@ )?`
}

type PropertyType struct {
	Type *TypeRef `":" @@`
}

type TypeRef struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Path     []*PosIdent `@@ ( "::" @@ )*`
	Argument *TypeRef    `( "(" @@ ")" )?`
}

type VarDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent   `@@`
	Type   *TypeRef    `( ":" @@ )?`
	Init   *Expression `( "=" @@ )?`
}

type Constraint struct {
	Definition  *Definition  `  @@`
	Stereotyped *Stereotyped `| @@`
}

type Stereotyped struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Stereotype string      `@("inv" | "pre" | "post" | "body" | "derive" | "init")`
	Name       *PosIdent   `@@? ":"`
	Expression *Expression `@@`
}

type Definition struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Static     bool        `@"static"? "def"`
	Name       *PosIdent   `@@? ":"`
	Variable   *PosIdent   `@@`
	Params     *ParamList  `@@?`
	Type       *TypeRef    `( ":" @@ )?`
	Expression *Expression `"=" @@`
}

type ParamList struct {
	Params []*VarDecl `"(" ( @@ ( "," @@ )* )? ")"`
}

// Expression levels, loosest first. Each level is a left operand followed
// by any number of (operator, right operand) pairs.
type Expression struct {
	Left *OrExpr   `@@`
	Ops  []*OrExpr `( "implies" @@ )*`
}

type OrExpr struct {
	Left *AndExpr `@@`
	Ops  []*OrOp  `@@*`
}

type OrOp struct {
	Operator string   `@("or" | "xor")`
	Right    *AndExpr `@@`
}

type AndExpr struct {
	Left *EqualityExpr   `@@`
	Ops  []*EqualityExpr `( "and" @@ )*`
}

type EqualityExpr struct {
	Left *RelationalExpr `@@`
	Ops  []*EqualityOp   `@@*`
}

type EqualityOp struct {
	Operator string          `@("=" | "<>")`
	Right    *RelationalExpr `@@`
}

type RelationalExpr struct {
	Left *AdditiveExpr   `@@`
	Ops  []*RelationalOp `@@*`
}

type RelationalOp struct {
	Operator string        `@("<=" | ">=" | "<" | ">")`
	Right    *AdditiveExpr `@@`
}

type AdditiveExpr struct {
	Left *MultiplicativeExpr `@@`
	Ops  []*AdditiveOp       `@@*`
}

type AdditiveOp struct {
	Operator string              `@("+" | "-")`
	Right    *MultiplicativeExpr `@@`
}

type MultiplicativeExpr struct {
	Left *UnaryExpr          `@@`
	Ops  []*MultiplicativeOp `@@*`
}

type MultiplicativeOp struct {
	Operator string     `@("*" | "/")`
	Right    *UnaryExpr `@@`
}

type UnaryExpr struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator *string      `(  @("not" | "-")`
	Operand  *UnaryExpr   `   @@ )`
	Postfix  *PostfixExpr `| @@`
}

type PostfixExpr struct {
	Primary *Primary     `@@`
	Ops     []*PostfixOp `@@*`
}

type PostfixOp struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	AtPre      bool    `  @"@" "pre"`
	Navigation string  `| ( @("." | "->" | "::")`
	Member     *Member `    @@ )`
}

type Member struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent   `@@`
	Call   *CallSuffix `@@?`
}

type CallSuffix struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Iterators []*IteratorDecl `"(" ( ( @@ ( "," @@ )* "|" )`
	Body      *Expression     `      @@`
	Arguments []*Expression   `    | ( @@ ( "," @@ )* )? ) ")"`
}

type IteratorDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `@@`
	Type   *TypeRef  `( ":" @@ )?`
}

type Primary struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Real       *string            `  @Real`
	Integer    *string            `| @Integer`
	String     *string            `| @String`
	Boolean    *string            `| @("true" | "false")`
	Null       bool               `| @"null"`
	Invalid    bool               `| @"invalid"`
	Self       bool               `| @"self"`
	If         *IfExpr            `| @@`
	Let        *LetExpr           `| @@`
	Collection *CollectionLiteral `| @@`
	Member     *Member            `| @@`
	Parens     *Expression        `| "(" @@ ")"`
}

type IfExpr struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Condition *Expression `"if" @@`
	Then      *Expression `"then" @@`
	Else      *Expression `"else" @@ "endif"`
}

type LetExpr struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Variables []*VarDecl  `"let" @@ ( "," @@ )*`
	Body      *Expression `"in" @@`
}

type CollectionLiteral struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Kind   *CollectionKind   `@@ "{"`
	Items  []*CollectionItem `( @@ ( "," @@ )* )? "}"`
}

type CollectionKind struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@("Set" | "Bag" | "Sequence" | "OrderedSet" | "Collection")`
}

type CollectionItem struct {
	Pos    lexer.Position
	EndPos lexer.Position
	First  *Expression `@@`
	Last   *Expression `( ".." @@ )?`
}
