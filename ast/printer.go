package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// The printer renders nodes back to OCL. Binary and prefix operations are
// fully parenthesized so the tree shape is visible in the output;
// navigation is printed without parentheses.

func (t *AbstractSyntaxTree) String() string {
	if t.Context == nil {
		return t.Root.String()
	}
	return t.Context.String() + " " + t.Root.String()
}

func (d *Document) String() string {
	blocks := d.Blocks()
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n")
}

func (p *Package) String() string {
	var b strings.Builder
	b.WriteString("package " + p.Name.String() + "\n")
	for _, block := range p.Contexts {
		b.WriteString("  " + strings.ReplaceAll(block.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("endpackage")
	return b.String()
}

func (b *ContextBlock) String() string {
	var sb strings.Builder
	sb.WriteString(b.Context.String())
	for _, c := range b.Constraints {
		sb.WriteString("\n  " + c.String())
	}
	return sb.String()
}

func (c *ContextDeclaration) String() string {
	var b strings.Builder
	b.WriteString("context ")
	if c.Instance != nil {
		b.WriteString(c.Instance.Name + " : ")
	}
	b.WriteString(c.Type.String())
	switch {
	case c.Operation != nil:
		b.WriteString("::" + c.Operation.String())
	case c.Property != nil:
		b.WriteString("::" + c.Property.String())
	}
	return b.String()
}

func (o *OperationSignature) String() string {
	s := o.Name.Name + "(" + joinDeclarations(o.Parameters) + ")"
	if o.Result != nil {
		s += " : " + o.Result.String()
	}
	return s
}

func (p *PropertySignature) String() string {
	return p.Name.Name + " : " + p.Type.String()
}

func (t *TypeName) String() string {
	parts := make([]string, len(t.Path))
	for i, id := range t.Path {
		parts[i] = id.Name
	}
	s := strings.Join(parts, "::")
	if t.Argument != nil {
		s += "(" + t.Argument.String() + ")"
	}
	return s
}

func (v *VariableDeclaration) String() string {
	s := v.Name.Name
	if v.Type != nil {
		s += " : " + v.Type.String()
	}
	if v.Init != nil {
		s += " = " + v.Init.String()
	}
	return s
}

func constraintString(keyword string, name *Identifier, stmt Statement) string {
	if name != nil {
		return fmt.Sprintf("%s %s: %s", keyword, name.Name, stmt)
	}
	return fmt.Sprintf("%s: %s", keyword, stmt)
}

func (i *Invariant) String() string      { return constraintString("inv", i.Name, i.Statement) }
func (p *Precondition) String() string   { return constraintString("pre", p.Name, p.Statement) }
func (p *Postcondition) String() string  { return constraintString("post", p.Name, p.Statement) }
func (b *BodyExpression) String() string { return constraintString("body", b.Name, b.Statement) }
func (d *Derivation) String() string     { return constraintString("derive", d.Name, d.Statement) }
func (i *InitialValue) String() string   { return constraintString("init", i.Name, i.Statement) }

func (d *Definition) String() string {
	var b strings.Builder
	if d.Static {
		b.WriteString("static ")
	}
	b.WriteString("def")
	if d.Name != nil {
		b.WriteString(" " + d.Name.Name)
	}
	b.WriteString(": " + d.Variable.Name)
	if d.Operation {
		b.WriteString("(" + joinDeclarations(d.Parameters) + ")")
	}
	if d.Type != nil {
		b.WriteString(" : " + d.Type.String())
	}
	b.WriteString(" = " + d.Statement.String())
	return b.String()
}

func (u *UnaryOperation) String() string {
	switch u.Operator {
	case OpAtPre:
		return u.Operand.String() + "@pre"
	case OpNot:
		return "(not " + u.Operand.String() + ")"
	}
	return "(" + u.Operator.String() + u.Operand.String() + ")"
}

func (b *BinaryOperation) String() string {
	if b.Operator.IsNavigation() {
		return b.Left.String() + b.Operator.String() + b.Right.String()
	}
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

func (r *RValue) String() string {
	return r.Value.String()
}

func (i *IfExpression) String() string {
	return fmt.Sprintf("if %s then %s else %s endif", i.Condition, i.Then, i.Else)
}

func (l *LetExpression) String() string {
	return "let " + joinDeclarations(l.Variables) + " in " + l.Body.String()
}

func (l *Literal) String() string {
	switch l.Kind {
	case INTEGER_LITERAL:
		return strconv.FormatInt(l.Integer, 10)
	case REAL_LITERAL:
		s := strconv.FormatFloat(l.Real, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case STRING_LITERAL:
		return `"` + l.Text + `"`
	case BOOLEAN_LITERAL:
		return strconv.FormatBool(l.Boolean)
	case NULL_LITERAL:
		return "null"
	case INVALID_LITERAL:
		return "invalid"
	}
	return "<bad literal>"
}

func (i *Identifier) String() string {
	return i.Name
}

func (*SelfReference) String() string {
	return "self"
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Arguments))
	for i, arg := range f.Arguments {
		args[i] = arg.String()
	}
	return f.Name.Name + "(" + strings.Join(args, ", ") + ")"
}

func (i *IteratorCall) String() string {
	return i.Name.Name + "(" + joinDeclarations(i.Iterators) + " | " + i.Body.String() + ")"
}

func (c *CollectionLiteral) String() string {
	items := make([]string, len(c.Items))
	for i, item := range c.Items {
		items[i] = item.String()
	}
	return c.Kind.Name + "{" + strings.Join(items, ", ") + "}"
}

func (c *CollectionItem) String() string {
	if c.Last != nil {
		return c.First.String() + ".." + c.Last.String()
	}
	return c.First.String()
}

func joinDeclarations(decls []*VariableDeclaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
