package ast

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	addIdent := func(id *Identifier) {
		if id != nil {
			out = append(out, id)
		}
	}
	addType := func(t *TypeName) {
		if t != nil {
			out = append(out, t)
		}
	}
	addDecls := func(decls []*VariableDeclaration) {
		for _, d := range decls {
			out = append(out, d)
		}
	}

	switch n := node.(type) {
	case *Document:
		for _, block := range n.Blocks() {
			add(block)
		}
	case *Package:
		addType(n.Name)
		for _, block := range n.Contexts {
			out = append(out, block)
		}
	case *ContextBlock:
		out = append(out, n.Context)
		for _, c := range n.Constraints {
			add(c)
		}
	case *ContextDeclaration:
		addIdent(n.Instance)
		addType(n.Type)
		if n.Operation != nil {
			out = append(out, n.Operation)
		}
		if n.Property != nil {
			out = append(out, n.Property)
		}
	case *OperationSignature:
		addIdent(n.Name)
		addDecls(n.Parameters)
		addType(n.Result)
	case *PropertySignature:
		addIdent(n.Name)
		addType(n.Type)
	case *TypeName:
		for _, id := range n.Path {
			out = append(out, id)
		}
		addType(n.Argument)
	case *VariableDeclaration:
		addIdent(n.Name)
		addType(n.Type)
		add(n.Init)
	case *Definition:
		addIdent(n.Name)
		addIdent(n.Variable)
		addDecls(n.Parameters)
		addType(n.Type)
		add(n.Statement)
	case Constraint:
		addIdent(n.ConstraintName())
		add(n.Expression())
	case *UnaryOperation:
		add(n.Operand)
	case *BinaryOperation:
		add(n.Left)
		add(n.Right)
	case *RValue:
		add(n.Value)
	case *IfExpression:
		add(n.Condition)
		add(n.Then)
		add(n.Else)
	case *LetExpression:
		addDecls(n.Variables)
		add(n.Body)
	case *FunctionCall:
		addIdent(n.Name)
		for _, arg := range n.Arguments {
			add(arg)
		}
	case *IteratorCall:
		addIdent(n.Name)
		addDecls(n.Iterators)
		add(n.Body)
	case *CollectionLiteral:
		addIdent(n.Kind)
		for _, item := range n.Items {
			out = append(out, item)
		}
	case *CollectionItem:
		add(n.First)
		add(n.Last)
	}
	return out
}

// Inspect traverses the tree rooted at node in depth-first order. If f
// returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Inspect traverses the context declaration, then the constraint.
func (t *AbstractSyntaxTree) Inspect(f func(Node) bool) {
	if t.Context != nil {
		Inspect(t.Context, f)
	}
	Inspect(t.Root, f)
}
