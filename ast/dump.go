package ast

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// dumpSchemaVersion is bumped whenever the DumpNode layout changes.
const dumpSchemaVersion uint16 = 1

// DumpNode is a serializable, interface-free copy of a syntax tree. It is
// what 'ocl parse --format json|msgpack' emits.
type DumpNode struct {
	Type     string      `json:"type" msgpack:"type"`
	Value    string      `json:"value,omitempty" msgpack:"value,omitempty"`
	From     int         `json:"from" msgpack:"from"`
	To       int         `json:"to" msgpack:"to"`
	Children []*DumpNode `json:"children,omitempty" msgpack:"children,omitempty"`
}

// DumpPayload wraps a dump with its schema version.
type DumpPayload struct {
	Schema uint16    `json:"schema" msgpack:"schema"`
	Root   *DumpNode `json:"root" msgpack:"root"`
}

// Dump converts node and its descendants into DumpNodes.
func Dump(node Node) *DumpNode {
	if node == nil {
		return nil
	}
	span := node.NodeSpan()
	d := &DumpNode{
		Type:  node.NodeType().String(),
		Value: dumpValue(node),
		From:  span.From,
		To:    span.To,
	}
	for _, child := range Children(node) {
		d.Children = append(d.Children, Dump(child))
	}
	return d
}

// DumpTree converts a parsed constraint. The context declaration, when
// present, becomes the first child of a synthetic "Tree" node.
func DumpTree(t *AbstractSyntaxTree) *DumpNode {
	root := &DumpNode{Type: "Tree", To: len(t.Source)}
	if t.Context != nil {
		root.Children = append(root.Children, Dump(t.Context))
	}
	root.Children = append(root.Children, Dump(t.Root))
	return root
}

func dumpValue(node Node) string {
	switch n := node.(type) {
	case *Identifier:
		return n.Name
	case *Literal:
		return n.String()
	case *UnaryOperation:
		return n.Operator.String()
	case *BinaryOperation:
		return n.Operator.String()
	case *TypeName:
		return n.String()
	case *CollectionLiteral:
		return n.Kind.Name
	case *Definition:
		if n.Static {
			return "static"
		}
	}
	return ""
}

// WriteMsgpack encodes d with its schema version.
func WriteMsgpack(w io.Writer, d *DumpNode) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&DumpPayload{Schema: dumpSchemaVersion, Root: d})
}

// ReadMsgpack decodes a dump written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (*DumpNode, error) {
	var payload DumpPayload
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Schema != dumpSchemaVersion {
		return nil, fmt.Errorf("unsupported dump schema %d (want %d)", payload.Schema, dumpSchemaVersion)
	}
	return payload.Root, nil
}
