package ast

import (
	"strings"

	"github.com/yonihemi/trill/internal/token"
)

// TypeRef is the syntactic, pre-resolution spelling of a type as the
// parser saw it (a bare name, "*T", a tuple, or a function signature).
// The analyzer turns a TypeRef into a types.Type via
// Context.ResolveTypeRef and checks it with Context.IsValidType; TypeRef
// itself never changes after parsing.
type TypeRef interface {
	Node
	typeRefNode()
}

// NamedTypeRef is a bare type name: "Int", "Bool", "MyStruct", ...
type NamedTypeRef struct {
	Token token.Position
	Name  string
}

func (*NamedTypeRef) typeRefNode()        {}
func (n *NamedTypeRef) Pos() token.Position { return n.Token }
func (n *NamedTypeRef) String() string      { return n.Name }

// PointerTypeRef is "*T".
type PointerTypeRef struct {
	Token   token.Position
	Pointee TypeRef
}

func (*PointerTypeRef) typeRefNode()        {}
func (p *PointerTypeRef) Pos() token.Position { return p.Token }
func (p *PointerTypeRef) String() string      { return "*" + p.Pointee.String() }

// TupleTypeRef is "(T1, T2, ...)".
type TupleTypeRef struct {
	Token    token.Position
	Elements []TypeRef
}

func (*TupleTypeRef) typeRefNode()        {}
func (t *TupleTypeRef) Pos() token.Position { return t.Token }
func (t *TupleTypeRef) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FunctionTypeRef is "(T1, T2) -> R", optionally variadic.
type FunctionTypeRef struct {
	Token      token.Position
	Args       []TypeRef
	Return     TypeRef
	HasVarArgs bool
}

func (*FunctionTypeRef) typeRefNode()        {}
func (f *FunctionTypeRef) Pos() token.Position { return f.Token }
func (f *FunctionTypeRef) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	ret := "Void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}
