// Declarations: TypeDecl, FuncDecl, FuncArgumentDecl, VarAssignDecl,
// ExtensionDecl, TypeAliasDecl, and ProtocolDecl. Each is a struct of
// syntactic fields plus whatever slots the analyzer fills in during
// registration and checking.
package ast

import (
	"strings"

	"github.com/yonihemi/trill/internal/token"
	"github.com/yonihemi/trill/internal/types"
)

// FuncKind discriminates what a FuncDecl represents (spec.md §3.2).
type FuncKind int

const (
	FuncFree FuncKind = iota
	FuncMethod
	FuncInitializer
	FuncDeinitializer
	FuncClosure
)

func (k FuncKind) String() string {
	switch k {
	case FuncMethod:
		return "method"
	case FuncInitializer:
		return "initializer"
	case FuncDeinitializer:
		return "deinitializer"
	case FuncClosure:
		return "closure"
	default:
		return "free function"
	}
}

// FuncArgumentDecl is one parameter of a FuncDecl (spec.md §3.2).
type FuncArgumentDecl struct {
	Token          token.Position
	ExternalLabel  string // "" if none
	InternalName   string
	TypeRef        TypeRef
	IsImplicitSelf bool
	Default        Expression // nil if no default
	IsMutable      bool       // "var" argument binding

	// ResolvedType is filled in during function-declaration analysis.
	ResolvedType types.Type

	// OwnerMethod backpoints to the FuncDecl this argument belongs to,
	// filled in at the same time. Only consulted for the implicit self
	// argument, to read the method's `mutating` modifier (spec.md §3.4).
	OwnerMethod *FuncDecl
}

func (p *FuncArgumentDecl) Pos() token.Position { return p.Token }
func (p *FuncArgumentDecl) String() string {
	label := p.InternalName
	if p.ExternalLabel != "" {
		label = p.ExternalLabel + " " + p.InternalName
	}
	if p.TypeRef != nil {
		return label + ": " + p.TypeRef.String()
	}
	return label
}

// FuncDecl represents a function, method, initializer, deinitializer, or
// (when embedded in a ClosureExpr) a closure body (spec.md §3.2).
type FuncDecl struct {
	Token      token.Position
	Name       string // may be empty for synthetic foreign handles (§4.4)
	ReturnType TypeRef
	Args       []*FuncArgumentDecl
	Body       *CompoundStmt // nil for foreign / abstract-less bodies

	IsForeign   bool
	IsImplicit  bool
	IsMutating  bool
	IsNoreturn  bool
	HasVarArgs  bool
	Kind        FuncKind
	Parent      *TypeDecl // nil for free functions

	// ResolvedReturnType and MangledSignature are filled in by the
	// analyzer during function-declaration analysis (spec.md §4.3.1)
	// and top-level registration (spec.md §4.6).
	ResolvedReturnType types.Type
	MangledSignature   string
}

func (f *FuncDecl) statementNode()      {}
func (f *FuncDecl) Pos() token.Position { return f.Token }
func (f *FuncDecl) String() string {
	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(")")
	if f.ReturnType != nil {
		sb.WriteString(" -> ")
		sb.WriteString(f.ReturnType.String())
	}
	return sb.String()
}

// SignatureTypes returns the parameter types used for overload
// resolution and mangling, dropping the implicit-self argument the way
// spec.md §4.3.6 requires ("Drop implicit self from method candidates'
// parameter list").
func (f *FuncDecl) SignatureTypes() []types.Type {
	out := make([]types.Type, 0, len(f.Args))
	for _, a := range f.Args {
		if a.IsImplicitSelf {
			continue
		}
		out = append(out, a.ResolvedType)
	}
	return out
}

// FieldDecl is one field of a TypeDecl (spec.md §3.2).
type FieldDecl struct {
	Token     token.Position
	Name      string
	TypeRef   TypeRef
	Parent    *TypeDecl
	InitValue Expression // nil if none

	ResolvedType types.Type
}

func (f *FieldDecl) Pos() token.Position { return f.Token }
func (f *FieldDecl) String() string      { return f.Name + ": " + f.TypeRef.String() }

// TypeDecl is a nominal aggregate type: value semantics by default, or
// reference ("indirect") semantics when Indirect is set (spec.md §3.2).
type TypeDecl struct {
	Token              token.Position
	Name               string
	Indirect           bool
	Fields             []*FieldDecl
	Methods            []*FuncDecl
	Initializers       []*FuncDecl
	Deinitializer      *FuncDecl // nil if none
	ConformedProtocols []string

	// IsForward marks a type that has been referenced but whose body
	// has not yet been registered. Neither registration nor the analyzer
	// sets it; they resolve type names through the Context by name.
	IsForward bool
}

func (t *TypeDecl) statementNode()      {}
func (t *TypeDecl) Pos() token.Position { return t.Token }
func (t *TypeDecl) String() string {
	kw := "type"
	if t.Indirect {
		kw = "indirect type"
	}
	return kw + " " + t.Name
}

// FieldNamed returns the field with the given name, if any.
func (t *TypeDecl) FieldNamed(name string) *FieldDecl {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// MethodsNamed returns every method (from the type itself; extension
// methods are attached into this slice during registration, spec.md §4.6
// step 1) with the given name — the overload candidate set for
// unqualified method lookup.
func (t *TypeDecl) MethodsNamed(name string) []*FuncDecl {
	var out []*FuncDecl
	for _, m := range t.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// VarAssignDecl is a `let`/`var` binding: a local, a global, or (when
// Parent is set) a field initializer context (spec.md §3.2).
type VarAssignDecl struct {
	Token     token.Position
	Name      string
	TypeRef   TypeRef    // nil if inferred from Init
	Init      Expression // nil for foreign vars / uninitialized fields
	IsMutable bool       // var = true, let = false
	Parent    *TypeDecl  // non-nil when this is a field binding
	IsForeign bool

	ResolvedType types.Type
}

func (v *VarAssignDecl) statementNode()      {}
func (v *VarAssignDecl) Pos() token.Position { return v.Token }
func (v *VarAssignDecl) String() string {
	kw := "let"
	if v.IsMutable {
		kw = "var"
	}
	return kw + " " + v.Name
}

// ExtensionDecl attaches additional methods to an existing TypeDecl
// (spec.md §3.2). Resolution of TargetTypeRef happens during top-level
// registration (spec.md §4.6 step 1); ResolvedTarget is filled in then.
type ExtensionDecl struct {
	Token         token.Position
	TargetTypeRef TypeRef
	Methods       []*FuncDecl

	ResolvedTarget *TypeDecl
}

func (e *ExtensionDecl) statementNode()      {}
func (e *ExtensionDecl) Pos() token.Position { return e.Token }
func (e *ExtensionDecl) String() string      { return "extension " + e.TargetTypeRef.String() }

// TypeAliasDecl binds Name to BoundType (spec.md §3.2); canonicalization
// chases chains of these down to a non-alias target.
type TypeAliasDecl struct {
	Token     token.Position
	Name      string
	BoundType TypeRef
}

func (a *TypeAliasDecl) statementNode()      {}
func (a *TypeAliasDecl) Pos() token.Position { return a.Token }
func (a *TypeAliasDecl) String() string      { return "alias " + a.Name + " = " + a.BoundType.String() }

// ProtocolMethodSig is one required method signature of a ProtocolDecl.
type ProtocolMethodSig struct {
	Name       string
	Args       []TypeRef
	ReturnType TypeRef
}

// ProtocolDecl is the supplemented declaration (SPEC_FULL.md §3) that
// fills the gap left by spec.md referencing "conformed protocols" on
// TypeDecl without ever defining what a protocol itself declares.
type ProtocolDecl struct {
	Token           token.Position
	Name            string
	RequiredMethods []*ProtocolMethodSig
}

func (p *ProtocolDecl) statementNode()      {}
func (p *ProtocolDecl) Pos() token.Position { return p.Token }
func (p *ProtocolDecl) String() string      { return "protocol " + p.Name }
