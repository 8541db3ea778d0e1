// Package semantic implements the Semantic Analysis pass: the type
// checker and name resolver that walks a parsed translation unit,
// annotates it, and produces a diagnostic log.
//
// Global declarations (the Semantic Context, in Context) are kept
// separate from per-scope local bindings (the Transformer) — the same
// split a registry-plus-scope-stack type checker always needs.
package semantic

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/mangle"
	"github.com/yonihemi/trill/internal/types"
)

// Context is the Semantic Context (spec.md §4.1): the global symbol
// table populated from the translation unit, plus the predicates that
// depend on it (validity, canonicalization, coercibility, operator
// typing, mutability, circularity).
type Context struct {
	types      map[string]*ast.TypeDecl
	aliases    map[string]*ast.TypeAliasDecl
	protocols  map[string]*ast.ProtocolDecl
	functions  map[string][]*ast.FuncDecl
	globals    map[string]*ast.VarAssignDecl
	extensions []*ast.ExtensionDecl
}

// NewContext returns an empty Context; call RegisterTopLevelDecls to
// seed it from a parsed translation unit.
func NewContext() *Context {
	return &Context{
		types:     make(map[string]*ast.TypeDecl),
		aliases:   make(map[string]*ast.TypeAliasDecl),
		protocols: make(map[string]*ast.ProtocolDecl),
		functions: make(map[string][]*ast.FuncDecl),
		globals:   make(map[string]*ast.VarAssignDecl),
	}
}

// RegisterTopLevelDecls seeds the Context from a translation unit and
// performs the registration-order checks of spec.md §4.6 steps 1-2:
// extension attachment, field/method backpointers, duplicate-name
// rejection, circular-type detection, and the supplemented
// protocol-conformance check (SPEC_FULL.md §3). Step 3 (the normal tree
// walk) is the caller's responsibility via Analyzer.Analyze.
func (c *Context) RegisterTopLevelDecls(tu *ast.TranslationUnit, sink *diagnostics.Sink) {
	for _, td := range tu.Types {
		c.types[td.Name] = td
	}
	for _, a := range tu.Aliases {
		c.aliases[a.Name] = a
	}
	for _, p := range tu.Protocols {
		c.protocols[p.Name] = p
	}
	for _, g := range tu.Globals {
		c.globals[g.Name] = g
	}
	for _, f := range tu.Functions {
		c.functions[f.Name] = append(c.functions[f.Name], f)
	}
	c.extensions = tu.Extensions

	// Step 1: attach extension methods to their target TypeDecl.
	for _, ext := range tu.Extensions {
		target := c.ResolveTypeRef(ext.TargetTypeRef)
		td, ok := c.Decl(target, false)
		if !ok {
			sink.Errorf(diagnostics.UnknownType, ext.Pos(), "unknown type %q in extension", ext.TargetTypeRef.String())
			continue
		}
		ext.ResolvedTarget = td
		for _, m := range ext.Methods {
			m.Parent = td
			m.Kind = ast.FuncMethod
			for _, a := range m.Args {
				a.OwnerMethod = m
			}
			td.Methods = append(td.Methods, m)
		}
	}

	// Step 2: field backpointers, duplicate-name checks, circularity.
	for _, td := range tu.Types {
		c.registerFields(td, sink)
		c.registerMethodSignatures(td, sink)
	}
	for _, td := range tu.Types {
		if !td.Indirect && c.IsCircularType(td) {
			sink.Errorf(diagnostics.ReferenceSelfInProp, td.Pos(), "type %q references itself through a non-indirect field", td.Name)
		}
		if td.Deinitializer != nil {
			td.Deinitializer.Parent = td
		}
	}

	c.checkProtocolConformance(tu, sink)
}

func (c *Context) registerFields(td *ast.TypeDecl, sink *diagnostics.Sink) {
	seen := make(map[string]bool, len(td.Fields))
	for _, f := range td.Fields {
		f.Parent = td
		f.ResolvedType = c.ResolveTypeRef(f.TypeRef)
		if seen[f.Name] {
			sink.Errorf(diagnostics.DuplicateField, f.Pos(), "duplicate field %q in type %q", f.Name, td.Name)
			continue
		}
		seen[f.Name] = true
	}
}

// registerMethodSignatures mangles every method/initializer signature
// and rejects exact duplicates. Extension methods were already appended
// into td.Methods in step 1, so this check is deliberately against the
// combined list rather than "within each extension's own list" —
// spec.md §9's open question leaves this a deliberate implementation
// choice, and the combined check is the stricter (superset) one.
func (c *Context) registerMethodSignatures(td *ast.TypeDecl, sink *diagnostics.Sink) {
	seenMethods := make(map[string]bool, len(td.Methods))
	for _, m := range td.Methods {
		m.Parent = td
		mangled := c.mangleMethod(m)
		if seenMethods[mangled] {
			sink.Errorf(diagnostics.DuplicateMethod, m.Pos(), "duplicate method %q on type %q", m.Name, td.Name)
			continue
		}
		seenMethods[mangled] = true
	}

	seenInits := make(map[string]bool, len(td.Initializers))
	for _, init := range td.Initializers {
		init.Parent = td
		mangled := c.mangleMethod(init)
		if seenInits[mangled] {
			sink.Errorf(diagnostics.DuplicateMethod, init.Pos(), "duplicate initializer on type %q", td.Name)
			continue
		}
		seenInits[mangled] = true
	}
}

// mangleMethod resolves a FuncDecl's argument/return types (if not
// already resolved) and returns its mangled signature string.
func (c *Context) mangleMethod(f *ast.FuncDecl) string {
	argTypes := make([]types.Type, 0, len(f.Args))
	for _, a := range f.Args {
		a.OwnerMethod = f
		if a.IsImplicitSelf {
			continue
		}
		if a.ResolvedType == nil {
			a.ResolvedType = c.ResolveTypeRef(a.TypeRef)
		}
		argTypes = append(argTypes, a.ResolvedType)
	}
	f.MangledSignature = mangle.Name(f.Name, argTypes)
	return f.MangledSignature
}

// checkProtocolConformance implements the supplemented conformance
// check (SPEC_FULL.md §3): every required method of each protocol a
// TypeDecl conforms to must have a matching mangled signature among the
// type's methods (including attached extension methods).
func (c *Context) checkProtocolConformance(tu *ast.TranslationUnit, sink *diagnostics.Sink) {
	for _, td := range tu.Types {
		for _, protoName := range td.ConformedProtocols {
			proto, ok := c.protocols[protoName]
			if !ok {
				sink.Errorf(diagnostics.UnknownType, td.Pos(), "type %q conforms to unknown protocol %q", td.Name, protoName)
				continue
			}
			for _, req := range proto.RequiredMethods {
				argTypes := make([]types.Type, len(req.Args))
				for i, a := range req.Args {
					argTypes[i] = c.ResolveTypeRef(a)
				}
				want := mangle.Name(req.Name, argTypes)
				found := false
				for _, m := range td.Methods {
					if m.MangledSignature == want {
						found = true
						break
					}
				}
				if !found {
					var ret types.Type
					if req.ReturnType != nil {
						ret = c.ResolveTypeRef(req.ReturnType)
					}
					sink.Errorf(diagnostics.ProtocolConformanceFailure, td.Pos(),
						"type %q does not conform to protocol %q: missing %s",
						td.Name, protoName, mangle.Signature(req.Name, argTypes, ret))
				}
			}
		}
	}
}

// ResolveTypeRef converts a parser-produced TypeRef into a types.Type.
// It does not validate that Custom names resolve — call IsValidType for
// that — since a TypeRef may legitimately name a forward-referenced
// type during registration.
func (c *Context) ResolveTypeRef(ref ast.TypeRef) types.Type {
	switch r := ref.(type) {
	case nil:
		return types.Void{}
	case *ast.NamedTypeRef:
		return resolveBuiltinName(r.Name)
	case *ast.PointerTypeRef:
		return types.Pointer{Pointee: c.ResolveTypeRef(r.Pointee)}
	case *ast.TupleTypeRef:
		elems := make([]types.Type, len(r.Elements))
		for i, e := range r.Elements {
			elems[i] = c.ResolveTypeRef(e)
		}
		return types.Tuple{Elements: elems}
	case *ast.FunctionTypeRef:
		args := make([]types.Type, len(r.Args))
		for i, a := range r.Args {
			args[i] = c.ResolveTypeRef(a)
		}
		var ret types.Type = types.Void{}
		if r.Return != nil {
			ret = c.ResolveTypeRef(r.Return)
		}
		return types.Function{Args: args, Return: ret, HasVarArgs: r.HasVarArgs}
	default:
		return types.Error{}
	}
}

// resolveBuiltinName maps a bare type name to a builtin Type, or to
// Custom(name) if it names neither a builtin nor (yet known to be) an
// alias/TypeDecl — the caller canonicalizes/validates separately.
func resolveBuiltinName(name string) types.Type {
	switch name {
	case "Void":
		return types.Void{}
	case "Bool":
		return types.Bool{}
	case "Int8":
		return types.Int{Width: 8, Signed: true}
	case "Int16":
		return types.Int{Width: 16, Signed: true}
	case "Int32":
		return types.Int{Width: 32, Signed: true}
	case "Int64", "Int":
		return types.Int{Width: 64, Signed: true}
	case "UInt8":
		return types.Int{Width: 8, Signed: false}
	case "UInt16":
		return types.Int{Width: 16, Signed: false}
	case "UInt32":
		return types.Int{Width: 32, Signed: false}
	case "UInt64", "UInt":
		return types.Int{Width: 64, Signed: false}
	case "Float32":
		return types.Float{Width: 32}
	case "Float64", "Float":
		return types.Float{Width: 64}
	case "String":
		return types.String{}
	case "Any":
		return types.Any{}
	default:
		return types.Custom{Name: name}
	}
}

// Decl performs the nominal lookup of spec.md §4.1's `decl(for:
// canonicalized:)`.
func (c *Context) Decl(t types.Type, canonicalized bool) (*ast.TypeDecl, bool) {
	if t == nil {
		return nil, false
	}
	if !canonicalized {
		t = c.CanonicalType(t)
	}
	custom, ok := t.(types.Custom)
	if !ok {
		return nil, false
	}
	td, ok := c.types[custom.Name]
	return td, ok
}

// TypeNamed looks up a TypeDecl directly by its declared name, without
// going through a types.Type (used when a call-site callee is a bare
// name that might name a type's initializer, spec.md §4.3.6).
func (c *Context) TypeNamed(name string) (*ast.TypeDecl, bool) {
	td, ok := c.types[name]
	return td, ok
}

// Functions returns every free FuncDecl registered under name (possibly
// overloaded, possibly empty).
func (c *Context) Functions(name string) []*ast.FuncDecl {
	return c.functions[name]
}

// Global looks up a top-level VarAssignDecl by name.
func (c *Context) Global(name string) (*ast.VarAssignDecl, bool) {
	v, ok := c.globals[name]
	return v, ok
}

// Protocol looks up a registered protocol declaration by name.
func (c *Context) Protocol(name string) (*ast.ProtocolDecl, bool) {
	p, ok := c.protocols[name]
	return p, ok
}

// IsValidType reports whether every Custom name embedded in t resolves
// to a registered TypeDecl or TypeAliasDecl, recursing into composites
// (spec.md §4.1).
func (c *Context) IsValidType(t types.Type) bool {
	if t == nil {
		return false
	}
	switch v := t.(type) {
	case types.Void, types.Bool, types.Int, types.Float, types.String, types.Any, types.Error:
		return true
	case types.Pointer:
		return c.IsValidType(v.Pointee)
	case types.Tuple:
		for _, e := range v.Elements {
			if !c.IsValidType(e) {
				return false
			}
		}
		return true
	case types.Function:
		for _, a := range v.Args {
			if !c.IsValidType(a) {
				return false
			}
		}
		if v.Return != nil {
			return c.IsValidType(v.Return)
		}
		return true
	case types.Custom:
		if _, ok := c.types[v.Name]; ok {
			return true
		}
		_, ok := c.aliases[v.Name]
		return ok
	default:
		return false
	}
}

// CanonicalType chases TypeAlias chains to their bound target and
// recurses into composite types (spec.md §3.1, §4.1). The result never
// contains an alias name.
func (c *Context) CanonicalType(t types.Type) types.Type {
	if t == nil {
		return types.Error{}
	}
	switch v := t.(type) {
	case types.Custom:
		if alias, ok := c.aliases[v.Name]; ok {
			return c.CanonicalType(c.ResolveTypeRef(alias.BoundType))
		}
		return v
	case types.Pointer:
		return types.Pointer{Pointee: c.CanonicalType(v.Pointee)}
	case types.Tuple:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = c.CanonicalType(e)
		}
		return types.Tuple{Elements: elems}
	case types.Function:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = c.CanonicalType(a)
		}
		var ret types.Type
		if v.Return != nil {
			ret = c.CanonicalType(v.Return)
		}
		return types.Function{Args: args, Return: ret, HasVarArgs: v.HasVarArgs}
	default:
		return t
	}
}

// CanCoerce implements spec.md §4.1's coercibility predicate: identity;
// integer-of-narrower to integer-of-wider of the same signedness;
// any-int to any-float of sufficient width; pointer to pointer
// (permissive — see DESIGN.md for the Open Questions resolution); and
// Any on the target side only. The Error sentinel coerces to/from
// anything, to suppress cascades.
func (c *Context) CanCoerce(from, to types.Type) bool {
	from = c.CanonicalType(from)
	to = c.CanonicalType(to)
	if types.IsError(from) || types.IsError(to) {
		return true
	}
	if from.Equals(to) {
		return true
	}
	if _, ok := to.(types.Any); ok {
		return true
	}
	if _, ok := from.(types.Any); ok {
		return false
	}
	switch f := from.(type) {
	case types.Int:
		if t, ok := to.(types.Int); ok {
			return f.Signed == t.Signed && f.Width <= t.Width
		}
		if t, ok := to.(types.Float); ok {
			return f.Width <= t.Width
		}
		return false
	case types.Float:
		if t, ok := to.(types.Float); ok {
			return f.Width <= t.Width
		}
		return false
	case types.Pointer:
		_, ok := to.(types.Pointer)
		return ok
	default:
		return false
	}
}

// CanBeNil reports whether t canonicalizes to a Pointer type (spec.md
// §4.1).
func (c *Context) CanBeNil(t types.Type) bool {
	_, ok := c.CanonicalType(t).(types.Pointer)
	return ok
}

// OperatorType resolves the builtin operator result type by category
// (spec.md §4.1): arithmetic returns the operand type; comparison
// returns Bool; logical requires Bool operands and returns Bool;
// bitwise requires an integer operand and returns it.
func (c *Context) OperatorType(op string, operand types.Type) (types.Type, bool) {
	operand = c.CanonicalType(operand)
	switch categoryOf(op) {
	case CategoryArithmetic:
		if types.IsNumeric(operand) {
			return operand, true
		}
		return nil, false
	case CategoryComparison:
		return types.Bool{}, true
	case CategoryLogical:
		if _, ok := operand.(types.Bool); ok {
			return types.Bool{}, true
		}
		return nil, false
	case CategoryBitwise:
		if types.IsInteger(operand) {
			return operand, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// IsCircularType runs the DFS of spec.md §4.1: self-containment through
// a chain of non-indirect fields is circular; an indirect field breaks
// the chain since it holds a reference rather than an embedded value.
func (c *Context) IsCircularType(td *ast.TypeDecl) bool {
	visiting := make(map[string]bool)
	var dfs func(t *ast.TypeDecl) bool
	dfs = func(t *ast.TypeDecl) bool {
		if t == nil {
			return false
		}
		if visiting[t.Name] {
			return true
		}
		visiting[t.Name] = true
		defer delete(visiting, t.Name)
		for _, f := range t.Fields {
			ft := c.CanonicalType(f.ResolvedType)
			custom, ok := ft.(types.Custom)
			if !ok {
				continue
			}
			target, ok := c.types[custom.Name]
			if !ok || target.Indirect {
				continue
			}
			if dfs(target) {
				return true
			}
		}
		return false
	}
	return dfs(td)
}
