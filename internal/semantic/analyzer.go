package semantic

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/types"
)

// Analyzer is the Semantic Analyzer of spec.md §2 item 6: it owns a
// Context and a Transformer and implements every visit hook in §4.3.
type Analyzer struct {
	ctx *Context
	tr  *Transformer
	sink *diagnostics.Sink

	// closureLocals is a stack of name sets, one per currently-open
	// closure, tracking which names were bound *inside* that closure
	// (its own parameters plus any locally declared variables). A
	// variable reference that resolves to a name absent from the
	// innermost set is, by construction, bound in some enclosing scope
	// and is therefore a capture (spec.md §4.3.9).
	closureLocals []map[string]bool
}

// NewAnalyzer returns a ready-to-use Analyzer with a fresh Context,
// Transformer, and diagnostic Sink.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		ctx:  NewContext(),
		tr:   NewTransformer(),
		sink: diagnostics.NewSink(),
	}
}

// Context returns the Semantic Context the analyzer populated.
func (a *Analyzer) Context() *Context { return a.ctx }

// Sink returns the diagnostic log accumulated so far.
func (a *Analyzer) Sink() *diagnostics.Sink { return a.sink }

// Analyze performs the full pass of spec.md §4.6: register top-level
// declarations (steps 1-2), then walk every declaration and top-level
// statement (step 3). It returns the diagnostic sink; the input
// translation unit is mutated in place with type/decl annotations.
func (a *Analyzer) Analyze(tu *ast.TranslationUnit) *diagnostics.Sink {
	a.ctx.RegisterTopLevelDecls(tu, a.sink)

	for _, td := range tu.Types {
		a.analyzeTypeDeclBody(td)
	}
	for _, f := range tu.Functions {
		a.analyzeFuncDecl(f)
	}
	for _, g := range tu.Globals {
		a.analyzeVarAssignDecl(g)
	}
	for _, stmt := range tu.Statements {
		a.analyzeStatement(stmt)
	}
	return a.sink
}

// analyzeTypeDeclBody analyzes field initializers and every
// method/initializer/deinitializer body of td, with currentTypeDecl set
// for the duration. The implicit self argument's type comes from the
// method's Parent, not from currentTypeDecl.
func (a *Analyzer) analyzeTypeDeclBody(td *ast.TypeDecl) {
	a.tr.WithTypeDecl(td, func() {
		for _, f := range td.Fields {
			if f.InitValue == nil {
				continue
			}
			a.analyzeExpression(f.InitValue)
			a.coerceLiteral(f.InitValue, f.ResolvedType)
			if !a.ctx.CanCoerce(f.InitValue.GetType(), f.ResolvedType) {
				a.sink.Errorf(diagnostics.CannotCoerce, f.InitValue.Pos(),
					"cannot initialize field %q (%s) with %s", f.Name, types.Describe(f.ResolvedType), types.Describe(f.InitValue.GetType()))
			}
		}
		for _, m := range td.Methods {
			a.analyzeFuncDecl(m)
		}
		for _, init := range td.Initializers {
			a.analyzeFuncDecl(init)
		}
		if td.Deinitializer != nil {
			a.analyzeFuncDecl(td.Deinitializer)
		}
	})
}

// analyzeFuncDecl implements spec.md §4.3.1's ordered precondition
// checks, each short-circuiting the declaration on failure, followed by
// body analysis and the all-paths-return / deinit-on-struct checks.
func (a *Analyzer) analyzeFuncDecl(f *ast.FuncDecl) {
	if f.IsForeign && f.Kind != ast.FuncInitializer && f.Body != nil {
		a.sink.Errorf(diagnostics.ForeignFunctionWithBody, f.Pos(), "foreign function %q may not have a body", f.Name)
		return
	}
	if !f.IsForeign && !f.IsImplicit && f.Body == nil {
		a.sink.Errorf(diagnostics.NonForeignFunctionWithoutBody, f.Pos(), "function %q requires a body", f.Name)
		return
	}
	if f.HasVarArgs && !f.IsForeign {
		a.sink.Errorf(diagnostics.VarArgsInNonForeignDecl, f.Pos(), "only a foreign function may declare variadic arguments (%q)", f.Name)
		return
	}

	f.ResolvedReturnType = a.ctx.ResolveTypeRef(f.ReturnType)
	if !a.ctx.IsValidType(f.ResolvedReturnType) {
		a.sink.Errorf(diagnostics.UnknownType, f.Pos(), "unknown return type %q for %q", typeRefString(f.ReturnType), f.Name)
		return
	}

	for _, arg := range f.Args {
		arg.OwnerMethod = f
		if arg.IsImplicitSelf {
			if f.Parent != nil {
				arg.ResolvedType = types.Custom{Name: f.Parent.Name}
			}
			continue
		}
		arg.ResolvedType = a.ctx.ResolveTypeRef(arg.TypeRef)
	}

	if f.Body != nil {
		a.tr.WithFunction(f, func() {
			saved := a.tr.PushScope()
			defer a.tr.PopScope(saved)
			for _, arg := range f.Args {
				if arg.InternalName != "" {
					a.tr.Define(arg.InternalName, arg)
				}
			}
			a.analyzeCompoundStmt(f.Body)
		})

		if _, isVoid := a.ctx.CanonicalType(f.ResolvedReturnType).(types.Void); !isVoid && f.Kind != ast.FuncInitializer {
			if !f.Body.HasReturn {
				a.sink.Errorf(diagnostics.NotAllPathsReturn, f.Pos(), "function %q does not return a value on all paths", f.Name)
			}
		}
	}

	if f.Kind == ast.FuncDeinitializer && f.Parent != nil && !f.Parent.Indirect {
		a.sink.Errorf(diagnostics.DeinitOnStruct, f.Pos(), "type %q is not indirect and cannot declare a deinitializer", f.Parent.Name)
	}
}

// analyzeVarAssignDecl implements spec.md §4.3.2, shared by globals,
// locals, and (indirectly, via analyzeTypeDeclBody) does not cover
// fields — fields use their own initializer-coercion logic since they
// carry no `var`/`let` RHS-vs-declared ordering subtlety beyond what
// registerFields already resolved.
func (a *Analyzer) analyzeVarAssignDecl(v *ast.VarAssignDecl) {
	if v.IsForeign {
		if v.Init != nil {
			a.sink.Errorf(diagnostics.ForeignVarWithRHS, v.Pos(), "foreign variable %q may not have an initializer", v.Name)
		}
		if v.TypeRef != nil {
			v.ResolvedType = a.ctx.ResolveTypeRef(v.TypeRef)
			if !a.ctx.IsValidType(v.ResolvedType) {
				a.sink.Errorf(diagnostics.UnknownType, v.Pos(), "unknown type for foreign variable %q", v.Name)
			}
		}
		return
	}

	var declared types.Type
	if v.TypeRef != nil {
		declared = a.ctx.ResolveTypeRef(v.TypeRef)
		if !a.ctx.IsValidType(declared) {
			a.sink.Errorf(diagnostics.UnknownType, v.Pos(), "unknown type for %q", v.Name)
			v.ResolvedType = types.Error{}
			a.bindLocal(v)
			return
		}
	}

	if v.Init != nil {
		a.analyzeExpression(v.Init)
	}

	switch {
	case declared != nil && v.Init != nil:
		a.coerceLiteral(v.Init, declared)
		if !a.ctx.CanCoerce(v.Init.GetType(), declared) {
			a.sink.Errorf(diagnostics.CannotCoerce, v.Init.Pos(), "cannot assign %s to %s", types.Describe(v.Init.GetType()), types.Describe(declared))
		}
		v.ResolvedType = declared
	case declared != nil:
		v.ResolvedType = declared
	case v.Init != nil:
		v.ResolvedType = v.Init.GetType()
	default:
		v.ResolvedType = types.Error{}
	}

	a.bindLocal(v)
}

// bindLocal inserts v into the active scope, unless it is a field
// (spec.md §4.3.2's "unless a field, insert into current scope"), and
// records it as closure-local if a closure is currently open (spec.md
// §4.3.9).
func (a *Analyzer) bindLocal(v *ast.VarAssignDecl) {
	if v.Parent != nil {
		return
	}
	a.tr.Define(v.Name, v)
	if len(a.closureLocals) > 0 {
		a.closureLocals[len(a.closureLocals)-1][v.Name] = true
	}
}

// coerceLiteral retypes an integer or nil literal to target, per the
// literal-bias coercion spec.md §4.3.2/§4.3.6/§9 describe; it never
// mutates a non-literal expression's type.
func (a *Analyzer) coerceLiteral(expr ast.Expression, target types.Type) {
	if target == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		ct := a.ctx.CanonicalType(target)
		if types.IsInteger(ct) || types.IsFloat(ct) {
			e.SetType(target)
		}
	case *ast.NilLiteral:
		if a.ctx.CanBeNil(target) {
			e.SetType(target)
		}
	}
}

func typeRefString(ref ast.TypeRef) string {
	if ref == nil {
		return "Void"
	}
	return ref.String()
}
