package semantic

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/types"
)

// analyzeExpression dispatches on the concrete expression node and is
// the sole entry point every hook in this file is reached through.
func (a *Analyzer) analyzeExpression(e ast.Expression) {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		v.SetType(types.Int{Width: 64, Signed: true})
	case *ast.FloatLiteral:
		v.SetType(types.Float{Width: 64})
	case *ast.StringLiteral:
		v.SetType(types.String{})
	case *ast.BoolLiteral:
		v.SetType(types.Bool{})
	case *ast.NilLiteral:
		// Pointer{Any} is an untyped-nil marker: CanCoerce's permissive
		// pointer-to-pointer rule lets it match any concrete pointer
		// type once a literal-coercion site retypes it (spec.md §3.1's
		// `Any` matches-anything rule, reused here rather than adding a
		// dedicated untyped-nil variant to the Type Model).
		v.SetType(types.Pointer{Pointee: types.Any{}})
	case *ast.VarExpr:
		a.analyzeVarExpr(v)
	case *ast.InfixExpr:
		a.analyzeInfixExpr(v)
	case *ast.PrefixExpr:
		a.analyzePrefixExpr(v)
	case *ast.CallExpr:
		a.analyzeCallExpr(v)
	case *ast.FieldLookupExpr:
		a.analyzeFieldLookup(v, nil)
	case *ast.TupleFieldExpr:
		a.analyzeTupleFieldExpr(v)
	case *ast.SubscriptExpr:
		a.analyzeSubscriptExpr(v)
	case *ast.ClosureExpr:
		a.analyzeClosureExpr(v)
	case *ast.SizeofExpr:
		a.analyzeSizeofExpr(v)
	case *ast.PoundFunctionExpr:
		a.analyzePoundFunctionExpr(v)
	default:
		e.SetType(types.Error{})
	}
}

// analyzeVarExpr resolves an identifier local-before-global-before-free-
// function. `self` needs no dedicated first-lookup branch: it is bound
// into varBindings exactly like any other argument when its owning
// method's body is entered (see analyzeFuncDecl), so the ordinary
// varBindings lookup below already resolves it before falling through
// to globals/functions.
func (a *Analyzer) analyzeVarExpr(e *ast.VarExpr) {
	if d, ok := a.tr.Lookup(e.Name); ok {
		e.Decl = d
		e.SetType(a.typeOfBinding(d))
		a.registerCaptureIfNeeded(e.Name, d)
		return
	}
	if g, ok := a.ctx.Global(e.Name); ok {
		e.Decl = g
		e.SetType(g.ResolvedType)
		return
	}
	if fns := a.ctx.Functions(e.Name); len(fns) > 0 {
		if len(fns) > 1 {
			a.sink.Errorf(diagnostics.AmbiguousReference, e.Pos(), "ambiguous reference to overloaded function %q", e.Name)
			e.SetType(types.Error{})
			return
		}
		e.Decl = fns[0]
		e.SetType(types.Function{Args: fns[0].SignatureTypes(), Return: fns[0].ResolvedReturnType, HasVarArgs: fns[0].HasVarArgs})
		return
	}
	a.sink.Errorf(diagnostics.UnknownVariableName, e.Pos(), "unknown identifier %q", e.Name)
	e.SetType(types.Error{})
}

func (a *Analyzer) typeOfBinding(d interface{}) types.Type {
	switch v := d.(type) {
	case *ast.VarAssignDecl:
		return v.ResolvedType
	case *ast.FuncArgumentDecl:
		return v.ResolvedType
	default:
		return types.Error{}
	}
}

// registerCaptureIfNeeded implements the capture discovery of spec.md
// §4.3.9: when a VarExpr resolves to a local binding that was not
// declared inside the innermost currently-open closure, that binding is
// a non-local decl and gets added to the closure's Captures.
func (a *Analyzer) registerCaptureIfNeeded(name string, decl interface{}) {
	if len(a.closureLocals) == 0 {
		return
	}
	switch decl.(type) {
	case *ast.VarAssignDecl, *ast.FuncArgumentDecl:
	default:
		return
	}
	top := len(a.closureLocals) - 1
	if a.closureLocals[top][name] {
		return
	}
	cl := a.tr.CurrentClosure()
	if cl == nil {
		return
	}
	for _, c := range cl.Captures {
		if c == decl {
			return
		}
	}
	cl.Captures = append(cl.Captures, decl)
}

// analyzeFieldLookup implements spec.md §4.3.4. callArgs is non-nil only
// when this lookup is the callee of a CallExpr, enabling the
// field-as-functor exact-match case and deferring method-overload
// ambiguity to the caller's overload resolution (§4.3.6).
func (a *Analyzer) analyzeFieldLookup(e *ast.FieldLookupExpr, callArgs []*ast.CallArgument) {
	a.analyzeExpression(e.Receiver)
	recvType := a.ctx.CanonicalType(e.Receiver.GetType())

	if _, isFn := recvType.(types.Function); isFn {
		a.sink.Errorf(diagnostics.FieldOfFunctionType, e.Pos(), "cannot access field %q of a function-typed value", e.Name)
		e.SetType(types.Error{})
		return
	}

	td, ok := a.ctx.Decl(recvType, true)
	if !ok {
		a.sink.Errorf(diagnostics.UnknownType, e.Pos(), "cannot resolve a type for %s to look up %q", e.Receiver.String(), e.Name)
		e.SetType(types.Error{})
		return
	}

	if callArgs != nil {
		if field := td.FieldNamed(e.Name); field != nil {
			if fn, ok := a.ctx.CanonicalType(field.ResolvedType).(types.Function); ok && a.argTypesMatchExactly(fn, callArgs) {
				e.Decl = field
				e.IsFieldFunctor = true
				e.SetType(field.ResolvedType)
				return
			}
		}
	}

	if field := td.FieldNamed(e.Name); field != nil {
		e.Decl = field
		e.SetType(field.ResolvedType)
		return
	}

	methods := td.MethodsNamed(e.Name)
	if len(methods) > 0 {
		if callArgs != nil {
			e.Decl = methods
			return
		}
		if len(methods) == 1 {
			e.Decl = methods[0]
			e.SetType(types.Function{Args: methods[0].SignatureTypes(), Return: methods[0].ResolvedReturnType})
			return
		}
		a.sink.Errorf(diagnostics.AmbiguousReference, e.Pos(), "ambiguous reference to overloaded method %q", e.Name)
		e.SetType(types.Error{})
		return
	}

	a.sink.Errorf(diagnostics.UnknownField, e.Pos(), "type %q has no field or method named %q", td.Name, e.Name)
	e.SetType(types.Error{})
}

func (a *Analyzer) argTypesMatchExactly(fn types.Function, args []*ast.CallArgument) bool {
	if len(fn.Args) != len(args) {
		return false
	}
	for i, p := range fn.Args {
		if !p.Equals(a.ctx.CanonicalType(args[i].Value.GetType())) {
			return false
		}
	}
	return true
}

// analyzeTupleFieldExpr implements spec.md §4.3.5.
func (a *Analyzer) analyzeTupleFieldExpr(e *ast.TupleFieldExpr) {
	a.analyzeExpression(e.Receiver)
	recvType := a.ctx.CanonicalType(e.Receiver.GetType())
	tup, ok := recvType.(types.Tuple)
	if !ok {
		a.sink.Errorf(diagnostics.IndexIntoNonTuple, e.Pos(), "cannot index non-tuple type %s", types.Describe(recvType))
		e.SetType(types.Error{})
		return
	}
	if e.Index < 0 || e.Index >= len(tup.Elements) {
		a.sink.Errorf(diagnostics.OutOfBoundsTupleField, e.Pos(), "tuple field %d out of bounds (arity %d)", e.Index, len(tup.Elements))
		e.SetType(types.Error{})
		return
	}
	e.SetType(tup.Elements[e.Index])
}

// analyzeSubscriptExpr covers pointer-arithmetic indexing `p[i]`.
func (a *Analyzer) analyzeSubscriptExpr(e *ast.SubscriptExpr) {
	a.analyzeExpression(e.Receiver)
	a.analyzeExpression(e.Index)
	recvType := a.ctx.CanonicalType(e.Receiver.GetType())
	ptr, ok := recvType.(types.Pointer)
	if !ok {
		a.sink.Errorf(diagnostics.CannotSubscript, e.Pos(), "cannot subscript non-pointer type %s", types.Describe(recvType))
		e.SetType(types.Error{})
		return
	}
	if !types.IsInteger(a.ctx.CanonicalType(e.Index.GetType())) {
		a.sink.Errorf(diagnostics.InvalidOperands, e.Index.Pos(), "subscript index must be an integer")
	}
	e.SetType(ptr.Pointee)
}

// analyzeClosureExpr implements spec.md §4.3.9.
func (a *Analyzer) analyzeClosureExpr(e *ast.ClosureExpr) {
	var ret types.Type = types.Void{}
	if e.ReturnType != nil {
		ret = a.ctx.ResolveTypeRef(e.ReturnType)
	}
	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		arg.ResolvedType = a.ctx.ResolveTypeRef(arg.TypeRef)
		argTypes[i] = arg.ResolvedType
	}
	e.SetType(types.Function{Args: argTypes, Return: ret})

	ownNames := map[string]bool{}
	for _, arg := range e.Args {
		if arg.InternalName != "" {
			ownNames[arg.InternalName] = true
		}
	}
	a.closureLocals = append(a.closureLocals, ownNames)

	a.tr.WithClosure(e, func() {
		saved := a.tr.PushScope()
		defer a.tr.PopScope(saved)
		for _, arg := range e.Args {
			if arg.InternalName != "" {
				a.tr.Define(arg.InternalName, arg)
			}
		}
		a.analyzeCompoundStmt(e.Body)
	})

	a.closureLocals = a.closureLocals[:len(a.closureLocals)-1]
}

// analyzeSizeofExpr implements spec.md §4.3.10.
func (a *Analyzer) analyzeSizeofExpr(e *ast.SizeofExpr) {
	e.SetType(types.Int{Width: 64, Signed: false})
	if e.TypeOperand != nil {
		t := a.ctx.ResolveTypeRef(e.TypeOperand)
		if !a.ctx.IsValidType(t) {
			a.sink.Errorf(diagnostics.UnknownType, e.Pos(), "sizeof: unknown type %q", e.TypeOperand.String())
			return
		}
		e.ResolvedOperandType = t
		return
	}
	a.analyzeExpression(e.ValueOperand)
	e.ResolvedOperandType = e.ValueOperand.GetType()
}

// analyzePoundFunctionExpr implements spec.md §4.3.11.
func (a *Analyzer) analyzePoundFunctionExpr(e *ast.PoundFunctionExpr) {
	e.SetType(types.String{})
	if fn := a.tr.CurrentFunction(); fn != nil {
		e.Name = fn.Name
		return
	}
	if a.tr.CurrentClosure() != nil {
		e.Name = "closure"
		return
	}
	a.sink.Errorf(diagnostics.PoundFunctionOutsideFunction, e.Pos(), "#function used outside any function scope")
	e.SetType(types.Error{})
}
