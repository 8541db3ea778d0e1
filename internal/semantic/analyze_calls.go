package semantic

import (
	"strings"

	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/mangle"
	"github.com/yonihemi/trill/internal/types"
)

// analyzeCallExpr implements spec.md §4.3.6: candidate-set construction,
// first-match-wins overload resolution, and the mutating-method-on-
// immutable-receiver check.
func (a *Analyzer) analyzeCallExpr(e *ast.CallExpr) {
	for _, arg := range e.Args {
		a.analyzeExpression(arg.Value)
	}

	candidates, fromFieldLookup, diagnosed := a.buildCandidates(e)
	if len(candidates) == 0 {
		if !diagnosed {
			a.sink.Errorf(diagnostics.UnknownFunction, e.Pos(), "no function named %q", calleeName(e.Callee))
		}
		e.SetType(types.Error{})
		return
	}

	match := a.resolveOverload(candidates, e.Args)
	if match == nil {
		a.sink.Errorf(diagnostics.NoViableOverload, e.Pos(), "no viable overload for %q", calleeName(e.Callee))
		sigs := make([]string, len(candidates))
		for i, c := range candidates {
			sigs[i] = mangle.Signature(c.Name, c.SignatureTypes(), c.ResolvedReturnType)
		}
		a.sink.AddNote(diagnostics.Candidates, e.Pos(), "candidates: %s", strings.Join(sigs, "; "))
		e.SetType(types.Error{})
		return
	}

	e.Decl = match
	if match.Kind == ast.FuncInitializer && match.Parent != nil {
		// An initializer call yields a value of the type it initializes.
		e.SetType(types.Custom{Name: match.Parent.Name})
	} else {
		e.SetType(match.ResolvedReturnType)
	}

	if fromFieldLookup && match.IsMutating {
		if fl, ok := e.Callee.(*ast.FieldLookupExpr); ok {
			if mut := a.ctx.MutabilityOf(fl.Receiver); !mut.Mutable {
				a.sink.Errorf(diagnostics.AssignToConstant, e.Pos(), "cannot call mutating method %q on an immutable value", match.Name)
			}
		}
	}
}

func calleeName(callee ast.Expression) string {
	switch c := callee.(type) {
	case *ast.VarExpr:
		return c.Name
	case *ast.FieldLookupExpr:
		return c.Name
	default:
		return callee.String()
	}
}

// buildCandidates implements the candidate-set rules of spec.md §4.3.6.
// The second return value reports whether the candidates came from a
// field-lookup callee (needed for the mutating-receiver check); the
// third reports whether a diagnostic was already emitted for the
// callee itself, so the caller doesn't pile an UnknownFunction on top.
func (a *Analyzer) buildCandidates(e *ast.CallExpr) ([]*ast.FuncDecl, bool, bool) {
	switch callee := e.Callee.(type) {
	case *ast.FieldLookupExpr:
		// A non-nil slice tells analyzeFieldLookup this is a call site,
		// even when the call has no arguments.
		callArgs := e.Args
		if callArgs == nil {
			callArgs = []*ast.CallArgument{}
		}
		a.analyzeFieldLookup(callee, callArgs)
		if callee.IsFieldFunctor {
			field := callee.Decl.(*ast.FieldDecl)
			fn := a.ctx.CanonicalType(field.ResolvedType).(types.Function)
			return []*ast.FuncDecl{syntheticForeignWrapper(fn)}, true, false
		}
		switch d := callee.Decl.(type) {
		case []*ast.FuncDecl:
			return d, true, false
		case *ast.FuncDecl:
			return []*ast.FuncDecl{d}, true, false
		case *ast.FieldDecl:
			a.sink.Errorf(diagnostics.CallNonFunction, e.Pos(), "field %q cannot be called with these arguments", callee.Name)
			return nil, true, true
		default:
			// analyzeFieldLookup already emitted UnknownField/UnknownType/
			// FieldOfFunctionType for this callee.
			return nil, true, true
		}

	case *ast.VarExpr:
		name := callee.Name
		if td, ok := a.ctx.TypeNamed(name); ok {
			return td.Initializers, false, false
		}
		if d, ok := a.tr.Lookup(name); ok {
			if wrapper, ok2 := a.functionWrapperFor(d); ok2 {
				callee.Decl = d
				callee.SetType(a.typeOfBinding(d))
				a.registerCaptureIfNeeded(name, d)
				return []*ast.FuncDecl{wrapper}, false, false
			}
		}
		if g, ok := a.ctx.Global(name); ok {
			if wrapper, ok2 := a.functionWrapperFor(g); ok2 {
				callee.Decl = g
				callee.SetType(g.ResolvedType)
				return []*ast.FuncDecl{wrapper}, false, false
			}
		}
		return a.ctx.Functions(name), false, false

	default:
		a.analyzeExpression(e.Callee)
		if fn, ok := a.ctx.CanonicalType(e.Callee.GetType()).(types.Function); ok {
			return []*ast.FuncDecl{syntheticForeignWrapper(fn)}, false, false
		}
		a.sink.Errorf(diagnostics.CallNonFunction, e.Pos(), "cannot call a non-function value")
		return nil, false, true
	}
}

// functionWrapperFor returns a synthetic foreign wrapper (spec.md §4.4)
// for decl when decl is a variable/argument bound to a Function-typed
// value.
func (a *Analyzer) functionWrapperFor(decl interface{}) (*ast.FuncDecl, bool) {
	var resolved types.Type
	switch d := decl.(type) {
	case *ast.VarAssignDecl:
		resolved = d.ResolvedType
	case *ast.FuncArgumentDecl:
		resolved = d.ResolvedType
	default:
		return nil, false
	}
	fn, ok := a.ctx.CanonicalType(resolved).(types.Function)
	if !ok {
		return nil, false
	}
	return syntheticForeignWrapper(fn), true
}

// syntheticForeignWrapper implements spec.md §4.4: a manufactured
// FuncDecl with empty name, modifiers {foreign, implicit}, and unnamed
// argument decls carrying fn's signature, so overload resolution can
// treat an anonymous callable uniformly with named candidates. It never
// participates in name-based lookup since it is never registered
// anywhere by name.
func syntheticForeignWrapper(fn types.Function) *ast.FuncDecl {
	args := make([]*ast.FuncArgumentDecl, len(fn.Args))
	for i, t := range fn.Args {
		args[i] = &ast.FuncArgumentDecl{ResolvedType: t}
	}
	wrapper := &ast.FuncDecl{
		Name:               "",
		IsForeign:          true,
		IsImplicit:         true,
		Args:               args,
		ResolvedReturnType: fn.Return,
		HasVarArgs:         fn.HasVarArgs,
	}
	for _, arg := range args {
		arg.OwnerMethod = wrapper
	}
	return wrapper
}

// nonSelfArgs drops the implicit self argument from a candidate's
// parameter list (spec.md §4.3.6 bullet 1).
func nonSelfArgs(args []*ast.FuncArgumentDecl) []*ast.FuncArgumentDecl {
	out := make([]*ast.FuncArgumentDecl, 0, len(args))
	for _, a := range args {
		if a.IsImplicitSelf {
			continue
		}
		out = append(out, a)
	}
	return out
}

// resolveOverload implements spec.md §4.3.6's scoring: the first
// candidate, in declaration order, whose parameter list matches wins.
// Literal coercions are only committed to the argument AST once a
// candidate is chosen (spec.md §9: "never mutate a literal's type
// unless a candidate ultimately accepts").
func (a *Analyzer) resolveOverload(candidates []*ast.FuncDecl, args []*ast.CallArgument) *ast.FuncDecl {
candidateLoop:
	for _, cand := range candidates {
		params := nonSelfArgs(cand.Args)
		if cand.HasVarArgs {
			if len(args) < len(params) {
				continue
			}
		} else if len(params) != len(args) {
			continue
		}

		for i, p := range params {
			if p.ExternalLabel != "" && p.ExternalLabel != args[i].Label {
				continue candidateLoop
			}
			paramType := a.ctx.CanonicalType(p.ResolvedType)
			if !a.argMatchesParam(args[i].Value, paramType) {
				continue candidateLoop
			}
		}

		for i, p := range params {
			a.coerceLiteral(args[i].Value, p.ResolvedType)
		}
		return cand
	}
	return nil
}

func (a *Analyzer) argMatchesParam(argExpr ast.Expression, paramType types.Type) bool {
	if _, isAny := paramType.(types.Any); isAny {
		return true
	}
	switch argExpr.(type) {
	case *ast.IntegerLiteral:
		if types.IsInteger(paramType) || types.IsFloat(paramType) {
			return true
		}
	case *ast.NilLiteral:
		if a.ctx.CanBeNil(paramType) {
			return true
		}
	}
	return a.ctx.CanonicalType(argExpr.GetType()).Equals(paramType)
}
