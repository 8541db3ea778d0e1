package semantic

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/types"
)

// analyzeInfixExpr implements spec.md §4.3.7's infix cases: assignment,
// `as` cast, and builtin/overloaded binary operators.
func (a *Analyzer) analyzeInfixExpr(e *ast.InfixExpr) {
	a.analyzeExpression(e.Left)

	if e.Operator == "as" {
		a.analyzeCast(e)
		return
	}

	a.analyzeExpression(e.Right)

	if e.Operator == "=" {
		a.analyzeAssignment(e)
		return
	}

	leftCanon := a.ctx.CanonicalType(e.Left.GetType())
	rightCanon := a.ctx.CanonicalType(e.Right.GetType())
	a.applySymmetricLiteralCoercion(e.Left, e.Right, leftCanon, rightCanon)
	leftCanon = a.ctx.CanonicalType(e.Left.GetType())
	rightCanon = a.ctx.CanonicalType(e.Right.GetType())

	if result, ok := a.ctx.OperatorType(e.Operator, leftCanon); ok {
		e.SetType(result)
		return
	}

	if fn := a.resolveOperatorOverload(e.Operator, leftCanon, rightCanon); fn != nil {
		e.Decl = fn
		e.SetType(fn.ResolvedReturnType)
		return
	}

	a.sink.Errorf(diagnostics.InvalidOperands, e.Pos(), "invalid operand types %s and %s for operator %q",
		types.Describe(leftCanon), types.Describe(rightCanon), e.Operator)
	e.SetType(types.Void{})
}

// resolveOperatorOverload implements the supplemented operator
// overloading described in SPEC_FULL.md §3: tried only when the left
// operand's canonical type is Custom and no builtin operatorType rule
// matched. It first looks for a matching method named `op` on the
// left operand's TypeDecl (including attached extension methods), then
// falls back to a free function named `op` taking (left, right).
func (a *Analyzer) resolveOperatorOverload(op string, left, right types.Type) *ast.FuncDecl {
	if !isOperatorSymbol(op) {
		return nil
	}
	custom, ok := left.(types.Custom)
	if !ok {
		return nil
	}
	if td, ok := a.ctx.Decl(custom, true); ok {
		for _, m := range td.MethodsNamed(op) {
			params := nonSelfArgs(m.Args)
			if len(params) == 1 && a.ctx.CanonicalType(params[0].ResolvedType).Equals(right) {
				return m
			}
		}
	}
	for _, fn := range a.ctx.Functions(op) {
		if len(fn.Args) == 2 &&
			a.ctx.CanonicalType(fn.Args[0].ResolvedType).Equals(left) &&
			a.ctx.CanonicalType(fn.Args[1].ResolvedType).Equals(right) {
			return fn
		}
	}
	return nil
}

// analyzeAssignment implements the assignment-operator rules of spec.md
// §4.3.7: Void result, AssignToConstant unless inside an initializer,
// and NonPointerNil when assigning nil to a non-nullable slot.
func (a *Analyzer) analyzeAssignment(e *ast.InfixExpr) {
	e.SetType(types.Void{})

	mut := a.ctx.MutabilityOf(e.Left)
	insideInit := a.tr.CurrentFunction() != nil && a.tr.CurrentFunction().Kind == ast.FuncInitializer
	if !mut.Mutable && !insideInit {
		a.sink.Errorf(diagnostics.AssignToConstant, e.Pos(), "cannot assign to immutable binding %q", mut.Culprit)
	}

	leftType := a.ctx.CanonicalType(e.Left.GetType())
	if _, isNil := e.Right.(*ast.NilLiteral); isNil {
		if !a.ctx.CanBeNil(leftType) {
			a.sink.Errorf(diagnostics.NonPointerNil, e.Right.Pos(), "cannot assign nil to non-pointer type %s", types.Describe(leftType))
			return
		}
		a.coerceLiteral(e.Right, leftType)
		return
	}

	a.applySymmetricLiteralCoercion(e.Left, e.Right, leftType, a.ctx.CanonicalType(e.Right.GetType()))
	if !a.ctx.CanCoerce(e.Right.GetType(), leftType) {
		a.sink.Errorf(diagnostics.CannotCoerce, e.Right.Pos(), "cannot assign %s to %s", types.Describe(e.Right.GetType()), types.Describe(leftType))
	}
}

// analyzeCast implements the `as` case of spec.md §4.3.7.
func (a *Analyzer) analyzeCast(e *ast.InfixExpr) {
	target := a.ctx.ResolveTypeRef(e.CastTarget)
	if !a.ctx.IsValidType(target) {
		a.sink.Errorf(diagnostics.UnknownType, e.Pos(), "unknown cast target type %q", typeRefString(e.CastTarget))
		e.SetType(types.Error{})
		return
	}
	if !a.ctx.CanCoerce(e.Left.GetType(), target) {
		a.sink.Errorf(diagnostics.CannotCoerce, e.Pos(), "cannot cast %s to %s", types.Describe(e.Left.GetType()), types.Describe(target))
		e.SetType(types.Error{})
		return
	}
	e.SetType(target)
}

// applySymmetricLiteralCoercion retypes whichever side is an integer or
// nil literal to match the other side's type, per spec.md §4.3.7
// ("integer literal takes the other side's integer type; nil literal
// takes the other side's pointer type").
func (a *Analyzer) applySymmetricLiteralCoercion(left, right ast.Expression, leftType, rightType types.Type) {
	if _, ok := left.(*ast.IntegerLiteral); ok {
		if types.IsNumeric(rightType) {
			a.coerceLiteral(left, rightType)
		}
	} else if _, ok := right.(*ast.IntegerLiteral); ok {
		if types.IsNumeric(leftType) {
			a.coerceLiteral(right, leftType)
		}
	}
	if _, ok := left.(*ast.NilLiteral); ok {
		if a.ctx.CanBeNil(rightType) {
			a.coerceLiteral(left, rightType)
		}
	} else if _, ok := right.(*ast.NilLiteral); ok {
		if a.ctx.CanBeNil(leftType) {
			a.coerceLiteral(right, leftType)
		}
	}
}

// analyzePrefixExpr implements spec.md §4.3.7's prefix cases: `*p`
// dereference, `&e` address-of, and builtin unary operators.
func (a *Analyzer) analyzePrefixExpr(e *ast.PrefixExpr) {
	a.analyzeExpression(e.Right)

	switch e.Operator {
	case "*":
		ptr, ok := a.ctx.CanonicalType(e.Right.GetType()).(types.Pointer)
		if !ok {
			a.sink.Errorf(diagnostics.DereferenceNonPointer, e.Pos(), "cannot dereference non-pointer type %s", types.Describe(e.Right.GetType()))
			e.SetType(types.Error{})
			return
		}
		e.SetType(ptr.Pointee)

	case "&":
		switch e.Right.(type) {
		case *ast.VarExpr, *ast.SubscriptExpr, *ast.FieldLookupExpr:
			e.SetType(types.Pointer{Pointee: e.Right.GetType()})
		default:
			a.sink.Errorf(diagnostics.AddressOfRValue, e.Pos(), "cannot take the address of an rvalue")
			e.SetType(types.Error{})
		}

	default:
		operand := a.ctx.CanonicalType(e.Right.GetType())
		if result, ok := a.ctx.OperatorType(e.Operator, operand); ok {
			e.SetType(result)
			return
		}
		a.sink.Errorf(diagnostics.InvalidOperands, e.Pos(), "invalid operand type %s for operator %q", types.Describe(operand), e.Operator)
		e.SetType(types.Error{})
	}
}
