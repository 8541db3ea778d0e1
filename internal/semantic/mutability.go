package semantic

import "github.com/yonihemi/trill/internal/ast"

// Mutability is the result of the mutability oracle (spec.md §3.4): an
// l-value is either mutable, or immutable with an optional culprit name
// to surface in a diagnostic.
type Mutability struct {
	Mutable bool
	Culprit string
}

func mutable() Mutability                 { return Mutability{Mutable: true} }
func immutable(culprit string) Mutability { return Mutability{Mutable: false, Culprit: culprit} }

// MutabilityOf implements the oracle of spec.md §3.4 over a resolved
// (post-analysis) expression tree. It walks the access-path root and
// applies, bottom to top, the propagation rules: `let`/`var` bindings,
// field access (indirect or not — both defer to the binding at the root,
// per §3.4's explicit note that indirection does not launder `let` into
// mutable), dereference, and function-argument/self auto-mutability for
// indirect aggregate types.
func (c *Context) MutabilityOf(expr ast.Expression) Mutability {
	switch e := expr.(type) {
	case *ast.VarExpr:
		return c.mutabilityOfDecl(e.Decl)

	case *ast.FieldLookupExpr:
		return c.MutabilityOf(e.Receiver)

	case *ast.TupleFieldExpr:
		return c.MutabilityOf(e.Receiver)

	case *ast.SubscriptExpr:
		return c.MutabilityOf(e.Receiver)

	case *ast.PrefixExpr:
		if e.Operator == "*" {
			return c.MutabilityOf(e.Right)
		}
		return immutable("")

	default:
		return immutable("")
	}
}

func (c *Context) mutabilityOfDecl(decl interface{}) Mutability {
	switch d := decl.(type) {
	case *ast.VarAssignDecl:
		if d.IsMutable {
			return mutable()
		}
		return immutable(d.Name)

	case *ast.FuncArgumentDecl:
		if d.IsImplicitSelf {
			indirect := false
			if td, ok := c.Decl(d.ResolvedType, true); ok {
				indirect = td.Indirect
			}
			if indirect || (d.OwnerMethod != nil && d.OwnerMethod.IsMutating) {
				return mutable()
			}
			return immutable("self")
		}
		if td, ok := c.Decl(d.ResolvedType, false); ok && td.Indirect {
			return mutable()
		}
		return immutable(d.InternalName)

	default:
		return immutable("")
	}
}
