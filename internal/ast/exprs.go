// Expression nodes (spec.md §3.3). Every expression embeds exprBase for
// its mutable Type slot; use-sites that resolve to a declaration also
// carry a Decl field holding a weak reference into the Semantic Context
// (spec.md §3.3's "decl slots on use-sites are weak back-references").
package ast

import (
	"strconv"
	"strings"

	"github.com/yonihemi/trill/internal/token"
	"github.com/yonihemi/trill/internal/types"
)

// VarExpr is a bare-name reference: a local, a global, or a function
// name (spec.md §4.3.3).
type VarExpr struct {
	exprBase
	Token token.Position
	Name  string
	// Decl is filled in by the analyzer: *ast.VarAssignDecl,
	// *ast.FuncArgumentDecl, or *ast.FuncDecl (a bare reference to a
	// free function that has exactly one overload).
	Decl interface{}
}

func (v *VarExpr) Pos() token.Position { return v.Token }
func (v *VarExpr) String() string      { return v.Name }

// IntegerLiteral. Per spec.md §4.3.6/§4.3.7, its Type starts as a
// default integer type and is rewritten ("literal coercion") to match
// whatever slot it ends up filling.
type IntegerLiteral struct {
	exprBase
	Token token.Position
	Value int64
}

func (l *IntegerLiteral) Pos() token.Position { return l.Token }
func (l *IntegerLiteral) String() string      { return strconv.FormatInt(l.Value, 10) }

// FloatLiteral.
type FloatLiteral struct {
	exprBase
	Token token.Position
	Value float64
}

func (l *FloatLiteral) Pos() token.Position { return l.Token }
func (l *FloatLiteral) String() string      { return strconv.FormatFloat(l.Value, 'g', -1, 64) }

// StringLiteral.
type StringLiteral struct {
	exprBase
	Token token.Position
	Value string
}

func (l *StringLiteral) Pos() token.Position { return l.Token }
func (l *StringLiteral) String() string      { return strconv.Quote(l.Value) }

// BoolLiteral.
type BoolLiteral struct {
	exprBase
	Token token.Position
	Value bool
}

func (l *BoolLiteral) Pos() token.Position { return l.Token }
func (l *BoolLiteral) String() string      { return strconv.FormatBool(l.Value) }

// NilLiteral is retyped, like integer literals, to whatever pointer
// type it ends up filling (spec.md §4.3.7).
type NilLiteral struct {
	exprBase
	Token token.Position
}

func (l *NilLiteral) Pos() token.Position { return l.Token }
func (l *NilLiteral) String() string      { return "nil" }

// InfixExpr covers binary operators, assignment, and the `as` cast
// (spec.md §4.3.7 treats all three as "infix" operator analysis). For a
// cast (Operator == "as") the right-hand side is a type, not a value:
// CastTarget carries it and Right is nil.
type InfixExpr struct {
	exprBase
	Token      token.Position
	Left       Expression
	Operator   string
	Right      Expression // nil when Operator == "as"
	CastTarget TypeRef    // non-nil only when Operator == "as"

	// Decl is set when Operator resolves to a user-declared operator
	// overload (SPEC_FULL.md §3) rather than a builtin operator.
	Decl interface{}
}

func (b *InfixExpr) Pos() token.Position { return b.Token }
func (b *InfixExpr) String() string {
	if b.Operator == "as" {
		return "(" + b.Left.String() + " as " + b.CastTarget.String() + ")"
	}
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// PrefixExpr covers unary operators: `-x`, `not x`, `*p` (dereference),
// `&e` (address-of) (spec.md §4.3.7).
type PrefixExpr struct {
	exprBase
	Token    token.Position
	Operator string
	Right    Expression
}

func (u *PrefixExpr) Pos() token.Position { return u.Token }
func (u *PrefixExpr) String() string      { return "(" + u.Operator + u.Right.String() + ")" }

// CallArgument is one argument at a call site, with an optional external
// label used for parameter-label matching (spec.md §4.3.6).
type CallArgument struct {
	Label string // "" if positional
	Value Expression
}

// CallExpr is a function/method/initializer call (spec.md §4.3.6).
type CallExpr struct {
	exprBase
	Token  token.Position
	Callee Expression
	Args   []*CallArgument

	// Decl is the resolved candidate: *ast.FuncDecl.
	Decl interface{}
}

func (c *CallExpr) Pos() token.Position { return c.Token }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a.Label != "" {
			parts[i] = a.Label + ": " + a.Value.String()
		} else {
			parts[i] = a.Value.String()
		}
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// FieldLookupExpr is `lhs.name`, resolved per spec.md §4.3.4 to either a
// field or a method (possibly a field-as-functor when IsFieldFunctor).
type FieldLookupExpr struct {
	exprBase
	Token     token.Position
	Receiver  Expression
	Name      string
	Decl      interface{} // *ast.FieldDecl or *ast.FuncDecl (or []*ast.FuncDecl pre-call)
	IsFieldFunctor bool
}

func (f *FieldLookupExpr) Pos() token.Position { return f.Token }
func (f *FieldLookupExpr) String() string      { return f.Receiver.String() + "." + f.Name }

// TupleFieldExpr is `lhs.N`, an integer-literal tuple index (spec.md
// §4.3.5).
type TupleFieldExpr struct {
	exprBase
	Token    token.Position
	Receiver Expression
	Index    int
}

func (t *TupleFieldExpr) Pos() token.Position { return t.Token }
func (t *TupleFieldExpr) String() string      { return t.Receiver.String() + "." + strconv.Itoa(t.Index) }

// SubscriptExpr is `lhs[index]`, legal on pointer types (pointer
// arithmetic indexing).
type SubscriptExpr struct {
	exprBase
	Token    token.Position
	Receiver Expression
	Index    Expression
}

func (s *SubscriptExpr) Pos() token.Position { return s.Token }
func (s *SubscriptExpr) String() string      { return s.Receiver.String() + "[" + s.Index.String() + "]" }

// ClosureExpr is an anonymous function literal with capture-by-reference
// semantics (spec.md §4.3.9).
type ClosureExpr struct {
	exprBase
	Token      token.Position
	Args       []*FuncArgumentDecl
	ReturnType TypeRef
	Body       *CompoundStmt

	// Captures collects the set of non-local decls referenced from the
	// body, filled in during body analysis (spec.md §4.3.9).
	Captures []interface{}
}

func (c *ClosureExpr) Pos() token.Position { return c.Token }
func (c *ClosureExpr) String() string      { return "closure" }

// SizeofExpr is `sizeof(operand)`, where operand is either a bare type
// name or a general expression (spec.md §4.3.10). The expression's own
// type (via exprBase) is the size's numeric type; ResolvedOperandType
// records what was actually measured (the "valueType" spec.md §4.3.10
// describes), for a future code generator to compute the byte size of.
type SizeofExpr struct {
	exprBase
	Token        token.Position
	TypeOperand  TypeRef    // non-nil when operand names a valid type
	ValueOperand Expression // non-nil otherwise

	ResolvedOperandType types.Type
}

func (s *SizeofExpr) Pos() token.Position { return s.Token }
func (s *SizeofExpr) String() string {
	if s.TypeOperand != nil {
		return "sizeof(" + s.TypeOperand.String() + ")"
	}
	return "sizeof(" + s.ValueOperand.String() + ")"
}

// PoundFunctionExpr is `#function` (spec.md §4.3.11).
type PoundFunctionExpr struct {
	exprBase
	Token token.Position
	// Name is the pretty name of the enclosing function, filled in by
	// the analyzer.
	Name string
}

func (p *PoundFunctionExpr) Pos() token.Position { return p.Token }
func (p *PoundFunctionExpr) String() string      { return "#function" }
