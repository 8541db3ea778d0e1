// Package types implements the Type Model (spec.md §3.1): a closed tagged
// union of language types plus structural equality. Canonicalization and
// coercibility depend on the Semantic Context (they need to resolve
// Custom names and chase TypeAlias declarations) and therefore live in
// internal/semantic, not here — this package only knows how to compare
// and print types.
//
// Every concrete type exposes Kind()/String()/Equals() so callers in
// internal/semantic can treat them uniformly through a single interface.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Type for fast switch dispatch
// without repeated type assertions.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindAny
	KindPointer
	KindTuple
	KindFunction
	KindCustom
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "Void"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindAny:
		return "Any"
	case KindPointer:
		return "Pointer"
	case KindTuple:
		return "Tuple"
	case KindFunction:
		return "Function"
	case KindCustom:
		return "Custom"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Type is the interface every language type implements. It is a closed
// set by convention (the variants below); code outside this package
// should type-switch rather than implement new variants.
type Type interface {
	Kind() Kind
	String() string
	// Equals reports structural equality, except for Custom which
	// compares by name (spec.md §3.1).
	Equals(other Type) bool
}

// Void is the unit type: no value, used for statements and procedures.
type Void struct{}

func (Void) Kind() Kind { return KindVoid }
func (Void) String() string { return "Void" }
func (Void) Equals(o Type) bool { _, ok := o.(Void); return ok }

// Bool is the boolean type.
type Bool struct{}

func (Bool) Kind() Kind { return KindBool }
func (Bool) String() string { return "Bool" }
func (Bool) Equals(o Type) bool { _, ok := o.(Bool); return ok }

// Int is a fixed-width integer type, signed or unsigned.
type Int struct {
	Width  int // 8, 16, 32, 64
	Signed bool
}

func (i Int) Kind() Kind { return KindInt }
func (i Int) String() string {
	prefix := "Int"
	if !i.Signed {
		prefix = "UInt"
	}
	return prefix + strconv.Itoa(i.Width)
}
func (i Int) Equals(o Type) bool {
	oi, ok := o.(Int)
	return ok && oi.Width == i.Width && oi.Signed == i.Signed
}

// Float is a fixed-width floating point type.
type Float struct {
	Width int // 32, 64
}

func (f Float) Kind() Kind { return KindFloat }
func (f Float) String() string { return "Float" + strconv.Itoa(f.Width) }
func (f Float) Equals(o Type) bool { of, ok := o.(Float); return ok && of.Width == f.Width }

// String is the built-in string type.
type String struct{}

func (String) Kind() Kind { return KindString }
func (String) String() string { return "String" }
func (String) Equals(o Type) bool { _, ok := o.(String); return ok }

// Any matches every type on one side of a match test (spec.md §3.1);
// used only for variadic foreign arguments. It is never implicitly
// coercible both ways — that asymmetry is enforced by the Context's
// CanCoerce, not here.
type Any struct{}

func (Any) Kind() Kind { return KindAny }
func (Any) String() string { return "Any" }
func (Any) Equals(o Type) bool { _, ok := o.(Any); return ok }

// Pointer is a typed pointer to another type.
type Pointer struct {
	Pointee Type
}

func (p Pointer) Kind() Kind { return KindPointer }
func (p Pointer) String() string { return "*" + p.Pointee.String() }
func (p Pointer) Equals(o Type) bool {
	op, ok := o.(Pointer)
	return ok && p.Pointee.Equals(op.Pointee)
}

// Tuple is an ordered, fixed-arity sequence of element types.
type Tuple struct {
	Elements []Type
}

func (t Tuple) Kind() Kind { return KindTuple }
func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t Tuple) Equals(o Type) bool {
	ot, ok := o.(Tuple)
	if !ok || len(ot.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equals(ot.Elements[i]) {
			return false
		}
	}
	return true
}

// Function is a callable signature: ordered argument types, a return
// type, and whether it accepts trailing variadic arguments (only legal
// on foreign declarations, per spec.md §3.2).
type Function struct {
	Args       []Type
	Return     Type
	HasVarArgs bool
}

func (f Function) Kind() Kind { return KindFunction }
func (f Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	variadic := ""
	if f.HasVarArgs {
		variadic = ", ..."
	}
	ret := "Void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + variadic + ") -> " + ret
}
func (f Function) Equals(o Type) bool {
	of, ok := o.(Function)
	if !ok || len(of.Args) != len(f.Args) || of.HasVarArgs != f.HasVarArgs {
		return false
	}
	if (f.Return == nil) != (of.Return == nil) {
		return false
	}
	if f.Return != nil && !f.Return.Equals(of.Return) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equals(of.Args[i]) {
			return false
		}
	}
	return true
}

// Custom is a nominal reference to a user TypeDecl, resolved through the
// Semantic Context. Equality is by name only (spec.md §3.1) — two
// Custom values with the same name are the same type even if produced
// by different parses, which is what lets the Context look them up by
// map key.
type Custom struct {
	Name string
}

func (c Custom) Kind() Kind { return KindCustom }
func (c Custom) String() string { return c.Name }
func (c Custom) Equals(o Type) bool { oc, ok := o.(Custom); return ok && oc.Name == c.Name }

// Error is the sentinel type used to suppress cascade diagnostics once
// an expression has already failed to type-check (spec.md §7).
type Error struct{}

func (Error) Kind() Kind { return KindError }
func (Error) String() string { return "<error>" }
func (Error) Equals(o Type) bool { _, ok := o.(Error); return ok }

// IsError reports whether t is the Error sentinel (or nil, which callers
// sometimes use interchangeably before a type has been assigned).
func IsError(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(Error)
	return ok
}

// IsInteger reports whether t is an Int of any width/signedness.
func IsInteger(t Type) bool {
	_, ok := t.(Int)
	return ok
}

// IsFloat reports whether t is a Float of any width.
func IsFloat(t Type) bool {
	_, ok := t.(Float)
	return ok
}

// IsNumeric reports whether t is an Int or a Float.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// Describe formats a type as "Kind(String)" for diagnostic messages
// built by internal/semantic; it never changes type-checking behavior.
func Describe(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", t.Kind(), t.String())
}
