// Package mangle builds the mangled signature strings used to tell
// legitimate overloads (different mangled names) apart from
// exact-duplicate declarations (same mangled name), as a single
// deterministic string key the Semantic Context can use as a map key
// when rejecting duplicate method signatures.
package mangle

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yonihemi/trill/internal/types"
)

// normalizer puts identifiers into canonical composed form (NFC) before
// mangling so that two declarations spelled with different Unicode
// representations of the same glyphs (e.g. a precomposed accented
// letter vs. the base letter plus a combining mark) don't produce
// distinct mangled names and silently escape the duplicate-method
// check. Unlike case folding, NFC never changes letter case, so it
// stays consistent with the case-sensitive exact-match lookups used
// everywhere else (Context.types, Context.functions, MethodsNamed,
// FieldNamed).
var normalizer = norm.NFC

// Name returns the mangled signature for a method/function named `name`
// with the given (self-excluded) parameter types, as used for duplicate
// method/initializer detection (spec.md §3.2, §4.6) and for matching
// protocol requirements. The "Candidates" note uses Signature instead.
func Name(name string, argTypes []types.Type) string {
	var sb strings.Builder
	sb.WriteString(normalizer.String(name))
	sb.WriteByte('(')
	for i, t := range argTypes {
		if i > 0 {
			sb.WriteByte(',')
		}
		if t == nil {
			sb.WriteString("?")
			continue
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Signature formats a human-readable signature for a Candidates note
// (spec.md §7): the unmangled name plus its parameter types, e.g.
// `f(Int) -> Int`.
func Signature(name string, argTypes []types.Type, ret types.Type) string {
	parts := make([]string, len(argTypes))
	for i, t := range argTypes {
		if t == nil {
			parts[i] = "?"
			continue
		}
		parts[i] = t.String()
	}
	retStr := "Void"
	if ret != nil {
		retStr = ret.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ") -> " + retStr
}
