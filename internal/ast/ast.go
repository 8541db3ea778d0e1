// Package ast defines the Abstract Syntax Tree node types consumed by the
// semantic analyzer. Nodes are constructed by an external parser and
// mutated exactly once, by the analyzer, which fills the mutable
// Type/Decl annotation slots each expression and statement carries;
// code generation reads the result thereafter.
//
// A tiny Node/Expression/Statement interface set, one struct per
// concrete node, each owning its own Pos/String.
package ast

import (
	"strings"

	"github.com/yonihemi/trill/internal/token"
	"github.com/yonihemi/trill/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value. Every expression carries
// a mutable Type slot (spec.md §3.3) that starts unset and is filled in
// by the analyzer, and a mutable Decl slot for use-sites that resolve to
// a declaration.
type Expression interface {
	Node
	expressionNode()
	GetType() types.Type
	SetType(types.Type)
}

// Statement is any node that performs an action without producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// TranslationUnit is the root of the AST: everything a parser produced
// for one source file. The Semantic Context is seeded from these six
// declaration slices: the five of spec.md §6 plus the supplemented
// Protocols.
type TranslationUnit struct {
	Types      []*TypeDecl
	Functions  []*FuncDecl
	Globals    []*VarAssignDecl
	Extensions []*ExtensionDecl
	Aliases    []*TypeAliasDecl
	Protocols  []*ProtocolDecl
	// Statements holds any top-level executable statements (a simple
	// "main" sequence), analyzed after all declarations are registered.
	Statements []Statement
}

func (tu *TranslationUnit) Pos() token.Position {
	if len(tu.Statements) > 0 {
		return tu.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (tu *TranslationUnit) String() string {
	var sb strings.Builder
	for _, t := range tu.Types {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	for _, f := range tu.Functions {
		sb.WriteString(f.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// exprBase factors the annotation slots shared by every expression node
// so individual node types only declare their own data.
type exprBase struct {
	Type types.Type
}

func (e *exprBase) GetType() types.Type  { return e.Type }
func (e *exprBase) SetType(t types.Type) { e.Type = t }
func (*exprBase) expressionNode()        {}
