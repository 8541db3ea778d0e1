// Statement nodes (spec.md §3.3, §4.3.8, §4.5). CompoundStmt is the sole
// owner of its child statements and carries the reachability flag the
// analyzer computes (spec.md §4.5).
package ast

import (
	"strings"

	"github.com/yonihemi/trill/internal/token"
)

// CompoundStmt is a block of statements; it exclusively owns its
// children. HasReturn is set by the analyzer once reachability analysis
// determines every path through the block terminates (spec.md §4.5).
type CompoundStmt struct {
	Token      token.Position
	Statements []Statement
	HasReturn  bool
}

func (c *CompoundStmt) statementNode()      {}
func (c *CompoundStmt) Pos() token.Position { return c.Token }
func (c *CompoundStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range c.Statements {
		sb.WriteString("  ")
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// ExpressionStmt wraps an expression used in statement position.
type ExpressionStmt struct {
	Token      token.Position
	Expression Expression
}

func (e *ExpressionStmt) statementNode()      {}
func (e *ExpressionStmt) Pos() token.Position { return e.Token }
func (e *ExpressionStmt) String() string      { return e.Expression.String() }

// VarDeclStmt is a `let`/`var` declaration appearing as a statement.
type VarDeclStmt struct {
	Token token.Position
	Decl  *VarAssignDecl
}

func (v *VarDeclStmt) statementNode()      {}
func (v *VarDeclStmt) Pos() token.Position { return v.Token }
func (v *VarDeclStmt) String() string      { return v.Decl.String() }

// ReturnStmt returns from the enclosing function or closure (spec.md
// §4.3.8).
type ReturnStmt struct {
	Token token.Position
	Value Expression // nil for a bare `return`
}

func (r *ReturnStmt) statementNode()      {}
func (r *ReturnStmt) Pos() token.Position { return r.Token }
func (r *ReturnStmt) String() string {
	if r.Value != nil {
		return "return " + r.Value.String()
	}
	return "return"
}

// BreakStmt (spec.md §4.3.8).
type BreakStmt struct {
	Token token.Position
}

func (b *BreakStmt) statementNode()      {}
func (b *BreakStmt) Pos() token.Position { return b.Token }
func (b *BreakStmt) String() string      { return "break" }

// ContinueStmt (spec.md §4.3.8).
type ContinueStmt struct {
	Token token.Position
}

func (c *ContinueStmt) statementNode()      {}
func (c *ContinueStmt) Pos() token.Position { return c.Token }
func (c *ContinueStmt) String() string      { return "continue" }

// IfStmt. Else may be nil, a *CompoundStmt, or another *IfStmt (an
// "else if" chain).
type IfStmt struct {
	Token     token.Position
	Condition Expression
	Then      *CompoundStmt
	Else      Statement
}

func (i *IfStmt) statementNode()      {}
func (i *IfStmt) Pos() token.Position { return i.Token }
func (i *IfStmt) String() string {
	s := "if " + i.Condition.String() + " " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is the sole loop construct; it is the current break/continue
// target while its body is analyzed (spec.md §4.2).
type WhileStmt struct {
	Token     token.Position
	Condition Expression
	Body      *CompoundStmt
}

func (w *WhileStmt) statementNode()      {}
func (w *WhileStmt) Pos() token.Position { return w.Token }
func (w *WhileStmt) String() string      { return "while " + w.Condition.String() + " " + w.Body.String() }

// CaseClause is one `case value:` arm of a SwitchStmt.
type CaseClause struct {
	Values []Expression
	Body   *CompoundStmt
}

// SwitchStmt is the current break target while its cases are analyzed
// (spec.md §4.2, §4.3.8). Pointer equality switches are disallowed
// (spec.md §4.3.8).
type SwitchStmt struct {
	Token   token.Position
	Subject Expression
	Cases   []*CaseClause
	Default *CompoundStmt // nil if no default case
}

func (s *SwitchStmt) statementNode()      {}
func (s *SwitchStmt) Pos() token.Position { return s.Token }
func (s *SwitchStmt) String() string      { return "switch " + s.Subject.String() + " { ... }" }
