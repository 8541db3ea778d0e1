package semantic

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/types"
)

// analyzeStatement dispatches on the concrete statement node (spec.md
// §4.3.8).
func (a *Analyzer) analyzeStatement(s ast.Statement) {
	switch v := s.(type) {
	case *ast.CompoundStmt:
		a.analyzeCompoundStmt(v)
	case *ast.ExpressionStmt:
		a.analyzeExpression(v.Expression)
	case *ast.VarDeclStmt:
		a.analyzeVarAssignDecl(v.Decl)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(v)
	case *ast.BreakStmt:
		if a.tr.CurrentBreakTarget() == nil {
			a.sink.Errorf(diagnostics.BreakNotAllowed, v.Pos(), "break used outside a loop or switch")
		}
	case *ast.ContinueStmt:
		if a.tr.CurrentBreakTarget() == nil {
			a.sink.Errorf(diagnostics.ContinueNotAllowed, v.Pos(), "continue used outside a loop")
		}
	case *ast.IfStmt:
		a.analyzeIfStmt(v)
	case *ast.WhileStmt:
		a.analyzeWhileStmt(v)
	case *ast.SwitchStmt:
		a.analyzeSwitchStmt(v)
	case *ast.FuncDecl:
		a.analyzeFuncDecl(v)
	}
}

// analyzeReturnStmt implements spec.md §4.3.8's return-type check: a
// closure's declared return type takes precedence over the enclosing
// function's, since a closure body is analyzed with both set.
func (a *Analyzer) analyzeReturnStmt(s *ast.ReturnStmt) {
	var expected types.Type = types.Void{}
	if cl := a.tr.CurrentClosure(); cl != nil {
		if fn, ok := cl.GetType().(types.Function); ok {
			expected = fn.Return
		}
	} else if fn := a.tr.CurrentFunction(); fn != nil {
		expected = fn.ResolvedReturnType
	}

	if s.Value == nil {
		return
	}
	a.analyzeExpression(s.Value)
	expectedCanon := a.ctx.CanonicalType(expected)
	a.coerceLiteral(s.Value, expectedCanon)
	if !a.ctx.CanCoerce(s.Value.GetType(), expected) {
		a.sink.Errorf(diagnostics.CannotCoerce, s.Value.Pos(), "cannot return %s where %s is expected",
			types.Describe(s.Value.GetType()), types.Describe(expected))
	}
}

func (a *Analyzer) analyzeIfStmt(s *ast.IfStmt) {
	a.analyzeExpression(s.Condition)
	a.analyzeCompoundStmt(s.Then)
	if s.Else != nil {
		a.analyzeStatement(s.Else)
	}
}

func (a *Analyzer) analyzeWhileStmt(s *ast.WhileStmt) {
	a.analyzeExpression(s.Condition)
	a.tr.PushBreakTarget(s)
	defer a.tr.PopBreakTarget()
	a.analyzeCompoundStmt(s.Body)
}

// analyzeSwitchStmt implements spec.md §4.3.8's switch rules, including
// the disallowal of pointer-equality switches.
func (a *Analyzer) analyzeSwitchStmt(s *ast.SwitchStmt) {
	a.analyzeExpression(s.Subject)
	subjectType := a.ctx.CanonicalType(s.Subject.GetType())

	a.tr.PushBreakTarget(s)
	defer a.tr.PopBreakTarget()

	canSwitch := true
	if _, isPointer := subjectType.(types.Pointer); isPointer {
		canSwitch = false
	} else if _, ok := a.ctx.OperatorType("==", subjectType); !ok {
		canSwitch = false
	}
	if !canSwitch {
		a.sink.Errorf(diagnostics.CannotSwitch, s.Pos(), "cannot switch over values of type %s", types.Describe(subjectType))
	}

	for _, c := range s.Cases {
		for _, v := range c.Values {
			a.analyzeExpression(v)
			a.coerceLiteral(v, subjectType)
		}
		a.analyzeCompoundStmt(c.Body)
	}
	if s.Default != nil {
		a.analyzeCompoundStmt(s.Default)
	}
}

// reachState tracks progress through the CompoundStmt reachability state
// machine of spec.md §4.5.
type reachState int

const (
	stateReachable reachState = iota
	stateTerminatedReturn
	stateTerminatedBreak
	stateTerminatedContinue
	stateTerminatedNoreturn
)

// analyzeCompoundStmt implements spec.md §4.2's scope-stack discipline
// and §4.5's reachability state machine: statements after the block's
// control flow has definitely terminated are still analyzed (for their
// own errors) but are flagged as unreachable.
func (a *Analyzer) analyzeCompoundStmt(block *ast.CompoundStmt) {
	saved := a.tr.PushScope()
	defer a.tr.PopScope(saved)

	state := stateReachable
	for _, stmt := range block.Statements {
		if state != stateReachable {
			a.sink.Warnf(diagnostics.UnreachableCode, stmt.Pos(), "unreachable code: this statement follows %s", terminatorName(state))
		}
		a.analyzeStatement(stmt)
		if next, terminates := terminatorState(stmt); terminates && state == stateReachable {
			state = next
		}
	}
	block.HasReturn = state == stateTerminatedReturn || state == stateTerminatedNoreturn
}

// terminatorState reports whether stmt unconditionally terminates the
// block it appears in, and with what kind of terminator.
func terminatorState(stmt ast.Statement) (reachState, bool) {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return stateTerminatedReturn, true
	case *ast.BreakStmt:
		return stateTerminatedBreak, true
	case *ast.ContinueStmt:
		return stateTerminatedContinue, true
	case *ast.ExpressionStmt:
		if call, ok := s.Expression.(*ast.CallExpr); ok {
			if fn, ok := call.Decl.(*ast.FuncDecl); ok && fn.IsNoreturn {
				return stateTerminatedNoreturn, true
			}
		}
	case *ast.IfStmt:
		if s.Then.HasReturn && ifChainTerminates(s) {
			return stateTerminatedReturn, true
		}
	}
	return stateReachable, false
}

// ifChainTerminates reports whether every branch of an if/else-if/.../else
// chain rooted at s terminates by return. A chain with no final `else`
// can always fall through and never terminates.
func ifChainTerminates(s *ast.IfStmt) bool {
	if !s.Then.HasReturn {
		return false
	}
	switch e := s.Else.(type) {
	case nil:
		return false
	case *ast.CompoundStmt:
		return e.HasReturn
	case *ast.IfStmt:
		return ifChainTerminates(e)
	default:
		return false
	}
}

func terminatorName(state reachState) string {
	switch state {
	case stateTerminatedReturn:
		return "a return"
	case stateTerminatedBreak:
		return "a break"
	case stateTerminatedContinue:
		return "a continue"
	case stateTerminatedNoreturn:
		return "a call to a noreturn function"
	default:
		return "a terminating statement"
	}
}
