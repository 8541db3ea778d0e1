package semantic

import (
	"testing"

	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
)

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{&ast.BreakStmt{}}})
	if !hasKind(sink, diagnostics.BreakNotAllowed) {
		t.Errorf("expected BreakNotAllowed, got %v", errorKinds(sink))
	}
}

func TestContinueOutsideLoopIsRejected(t *testing.T) {
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{&ast.ContinueStmt{}}})
	if !hasKind(sink, diagnostics.ContinueNotAllowed) {
		t.Errorf("expected ContinueNotAllowed, got %v", errorKinds(sink))
	}
}

func TestBreakInsideWhileIsAllowed(t *testing.T) {
	loop := &ast.WhileStmt{
		Condition: &ast.BoolLiteral{Value: true},
		Body:      &ast.CompoundStmt{Statements: []ast.Statement{&ast.BreakStmt{}}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{loop}})
	if hasKind(sink, diagnostics.BreakNotAllowed) {
		t.Error("break inside a while loop should be allowed")
	}
}

func TestSwitchOverPointerIsRejected(t *testing.T) {
	decl := &ast.VarAssignDecl{Name: "p", TypeRef: &ast.PointerTypeRef{Pointee: intRef()}}
	sw := &ast.SwitchStmt{Subject: &ast.VarExpr{Name: "p"}}
	stmts := []ast.Statement{&ast.VarDeclStmt{Decl: decl}, sw}
	sink := analyzeTU(&ast.TranslationUnit{Statements: stmts})
	if !hasKind(sink, diagnostics.CannotSwitch) {
		t.Errorf("expected CannotSwitch, got %v", errorKinds(sink))
	}
}

func TestSwitchOverIntIsAllowed(t *testing.T) {
	sw := &ast.SwitchStmt{
		Subject: &ast.IntegerLiteral{Value: 1},
		Cases: []*ast.CaseClause{
			{Values: []ast.Expression{&ast.IntegerLiteral{Value: 1}}, Body: &ast.CompoundStmt{}},
		},
	}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{sw}})
	if hasKind(sink, diagnostics.CannotSwitch) {
		t.Error("switching over an integer should be allowed")
	}
}

func TestUnreachableCodeAfterReturnIsFlagged(t *testing.T) {
	f := &ast.FuncDecl{
		Name:       "f",
		ReturnType: intRef(),
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.IntegerLiteral{Value: 1}},
			&ast.ExpressionStmt{Expression: &ast.IntegerLiteral{Value: 2}},
		}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	found := false
	for _, d := range sink.All() {
		if d.Kind == diagnostics.UnreachableCode {
			found = true
		}
	}
	if !found {
		t.Error("expected an UnreachableCode warning after the return statement")
	}
}

func TestUnreachableCodeAfterBreakIsFlagged(t *testing.T) {
	loop := &ast.WhileStmt{
		Condition: &ast.BoolLiteral{Value: true},
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.BreakStmt{},
			&ast.ExpressionStmt{Expression: &ast.IntegerLiteral{Value: 1}},
		}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{loop}})
	found := false
	for _, d := range sink.All() {
		if d.Kind == diagnostics.UnreachableCode {
			found = true
		}
	}
	if !found {
		t.Error("expected an UnreachableCode warning after the break statement")
	}
}

func TestNoUnreachableCodeWarningWithoutTerminator(t *testing.T) {
	f := &ast.FuncDecl{
		Name: "f",
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.ExpressionStmt{Expression: &ast.IntegerLiteral{Value: 1}},
			&ast.ExpressionStmt{Expression: &ast.IntegerLiteral{Value: 2}},
		}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	for _, d := range sink.All() {
		if d.Kind == diagnostics.UnreachableCode {
			t.Error("unexpected UnreachableCode warning with no terminating statement")
		}
	}
}

func TestIfElseChainWhereBothBranchesReturnTerminatesBlock(t *testing.T) {
	f := &ast.FuncDecl{
		Name:       "abs",
		ReturnType: intRef(),
		Args:       []*ast.FuncArgumentDecl{{InternalName: "n", TypeRef: intRef()}},
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.IfStmt{
				Condition: &ast.InfixExpr{Left: &ast.VarExpr{Name: "n"}, Operator: "<", Right: &ast.IntegerLiteral{Value: 0}},
				Then: &ast.CompoundStmt{Statements: []ast.Statement{
					&ast.ReturnStmt{Value: &ast.PrefixExpr{Operator: "-", Right: &ast.VarExpr{Name: "n"}}},
				}},
				Else: &ast.CompoundStmt{Statements: []ast.Statement{
					&ast.ReturnStmt{Value: &ast.VarExpr{Name: "n"}},
				}},
			},
			&ast.ExpressionStmt{Expression: &ast.IntegerLiteral{Value: 99}},
		}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	found := false
	for _, d := range sink.All() {
		if d.Kind == diagnostics.UnreachableCode {
			found = true
		}
	}
	if !found {
		t.Error("expected the statement after an exhaustively-returning if/else to be flagged unreachable")
	}
}

func TestIfWithoutElseNeverTerminatesTheBlock(t *testing.T) {
	f := &ast.FuncDecl{
		Name: "f",
		Args: []*ast.FuncArgumentDecl{{InternalName: "n", TypeRef: intRef()}},
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.IfStmt{
				Condition: &ast.InfixExpr{Left: &ast.VarExpr{Name: "n"}, Operator: "<", Right: &ast.IntegerLiteral{Value: 0}},
				Then: &ast.CompoundStmt{Statements: []ast.Statement{
					&ast.ReturnStmt{},
				}},
			},
			&ast.ExpressionStmt{Expression: &ast.IntegerLiteral{Value: 1}},
		}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	for _, d := range sink.All() {
		if d.Kind == diagnostics.UnreachableCode {
			t.Error("an if with no else should never mark following statements unreachable")
		}
	}
}
