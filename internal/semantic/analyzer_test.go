package semantic

import (
	"testing"

	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
)

func analyzeTU(tu *ast.TranslationUnit) *diagnostics.Sink {
	return NewAnalyzer().Analyze(tu)
}

func TestForeignFunctionWithBodyIsRejected(t *testing.T) {
	f := &ast.FuncDecl{
		Name:       "puts",
		IsForeign:  true,
		ReturnType: nil,
		Body:       &ast.CompoundStmt{},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	if !hasKind(sink, diagnostics.ForeignFunctionWithBody) {
		t.Errorf("expected ForeignFunctionWithBody, got %v", errorKinds(sink))
	}
}

func TestNonForeignFunctionWithoutBodyIsRejected(t *testing.T) {
	f := &ast.FuncDecl{Name: "mystery", ReturnType: intRef()}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	if !hasKind(sink, diagnostics.NonForeignFunctionWithoutBody) {
		t.Errorf("expected NonForeignFunctionWithoutBody, got %v", errorKinds(sink))
	}
}

func TestVarArgsRejectedOnNonForeignDecl(t *testing.T) {
	f := &ast.FuncDecl{Name: "sum", HasVarArgs: true, Body: &ast.CompoundStmt{
		Statements: []ast.Statement{&ast.ReturnStmt{}},
	}}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	if !hasKind(sink, diagnostics.VarArgsInNonForeignDecl) {
		t.Errorf("expected VarArgsInNonForeignDecl, got %v", errorKinds(sink))
	}
}

func TestNotAllPathsReturnFlagsMissingReturn(t *testing.T) {
	f := &ast.FuncDecl{
		Name:       "half",
		ReturnType: intRef(),
		Args:       []*ast.FuncArgumentDecl{{InternalName: "n", TypeRef: intRef()}},
		Body: &ast.CompoundStmt{
			Statements: []ast.Statement{
				&ast.ExpressionStmt{Expression: &ast.VarExpr{Name: "n"}},
			},
		},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	if !hasKind(sink, diagnostics.NotAllPathsReturn) {
		t.Errorf("expected NotAllPathsReturn, got %v", errorKinds(sink))
	}
}

func TestAllPathsReturnViaIfElse(t *testing.T) {
	f := &ast.FuncDecl{
		Name:       "abs",
		ReturnType: intRef(),
		Args:       []*ast.FuncArgumentDecl{{InternalName: "n", TypeRef: intRef()}},
		Body: &ast.CompoundStmt{
			Statements: []ast.Statement{
				&ast.IfStmt{
					Condition: &ast.InfixExpr{Left: &ast.VarExpr{Name: "n"}, Operator: "<", Right: &ast.IntegerLiteral{Value: 0}},
					Then: &ast.CompoundStmt{Statements: []ast.Statement{
						&ast.ReturnStmt{Value: &ast.PrefixExpr{Operator: "-", Right: &ast.VarExpr{Name: "n"}}},
					}},
					Else: &ast.CompoundStmt{Statements: []ast.Statement{
						&ast.ReturnStmt{Value: &ast.VarExpr{Name: "n"}},
					}},
				},
			},
		},
	}
	sink := analyzeTU(&ast.TranslationUnit{Functions: []*ast.FuncDecl{f}})
	if hasKind(sink, diagnostics.NotAllPathsReturn) {
		t.Errorf("an if/else where both branches return should satisfy all-paths-return, got %v", errorKinds(sink))
	}
}

func TestDeinitOnNonIndirectTypeIsRejected(t *testing.T) {
	td := &ast.TypeDecl{
		Name:          "Value",
		Deinitializer: &ast.FuncDecl{Kind: ast.FuncDeinitializer, Body: &ast.CompoundStmt{}},
	}
	sink := analyzeTU(&ast.TranslationUnit{Types: []*ast.TypeDecl{td}})
	if !hasKind(sink, diagnostics.DeinitOnStruct) {
		t.Errorf("expected DeinitOnStruct, got %v", errorKinds(sink))
	}
}

func TestVarAssignDeclInfersTypeFromInit(t *testing.T) {
	v := &ast.VarAssignDecl{Name: "x", Init: &ast.IntegerLiteral{Value: 5}}
	stmt := &ast.VarDeclStmt{Decl: v}
	analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{stmt}})

	if v.ResolvedType == nil || v.ResolvedType.String() != "Int64" {
		t.Errorf("expected inferred Int64, got %v", v.ResolvedType)
	}
}

func TestVarAssignDeclCoercesLiteralToDeclaredType(t *testing.T) {
	v := &ast.VarAssignDecl{Name: "x", TypeRef: namedRef("Int32"), Init: &ast.IntegerLiteral{Value: 5}}
	stmt := &ast.VarDeclStmt{Decl: v}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{stmt}})

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", errorKinds(sink))
	}
	if v.Init.GetType().String() != "Int32" {
		t.Errorf("expected the integer literal to be coerced to Int32, got %v", v.Init.GetType())
	}
}

func TestVarAssignDeclRejectsIncompatibleInit(t *testing.T) {
	v := &ast.VarAssignDecl{Name: "x", TypeRef: namedRef("Bool"), Init: &ast.StringLiteral{Value: "nope"}}
	stmt := &ast.VarDeclStmt{Decl: v}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{stmt}})

	if !hasKind(sink, diagnostics.CannotCoerce) {
		t.Errorf("expected CannotCoerce, got %v", errorKinds(sink))
	}
}

func TestForeignVariableWithInitializerIsRejected(t *testing.T) {
	v := &ast.VarAssignDecl{Name: "errno", IsForeign: true, TypeRef: intRef(), Init: &ast.IntegerLiteral{Value: 0}}
	sink := analyzeTU(&ast.TranslationUnit{Globals: []*ast.VarAssignDecl{v}})
	if !hasKind(sink, diagnostics.ForeignVarWithRHS) {
		t.Errorf("expected ForeignVarWithRHS, got %v", errorKinds(sink))
	}
}
