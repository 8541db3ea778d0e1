package semantic

import (
	"testing"

	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
)

func exprStmt(e ast.Expression) *ast.ExpressionStmt { return &ast.ExpressionStmt{Expression: e} }

func TestBuiltinArithmeticOperatorTyping(t *testing.T) {
	e := &ast.InfixExpr{Left: &ast.IntegerLiteral{Value: 1}, Operator: "+", Right: &ast.IntegerLiteral{Value: 2}}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", errorKinds(sink))
	}
	if e.GetType().String() != "Int64" {
		t.Errorf("expected Int64, got %v", e.GetType())
	}
}

func TestBuiltinComparisonOperatorReturnsBool(t *testing.T) {
	e := &ast.InfixExpr{Left: &ast.IntegerLiteral{Value: 1}, Operator: "==", Right: &ast.IntegerLiteral{Value: 2}}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", errorKinds(sink))
	}
	if e.GetType().String() != "Bool" {
		t.Errorf("expected Bool, got %v", e.GetType())
	}
}

func TestLogicalOperatorRejectsNonBoolOperands(t *testing.T) {
	e := &ast.InfixExpr{Left: &ast.IntegerLiteral{Value: 1}, Operator: "&&", Right: &ast.IntegerLiteral{Value: 2}}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if !hasKind(sink, diagnostics.InvalidOperands) {
		t.Errorf("expected InvalidOperands, got %v", errorKinds(sink))
	}
}

func TestCastToUnknownTypeIsRejected(t *testing.T) {
	e := &ast.InfixExpr{Left: &ast.IntegerLiteral{Value: 1}, Operator: "as", CastTarget: namedRef("Ghost")}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if !hasKind(sink, diagnostics.UnknownType) {
		t.Errorf("expected UnknownType, got %v", errorKinds(sink))
	}
}

func TestCastBetweenIncompatibleTypesIsRejected(t *testing.T) {
	e := &ast.InfixExpr{Left: &ast.StringLiteral{Value: "x"}, Operator: "as", CastTarget: namedRef("Bool")}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if !hasKind(sink, diagnostics.CannotCoerce) {
		t.Errorf("expected CannotCoerce, got %v", errorKinds(sink))
	}
}

func TestCastWideningIntIsAllowed(t *testing.T) {
	e := &ast.InfixExpr{Left: &ast.IntegerLiteral{Value: 1}, Operator: "as", CastTarget: namedRef("Float64")}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", errorKinds(sink))
	}
	if e.GetType().String() != "Float64" {
		t.Errorf("expected Float64, got %v", e.GetType())
	}
}

func TestAssignNilToNonPointerIsRejected(t *testing.T) {
	decl := &ast.VarAssignDecl{Name: "x", IsMutable: true, TypeRef: intRef()}
	stmts := []ast.Statement{
		&ast.VarDeclStmt{Decl: decl},
		exprStmt(&ast.InfixExpr{Left: &ast.VarExpr{Name: "x"}, Operator: "=", Right: &ast.NilLiteral{}}),
	}
	sink := analyzeTU(&ast.TranslationUnit{Statements: stmts})
	if !hasKind(sink, diagnostics.NonPointerNil) {
		t.Errorf("expected NonPointerNil, got %v", errorKinds(sink))
	}
}

func TestAssignNilToPointerIsAllowed(t *testing.T) {
	decl := &ast.VarAssignDecl{
		Name: "p", IsMutable: true,
		TypeRef: &ast.PointerTypeRef{Pointee: intRef()},
	}
	stmts := []ast.Statement{
		&ast.VarDeclStmt{Decl: decl},
		exprStmt(&ast.InfixExpr{Left: &ast.VarExpr{Name: "p"}, Operator: "=", Right: &ast.NilLiteral{}}),
	}
	sink := analyzeTU(&ast.TranslationUnit{Statements: stmts})
	if sink.HasErrors() {
		t.Errorf("unexpected errors: %v", errorKinds(sink))
	}
}

func TestDereferenceNonPointerIsRejected(t *testing.T) {
	e := &ast.PrefixExpr{Operator: "*", Right: &ast.IntegerLiteral{Value: 1}}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if !hasKind(sink, diagnostics.DereferenceNonPointer) {
		t.Errorf("expected DereferenceNonPointer, got %v", errorKinds(sink))
	}
}

func TestAddressOfRValueIsRejected(t *testing.T) {
	e := &ast.PrefixExpr{Operator: "&", Right: &ast.IntegerLiteral{Value: 1}}
	sink := analyzeTU(&ast.TranslationUnit{Statements: []ast.Statement{exprStmt(e)}})
	if !hasKind(sink, diagnostics.AddressOfRValue) {
		t.Errorf("expected AddressOfRValue, got %v", errorKinds(sink))
	}
}

func TestAddressOfVarExprIsAllowed(t *testing.T) {
	decl := &ast.VarAssignDecl{Name: "x", Init: &ast.IntegerLiteral{Value: 1}}
	stmts := []ast.Statement{
		&ast.VarDeclStmt{Decl: decl},
		exprStmt(&ast.PrefixExpr{Operator: "&", Right: &ast.VarExpr{Name: "x"}}),
	}
	sink := analyzeTU(&ast.TranslationUnit{Statements: stmts})
	if sink.HasErrors() {
		t.Errorf("unexpected errors: %v", errorKinds(sink))
	}
}

func TestOperatorOverloadResolvedViaMethod(t *testing.T) {
	vector := &ast.TypeDecl{Name: "Vector", Fields: []*ast.FieldDecl{{Name: "x", TypeRef: intRef()}}}
	plus := &ast.FuncDecl{
		Name: "+", Kind: ast.FuncMethod, ReturnType: namedRef("Vector"),
		Args: []*ast.FuncArgumentDecl{
			{InternalName: "self", IsImplicitSelf: true},
			{InternalName: "other", TypeRef: namedRef("Vector")},
		},
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.VarExpr{Name: "self"}},
		}},
	}
	vector.Methods = []*ast.FuncDecl{plus}

	declA := &ast.VarAssignDecl{Name: "a", TypeRef: namedRef("Vector")}
	declB := &ast.VarAssignDecl{Name: "b", TypeRef: namedRef("Vector")}
	e := &ast.InfixExpr{Left: &ast.VarExpr{Name: "a"}, Operator: "+", Right: &ast.VarExpr{Name: "b"}}
	stmts := []ast.Statement{
		&ast.VarDeclStmt{Decl: declA},
		&ast.VarDeclStmt{Decl: declB},
		exprStmt(e),
	}
	sink := analyzeTU(&ast.TranslationUnit{Types: []*ast.TypeDecl{vector}, Statements: stmts})
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", errorKinds(sink))
	}
	if e.Decl != plus {
		t.Errorf("expected the overload to resolve to the Vector.+ method, got %v", e.Decl)
	}
}

func TestOperatorOverloadResolvedViaFreeFunction(t *testing.T) {
	vector := &ast.TypeDecl{Name: "Vector", Fields: []*ast.FieldDecl{{Name: "x", TypeRef: intRef()}}}
	plus := &ast.FuncDecl{
		Name: "+", ReturnType: namedRef("Vector"),
		Args: []*ast.FuncArgumentDecl{
			{InternalName: "a", TypeRef: namedRef("Vector")},
			{InternalName: "b", TypeRef: namedRef("Vector")},
		},
		Body: &ast.CompoundStmt{Statements: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.VarExpr{Name: "a"}},
		}},
	}

	declA := &ast.VarAssignDecl{Name: "a", TypeRef: namedRef("Vector")}
	declB := &ast.VarAssignDecl{Name: "b", TypeRef: namedRef("Vector")}
	e := &ast.InfixExpr{Left: &ast.VarExpr{Name: "a"}, Operator: "+", Right: &ast.VarExpr{Name: "b"}}
	stmts := []ast.Statement{
		&ast.VarDeclStmt{Decl: declA},
		&ast.VarDeclStmt{Decl: declB},
		exprStmt(e),
	}
	sink := analyzeTU(&ast.TranslationUnit{
		Types: []*ast.TypeDecl{vector}, Functions: []*ast.FuncDecl{plus}, Statements: stmts,
	})
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", errorKinds(sink))
	}
	if e.Decl != plus {
		t.Errorf("expected the overload to resolve to the free + function, got %v", e.Decl)
	}
}

func TestNoOperatorOverloadIsInvalidOperands(t *testing.T) {
	vector := &ast.TypeDecl{Name: "Vector", Fields: []*ast.FieldDecl{{Name: "x", TypeRef: intRef()}}}
	declA := &ast.VarAssignDecl{Name: "a", TypeRef: namedRef("Vector")}
	declB := &ast.VarAssignDecl{Name: "b", TypeRef: namedRef("Vector")}
	e := &ast.InfixExpr{Left: &ast.VarExpr{Name: "a"}, Operator: "+", Right: &ast.VarExpr{Name: "b"}}
	stmts := []ast.Statement{
		&ast.VarDeclStmt{Decl: declA},
		&ast.VarDeclStmt{Decl: declB},
		exprStmt(e),
	}
	sink := analyzeTU(&ast.TranslationUnit{Types: []*ast.TypeDecl{vector}, Statements: stmts})
	if !hasKind(sink, diagnostics.InvalidOperands) {
		t.Errorf("expected InvalidOperands, got %v", errorKinds(sink))
	}
}
