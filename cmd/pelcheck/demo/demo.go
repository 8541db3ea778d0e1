// Package demo builds a small, fixed translation unit in Go code for
// cmd/pelcheck to run the analyzer against. It exists purely to exercise
// internal/ast construction and internal/renderer end to end (SPEC_FULL.md
// §1/§2); it is not a parser and reads no files.
package demo

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/token"
)

func pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}

// TranslationUnit returns a fixed program: a Point type with an
// initializer and a lengthSquared method, a free square function, and a
// handful of top-level statements — including one deliberate field typo
// so the demo has something to print a diagnostic for.
func TranslationUnit() *ast.TranslationUnit {
	intRef := func(line int) *ast.NamedTypeRef { return &ast.NamedTypeRef{Token: pos(line, 1), Name: "Int"} }

	self := func(line int) *ast.FuncArgumentDecl {
		return &ast.FuncArgumentDecl{Token: pos(line, 1), InternalName: "self", IsImplicitSelf: true}
	}

	fieldLookup := func(line int, recv string, name string) *ast.FieldLookupExpr {
		return &ast.FieldLookupExpr{
			Token:    pos(line, 1),
			Receiver: &ast.VarExpr{Token: pos(line, 1), Name: recv},
			Name:     name,
		}
	}

	point := &ast.TypeDecl{
		Token: pos(1, 1),
		Name:  "Point",
		Fields: []*ast.FieldDecl{
			{Token: pos(2, 3), Name: "x", TypeRef: intRef(2)},
			{Token: pos(3, 3), Name: "y", TypeRef: intRef(3)},
		},
	}

	initX := &ast.FuncArgumentDecl{Token: pos(5, 1), ExternalLabel: "x", InternalName: "x", TypeRef: intRef(5)}
	initY := &ast.FuncArgumentDecl{Token: pos(5, 1), ExternalLabel: "y", InternalName: "y", TypeRef: intRef(5)}
	point.Initializers = []*ast.FuncDecl{
		{
			Token: pos(5, 1),
			Kind:  ast.FuncInitializer,
			Args:  []*ast.FuncArgumentDecl{self(5), initX, initY},
			Body: &ast.CompoundStmt{
				Token: pos(6, 1),
				Statements: []ast.Statement{
					&ast.ExpressionStmt{Token: pos(6, 3), Expression: &ast.InfixExpr{
						Token:    pos(6, 3),
						Left:     fieldLookup(6, "self", "x"),
						Operator: "=",
						Right:    &ast.VarExpr{Token: pos(6, 3), Name: "x"},
					}},
					&ast.ExpressionStmt{Token: pos(7, 3), Expression: &ast.InfixExpr{
						Token:    pos(7, 3),
						Left:     fieldLookup(7, "self", "y"),
						Operator: "=",
						Right:    &ast.VarExpr{Token: pos(7, 3), Name: "y"},
					}},
				},
			},
		},
	}

	lengthSquared := &ast.FuncDecl{
		Token:      pos(10, 1),
		Name:       "lengthSquared",
		Kind:       ast.FuncMethod,
		Args:       []*ast.FuncArgumentDecl{self(10)},
		ReturnType: intRef(10),
		Body: &ast.CompoundStmt{
			Token: pos(11, 1),
			Statements: []ast.Statement{
				&ast.ReturnStmt{Token: pos(11, 3), Value: &ast.InfixExpr{
					Token: pos(11, 10),
					Left: &ast.InfixExpr{
						Token:    pos(11, 10),
						Left:     fieldLookup(11, "self", "x"),
						Operator: "*",
						Right:    fieldLookup(11, "self", "x"),
					},
					Operator: "+",
					Right: &ast.InfixExpr{
						Token:    pos(11, 20),
						Left:     fieldLookup(11, "self", "y"),
						Operator: "*",
						Right:    fieldLookup(11, "self", "y"),
					},
				}},
			},
		},
	}
	point.Methods = []*ast.FuncDecl{lengthSquared}

	square := &ast.FuncDecl{
		Token:      pos(14, 1),
		Name:       "square",
		Kind:       ast.FuncFree,
		Args:       []*ast.FuncArgumentDecl{{Token: pos(14, 1), InternalName: "n", TypeRef: intRef(14)}},
		ReturnType: intRef(14),
		Body: &ast.CompoundStmt{
			Token: pos(15, 1),
			Statements: []ast.Statement{
				&ast.ReturnStmt{Token: pos(15, 3), Value: &ast.InfixExpr{
					Token:    pos(15, 10),
					Left:     &ast.VarExpr{Token: pos(15, 10), Name: "n"},
					Operator: "*",
					Right:    &ast.VarExpr{Token: pos(15, 14), Name: "n"},
				}},
			},
		},
	}

	makePoint := &ast.CallExpr{
		Token:  pos(18, 9),
		Callee: &ast.VarExpr{Token: pos(18, 9), Name: "Point"},
		Args: []*ast.CallArgument{
			{Label: "x", Value: &ast.IntegerLiteral{Token: pos(18, 15), Value: 3}},
			{Label: "y", Value: &ast.IntegerLiteral{Token: pos(18, 21), Value: 4}},
		},
	}
	callLengthSquared := &ast.CallExpr{
		Token:  pos(19, 11),
		Callee: fieldLookup(19, "p", "lengthSquared"),
	}
	callSquare := &ast.CallExpr{
		Token:  pos(20, 9),
		Callee: &ast.VarExpr{Token: pos(20, 9), Name: "square"},
		Args: []*ast.CallArgument{
			{Value: &ast.IntegerLiteral{Token: pos(20, 16), Value: 5}},
		},
	}

	statements := []ast.Statement{
		&ast.VarDeclStmt{Token: pos(18, 1), Decl: &ast.VarAssignDecl{Token: pos(18, 1), Name: "p", Init: makePoint}},
		&ast.VarDeclStmt{Token: pos(19, 1), Decl: &ast.VarAssignDecl{Token: pos(19, 1), Name: "lsq", Init: callLengthSquared}},
		&ast.VarDeclStmt{Token: pos(20, 1), Decl: &ast.VarAssignDecl{Token: pos(20, 1), Name: "s", Init: callSquare}},
		&ast.ExpressionStmt{Token: pos(21, 1), Expression: fieldLookup(21, "p", "nonExistentField")},
	}

	return &ast.TranslationUnit{
		Types:      []*ast.TypeDecl{point},
		Functions:  []*ast.FuncDecl{square},
		Statements: statements,
	}
}

// Source returns the program text the fixed AST above notionally
// corresponds to, used only so the renderer has real source lines to
// quote next to each diagnostic.
func Source() string {
	return `type Point {
  x: Int
  y: Int

  init(x: Int, y: Int) {
    self.x = x
    self.y = y
  }

  func lengthSquared() -> Int {
    return self.x * self.x + self.y * self.y
  }
}
func square(n: Int) -> Int {
  return n * n
}

let p = Point(x: 3, y: 4)
let lsq = p.lengthSquared()
let s = square(5)
p.nonExistentField
`
}
