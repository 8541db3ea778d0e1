package semantic

import (
	"github.com/yonihemi/trill/internal/ast"
	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/token"
)

func pos(line int) token.Position { return token.Position{Line: line, Column: 1} }

func namedRef(name string) *ast.NamedTypeRef { return &ast.NamedTypeRef{Token: pos(1), Name: name} }

func intRef() *ast.NamedTypeRef { return namedRef("Int") }

func hasKind(sink *diagnostics.Sink, kind diagnostics.Kind) bool {
	for _, d := range sink.All() {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func errorKinds(sink *diagnostics.Sink) []diagnostics.Kind {
	var out []diagnostics.Kind
	for _, d := range sink.Errors() {
		out = append(out, d.Kind)
	}
	return out
}
