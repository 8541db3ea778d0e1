package renderer

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/yonihemi/trill/internal/diagnostics"
	"github.com/yonihemi/trill/internal/token"
)

const demoSource = "let x = 1\nlet y = x + \"oops\"\n"

func TestOnePointsCaretAtColumn(t *testing.T) {
	sink := diagnostics.NewSink()
	err := sink.Errorf(diagnostics.CannotCoerce, token.Position{Line: 2, Column: 13}, "cannot coerce String(String) to Int(Int64)")

	r := New("demo.pel", demoSource)
	snaps.MatchSnapshot(t, "single_diagnostic", r.One(err))
}

func TestAllRendersErrorsAndNotesInOrder(t *testing.T) {
	sink := diagnostics.NewSink()
	sink.Errorf(diagnostics.NoViableOverload, token.Position{Line: 1, Column: 1}, "no viable overload for %q", "f")
	sink.AddNote(diagnostics.Candidates, token.Position{Line: 1, Column: 1}, "candidates: f(Int) -> Int; f(String) -> Int")
	sink.Errorf(diagnostics.UnknownVariableName, token.Position{Line: 2, Column: 9}, "unknown identifier %q", "z")

	r := New("demo.pel", demoSource)
	snaps.MatchSnapshot(t, "multiple_diagnostics", r.All(sink))
}

func TestAllReturnsEmptyStringWhenSinkIsEmpty(t *testing.T) {
	r := New("demo.pel", demoSource)
	if got := r.All(diagnostics.NewSink()); got != "" {
		t.Errorf("expected empty output for an empty sink, got %q", got)
	}
}

func TestOneFallsBackWithoutSourceLine(t *testing.T) {
	sink := diagnostics.NewSink()
	err := sink.Errorf(diagnostics.UnknownType, token.Position{Line: 99, Column: 1}, "unknown type %q", "Bogus")

	r := New("", demoSource)
	out := r.One(err)
	if out == "" {
		t.Fatal("expected non-empty output even when the line is out of range")
	}
}
