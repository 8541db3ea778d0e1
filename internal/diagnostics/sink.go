package diagnostics

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yonihemi/trill/internal/token"
)

// Severity carries the ordering spec.md §7 describes: errors short
// circuit further checks on the same node, warnings never do.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is one structured record in the sink (spec.md §6's output
// shape): a kind, a human-readable message, a primary location,
// optional extra highlight ranges, and a severity. Each diagnostic gets
// a stable ID so a Note can reference the exact error it supplements
// (SPEC_FULL.md §1) instead of relying on slice position.
type Diagnostic struct {
	ID         uuid.UUID
	Kind       Kind
	Message    string
	Pos        token.Position
	Highlights []token.Position
	Severity   Severity
	// ParentID is set on notes; it names the error they are attached
	// to (spec.md §6: "Notes are attached to the immediately
	// preceding error").
	ParentID uuid.UUID
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Sink accumulates diagnostics in source order (spec.md §5's ordering
// guarantee); it never throws, only appends (spec.md §7).
type Sink struct {
	diagnostics []*Diagnostic
	lastError   *Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Errorf records an error-severity diagnostic and returns it so callers
// can immediately attach notes via AddNote.
func (s *Sink) Errorf(kind Kind, pos token.Position, format string, args ...any) *Diagnostic {
	d := &Diagnostic{
		ID:       uuid.New(),
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Severity: SeverityError,
	}
	s.diagnostics = append(s.diagnostics, d)
	s.lastError = d
	return d
}

// Warnf records a warning-severity diagnostic. Warnings never short
// circuit analysis (spec.md §7).
func (s *Sink) Warnf(kind Kind, pos token.Position, format string, args ...any) *Diagnostic {
	d := &Diagnostic{
		ID:       uuid.New(),
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Severity: SeverityWarning,
	}
	s.diagnostics = append(s.diagnostics, d)
	return d
}

// AddNote attaches a note to the immediately preceding error (spec.md
// §6). If no error has been recorded yet, the note is still appended
// (with no parent) so it is never silently dropped.
func (s *Sink) AddNote(kind Kind, pos token.Position, format string, args ...any) *Diagnostic {
	d := &Diagnostic{
		ID:       uuid.New(),
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Severity: SeverityNote,
	}
	if s.lastError != nil {
		d.ParentID = s.lastError.ID
	}
	s.diagnostics = append(s.diagnostics, d)
	return d
}

// All returns every diagnostic recorded, in emission order.
func (s *Sink) All() []*Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func (s *Sink) Errors() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// NotesFor returns the notes attached to the given error, in emission
// order.
func (s *Sink) NotesFor(parent *Diagnostic) []*Diagnostic {
	if parent == nil {
		return nil
	}
	var out []*Diagnostic
	for _, d := range s.diagnostics {
		if d.Severity == SeverityNote && d.ParentID == parent.ID {
			out = append(out, d)
		}
	}
	return out
}
