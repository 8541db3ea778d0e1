// Package renderer turns a diagnostics.Sink into caret-pointer text: a
// line-number gutter, a caret under the offending column, and the
// message below. It is an example collaborator, not a dependency of
// internal/semantic: the analyzer only ever produces structured
// diagnostics, never formatted text.
package renderer

import (
	"fmt"
	"strings"

	"github.com/yonihemi/trill/internal/diagnostics"
)

// Renderer formats diagnostics against a named source text.
type Renderer struct {
	file  string
	lines []string
}

// New returns a Renderer for the given source text, identified by file
// in the header line (file may be "" for an unnamed/in-memory source).
func New(file, source string) *Renderer {
	return &Renderer{file: file, lines: strings.Split(source, "\n")}
}

func (r *Renderer) sourceLine(line int) string {
	if line < 1 || line > len(r.lines) {
		return ""
	}
	return r.lines[line-1]
}

// One formats a single diagnostic: a header line, the source line with
// a line-number gutter, a caret under the column, and the message.
func (r *Renderer) One(d *diagnostics.Diagnostic) string {
	var sb strings.Builder

	if r.file != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s\n", d.Severity, r.file, d.Pos.Line, d.Pos.Column, d.Kind)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s\n", d.Severity, d.Pos.Line, d.Pos.Column, d.Kind)
	}

	if line := r.sourceLine(d.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(gutter)+col-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(d.Message)
	return sb.String()
}

// All formats every diagnostic in sink, each followed by its notes
// (indented, since a note is only ever meaningful attached to the error
// that produced it — spec.md §6).
func (r *Renderer) All(sink *diagnostics.Sink) string {
	all := sink.All()
	if len(all) == 0 {
		return ""
	}

	var sb strings.Builder
	errorIndex := 0
	for _, d := range all {
		if d.Severity == diagnostics.SeverityNote {
			continue
		}
		errorIndex++
		if errorIndex > 1 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(r.One(d))
		for _, note := range sink.NotesFor(d) {
			sb.WriteString("\n    note: ")
			sb.WriteString(note.Message)
		}
	}
	return sb.String()
}
