package quill

import (
	"fmt"
	"strings"

	"github.com/questlang/quill/ast"
)

// Diagnostic is a single parse problem: a source location and a message.
// Diagnostics are value types; once created they are not modified.
type Diagnostic struct {
	Loc     ast.Location // 1-based line and column
	Message string
}

// String renders the diagnostic in file:line:col: message form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Loc, d.Message)
}

// ParseFailure is the error returned by Parse. It carries every diagnostic
// found during the failing phase, in source order, and is never empty.
type ParseFailure struct {
	Diagnostics []Diagnostic
}

// NewParseFailure creates a failure from a single diagnostic.
func NewParseFailure(loc ast.Location, msg string) *ParseFailure {
	return &ParseFailure{Diagnostics: []Diagnostic{{Loc: loc, Message: msg}}}
}

// Add appends a diagnostic, for building a failure incrementally before
// returning it.
func (f *ParseFailure) Add(loc ast.Location, msg string) {
	f.Diagnostics = append(f.Diagnostics, Diagnostic{Loc: loc, Message: msg})
}

// Len returns the number of diagnostics.
func (f *ParseFailure) Len() int {
	return len(f.Diagnostics)
}

// Error renders a header line followed by one line per diagnostic, in list
// order.
func (f *ParseFailure) Error() string {
	var sb strings.Builder
	if len(f.Diagnostics) == 1 {
		sb.WriteString("parsing failed with 1 error:")
	} else {
		fmt.Fprintf(&sb, "parsing failed with %d errors:", len(f.Diagnostics))
	}
	for _, d := range f.Diagnostics {
		sb.WriteString("\n")
		sb.WriteString(d.String())
	}
	return sb.String()
}

// AsParseFailure reports whether err is a ParseFailure and returns it.
func AsParseFailure(err error) (*ParseFailure, bool) {
	f, ok := err.(*ParseFailure)
	return f, ok
}
