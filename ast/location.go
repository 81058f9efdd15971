package ast

import "fmt"

// Location identifies a point in a source file.
// Line and Column are 1-based; Column counts characters from the start
// of the line.
type Location struct {
	// File is the file-name label the source was parsed under.
	// Used only for diagnostic rendering.
	File string
	// Line number (1-based).
	Line int
	// Column on the line (1-based).
	Column int
}

// String returns the location in "file:line:column" form, or
// "line:column" if no file name is set.
func (l Location) String() string {
	if l.File != "" {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsValid reports whether the location has been set (line > 0).
func (l Location) IsValid() bool {
	return l.Line > 0
}

// Before reports whether l appears before other in the source.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
