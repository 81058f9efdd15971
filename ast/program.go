package ast

// Program is the root of a parsed Quill script: an ordered sequence of
// top-level statements. The Program owns all of its descendants
// exclusively; the tree has no cycles and no sharing between nodes. It is
// built in one pass and never mutated afterwards; a re-parse replaces the
// whole tree.
type Program struct {
	// File is the file-name label the source was parsed under.
	File string

	// Statements in source textual order.
	Statements []Stmt

	// StartLoc is the location of the first token of the program
	// (line 1, column 1 for an empty source).
	StartLoc Location
}

// Pos returns the location of the start of the program.
func (p *Program) Pos() Location { return p.StartLoc }

var _ Node = (*Program)(nil)
