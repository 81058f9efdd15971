// Package parser provides the Quill recursive descent parser.
//
// The parser is the source front end: it turns raw text into a concrete
// parse tree (package cst) conforming to the grammar. Syntax errors are
// reported through an ErrorListener as they are found; the parser recovers
// at statement boundaries and keeps going, so one pass surfaces every
// independent error. The returned tree may be partial when errors were
// reported; callers decide whether to use it (the parse facade discards
// it on any syntax error).
package parser

import (
	"fmt"

	"github.com/questlang/quill/ast"
)

// ErrorListener receives syntax errors as the parser encounters them.
// Locations are 1-based line/column.
type ErrorListener interface {
	SyntaxError(loc ast.Location, msg string)
}

// SyntaxError is a syntax error with its source location.
// It implements the error interface.
type SyntaxError struct {
	Loc     ast.Location
	Message string
}

// Error returns a formatted error message with position information.
func (e *SyntaxError) Error() string {
	if e.Loc.IsValid() {
		return fmt.Sprintf("%s: %s", e.Loc, e.Message)
	}
	return e.Message
}

// ErrorList is an ordered list of syntax errors. Its pointer form
// implements ErrorListener, so it can be handed to Parse directly as a
// collecting listener.
type ErrorList []*SyntaxError

// SyntaxError implements ErrorListener by appending to the list.
func (el *ErrorList) SyntaxError(loc ast.Location, msg string) {
	el.Add(loc, msg)
}

// Add appends an error to the list.
func (el *ErrorList) Add(loc ast.Location, msg string) {
	*el = append(*el, &SyntaxError{Loc: loc, Message: msg})
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}
