package quill

import (
	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/builder"
	"github.com/questlang/quill/internal/parser"
)

// Version is the quill version string.
const Version = "0.1.0"

// Parse parses Quill source code and returns the typed AST.
//
// Parsing is strictly two-phase. Phase one runs the lexer and parser over
// the whole source, collecting every syntax error; if any were found, Parse
// returns a *ParseFailure holding all of them and the AST builder is never
// invoked. Phase two transforms the syntactically clean parse tree into the
// AST; construction errors are likewise aggregated into a *ParseFailure.
// Callers therefore get either a complete AST or an error report, never a
// partial tree.
//
// The file name labels diagnostic and node locations only; no file is read.
//
// Example:
//
//	prog, err := quill.Parse(`var greeting = "hello"`, "intro.quill")
//	if err != nil {
//	    var pf *quill.ParseFailure
//	    if errors.As(err, &pf) {
//	        for _, d := range pf.Diagnostics {
//	            fmt.Println(d)
//	        }
//	    }
//	    return err
//	}
func Parse(source, fileName string) (*ast.Program, error) {
	var syntaxErrs parser.ErrorList
	script := parser.Parse([]byte(source), fileName, &syntaxErrs)

	if len(syntaxErrs) > 0 {
		failure := &ParseFailure{}
		for _, e := range syntaxErrs {
			failure.Add(e.Loc, e.Message)
		}
		return nil, failure
	}

	b := builder.New()
	prog := b.Build(script, fileName)
	if b.HasErrors() {
		failure := &ParseFailure{}
		for _, d := range b.Diagnostics() {
			failure.Add(d.Loc, d.Message)
		}
		return nil, failure
	}
	return prog, nil
}

// MustParse is like Parse but panics on error. It is intended for
// embedding known-good scripts, typically in tests or fixtures.
func MustParse(source, fileName string) *ast.Program {
	prog, err := Parse(source, fileName)
	if err != nil {
		panic(err)
	}
	return prog
}
