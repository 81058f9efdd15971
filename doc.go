// Package quill provides the parser front end for the Quill narrative
// scripting language.
//
// Quill scripts describe interactive stories: actors, dialogues, quests,
// event handlers, and plain imperative glue code, plus %{ ... %} host code
// sections that are passed through verbatim for the embedding engine.
//
// # Quick Start
//
//	prog, err := quill.Parse(src, "village.quill")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, stmt := range prog.Statements {
//	    // ...
//	}
//
// # Two-Phase Parsing
//
// Parsing runs in two strict phases. The syntax phase scans the whole
// source and collects every syntax error; only a syntactically clean
// source reaches the second phase, which builds the typed AST (package
// [github.com/questlang/quill/ast]). Parse returns either a complete
// program or a [ParseFailure] listing every diagnostic, never a partial
// tree.
//
// # Error Handling
//
// All parse problems surface as a [ParseFailure] holding one or more
// [Diagnostic] values with 1-based file:line:column locations. Its Error
// method renders a header line plus one line per diagnostic:
//
//	parsing failed with 2 errors:
//	village.quill:3:10: expected '(' after 'if'
//	village.quill:7:1: unexpected '}'
//
// # Thread Safety
//
// Parse shares no state between calls and is safe for concurrent use.
package quill
