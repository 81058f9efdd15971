package ast_test

import (
	"strings"
	"testing"

	"github.com/questlang/quill/ast"
)

func loc(line, col int) ast.Location {
	return ast.Location{File: "test.quill", Line: line, Column: col}
}

// sampleProgram builds a small tree by hand:
//
//	var gold = 10
//	actor guard {
//	    health = gold + 5
//	}
func sampleProgram() *ast.Program {
	return &ast.Program{
		File:     "test.quill",
		StartLoc: loc(1, 1),
		Statements: []ast.Stmt{
			&ast.VarDecl{
				BaseStmt: ast.StmtAt(loc(1, 1)),
				Name:     "gold",
				Value:    &ast.Literal{BaseExpr: ast.At(loc(1, 12)), Kind: ast.LitInt, Int: 10},
			},
			&ast.ActorDecl{
				BaseStmt: ast.StmtAt(loc(2, 1)),
				Name:     "guard",
				Body: &ast.BlockStmt{
					BaseStmt: ast.StmtAt(loc(2, 13)),
					Stmts: []ast.Stmt{
						&ast.PropertyStmt{
							BaseStmt: ast.StmtAt(loc(3, 5)),
							Name:     "health",
							Value: &ast.BinaryExpr{
								BaseExpr: ast.At(loc(3, 14)),
								Left:     &ast.Ident{BaseExpr: ast.At(loc(3, 14)), Name: "gold"},
								Op:       "+",
								Right:    &ast.Literal{BaseExpr: ast.At(loc(3, 21)), Kind: ast.LitInt, Int: 5},
							},
						},
					},
				},
			},
		},
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  ast.Location
		want string
	}{
		{ast.Location{File: "a.quill", Line: 3, Column: 7}, "a.quill:3:7"},
		{ast.Location{Line: 1, Column: 1}, "1:1"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLocationBefore(t *testing.T) {
	tests := []struct {
		a, b ast.Location
		want bool
	}{
		{loc(1, 1), loc(1, 2), true},
		{loc(1, 9), loc(2, 1), true},
		{loc(2, 1), loc(1, 9), false},
		{loc(1, 1), loc(1, 1), false},
	}
	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%s.Before(%s) = %t, want %t", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWalk(t *testing.T) {
	var visited []string
	ast.Walk(sampleProgram(), func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.VarDecl:
			visited = append(visited, "var "+n.Name)
		case *ast.ActorDecl:
			visited = append(visited, "actor "+n.Name)
		case *ast.PropertyStmt:
			visited = append(visited, "prop "+n.Name)
		case *ast.Ident:
			visited = append(visited, "ident "+n.Name)
		}
		return true
	})
	want := []string{"var gold", "actor guard", "prop health", "ident gold"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestWalkPrune(t *testing.T) {
	idents := 0
	ast.Walk(sampleProgram(), func(n ast.Node) bool {
		switch n.(type) {
		case *ast.ActorDecl:
			return false // skip the actor's body
		case *ast.Ident:
			idents++
		}
		return true
	})
	if idents != 0 {
		t.Errorf("idents under pruned subtree = %d, want 0", idents)
	}
}

func TestInspectParents(t *testing.T) {
	var parentOfIdent ast.Node
	ast.Inspect(sampleProgram(), func(n, parent ast.Node) bool {
		if _, ok := n.(*ast.Ident); ok {
			parentOfIdent = parent
		}
		return true
	})
	if _, ok := parentOfIdent.(*ast.BinaryExpr); !ok {
		t.Errorf("parent of ident = %T, want *ast.BinaryExpr", parentOfIdent)
	}
}

func TestWalkNilOptionalBlocks(t *testing.T) {
	stmt := &ast.IfStmt{
		BaseStmt: ast.StmtAt(loc(1, 1)),
		Cond:     &ast.Ident{BaseExpr: ast.At(loc(1, 5)), Name: "x"},
		Then:     &ast.BlockStmt{BaseStmt: ast.StmtAt(loc(1, 8))},
		Else:     nil, // absent clause
	}
	count := 0
	ast.Walk(stmt, func(ast.Node) bool { count++; return true })
	// if, cond, then; the absent else contributes nothing.
	if count != 3 {
		t.Errorf("visited nodes = %d, want 3", count)
	}
}

func TestPrint(t *testing.T) {
	got := ast.String(sampleProgram())
	want := `var gold = 10
actor guard {
    health = (gold + 5)
}
`
	if got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintLiterals(t *testing.T) {
	tests := []struct {
		lit  *ast.Literal
		want string
	}{
		{&ast.Literal{Kind: ast.LitString, Str: "a\nb"}, `"a\nb"`},
		{&ast.Literal{Kind: ast.LitInt, Int: 42}, "42"},
		{&ast.Literal{Kind: ast.LitFloat, Float: 10.5}, "10.5"},
		{&ast.Literal{Kind: ast.LitBool, Bool: true}, "true"},
		{&ast.Literal{Kind: ast.LitNull}, "null"},
	}
	for _, tt := range tests {
		if got := ast.String(tt.lit); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.lit.Kind, got, tt.want)
		}
	}
}

func TestPrintAbsentVsEmptyElse(t *testing.T) {
	cond := func() ast.Expr { return &ast.Ident{Name: "x"} }
	then := func() *ast.BlockStmt { return &ast.BlockStmt{} }

	absent := ast.String(&ast.IfStmt{Cond: cond(), Then: then()})
	empty := ast.String(&ast.IfStmt{Cond: cond(), Then: then(), Else: &ast.BlockStmt{}})

	if strings.Contains(absent, "else") {
		t.Errorf("absent else printed: %q", absent)
	}
	if !strings.Contains(empty, "else { }") {
		t.Errorf("empty else not printed: %q", empty)
	}
}

func TestLitKindString(t *testing.T) {
	kinds := map[ast.LitKind]string{
		ast.LitString: "string",
		ast.LitInt:    "int",
		ast.LitFloat:  "float",
		ast.LitBool:   "bool",
		ast.LitNull:   "null",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("LitKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
