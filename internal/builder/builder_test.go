package builder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/builder"
	"github.com/questlang/quill/internal/cst"
	"github.com/questlang/quill/internal/parser"
)

// build parses src (which must be syntactically valid) and runs the
// builder over the resulting tree.
func build(t *testing.T, src string) (*ast.Program, *builder.Builder) {
	t.Helper()
	var errs parser.ErrorList
	script := parser.Parse([]byte(src), "test.quill", &errs)
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) errors: %v", src, errs.Error())
	}
	b := builder.New()
	return b.Build(script, "test.quill"), b
}

// buildClean is build plus a check that no construction diagnostics were
// produced.
func buildClean(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, b := build(t, src)
	if b.HasErrors() {
		t.Fatalf("Build(%q) diagnostics: %v", src, b.Diagnostics())
	}
	return prog
}

// firstExpr returns the value expression of a single `var x = ...` source.
func firstExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog := buildClean(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement = %T, want *ast.VarDecl", prog.Statements[0])
	}
	return decl.Value
}

func TestBuildVarDecl(t *testing.T) {
	prog := buildClean(t, `var x = 5`)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement = %T, want *ast.VarDecl", prog.Statements[0])
	}
	if decl.Name != "x" {
		t.Errorf("Name = %q, want x", decl.Name)
	}
	lit, ok := decl.Value.(*ast.Literal)
	if !ok {
		t.Fatalf("Value = %T, want *ast.Literal", decl.Value)
	}
	if lit.Kind != ast.LitInt || lit.Int != 5 {
		t.Errorf("literal = %+v, want int 5", lit)
	}
	if decl.Pos().Line != 1 || decl.Pos().Column != 1 {
		t.Errorf("Pos() = %s, want 1:1", decl.Pos())
	}
}

// The decimal point alone decides the numeric representation.
func TestBuildNumberCoercion(t *testing.T) {
	intLit, ok := firstExpr(t, `var x = 10`).(*ast.Literal)
	if !ok || intLit.Kind != ast.LitInt || intLit.Int != 10 {
		t.Errorf("10 = %+v, want int literal 10", intLit)
	}

	floatLit, ok := firstExpr(t, `var x = 10.5`).(*ast.Literal)
	if !ok || floatLit.Kind != ast.LitFloat || floatLit.Float != 10.5 {
		t.Errorf("10.5 = %+v, want float literal 10.5", floatLit)
	}
}

func TestBuildStringDecoding(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`var x = "plain"`, "plain"},
		{`var x = ""`, ""},
		{`var x = "a\nb"`, "a\nb"},
		{`var x = "a\tb"`, "a\tb"},
		{`var x = "a\rb"`, "a\rb"},
		{`var x = "a\\b"`, `a\b`},
		{`var x = "say \"hi\""`, `say "hi"`},
		// Unrecognized escapes keep the backslash verbatim; the next
		// character is processed on its own.
		{`var x = "a\qb"`, `a\qb`},
		{`var x = "a\\nb"`, `a\nb`},
	}
	for _, tt := range tests {
		lit, ok := firstExpr(t, tt.src).(*ast.Literal)
		if !ok || lit.Kind != ast.LitString {
			t.Errorf("%s: got %+v, want string literal", tt.src, lit)
			continue
		}
		if lit.Str != tt.want {
			t.Errorf("%s: Str = %q, want %q", tt.src, lit.Str, tt.want)
		}
	}
}

func TestBuildStatementKinds(t *testing.T) {
	src := `
var gold = 10
actor guard { health = 100 }
dialogue intro { }
quest fetch { }
node greet { }
func reward(who, amount) { return amount }
on enter { }
while (gold > 0) { gold = gold - 1 }
%{ engine.flush() %}
`
	prog := buildClean(t, src)
	var kinds []string
	for _, s := range prog.Statements {
		switch s.(type) {
		case *ast.VarDecl:
			kinds = append(kinds, "var")
		case *ast.ActorDecl:
			kinds = append(kinds, "actor")
		case *ast.DialogueDecl:
			kinds = append(kinds, "dialogue")
		case *ast.QuestDecl:
			kinds = append(kinds, "quest")
		case *ast.NodeDecl:
			kinds = append(kinds, "node")
		case *ast.FuncDecl:
			kinds = append(kinds, "func")
		case *ast.EventHandler:
			kinds = append(kinds, "on")
		case *ast.WhileStmt:
			kinds = append(kinds, "while")
		case *ast.HostCode:
			kinds = append(kinds, "host")
		default:
			kinds = append(kinds, "other")
		}
	}
	want := []string{"var", "actor", "dialogue", "quest", "node", "func", "on", "while", "host"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}
}

// An if without else keeps a nil Else; `else { }` keeps an empty block.
// The two are distinct and must stay so.
func TestBuildElseAbsentVsEmpty(t *testing.T) {
	prog := buildClean(t, `if (x) { }`)
	absent := prog.Statements[0].(*ast.IfStmt)
	if absent.Else != nil {
		t.Errorf("absent else = %+v, want nil", absent.Else)
	}

	prog = buildClean(t, `if (x) { } else { }`)
	empty := prog.Statements[0].(*ast.IfStmt)
	if empty.Else == nil {
		t.Fatal("empty else = nil, want empty block")
	}
	if len(empty.Else.Stmts) != 0 {
		t.Errorf("empty else statements = %d, want 0", len(empty.Else.Stmts))
	}
}

func TestBuildForCClauses(t *testing.T) {
	prog := buildClean(t, `for (var i = 0; i < 5; i = i + 1) { }`)
	loop := prog.Statements[0].(*ast.ForCStmt)

	if !loop.DeclaresVar || loop.InitVar != "i" {
		t.Errorf("init = declares=%t var=%q, want declared i", loop.DeclaresVar, loop.InitVar)
	}
	if lit, ok := loop.InitExpr.(*ast.Literal); !ok || lit.Int != 0 {
		t.Errorf("InitExpr = %+v, want 0", loop.InitExpr)
	}
	cond, ok := loop.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != "<" {
		t.Fatalf("Cond = %+v, want i < 5", loop.Cond)
	}
	if loop.UpdateVar != "i" {
		t.Errorf("UpdateVar = %q, want i", loop.UpdateVar)
	}
	update, ok := loop.UpdateExpr.(*ast.BinaryExpr)
	if !ok || update.Op != "+" {
		t.Errorf("UpdateExpr = %+v, want i + 1", loop.UpdateExpr)
	}
	if loop.Body == nil || len(loop.Body.Stmts) != 0 {
		t.Errorf("Body = %+v, want empty block", loop.Body)
	}

	prog = buildClean(t, `for (;;) { }`)
	bare := prog.Statements[0].(*ast.ForCStmt)
	if bare.InitVar != "" || bare.InitExpr != nil || bare.Cond != nil ||
		bare.UpdateVar != "" || bare.UpdateExpr != nil {
		t.Errorf("bare loop clauses not all absent: %+v", bare)
	}
}

func TestBuildOperators(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`var x = a || b`, "||"},
		{`var x = a && b`, "&&"},
		{`var x = a == b`, "=="},
		{`var x = a != b`, "!="},
		{`var x = a < b`, "<"},
		{`var x = a > b`, ">"},
		{`var x = a <= b`, "<="},
		{`var x = a >= b`, ">="},
		{`var x = a + b`, "+"},
		{`var x = a - b`, "-"},
		{`var x = a * b`, "*"},
		{`var x = a / b`, "/"},
	}
	for _, tt := range tests {
		expr := firstExpr(t, tt.src)
		bin, ok := expr.(*ast.BinaryExpr)
		if !ok {
			t.Errorf("%s: got %T, want *ast.BinaryExpr", tt.src, expr)
			continue
		}
		if bin.Op != tt.want {
			t.Errorf("%s: Op = %q, want %q", tt.src, bin.Op, tt.want)
		}
	}
}

// Chains at one precedence tier fold left-associatively.
func TestBuildLeftAssociativity(t *testing.T) {
	expr := firstExpr(t, `var x = 1 - 2 - 3`)
	if got := ast.String(expr); got != "((1 - 2) - 3)" {
		t.Errorf("1 - 2 - 3 = %s, want ((1 - 2) - 3)", got)
	}
}

func TestBuildPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`var x = 1 + 2 * 3`, "(1 + (2 * 3))"},
		{`var x = (1 + 2) * 3`, "((1 + 2) * 3)"},
		{`var x = a || b && c`, "(a || (b && c))"},
		{`var x = a == b + 1`, "(a == (b + 1))"},
		{`var x = -a * b`, "(-a * b)"},
		{`var x = !done || a`, "(!done || a)"},
	}
	for _, tt := range tests {
		if got := ast.String(firstExpr(t, tt.src)); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestBuildPostfix(t *testing.T) {
	expr := firstExpr(t, `var x = world.actors[0].greet(1, "hi")`)
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expr = %T, want *ast.CallExpr", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args = %d, want 2", len(call.Args))
	}
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Member != "greet" {
		t.Fatalf("callee = %+v, want .greet", call.Callee)
	}
	index, ok := member.Object.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("object = %T, want *ast.IndexExpr", member.Object)
	}
	base, ok := index.Array.(*ast.MemberExpr)
	if !ok || base.Member != "actors" {
		t.Errorf("array = %+v, want world.actors", index.Array)
	}
}

func TestBuildLiteralsAndCollections(t *testing.T) {
	expr := firstExpr(t, `var x = [1, "two", true, null, [3]]`)
	arr, ok := expr.(*ast.ArrayLit)
	if !ok {
		t.Fatalf("expr = %T, want *ast.ArrayLit", expr)
	}
	if len(arr.Elements) != 5 {
		t.Fatalf("elements = %d, want 5", len(arr.Elements))
	}

	obj, ok := firstExpr(t, `var x = {name: "Ana", "max hp": 30, quest: null}`).(*ast.ObjectLit)
	if !ok {
		t.Fatal("want *ast.ObjectLit")
	}
	var keys []string
	for _, e := range obj.Entries {
		keys = append(keys, e.Key)
	}
	want := []string{"name", "max hp", "quest"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("object keys mismatch (-want +got):\n%s", diff)
	}
}

// Host chunks are concatenated without separators and trimmed exactly once;
// interior whitespace and newlines survive.
func TestBuildHostCode(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single line", "%{ engine.flush() %}", "engine.flush()"},
		{"multi line", "%{\nfirst()\n  second()\n%}", "first()\n  second()"},
		{"empty", "%{%}", ""},
		{"whitespace only", "%{   %}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := buildClean(t, tt.src)
			if len(prog.Statements) != 1 {
				t.Fatalf("statements = %d, want 1", len(prog.Statements))
			}
			host, ok := prog.Statements[0].(*ast.HostCode)
			if !ok {
				t.Fatalf("statement = %T, want *ast.HostCode", prog.Statements[0])
			}
			if host.Code != tt.want {
				t.Errorf("Code = %q, want %q", host.Code, tt.want)
			}
		})
	}
}

func TestBuildPropertyKeys(t *testing.T) {
	prog := buildClean(t, "health = 100\n\"display name\" = \"Guard\"\nquest = null")
	want := []string{"health", "display name", "quest"}
	for i, w := range want {
		prop, ok := prog.Statements[i].(*ast.PropertyStmt)
		if !ok {
			t.Fatalf("statement %d = %T, want *ast.PropertyStmt", i, prog.Statements[i])
		}
		if prop.Name != w {
			t.Errorf("statement %d Name = %q, want %q", i, prop.Name, w)
		}
	}
}

func TestBuildAssignExpr(t *testing.T) {
	prog := buildClean(t, `if (x) { y = z = 1 }`)
	then := prog.Statements[0].(*ast.IfStmt).Then
	prop, ok := then.Stmts[0].(*ast.PropertyStmt)
	if !ok {
		t.Fatalf("statement = %T, want *ast.PropertyStmt", then.Stmts[0])
	}
	inner, ok := prop.Value.(*ast.AssignExpr)
	if !ok || inner.Target != "z" {
		t.Errorf("value = %+v, want assignment to z", prop.Value)
	}
}

// A concrete statement node with no populated alternative is dropped with
// a diagnostic; the surrounding statements still build.
func TestBuildUnknownStatement(t *testing.T) {
	script := &cst.Script{
		Statements: []*cst.Statement{
			{Loc: ast.Location{File: "drift.quill", Line: 1, Column: 1}},
		},
	}
	b := builder.New()
	prog := b.Build(script, "drift.quill")

	if len(prog.Statements) != 0 {
		t.Errorf("statements = %d, want 0 (dropped)", len(prog.Statements))
	}
	if !b.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
	diags := b.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if diags[0].Message != "unknown statement type" {
		t.Errorf("message = %q, want unknown statement type", diags[0].Message)
	}
	if diags[0].Loc.Line != 1 || diags[0].Loc.File != "drift.quill" {
		t.Errorf("location = %s, want drift.quill:1:1", diags[0].Loc)
	}
}

func TestBuildReturn(t *testing.T) {
	prog := buildClean(t, "func f() { return }\nfunc g() { return 1 }")
	bare := prog.Statements[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.ReturnStmt)
	if bare.Value != nil {
		t.Errorf("bare return Value = %+v, want nil", bare.Value)
	}
	valued := prog.Statements[1].(*ast.FuncDecl).Body.Stmts[0].(*ast.ReturnStmt)
	if valued.Value == nil {
		t.Error("valued return Value = nil")
	}
}
