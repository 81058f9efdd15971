// Package builder turns the concrete parse tree into the typed AST.
//
// The builder is a structural, recursive transformation pass: it walks the
// whole concrete tree unconditionally, never aborts mid-traversal, and
// accumulates construction diagnostics in an ordered list. A concrete node
// the builder has no rule for should not occur for a grammar-conformant
// tree; it is handled defensively against grammar/builder drift by
// recording a diagnostic and dropping the node.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/cst"
	"github.com/questlang/quill/internal/lexer"
	"github.com/questlang/quill/internal/token"
)

// Diagnostic is a construction error with its source location.
// It implements the error interface.
type Diagnostic struct {
	Loc     ast.Location
	Message string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Loc, d.Message)
}

// Builder constructs an ast.Program from a cst.Script.
// A Builder holds per-pass state (the diagnostics list); use a fresh one
// per parse so concurrent parses never share mutable state.
type Builder struct {
	errs []*Diagnostic
}

// New creates a new Builder.
func New() *Builder {
	return &Builder{}
}

// Build transforms the concrete tree into an AST. The traversal always
// covers the entire tree; use HasErrors and Diagnostics afterwards to
// learn whether the result is usable.
func (b *Builder) Build(script *cst.Script, filename string) *ast.Program {
	prog := &ast.Program{
		File:     filename,
		StartLoc: ast.Location{File: filename, Line: 1, Column: 1},
	}
	if len(script.Statements) > 0 {
		prog.StartLoc = script.Statements[0].Loc
	}

	for _, stmt := range script.Statements {
		if s := b.buildStatement(stmt); s != nil {
			prog.Statements = append(prog.Statements, s)
		}
	}
	return prog
}

// HasErrors reports whether any diagnostics were accumulated.
func (b *Builder) HasErrors() bool {
	return len(b.errs) > 0
}

// Diagnostics returns the accumulated diagnostics in encounter order.
func (b *Builder) Diagnostics() []*Diagnostic {
	return b.errs
}

// errorf records a construction diagnostic.
func (b *Builder) errorf(loc ast.Location, format string, args ...any) {
	b.errs = append(b.errs, &Diagnostic{Loc: loc, Message: fmt.Sprintf(format, args...)})
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

// buildStatement dispatches on the single populated alternative of a
// concrete statement node, testing each in fixed priority order. A node
// with no populated alternative is grammar/builder drift: it is recorded
// and dropped; no placeholder node takes its position.
func (b *Builder) buildStatement(stmt *cst.Statement) ast.Stmt {
	switch {
	case stmt.Var != nil:
		return b.buildVarDecl(stmt.Var)
	case stmt.Actor != nil:
		n := stmt.Actor
		return &ast.ActorDecl{BaseStmt: ast.StmtAt(n.Loc), Name: n.Name.Text, Body: b.buildBlock(n.Body)}
	case stmt.Dialogue != nil:
		n := stmt.Dialogue
		return &ast.DialogueDecl{BaseStmt: ast.StmtAt(n.Loc), Name: n.Name.Text, Body: b.buildBlock(n.Body)}
	case stmt.Quest != nil:
		n := stmt.Quest
		return &ast.QuestDecl{BaseStmt: ast.StmtAt(n.Loc), Name: n.Name.Text, Body: b.buildBlock(n.Body)}
	case stmt.Func != nil:
		return b.buildFuncDecl(stmt.Func)
	case stmt.Handler != nil:
		n := stmt.Handler
		return &ast.EventHandler{BaseStmt: ast.StmtAt(n.Loc), Event: n.Event.Text, Body: b.buildBlock(n.Body)}
	case stmt.If != nil:
		return b.buildIf(stmt.If)
	case stmt.ForIn != nil:
		return b.buildForIn(stmt.ForIn)
	case stmt.ForC != nil:
		return b.buildForC(stmt.ForC)
	case stmt.While != nil:
		n := stmt.While
		return &ast.WhileStmt{BaseStmt: ast.StmtAt(n.Loc), Cond: b.buildExpression(n.Cond), Body: b.buildBlock(n.Body)}
	case stmt.Return != nil:
		return b.buildReturn(stmt.Return)
	case stmt.Property != nil:
		n := stmt.Property
		return &ast.PropertyStmt{BaseStmt: ast.StmtAt(n.Loc), Name: b.propertyKey(n.Key), Value: b.buildExpression(n.Value)}
	case stmt.Node != nil:
		n := stmt.Node
		return &ast.NodeDecl{BaseStmt: ast.StmtAt(n.Loc), Name: n.Name.Text, Body: b.buildBlock(n.Body)}
	case stmt.HostCode != nil:
		return b.buildHostCode(stmt.HostCode)
	case stmt.Block != nil:
		return b.buildBlock(stmt.Block)
	case stmt.Expr != nil:
		expr := b.buildExpression(stmt.Expr)
		if expr == nil {
			return nil
		}
		return &ast.ExprStmt{BaseStmt: ast.StmtAt(stmt.Loc), Expr: expr}
	default:
		b.errorf(stmt.Loc, "unknown statement type")
		return nil
	}
}

func (b *Builder) buildVarDecl(n *cst.VarDecl) ast.Stmt {
	value := b.buildExpression(n.Value)
	if value == nil {
		return nil
	}
	return &ast.VarDecl{BaseStmt: ast.StmtAt(n.Loc), Name: n.Name.Text, Value: value}
}

func (b *Builder) buildFuncDecl(n *cst.FuncDecl) ast.Stmt {
	params := make([]string, 0, len(n.Params))
	for _, p := range n.Params {
		params = append(params, p.Text)
	}
	return &ast.FuncDecl{BaseStmt: ast.StmtAt(n.Loc), Name: n.Name.Text, Params: params, Body: b.buildBlock(n.Body)}
}

// buildIf attaches an else block only when the concrete node supplies one.
// An absent else stays nil, never an empty block; the two are distinct.
func (b *Builder) buildIf(n *cst.IfStmt) ast.Stmt {
	out := &ast.IfStmt{
		BaseStmt: ast.StmtAt(n.Loc),
		Cond:     b.buildExpression(n.Cond),
		Then:     b.buildBlock(n.Then),
	}
	if n.Else != nil {
		out.Else = b.buildBlock(n.Else)
	}
	return out
}

func (b *Builder) buildForIn(n *cst.ForInStmt) ast.Stmt {
	return &ast.ForInStmt{
		BaseStmt: ast.StmtAt(n.Loc),
		Var:      n.Var.Text,
		Iterable: b.buildExpression(n.Iterable),
		Body:     b.buildBlock(n.Body),
	}
}

// buildForC maps the three optional clauses; an omitted clause keeps its
// zero value (empty name, nil expression). What an absent clause means at
// runtime is the interpreter's business.
func (b *Builder) buildForC(n *cst.ForCStmt) ast.Stmt {
	out := &ast.ForCStmt{
		BaseStmt: ast.StmtAt(n.Loc),
		Body:     b.buildBlock(n.Body),
	}
	if n.Init != nil {
		out.DeclaresVar = n.Init.Declare
		out.InitVar = n.Init.Name.Text
		out.InitExpr = b.buildExpression(n.Init.Value)
	}
	if n.Cond != nil {
		out.Cond = b.buildExpression(n.Cond)
	}
	if n.Update != nil {
		out.UpdateVar = n.Update.Name.Text
		out.UpdateExpr = b.buildExpression(n.Update.Value)
	}
	return out
}

func (b *Builder) buildReturn(n *cst.ReturnStmt) ast.Stmt {
	out := &ast.ReturnStmt{BaseStmt: ast.StmtAt(n.Loc)}
	if n.Value != nil {
		out.Value = b.buildExpression(n.Value)
	}
	return out
}

// buildHostCode concatenates the section's raw chunks with no separator
// and trims the whole payload exactly once. The contents are opaque; the
// builder never validates them.
func (b *Builder) buildHostCode(n *cst.HostCode) ast.Stmt {
	var sb strings.Builder
	for _, chunk := range n.Chunks {
		sb.WriteString(chunk.Text)
	}
	return &ast.HostCode{BaseStmt: ast.StmtAt(n.Loc), Code: strings.TrimSpace(sb.String())}
}

func (b *Builder) buildBlock(n *cst.Block) *ast.BlockStmt {
	if n == nil {
		return nil
	}
	out := &ast.BlockStmt{BaseStmt: ast.StmtAt(n.Loc)}
	for _, stmt := range n.Statements {
		if s := b.buildStatement(stmt); s != nil {
			out.Stmts = append(out.Stmts, s)
		}
	}
	return out
}

// propertyKey extracts a property or object key: quoted strings are
// decoded, bare identifiers and keywords are taken as raw token text.
func (b *Builder) propertyKey(key lexer.Token) string {
	if key.Type == token.STRING {
		return decodeString(key.Text)
	}
	return key.Text
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (b *Builder) buildExpression(n *cst.Expression) ast.Expr {
	if n == nil {
		return nil
	}
	switch {
	case n.Assign != nil:
		value := b.buildExpression(n.Assign.Value)
		if value == nil {
			return nil
		}
		return &ast.AssignExpr{BaseExpr: ast.At(n.Assign.Loc), Target: n.Assign.Target.Text, Value: value}
	case n.Or != nil:
		return b.buildOr(n.Or)
	default:
		b.errorf(n.Loc, "unknown expression type")
		return nil
	}
}

func (b *Builder) buildOr(n *cst.OrExpr) ast.Expr {
	expr := b.buildAnd(n.First)
	for _, operand := range n.Rest {
		expr = &ast.BinaryExpr{BaseExpr: ast.At(n.Loc), Left: expr, Op: "||", Right: b.buildAnd(operand)}
	}
	return expr
}

func (b *Builder) buildAnd(n *cst.AndExpr) ast.Expr {
	expr := b.buildEquality(n.First)
	for _, operand := range n.Rest {
		expr = &ast.BinaryExpr{BaseExpr: ast.At(n.Loc), Left: expr, Op: "&&", Right: b.buildEquality(operand)}
	}
	return expr
}

// The operator of each chain link is resolved by testing the link's token
// fields in a fixed order; the last alternative is the default. The
// resolved symbol, not the token, is stored in the AST.

func (b *Builder) buildEquality(n *cst.Equality) ast.Expr {
	expr := b.buildRelational(n.First)
	for _, link := range n.Rest {
		op := "!="
		if link.Eq != nil {
			op = "=="
		}
		expr = &ast.BinaryExpr{BaseExpr: ast.At(n.Loc), Left: expr, Op: op, Right: b.buildRelational(link.Operand)}
	}
	return expr
}

func (b *Builder) buildRelational(n *cst.Relational) ast.Expr {
	expr := b.buildAdditive(n.First)
	for _, link := range n.Rest {
		op := ">="
		switch {
		case link.Lt != nil:
			op = "<"
		case link.Gt != nil:
			op = ">"
		case link.Le != nil:
			op = "<="
		}
		expr = &ast.BinaryExpr{BaseExpr: ast.At(n.Loc), Left: expr, Op: op, Right: b.buildAdditive(link.Operand)}
	}
	return expr
}

func (b *Builder) buildAdditive(n *cst.Additive) ast.Expr {
	expr := b.buildMultiplicative(n.First)
	for _, link := range n.Rest {
		op := "-"
		if link.Plus != nil {
			op = "+"
		}
		expr = &ast.BinaryExpr{BaseExpr: ast.At(n.Loc), Left: expr, Op: op, Right: b.buildMultiplicative(link.Operand)}
	}
	return expr
}

func (b *Builder) buildMultiplicative(n *cst.Multiplicative) ast.Expr {
	expr := b.buildUnary(n.First)
	for _, link := range n.Rest {
		op := "/"
		if link.Star != nil {
			op = "*"
		}
		expr = &ast.BinaryExpr{BaseExpr: ast.At(n.Loc), Left: expr, Op: op, Right: b.buildUnary(link.Operand)}
	}
	return expr
}

func (b *Builder) buildUnary(n *cst.Unary) ast.Expr {
	if n.Operand != nil {
		op := "-"
		if n.Bang != nil {
			op = "!"
		}
		return &ast.UnaryExpr{BaseExpr: ast.At(n.Loc), Op: op, Operand: b.buildUnary(n.Operand)}
	}
	return b.buildPostfix(n.Postfix)
}

func (b *Builder) buildPostfix(n *cst.Postfix) ast.Expr {
	expr := b.buildPrimary(n.Primary)
	if expr == nil {
		return nil
	}

	for _, op := range n.Ops {
		switch {
		case op.Member != nil:
			expr = &ast.MemberExpr{BaseExpr: ast.At(op.Loc), Object: expr, Member: op.Member.Text}
		case op.Index != nil:
			expr = &ast.IndexExpr{BaseExpr: ast.At(op.Loc), Array: expr, Index: b.buildExpression(op.Index)}
		case op.Call != nil:
			call := &ast.CallExpr{BaseExpr: ast.At(op.Loc), Callee: expr}
			for _, arg := range op.Call.Args {
				call.Args = append(call.Args, b.buildExpression(arg))
			}
			expr = call
		default:
			b.errorf(op.Loc, "unknown postfix operation")
		}
	}
	return expr
}

func (b *Builder) buildPrimary(n *cst.Primary) ast.Expr {
	switch {
	case n.Number != nil:
		return b.numberLiteral(*n.Number)
	case n.Str != nil:
		return &ast.Literal{BaseExpr: ast.At(n.Loc), Kind: ast.LitString, Str: decodeString(n.Str.Text)}
	case n.True != nil:
		return &ast.Literal{BaseExpr: ast.At(n.Loc), Kind: ast.LitBool, Bool: true}
	case n.False != nil:
		return &ast.Literal{BaseExpr: ast.At(n.Loc), Kind: ast.LitBool, Bool: false}
	case n.Null != nil:
		return &ast.Literal{BaseExpr: ast.At(n.Loc), Kind: ast.LitNull}
	case n.Ident != nil:
		// Keyword tokens in expression position are plain identifiers.
		return &ast.Ident{BaseExpr: ast.At(n.Loc), Name: n.Ident.Text}
	case n.Array != nil:
		out := &ast.ArrayLit{BaseExpr: ast.At(n.Array.Loc)}
		for _, el := range n.Array.Elements {
			out.Elements = append(out.Elements, b.buildExpression(el))
		}
		return out
	case n.Object != nil:
		out := &ast.ObjectLit{BaseExpr: ast.At(n.Object.Loc)}
		for _, entry := range n.Object.Entries {
			out.Entries = append(out.Entries, ast.ObjectEntry{
				Key:   b.propertyKey(entry.Key),
				Value: b.buildExpression(entry.Value),
			})
		}
		return out
	case n.Paren != nil:
		return b.buildExpression(n.Paren)
	default:
		b.errorf(n.Loc, "unknown expression type")
		return nil
	}
}

// numberLiteral coerces a numeric literal from its textual form: a decimal
// point selects the floating-point representation, its absence the integer
// one.
func (b *Builder) numberLiteral(tok lexer.Token) ast.Expr {
	if strings.Contains(tok.Text, ".") {
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			b.errorf(tok.Loc, "invalid number literal %q", tok.Text)
			return nil
		}
		return &ast.Literal{BaseExpr: ast.At(tok.Loc), Kind: ast.LitFloat, Float: v}
	}
	v, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		b.errorf(tok.Loc, "invalid number literal %q", tok.Text)
		return nil
	}
	return &ast.Literal{BaseExpr: ast.At(tok.Loc), Kind: ast.LitInt, Int: v}
}

// decodeString strips the enclosing quotes and decodes escape sequences.
// Recognized escapes (\n \t \r \\ \") are substituted; for any other
// backslash sequence the backslash itself is kept verbatim and only the
// backslash is consumed, so the following character is processed
// independently. Unrecognized escapes therefore round-trip unchanged.
func decodeString(raw string) string {
	s := raw
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				sb.WriteByte('\n')
				i++
				continue
			case 't':
				sb.WriteByte('\t')
				i++
				continue
			case 'r':
				sb.WriteByte('\r')
				i++
				continue
			case '\\':
				sb.WriteByte('\\')
				i++
				continue
			case '"':
				sb.WriteByte('"')
				i++
				continue
			}
		}
		// Unrecognized escape: keep the backslash, reprocess what follows.
		sb.WriteByte('\\')
	}
	return sb.String()
}
