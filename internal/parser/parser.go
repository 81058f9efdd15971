package parser

import (
	"fmt"

	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/cst"
	"github.com/questlang/quill/internal/lexer"
	"github.com/questlang/quill/internal/token"
)

// Parser is a recursive descent parser for Quill scripts.
type Parser struct {
	lexer    *lexer.Lexer
	tok      lexer.Token // current token
	peekTok  lexer.Token // one-token lookahead
	listener ErrorListener
}

// Parse parses Quill source code into a concrete parse tree. Every syntax
// error is reported to the listener; the parser recovers at statement
// boundaries and continues. The returned tree is partial when errors were
// reported and must not be used in that case.
func Parse(src []byte, filename string, listener ErrorListener) *cst.Script {
	p := &Parser{
		lexer:    lexer.New(src, filename),
		listener: listener,
	}
	p.next() // fill peekTok
	p.next() // fill tok

	return p.parseScript()
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.peekTok
	p.peekTok = p.lexer.Scan()
}

// expect checks that the current token is t and advances.
// If not, it reports an error and does not advance.
func (p *Parser) expect(t token.Type) bool {
	if p.tok.Type != t {
		p.errorf("expected '%s', got %s", t, p.tokenDesc())
		return false
	}
	p.next()
	return true
}

// expectIdent expects an IDENT token and returns it.
func (p *Parser) expectIdent() (lexer.Token, bool) {
	tok := p.tok
	if tok.Type != token.IDENT {
		p.errorf("expected identifier, got %s", p.tokenDesc())
		return tok, false
	}
	p.next()
	return tok, true
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.IDENT, token.NUMBER:
		return "'" + p.tok.Text + "'"
	case token.STRING:
		return "string literal"
	case token.ILLEGAL:
		// ILLEGAL tokens carry the lexer's message in Text
		return p.tok.Text
	default:
		return "'" + p.tok.Type.String() + "'"
	}
}

// errorf reports a syntax error at the current token.
func (p *Parser) errorf(format string, args ...any) {
	p.errorfAt(p.tok.Loc, format, args...)
}

func (p *Parser) errorfAt(loc ast.Location, format string, args ...any) {
	if len(args) == 0 {
		p.listener.SyntaxError(loc, format)
		return
	}
	p.listener.SyntaxError(loc, fmt.Sprintf(format, args...))
}

// startsStatement returns true if t can introduce a statement, used as a
// synchronization point during error recovery.
func startsStatement(t token.Type) bool {
	switch t {
	case token.VAR, token.ACTOR, token.DIALOGUE, token.QUEST, token.FUNC,
		token.ON, token.IF, token.FOR, token.WHILE, token.RETURN,
		token.NODE, token.HOSTCHUNK, token.LBRACE:
		return true
	default:
		return false
	}
}

// synchronize skips tokens until a likely statement boundary so one syntax
// error does not cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	for {
		switch p.tok.Type {
		case token.EOF, token.RBRACE:
			return
		case token.SEMICOLON:
			p.next()
			return
		default:
			if startsStatement(p.tok.Type) {
				return
			}
			p.next()
		}
	}
}

// -----------------------------------------------------------------------------
// Script and statements
// -----------------------------------------------------------------------------

func (p *Parser) parseScript() *cst.Script {
	script := &cst.Script{}

	for p.tok.Type != token.EOF {
		switch p.tok.Type {
		case token.SEMICOLON:
			p.next()
		case token.RBRACE:
			p.errorf("unexpected '}'")
			p.next()
		default:
			if stmt := p.parseStatement(); stmt != nil {
				script.Statements = append(script.Statements, stmt)
			}
		}
	}
	return script
}

// parseStatement parses one statement production. Exactly one alternative
// field of the returned node is populated. Returns nil after a syntax
// error (recovery already performed).
func (p *Parser) parseStatement() *cst.Statement {
	loc := p.tok.Loc
	stmt := &cst.Statement{Loc: loc}

	switch p.tok.Type {
	case token.ILLEGAL:
		p.errorf("%s", p.tok.Text)
		p.next()
		p.synchronize()
		return nil

	case token.VAR:
		stmt.Var = p.parseVarDecl()

	case token.ACTOR:
		if p.peekTok.Type == token.ASSIGN {
			stmt.Property = p.parseProperty()
			break
		}
		stmt.Actor = p.parseNamedBlock()

	case token.DIALOGUE:
		if p.peekTok.Type == token.ASSIGN {
			stmt.Property = p.parseProperty()
			break
		}
		stmt.Dialogue = p.parseNamedBlock()

	case token.QUEST:
		if p.peekTok.Type == token.ASSIGN {
			stmt.Property = p.parseProperty()
			break
		}
		stmt.Quest = p.parseNamedBlock()

	case token.NODE:
		if p.peekTok.Type == token.ASSIGN {
			stmt.Property = p.parseProperty()
			break
		}
		stmt.Node = p.parseNamedBlock()

	case token.FUNC:
		stmt.Func = p.parseFuncDecl()

	case token.ON:
		stmt.Handler = p.parseEventHandler()

	case token.IF:
		stmt.If = p.parseIf()

	case token.FOR:
		p.parseFor(stmt)

	case token.WHILE:
		stmt.While = p.parseWhile()

	case token.RETURN:
		stmt.Return = p.parseReturn()

	case token.HOSTCHUNK:
		stmt.HostCode = p.parseHostCode()

	case token.LBRACE:
		stmt.Block = p.parseBlock()

	case token.IDENT, token.STRING:
		// `key = expr` at statement position is a property; anything
		// else is an expression statement.
		if p.peekTok.Type == token.ASSIGN {
			stmt.Property = p.parseProperty()
			break
		}
		stmt.Expr = p.parseExpression()

	default:
		if p.tok.Type.IsKeyword() && p.peekTok.Type == token.ASSIGN {
			// Keywords are usable as property keys.
			stmt.Property = p.parseProperty()
			break
		}
		if canStartExpression(p.tok.Type) {
			stmt.Expr = p.parseExpression()
			break
		}
		p.errorf("expected statement, got %s", p.tokenDesc())
		p.next()
		p.synchronize()
		return nil
	}

	if !stmt.HasAlternative() {
		// The sub-parser failed and reported; resynchronize.
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) parseVarDecl() *cst.VarDecl {
	loc := p.tok.Loc
	p.next() // consume 'var'

	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return &cst.VarDecl{Loc: loc, Name: name, Value: value}
}

// parseNamedBlock parses `KEYWORD NAME block`, shared by actor, dialogue,
// quest and node declarations.
func (p *Parser) parseNamedBlock() *cst.NamedBlock {
	loc := p.tok.Loc
	p.next() // consume the introducing keyword

	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &cst.NamedBlock{Loc: loc, Name: name, Body: body}
}

func (p *Parser) parseFuncDecl() *cst.FuncDecl {
	loc := p.tok.Loc
	p.next() // consume 'func'

	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}

	var params []lexer.Token
	seen := make(map[string]bool)
	for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
		if len(params) > 0 && !p.expect(token.COMMA) {
			return nil
		}
		param, ok := p.expectIdent()
		if !ok {
			return nil
		}
		if seen[param.Text] {
			p.errorfAt(param.Loc, "duplicate parameter %q", param.Text)
		}
		seen[param.Text] = true
		params = append(params, param)
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &cst.FuncDecl{Loc: loc, Name: name, Params: params, Body: body}
}

func (p *Parser) parseEventHandler() *cst.EventHandler {
	loc := p.tok.Loc
	p.next() // consume 'on'

	event, ok := p.expectIdent()
	if !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &cst.EventHandler{Loc: loc, Event: event, Body: body}
}

func (p *Parser) parseIf() *cst.IfStmt {
	loc := p.tok.Loc
	p.next() // consume 'if'

	if !p.expect(token.LPAREN) {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	then := p.parseBlock()
	if then == nil {
		return nil
	}

	// The else clause is attached only when actually present; its absence
	// is preserved as a nil pointer, never an empty block.
	var elseBlock *cst.Block
	if p.tok.Type == token.ELSE {
		p.next()
		if p.tok.Type == token.IF {
			// else-if chains desugar to an else block holding one if.
			nested := &cst.Statement{Loc: p.tok.Loc}
			nested.If = p.parseIf()
			if nested.If == nil {
				return nil
			}
			elseBlock = &cst.Block{Loc: nested.Loc, Statements: []*cst.Statement{nested}}
		} else {
			elseBlock = p.parseBlock()
			if elseBlock == nil {
				return nil
			}
		}
	}

	return &cst.IfStmt{Loc: loc, Cond: cond, Then: then, Else: elseBlock}
}

// parseFor parses both loop shapes and populates the matching alternative:
// `for (NAME in expr) block` or `for (init?; cond?; update?) block`.
func (p *Parser) parseFor(stmt *cst.Statement) {
	loc := p.tok.Loc
	p.next() // consume 'for'

	if !p.expect(token.LPAREN) {
		return
	}

	// for-in: the only shape where an identifier is followed by 'in'.
	if p.tok.Type == token.IDENT && p.peekTok.Type == token.IN {
		loopVar := p.tok
		p.next() // consume variable
		p.next() // consume 'in'
		iterable := p.parseExpression()
		if iterable == nil {
			return
		}
		if !p.expect(token.RPAREN) {
			return
		}
		body := p.parseBlock()
		if body == nil {
			return
		}
		stmt.ForIn = &cst.ForInStmt{Loc: loc, Var: loopVar, Iterable: iterable, Body: body}
		return
	}

	// C-style. Any clause may be absent; absent clauses stay nil.
	var initClause *cst.ForInit
	if p.tok.Type != token.SEMICOLON {
		initLoc := p.tok.Loc
		declare := false
		if p.tok.Type == token.VAR {
			declare = true
			p.next()
		}
		name, ok := p.expectIdent()
		if !ok {
			return
		}
		if !p.expect(token.ASSIGN) {
			return
		}
		value := p.parseExpression()
		if value == nil {
			return
		}
		initClause = &cst.ForInit{Loc: initLoc, Declare: declare, Name: name, Value: value}
	}
	if !p.expect(token.SEMICOLON) {
		return
	}

	var cond *cst.Expression
	if p.tok.Type != token.SEMICOLON {
		cond = p.parseExpression()
		if cond == nil {
			return
		}
	}
	if !p.expect(token.SEMICOLON) {
		return
	}

	var update *cst.ForUpdate
	if p.tok.Type != token.RPAREN {
		updateLoc := p.tok.Loc
		name, ok := p.expectIdent()
		if !ok {
			return
		}
		if !p.expect(token.ASSIGN) {
			return
		}
		value := p.parseExpression()
		if value == nil {
			return
		}
		update = &cst.ForUpdate{Loc: updateLoc, Name: name, Value: value}
	}
	if !p.expect(token.RPAREN) {
		return
	}

	body := p.parseBlock()
	if body == nil {
		return
	}
	stmt.ForC = &cst.ForCStmt{Loc: loc, Init: initClause, Cond: cond, Update: update, Body: body}
}

func (p *Parser) parseWhile() *cst.WhileStmt {
	loc := p.tok.Loc
	p.next() // consume 'while'

	if !p.expect(token.LPAREN) {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &cst.WhileStmt{Loc: loc, Cond: cond, Body: body}
}

func (p *Parser) parseReturn() *cst.ReturnStmt {
	loc := p.tok.Loc
	p.next() // consume 'return'

	var value *cst.Expression
	if canStartExpression(p.tok.Type) {
		value = p.parseExpression()
		if value == nil {
			return nil
		}
	}
	return &cst.ReturnStmt{Loc: loc, Value: value}
}

func (p *Parser) parseProperty() *cst.Property {
	loc := p.tok.Loc
	key := p.tok
	p.next() // consume key
	p.next() // consume '='

	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return &cst.Property{Loc: loc, Key: key, Value: value}
}

// parseHostCode collects the consecutive raw chunk tokens of one embedded
// host-code section.
func (p *Parser) parseHostCode() *cst.HostCode {
	loc := p.tok.Loc
	var chunks []lexer.Token
	for p.tok.Type == token.HOSTCHUNK {
		chunks = append(chunks, p.tok)
		p.next()
	}
	return &cst.HostCode{Loc: loc, Chunks: chunks}
}

func (p *Parser) parseBlock() *cst.Block {
	loc := p.tok.Loc
	if !p.expect(token.LBRACE) {
		return nil
	}

	block := &cst.Block{Loc: loc}
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		if p.tok.Type == token.SEMICOLON {
			p.next()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return block
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// canStartExpression returns true if t can begin an expression. Statement
// keywords are excluded here even though keywords are legal identifiers in
// expression position: in optional-expression slots (a bare return before
// `if`, say) the statement reading wins.
func canStartExpression(t token.Type) bool {
	switch t {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL,
		token.IDENT, token.LPAREN, token.LBRACKET, token.LBRACE,
		token.MINUS, token.BANG:
		return true
	default:
		return false
	}
}

// parseExpression parses the top expression production: an assignment or a
// logical-or chain.
func (p *Parser) parseExpression() *cst.Expression {
	loc := p.tok.Loc

	// Assignment: `NAME = expr`, right-associative. Keywords are legal
	// targets (identifier/keyword duality).
	if (p.tok.Type == token.IDENT || p.tok.Type.IsKeyword()) && p.peekTok.Type == token.ASSIGN {
		target := p.tok
		p.next() // consume target
		p.next() // consume '='
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		return &cst.Expression{Loc: loc, Assign: &cst.Assign{Loc: loc, Target: target, Value: value}}
	}

	or := p.parseOr()
	if or == nil {
		return nil
	}
	return &cst.Expression{Loc: loc, Or: or}
}

func (p *Parser) parseOr() *cst.OrExpr {
	loc := p.tok.Loc
	first := p.parseAnd()
	if first == nil {
		return nil
	}
	out := &cst.OrExpr{Loc: loc, First: first}
	for p.tok.Type == token.OR {
		p.next()
		operand := p.parseAnd()
		if operand == nil {
			return nil
		}
		out.Rest = append(out.Rest, operand)
	}
	return out
}

func (p *Parser) parseAnd() *cst.AndExpr {
	loc := p.tok.Loc
	first := p.parseEquality()
	if first == nil {
		return nil
	}
	out := &cst.AndExpr{Loc: loc, First: first}
	for p.tok.Type == token.AND {
		p.next()
		operand := p.parseEquality()
		if operand == nil {
			return nil
		}
		out.Rest = append(out.Rest, operand)
	}
	return out
}

func (p *Parser) parseEquality() *cst.Equality {
	loc := p.tok.Loc
	first := p.parseRelational()
	if first == nil {
		return nil
	}
	out := &cst.Equality{Loc: loc, First: first}
	for p.tok.Type == token.EQ || p.tok.Type == token.NEQ {
		opTok := p.tok
		p.next()
		operand := p.parseRelational()
		if operand == nil {
			return nil
		}
		op := &cst.EqualityOp{Operand: operand}
		if opTok.Type == token.EQ {
			op.Eq = &opTok
		} else {
			op.Neq = &opTok
		}
		out.Rest = append(out.Rest, op)
	}
	return out
}

func (p *Parser) parseRelational() *cst.Relational {
	loc := p.tok.Loc
	first := p.parseAdditive()
	if first == nil {
		return nil
	}
	out := &cst.Relational{Loc: loc, First: first}
	for p.tok.Type == token.LT || p.tok.Type == token.GT ||
		p.tok.Type == token.LE || p.tok.Type == token.GE {
		opTok := p.tok
		p.next()
		operand := p.parseAdditive()
		if operand == nil {
			return nil
		}
		op := &cst.RelationalOp{Operand: operand}
		switch opTok.Type {
		case token.LT:
			op.Lt = &opTok
		case token.GT:
			op.Gt = &opTok
		case token.LE:
			op.Le = &opTok
		default:
			op.Ge = &opTok
		}
		out.Rest = append(out.Rest, op)
	}
	return out
}

func (p *Parser) parseAdditive() *cst.Additive {
	loc := p.tok.Loc
	first := p.parseMultiplicative()
	if first == nil {
		return nil
	}
	out := &cst.Additive{Loc: loc, First: first}
	for p.tok.Type == token.PLUS || p.tok.Type == token.MINUS {
		opTok := p.tok
		p.next()
		operand := p.parseMultiplicative()
		if operand == nil {
			return nil
		}
		op := &cst.AdditiveOp{Operand: operand}
		if opTok.Type == token.PLUS {
			op.Plus = &opTok
		} else {
			op.Minus = &opTok
		}
		out.Rest = append(out.Rest, op)
	}
	return out
}

func (p *Parser) parseMultiplicative() *cst.Multiplicative {
	loc := p.tok.Loc
	first := p.parseUnary()
	if first == nil {
		return nil
	}
	out := &cst.Multiplicative{Loc: loc, First: first}
	for p.tok.Type == token.STAR || p.tok.Type == token.SLASH {
		opTok := p.tok
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		op := &cst.MultiplicativeOp{Operand: operand}
		if opTok.Type == token.STAR {
			op.Star = &opTok
		} else {
			op.Slash = &opTok
		}
		out.Rest = append(out.Rest, op)
	}
	return out
}

func (p *Parser) parseUnary() *cst.Unary {
	loc := p.tok.Loc

	switch p.tok.Type {
	case token.BANG, token.MINUS:
		opTok := p.tok
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		out := &cst.Unary{Loc: loc, Operand: operand}
		if opTok.Type == token.BANG {
			out.Bang = &opTok
		} else {
			out.Minus = &opTok
		}
		return out

	default:
		postfix := p.parsePostfix()
		if postfix == nil {
			return nil
		}
		return &cst.Unary{Loc: loc, Postfix: postfix}
	}
}

func (p *Parser) parsePostfix() *cst.Postfix {
	loc := p.tok.Loc
	primary := p.parsePrimary()
	if primary == nil {
		return nil
	}
	out := &cst.Postfix{Loc: loc, Primary: primary}

	for {
		switch p.tok.Type {
		case token.DOT:
			opLoc := p.tok.Loc
			p.next()
			// Member names allow keywords, like property keys.
			if p.tok.Type != token.IDENT && !p.tok.Type.IsKeyword() {
				p.errorf("expected member name, got %s", p.tokenDesc())
				return nil
			}
			member := p.tok
			p.next()
			out.Ops = append(out.Ops, &cst.PostfixOp{Loc: opLoc, Member: &member})

		case token.LBRACKET:
			opLoc := p.tok.Loc
			p.next()
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			if !p.expect(token.RBRACKET) {
				return nil
			}
			out.Ops = append(out.Ops, &cst.PostfixOp{Loc: opLoc, Index: index})

		case token.LPAREN:
			opLoc := p.tok.Loc
			p.next()
			args := &cst.ArgList{Loc: opLoc}
			for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
				if len(args.Args) > 0 && !p.expect(token.COMMA) {
					return nil
				}
				arg := p.parseExpression()
				if arg == nil {
					return nil
				}
				args.Args = append(args.Args, arg)
			}
			if !p.expect(token.RPAREN) {
				return nil
			}
			out.Ops = append(out.Ops, &cst.PostfixOp{Loc: opLoc, Call: args})

		default:
			return out
		}
	}
}

func (p *Parser) parsePrimary() *cst.Primary {
	loc := p.tok.Loc
	out := &cst.Primary{Loc: loc}

	switch p.tok.Type {
	case token.NUMBER:
		tok := p.tok
		out.Number = &tok
		p.next()

	case token.STRING:
		tok := p.tok
		out.Str = &tok
		p.next()

	case token.TRUE:
		tok := p.tok
		out.True = &tok
		p.next()

	case token.FALSE:
		tok := p.tok
		out.False = &tok
		p.next()

	case token.NULL:
		tok := p.tok
		out.Null = &tok
		p.next()

	case token.LBRACKET:
		arr := p.parseArrayLit()
		if arr == nil {
			return nil
		}
		out.Array = arr

	case token.LBRACE:
		obj := p.parseObjectLit()
		if obj == nil {
			return nil
		}
		out.Object = obj

	case token.LPAREN:
		p.next()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		out.Paren = inner

	case token.ILLEGAL:
		p.errorf("%s", p.tok.Text)
		p.next()
		return nil

	default:
		// Identifiers, including reserved keywords used as plain names.
		if p.tok.Type == token.IDENT || p.tok.Type.IsKeyword() {
			tok := p.tok
			out.Ident = &tok
			p.next()
			break
		}
		p.errorf("expected expression, got %s", p.tokenDesc())
		p.next()
		return nil
	}

	return out
}

func (p *Parser) parseArrayLit() *cst.ArrayLit {
	loc := p.tok.Loc
	p.next() // consume '['

	out := &cst.ArrayLit{Loc: loc}
	for p.tok.Type != token.RBRACKET && p.tok.Type != token.EOF {
		if len(out.Elements) > 0 && !p.expect(token.COMMA) {
			return nil
		}
		el := p.parseExpression()
		if el == nil {
			return nil
		}
		out.Elements = append(out.Elements, el)
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return out
}

func (p *Parser) parseObjectLit() *cst.ObjectLit {
	loc := p.tok.Loc
	p.next() // consume '{'

	out := &cst.ObjectLit{Loc: loc}
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		if len(out.Entries) > 0 && !p.expect(token.COMMA) {
			return nil
		}

		keyLoc := p.tok.Loc
		if p.tok.Type != token.STRING && p.tok.Type != token.IDENT && !p.tok.Type.IsKeyword() {
			p.errorf("expected object key, got %s", p.tokenDesc())
			return nil
		}
		key := p.tok
		p.next()

		if !p.expect(token.COLON) {
			return nil
		}
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		out.Entries = append(out.Entries, &cst.ObjectEntry{Loc: keyLoc, Key: key, Value: value})
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return out
}
