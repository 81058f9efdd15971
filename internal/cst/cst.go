// Package cst defines the concrete parse tree for Quill.
//
// Each type mirrors one production of the fixed grammar. A Statement node
// carries one pointer field per alternative sub-rule; the parser populates
// at most one of them, and the AST builder tests them in a fixed priority
// order. Binary-expression productions keep one field per operator token
// that can appear at that precedence tier, so the builder resolves the
// operator by checking which field is non-nil.
//
// The tree is full fidelity where it matters for the builder: tokens keep
// their raw text (strings include quotes, numbers their source form) and
// every production records the location of its first token.
package cst

import (
	"github.com/questlang/quill/ast"
	"github.com/questlang/quill/internal/lexer"
)

// Script is the root production: a sequence of statements.
type Script struct {
	Statements []*Statement
}

// Statement is the statement production. At most one alternative field is
// populated; all others are nil.
type Statement struct {
	Loc ast.Location

	Var      *VarDecl
	Actor    *NamedBlock
	Dialogue *NamedBlock
	Quest    *NamedBlock
	Func     *FuncDecl
	Handler  *EventHandler
	If       *IfStmt
	ForIn    *ForInStmt
	ForC     *ForCStmt
	While    *WhileStmt
	Return   *ReturnStmt
	Property *Property
	Node     *NamedBlock
	HostCode *HostCode
	Block    *Block
	Expr     *Expression
}

// HasAlternative reports whether any alternative field is populated.
// A fully nil statement is the parser signaling a failed production.
func (s *Statement) HasAlternative() bool {
	return s.Var != nil || s.Actor != nil || s.Dialogue != nil || s.Quest != nil ||
		s.Func != nil || s.Handler != nil || s.If != nil || s.ForIn != nil ||
		s.ForC != nil || s.While != nil || s.Return != nil || s.Property != nil ||
		s.Node != nil || s.HostCode != nil || s.Block != nil || s.Expr != nil
}

// VarDecl is the `var NAME = expression` production.
type VarDecl struct {
	Loc   ast.Location
	Name  lexer.Token
	Value *Expression
}

// NamedBlock is the shared production shape of actor, dialogue, quest and
// node declarations: `KEYWORD NAME block`.
type NamedBlock struct {
	Loc  ast.Location
	Name lexer.Token
	Body *Block
}

// FuncDecl is the `func NAME ( params ) block` production.
type FuncDecl struct {
	Loc    ast.Location
	Name   lexer.Token
	Params []lexer.Token
	Body   *Block
}

// EventHandler is the `on NAME block` production.
type EventHandler struct {
	Loc   ast.Location
	Event lexer.Token
	Body  *Block
}

// IfStmt is the `if ( expression ) block (else block)?` production.
// Else is nil when the source has no else clause.
type IfStmt struct {
	Loc  ast.Location
	Cond *Expression
	Then *Block
	Else *Block
}

// ForInStmt is the `for ( NAME in expression ) block` production.
type ForInStmt struct {
	Loc      ast.Location
	Var      lexer.Token
	Iterable *Expression
	Body     *Block
}

// ForCStmt is the C-style `for ( init? ; cond? ; update? ) block`
// production. Each absent clause is nil.
type ForCStmt struct {
	Loc    ast.Location
	Init   *ForInit
	Cond   *Expression
	Update *ForUpdate
	Body   *Block
}

// ForInit is the optional init clause: `var? NAME = expression`.
type ForInit struct {
	Loc     ast.Location
	Declare bool // the clause starts with `var`
	Name    lexer.Token
	Value   *Expression
}

// ForUpdate is the optional update clause: `NAME = expression`.
type ForUpdate struct {
	Loc   ast.Location
	Name  lexer.Token
	Value *Expression
}

// WhileStmt is the `while ( expression ) block` production.
type WhileStmt struct {
	Loc  ast.Location
	Cond *Expression
	Body *Block
}

// ReturnStmt is the `return expression?` production.
type ReturnStmt struct {
	Loc   ast.Location
	Value *Expression // nil for a bare return
}

// Property is the `key = expression` production at statement position.
// Key is a STRING, IDENT, or keyword token.
type Property struct {
	Loc   ast.Location
	Key   lexer.Token
	Value *Expression
}

// HostCode is the host-code-section production: one or more consecutive
// raw chunk tokens.
type HostCode struct {
	Loc    ast.Location
	Chunks []lexer.Token
}

// Block is the `{ statement* }` production.
type Block struct {
	Loc        ast.Location
	Statements []*Statement
}

// -----------------------------------------------------------------------------
// Expression productions, one per precedence tier
// -----------------------------------------------------------------------------

// Expression is the top expression production:
// either an assignment or a logical-or chain.
type Expression struct {
	Loc    ast.Location
	Assign *Assign
	Or     *OrExpr
}

// Assign is the `NAME = expression` production (right-associative).
type Assign struct {
	Loc    ast.Location
	Target lexer.Token
	Value  *Expression
}

// OrExpr is the `and ( '||' and )*` production.
type OrExpr struct {
	Loc   ast.Location
	First *AndExpr
	Rest  []*AndExpr // operands joined by '||', in source order
}

// AndExpr is the `equality ( '&&' equality )*` production.
type AndExpr struct {
	Loc   ast.Location
	First *Equality
	Rest  []*Equality // operands joined by '&&', in source order
}

// Equality is the `relational ( ('==' | '!=') relational )*` production.
type Equality struct {
	Loc   ast.Location
	First *Relational
	Rest  []*EqualityOp
}

// EqualityOp is one operator/operand pair of an Equality chain.
// Exactly one operator token field is non-nil.
type EqualityOp struct {
	Eq      *lexer.Token // '=='
	Neq     *lexer.Token // '!='
	Operand *Relational
}

// Relational is the `additive ( ('<' | '>' | '<=' | '>=') additive )*`
// production.
type Relational struct {
	Loc   ast.Location
	First *Additive
	Rest  []*RelationalOp
}

// RelationalOp is one operator/operand pair of a Relational chain.
// Exactly one operator token field is non-nil.
type RelationalOp struct {
	Lt      *lexer.Token // '<'
	Gt      *lexer.Token // '>'
	Le      *lexer.Token // '<='
	Ge      *lexer.Token // '>='
	Operand *Additive
}

// Additive is the `multiplicative ( ('+' | '-') multiplicative )*`
// production.
type Additive struct {
	Loc   ast.Location
	First *Multiplicative
	Rest  []*AdditiveOp
}

// AdditiveOp is one operator/operand pair of an Additive chain.
// Exactly one operator token field is non-nil.
type AdditiveOp struct {
	Plus    *lexer.Token // '+'
	Minus   *lexer.Token // '-'
	Operand *Multiplicative
}

// Multiplicative is the `unary ( ('*' | '/') unary )*` production.
type Multiplicative struct {
	Loc   ast.Location
	First *Unary
	Rest  []*MultiplicativeOp
}

// MultiplicativeOp is one operator/operand pair of a Multiplicative chain.
// Exactly one operator token field is non-nil.
type MultiplicativeOp struct {
	Star    *lexer.Token // '*'
	Slash   *lexer.Token // '/'
	Operand *Unary
}

// Unary is the `('!' | '-') unary | postfix` production.
// Either an operator field plus Operand is set, or Postfix is set.
type Unary struct {
	Loc     ast.Location
	Bang    *lexer.Token // '!'
	Minus   *lexer.Token // '-'
	Operand *Unary
	Postfix *Postfix
}

// Postfix is the `primary ( '.' NAME | '[' expression ']' | '(' args ')' )*`
// production.
type Postfix struct {
	Loc     ast.Location
	Primary *Primary
	Ops     []*PostfixOp
}

// PostfixOp is one postfix operation. Exactly one field is set.
type PostfixOp struct {
	Loc    ast.Location
	Member *lexer.Token // '.' NAME
	Index  *Expression  // '[' expression ']'
	Call   *ArgList     // '(' args ')'
}

// ArgList is the call-argument production.
type ArgList struct {
	Loc  ast.Location
	Args []*Expression
}

// Primary is the primary-expression production. At most one alternative
// field is populated. Ident may hold a keyword token: keywords are valid
// identifiers in expression position.
type Primary struct {
	Loc ast.Location

	Number *lexer.Token
	Str    *lexer.Token
	True   *lexer.Token
	False  *lexer.Token
	Null   *lexer.Token
	Ident  *lexer.Token
	Array  *ArrayLit
	Object *ObjectLit
	Paren  *Expression
}

// ArrayLit is the `[ expression ( ',' expression )* ]` production.
type ArrayLit struct {
	Loc      ast.Location
	Elements []*Expression
}

// ObjectLit is the `{ entry ( ',' entry )* }` production.
type ObjectLit struct {
	Loc     ast.Location
	Entries []*ObjectEntry
}

// ObjectEntry is the `key ':' expression` production.
// Key is a STRING, IDENT, or keyword token.
type ObjectEntry struct {
	Loc   ast.Location
	Key   lexer.Token
	Value *Expression
}
