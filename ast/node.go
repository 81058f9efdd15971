// Package ast defines the abstract syntax tree for Quill scripts.
//
// The tree is produced in one pass by the parse facade and is immutable
// thereafter: consumers (interpreters, linters, printers) walk it but never
// modify it. Every node carries the Location of the token that introduced
// it, for error reporting.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── Literal, ArrayLit, ObjectLit - literals
//	│   ├── Ident, MemberExpr, IndexExpr - references
//	│   ├── UnaryExpr, BinaryExpr, AssignExpr - operations
//	│   └── CallExpr - calls
//	├── Stmt (interface) - statements that perform actions
//	│   ├── VarDecl, PropertyStmt - bindings
//	│   ├── ActorDecl, DialogueDecl, QuestDecl, NodeDecl - named blocks
//	│   ├── FuncDecl, EventHandler - callable declarations
//	│   ├── IfStmt, ForInStmt, ForCStmt, WhileStmt - control flow
//	│   ├── ReturnStmt, ExprStmt, HostCode - other
//	│   └── BlockStmt - compound
//	└── Program - root
package ast

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the location of the first token belonging to this node.
	Pos() Location
}

// Expr is the interface for all expression nodes.
// Expressions are AST nodes that evaluate to a value.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt is the interface for all statement nodes.
// Statements are AST nodes that perform actions.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// BaseExpr provides the location field shared by all expression nodes.
type BaseExpr struct {
	Loc Location
}

func (b *BaseExpr) Pos() Location { return b.Loc }
func (b *BaseExpr) exprNode()     {}

// BaseStmt provides the location field shared by all statement nodes.
type BaseStmt struct {
	Loc Location
}

func (b *BaseStmt) Pos() Location { return b.Loc }
func (b *BaseStmt) stmtNode()     {}

// At creates a BaseExpr at the given location.
func At(loc Location) BaseExpr { return BaseExpr{Loc: loc} }

// StmtAt creates a BaseStmt at the given location.
func StmtAt(loc Location) BaseStmt { return BaseStmt{Loc: loc} }
