package ast

// -----------------------------------------------------------------------------
// Bindings
// -----------------------------------------------------------------------------

// VarDecl represents a variable declaration.
// Example: var gold = 100
type VarDecl struct {
	BaseStmt
	Name  string
	Value Expr
}

// PropertyStmt represents a bare `key = expr` at statement position,
// normally inside a declaration body.
// Example (inside an actor body): mood = "angry"
type PropertyStmt struct {
	BaseStmt
	Name  string
	Value Expr
}

// -----------------------------------------------------------------------------
// Named block declarations
//
// ActorDecl, DialogueDecl and QuestDecl are structurally identical but kept
// as distinct types because the interpreter dispatches on kind.
// -----------------------------------------------------------------------------

// ActorDecl represents an actor declaration.
// Example: actor alice { name = "Alice" }
type ActorDecl struct {
	BaseStmt
	Name string
	Body *BlockStmt
}

// DialogueDecl represents a dialogue declaration.
// Example: dialogue intro { node start { text = "Hi" } }
type DialogueDecl struct {
	BaseStmt
	Name string
	Body *BlockStmt
}

// QuestDecl represents a quest declaration.
// Example: quest find_sword { title = "Find the Sword" }
type QuestDecl struct {
	BaseStmt
	Name string
	Body *BlockStmt
}

// NodeDecl represents a named sub-block inside a declaration, typically a
// dialogue node.
// Example: node start { text = "Hello" }
type NodeDecl struct {
	BaseStmt
	Name string
	Body *BlockStmt
}

// -----------------------------------------------------------------------------
// Callable declarations
// -----------------------------------------------------------------------------

// FuncDecl represents a function declaration.
// Example: func greet(who) { return "Hello, " + who }
type FuncDecl struct {
	BaseStmt
	Name   string
	Params []string // parameter names in order (may be empty)
	Body   *BlockStmt
}

// EventHandler represents an event handler declaration.
// Example: on game_start { show(intro) }
type EventHandler struct {
	BaseStmt
	Event string // event type name
	Body  *BlockStmt
}

// -----------------------------------------------------------------------------
// Control flow
//
// Optional sub-trees use nil as the explicit absent marker. A nil Else is
// "no else clause in the source"; an empty *BlockStmt is "else { }". The
// two are semantically distinct and both preservable.
// -----------------------------------------------------------------------------

// IfStmt represents an if or if-else statement.
type IfStmt struct {
	BaseStmt
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt // nil if the source has no else clause
}

// ForInStmt represents iteration over the elements of an iterable.
// Example: for (item in items) { }
type ForInStmt struct {
	BaseStmt
	Var      string // loop variable name
	Iterable Expr
	Body     *BlockStmt
}

// ForCStmt represents a C-style for loop. Every clause is optional; an
// absent clause leaves its Expr nil (and its Var empty). The runtime
// meaning of an absent clause (absent condition reads as always-true) is
// the interpreter's business, not recorded here.
// Example: for (var i = 0; i < 5; i = i + 1) { }
type ForCStmt struct {
	BaseStmt
	DeclaresVar bool   // init clause introduced a new variable with `var`
	InitVar     string // "" if the init clause is absent
	InitExpr    Expr   // nil if the init clause is absent
	Cond        Expr   // nil if the condition is absent
	UpdateVar   string // "" if the update clause is absent
	UpdateExpr  Expr   // nil if the update clause is absent
	Body        *BlockStmt
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	BaseStmt
	Cond Expr
	Body *BlockStmt
}

// ReturnStmt represents a return statement.
// Value is nil for a bare return.
type ReturnStmt struct {
	BaseStmt
	Value Expr
}

// -----------------------------------------------------------------------------
// Other statements
// -----------------------------------------------------------------------------

// ExprStmt represents an expression used as a statement.
// Example: advance_quest(find_sword)
type ExprStmt struct {
	BaseStmt
	Expr Expr
}

// BlockStmt represents a braced sequence of statements.
// Statements preserve source textual order. Scoping is an interpreter
// concern and is not modeled here.
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt
}

// HostCode represents an embedded section of host-language source,
// passed through verbatim. Code has been trimmed of leading and trailing
// whitespace exactly once; its contents are never parsed or validated here.
// Example: %{ spawn_particles(12) %}
type HostCode struct {
	BaseStmt
	Code string
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Stmt = (*VarDecl)(nil)
	_ Stmt = (*PropertyStmt)(nil)
	_ Stmt = (*ActorDecl)(nil)
	_ Stmt = (*DialogueDecl)(nil)
	_ Stmt = (*QuestDecl)(nil)
	_ Stmt = (*NodeDecl)(nil)
	_ Stmt = (*FuncDecl)(nil)
	_ Stmt = (*EventHandler)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*ForInStmt)(nil)
	_ Stmt = (*ForCStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*HostCode)(nil)
)
