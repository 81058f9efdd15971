package ast

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// LitKind discriminates the value stored in a Literal.
type LitKind uint8

const (
	LitString LitKind = iota // string literal
	LitInt                   // integer numeric literal (no decimal point)
	LitFloat                 // floating-point numeric literal
	LitBool                  // true / false
	LitNull                  // null
)

// String returns a human-readable name for the literal kind.
func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitBool:
		return "bool"
	case LitNull:
		return "null"
	default:
		return "unknown"
	}
}

// Literal represents a literal value.
// Exactly one of the value fields is meaningful, selected by Kind.
// A numeric literal's textual form selects the representation: a decimal
// point makes it LitFloat, otherwise LitInt.
type Literal struct {
	BaseExpr
	Kind  LitKind
	Str   string  // value when Kind == LitString
	Int   int64   // value when Kind == LitInt
	Float float64 // value when Kind == LitFloat
	Bool  bool    // value when Kind == LitBool
}

// ArrayLit represents an array literal.
// Example: [1, 2, "three"]
type ArrayLit struct {
	BaseExpr
	Elements []Expr // ordered elements (may be empty)
}

// ObjectEntry is one key/value pair of an ObjectLit.
type ObjectEntry struct {
	Key   string // decoded key (quoted string or bare identifier/keyword)
	Value Expr
}

// ObjectLit represents an object literal.
// Entries preserve source insertion order; key uniqueness is not enforced
// here.
// Example: {name: "Alice", "max hp": 20}
type ObjectLit struct {
	BaseExpr
	Entries []ObjectEntry
}

// -----------------------------------------------------------------------------
// References
// -----------------------------------------------------------------------------

// Ident represents an identifier reference.
// Keywords used in expression position are plain identifiers too.
type Ident struct {
	BaseExpr
	Name string
}

// MemberExpr represents a member access.
// Example: alice.mood
type MemberExpr struct {
	BaseExpr
	Object Expr
	Member string
}

// IndexExpr represents an array subscript.
// Example: items[i + 1]
type IndexExpr struct {
	BaseExpr
	Array Expr
	Index Expr
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// UnaryExpr represents a unary operation.
// Op is the operator symbol: "!" or "-".
type UnaryExpr struct {
	BaseExpr
	Op      string
	Operand Expr
}

// BinaryExpr represents a binary operation.
// Op is the resolved operator symbol ("+", "==", "&&", ...), not a token.
type BinaryExpr struct {
	BaseExpr
	Left  Expr
	Op    string
	Right Expr
}

// AssignExpr represents an assignment expression.
// The target is always a plain name; member and index targets are not part
// of the language.
// Example: x = x + 1
type AssignExpr struct {
	BaseExpr
	Target string
	Value  Expr
}

// -----------------------------------------------------------------------------
// Calls
// -----------------------------------------------------------------------------

// CallExpr represents a function call.
// Example: greet("Alice"), handlers[0](event)
type CallExpr struct {
	BaseExpr
	Callee Expr
	Args   []Expr // ordered arguments (may be empty)
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*ArrayLit)(nil)
	_ Expr = (*ObjectLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*MemberExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*CallExpr)(nil)
)
