package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer provides pretty-printing for AST nodes.
// It outputs a human-readable, source-like representation suitable for
// debugging; it is not guaranteed to round-trip the original formatting.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Fprint writes a pretty-printed representation of node to w.
func Fprint(w io.Writer, node Node) error {
	return NewPrinter(w).Print(node)
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// String returns the pretty-printed form of a node.
func String(node Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			p.printStmtLine(s)
		}
	case Stmt:
		p.printStmtLine(n)
	case Expr:
		p.printExpr(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) printStmtLine(s Stmt) {
	p.writeIndent()
	p.printStmt(s)
	p.printf("\n")
}

func (p *Printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *VarDecl:
		p.printf("var %s = ", n.Name)
		p.printExpr(n.Value)

	case *PropertyStmt:
		p.printf("%s = ", n.Name)
		p.printExpr(n.Value)

	case *ActorDecl:
		p.printf("actor %s ", n.Name)
		p.printBlock(n.Body)

	case *DialogueDecl:
		p.printf("dialogue %s ", n.Name)
		p.printBlock(n.Body)

	case *QuestDecl:
		p.printf("quest %s ", n.Name)
		p.printBlock(n.Body)

	case *NodeDecl:
		p.printf("node %s ", n.Name)
		p.printBlock(n.Body)

	case *FuncDecl:
		p.printf("func %s(%s) ", n.Name, strings.Join(n.Params, ", "))
		p.printBlock(n.Body)

	case *EventHandler:
		p.printf("on %s ", n.Event)
		p.printBlock(n.Body)

	case *IfStmt:
		p.printf("if (")
		p.printExpr(n.Cond)
		p.printf(") ")
		p.printBlock(n.Then)
		if n.Else != nil {
			p.printf(" else ")
			p.printBlock(n.Else)
		}

	case *ForInStmt:
		p.printf("for (%s in ", n.Var)
		p.printExpr(n.Iterable)
		p.printf(") ")
		p.printBlock(n.Body)

	case *ForCStmt:
		p.printf("for (")
		if n.InitVar != "" {
			if n.DeclaresVar {
				p.printf("var ")
			}
			p.printf("%s = ", n.InitVar)
			p.printExpr(n.InitExpr)
		}
		p.printf("; ")
		if n.Cond != nil {
			p.printExpr(n.Cond)
		}
		p.printf("; ")
		if n.UpdateVar != "" {
			p.printf("%s = ", n.UpdateVar)
			p.printExpr(n.UpdateExpr)
		}
		p.printf(") ")
		p.printBlock(n.Body)

	case *WhileStmt:
		p.printf("while (")
		p.printExpr(n.Cond)
		p.printf(") ")
		p.printBlock(n.Body)

	case *ReturnStmt:
		p.printf("return")
		if n.Value != nil {
			p.printf(" ")
			p.printExpr(n.Value)
		}

	case *ExprStmt:
		p.printExpr(n.Expr)

	case *BlockStmt:
		p.printBlock(n)

	case *HostCode:
		p.printf("%%{ %s %%}", n.Code)

	default:
		p.printf("<%T>", s)
	}
}

func (p *Printer) printBlock(b *BlockStmt) {
	if b == nil {
		p.printf("<absent>")
		return
	}
	if len(b.Stmts) == 0 {
		p.printf("{ }")
		return
	}
	p.printf("{\n")
	p.indent++
	for _, s := range b.Stmts {
		p.printStmtLine(s)
	}
	p.indent--
	p.writeIndent()
	p.printf("}")
}

func (p *Printer) printExpr(e Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}

	switch n := e.(type) {
	case *Literal:
		p.printLiteral(n)

	case *Ident:
		p.printf("%s", n.Name)

	case *ArrayLit:
		p.printf("[")
		for i, el := range n.Elements {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(el)
		}
		p.printf("]")

	case *ObjectLit:
		p.printf("{")
		for i, entry := range n.Entries {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s: ", entry.Key)
			p.printExpr(entry.Value)
		}
		p.printf("}")

	case *MemberExpr:
		p.printExpr(n.Object)
		p.printf(".%s", n.Member)

	case *IndexExpr:
		p.printExpr(n.Array)
		p.printf("[")
		p.printExpr(n.Index)
		p.printf("]")

	case *UnaryExpr:
		p.printf("%s", n.Op)
		p.printExpr(n.Operand)

	case *BinaryExpr:
		p.printf("(")
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op)
		p.printExpr(n.Right)
		p.printf(")")

	case *AssignExpr:
		p.printf("%s = ", n.Target)
		p.printExpr(n.Value)

	case *CallExpr:
		p.printExpr(n.Callee)
		p.printf("(")
		for i, arg := range n.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(arg)
		}
		p.printf(")")

	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) printLiteral(lit *Literal) {
	switch lit.Kind {
	case LitString:
		p.printf("%s", strconv.Quote(lit.Str))
	case LitInt:
		p.printf("%d", lit.Int)
	case LitFloat:
		p.printf("%s", strconv.FormatFloat(lit.Float, 'g', -1, 64))
	case LitBool:
		p.printf("%t", lit.Bool)
	case LitNull:
		p.printf("null")
	default:
		p.printf("<literal>")
	}
}
