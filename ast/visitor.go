package ast

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: count all identifiers
//
//	count := 0
//	ast.Walk(program, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Ident); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Walk(s, fn)
		}

	// Statements
	case *VarDecl:
		Walk(n.Value, fn)

	case *PropertyStmt:
		Walk(n.Value, fn)

	case *ActorDecl:
		walkBlock(n.Body, fn)

	case *DialogueDecl:
		walkBlock(n.Body, fn)

	case *QuestDecl:
		walkBlock(n.Body, fn)

	case *NodeDecl:
		walkBlock(n.Body, fn)

	case *FuncDecl:
		walkBlock(n.Body, fn)

	case *EventHandler:
		walkBlock(n.Body, fn)

	case *IfStmt:
		Walk(n.Cond, fn)
		walkBlock(n.Then, fn)
		walkBlock(n.Else, fn)

	case *ForInStmt:
		Walk(n.Iterable, fn)
		walkBlock(n.Body, fn)

	case *ForCStmt:
		Walk(n.InitExpr, fn)
		Walk(n.Cond, fn)
		Walk(n.UpdateExpr, fn)
		walkBlock(n.Body, fn)

	case *WhileStmt:
		Walk(n.Cond, fn)
		walkBlock(n.Body, fn)

	case *ReturnStmt:
		Walk(n.Value, fn)

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *HostCode:
		// no children

	// Expressions
	case *Literal, *Ident:
		// no children

	case *ArrayLit:
		for _, e := range n.Elements {
			Walk(e, fn)
		}

	case *ObjectLit:
		for _, entry := range n.Entries {
			Walk(entry.Value, fn)
		}

	case *MemberExpr:
		Walk(n.Object, fn)

	case *IndexExpr:
		Walk(n.Array, fn)
		Walk(n.Index, fn)

	case *UnaryExpr:
		Walk(n.Operand, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *AssignExpr:
		Walk(n.Value, fn)

	case *CallExpr:
		Walk(n.Callee, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	}
}

// walkBlock avoids passing a typed-nil *BlockStmt to Walk for absent
// optional blocks.
func walkBlock(b *BlockStmt, fn func(Node) bool) {
	if b == nil {
		return
	}
	Walk(b, fn)
}

// Inspect traverses an AST with parent tracking.
// For each node, it calls fn(node, parent). The parent is nil for the root
// node. If fn returns false, the children of that node are not visited.
//
// Example: find identifiers used as call targets
//
//	ast.Inspect(program, func(n, parent ast.Node) bool {
//	    if id, ok := n.(*ast.Ident); ok {
//	        if call, inCall := parent.(*ast.CallExpr); inCall && call.Callee == n {
//	            fmt.Println("called:", id.Name)
//	        }
//	    }
//	    return true
//	})
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if node == nil || !fn(node, parent) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			inspect(s, n, fn)
		}

	case *VarDecl:
		inspect(n.Value, n, fn)

	case *PropertyStmt:
		inspect(n.Value, n, fn)

	case *ActorDecl:
		inspectBlock(n.Body, n, fn)

	case *DialogueDecl:
		inspectBlock(n.Body, n, fn)

	case *QuestDecl:
		inspectBlock(n.Body, n, fn)

	case *NodeDecl:
		inspectBlock(n.Body, n, fn)

	case *FuncDecl:
		inspectBlock(n.Body, n, fn)

	case *EventHandler:
		inspectBlock(n.Body, n, fn)

	case *IfStmt:
		inspect(n.Cond, n, fn)
		inspectBlock(n.Then, n, fn)
		inspectBlock(n.Else, n, fn)

	case *ForInStmt:
		inspect(n.Iterable, n, fn)
		inspectBlock(n.Body, n, fn)

	case *ForCStmt:
		inspect(n.InitExpr, n, fn)
		inspect(n.Cond, n, fn)
		inspect(n.UpdateExpr, n, fn)
		inspectBlock(n.Body, n, fn)

	case *WhileStmt:
		inspect(n.Cond, n, fn)
		inspectBlock(n.Body, n, fn)

	case *ReturnStmt:
		inspect(n.Value, n, fn)

	case *ExprStmt:
		inspect(n.Expr, n, fn)

	case *BlockStmt:
		for _, s := range n.Stmts {
			inspect(s, n, fn)
		}

	case *Literal, *Ident, *HostCode:
		// no children

	case *ArrayLit:
		for _, e := range n.Elements {
			inspect(e, n, fn)
		}

	case *ObjectLit:
		for _, entry := range n.Entries {
			inspect(entry.Value, n, fn)
		}

	case *MemberExpr:
		inspect(n.Object, n, fn)

	case *IndexExpr:
		inspect(n.Array, n, fn)
		inspect(n.Index, n, fn)

	case *UnaryExpr:
		inspect(n.Operand, n, fn)

	case *BinaryExpr:
		inspect(n.Left, n, fn)
		inspect(n.Right, n, fn)

	case *AssignExpr:
		inspect(n.Value, n, fn)

	case *CallExpr:
		inspect(n.Callee, n, fn)
		for _, arg := range n.Args {
			inspect(arg, n, fn)
		}
	}
}

func inspectBlock(b *BlockStmt, parent Node, fn func(node, parent Node) bool) {
	if b == nil {
		return
	}
	inspect(b, parent, fn)
}
