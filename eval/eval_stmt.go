package eval

import (
	"blockscope/ast"
	"blockscope/types"
	"io"
	"strings"
)

// EvalStatements evaluates a sequence of statements in the current frame.
// The first error stops the sequence and is returned unchanged.
func (e *Evaluator) EvalStatements(stmts []ast.Stmt) types.Result {
	for _, stmt := range stmts {
		result := e.EvalStmt(stmt)
		if !result.IsNormal() {
			return result
		}
	}
	return types.Ok(nil)
}

// EvalStmt evaluates a single statement
func (e *Evaluator) EvalStmt(stmt ast.Stmt) types.Result {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if s == nil {
			return invalidNode(nil)
		}
		return e.evalAssign(s)
	case *ast.PrintStmt:
		if s == nil {
			return invalidNode(nil)
		}
		return e.evalPrint(s)
	case *ast.BlockStmt:
		if s == nil {
			return invalidNode(nil)
		}
		return e.evalBlock(s)
	default:
		return invalidNode(nil)
	}
}

// evalAssign evaluates the value and binds it in the current frame
func (e *Evaluator) evalAssign(stmt *ast.AssignStmt) types.Result {
	result := e.Eval(stmt.Value)
	if !result.IsNormal() {
		return result
	}
	e.bind(stmt.Name, result.Val)
	return types.Ok(nil)
}

// evalPrint evaluates every value in order, then writes their textual
// forms with no separator and a single trailing newline.
// Nothing is written if any value fails to evaluate.
func (e *Evaluator) evalPrint(stmt *ast.PrintStmt) types.Result {
	var line strings.Builder
	for _, expr := range stmt.Values {
		result := e.Eval(expr)
		if !result.IsNormal() {
			return result
		}
		line.WriteString(result.Val.String())
	}
	line.WriteByte('\n')

	if _, err := io.WriteString(e.out, line.String()); err != nil {
		return types.WriteFailed(stmt.Pos, err)
	}
	return types.Ok(nil)
}

// evalBlock runs the body in a fresh frame.
// The frame is popped when this call returns, whether the body completed,
// failed, or panicked.
func (e *Evaluator) evalBlock(stmt *ast.BlockStmt) types.Result {
	defer e.enterScope()()
	e.observer.ScopeEnter(e.env.Depth())

	return e.EvalStatements(stmt.Body)
}
