package ast

import (
	"strings"
)

// UnparseProgram converts a program back to pseudo-source lines.
// Nested blocks are indented two spaces per level.
func UnparseProgram(prog *Program) []string {
	if prog == nil || len(prog.Stmts) == 0 {
		return []string{}
	}

	var lines []string
	for _, stmt := range prog.Stmts {
		lines = append(lines, unparseStmt(stmt, 0)...)
	}
	return lines
}

// unparseStmt converts a statement to one or more source lines
func unparseStmt(stmt Stmt, indent int) []string {
	indentStr := strings.Repeat("  ", indent)

	switch s := stmt.(type) {
	case *AssignStmt:
		if s == nil {
			break
		}
		return []string{indentStr + s.Name + " = " + UnparseExpr(s.Value)}

	case *PrintStmt:
		if s == nil {
			break
		}
		args := make([]string, len(s.Values))
		for i, v := range s.Values {
			args[i] = UnparseExpr(v)
		}
		return []string{indentStr + "println(" + strings.Join(args, ", ") + ")"}

	case *BlockStmt:
		if s == nil {
			break
		}
		if len(s.Body) == 0 {
			return []string{indentStr + "{}"}
		}
		lines := []string{indentStr + "{"}
		for _, bodyStmt := range s.Body {
			lines = append(lines, unparseStmt(bodyStmt, indent+1)...)
		}
		return append(lines, indentStr+"}")
	}
	return []string{indentStr + "<invalid statement>"}
}

// UnparseExpr converts an expression to source code
func UnparseExpr(expr Expr) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		if e != nil && e.Value != nil {
			return e.Value.Literal()
		}
	case *IdentifierExpr:
		if e != nil {
			return e.Name
		}
	}
	return "<invalid expression>"
}
