package ast

import "blockscope/types"

// Builder helpers for constructing programs in Go code.
// None of them validate; a reference to an unknown name is only
// detected when the program runs.

// NewProgram creates a program from top-level statements
func NewProgram(stmts ...Stmt) *Program {
	return &Program{Stmts: stmts}
}

// Assign creates name = value
func Assign(name string, value Expr) *AssignStmt {
	return &AssignStmt{Name: name, Value: value}
}

// Print creates println(values...)
func Print(values ...Expr) *PrintStmt {
	return &PrintStmt{Values: values}
}

// Block creates { body... }
func Block(body ...Stmt) *BlockStmt {
	return &BlockStmt{Body: body}
}

// Str creates a string literal
func Str(s string) *LiteralExpr {
	return &LiteralExpr{Value: types.NewStr(s)}
}

// Int creates an integer literal
func Int(n int64) *LiteralExpr {
	return &LiteralExpr{Value: types.NewInt(n)}
}

// Var creates a variable reference
func Var(name string) *IdentifierExpr {
	return &IdentifierExpr{Name: name}
}

// DemoProgram returns the reference scoping program:
//
//	x = 1
//	y = 2
//	println("x = ", x)
//	println("y = ", y)
//	println("--")
//	{
//	  x = 3
//	  println("x = ", x)
//	  println("y = ", y)
//	}
//	println("--")
//	println("x = ", x)
//	println("y = ", y)
func DemoProgram() *Program {
	return NewProgram(
		Assign("x", Int(1)),
		Assign("y", Int(2)),
		Print(Str("x = "), Var("x")),
		Print(Str("y = "), Var("y")),
		Print(Str("--")),
		Block(
			Assign("x", Int(3)),
			Print(Str("x = "), Var("x")),
			Print(Str("y = "), Var("y")),
		),
		Print(Str("--")),
		Print(Str("x = "), Var("x")),
		Print(Str("y = "), Var("y")),
	)
}
