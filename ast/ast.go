package ast

import "blockscope/types"

// Position is the source location of a node, when the builder knows it
type Position = types.Position

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// Program is an ordered sequence of top-level statements.
// The evaluator only reads it.
type Program struct {
	Stmts []Stmt
}

// LiteralExpr wraps a string or integer Value
type LiteralExpr struct {
	Pos   Position
	Value types.Value
}

func (e *LiteralExpr) Position() Position { return e.Pos }
func (e *LiteralExpr) exprNode()          {}

// IdentifierExpr represents a variable reference
type IdentifierExpr struct {
	Pos  Position
	Name string
}

func (e *IdentifierExpr) Position() Position { return e.Pos }
func (e *IdentifierExpr) exprNode()          {}

// AssignStmt binds Name in the innermost frame: name = value
type AssignStmt struct {
	Pos   Position
	Name  string
	Value Expr
}

func (s *AssignStmt) Position() Position { return s.Pos }
func (s *AssignStmt) stmtNode()          {}

// PrintStmt writes its values concatenated, then a newline
type PrintStmt struct {
	Pos    Position
	Values []Expr
}

func (s *PrintStmt) Position() Position { return s.Pos }
func (s *PrintStmt) stmtNode()          {}

// BlockStmt introduces a lexical scope: { body }
type BlockStmt struct {
	Pos  Position
	Body []Stmt
}

func (s *BlockStmt) Position() Position { return s.Pos }
func (s *BlockStmt) stmtNode()          {}
