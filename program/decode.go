package program

import (
	"blockscope/ast"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Statement keys
const (
	keyAssign = "assign"
	keyValue  = "value"
	keyPrint  = "print"
	keyBlock  = "block"
	keyVar    = "var"
)

// DecodeError reports a malformed program document
type DecodeError struct {
	Line   int
	Column int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return e.Msg
}

func errorAt(node *yaml.Node, format string, args ...any) error {
	return &DecodeError{Line: node.Line, Column: node.Column, Msg: fmt.Sprintf(format, args...)}
}

func posOf(node *yaml.Node) ast.Position {
	return ast.Position{Line: node.Line, Column: node.Column}
}

// Load reads and decodes a program file
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	prog, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("program: %s: %w", path, err)
	}
	return prog, nil
}

// Decode parses a YAML program document.
// The document is a sequence of statements, or a single statement mapping.
// An empty document is an empty program.
func Decode(data []byte) (*ast.Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return DecodeNode(&doc)
}

// DecodeNode builds a program from an already parsed YAML node
func DecodeNode(node *yaml.Node) (*ast.Program, error) {
	node = resolve(node)
	if node == nil || node.Kind == 0 {
		return ast.NewProgram(), nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return ast.NewProgram(), nil
		}
		return DecodeNode(node.Content[0])
	}

	switch {
	case isNull(node):
		return ast.NewProgram(), nil
	case node.Kind == yaml.MappingNode:
		stmt, err := decodeStmt(node)
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(stmt), nil
	case node.Kind == yaml.SequenceNode:
		stmts, err := decodeStmts(node)
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(stmts...), nil
	default:
		return nil, errorAt(node, "program must be a list of statements")
	}
}

// resolve follows aliases to the anchored node
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func decodeStmts(node *yaml.Node) ([]ast.Stmt, error) {
	node = resolve(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, errorAt(node, "expected a list of statements")
	}
	stmts := make([]ast.Stmt, 0, len(node.Content))
	for _, child := range node.Content {
		stmt, err := decodeStmt(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// fields collects a mapping's keys, rejecting duplicates and non-scalar keys
func fields(node *yaml.Node) (map[string]*yaml.Node, error) {
	out := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, errorAt(key, "mapping keys must be plain names")
		}
		if _, dup := out[key.Value]; dup {
			return nil, errorAt(key, "duplicate key %q", key.Value)
		}
		out[key.Value] = resolve(node.Content[i+1])
	}
	return out, nil
}

func decodeStmt(node *yaml.Node) (ast.Stmt, error) {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return nil, errorAt(node, "statement must be a mapping with one of assign, print, block")
	}
	f, err := fields(node)
	if err != nil {
		return nil, err
	}

	switch {
	case f[keyAssign] != nil:
		if err := onlyKeys(node, keyAssign, keyValue); err != nil {
			return nil, err
		}
		return decodeAssign(node, f)
	case f[keyPrint] != nil:
		if err := onlyKeys(node, keyPrint); err != nil {
			return nil, err
		}
		return decodePrint(node, f[keyPrint])
	case f[keyBlock] != nil:
		if err := onlyKeys(node, keyBlock); err != nil {
			return nil, err
		}
		body, err := decodeStmts(f[keyBlock])
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Pos: posOf(node), Body: body}, nil
	default:
		return nil, errorAt(node, "statement must be a mapping with one of assign, print, block")
	}
}

func onlyKeys(node *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		ok := false
		for _, a := range allowed {
			if key.Value == a {
				ok = true
				break
			}
		}
		if !ok {
			return errorAt(key, "unexpected key %q", key.Value)
		}
	}
	return nil
}

func decodeAssign(node *yaml.Node, f map[string]*yaml.Node) (ast.Stmt, error) {
	nameNode := f[keyAssign]
	if nameNode.Kind != yaml.ScalarNode || nameNode.Value == "" || isNull(nameNode) {
		return nil, errorAt(nameNode, "assign needs a variable name")
	}
	valueNode, ok := f[keyValue]
	if !ok {
		return nil, errorAt(node, "assign %s has no value", nameNode.Value)
	}
	value, err := decodeExpr(valueNode)
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Pos: posOf(node), Name: nameNode.Value, Value: value}, nil
}

func decodePrint(node, values *yaml.Node) (ast.Stmt, error) {
	stmt := &ast.PrintStmt{Pos: posOf(node)}
	if isNull(values) {
		return stmt, nil
	}
	// A single expression is shorthand for a one-element list.
	items := []*yaml.Node{values}
	if values.Kind == yaml.SequenceNode {
		items = values.Content
	}
	for _, item := range items {
		expr, err := decodeExpr(item)
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, expr)
	}
	return stmt, nil
}

func decodeExpr(node *yaml.Node) (ast.Expr, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!str":
			lit := ast.Str(node.Value)
			lit.Pos = posOf(node)
			return lit, nil
		case "!!int":
			var n int64
			if err := node.Decode(&n); err != nil {
				return nil, errorAt(node, "integer %s out of range", node.Value)
			}
			lit := ast.Int(n)
			lit.Pos = posOf(node)
			return lit, nil
		default:
			return nil, errorAt(node, "unsupported literal %q (%s); quote strings, use integers", node.Value, node.ShortTag())
		}
	case yaml.MappingNode:
		f, err := fields(node)
		if err != nil {
			return nil, err
		}
		nameNode, ok := f[keyVar]
		if !ok || len(f) != 1 {
			return nil, errorAt(node, "expression mapping must be {var: name}")
		}
		if nameNode.Kind != yaml.ScalarNode || nameNode.Value == "" || isNull(nameNode) {
			return nil, errorAt(nameNode, "var needs a variable name")
		}
		return &ast.IdentifierExpr{Pos: posOf(node), Name: nameNode.Value}, nil
	default:
		return nil, errorAt(node, "expected an expression")
	}
}
