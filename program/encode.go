package program

import (
	"blockscope/ast"
	"blockscope/types"
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode serialises a program in the format Decode reads
func Encode(prog *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, prog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serialises a program to w
func Write(w io.Writer, prog *ast.Program) error {
	var stmts []ast.Stmt
	if prog != nil {
		stmts = prog.Stmts
	}
	root, err := encodeStmts(stmts)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("program: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("program: encoder close: %w", err)
	}
	return nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func key(name string) *yaml.Node {
	return scalar("!!str", name)
}

func encodeStmts(stmts []ast.Stmt) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(stmts) == 0 {
		seq.Style = yaml.FlowStyle
	}
	for _, stmt := range stmts {
		node, err := encodeStmt(stmt)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, node)
	}
	return seq, nil
}

func encodeStmt(stmt ast.Stmt) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if s == nil {
			break
		}
		value, err := encodeExpr(s.Value)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, key(keyAssign), scalar("!!str", s.Name), key(keyValue), value)
		return m, nil
	case *ast.PrintStmt:
		if s == nil {
			break
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, v := range s.Values {
			value, err := encodeExpr(v)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, value)
		}
		m.Content = append(m.Content, key(keyPrint), seq)
		return m, nil
	case *ast.BlockStmt:
		if s == nil {
			break
		}
		body, err := encodeStmts(s.Body)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, key(keyBlock), body)
		return m, nil
	}
	return nil, fmt.Errorf("program: cannot encode statement %T", stmt)
}

func encodeExpr(expr ast.Expr) (*yaml.Node, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		if e == nil || e.Value == nil {
			break
		}
		switch e.Value.Type() {
		case types.TYPE_STR:
			n := scalar("!!str", e.Value.String())
			n.Style = yaml.DoubleQuotedStyle
			return n, nil
		case types.TYPE_INT:
			return scalar("!!int", e.Value.String()), nil
		}
		return nil, fmt.Errorf("program: cannot encode literal %s", e.Value.Literal())
	case *ast.IdentifierExpr:
		if e == nil {
			break
		}
		return &yaml.Node{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Style:   yaml.FlowStyle,
			Content: []*yaml.Node{key(keyVar), scalar("!!str", e.Name)},
		}, nil
	}
	return nil, fmt.Errorf("program: cannot encode expression %T", expr)
}
