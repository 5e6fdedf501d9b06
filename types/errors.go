package types

import "fmt"

// UnboundVariableError is raised when a variable reference cannot be found
// in any live frame. It is fatal for the run that produced it.
type UnboundVariableError struct {
	Name  string
	Pos   Position
	Depth int
}

func (e *UnboundVariableError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("line %d:%d: unbound variable %q", e.Pos.Line, e.Pos.Column, e.Name)
	}
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// Code returns E_VARNF
func (e *UnboundVariableError) Code() ErrorCode {
	return E_VARNF
}

// InvalidNodeError reports a nil or unrecognized AST node
type InvalidNodeError struct {
	Code ErrorCode
	Pos  Position
}

func (e *InvalidNodeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("line %d:%d: %s: invalid AST node", e.Pos.Line, e.Pos.Column, e.Code)
	}
	return fmt.Sprintf("%s: invalid AST node", e.Code)
}

// OutputError wraps a failed write to the output sink
type OutputError struct {
	Pos Position
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s: %v", E_FILE.Message(), e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
