package types

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal    ControlFlow = iota // Normal execution
	FlowException                    // Fatal error unwinding to Run
)

// Position is a source location. The zero value means unknown.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position carries a line number
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Result represents the outcome of evaluating an expression or statement.
// It unifies normal values and errors so statement loops can propagate
// an abort without panicking.
type Result struct {
	Val   Value       // The value (if Flow == FlowNormal)
	Flow  ControlFlow // Control flow state
	Error ErrorCode   // Only set when Flow == FlowException
	Name  string      // Offending identifier for E_VARNF
	Pos   Position    // Node that raised the error
	Depth int         // Frame stack depth at the point of failure
	Cause error       // Underlying write error for E_FILE
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Err creates a Result for an error
func Err(e ErrorCode) Result {
	return Result{Flow: FlowException, Error: e}
}

// Unbound creates an E_VARNF Result naming the unresolved variable
func Unbound(name string, pos Position, depth int) Result {
	return Result{Flow: FlowException, Error: E_VARNF, Name: name, Pos: pos, Depth: depth}
}

// WriteFailed creates an E_FILE Result wrapping an output sink error
func WriteFailed(pos Position, cause error) Result {
	return Result{Flow: FlowException, Error: E_FILE, Pos: pos, Cause: cause}
}

// IsNormal returns true if this is normal execution
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsError returns true if this is an exception
func (r Result) IsError() bool {
	return r.Flow == FlowException
}

// AsError converts an exception result into a Go error.
// Returns nil for normal results.
func (r Result) AsError() error {
	if !r.IsError() {
		return nil
	}
	switch r.Error {
	case E_VARNF:
		return &UnboundVariableError{Name: r.Name, Pos: r.Pos, Depth: r.Depth}
	case E_FILE:
		return &OutputError{Pos: r.Pos, Err: r.Cause}
	}
	return &InvalidNodeError{Code: r.Error, Pos: r.Pos}
}
