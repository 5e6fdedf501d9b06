package eval

import (
	"blockscope/ast"
	"blockscope/types"
	"errors"
	"io"
)

// ErrBusy is returned when Run is called on an evaluator that is
// already running a program.
var ErrBusy = errors.New("eval: evaluator is already running")

// Evaluator walks the AST against a stack of binding frames
type Evaluator struct {
	env      *Environment
	out      io.Writer
	observer Observer
	state    State
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithObserver attaches an observer for scope and binding events
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEvaluator creates an evaluator that prints to out.
// A nil writer discards output.
func NewEvaluator(out io.Writer, opts ...Option) *Evaluator {
	if out == nil {
		out = io.Discard
	}
	e := &Evaluator{
		env:      NewEnvironment(),
		out:      out,
		observer: NopObserver{},
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the lifecycle state of the most recent run
func (e *Evaluator) State() State {
	return e.state
}

// Depth returns the current frame stack depth.
// It is 0 whenever no run is in progress.
func (e *Evaluator) Depth() int {
	return e.env.Depth()
}

// Lookup resolves name against the live frames without side effects
func (e *Evaluator) Lookup(name string) (types.Value, bool) {
	return e.env.Get(name)
}

// Run executes a program: it pushes the root frame, executes each
// top-level statement in order and pops the root frame.
// Returns *types.UnboundVariableError when a reference cannot be resolved;
// output written before the failing statement is kept (a failing Print
// writes nothing, not a partial line) and every frame
// pushed during the run has been released when Run returns.
func (e *Evaluator) Run(prog *ast.Program) error {
	if e.state == StateRunning {
		return ErrBusy
	}
	e.state = StateRunning
	defer func() {
		// Reached with StateRunning only when a panic unwinds through Run.
		if e.state == StateRunning {
			e.state = StateAborted
		}
	}()

	result := e.runRoot(prog)
	if result.IsError() {
		e.state = StateAborted
		return result.AsError()
	}
	e.state = StateCompleted
	return nil
}

func (e *Evaluator) runRoot(prog *ast.Program) types.Result {
	defer e.enterScope()()
	e.observer.ScopeEnter(e.env.Depth())

	if prog == nil {
		return types.Ok(nil)
	}
	return e.EvalStatements(prog.Stmts)
}

// enterScope pushes a fresh frame and returns the function that pops it.
// Callers defer the returned function before doing anything else so the
// frame is released on every exit path, including panics.
func (e *Evaluator) enterScope() func() {
	e.env.Push()
	return e.exitScope
}

func (e *Evaluator) exitScope() {
	e.env.Pop()
	e.observer.ScopeExit(e.env.Depth())
}

// Eval evaluates an expression against the current frame stack.
// It writes no output and creates no bindings.
func (e *Evaluator) Eval(expr ast.Expr) types.Result {
	switch n := expr.(type) {
	case *ast.LiteralExpr:
		if n == nil || n.Value == nil {
			return invalidNode(n)
		}
		return types.Ok(n.Value)
	case *ast.IdentifierExpr:
		if n == nil {
			return invalidNode(nil)
		}
		return e.resolve(n.Name, n.Pos)
	default:
		return invalidNode(nil)
	}
}

// resolve searches frames from the top of the stack down to the root
// and returns the first binding of name. Returns E_VARNF if no live
// frame defines it.
func (e *Evaluator) resolve(name string, pos types.Position) types.Result {
	val, ok := e.env.Get(name)
	if !ok {
		e.observer.Unbound(name, e.env.Depth())
		return types.Unbound(name, pos, e.env.Depth())
	}
	e.observer.Resolve(name, val, e.env.Depth())
	return types.Ok(val)
}

// bind writes name into the current frame
func (e *Evaluator) bind(name string, val types.Value) {
	e.env.Set(name, val)
	e.observer.Bind(name, val, e.env.Depth())
}

// invalidNode reports a nil AST node, or a literal with no value
func invalidNode(lit *ast.LiteralExpr) types.Result {
	r := types.Err(types.E_INVARG)
	if lit != nil {
		r.Pos = lit.Pos
	}
	return r
}
