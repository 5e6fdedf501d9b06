package eval

import (
	"blockscope/ast"
	"blockscope/types"
	"bytes"
	"errors"
	"testing"
)

// recorder captures observer events for assertions
type recorder struct {
	NopObserver
	enters     []int
	exits      []int
	bindDepths map[string][]int
	lookups    []int
	unbound    []string
}

func newRecorder() *recorder {
	return &recorder{bindDepths: make(map[string][]int)}
}

func (r *recorder) ScopeEnter(depth int) { r.enters = append(r.enters, depth) }
func (r *recorder) ScopeExit(depth int)  { r.exits = append(r.exits, depth) }
func (r *recorder) Bind(name string, _ types.Value, depth int) {
	r.bindDepths[name] = append(r.bindDepths[name], depth)
}
func (r *recorder) Resolve(_ string, _ types.Value, depth int) {
	r.lookups = append(r.lookups, depth)
}
func (r *recorder) Unbound(name string, _ int) { r.unbound = append(r.unbound, name) }

func run(t *testing.T, prog *ast.Program, opts ...Option) (string, *Evaluator, error) {
	t.Helper()
	var out bytes.Buffer
	ev := NewEvaluator(&out, opts...)
	err := ev.Run(prog)
	if ev.Depth() != 0 {
		t.Fatalf("frame stack not empty after Run: depth=%d", ev.Depth())
	}
	return out.String(), ev, err
}

func TestDemoProgram(t *testing.T) {
	out, ev, err := run(t, ast.DemoProgram())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "x = 1\ny = 2\n--\nx = 3\ny = 2\n--\nx = 1\ny = 2\n"
	if out != expected {
		t.Errorf("output mismatch\n got: %q\nwant: %q", out, expected)
	}
	if ev.State() != StateCompleted {
		t.Errorf("expected state completed, got %s", ev.State())
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name     string
		prog     *ast.Program
		expected string
	}{
		{
			name:     "no values prints a bare newline",
			prog:     ast.NewProgram(ast.Print()),
			expected: "\n",
		},
		{
			name:     "values concatenate with no separator",
			prog:     ast.NewProgram(ast.Print(ast.Str("a"), ast.Int(1), ast.Str("b"), ast.Int(-2))),
			expected: "a1b-2\n",
		},
		{
			name:     "strings are written verbatim",
			prog:     ast.NewProgram(ast.Print(ast.Str(`"quoted"\t`))),
			expected: "\"quoted\"\\t\n",
		},
		{
			name: "order is preserved",
			prog: ast.NewProgram(
				ast.Assign("a", ast.Str("first")),
				ast.Assign("b", ast.Str("second")),
				ast.Print(ast.Var("b"), ast.Str(" "), ast.Var("a")),
			),
			expected: "second first\n",
		},
		{
			name: "one newline per print statement",
			prog: ast.NewProgram(
				ast.Print(ast.Str("one")),
				ast.Print(ast.Str("two")),
			),
			expected: "one\ntwo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.prog)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestEvalIsSideEffectFree(t *testing.T) {
	var out bytes.Buffer
	ev := NewEvaluator(&out)
	ev.env.Push()
	defer ev.env.Pop()

	if r := ev.Eval(ast.Int(5)); !r.IsNormal() || !r.Val.Equal(types.NewInt(5)) {
		t.Errorf("literal should evaluate to itself, got %+v", r)
	}
	if r := ev.Eval(ast.Var("nope")); r.Error != types.E_VARNF || r.Name != "nope" {
		t.Errorf("expected E_VARNF for nope, got %+v", r)
	}
	if ev.env.Current().Len() != 0 {
		t.Error("Eval must not create bindings")
	}
	if out.Len() != 0 {
		t.Error("Eval must not write output")
	}
}

func TestNilWriterDiscards(t *testing.T) {
	ev := NewEvaluator(nil)
	if err := ev.Run(ast.DemoProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNilProgram(t *testing.T) {
	out, ev, err := run(t, nil)
	if err != nil || out != "" {
		t.Errorf("nil program should be a no-op, got %q, %v", out, err)
	}
	if ev.State() != StateCompleted {
		t.Errorf("expected completed, got %s", ev.State())
	}
}

func TestEachRunIsFresh(t *testing.T) {
	var out bytes.Buffer
	ev := NewEvaluator(&out)

	if err := ev.Run(ast.NewProgram(ast.Assign("x", ast.Int(1)))); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	err := ev.Run(ast.NewProgram(ast.Print(ast.Var("x"))))
	var ub *types.UnboundVariableError
	if !errors.As(err, &ub) || ub.Name != "x" {
		t.Errorf("bindings must not leak between runs, got %v", err)
	}

	// An aborted run does not poison the next one.
	if err := ev.Run(ast.DemoProgram()); err != nil {
		t.Errorf("run after abort failed: %v", err)
	}
	if ev.State() != StateCompleted {
		t.Errorf("expected completed, got %s", ev.State())
	}
}

func TestStateStrings(t *testing.T) {
	tests := map[State]string{
		StateIdle:      "idle",
		StateRunning:   "running",
		StateAborted:   "aborted",
		StateCompleted: "completed",
		State(42):      "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
	if NewEvaluator(nil).State() != StateIdle {
		t.Error("new evaluator should be idle")
	}
}
