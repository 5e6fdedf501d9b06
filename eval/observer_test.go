package eval

import (
	"blockscope/ast"
	"slices"
	"testing"
)

func TestMultiObserver(t *testing.T) {
	a, b := newRecorder(), newRecorder()
	prog := ast.NewProgram(
		ast.Assign("x", ast.Int(1)),
		ast.Block(ast.Print(ast.Var("x"))),
		ast.Print(ast.Var("missing")),
	)
	if _, _, err := run(t, prog, WithObserver(MultiObserver(a, b))); err == nil {
		t.Fatal("expected unbound error")
	}

	for _, rec := range []*recorder{a, b} {
		if !slices.Equal(rec.enters, []int{1, 2}) {
			t.Errorf("enters = %v", rec.enters)
		}
		if !slices.Equal(rec.exits, []int{1, 0}) {
			t.Errorf("exits = %v", rec.exits)
		}
		if !slices.Equal(rec.bindDepths["x"], []int{1}) {
			t.Errorf("binds = %v", rec.bindDepths)
		}
		if !slices.Equal(rec.lookups, []int{2}) {
			t.Errorf("lookups = %v", rec.lookups)
		}
		if !slices.Equal(rec.unbound, []string{"missing"}) {
			t.Errorf("unbound = %v", rec.unbound)
		}
	}
}

func TestWithNilObserverKeepsDefault(t *testing.T) {
	ev := NewEvaluator(nil, WithObserver(nil))
	if err := ev.Run(ast.DemoProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
