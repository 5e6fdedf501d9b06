package eval

import "blockscope/types"

// Frame holds the bindings of one lexical scope.
// Bound values are evaluated results, never unevaluated expressions.
type Frame struct {
	vars map[string]types.Value
}

func newFrame() *Frame {
	return &Frame{vars: make(map[string]types.Value)}
}

// Len returns the number of bindings in the frame
func (f *Frame) Len() int {
	return len(f.vars)
}

// Environment is the ordered stack of frames.
// Index 0 is the root frame; the last element is the current frame.
type Environment struct {
	frames []*Frame
}

// NewEnvironment creates an empty frame stack
func NewEnvironment() *Environment {
	return &Environment{}
}

// Push allocates a fresh frame on top of the stack
func (e *Environment) Push() {
	e.frames = append(e.frames, newFrame())
}

// Pop discards the current frame.
// Pushes and pops are strictly paired, so popping an empty stack is a bug.
func (e *Environment) Pop() {
	if len(e.frames) == 0 {
		panic("eval: pop of empty frame stack")
	}
	e.frames[len(e.frames)-1] = nil
	e.frames = e.frames[:len(e.frames)-1]
}

// Depth returns the number of live frames
func (e *Environment) Depth() int {
	return len(e.frames)
}

// Get looks up a variable by name.
// Searches the current frame, then each enclosing frame down to the root.
// Returns (value, true) if found, (nil, false) if not found.
// A failed lookup never creates a binding.
func (e *Environment) Get(name string) (types.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if val, ok := e.frames[i].vars[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Set assigns a value to a variable in the current frame only.
// An existing binding in the same frame is overwritten; bindings of the
// same name in enclosing frames are shadowed, not modified.
func (e *Environment) Set(name string, value types.Value) {
	if len(e.frames) == 0 {
		panic("eval: bind with no live frame")
	}
	e.frames[len(e.frames)-1].vars[name] = value
}

// Current returns the top frame, or nil if the stack is empty
func (e *Environment) Current() *Frame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}
