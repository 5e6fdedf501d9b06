package eval

import "blockscope/types"

// Observer receives scope and binding events as a program runs.
// Depth is the frame stack depth at the time of the event; for
// ScopeEnter it includes the new frame, for ScopeExit it is the depth
// the stack returned to.
type Observer interface {
	ScopeEnter(depth int)
	ScopeExit(depth int)
	Bind(name string, val types.Value, depth int)
	Resolve(name string, val types.Value, depth int)
	Unbound(name string, depth int)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) ScopeEnter(int)                   {}
func (NopObserver) ScopeExit(int)                    {}
func (NopObserver) Bind(string, types.Value, int)    {}
func (NopObserver) Resolve(string, types.Value, int) {}
func (NopObserver) Unbound(string, int)              {}

// MultiObserver fans every event out to each observer in order
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) ScopeEnter(depth int) {
	for _, o := range m {
		o.ScopeEnter(depth)
	}
}

func (m multiObserver) ScopeExit(depth int) {
	for _, o := range m {
		o.ScopeExit(depth)
	}
}

func (m multiObserver) Bind(name string, val types.Value, depth int) {
	for _, o := range m {
		o.Bind(name, val, depth)
	}
}

func (m multiObserver) Resolve(name string, val types.Value, depth int) {
	for _, o := range m {
		o.Resolve(name, val, depth)
	}
}

func (m multiObserver) Unbound(name string, depth int) {
	for _, o := range m {
		o.Unbound(name, depth)
	}
}
