package ast

// binding is a single name/value entry in a frame
type binding struct {
	name  string
	value *Value
}

// Env is one frame of the lexical environment chain. Frames only grow;
// nothing is ever removed.
type Env struct {
	vars   []binding
	parent *Env
}

// NewEnv creates an empty frame whose lookups fall back to parent.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent}
}

// Parent returns the enclosing frame, nil for the global frame.
func (e *Env) Parent() *Env {
	return e.parent
}

// Define binds name in this frame. A later Define of the same name wins.
func (e *Env) Define(name string, v *Value) {
	e.vars = append(e.vars, binding{name: name, value: v})
}

// Lookup searches this frame and then its ancestors, innermost first.
func (e *Env) Lookup(name string) (*Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		for i := len(cur.vars) - 1; i >= 0; i-- {
			if cur.vars[i].name == name {
				return cur.vars[i].value, true
			}
		}
	}
	return nil, false
}

// Names returns the names bound directly in this frame in definition order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for _, b := range e.vars {
		names = append(names, b.name)
	}
	return names
}
