package runtime

import (
	"sort"
)

// Environment provides lexical scoping for compile-time values. A scope may
// also hide a name, which masks every binding of it further out; this is how
// local declarations shadow injected values.
type Environment struct {
	values map[string]Value
	hidden map[string]struct{}
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// NewEnvironmentFrom seeds a root environment with bindings.
func NewEnvironmentFrom(values map[string]Value) *Environment {
	env := NewEnvironment(nil)
	for k, v := range values {
		env.values[k] = v
	}
	return env
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	delete(e.hidden, name)
	e.values[name] = value
}

// Hide masks name in this scope and every scope it encloses.
func (e *Environment) Hide(name string) {
	if e.hidden == nil {
		e.hidden = make(map[string]struct{})
	}
	delete(e.values, name)
	e.hidden[name] = struct{}{}
}

// Hidden reports whether the nearest scope mentioning name hides it.
func (e *Environment) Hidden(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.hidden[name]; ok {
			return true
		}
		if _, ok := env.values[name]; ok {
			return false
		}
	}
	return false
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.hidden[name]; ok {
			return nil, false
		}
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns the bindings visible from this scope in sorted order.
func (e *Environment) Keys() []string {
	seen := map[string]bool{}
	var keys []string
	for env := e; env != nil; env = env.parent {
		for k := range env.hidden {
			seen[k] = true
		}
		for k := range env.values {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
