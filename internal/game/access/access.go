// Package access resolves dotted property paths such as "player.name"
// against a tree of objects. Narrative templating reads game state through it.
package access

import "strings"

// Path is a parsed dotted property path.
type Path struct {
	segments []string
}

// ParsePath splits s on ".". The empty string yields a path that resolves to nothing.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path{segments: strings.Split(s, ".")}
}

// String rejoins the path.
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}

// Accessible is an object that exposes named properties and named children.
type Accessible interface {
	// LookupLocal returns the property named key on this object.
	LookupLocal(key string) (string, bool)
	// Child returns the child object named key.
	Child(key string) (Accessible, bool)
}

// Lookup resolves p against root: every segment but the last selects a child,
// and the last names a property.
//
// Postcondition: Returns ("", false) for an empty path, a missing child, or a
// missing property.
func Lookup(root Accessible, p Path) (string, bool) {
	if len(p.segments) == 0 || root == nil {
		return "", false
	}
	node := root
	for _, seg := range p.segments[:len(p.segments)-1] {
		next, ok := node.Child(seg)
		if !ok {
			return "", false
		}
		node = next
	}
	return node.LookupLocal(p.segments[len(p.segments)-1])
}

// LookupString parses s and resolves it against root.
func LookupString(root Accessible, s string) (string, bool) {
	return Lookup(root, ParsePath(s))
}

// Accessor is a registry of property getters for values of type T.
type Accessor[T any] struct {
	getters map[string]func(T) (string, bool)
}

// NewAccessor returns an empty registry.
func NewAccessor[T any]() *Accessor[T] {
	return &Accessor[T]{getters: make(map[string]func(T) (string, bool))}
}

// Register binds key to fn, replacing any earlier binding.
func (a *Accessor[T]) Register(key string, fn func(T) (string, bool)) {
	a.getters[key] = fn
}

// Lookup calls the getter bound to key.
func (a *Accessor[T]) Lookup(key string, v T) (string, bool) {
	fn, ok := a.getters[key]
	if !ok {
		return "", false
	}
	return fn(v)
}

// Scope is an Accessible root with named children and no properties of its own.
type Scope struct {
	children map[string]Accessible
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{children: make(map[string]Accessible)}
}

// Bind makes child reachable under name.
func (s *Scope) Bind(name string, child Accessible) {
	s.children[name] = child
}

// LookupLocal always misses; a Scope has no properties.
func (s *Scope) LookupLocal(string) (string, bool) { return "", false }

// Child returns the child bound under key.
func (s *Scope) Child(key string) (Accessible, bool) {
	c, ok := s.children[key]
	return c, ok
}
