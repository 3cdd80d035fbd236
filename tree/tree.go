// Package tree provides the schema document tree: insertion-ordered objects,
// arrays and scalar values, plus the path addressing and merge operations the
// schema builders are composed from.
package tree

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is a value in a schema tree. A node is exactly one of *Object,
// *Array or *Scalar.
type Node interface {
	// Clone returns a deep copy of the node.
	Clone() Node

	node()
}

// Object is an insertion-ordered collection of named child nodes.
// Property keys are unique; insertion order is preserved because it
// determines document read order.
type Object struct {
	props *orderedmap.OrderedMap[string, Node]
}

// NewObject returns an empty object node.
func NewObject() *Object {
	return &Object{props: orderedmap.New[string, Node]()}
}

// Set sets the child node for the given key, replacing any existing value.
// It returns the object to allow chaining.
func (o *Object) Set(key string, n Node) *Object {
	o.props.Set(key, n)
	return o
}

// Get returns the child node for the given key.
func (o *Object) Get(key string) (Node, bool) {
	return o.props.Get(key)
}

// Delete removes the given key. It reports whether the key was present.
func (o *Object) Delete(key string) bool {
	_, ok := o.props.Delete(key)
	return ok
}

// Len returns the number of properties.
func (o *Object) Len() int {
	return o.props.Len()
}

// Keys returns the property keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.props.Len())
	for pair := o.props.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() Node {
	c := NewObject()
	for pair := o.props.Oldest(); pair != nil; pair = pair.Next() {
		c.Set(pair.Key, pair.Value.Clone())
	}
	return c
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := o.props.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (*Object) node() {}

// Array is an ordered list of child nodes.
type Array struct {
	elems []Node
}

// NewArray returns an array node holding the given elements.
func NewArray(elems ...Node) *Array {
	return &Array{elems: elems}
}

// Append appends elements to the array and returns it to allow chaining.
func (a *Array) Append(elems ...Node) *Array {
	a.elems = append(a.elems, elems...)
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.elems)
}

// At returns the element at index i, or nil if i is out of range.
func (a *Array) At(i int) Node {
	if i < 0 || i >= len(a.elems) {
		return nil
	}
	return a.elems[i]
}

// RemoveAt removes the element at index i, shifting subsequent elements.
// Out-of-range indices are ignored.
func (a *Array) RemoveAt(i int) {
	if i < 0 || i >= len(a.elems) {
		return
	}
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() Node {
	elems := make([]Node, len(a.elems))
	for i, e := range a.elems {
		elems[i] = e.Clone()
	}
	return &Array{elems: elems}
}

// MarshalJSON encodes the array elements in order.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.elems)
}

func (*Array) node() {}

// Scalar is a leaf value: a string, number, boolean or null.
type Scalar struct {
	val any
}

// Val returns a scalar node wrapping the given value.
func Val(v any) *Scalar {
	return &Scalar{val: v}
}

// String returns a string scalar.
func String(s string) *Scalar {
	return &Scalar{val: s}
}

// Bool returns a boolean scalar.
func Bool(b bool) *Scalar {
	return &Scalar{val: b}
}

// Int returns an integer scalar.
func Int(i int) *Scalar {
	return &Scalar{val: i}
}

// Value returns the wrapped value.
func (s *Scalar) Value() any {
	return s.val
}

// Clone returns a copy of the scalar.
func (s *Scalar) Clone() Node {
	return &Scalar{val: s.val}
}

// MarshalJSON encodes the wrapped value.
func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.val)
}

func (*Scalar) node() {}

// TransformKeys rewrites every object key in the tree using fn, in place,
// and returns the tree. Array ordering and scalar values are untouched.
// The transform is applied depth-first, so fn sees original keys only once
// per key, which keeps idempotent casing functions idempotent over the
// whole tree.
func TransformKeys(n Node, fn func(string) string) Node {
	switch t := n.(type) {
	case *Object:
		props := orderedmap.New[string, Node]()
		for pair := t.props.Oldest(); pair != nil; pair = pair.Next() {
			props.Set(fn(pair.Key), TransformKeys(pair.Value, fn))
		}
		t.props = props
	case *Array:
		for i, e := range t.elems {
			t.elems[i] = TransformKeys(e, fn)
		}
	}
	return n
}
