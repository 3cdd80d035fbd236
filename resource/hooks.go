package resource

import (
	"github.com/davrux/sideload/tree"
)

// Fragment is a named partial schema merged into a larger tree.
type Fragment struct {
	Name   string
	Schema tree.Node
}

// Hooks is the fixed override surface consulted by the schema builders.
// Builders depend only on this record, never on a concrete definition
// type. Every field defaults to an empty list or map.
type Hooks struct {
	ArrayTypeOverrides map[string]tree.Node

	AdditionalCreateRequestAttributes []Fragment
	AdditionalUpdateRequestAttributes []Fragment
	AdditionalResponseAttributes      []Fragment
	AdditionalResponseRelations       []Fragment
	AdditionalResponseIncluded        []Fragment

	ExcludedCreateRequestAttributes []string
	ExcludedUpdateRequestAttributes []string
	ExcludedResponseAttributes      []string
	ExcludedResponseRelations       []string

	OptionalCreateRequestAttributes []string
	OptionalUpdateRequestAttributes []string

	NullableAttributes []string

	DefaultEnumValues map[string]string
}

// ArrayType returns the manual schema override for an attribute.
func (h *Hooks) ArrayType(attr string) (tree.Node, bool) {
	n, ok := h.ArrayTypeOverrides[attr]
	return n, ok
}

// ResponseAttribute returns the additional response fragment declared for
// the given attribute name, if any.
func (h *Hooks) ResponseAttribute(name string) (tree.Node, bool) {
	for _, f := range h.AdditionalResponseAttributes {
		if f.Name == name {
			return f.Schema, true
		}
	}
	return nil, false
}

// IsNullable reports whether the attribute is declared nullable.
func (h *Hooks) IsNullable(attr string) bool {
	for _, n := range h.NullableAttributes {
		if n == attr {
			return true
		}
	}
	return false
}

// DefaultEnum returns the default value override for an enum attribute.
func (h *Hooks) DefaultEnum(attr string) (string, bool) {
	v, ok := h.DefaultEnumValues[attr]
	return v, ok
}
