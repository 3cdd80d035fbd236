package introspect

import (
	"context"

	"github.com/davrux/sideload/resource"
)

// Static reads attribute metadata from the resource definition itself:
// declared attribute names, kinds, enums and array columns. It is the
// default backend and touches no external system.
type Static struct{}

// AttributeNames returns the declared attribute names.
func (Static) AttributeNames(_ context.Context, def *resource.Definition) ([]string, error) {
	return def.AttributeNames(), nil
}

// ColumnKind returns the declared kind of the attribute. An attribute
// declared without a kind resolves to the empty kind, leaving the decision
// to the resolver fallback chain; an attribute that was never declared is
// an AttributeError.
func (Static) ColumnKind(_ context.Context, def *resource.Definition, attr string) (string, error) {
	if kind, ok := def.ColumnKind(attr); ok {
		return kind, nil
	}
	for _, name := range def.AttributeNames() {
		if name == attr {
			return "", nil
		}
	}
	return "", &AttributeError{Resource: def.Name(), Attribute: attr}
}

// IsArrayColumn reports whether the attribute was declared as an array
// column.
func (Static) IsArrayColumn(_ context.Context, def *resource.Definition, attr string) (bool, error) {
	return def.IsArrayColumn(attr), nil
}

// EnumValues returns the declared enum keys of the attribute.
func (Static) EnumValues(_ context.Context, def *resource.Definition, attr string) ([]string, error) {
	return def.EnumValues(attr), nil
}
