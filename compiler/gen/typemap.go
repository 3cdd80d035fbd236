package gen

import (
	"github.com/davrux/sideload/tree"
)

// TypeResolver maps primitive kind names, as reported by introspection, to
// schema fragments. Caller-supplied overrides take precedence over the
// built-in table. The zero value resolves nothing; use NewTypeResolver.
type TypeResolver struct {
	overrides map[string]tree.Node

	// BigintAsString switches bigint kinds from an integer to a string
	// representation, for clients that cannot represent 64-bit values.
	BigintAsString bool
	// DecimalAsString switches decimal kinds from a number to a string
	// representation, preserving precision over the wire.
	DecimalAsString bool
}

// NewTypeResolver returns a resolver with the built-in kind table.
func NewTypeResolver() *TypeResolver {
	return &TypeResolver{overrides: make(map[string]tree.Node)}
}

// Override sets or replaces the fragment for a kind name. It returns the
// resolver to allow chaining.
func (r *TypeResolver) Override(kind string, schema tree.Node) *TypeResolver {
	if r.overrides == nil {
		r.overrides = make(map[string]tree.Node)
	}
	r.overrides[kind] = schema
	return r
}

// Resolve returns a fresh fragment for the kind name. It reports false for
// kinds neither overridden nor built in.
func (r *TypeResolver) Resolve(kind string) (tree.Node, bool) {
	if n, ok := r.overrides[kind]; ok {
		return n.Clone(), true
	}
	switch kind {
	case "string", "text", "citext", "inet":
		return primitive("string", ""), true
	case "integer", "smallint":
		return primitive("integer", ""), true
	case "bigint":
		if r.BigintAsString {
			return primitive("string", ""), true
		}
		return primitive("integer", ""), true
	case "float":
		return primitive("number", ""), true
	case "decimal":
		if r.DecimalAsString {
			return primitive("string", ""), true
		}
		return primitive("number", ""), true
	case "boolean":
		return primitive("boolean", ""), true
	case "date":
		return primitive("string", "date"), true
	case "datetime":
		return primitive("string", "date-time"), true
	case "time":
		return primitive("string", "time"), true
	case "uuid":
		return primitive("string", "uuid"), true
	case "binary":
		return primitive("string", "byte"), true
	case "json", "jsonb":
		return primitive("object", ""), true
	}
	return nil, false
}

// primitive builds a {type, format?} fragment.
func primitive(typ, format string) *tree.Object {
	o := tree.NewObject().Set("type", tree.String(typ))
	if format != "" {
		o.Set("format", tree.String(format))
	}
	return o
}
