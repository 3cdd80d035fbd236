package gen

import (
	"github.com/davrux/sideload/introspect"
	"github.com/davrux/sideload/tree"
)

// Option configures document generation.
type Option func(*Config) error

// WithResolver sets the type resolver.
func WithResolver(r *TypeResolver) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Resolver", nil, "resolver cannot be nil")
		}
		c.Resolver = r
		return nil
	}
}

// WithIntrospector sets the introspection backend.
func WithIntrospector(i introspect.Introspector) Option {
	return func(c *Config) error {
		if i == nil {
			return NewConfigError("Introspector", nil, "introspector cannot be nil")
		}
		c.Introspector = i
		return nil
	}
}

// WithKeyCase sets the key casing convention.
// Supported conventions: "camel", "snake", "none".
func WithKeyCase(name string) Option {
	return func(c *Config) error {
		switch name {
		case CaseCamel, CaseSnake, CaseNone:
			c.KeyCase = name
			return nil
		}
		return NewConfigError("KeyCase", name, "unsupported casing; use camel, snake, or none")
	}
}

// WithInstanceFallback enables the serialized-instance fallback for kinds
// the resolver cannot map.
func WithInstanceFallback() Option {
	return func(c *Config) error {
		c.InstanceFallback = true
		return nil
	}
}

// WithoutPagination omits the pagination meta shape from collection
// responses.
func WithoutPagination() Option {
	return func(c *Config) error {
		c.Pagination = false
		return nil
	}
}

// WithNumericOverride replaces the resolver fragment for a kind name, for
// example mapping "decimal" to a string schema.
func WithNumericOverride(kind string, schema tree.Node) Option {
	return func(c *Config) error {
		if schema == nil {
			return NewConfigError("NumericOverride", kind, "schema cannot be nil")
		}
		if c.Resolver == nil {
			c.Resolver = NewTypeResolver()
		}
		c.Resolver.Override(kind, schema)
		return nil
	}
}

// WithTarget sets the writer's output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target cannot be empty")
		}
		c.Target = dir
		return nil
	}
}
