package gen

import (
	"github.com/go-openapi/inflect"

	"github.com/davrux/sideload/introspect"
)

// Supported key casing conventions.
const (
	// CaseCamel rewrites document keys to lowerCamelCase.
	CaseCamel = "camel"
	// CaseSnake rewrites document keys to snake_case.
	CaseSnake = "snake"
	// CaseNone leaves document keys as declared.
	CaseNone = "none"
)

// Config carries everything the builders need. It is read once at
// construction and treated as immutable for the duration of any single
// generation call, so concurrent generation is safe as long as no caller
// mutates it mid-flight.
type Config struct {
	// Resolver maps primitive kind names to schema fragments.
	Resolver *TypeResolver
	// Introspector supplies attribute metadata for definitions.
	Introspector introspect.Introspector
	// KeyCase selects the casing convention applied to document keys as a
	// final whole-tree transform. The transform is idempotent and never
	// alters array ordering.
	KeyCase string
	// InstanceFallback enables inferring unresolved kinds from the
	// literal attribute values of a definition's example instance.
	InstanceFallback bool
	// Pagination controls whether collection responses carry the
	// pagination meta shape. Disabled, the meta member is omitted unless
	// the caller supplies an override.
	Pagination bool
	// Target is the output directory used by the writer.
	Target string
}

// DefaultConfig returns a config with the built-in resolver, the static
// introspection backend, camel-cased keys and pagination enabled.
func DefaultConfig() *Config {
	return &Config{
		Resolver:     NewTypeResolver(),
		Introspector: introspect.Static{},
		KeyCase:      CaseCamel,
		Pagination:   true,
	}
}

// NewConfig builds a config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// caser returns the key transform for the configured casing convention.
func (c *Config) caser() func(string) string {
	switch c.KeyCase {
	case CaseSnake:
		return inflect.Underscore
	case CaseNone, "":
		return func(s string) string { return s }
	default:
		return inflect.CamelizeDownFirst
	}
}
