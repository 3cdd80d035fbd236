// Package introspect provides the model introspection capability used by
// the schema builders: attribute names, column kinds, enum values and
// array-column detection for a resource definition.
package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/davrux/sideload/resource"
)

// Sentinel errors for introspection failures.
var (
	// ErrUnsupportedBackend is returned for an unrecognized backend name.
	// This is the one fatal introspection error: no sensible partial
	// schema can be produced without a working backend.
	ErrUnsupportedBackend = errors.New("sideload: unsupported introspection backend")
	// ErrUnknownAttribute indicates an attribute not present on the
	// resource. Builders contain it locally and degrade the affected
	// fragment.
	ErrUnknownAttribute = errors.New("sideload: unknown attribute")
)

// AttributeError represents a failed lookup of a single attribute.
type AttributeError struct {
	Resource  string
	Attribute string
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("sideload: attribute %q not found on resource %q", e.Attribute, e.Resource)
}

// Is reports whether the target matches the sentinel error for AttributeError.
func (e *AttributeError) Is(target error) bool {
	return target == ErrUnknownAttribute
}

// Supported backend names.
const (
	BackendStatic   = "static"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Introspector supplies attribute metadata for resource definitions. All
// methods are safe for concurrent use.
type Introspector interface {
	// AttributeNames returns the resource's attribute names in order.
	AttributeNames(ctx context.Context, def *resource.Definition) ([]string, error)
	// ColumnKind returns the primitive kind name of an attribute, e.g.
	// "string", "bigint" or "datetime".
	ColumnKind(ctx context.Context, def *resource.Definition, attr string) (string, error)
	// IsArrayColumn reports whether the attribute is backed by an array
	// column.
	IsArrayColumn(ctx context.Context, def *resource.Definition, attr string) (bool, error)
	// EnumValues returns the enum keys of an attribute in declaration
	// order, or nil when the attribute is not enumerated.
	EnumValues(ctx context.Context, def *resource.Definition, attr string) ([]string, error)
}

// New returns the introspector for the given backend name. The db handle
// is required for every backend except BackendStatic. An unrecognized name
// returns ErrUnsupportedBackend.
func New(backend string, db *sql.DB) (Introspector, error) {
	switch backend {
	case BackendStatic, "":
		return Static{}, nil
	case BackendMySQL, BackendPostgres, BackendSQLite:
		if db == nil {
			return nil, fmt.Errorf("%w: backend %q requires a database handle", ErrUnsupportedBackend, backend)
		}
		return &SQL{db: db, dialect: backend}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
}
