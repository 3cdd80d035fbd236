package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/davrux/sideload/resource"
)

// SQL introspects a live database through database/sql. The table for a
// resource is derived from its name with the usual convention
// ("user" -> "users"). Supported dialects: mysql, postgres, sqlite.
type SQL struct {
	db      *sql.DB
	dialect string
}

// column holds one introspected column.
type column struct {
	name  string
	kind  string
	array bool
	// udt is the underlying type name (postgres only), used for enum
	// lookups.
	udt string
}

// AttributeNames returns the table's column names in ordinal position.
func (s *SQL) AttributeNames(ctx context.Context, def *resource.Definition) ([]string, error) {
	cols, err := s.columns(ctx, def)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names, nil
}

// ColumnKind returns the primitive kind of the column backing the
// attribute.
func (s *SQL) ColumnKind(ctx context.Context, def *resource.Definition, attr string) (string, error) {
	c, err := s.column(ctx, def, attr)
	if err != nil {
		return "", err
	}
	return c.kind, nil
}

// IsArrayColumn reports whether the column is an array column. Only
// postgres has array columns; the other dialects always report false.
func (s *SQL) IsArrayColumn(ctx context.Context, def *resource.Definition, attr string) (bool, error) {
	c, err := s.column(ctx, def, attr)
	if err != nil {
		return false, err
	}
	return c.array, nil
}

// EnumValues returns the enum keys of the column, in declaration order
// for mysql and in sort order for postgres enum types. sqlite has no enum
// columns.
func (s *SQL) EnumValues(ctx context.Context, def *resource.Definition, attr string) ([]string, error) {
	switch s.dialect {
	case BackendMySQL:
		return s.mysqlEnum(ctx, def, attr)
	case BackendPostgres:
		return s.postgresEnum(ctx, def, attr)
	}
	return nil, nil
}

func (s *SQL) column(ctx context.Context, def *resource.Definition, attr string) (column, error) {
	cols, err := s.columns(ctx, def)
	if err != nil {
		return column{}, err
	}
	for _, c := range cols {
		if c.name == attr {
			return c, nil
		}
	}
	return column{}, &AttributeError{Resource: def.Name(), Attribute: attr}
}

func (s *SQL) columns(ctx context.Context, def *resource.Definition) ([]column, error) {
	table := tableName(def)
	switch s.dialect {
	case BackendMySQL:
		return s.queryColumns(ctx,
			"SELECT COLUMN_NAME, DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION",
			table, false)
	case BackendPostgres:
		return s.queryColumns(ctx,
			"SELECT column_name, data_type, udt_name FROM information_schema.columns WHERE table_name = $1 ORDER BY ordinal_position",
			table, true)
	case BackendSQLite:
		return s.queryColumns(ctx,
			"SELECT name, type FROM pragma_table_info(?) ORDER BY cid",
			table, false)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, s.dialect)
}

func (s *SQL) queryColumns(ctx context.Context, query, table string, withUDT bool) ([]column, error) {
	rows, err := s.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("sideload: introspecting table %q: %w", table, err)
	}
	defer rows.Close()
	var cols []column
	for rows.Next() {
		var c column
		var dataType string
		if withUDT {
			if err := rows.Scan(&c.name, &dataType, &c.udt); err != nil {
				return nil, err
			}
		} else {
			if err := rows.Scan(&c.name, &dataType); err != nil {
				return nil, err
			}
		}
		c.array = dataType == "ARRAY"
		if c.array {
			c.kind = columnKind(strings.TrimPrefix(c.udt, "_"))
		} else {
			c.kind = columnKind(dataType)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (s *SQL) mysqlEnum(ctx context.Context, def *resource.Definition, attr string) ([]string, error) {
	var columnType string
	err := s.db.QueryRowContext(ctx,
		"SELECT COLUMN_TYPE FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?",
		tableName(def), attr).Scan(&columnType)
	if err == sql.ErrNoRows {
		return nil, &AttributeError{Resource: def.Name(), Attribute: attr}
	}
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(columnType, "enum(") {
		return nil, nil
	}
	body := strings.TrimSuffix(strings.TrimPrefix(columnType, "enum("), ")")
	parts := strings.Split(body, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, strings.Trim(strings.TrimSpace(p), "'"))
	}
	return values, nil
}

func (s *SQL) postgresEnum(ctx context.Context, def *resource.Definition, attr string) ([]string, error) {
	c, err := s.column(ctx, def, attr)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT e.enumlabel FROM pg_type t JOIN pg_enum e ON e.enumtypid = t.oid WHERE t.typname = $1 ORDER BY e.enumsortorder",
		c.udt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// tableName derives the table for a resource definition.
func tableName(def *resource.Definition) string {
	return inflect.Tableize(def.Name())
}

// columnKind normalizes a reported SQL data type to a primitive kind name.
func columnKind(dataType string) string {
	switch strings.ToLower(dataType) {
	case "varchar", "character varying", "char", "character", "tinytext", "mediumtext", "longtext":
		return "string"
	case "text", "clob":
		return "text"
	case "citext":
		return "citext"
	case "int", "integer", "int2", "int4", "mediumint", "smallint", "tinyint":
		return "integer"
	case "bigint", "int8":
		return "bigint"
	case "numeric", "decimal":
		return "decimal"
	case "real", "float", "float4", "float8", "double", "double precision":
		return "float"
	case "bool", "boolean":
		return "boolean"
	case "date":
		return "date"
	case "datetime", "timestamp", "timestamptz", "timestamp without time zone", "timestamp with time zone":
		return "datetime"
	case "time", "timetz", "time without time zone", "time with time zone":
		return "time"
	case "uuid":
		return "uuid"
	case "json":
		return "json"
	case "jsonb":
		return "jsonb"
	case "inet":
		return "inet"
	case "bytea", "blob", "binary", "varbinary":
		return "binary"
	case "user-defined":
		// Postgres enum types report USER-DEFINED; the builders read the
		// values through EnumValues and treat the base kind as string.
		return "string"
	}
	return strings.ToLower(dataType)
}
