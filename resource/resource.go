// Package resource provides the declarative description of a JSON:API
// resource type: its attributes, its relationships to other resources, and
// the override hooks consulted during schema generation.
package resource

import (
	"github.com/davrux/sideload/tree"
)

// Definition describes one resource type. A definition is built once per
// type with the fluent methods below and reused across many generation
// calls; the generator never mutates it. The declared name doubles as the
// JSON:API "type" value and as the lookup key during graph traversal.
type Definition struct {
	name         string
	attributes   []string
	kinds        map[string]string
	enums        map[string][]string
	arrayColumns map[string]bool
	example      any

	belongsTo          []Relation
	hasMany            []Relation
	additionalIncluded []Relation

	hooks Hooks
}

// Relation is a named, directed edge to another resource definition.
type Relation struct {
	Name   string
	Target *Definition
}

// Relationships groups a definition's direct relationships. The directed
// graph formed by following them is not guaranteed acyclic; two resources
// may reference each other.
type Relationships struct {
	BelongsTo          []Relation
	HasMany            []Relation
	AdditionalIncluded []Relation
}

// Flatten returns the one-hop relations as a single list, in declaration
// order: belongs-to first, then has-many, then additional included.
func (r Relationships) Flatten() []Relation {
	out := make([]Relation, 0, len(r.BelongsTo)+len(r.HasMany)+len(r.AdditionalIncluded))
	out = append(out, r.BelongsTo...)
	out = append(out, r.HasMany...)
	out = append(out, r.AdditionalIncluded...)
	return out
}

// Names returns the one-hop relationship names in declaration order.
func (r Relationships) Names() []string {
	flat := r.Flatten()
	names := make([]string, len(flat))
	for i, rel := range flat {
		names[i] = rel.Name
	}
	return names
}

// New returns a definition for the resource with the given name.
func New(name string) *Definition {
	return &Definition{
		name:         name,
		kinds:        make(map[string]string),
		enums:        make(map[string][]string),
		arrayColumns: make(map[string]bool),
	}
}

// Name returns the declared resource name.
func (d *Definition) Name() string {
	return d.name
}

// Attributes appends attribute names, preserving declaration order.
func (d *Definition) Attributes(names ...string) *Definition {
	d.attributes = append(d.attributes, names...)
	return d
}

// AttributeNames returns the declared attribute names in order.
func (d *Definition) AttributeNames() []string {
	return d.attributes
}

// Kind declares the primitive kind of an attribute, e.g. "string",
// "bigint" or "datetime". Kinds feed the static introspection backend.
func (d *Definition) Kind(attr, kind string) *Definition {
	d.kinds[attr] = kind
	return d
}

// ColumnKind returns the declared kind of an attribute.
func (d *Definition) ColumnKind(attr string) (string, bool) {
	k, ok := d.kinds[attr]
	return k, ok
}

// Enum declares an attribute as an enumerated value with the given keys,
// in order. The first key is the default unless overridden with
// DefaultEnum.
func (d *Definition) Enum(attr string, values ...string) *Definition {
	d.enums[attr] = values
	return d
}

// EnumValues returns the declared enum keys of an attribute, or nil.
func (d *Definition) EnumValues(attr string) []string {
	return d.enums[attr]
}

// ArrayColumns declares attributes backed by array columns.
func (d *Definition) ArrayColumns(attrs ...string) *Definition {
	for _, a := range attrs {
		d.arrayColumns[a] = true
	}
	return d
}

// IsArrayColumn reports whether the attribute is backed by an array column.
func (d *Definition) IsArrayColumn(attr string) bool {
	return d.arrayColumns[attr]
}

// Example supplies an example instance of the resource, used by the
// serialized-instance fallback to infer kinds the resolver cannot.
// Maps and structs are supported.
func (d *Definition) Example(v any) *Definition {
	d.example = v
	return d
}

// ExampleValue returns the supplied example instance, or nil.
func (d *Definition) ExampleValue() any {
	return d.example
}

// BelongsTo declares a to-one relationship to the target definition.
func (d *Definition) BelongsTo(name string, target *Definition) *Definition {
	d.belongsTo = append(d.belongsTo, Relation{Name: name, Target: target})
	return d
}

// HasMany declares a to-many relationship to the target definition.
func (d *Definition) HasMany(name string, target *Definition) *Definition {
	d.hasMany = append(d.hasMany, Relation{Name: name, Target: target})
	return d
}

// AdditionalIncluded declares a definition that is side-loaded into the
// included fragment without appearing as a relationship pointer.
func (d *Definition) AdditionalIncluded(name string, target *Definition) *Definition {
	d.additionalIncluded = append(d.additionalIncluded, Relation{Name: name, Target: target})
	return d
}

// Relationships returns the definition's direct relationships.
func (d *Definition) Relationships() Relationships {
	return Relationships{
		BelongsTo:          d.belongsTo,
		HasMany:            d.hasMany,
		AdditionalIncluded: d.additionalIncluded,
	}
}

// Hooks returns the definition's override surface. The zero value of every
// hook is an empty list or map.
func (d *Definition) Hooks() *Hooks {
	return &d.hooks
}

// ArrayType supplies a verbatim schema for an attribute the automatic
// mapper cannot infer, e.g. a structured array.
func (d *Definition) ArrayType(attr string, schema tree.Node) *Definition {
	if d.hooks.ArrayTypeOverrides == nil {
		d.hooks.ArrayTypeOverrides = make(map[string]tree.Node)
	}
	d.hooks.ArrayTypeOverrides[attr] = schema
	return d
}

// AdditionalCreateRequestAttribute adds an attribute fragment to create
// request schemas.
func (d *Definition) AdditionalCreateRequestAttribute(name string, schema tree.Node) *Definition {
	d.hooks.AdditionalCreateRequestAttributes = append(d.hooks.AdditionalCreateRequestAttributes, Fragment{Name: name, Schema: schema})
	return d
}

// AdditionalUpdateRequestAttribute adds an attribute fragment to update
// request schemas.
func (d *Definition) AdditionalUpdateRequestAttribute(name string, schema tree.Node) *Definition {
	d.hooks.AdditionalUpdateRequestAttributes = append(d.hooks.AdditionalUpdateRequestAttributes, Fragment{Name: name, Schema: schema})
	return d
}

// AdditionalResponseAttribute adds an attribute fragment to response
// schemas.
func (d *Definition) AdditionalResponseAttribute(name string, schema tree.Node) *Definition {
	d.hooks.AdditionalResponseAttributes = append(d.hooks.AdditionalResponseAttributes, Fragment{Name: name, Schema: schema})
	return d
}

// AdditionalResponseRelation adds a relationship fragment to response
// schemas.
func (d *Definition) AdditionalResponseRelation(name string, schema tree.Node) *Definition {
	d.hooks.AdditionalResponseRelations = append(d.hooks.AdditionalResponseRelations, Fragment{Name: name, Schema: schema})
	return d
}

// AdditionalResponseIncludedFragment appends a fragment to the included
// item union of response schemas.
func (d *Definition) AdditionalResponseIncludedFragment(name string, schema tree.Node) *Definition {
	d.hooks.AdditionalResponseIncluded = append(d.hooks.AdditionalResponseIncluded, Fragment{Name: name, Schema: schema})
	return d
}

// ExcludedCreateRequestAttributes removes attributes from create request
// schemas.
func (d *Definition) ExcludedCreateRequestAttributes(names ...string) *Definition {
	d.hooks.ExcludedCreateRequestAttributes = append(d.hooks.ExcludedCreateRequestAttributes, names...)
	return d
}

// ExcludedUpdateRequestAttributes removes attributes from update request
// schemas.
func (d *Definition) ExcludedUpdateRequestAttributes(names ...string) *Definition {
	d.hooks.ExcludedUpdateRequestAttributes = append(d.hooks.ExcludedUpdateRequestAttributes, names...)
	return d
}

// ExcludedResponseAttributes removes attributes from response schemas.
// Exclusions are processed after additions, so an excluded name wins even
// if re-added.
func (d *Definition) ExcludedResponseAttributes(names ...string) *Definition {
	d.hooks.ExcludedResponseAttributes = append(d.hooks.ExcludedResponseAttributes, names...)
	return d
}

// ExcludedResponseRelations removes relationships from response schemas.
func (d *Definition) ExcludedResponseRelations(names ...string) *Definition {
	d.hooks.ExcludedResponseRelations = append(d.hooks.ExcludedResponseRelations, names...)
	return d
}

// OptionalCreateRequestAttributes marks attributes as not required on
// create.
func (d *Definition) OptionalCreateRequestAttributes(names ...string) *Definition {
	d.hooks.OptionalCreateRequestAttributes = append(d.hooks.OptionalCreateRequestAttributes, names...)
	return d
}

// OptionalUpdateRequestAttributes marks attributes as not required on
// update.
func (d *Definition) OptionalUpdateRequestAttributes(names ...string) *Definition {
	d.hooks.OptionalUpdateRequestAttributes = append(d.hooks.OptionalUpdateRequestAttributes, names...)
	return d
}

// Nullable marks attributes as nullable. Nullable attributes gain
// {nullable: true} in their fragments and are never required.
func (d *Definition) Nullable(names ...string) *Definition {
	d.hooks.NullableAttributes = append(d.hooks.NullableAttributes, names...)
	return d
}

// DefaultEnum overrides the default value of an enum attribute. Without an
// override the first declared key is the default.
func (d *Definition) DefaultEnum(attr, value string) *Definition {
	if d.hooks.DefaultEnumValues == nil {
		d.hooks.DefaultEnumValues = make(map[string]string)
	}
	d.hooks.DefaultEnumValues[attr] = value
	return d
}
