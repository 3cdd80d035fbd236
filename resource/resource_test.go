package resource

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davrux/sideload/tree"
)

func TestDefinition(t *testing.T) {
	require := require.New(t)

	def := New("user").
		Attributes("id", "status", "tags").
		Kind("id", "uuid").
		Kind("status", "string").
		Enum("status", "active", "inactive").
		ArrayColumns("tags").
		Example(map[string]any{"id": "x"})

	require.Equal("user", def.Name())
	require.Equal([]string{"id", "status", "tags"}, def.AttributeNames())

	kind, ok := def.ColumnKind("id")
	require.True(ok)
	require.Equal("uuid", kind)
	_, ok = def.ColumnKind("tags")
	require.False(ok)

	require.Equal([]string{"active", "inactive"}, def.EnumValues("status"))
	require.Nil(def.EnumValues("id"))
	require.True(def.IsArrayColumn("tags"))
	require.False(def.IsArrayColumn("id"))
	require.NotNil(def.ExampleValue())
}

func TestRelationships(t *testing.T) {
	require := require.New(t)

	account := New("account")
	order := New("order")
	tag := New("tag")
	user := New("user").
		BelongsTo("account", account).
		HasMany("orders", order).
		AdditionalIncluded("tags", tag)

	rels := user.Relationships()
	require.Len(rels.BelongsTo, 1)
	require.Len(rels.HasMany, 1)
	require.Len(rels.AdditionalIncluded, 1)

	// Flatten walks belongs-to, has-many, then additional included.
	flat := rels.Flatten()
	require.Len(flat, 3)
	require.Equal("account", flat[0].Name)
	require.Equal("orders", flat[1].Name)
	require.Equal("tags", flat[2].Name)
	require.Same(account, flat[0].Target)

	require.Equal([]string{"account", "orders", "tags"}, rels.Names())
}

func TestHooks(t *testing.T) {
	require := require.New(t)

	frag := tree.NewObject().Set("type", tree.String("string"))
	def := New("user").
		Attributes("status", "cells").
		ArrayType("cells", frag).
		AdditionalCreateRequestAttribute("password", frag).
		AdditionalUpdateRequestAttribute("reason", frag).
		AdditionalResponseAttribute("full_name", frag).
		AdditionalResponseRelation("audit", frag).
		AdditionalResponseIncludedFragment("audit", frag).
		ExcludedCreateRequestAttributes("cells").
		ExcludedUpdateRequestAttributes("status").
		ExcludedResponseAttributes("cells").
		ExcludedResponseRelations("audit").
		OptionalCreateRequestAttributes("status").
		OptionalUpdateRequestAttributes("status").
		Nullable("status").
		DefaultEnum("status", "active")

	hooks := def.Hooks()

	n, ok := hooks.ArrayType("cells")
	require.True(ok)
	require.Same(tree.Node(frag), n)
	_, ok = hooks.ArrayType("status")
	require.False(ok)

	n, ok = hooks.ResponseAttribute("full_name")
	require.True(ok)
	require.NotNil(n)
	_, ok = hooks.ResponseAttribute("missing")
	require.False(ok)

	require.True(hooks.IsNullable("status"))
	require.False(hooks.IsNullable("cells"))

	value, ok := hooks.DefaultEnum("status")
	require.True(ok)
	require.Equal("active", value)

	require.Equal([]Fragment{{Name: "password", Schema: frag}}, hooks.AdditionalCreateRequestAttributes)
	require.Equal([]string{"status"}, hooks.ExcludedUpdateRequestAttributes)
	require.Equal([]string{"status"}, hooks.OptionalCreateRequestAttributes)
}

func TestSettersChain(t *testing.T) {
	def := New("user")
	require.Same(t, def, def.Attributes("id").Kind("id", "uuid").Nullable("id"))
}
