package load

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	require := require.New(t)
	defs, err := Load("testdata/manifest.yaml")
	require.NoError(err)
	require.Len(defs, 3)

	user := defs[0]
	require.Equal("user", user.Name())
	require.Equal([]string{"id", "name", "email", "status", "tags"}, user.AttributeNames())

	kind, ok := user.ColumnKind("id")
	require.True(ok)
	require.Equal("uuid", kind)
	_, ok = user.ColumnKind("tags")
	require.False(ok)

	require.Equal([]string{"active", "inactive"}, user.EnumValues("status"))
	require.True(user.IsArrayColumn("tags"))

	hooks := user.Hooks()
	require.True(hooks.IsNullable("email"))
	require.Contains(hooks.OptionalUpdateRequestAttributes, "name")
	require.Contains(hooks.ExcludedResponseAttributes, "email")
	value, ok := hooks.DefaultEnum("status")
	require.True(ok)
	require.Equal("active", value)

	// Mutual references resolve to the same definition instances.
	rels := user.Relationships()
	require.Len(rels.BelongsTo, 1)
	require.Same(defs[1], rels.BelongsTo[0].Target)
	require.Len(rels.HasMany, 1)
	require.Same(defs[2], rels.HasMany[0].Target)
	require.Same(user, defs[1].Relationships().HasMany[0].Target)
	require.Same(user, defs[2].Relationships().BelongsTo[0].Target)
}

func TestParse(t *testing.T) {
	t.Run("relationship order is preserved", func(t *testing.T) {
		require := require.New(t)
		defs, err := Parse([]byte(`
resources:
  - name: a
  - name: b
  - name: c
  - name: hub
    belongs_to:
      zeta: a
      alpha: b
      mid: c
`))
		require.NoError(err)
		hub := defs[3]
		require.Equal([]string{"zeta", "alpha", "mid"}, hub.Relationships().Names())
	})

	t.Run("empty manifest", func(t *testing.T) {
		_, err := Parse([]byte("resources: []"))
		require.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("resources: [unclosed"))
		require.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("empty resource name", func(t *testing.T) {
		_, err := Parse([]byte("resources:\n  - attributes: [id]"))
		require.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("duplicate resource name", func(t *testing.T) {
		_, err := Parse([]byte("resources:\n  - name: user\n  - name: user"))
		require.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("unknown relationship target", func(t *testing.T) {
		_, err := Parse([]byte(`
resources:
  - name: user
    belongs_to:
      account: account
`))
		require.ErrorIs(t, err, ErrUnknownResource)
		require.ErrorContains(t, err, `"account"`)
	})

	t.Run("relationships must be a mapping", func(t *testing.T) {
		_, err := Parse([]byte(`
resources:
  - name: user
    belongs_to: [account]
`))
		require.ErrorIs(t, err, ErrInvalidManifest)
	})
}
