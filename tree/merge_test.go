package tree

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, n Node) string {
	t.Helper()
	b, err := json.Marshal(n)
	require.NoError(t, err)
	return string(b)
}

func TestMerge(t *testing.T) {
	t.Run("array into array concatenates", func(t *testing.T) {
		dest := NewArray(String("a"), String("b"))
		got := Merge(dest, NewArray(String("c")))
		require.JSONEq(t, `["a","b","c"]`, mustJSON(t, got))
	})

	t.Run("object into array appends", func(t *testing.T) {
		dest := NewArray(NewObject().Set("type", String("user")))
		got := Merge(dest, NewObject().Set("type", String("order")))
		require.JSONEq(t, `[{"type":"user"},{"type":"order"}]`, mustJSON(t, got))
	})

	t.Run("object into object merges recursively", func(t *testing.T) {
		dest := NewObject().
			Set("type", String("object")).
			Set("properties", NewObject().Set("name", NewObject().Set("type", String("string"))))
		src := NewObject().
			Set("properties", NewObject().Set("email", NewObject().Set("type", String("string"))))
		got := Merge(dest, src)
		require.JSONEq(t, `{
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"email": {"type": "string"}
			}
		}`, mustJSON(t, got))
	})

	t.Run("scalar replaces scalar", func(t *testing.T) {
		got := Merge(String("a"), String("b"))
		require.JSONEq(t, `"b"`, mustJSON(t, got))
	})

	t.Run("scalar replaces object", func(t *testing.T) {
		dest := NewObject().Set("nullable", Bool(false))
		got := Merge(dest, NewObject().Set("nullable", Bool(true)))
		require.JSONEq(t, `{"nullable":true}`, mustJSON(t, got))
	})

	t.Run("not commutative", func(t *testing.T) {
		a := NewObject().Set("default", String("active"))
		b := NewObject().Set("default", String("inactive"))
		require.JSONEq(t, `{"default":"inactive"}`, mustJSON(t, Merge(a, b)))

		a = NewObject().Set("default", String("active"))
		b = NewObject().Set("default", String("inactive"))
		require.JSONEq(t, `{"default":"active"}`, mustJSON(t, Merge(b, a)))
	})

	t.Run("idempotent for deep subsets", func(t *testing.T) {
		dest := NewObject().
			Set("type", String("object")).
			Set("properties", NewObject().
				Set("name", NewObject().Set("type", String("string"))).
				Set("age", NewObject().Set("type", String("integer"))))
		src := NewObject().
			Set("properties", NewObject().
				Set("name", NewObject().Set("type", String("string"))))
		before := mustJSON(t, dest)
		got := Merge(dest, src)
		require.JSONEq(t, before, mustJSON(t, got))
	})
}

func TestAddAt(t *testing.T) {
	ctx := context.Background()

	t.Run("root path merges into the tree", func(t *testing.T) {
		root := NewObject().Set("data", NewObject())
		got := AddAt(ctx, root, NewObject().Set("jsonapi", NewObject().Set("version", String("1.0"))), ".")
		require.JSONEq(t, `{"data":{},"jsonapi":{"version":"1.0"}}`, mustJSON(t, got))
	})

	t.Run("merges fragment at nested path", func(t *testing.T) {
		root := NewObject().
			Set("properties", NewObject().
				Set("name", NewObject().Set("type", String("string"))))
		frag := NewObject().Set("email", NewObject().Set("type", String("string")))
		got := AddAt(ctx, root, frag, "properties")
		require.JSONEq(t, `{
			"properties": {
				"name": {"type": "string"},
				"email": {"type": "string"}
			}
		}`, mustJSON(t, got))
	})

	t.Run("pushes object into array", func(t *testing.T) {
		root := NewObject().Set("anyOf", NewArray(NewObject().Set("type", String("user"))))
		got := AddAt(ctx, root, NewObject().Set("type", String("order")), "anyOf")
		require.JSONEq(t, `{"anyOf":[{"type":"user"},{"type":"order"}]}`, mustJSON(t, got))
	})

	t.Run("non-existent path is a no-op", func(t *testing.T) {
		root := NewObject().Set("data", NewObject())
		before := mustJSON(t, root)
		got := AddAt(ctx, root, NewObject().Set("x", Bool(true)), "data.attributes.missing")
		require.JSONEq(t, before, mustJSON(t, got))
	})
}

func TestDeleteAt(t *testing.T) {
	ctx := context.Background()

	t.Run("root path is a no-op", func(t *testing.T) {
		root := NewObject().Set("data", NewObject())
		before := mustJSON(t, root)
		require.JSONEq(t, before, mustJSON(t, DeleteAt(ctx, root, ".")))
	})

	t.Run("deletes object key", func(t *testing.T) {
		root := NewObject().
			Set("properties", NewObject().
				Set("name", NewObject().Set("type", String("string"))).
				Set("secret", NewObject().Set("type", String("string"))))
		got := DeleteAt(ctx, root, "properties.secret")
		require.JSONEq(t, `{"properties":{"name":{"type":"string"}}}`, mustJSON(t, got))
	})

	t.Run("removes array element and shifts indices", func(t *testing.T) {
		root := NewObject().Set("anyOf", NewArray(String("a"), String("b"), String("c")))
		got := DeleteAt(ctx, root, "anyOf.[1]")
		require.JSONEq(t, `{"anyOf":["a","c"]}`, mustJSON(t, got))
	})

	t.Run("non-existent path is a no-op", func(t *testing.T) {
		root := NewObject().Set("data", NewObject())
		before := mustJSON(t, root)
		require.JSONEq(t, before, mustJSON(t, DeleteAt(ctx, root, "data.missing")))
	})
}

// Adding an additive fragment at a path and deleting the keys it introduced
// restores the pre-addition value.
func TestAddDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)

	root := NewObject().
		Set("data", NewObject().
			Set("attributes", NewObject().
				Set("properties", NewObject().
					Set("name", NewObject().Set("type", String("string"))))))
	before := mustJSON(t, root)

	frag := NewObject().Set("email", NewObject().Set("type", String("string")))
	AddAt(ctx, root, frag, "data.attributes.properties")
	require.NotEqual(before, mustJSON(t, root))

	DeleteAt(ctx, root, "data.attributes.properties.email")
	require.JSONEq(before, mustJSON(t, root))
}
