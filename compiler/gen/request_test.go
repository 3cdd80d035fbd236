package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

func TestRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("nullable attributes leave the required list", func(t *testing.T) {
		b := NewBuilder(nil)
		def := resource.New("user").
			Attributes("id", "name", "email").
			Kind("id", "uuid").
			Kind("name", "string").
			Kind("email", "string").
			Nullable("email")
		got := b.Request(ctx, def, Create)
		require.JSONEq(t, `{
			"data": {
				"type": "object",
				"properties": {
					"id": {"type": "string", "format": "uuid"},
					"name": {"type": "string"},
					"email": {"type": "string", "nullable": true}
				},
				"required": ["id", "name"]
			}
		}`, mustJSON(t, got))
	})

	t.Run("required entries are cased with the keys", func(t *testing.T) {
		b := NewBuilder(nil)
		def := resource.New("user").
			Attributes("first_name", "created_at").
			Kind("first_name", "string").
			Kind("created_at", "datetime")
		got := b.Request(ctx, def, Create)
		require.JSONEq(t, `{
			"data": {
				"type": "object",
				"properties": {
					"firstName": {"type": "string"},
					"createdAt": {"type": "string", "format": "date-time"}
				},
				"required": ["firstName", "createdAt"]
			}
		}`, mustJSON(t, got))
	})

	t.Run("optional attributes are mode specific", func(t *testing.T) {
		b := NewBuilder(nil)
		def := resource.New("user").
			Attributes("id", "name").
			Kind("id", "uuid").
			Kind("name", "string").
			OptionalUpdateRequestAttributes("name")

		create := b.Request(ctx, def, Create)
		data, _ := create.Get("data")
		req, _ := data.(*tree.Object).Get("required")
		require.Equal(t, 2, req.(*tree.Array).Len())

		update := b.Request(ctx, def, Update)
		data, _ = update.Get("data")
		req, _ = data.(*tree.Object).Get("required")
		require.Equal(t, 1, req.(*tree.Array).Len())
		require.Equal(t, "id", req.(*tree.Array).At(0).(*tree.Scalar).Value())
	})

	t.Run("additions then exclusions before required", func(t *testing.T) {
		b := NewBuilder(nil)
		def := resource.New("user").
			Attributes("id", "name", "internal_flag").
			Kind("id", "uuid").
			Kind("name", "string").
			Kind("internal_flag", "boolean").
			AdditionalCreateRequestAttribute("password", tree.NewObject().Set("type", tree.String("string"))).
			ExcludedCreateRequestAttributes("internal_flag")
		got := b.Request(ctx, def, Create)
		require.JSONEq(t, `{
			"data": {
				"type": "object",
				"properties": {
					"id": {"type": "string", "format": "uuid"},
					"name": {"type": "string"},
					"password": {"type": "string"}
				},
				"required": ["id", "name", "password"]
			}
		}`, mustJSON(t, got))
	})

	t.Run("update additions do not leak into create", func(t *testing.T) {
		b := NewBuilder(nil)
		def := resource.New("user").
			Attributes("id").
			Kind("id", "uuid").
			AdditionalUpdateRequestAttribute("reason", tree.NewObject().Set("type", tree.String("string")))
		got := b.Request(ctx, def, Create)
		data, _ := got.Get("data")
		props, _ := data.(*tree.Object).Get("properties")
		_, ok := props.(*tree.Object).Get("reason")
		require.False(t, ok)
	})

	t.Run("snake case keeps underscore keys", func(t *testing.T) {
		cfg, err := NewConfig(WithKeyCase(CaseSnake))
		require.NoError(t, err)
		b := NewBuilder(cfg)
		def := resource.New("user").
			Attributes("firstName").
			Kind("firstName", "string")
		got := b.Request(ctx, def, Create)
		require.JSONEq(t, `{
			"data": {
				"type": "object",
				"properties": {
					"first_name": {"type": "string"}
				},
				"required": ["first_name"]
			}
		}`, mustJSON(t, got))
	})
}
