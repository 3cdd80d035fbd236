package gen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davrux/sideload/resource"
)

func TestWriterGenerate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	account := resource.New("account").Attributes("id").Kind("id", "uuid")
	user := resource.New("user").
		Attributes("id", "name").
		Kind("id", "uuid").
		Kind("name", "string").
		BelongsTo("account", account)

	dir := t.TempDir()
	w := NewWriter(NewBuilder(nil), dir).WithWorkers(2)
	err := w.Generate(ctx, []*resource.Definition{user, account}, ExpansionPolicy{Expand: true})
	require.NoError(err)

	for _, name := range []string{
		"user_response.json",
		"user_collection_response.json",
		"user_create_request.json",
		"user_update_request.json",
		"account_response.json",
		"account_collection_response.json",
		"account_create_request.json",
		"account_update_request.json",
	} {
		buf, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(err, name)
		var doc map[string]any
		require.NoError(json.Unmarshal(buf, &doc), name)
		require.Contains(doc, "data", name)
	}

	buf, err := os.ReadFile(filepath.Join(dir, "user_response.json"))
	require.NoError(err)
	var doc map[string]any
	require.NoError(json.Unmarshal(buf, &doc))
	require.Contains(doc, "included")
	require.Contains(doc, "jsonapi")
}

func TestWriterGenerateErrors(t *testing.T) {
	ctx := context.Background()
	def := resource.New("user").Attributes("id").Kind("id", "uuid")

	t.Run("missing output directory", func(t *testing.T) {
		w := NewWriter(NewBuilder(nil), "")
		err := w.Generate(ctx, []*resource.Definition{def}, ExpansionPolicy{})
		require.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("unwritable target surfaces a write error", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
		w := NewWriter(NewBuilder(nil), dir)
		err := w.Generate(ctx, []*resource.Definition{def}, ExpansionPolicy{})
		require.ErrorIs(t, err, ErrGenerationFailed)
	})
}
