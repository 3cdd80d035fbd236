package sideload_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davrux/sideload"
	"github.com/davrux/sideload/compiler/gen"
	"github.com/davrux/sideload/compiler/load"
)

func TestGenerate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	defs, err := load.Parse([]byte(`
resources:
  - name: user
    attributes: [id, name, email, status]
    kinds:
      id: uuid
      name: string
      email: string
      status: string
    enums:
      status: [active, inactive]
    nullable: [email]
    belongs_to:
      account: account
  - name: account
    attributes: [id]
    kinds:
      id: uuid
`))
	require.NoError(err)

	dir := t.TempDir()
	policy := gen.ExpansionPolicy{Expand: true, ExpandNested: true}
	require.NoError(sideload.Generate(ctx, nil, policy, dir, defs...))

	buf, err := os.ReadFile(filepath.Join(dir, "user_response.json"))
	require.NoError(err)
	var doc map[string]any
	require.NoError(json.Unmarshal(buf, &doc))
	require.Contains(doc, "data")
	require.Contains(doc, "included")
	require.Contains(doc, "jsonapi")

	buf, err = os.ReadFile(filepath.Join(dir, "user_create_request.json"))
	require.NoError(err)
	doc = nil
	require.NoError(json.Unmarshal(buf, &doc))
	data := doc["data"].(map[string]any)
	required := data["required"].([]any)
	require.ElementsMatch([]any{"id", "name", "status"}, required)
}
