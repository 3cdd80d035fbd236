package sideload

import (
	"context"

	"github.com/davrux/sideload/compiler/gen"
	"github.com/davrux/sideload/resource"
)

// Generate builds the response and request documents for every definition
// and writes them under outDir. A nil config uses gen.DefaultConfig.
func Generate(ctx context.Context, cfg *gen.Config, policy gen.ExpansionPolicy, outDir string, defs ...*resource.Definition) error {
	b := gen.NewBuilder(cfg)
	return gen.NewWriter(b, outDir).Generate(ctx, defs, policy)
}
