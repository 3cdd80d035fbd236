package gen

import (
	"context"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// Request assembles the request payload schema for the given mode: the
// attributes fragment under data, with the mode-specific additions merged
// in and exclusions removed, and the required list derived last. The
// required set is computed only after all additions and exclusions are
// applied, since both change it: required = properties − optional(mode) −
// nullable. The configured key casing is applied as a final whole-tree
// transform; required entries are cased to match.
func (b *Builder) Request(ctx context.Context, def *resource.Definition, mode Mode) *tree.Object {
	props := b.attributeProperties(ctx, def)
	data := tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", props)

	hooks := def.Hooks()
	additions := hooks.AdditionalCreateRequestAttributes
	excluded := hooks.ExcludedCreateRequestAttributes
	optional := hooks.OptionalCreateRequestAttributes
	if mode == Update {
		additions = hooks.AdditionalUpdateRequestAttributes
		excluded = hooks.ExcludedUpdateRequestAttributes
		optional = hooks.OptionalUpdateRequestAttributes
	}
	for _, f := range additions {
		tree.AddAt(ctx, data, tree.NewObject().Set(f.Name, f.Schema.Clone()), "properties")
	}
	for _, name := range excluded {
		tree.DeleteAt(ctx, data, "properties."+name)
	}

	caser := b.cfg.caser()
	required := tree.NewArray()
	for _, key := range props.Keys() {
		if contains(optional, key) || hooks.IsNullable(key) {
			continue
		}
		required.Append(tree.String(caser(key)))
	}
	data.Set("required", required)

	root := tree.NewObject().Set("data", data)
	return tree.TransformKeys(root, caser).(*tree.Object)
}
