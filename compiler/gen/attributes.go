package gen

import (
	"context"

	"github.com/chainguard-dev/clog"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// AttributeSchema builds the schema for a definition's flat attributes:
// an object schema whose properties hold one fragment per attribute, in
// declaration order, with the response additions merged in and the
// response exclusions removed afterwards. Exclusions win even for names
// that were re-added.
func (b *Builder) AttributeSchema(ctx context.Context, def *resource.Definition) *tree.Object {
	obj := tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", b.attributeProperties(ctx, def))
	hooks := def.Hooks()
	for _, f := range hooks.AdditionalResponseAttributes {
		tree.AddAt(ctx, obj, tree.NewObject().Set(f.Name, f.Schema.Clone()), "properties")
	}
	for _, name := range hooks.ExcludedResponseAttributes {
		tree.DeleteAt(ctx, obj, "properties."+name)
	}
	return obj
}

// attributeProperties builds the per-attribute fragments shared by
// response and request schemas, before any additions or exclusions.
func (b *Builder) attributeProperties(ctx context.Context, def *resource.Definition) *tree.Object {
	props := tree.NewObject()
	names, err := b.cfg.Introspector.AttributeNames(ctx, def)
	if err != nil {
		clog.FromContext(ctx).Warnf("gen: cannot list attributes of %q: %v", def.Name(), err)
		return props
	}
	for _, name := range names {
		props.Set(name, b.attributeFragment(ctx, def, name))
	}
	return props
}

// attributeFragment builds the fragment for a single attribute. Failures
// are contained here: a bad attribute degrades its own fragment and logs a
// warning, never aborting the document.
func (b *Builder) attributeFragment(ctx context.Context, def *resource.Definition, name string) tree.Node {
	hooks := def.Hooks()
	if n, ok := hooks.ArrayType(name); ok {
		return n.Clone()
	}
	if n, ok := hooks.ResponseAttribute(name); ok {
		return n.Clone()
	}

	frag := b.baseFragment(ctx, def, name)
	if hooks.IsNullable(name) {
		frag = tree.Merge(frag, tree.NewObject().Set("nullable", tree.Bool(true)))
	}
	if values, err := b.cfg.Introspector.EnumValues(ctx, def, name); err == nil && len(values) > 0 {
		keys := tree.NewArray()
		for _, v := range values {
			keys.Append(tree.String(v))
		}
		dflt := values[0]
		if override, ok := hooks.DefaultEnum(name); ok {
			dflt = override
		}
		frag = tree.Merge(frag, tree.NewObject().
			Set("enum", keys).
			Set("default", tree.String(dflt)))
	}
	return frag
}

// baseFragment resolves the attribute's primitive kind through the
// resolver chain: kind table, serialized-instance fallback, generic
// object.
func (b *Builder) baseFragment(ctx context.Context, def *resource.Definition, name string) tree.Node {
	log := clog.FromContext(ctx)
	kind, err := b.cfg.Introspector.ColumnKind(ctx, def, name)
	if err != nil {
		log.Warnf("gen: cannot introspect attribute %q on %q: %v", name, def.Name(), err)
		return tree.NewObject()
	}
	if resolved, ok := b.cfg.Resolver.Resolve(kind); ok {
		if isArray, err := b.cfg.Introspector.IsArrayColumn(ctx, def, name); err == nil && isArray {
			return tree.NewObject().
				Set("type", tree.String("array")).
				Set("items", resolved)
		}
		return resolved
	}
	if kind != "" {
		log.Warnf("gen: no schema mapping for kind %q of %s.%s", kind, def.Name(), name)
	}
	if b.cfg.InstanceFallback {
		if frag, ok := instanceFragment(def, name); ok {
			return frag
		}
	}
	return primitive("object", "")
}
