package gen

import (
	"context"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// ResponseOptions select the response envelope variant.
type ResponseOptions struct {
	// Collection renders the data member as an array of resource objects.
	Collection bool
	// Meta overrides the collection meta fragment. Ignored for single
	// responses.
	Meta tree.Node
}

// Response assembles the full response payload schema: the primary data
// object (or array of it for collections), the included fragment when the
// policy expands, the collection meta fragment, and the fixed jsonapi
// version member. The configured key casing is applied as a final
// whole-tree transform.
func (b *Builder) Response(ctx context.Context, def *resource.Definition, policy ExpansionPolicy, opts ResponseOptions) *tree.Object {
	data := tree.Node(b.dataSchema(ctx, def, policy))
	if opts.Collection {
		data = tree.NewObject().
			Set("type", tree.String("array")).
			Set("items", data)
	}
	root := tree.NewObject().Set("data", data)

	if policy.Expand {
		if inc := b.IncludedSchema(ctx, def, policy); inc.Len() > 0 {
			tree.AddAt(ctx, root, tree.NewObject().Set("included", inc), tree.Root)
		}
	}
	if opts.Collection {
		switch {
		case opts.Meta != nil:
			tree.AddAt(ctx, root, tree.NewObject().Set("meta", opts.Meta.Clone()), tree.Root)
		case b.cfg.Pagination:
			tree.AddAt(ctx, root, tree.NewObject().Set("meta", paginationMeta()), tree.Root)
		}
	}
	tree.AddAt(ctx, root, tree.NewObject().Set("jsonapi", jsonapiFragment()), tree.Root)

	return tree.TransformKeys(root, b.cfg.caser()).(*tree.Object)
}

// dataSchema builds the primary resource object schema: type, id,
// attributes, and relationships when the definition has any.
func (b *Builder) dataSchema(ctx context.Context, def *resource.Definition, policy ExpansionPolicy) *tree.Object {
	props := tree.NewObject().
		Set("type", tree.NewObject().
			Set("type", tree.String("string")).
			Set("default", tree.String(def.Name()))).
		Set("id", primitive("string", "")).
		Set("attributes", b.AttributeSchema(ctx, def))
	rels := b.RelationshipSchema(ctx, def, policy)
	if p, ok := rels.Get("properties"); ok && p.(*tree.Object).Len() > 0 {
		props.Set("relationships", rels)
	}
	return tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", props)
}

// paginationMeta is the default meta shape for collection responses.
func paginationMeta() *tree.Object {
	page := tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("current_page", primitive("integer", "")).
			Set("per_page", primitive("integer", "")).
			Set("total_pages", primitive("integer", "")).
			Set("total_count", primitive("integer", "")))
	return tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("pagination", page))
}

// jsonapiFragment is the fixed version member carried by every response.
func jsonapiFragment() *tree.Object {
	return tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("version", tree.NewObject().
				Set("type", tree.String("string")).
				Set("default", tree.String("1.0"))))
}
