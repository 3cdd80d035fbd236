package gen

import (
	"context"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// RelationshipSchema builds the schema for a definition's direct
// relationships. Each to-one and to-many relationship is rendered in one
// of two forms: expanded, a data pointer with embedded identifiers, when
// the policy expands and the name is not excluded; collapsed, presence
// metadata only, otherwise. Response relation additions are merged in and
// exclusions removed afterwards, in that order.
func (b *Builder) RelationshipSchema(ctx context.Context, def *resource.Definition, policy ExpansionPolicy) *tree.Object {
	props := tree.NewObject()
	rels := def.Relationships()
	for _, rel := range rels.BelongsTo {
		props.Set(rel.Name, b.relationshipFragment(rel, false, policy))
	}
	for _, rel := range rels.HasMany {
		props.Set(rel.Name, b.relationshipFragment(rel, true, policy))
	}
	obj := tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", props)
	hooks := def.Hooks()
	for _, f := range hooks.AdditionalResponseRelations {
		tree.AddAt(ctx, obj, tree.NewObject().Set(f.Name, f.Schema.Clone()), "properties")
	}
	for _, name := range hooks.ExcludedResponseRelations {
		tree.DeleteAt(ctx, obj, "properties."+name)
	}
	return obj
}

func (b *Builder) relationshipFragment(rel resource.Relation, toMany bool, policy ExpansionPolicy) *tree.Object {
	if policy.Expand && !policy.Excluded(rel.Name) {
		return expandedFragment(rel.Target.Name(), toMany)
	}
	return collapsedFragment()
}

// collapsedFragment renders a relationship as presence metadata only.
func collapsedFragment() *tree.Object {
	return tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("meta", tree.NewObject().
				Set("type", tree.String("object")).
				Set("properties", tree.NewObject().
					Set("included", tree.NewObject().
						Set("type", tree.String("boolean")).
						Set("default", tree.Bool(false))))))
}

// expandedFragment renders a relationship as an identifier pointer: a
// single {id, type} object for to-one, an array of them for to-many.
func expandedFragment(targetName string, toMany bool) *tree.Object {
	pointer := tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("id", primitive("string", "")).
			Set("type", tree.NewObject().
				Set("type", tree.String("string")).
				Set("default", tree.String(targetName))))
	data := tree.Node(pointer)
	if toMany {
		data = tree.NewObject().
			Set("type", tree.String("array")).
			Set("items", pointer)
	}
	return tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("data", data))
}
