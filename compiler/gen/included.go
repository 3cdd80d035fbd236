package gen

import (
	"context"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// IncludedSchema builds the schema for the "included" side-loaded
// resources array: the union, as anyOf members, of every relationship
// target's own {type, id, attributes, relationships?} fragment.
//
// Traversal is bounded by construction. The first hop collects the
// flattened targets of the root's belongs-to, has-many and
// additional-included relationships, skipping names in the policy's
// exclusion set. With ExpandNested, a second hop repeats the walk rooted
// at each first-hop target, merging any new targets into the same flat
// union rather than nesting schemas deeper; names excluded at a hop
// propagate downward only when the target also declares them. Deeper
// graphs require the caller to pass an explicit relationship map for that
// hop.
//
// An empty relationship graph yields an empty fragment, not an error.
func (b *Builder) IncludedSchema(ctx context.Context, def *resource.Definition, policy ExpansionPolicy) *tree.Object {
	var entries []tree.Node
	seen := make(map[string]bool)

	firstHop := def.Relationships().Flatten()
	for _, rel := range firstHop {
		if policy.Excluded(rel.Name) || seen[rel.Target.Name()] {
			continue
		}
		seen[rel.Target.Name()] = true
		entries = append(entries, b.includedEntry(ctx, rel.Target, policy.Exclude, policy.Expand))
	}

	if policy.ExpandNested {
		for _, rel := range firstHop {
			if policy.Excluded(rel.Name) {
				continue
			}
			derived := derivedExclusions(rel.Target, policy.Exclude)
			for _, nested := range rel.Target.Relationships().Flatten() {
				if contains(derived, nested.Name) || seen[nested.Target.Name()] {
					continue
				}
				seen[nested.Target.Name()] = true
				entries = append(entries, b.includedEntry(ctx, nested.Target, derived, policy.Expand))
			}
		}
	}

	hooks := def.Hooks()
	if len(entries) == 0 && len(hooks.AdditionalResponseIncluded) == 0 {
		return tree.NewObject()
	}

	union := tree.NewArray(entries...)
	inc := tree.NewObject().
		Set("type", tree.String("array")).
		Set("items", tree.NewObject().Set("anyOf", union))
	// Merging an object fragment into the anyOf array appends it as a new
	// union member; an array fragment concatenates.
	for _, f := range hooks.AdditionalResponseIncluded {
		tree.AddAt(ctx, inc, f.Schema.Clone(), "items.anyOf")
	}
	return inc
}

// includedEntry builds the union member for one related definition: its
// type and id, its attribute schema, and, when expanding, its relationship
// schema under the exclusion set derived for it. A definition with no
// relationships yields an attributes-only entry.
func (b *Builder) includedEntry(ctx context.Context, def *resource.Definition, exclude []string, expand bool) *tree.Object {
	entry := tree.NewObject().
		Set("type", tree.String("object")).
		Set("properties", tree.NewObject().
			Set("type", tree.NewObject().
				Set("type", tree.String("string")).
				Set("default", tree.String(def.Name()))).
			Set("id", primitive("string", "")).
			Set("attributes", b.AttributeSchema(ctx, def)))
	if !expand {
		return entry
	}
	rels := b.RelationshipSchema(ctx, def, ExpansionPolicy{
		Expand:  true,
		Exclude: derivedExclusions(def, exclude),
	})
	if props, ok := rels.Get("properties"); ok && props.(*tree.Object).Len() > 0 {
		if p, ok := entry.Get("properties"); ok {
			p.(*tree.Object).Set("relationships", rels)
		}
	}
	return entry
}

// derivedExclusions returns the definition's one-hop relationship names
// that already appear in the current exclusion set. Exclusions propagate
// downward only for names known to be excluded; they are never recomputed
// from cycle detection.
func derivedExclusions(def *resource.Definition, exclude []string) []string {
	var derived []string
	for _, name := range def.Relationships().Names() {
		if contains(exclude, name) {
			derived = append(derived, name)
		}
	}
	return derived
}
