// Package sideload generates JSON-Schema documents describing the request
// and response payloads of a resource-oriented (JSON:API-style) HTTP API.
//
// Documents are derived from declarative resource definitions: each
// definition names a resource's attributes and its relationships to other
// definitions, forming a directed graph that may contain cycles. The
// generator walks that graph to assemble the primary data schema, the
// relationship pointers, and the "included" side-loaded resources
// fragment, with caller-controlled expansion depth and exclusion sets.
//
// The building blocks live in the subpackages:
//
//   - resource: declarative resource definitions and override hooks
//   - tree: the schema document tree with path-addressed mutation
//   - introspect: attribute metadata backends (static and SQL)
//   - compiler/gen: the schema builders, composers and parallel writer
//   - compiler/load: YAML manifest loading
//
// A minimal generation call:
//
//	user := resource.New("user").
//		Attributes("id", "name", "email").
//		Kind("id", "uuid").
//		Kind("name", "string").
//		Kind("email", "string").
//		Nullable("email")
//
//	err := sideload.Generate(ctx, nil, gen.ExpansionPolicy{Expand: true}, "schemas", user)
package sideload
