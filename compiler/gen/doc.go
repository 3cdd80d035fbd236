// Package gen builds JSON-Schema documents for JSON:API payloads from
// resource definitions.
//
// The pipeline runs in three stages. Introspection reports the attribute
// metadata of a definition through the configured backend. The fragment
// builders turn that metadata into schema fragments: attributes through
// the resolution chain (manual override, type resolver, instance
// fallback, generic object), relationships in collapsed or expanded form,
// and the side-loaded included union bounded at two hops. The composers
// assemble the fragments into complete request and response envelopes and
// apply the configured key casing as a final whole-tree transform.
//
// A Builder is safe for concurrent use; the Writer generates the
// four-document set for many definitions in parallel.
package gen
