// Package ast defines the Jsonnet abstract syntax tree: a closed tagged
// variant of expression and helper-record types, each carrying a source
// Location and a back-pointer to its parent (wired once, during
// construction, and never mutated afterward).
package ast

import "github.com/liancheng/joule/protocol"

// Location pins a node to a line/character range within one document.
type Location struct {
	URI   protocol.URI
	Range protocol.Range
}

// RangeContains reports whether outer spatially contains inner. It is the
// AST-level counterpart of the containment invariant every parent/child
// pair in the tree must satisfy.
func RangeContains(outer, inner protocol.Range) bool {
	return protocol.RangeContains(outer, inner)
}

// MergeRanges returns the smallest range spanning both l and r. Both must
// belong to the same document; callers that merge ranges across documents
// have a bug.
func MergeRanges(l, r protocol.Range) protocol.Range {
	return protocol.MergeRanges(l, r)
}
