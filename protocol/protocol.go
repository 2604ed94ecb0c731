// Package protocol defines the LSP-shaped types the core hands back to
// callers. The wire protocol itself (JSON-RPC framing, the exact
// go.lsp.dev/protocol request/response envelopes) is a transport concern
// that belongs to cmd/joule/cmd/serve.go; this package only carries the
// positional vocabulary (URI, Position, Range, Location) and the
// provider-facing result shapes.
package protocol

import (
	lsp "go.lsp.dev/protocol"
	lspuri "go.lsp.dev/uri"
)

// URI identifies a document. It is a thin re-export of go.lsp.dev/uri.URI so
// that file-system-backed implementations (SourceStore, DocumentLoader) can
// call URI.Filename directly without a conversion layer.
type URI = lspuri.URI

// Position is a zero-based (line, UTF-16 code unit) pair, per LSP.
type Position = lsp.Position

// Range is a half-open [Start, End) pair of Positions.
type Range = lsp.Range

// Location pairs a URI with a Range within that document.
type Location = lsp.Location

// TextEdit replaces the text within Range with NewText.
type TextEdit = lsp.TextEdit

// NewRange builds a Range from (startLine, startChar, endLine, endChar).
func NewRange(startLine, startChar, endLine, endChar uint32) Range {
	return Range{
		Start: Position{Line: startLine, Character: startChar},
		End:   Position{Line: endLine, Character: endChar},
	}
}

// RangeContains reports whether outer spatially contains inner (§4.1,
// Containment invariant): outer.Start <= inner.Start && inner.End <=
// outer.End.
func RangeContains(outer, inner Range) bool {
	return !positionLess(inner.Start, outer.Start) && !positionLess(outer.End, inner.End)
}

// PositionInRange reports whether p falls within [r.Start, r.End).
func PositionInRange(r Range, p Position) bool {
	return !positionLess(p, r.Start) && positionLess(p, r.End)
}

func positionLess(a, b Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

// MergeRanges returns the smallest Range spanning both l and r.
func MergeRanges(l, r Range) Range {
	start, end := l.Start, l.End
	if positionLess(r.Start, start) {
		start = r.Start
	}
	if positionLess(end, r.End) {
		end = r.End
	}
	return Range{Start: start, End: end}
}

// CompareLocations orders Locations by (URI, Start) for deterministic
// provider output (§4.5).
func CompareLocations(a, b Location) int {
	if a.URI != b.URI {
		if a.URI < b.URI {
			return -1
		}
		return 1
	}
	switch {
	case positionLess(a.Range.Start, b.Range.Start):
		return -1
	case positionLess(b.Range.Start, a.Range.Start):
		return 1
	default:
		return 0
	}
}
