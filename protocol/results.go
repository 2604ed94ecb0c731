package protocol

// SymbolKind classifies a DocumentSymbol. The numeric values follow the LSP
// specification so the transport adapter in cmd/joule/cmd/serve.go can pass
// them through to go.lsp.dev/protocol.SymbolKind unchanged.
type SymbolKind int

const (
	SymbolKindVariable SymbolKind = 13
	SymbolKindFunction SymbolKind = 12
	SymbolKindField    SymbolKind = 8
)

// DocumentSymbol is one node of the nested symbol tree §4.6 describes.
type DocumentSymbol struct {
	Name           string
	Kind           SymbolKind
	Range          Range
	SelectionRange Range
	Children       []DocumentSymbol
}

// HighlightKind distinguishes a binding's write site from its read sites.
type HighlightKind int

const (
	HighlightKindRead  HighlightKind = 2
	HighlightKindWrite HighlightKind = 3
)

// Highlight is one entry of a DocumentHighlightProvider response.
type Highlight struct {
	Range Range
	Kind  HighlightKind
}

// InlayHintKind distinguishes the two hints the InlayHintProvider emits: a
// reference-count hint at a binding site (label "N refs") and a points-to
// hint at a usage site (label "-> L:C", the binding's 1-based line and
// column). Labels are plain ASCII; no up-arrow or down-arrow glyph is used.
type InlayHintKind int

const (
	InlayHintKindBinding InlayHintKind = iota
	InlayHintKindReference
)

// InlayHint is one rendered hint.
type InlayHint struct {
	Position Position
	Label    string
	Kind     InlayHintKind
}

// FoldingRangeKind is left generic. FoldingRange carries no kind: every
// fold the core emits is a plain region fold.
type FoldingRangeKind string

// FoldingRange is a foldable span, always measured in whole lines.
type FoldingRange struct {
	StartLine uint32
	EndLine   uint32
}

// WorkspaceEdit groups per-file TextEdits, keyed by URI. Rename is
// single-file only (§4.6, §9 Open Question), but the shape generalizes.
type WorkspaceEdit struct {
	Changes map[URI][]TextEdit
}

// PrepareRenameResult is the answer to prepareRename: the range that would
// be replaced, and the text to seed the rename input with.
type PrepareRenameResult struct {
	Range       Range
	Placeholder string
}
