// Package workspace wires a DocumentLoader and the query providers into
// the single façade (§4.7) the transport layer (cmd/joule/cmd/serve.go)
// talks to, so that surface is a thin adapter over request/response
// shapes and nothing more.
package workspace

import (
	"go.lsp.dev/uri"

	"github.com/liancheng/joule/config"
	"github.com/liancheng/joule/loader"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
	"github.com/liancheng/joule/source"
)

// Service owns one workspace's Loader and every provider over it.
type Service struct {
	loader *loader.Loader

	def       *provider.DefinitionProvider
	refs      *provider.ReferencesProvider
	symbols   *provider.DocumentSymbolProvider
	highlight *provider.DocumentHighlightProvider
	inlay     *provider.InlayHintProvider
	folding   *provider.FoldingRangeProvider
	rename    *provider.RenameProvider
}

// New builds a Service rooted at workspaceRoot, reading its optional
// .joule.yaml through cfg.
func New(store source.Store, workspaceRoot uri.URI, cfg *config.Config) *Service {
	l := loader.New(store, workspaceRoot, cfg)
	return &Service{
		loader:    l,
		def:       provider.NewDefinitionProvider(l),
		refs:      provider.NewReferencesProvider(l, store),
		symbols:   provider.NewDocumentSymbolProvider(),
		highlight: provider.NewDocumentHighlightProvider(),
		inlay:     provider.NewInlayHintProvider(),
		folding:   provider.NewFoldingRangeProvider(),
		rename:    provider.NewRenameProvider(),
	}
}

func (s *Service) WorkspaceRoot() uri.URI { return s.loader.WorkspaceRoot() }

// DidOpen seeds the loader's cache with the editor's buffer content,
// authoritative over whatever is on disk until DidClose.
func (s *Service) DidOpen(u uri.URI, text string) {
	s.loader.Load(u, &text)
}

// DidChange replaces the cached Document wholesale (§4.3 cache policy
// has no incremental update).
func (s *Service) DidChange(u uri.URI, text string) {
	s.loader.Load(u, &text)
}

// DidClose drops the editor's buffer override and reloads from disk, so
// a later query sees whatever is actually saved there.
func (s *Service) DidClose(u uri.URI) {
	s.loader.Load(u, nil)
}

func (s *Service) Definition(u uri.URI, pos protocol.Position) []protocol.Location {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil
	}
	return s.def.Serve(doc, pos)
}

func (s *Service) References(u uri.URI, pos protocol.Position, includeDeclaration bool) []protocol.Location {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil
	}
	return s.refs.Serve(doc, pos, includeDeclaration)
}

func (s *Service) DocumentSymbol(u uri.URI) []protocol.DocumentSymbol {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil
	}
	return s.symbols.Serve(doc)
}

func (s *Service) DocumentHighlight(u uri.URI, pos protocol.Position) []protocol.Highlight {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil
	}
	return s.highlight.Serve(doc, pos)
}

func (s *Service) InlayHint(u uri.URI) []protocol.InlayHint {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil
	}
	return s.inlay.Serve(doc)
}

func (s *Service) FoldingRange(u uri.URI) []protocol.FoldingRange {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil
	}
	return s.folding.Serve(doc)
}

func (s *Service) PrepareRename(u uri.URI, pos protocol.Position) (*protocol.PrepareRenameResult, bool) {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil, false
	}
	return s.rename.PrepareRename(doc, pos)
}

func (s *Service) Rename(u uri.URI, pos protocol.Position, newName string) (*protocol.WorkspaceEdit, bool) {
	doc := s.loader.Get(u)
	if doc == nil {
		return nil, false
	}
	return s.rename.Rename(doc, pos, newName)
}
