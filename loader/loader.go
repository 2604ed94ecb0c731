// Package loader implements the DocumentLoader of §4.3: a URI -> Document
// cache that parses, builds, and scope-resolves on demand, and resolves
// import paths against a deterministic search order.
package loader

import (
	"path/filepath"

	"github.com/google/uuid"
	"go.lsp.dev/uri"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/config"
	"github.com/liancheng/joule/cst"
	"github.com/liancheng/joule/scope"
	"github.com/liancheng/joule/source"
)

// entry pairs a resolved Document with a snapshot stamp, a fresh UUID per
// load. The stamp is only stored: no Loader method returns it, so callers
// cannot use it to tell an older Document from its replacement.
type entry struct {
	doc        *ast.Document
	snapshotID uuid.UUID
}

// Loader owns the URI -> Document cache. Whole-document replacement on
// Load; no partial invalidation (§4.3 cache policy).
type Loader struct {
	store         source.Store
	workspaceRoot uri.URI
	searchPaths   []string // relative to workspaceRoot; default is just "vendor"

	cache map[uri.URI]*entry
}

// New builds a Loader rooted at workspaceRoot. cfg's SearchPaths
// override the default [workspace_root/vendor] middle element of the
// search order (§6).
func New(store source.Store, workspaceRoot uri.URI, cfg *config.Config) *Loader {
	sp := cfg.SearchPaths
	if len(sp) == 0 {
		sp = []string{"vendor"}
	}
	return &Loader{
		store:         store,
		workspaceRoot: workspaceRoot,
		searchPaths:   sp,
		cache:         make(map[uri.URI]*entry),
	}
}

// Load parses, builds, and scope-resolves the document at u, replacing
// any cached entry, and returns the result. overrideSrc, if non-nil,
// supplies the content directly (the didOpen/didChange path, where the
// editor's buffer is authoritative over disk). A failed read returns nil
// and leaves the cache untouched — failed loads are never cached
// (§4.3).
func (l *Loader) Load(u uri.URI, overrideSrc *string) *ast.Document {
	var content string
	if overrideSrc != nil {
		content = *overrideSrc
	} else {
		c, err := l.store.Read(u)
		if err != nil {
			return nil
		}
		content = c
	}

	root := cst.Parse(content)
	doc := ast.Build(u, root)
	scope.Resolve(doc)

	l.cache[u] = &entry{doc: doc, snapshotID: uuid.New()}
	return doc
}

// Get returns the cached Document for u, lazily loading it from the
// store on a cache miss. A failed load returns nil.
func (l *Loader) Get(u uri.URI) *ast.Document {
	if e, ok := l.cache[u]; ok {
		return e.doc
	}
	return l.Load(u, nil)
}

// Evict drops u from the cache without reloading it.
func (l *Loader) Evict(u uri.URI) {
	delete(l.cache, u)
}

// Resolve implements the §4.3 search order: the importer's directory,
// each configured search directory (resolved against the workspace
// root), then the workspace root itself. Absolute paths bypass search
// entirely. A path matching nothing resolves to (zero, false), never an
// error.
func (l *Loader) Resolve(importer uri.URI, rawPath string) (uri.URI, bool) {
	if filepath.IsAbs(rawPath) {
		u := uri.File(rawPath)
		if l.store.Exists(u) {
			return u, true
		}
		return uri.URI(""), false
	}

	dirs := make([]string, 0, len(l.searchPaths)+2)
	dirs = append(dirs, filepath.Dir(importer.Filename()))
	root := l.workspaceRoot.Filename()
	for _, sp := range l.searchPaths {
		dirs = append(dirs, filepath.Join(root, sp))
	}
	dirs = append(dirs, root)

	for _, dir := range dirs {
		u := uri.File(filepath.Join(dir, rawPath))
		if l.store.Exists(u) {
			return u, true
		}
	}
	return uri.URI(""), false
}

// Walk yields every source file under the workspace root recognized by
// §6, via the underlying store.
func (l *Loader) Walk() ([]uri.URI, error) {
	return l.store.Walk(l.workspaceRoot)
}

// WorkspaceRoot returns the root this loader resolves imports and walks
// against.
func (l *Loader) WorkspaceRoot() uri.URI { return l.workspaceRoot }
