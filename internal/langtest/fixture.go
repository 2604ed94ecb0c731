package langtest

import (
	"path"

	"go.lsp.dev/uri"
	"golang.org/x/tools/txtar"

	"github.com/liancheng/joule/config"
	"github.com/liancheng/joule/loader"
	"github.com/liancheng/joule/source"
)

// Fixture is an in-memory workspace rooted at a fake /ws, letting tests
// build multi-document scenarios (imports, search paths) without
// touching disk.
type Fixture struct {
	Store *source.MemStore
	Root  uri.URI
}

// NewFixture builds a Fixture from a path -> content map, each path
// relative to the fixture's workspace root.
func NewFixture(files map[string]string) *Fixture {
	store := source.NewMemStore()
	for p, content := range files {
		store.Files[string(uri.File(path.Join("/ws", p)))] = content
	}
	return &Fixture{Store: store, Root: uri.File("/ws")}
}

// NewFixtureFromTxtar builds a Fixture from a txtar archive, one file
// per archive entry, the comment (if any) discarded.
func NewFixtureFromTxtar(data string) *Fixture {
	archive := txtar.Parse([]byte(data))
	files := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		files[f.Name] = string(f.Data)
	}
	return NewFixture(files)
}

// URI resolves p (relative to the fixture root) to the URI under which
// it was stored.
func (f *Fixture) URI(p string) uri.URI {
	return uri.File(path.Join("/ws", p))
}

// Loader builds a Loader over this fixture's store, with cfg (nil means
// config.Default()).
func (f *Fixture) Loader(cfg *config.Config) *loader.Loader {
	if cfg == nil {
		cfg = config.Default()
	}
	return loader.New(f.Store, f.Root, cfg)
}
