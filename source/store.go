// Package source abstracts the filesystem behind three operations, Read,
// Walk, and Exists, so the loader never talks to os directly and tests
// can substitute an in-memory store.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"
)

// recognizedSuffixes are the file types walk() yields (§6).
var recognizedSuffixes = []string{".jsonnet", ".libsonnet", ".jsonnet.TEMPLATE"}

// Store reads file content by URI and enumerates a workspace tree. The
// production implementation (FSStore) wraps the local filesystem; tests
// use an in-memory MemStore.
type Store interface {
	Read(u uri.URI) (string, error)
	Walk(root uri.URI) ([]uri.URI, error)
	Exists(u uri.URI) bool
}

// FSStore is the default Store, backed by the local filesystem.
type FSStore struct{}

func (FSStore) Read(u uri.URI) (string, error) {
	b, err := os.ReadFile(u.Filename())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (FSStore) Exists(u uri.URI) bool {
	info, err := os.Stat(u.Filename())
	return err == nil && !info.IsDir()
}

// Walk yields every regular file under root whose name ends in one of
// recognizedSuffixes, skipping any directory literally named ".git"
// (§4.3).
func (FSStore) Walk(root uri.URI) ([]uri.URI, error) {
	base := root.Filename()
	var out []uri.URI
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if hasRecognizedSuffix(d.Name()) {
			out = append(out, uri.File(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func hasRecognizedSuffix(name string) bool {
	for _, suf := range recognizedSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// MemStore is an in-memory Store for tests: a flat map from URI string to
// content. Walk returns every file under root by prefix match.
type MemStore struct {
	Files map[string]string
}

func NewMemStore() *MemStore { return &MemStore{Files: map[string]string{}} }

func (m *MemStore) Read(u uri.URI) (string, error) {
	content, ok := m.Files[string(u)]
	if !ok {
		return "", os.ErrNotExist
	}
	return content, nil
}

func (m *MemStore) Exists(u uri.URI) bool {
	_, ok := m.Files[string(u)]
	return ok
}

func (m *MemStore) Walk(root uri.URI) ([]uri.URI, error) {
	var out []uri.URI
	prefix := string(root)
	for k := range m.Files {
		if strings.HasPrefix(k, prefix) && hasRecognizedSuffix(k) {
			out = append(out, uri.New(k))
		}
	}
	return out, nil
}
