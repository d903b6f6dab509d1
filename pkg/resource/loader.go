// Package resource loads language rule packs and assembles them into
// language resources. The core compiler consumes opened readers only;
// this package owns the policy of where the bytes come from: a
// directory tree, any fs.FS, or the embedded default pack.
package resource

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/seglabco/segtok/pkg/rules"
)

// Per-language resource names inside a pack. Each language lives in a
// directory named after its tag; the manifest sits at the pack root.
const (
	MacrosFile    = "macros.cfg"
	PunctFile     = "punct.cfg"
	CliticsFile   = "clitics.cfg"
	AbbrevFile    = "abbrev.cfg"
	TokClassFile  = "tokclass.cfg"
	HierarchyFile = "hierarchy.yml"
	NonCapFile    = "noncap.txt"
	ManifestFile  = "manifest.yml"
)

// Loader resolves a logical resource name for a language to its
// content. An empty language tag addresses the pack root.
type Loader interface {
	Open(lang, name string) (io.ReadCloser, error)
}

// DirLoader reads a resource pack from a directory tree.
type DirLoader struct {
	Root string
}

// Open opens root/lang/name (or root/name for the pack root).
func (l DirLoader) Open(lang, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.Root, lang, name))
	if err != nil {
		return nil, fmt.Errorf("%w: open resource %s/%s: %v", rules.ErrInitialization, lang, name, err)
	}
	return f, nil
}

// FSLoader reads a resource pack from any fs.FS, the embedded default
// pack included.
type FSLoader struct {
	FS fs.FS
}

// Open opens lang/name (or name for the pack root) inside the FS.
func (l FSLoader) Open(lang, name string) (io.ReadCloser, error) {
	p := name
	if lang != "" {
		p = path.Join(lang, name)
	}
	f, err := l.FS.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: open resource %s: %v", rules.ErrInitialization, p, err)
	}
	return f, nil
}
