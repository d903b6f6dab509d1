package resource

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/rules"
)

//go:embed all:resources
var embedded embed.FS

// Embedded returns a loader over the built-in resource pack.
func Embedded() Loader {
	sub, err := fs.Sub(embedded, "resources")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	return FSLoader{FS: sub}
}

// BuildResource compiles every rule file of one language into an
// immutable language resource.
func BuildResource(loader Loader, tag string) (*language.Resource, error) {
	macros, err := loadMacros(loader, tag)
	if err != nil {
		return nil, err
	}

	open := func(name string) (io.ReadCloser, error) {
		return loader.Open(tag, name)
	}

	descriptions := make(map[rules.Kind]*rules.Description, 4)
	for kind, name := range map[rules.Kind]string{
		rules.KindPunctuation:   PunctFile,
		rules.KindClitics:       CliticsFile,
		rules.KindAbbreviations: AbbrevFile,
		rules.KindTokenClasses:  TokClassFile,
	} {
		rc, err := loader.Open(tag, name)
		if err != nil {
			return nil, err
		}
		d, err := rules.Load(kind, rc, macros, open)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", tag, name, err)
		}
		descriptions[kind] = d
	}

	root, edges, err := loadHierarchy(loader, tag)
	if err != nil {
		return nil, err
	}

	nonCap, err := loadNonCapTerms(loader, tag)
	if err != nil {
		return nil, err
	}

	return language.NewResource(language.Config{
		Tag:          tag,
		Macros:       macros,
		Punct:        descriptions[rules.KindPunctuation],
		Clitics:      descriptions[rules.KindClitics],
		Abbrev:       descriptions[rules.KindAbbreviations],
		TokenClasses: descriptions[rules.KindTokenClasses],
		RootClass:    root,
		Edges:        edges,
		NonCapTerms:  nonCap,
	})
}

func loadMacros(loader Loader, tag string) (map[string]string, error) {
	rc, err := loader.Open(tag, MacrosFile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	macros, err := rules.LoadMacros(rc)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", tag, MacrosFile, err)
	}
	return macros, nil
}

func loadHierarchy(loader Loader, tag string) (string, []language.Edge, error) {
	rc, err := loader.Open(tag, HierarchyFile)
	if err != nil {
		return "", nil, err
	}
	defer rc.Close()
	root, edges, err := LoadHierarchy(rc)
	if err != nil {
		return "", nil, fmt.Errorf("%s/%s: %w", tag, HierarchyFile, err)
	}
	return root, edges, nil
}

// loadNonCapTerms reads the non-capitalized term list. The file is
// optional; a pack without one gets an empty set.
func loadNonCapTerms(loader Loader, tag string) (map[string]struct{}, error) {
	rc, err := loader.Open(tag, NonCapFile)
	if err != nil {
		return map[string]struct{}{}, nil
	}
	defer rc.Close()
	set, err := rules.LoadList(rc)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", tag, NonCapFile, err)
	}
	return set, nil
}

// NewRegistry builds a registry over a pack: the manifest's default
// language is compiled eagerly, the remaining tags lazily on first use.
func NewRegistry(loader Loader) (*language.Registry, error) {
	manifest, err := LoadManifest(loader)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]struct{}, len(manifest.Languages))
	for _, tag := range manifest.Languages {
		declared[tag] = struct{}{}
	}

	reg := language.NewRegistry()
	reg.SetFactory(func(tag string) (*language.Resource, error) {
		if _, ok := declared[tag]; !ok {
			return nil, nil
		}
		return BuildResource(loader, tag)
	})

	def, err := BuildResource(loader, manifest.Default)
	if err != nil {
		return nil, err
	}
	reg.Register(def)
	if def.Tag != language.DefaultTag {
		reg.RegisterAs(language.DefaultTag, def)
	}

	return reg, nil
}

// DefaultRegistry builds a registry over the embedded resource pack.
func DefaultRegistry() (*language.Registry, error) {
	return NewRegistry(Embedded())
}
