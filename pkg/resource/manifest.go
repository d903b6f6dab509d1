package resource

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/rules"
)

// Manifest declares the languages of a resource pack.
type Manifest struct {
	// Default is the tag of the fallback language.
	Default string `yaml:"default"`

	// Languages lists every tag shipped by the pack.
	Languages []string `yaml:"languages"`
}

// LoadManifest reads manifest.yml from the pack root.
func LoadManifest(loader Loader) (*Manifest, error) {
	rc, err := loader.Open("", ManifestFile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var m Manifest
	if err := yaml.NewDecoder(rc).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %v", rules.ErrInitialization, err)
	}
	if m.Default == "" {
		m.Default = language.DefaultTag
	}
	if len(m.Languages) == 0 {
		return nil, fmt.Errorf("%w: manifest declares no languages", rules.ErrInitialization)
	}
	return &m, nil
}
