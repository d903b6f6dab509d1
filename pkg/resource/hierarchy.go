package resource

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/rules"
)

// hierarchyNode is one class element of the hierarchy file.
type hierarchyNode struct {
	Class    string          `yaml:"class"`
	Children []hierarchyNode `yaml:"children"`
}

// LoadHierarchy parses a hierarchy.yml into the root class name and the
// flattened class/parent edges the language package consumes.
func LoadHierarchy(r io.Reader) (string, []language.Edge, error) {
	var root hierarchyNode
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return "", nil, fmt.Errorf("%w: parse hierarchy: %v", rules.ErrInitialization, err)
	}
	if root.Class == "" {
		return "", nil, fmt.Errorf("%w: hierarchy has no root class", rules.ErrInitialization)
	}

	var edges []language.Edge
	var walk func(parent string, nodes []hierarchyNode) error
	walk = func(parent string, nodes []hierarchyNode) error {
		for _, n := range nodes {
			if n.Class == "" {
				return fmt.Errorf("%w: hierarchy node without class under %q",
					rules.ErrInitialization, parent)
			}
			edges = append(edges, language.Edge{Class: n.Class, Parent: parent})
			if err := walk(n.Class, n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root.Class, root.Children); err != nil {
		return "", nil, err
	}
	return root.Class, edges, nil
}
