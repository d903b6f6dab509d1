// Package language aggregates the compiled rule descriptions of one
// language with its token-class hierarchy, and keeps a registry of
// resources keyed by language tag.
package language

import (
	"fmt"

	"github.com/seglabco/segtok/pkg/pattern"
	"github.com/seglabco/segtok/pkg/rules"
)

// DefaultTag is the language tag of the fallback resource.
const DefaultTag = "default"

// Resource holds everything the pipeline needs for one language.
// Immutable after construction; safe for concurrent reads.
type Resource struct {
	// Tag is the language tag, DefaultTag when unset.
	Tag string

	// Macros is the shared macro map of the language.
	Macros map[string]string

	// The four compiled descriptions.
	Punct        *rules.Description
	Clitics      *rules.Description
	Abbrev       *rules.Description
	TokenClasses *rules.Description

	// RootClass is the hierarchy root, assigned to any non-whitespace
	// run before finer classification.
	RootClass string

	// ancestors maps a class to its ancestor class names, nearest
	// first, root excluded.
	ancestors map[string][]string

	// nonCapTerms are terms that may legitimately start lower-cased at
	// a sentence start, with case variants included.
	nonCapTerms map[string]struct{}
}

// Config collects the inputs of NewResource.
type Config struct {
	Tag          string
	Macros       map[string]string
	Punct        *rules.Description
	Clitics      *rules.Description
	Abbrev       *rules.Description
	TokenClasses *rules.Description

	// RootClass and Edges describe the class hierarchy. How the caller
	// obtained them (XML, YAML, hard-coded) is irrelevant here.
	RootClass string
	Edges     []Edge

	// NonCapTerms is the non-capitalized term set for the language.
	NonCapTerms map[string]struct{}
}

// Edge is one class-to-parent link of the class hierarchy.
type Edge struct {
	Class  string
	Parent string
}

// NewResource builds an immutable Resource, deriving the ancestor map
// from the hierarchy edges.
func NewResource(cfg Config) (*Resource, error) {
	if cfg.RootClass == "" {
		return nil, fmt.Errorf("%w: hierarchy root class is required", rules.ErrInitialization)
	}
	tag := cfg.Tag
	if tag == "" {
		tag = DefaultTag
	}

	ancestors, err := buildAncestors(cfg.RootClass, cfg.Edges)
	if err != nil {
		return nil, err
	}

	nonCap := cfg.NonCapTerms
	if nonCap == nil {
		nonCap = make(map[string]struct{})
	}

	return &Resource{
		Tag:          tag,
		Macros:       cfg.Macros,
		Punct:        cfg.Punct,
		Clitics:      cfg.Clitics,
		Abbrev:       cfg.Abbrev,
		TokenClasses: cfg.TokenClasses,
		RootClass:    cfg.RootClass,
		ancestors:    ancestors,
		nonCapTerms:  nonCap,
	}, nil
}

// buildAncestors walks parent links once per class, collecting ancestor
// names nearest first and stopping before the root.
func buildAncestors(root string, edges []Edge) (map[string][]string, error) {
	parent := make(map[string]string, len(edges))
	for _, e := range edges {
		if e.Class == "" || e.Parent == "" {
			return nil, fmt.Errorf("%w: hierarchy edge with empty class or parent",
				rules.ErrInitialization)
		}
		parent[e.Class] = e.Parent
	}

	ancestors := make(map[string][]string, len(parent))
	for class := range parent {
		var chain []string
		for cur := parent[class]; cur != "" && cur != root; cur = parent[cur] {
			chain = append(chain, cur)
			if len(chain) > len(parent) {
				return nil, fmt.Errorf("%w: cycle in class hierarchy at %q",
					rules.ErrInitialization, class)
			}
		}
		ancestors[class] = chain
	}
	return ancestors, nil
}

// AllPunct returns the all-punctuation pattern, or nil.
func (r *Resource) AllPunct() *pattern.Pattern {
	if r.Punct == nil {
		return nil
	}
	return r.Punct.Rule(rules.AllPunctRule)
}

// InternalTU returns the sentence-internal punctuation pattern, or nil.
func (r *Resource) InternalTU() *pattern.Pattern {
	if r.Punct == nil {
		return nil
	}
	return r.Punct.Rule(rules.InternalTURule)
}

// Proclitic returns the proclitic pattern, or nil.
func (r *Resource) Proclitic() *pattern.Pattern {
	if r.Clitics == nil {
		return nil
	}
	return r.Clitics.Rule(rules.ProcliticRule)
}

// Enclitic returns the enclitic pattern, or nil.
func (r *Resource) Enclitic() *pattern.Pattern {
	if r.Clitics == nil {
		return nil
	}
	return r.Clitics.Rule(rules.EncliticRule)
}

// AllAbbrev returns the all-abbreviation pattern, or nil.
func (r *Resource) AllAbbrev() *pattern.Pattern {
	if r.Abbrev == nil {
		return nil
	}
	return r.Abbrev.Rule(rules.AllAbbrevRule)
}

// AllClasses returns the all-token-classes pattern, or nil.
func (r *Resource) AllClasses() *pattern.Pattern {
	if r.TokenClasses == nil {
		return nil
	}
	return r.TokenClasses.Rule(rules.AllClassesRule)
}

// AbbrevLists returns the abbreviation description's enumerated list
// classes in registration order, or nil.
func (r *Resource) AbbrevLists() []string {
	if r.Abbrev == nil {
		return nil
	}
	return r.Abbrev.MemberClasses()
}

// IsNonCapTerm reports whether s is a known non-capitalized term.
func (r *Resource) IsNonCapTerm(s string) bool {
	_, ok := r.nonCapTerms[s]
	return ok
}

// Ancestors returns the recorded ancestor list of a class, nearest
// first, root excluded.
func (r *Resource) Ancestors(class string) []string {
	return r.ancestors[class]
}
