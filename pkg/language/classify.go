package language

import (
	"fmt"
	"slices"

	"github.com/seglabco/segtok/pkg/pattern"
	"github.com/seglabco/segtok/pkg/rules"
)

// IdentifyClass resolves the token class of s against a description.
// When the pattern that produced the match is class-unambiguous its
// class wins immediately; otherwise the definitions are scanned in
// first-seen order for the first full match. Exhausting both is a
// processing failure: callers only ask after a looser all-rule match
// already succeeded, so a miss means the rule set has a gap.
func (r *Resource) IdentifyClass(s string, matched *pattern.Pattern, d *rules.Description) (string, error) {
	if matched != nil {
		if class, ok := d.RuleClass(matched); ok {
			return class, nil
		}
	}
	for _, class := range d.Classes() {
		if d.ClassPattern(class).Matches(s) {
			return class, nil
		}
	}
	return "", fmt.Errorf("%w: no class matches %q", rules.ErrProcessing, s)
}

// IsAncestorOrSelf reports whether class a contains class b in the
// hierarchy. The root contains everything, every class contains itself,
// and otherwise a must appear in b's recorded ancestor list. Note the
// root also "contains" class names that were never registered; the rule
// sets rely on that lenient behavior, so it is preserved.
func (r *Resource) IsAncestorOrSelf(a, b string) bool {
	if a == r.RootClass {
		return true
	}
	if a == b {
		return true
	}
	return slices.Contains(r.ancestors[b], a)
}
