// Package rules compiles the line-oriented tokenizer rule format into
// matchable patterns and classification tables. A rule set for one
// language consists of a macro file plus one description file per
// category (punctuation, clitics, abbreviations, token classes), each
// with optional LISTS, DEFINITIONS and RULES sections.
package rules

import "github.com/seglabco/segtok/pkg/pattern"

// Kind selects the per-category parse variations of a description.
type Kind int

// Description categories. Macros are loaded by LoadMacros and have no
// Description of their own.
const (
	KindPunctuation Kind = iota
	KindClitics
	KindAbbreviations
	KindTokenClasses
)

// String returns the resource base name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPunctuation:
		return "punct"
	case KindClitics:
		return "clitics"
	case KindAbbreviations:
		return "abbrev"
	case KindTokenClasses:
		return "tokclass"
	default:
		return "unknown"
	}
}

// Fixed rule names. The all-rules are synthesized from the definitions
// of their description; the clitic rules are authored in RULES sections.
const (
	AllPunctRule   = "ALL_PUNCT_RULE"
	InternalTURule = "INTERNAL_TU_RULE"
	ProcliticRule  = "PROCLITIC_RULE"
	EncliticRule   = "ENCLITIC_RULE"
	AllAbbrevRule  = "ALL_ABBREV_RULE"
	AllClassesRule = "ALL_CLASSES_RULE"
)

// Fixed class names used by the segmentation passes.
const (
	OpenPunctClass    = "OPEN_PUNCT"
	ClosePunctClass   = "CLOSE_PUNCT"
	OpenBracketClass  = "OPEN_BRACKET"
	CloseBracketClass = "CLOSE_BRACKET"
	TermPunctClass    = "TERM_PUNCT"
	TermPunctPClass   = "TERM_PUNCT_P"
	OpenCloseClass    = "OPENCLOSE_PUNCT"

	// BreakingAbbrevClass marks abbreviations whose trailing period
	// does not by itself end a sentence.
	BreakingAbbrevClass = "B_ABBREVIATION"
)

// Description holds the compiled form of one rule category.
// Immutable once built; safe for concurrent reads.
type Description struct {
	// Kind identifies which category this description was parsed as.
	Kind Kind

	// classOrder lists definition classes in first-seen order. The
	// ordered scan in classification depends on it.
	classOrder []string

	// classPatterns maps a definition class to the compiled union of
	// every definition source tagged with that class.
	classPatterns map[string]*pattern.Pattern

	// rules maps a rule name to its compiled pattern.
	rules map[string]*pattern.Pattern

	// ruleClasses maps a compiled rule pattern to its class for rules
	// that are class-unambiguous.
	ruleClasses map[*pattern.Pattern]string

	// members maps a class to its literal surface strings, including
	// the generated case variants.
	members map[string]map[string]struct{}

	// memberOrder lists member classes in registration order.
	memberOrder []string
}

// Classes returns the definition classes in first-seen order.
func (d *Description) Classes() []string {
	return d.classOrder
}

// ClassPattern returns the compiled union pattern for a definition
// class, or nil if the class is unknown.
func (d *Description) ClassPattern(class string) *pattern.Pattern {
	return d.classPatterns[class]
}

// Rule returns the compiled pattern for a rule name, or nil.
func (d *Description) Rule(name string) *pattern.Pattern {
	return d.rules[name]
}

// RuleClass returns the class recorded for a class-unambiguous rule
// pattern, if any.
func (d *Description) RuleClass(p *pattern.Pattern) (string, bool) {
	class, ok := d.ruleClasses[p]
	return class, ok
}

// Members returns the literal member set for a class. The returned map
// must not be modified.
func (d *Description) Members(class string) map[string]struct{} {
	return d.members[class]
}

// MemberClasses returns every class that has an enumerated member set,
// in first-registration order.
func (d *Description) MemberClasses() []string {
	return d.memberOrder
}

// Contains reports whether the literal s is a member of class.
func (d *Description) Contains(class, s string) bool {
	_, ok := d.members[class][s]
	return ok
}
