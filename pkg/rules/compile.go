package rules

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seglabco/segtok/pkg/pattern"
)

// Opener resolves a list-file name referenced from a LISTS section to
// its content. Injected so the compiler stays free of I/O policy.
type Opener func(name string) (io.ReadCloser, error)

// Section headers of the description format.
const (
	listsHeader       = "LISTS:"
	definitionsHeader = "DEFINITIONS:"
	rulesHeader       = "RULES:"
)

// colonName is the reserved definition name for the literal colon,
// which cannot appear in a pattern field because the colon is the field
// separator.
const colonName = "COLON"

// refPattern matches a <NAME> reference to a macro or definition.
var refPattern = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9_]*)>`)

// LoadMacros parses a macro file: NAME:pattern pairs, one per line,
// with <NAME> references resolved against previously seen macros.
// The returned map is shared by every description of the language.
func LoadMacros(r io.Reader) (map[string]string, error) {
	macros := make(map[string]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		name, src, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: macro line %d: expected NAME:pattern, got %q",
				ErrInitialization, lineNo, line)
		}
		expanded, err := expandRefs(src, macros)
		if err != nil {
			return nil, fmt.Errorf("macro line %d: %w", lineNo, err)
		}
		macros[strings.TrimSpace(name)] = expanded
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read macros: %v", ErrInitialization, err)
	}
	return macros, nil
}

// Load parses one description file of the given kind. Macro references
// in definitions and rules are expanded against macros; list files from
// a LISTS section are resolved through open.
func Load(kind Kind, r io.Reader, macros map[string]string, open Opener) (*Description, error) {
	d := &Description{
		Kind:          kind,
		classPatterns: make(map[string]*pattern.Pattern),
		rules:         make(map[string]*pattern.Pattern),
		ruleClasses:   make(map[*pattern.Pattern]string),
		members:       make(map[string]map[string]struct{}),
	}

	// Union sources per class, and per-definition expanded sources for
	// reference expansion inside rules.
	classSrc := make(map[string]string)
	defSrc := make(map[string]string)

	section := ""
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}

		switch line {
		case listsHeader, definitionsHeader, rulesHeader:
			section = line
			continue
		}

		switch section {
		case listsHeader:
			if err := d.parseListLine(line, lineNo, open); err != nil {
				return nil, err
			}
		case definitionsHeader:
			if err := parseDefinitionLine(d, line, lineNo, macros, classSrc, defSrc); err != nil {
				return nil, err
			}
		case rulesHeader:
			if err := parseRuleLine(d, line, lineNo, macros, defSrc); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: line %d: content before any section header: %q",
				ErrInitialization, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read description: %v", ErrInitialization, err)
	}

	// Compile the per-class union patterns in first-seen order.
	for _, class := range d.classOrder {
		p, err := pattern.Compile(classSrc[class])
		if err != nil {
			return nil, fmt.Errorf("%w: class %s: %v", ErrInitialization, class, err)
		}
		d.classPatterns[class] = p
	}

	// Synthesize the match-all rule from the definitions and register
	// it under the kind's fixed name.
	if err := d.buildAllRule(classSrc); err != nil {
		return nil, err
	}

	return d, nil
}

// buildAllRule compiles the disjunction of every parenthesized
// definition pattern as a fast pre-filter and registers it under the
// fixed per-kind rule name.
func (d *Description) buildAllRule(classSrc map[string]string) error {
	if len(d.classOrder) == 0 {
		return nil
	}
	parts := make([]string, 0, len(d.classOrder))
	for _, class := range d.classOrder {
		parts = append(parts, "("+classSrc[class]+")")
	}
	p, err := pattern.Compile(strings.Join(parts, "|"))
	if err != nil {
		return fmt.Errorf("%w: match-all rule: %v", ErrInitialization, err)
	}
	d.rules[allRuleName(d.Kind)] = p
	return nil
}

// allRuleName returns the fixed registration name of the synthesized
// match-all rule for a kind.
func allRuleName(kind Kind) string {
	switch kind {
	case KindPunctuation:
		return AllPunctRule
	case KindAbbreviations:
		return AllAbbrevRule
	case KindTokenClasses:
		return AllClassesRule
	default:
		return "ALL_" + strings.ToUpper(kind.String()) + "_RULE"
	}
}

// AllRule returns the synthesized match-all pattern of the description,
// or nil if the description has no definitions.
func (d *Description) AllRule() *pattern.Pattern {
	return d.rules[allRuleName(d.Kind)]
}

// parseListLine handles one `file:class` (or tab-separated) line of a
// LISTS section.
func (d *Description) parseListLine(line string, lineNo int, open Opener) error {
	file, class, ok := strings.Cut(line, "\t")
	if !ok {
		file, class, ok = strings.Cut(line, ":")
	}
	if !ok || strings.TrimSpace(file) == "" || strings.TrimSpace(class) == "" {
		return fmt.Errorf("%w: line %d: expected file:class, got %q",
			ErrInitialization, lineNo, line)
	}
	if open == nil {
		return fmt.Errorf("%w: line %d: LISTS section present but no list opener supplied",
			ErrInitialization, lineNo)
	}
	file = strings.TrimSpace(file)
	class = strings.TrimSpace(class)

	rc, err := open(file)
	if err != nil {
		return fmt.Errorf("%w: line %d: open list %q: %v", ErrInitialization, lineNo, file, err)
	}
	defer rc.Close()

	set, err := LoadList(rc)
	if err != nil {
		return fmt.Errorf("list %q: %w", file, err)
	}
	if _, seen := d.members[class]; !seen {
		d.members[class] = make(map[string]struct{})
		d.memberOrder = append(d.memberOrder, class)
	}
	for literal := range set {
		d.members[class][literal] = struct{}{}
	}
	return nil
}

// LoadList parses a newline-delimited literal list with optional
// trailing #comments. Each literal contributes itself, its upper-case
// form, and its first-letter-capitalized form.
func LoadList(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		literal := strings.TrimSpace(line)
		if literal == "" {
			continue
		}
		set[literal] = struct{}{}
		set[strings.ToUpper(literal)] = struct{}{}
		set[capitalize(literal)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read list: %v", ErrInitialization, err)
	}
	return set, nil
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// parseDefinitionLine handles one `name:pattern:class` line. Same-class
// definitions accumulate as a disjunction in first-seen order.
func parseDefinitionLine(
	d *Description,
	line string,
	lineNo int,
	macros map[string]string,
	classSrc map[string]string,
	defSrc map[string]string,
) error {
	fields := strings.Split(line, ":")
	if len(fields) != 3 {
		return fmt.Errorf("%w: line %d: expected name:pattern:class, got %q",
			ErrInitialization, lineNo, line)
	}
	name := strings.TrimSpace(fields[0])
	src := strings.TrimSpace(fields[1])
	class := strings.TrimSpace(fields[2])
	if name == "" || class == "" {
		return fmt.Errorf("%w: line %d: empty name or class in %q",
			ErrInitialization, lineNo, line)
	}

	// The field separator makes a literal colon inexpressible in the
	// pattern field; the reserved COLON name stands in for it.
	if name == colonName && src == "" {
		src = ":"
	}

	expanded, err := expandRefs(src, macros)
	if err != nil {
		return fmt.Errorf("definition line %d: %w", lineNo, err)
	}
	if expanded == "" {
		return fmt.Errorf("%w: line %d: definition %s expands to an empty pattern",
			ErrInitialization, lineNo, name)
	}
	defSrc[name] = expanded

	if existing, seen := classSrc[class]; seen {
		classSrc[class] = existing + "|" + expanded
	} else {
		classSrc[class] = expanded
		d.classOrder = append(d.classOrder, class)
	}
	return nil
}

// parseRuleLine handles one `name:pattern[:class]` line. Definition
// references are expanded before macro references.
func parseRuleLine(
	d *Description,
	line string,
	lineNo int,
	macros map[string]string,
	defSrc map[string]string,
) error {
	fields := strings.Split(line, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return fmt.Errorf("%w: line %d: expected name:pattern[:class], got %q",
			ErrInitialization, lineNo, line)
	}
	name := strings.TrimSpace(fields[0])
	src := strings.TrimSpace(fields[1])
	if name == "" {
		return fmt.Errorf("%w: line %d: empty rule name in %q",
			ErrInitialization, lineNo, line)
	}

	// Definition references resolve first; names not found there may
	// still be macros, so unknown references survive to the second pass
	// and only the macro pass treats them as fatal.
	expanded := expandKnownRefs(src, defSrc)
	expanded, err := expandRefs(expanded, macros)
	if err != nil {
		return fmt.Errorf("rule line %d: %w", lineNo, err)
	}

	p, err := pattern.Compile(expanded)
	if err != nil {
		return fmt.Errorf("%w: line %d: rule %s: %v", ErrInitialization, lineNo, name, err)
	}
	d.rules[name] = p

	if len(fields) == 3 {
		class := strings.TrimSpace(fields[2])
		if class != "" {
			d.ruleClasses[p] = class
		}
	}
	return nil
}

// skipLine reports whether a line is blank or a comment.
func skipLine(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// expandRefs replaces every <NAME> reference in src with the
// parenthesized source it resolves to. Resolution is eager and ordered
// by first appearance; an undefined reference is fatal.
func expandRefs(src string, table map[string]string) (string, error) {
	var unresolved string
	expanded := refPattern.ReplaceAllStringFunc(src, func(ref string) string {
		name := ref[1 : len(ref)-1]
		value, ok := table[name]
		if !ok {
			if unresolved == "" {
				unresolved = name
			}
			return ref
		}
		return "(" + value + ")"
	})
	if unresolved != "" {
		return "", fmt.Errorf("%w: undefined reference <%s>", ErrProcessing, unresolved)
	}
	return expanded, nil
}

// expandKnownRefs is like expandRefs but leaves references it cannot
// resolve in place instead of failing.
func expandKnownRefs(src string, table map[string]string) string {
	return refPattern.ReplaceAllStringFunc(src, func(ref string) string {
		name := ref[1 : len(ref)-1]
		value, ok := table[name]
		if !ok {
			return ref
		}
		return "(" + value + ")"
	})
}
