// Package pattern wraps the regexp engine behind the small capability set
// the tokenizer needs: full match, first containment match, anchored
// start/end matches, and all non-overlapping matches. Offsets are rune
// offsets, not byte offsets, so they line up with annotated-string
// positions.
package pattern

import (
	"fmt"
	"regexp"
)

// Match is a single occurrence of a pattern inside a string.
// End is exclusive; Text is the matched substring.
type Match struct {
	Start int
	End   int
	Text  string
}

// Len returns the length of the match in runes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Pattern is a compiled matcher. It is immutable and safe for concurrent
// use by multiple goroutines.
type Pattern struct {
	src     string
	re      *regexp.Regexp // unanchored
	atStart *regexp.Regexp // anchored at the beginning
	atEnd   *regexp.Regexp // anchored at the end
	full    *regexp.Regexp // anchored at both ends
}

// Compile builds a Pattern from a regular expression source.
// Malformed sources fail here; matching itself never fails.
func Compile(src string) (*Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}
	atStart, err := regexp.Compile(`\A(?:` + src + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}
	atEnd, err := regexp.Compile(`(?:` + src + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}
	full, err := regexp.Compile(`\A(?:` + src + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}
	return &Pattern{src: src, re: re, atStart: atStart, atEnd: atEnd, full: full}, nil
}

// MustCompile is like Compile but panics on error. Intended for fixed
// patterns in tests and built-in defaults.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the pattern source the Pattern was compiled from.
func (p *Pattern) Source() string {
	return p.src
}

// Matches reports whether the pattern matches the entire string.
func (p *Pattern) Matches(s string) bool {
	return p.full.MatchString(s)
}

// First returns the leftmost match contained in s, or nil.
func (p *Pattern) First(s string) *Match {
	loc := p.re.FindStringIndex(s)
	if loc == nil {
		return nil
	}
	return toMatch(s, loc[0], loc[1])
}

// AtStart returns the match anchored at the beginning of s, or nil.
func (p *Pattern) AtStart(s string) *Match {
	loc := p.atStart.FindStringIndex(s)
	if loc == nil {
		return nil
	}
	return toMatch(s, loc[0], loc[1])
}

// AtEnd returns a match whose end coincides with the end of s, or nil.
func (p *Pattern) AtEnd(s string) *Match {
	loc := p.atEnd.FindStringIndex(s)
	if loc == nil {
		return nil
	}
	return toMatch(s, loc[0], loc[1])
}

// All returns every non-overlapping match in s, left to right.
func (p *Pattern) All(s string) []Match {
	locs := p.re.FindAllStringIndex(s, -1)
	if locs == nil {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, *toMatch(s, loc[0], loc[1]))
	}
	return matches
}

// toMatch converts byte offsets from regexp into a rune-offset Match.
func toMatch(s string, byteStart, byteEnd int) *Match {
	runeStart := len([]rune(s[:byteStart]))
	text := s[byteStart:byteEnd]
	return &Match{
		Start: runeStart,
		End:   runeStart + len([]rune(text)),
		Text:  text,
	}
}
