// Package tokenize implements the multi-pass segmentation engine:
// token boundary detection, recursive punctuation and clitic splitting,
// abbreviation recognition, and the sentence/paragraph boundary state
// machine. All passes read and write the class and border channels of
// one shared annotated string.
package tokenize

import (
	"fmt"
	"unicode"

	"github.com/seglabco/segtok/internal/logging"
	"github.com/seglabco/segtok/pkg/annotate"
	"github.com/seglabco/segtok/pkg/language"
)

// Tokenizer runs the segmentation passes with the language resources of
// a registry. Safe for concurrent use: every Tokenize call works on its
// own annotated string and resources are read-only.
type Tokenizer struct {
	registry *language.Registry
}

// New creates a Tokenizer backed by the given registry.
func New(registry *language.Registry) *Tokenizer {
	return &Tokenizer{registry: registry}
}

// Tokenize segments text with the resource for lang, falling back to
// the default resource for unknown tags. The returned annotated string
// carries token classes on the class channel and text-unit/paragraph
// markers on the border channel.
func (t *Tokenizer) Tokenize(text, lang string) (*annotate.String, error) {
	res, err := t.registry.Resolve(lang)
	if err != nil {
		return nil, err
	}

	s := annotate.NewString(text)

	if err := identifyTokens(s, res); err != nil {
		return nil, fmt.Errorf("token boundaries: %w", err)
	}
	if err := identifyPunctuation(s, res); err != nil {
		return nil, fmt.Errorf("punctuation: %w", err)
	}
	if err := identifyAbbreviations(s, res); err != nil {
		return nil, fmt.Errorf("abbreviations: %w", err)
	}
	if err := identifyTextUnits(s, res); err != nil {
		return nil, fmt.Errorf("text units: %w", err)
	}

	logging.Default().Debug("tokenized input",
		logging.FieldLanguage, res.Tag,
		logging.FieldRunes, s.Len(),
	)
	return s, nil
}

// isWhitespace treats the no-break space like ordinary whitespace for
// token boundary purposes.
func isWhitespace(r rune) bool {
	return unicode.IsSpace(r) || r == '\u00a0'
}

// identifyTokens is the first pass: every maximal non-whitespace run
// becomes a token, classified immediately when the token-class rules
// recognize it as a whole and left as the root class otherwise.
func identifyTokens(s *annotate.String, res *language.Resource) error {
	start := -1
	for i := 0; i < s.Len(); i++ {
		if isWhitespace(s.CharAt(i)) {
			if start >= 0 {
				if err := annotateToken(s, res, start, i); err != nil {
					return err
				}
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		return annotateToken(s, res, start, s.Len())
	}
	return nil
}

// annotateToken classifies [start, end) through the all-classes
// shortcut, falling back to the root class. Tokens recognizable in one
// pass, numbers for instance, skip further splitting this way.
func annotateToken(s *annotate.String, res *language.Resource, start, end int) error {
	img := s.Substring(start, end)
	if all := res.AllClasses(); all != nil && all.Matches(img) {
		class, err := res.IdentifyClass(img, nil, res.TokenClasses)
		if err != nil {
			return err
		}
		return s.Annotate(annotate.ClassChannel, class, start, end)
	}
	return s.Annotate(annotate.ClassChannel, res.RootClass, start, end)
}
