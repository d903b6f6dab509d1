// Package inputcheck guards tokenizer input against content that is
// not natural-language text. It uses go-enry to reject binary data and
// to flag input that looks like source code, which the segmentation
// rules would happily mangle.
package inputcheck

import (
	"errors"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// ErrBinaryInput is returned when the input does not look like text at all.
var ErrBinaryInput = errors.New("input appears to be binary data")

// proseLanguages are enry results that still count as natural language.
var proseLanguages = map[string]struct{}{
	"":                 {},
	"Text":             {},
	"Markdown":         {},
	"AsciiDoc":         {},
	"ReStructuredText": {},
	"Org":              {},
}

// classifierCandidates limits the classifier to languages it can tell
// apart from prose with reasonable confidence.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "JSON",
	"YAML", "HTML", "SQL", "Text",
}

// Verify checks that content is plausibly natural-language text.
// Binary content is an error; content recognized as source code is
// accepted but reported through the warn return so callers can log it.
func Verify(filename string, content []byte) (warn string, err error) {
	if enry.IsBinary(content) {
		return "", ErrBinaryInput
	}
	if lang := sourceLanguage(filename, content); lang != "" {
		return "input looks like " + lang + " source code", nil
	}
	return "", nil
}

// sourceLanguage returns a non-empty language name when content looks
// like source code rather than prose.
func sourceLanguage(filename string, content []byte) string {
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	if filename != "" && filename != "-" {
		if lang := enry.GetLanguage(filename, content); !isProse(lang) {
			return lang
		}
		return ""
	}

	// No usable filename: fall back to the content classifier and only
	// trust it when it is confident.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && !isProse(lang) {
		return lang
	}
	return ""
}

func isProse(lang string) bool {
	if _, ok := proseLanguages[lang]; ok {
		return true
	}
	return strings.HasPrefix(lang, "Text")
}
