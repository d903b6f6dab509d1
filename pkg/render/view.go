// Package render converts a finished annotated string into paragraph,
// text-unit and token views, and writes them as plain text or JSON.
package render

import (
	"github.com/seglabco/segtok/pkg/annotate"
)

// Token is one classified span of the input.
type Token struct {
	// Image is the surface text of the token.
	Image string `json:"image"`

	// Class is the token class assigned by the pipeline.
	Class string `json:"class"`

	// Offset is the rune offset of the token start.
	Offset int `json:"offset"`

	// Length is the token length in runes.
	Length int `json:"length"`
}

// TextUnit is a sentence-level segment.
type TextUnit struct {
	Tokens []Token `json:"tokens"`
}

// Paragraph groups the text units between two paragraph borders.
type Paragraph struct {
	TextUnits []TextUnit `json:"text_units"`
}

// Document is the fully segmented input.
type Document struct {
	Language   string      `json:"language"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Build walks the class and border channels into a document tree.
// Border markers appear only at token starts; a paragraph border opens
// a paragraph and a text unit, a text-unit border a text unit only.
func Build(s *annotate.String, lang string) Document {
	doc := Document{Language: lang}

	var para *Paragraph
	var unit *TextUnit

	for c := s.NextAnnotation(annotate.ClassChannel, -1); c < s.Len(); {
		limit := s.RunLimit(annotate.ClassChannel, c)

		switch {
		case para == nil, s.Annotation(annotate.BorderChannel, c) == annotate.ParagraphBorder:
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{})
			para = &doc.Paragraphs[len(doc.Paragraphs)-1]
			para.TextUnits = append(para.TextUnits, TextUnit{})
			unit = &para.TextUnits[0]
		case s.Annotation(annotate.BorderChannel, c) == annotate.TextUnitBorder:
			para.TextUnits = append(para.TextUnits, TextUnit{})
			unit = &para.TextUnits[len(para.TextUnits)-1]
		}

		unit.Tokens = append(unit.Tokens, Token{
			Image:  s.Substring(c, limit),
			Class:  s.Annotation(annotate.ClassChannel, c),
			Offset: c,
			Length: limit - c,
		})

		c = s.NextAnnotation(annotate.ClassChannel, limit-1)
	}
	return doc
}

// Tokens flattens the document into its token sequence.
func (d Document) Tokens() []Token {
	var tokens []Token
	for _, para := range d.Paragraphs {
		for _, unit := range para.TextUnits {
			tokens = append(tokens, unit.Tokens...)
		}
	}
	return tokens
}

// TokenCount returns the total number of tokens.
func (d Document) TokenCount() int {
	count := 0
	for _, para := range d.Paragraphs {
		for _, unit := range para.TextUnits {
			count += len(unit.Tokens)
		}
	}
	return count
}

// TextUnitCount returns the total number of text units.
func (d Document) TextUnitCount() int {
	count := 0
	for _, para := range d.Paragraphs {
		count += len(para.TextUnits)
	}
	return count
}
