package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteText writes the document with one text unit per line and a blank
// line between paragraphs. Token images are joined with single spaces,
// so the output is a normalized rendering, not the original text.
func WriteText(w io.Writer, doc Document) error {
	for i, para := range doc.Paragraphs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, unit := range para.TextUnits {
			images := make([]string, 0, len(unit.Tokens))
			for _, tok := range unit.Tokens {
				images = append(images, tok.Image)
			}
			if _, err := fmt.Fprintln(w, strings.Join(images, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
