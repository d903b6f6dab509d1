// Package annotate provides the mutable text-plus-annotation structure
// the segmentation passes operate on. The backing text is fixed for the
// lifetime of one tokenization; named channels record a value and a
// run-border flag per rune offset. A run is a maximal range of offsets
// sharing one value (including the empty value).
package annotate

import (
	"errors"
	"fmt"
)

// Channel names used by the segmentation passes.
const (
	// ClassChannel carries the token classification.
	ClassChannel = "class"

	// BorderChannel carries text-unit and paragraph boundary markers.
	BorderChannel = "border"
)

// Border values on BorderChannel. A paragraph border implies a
// text-unit boundary but is a distinct value.
const (
	TextUnitBorder  = "tu"
	ParagraphBorder = "p"
)

// ErrInvalidRange indicates an annotation range outside the string.
var ErrInvalidRange = errors.New("annotation range out of bounds")

// channel holds per-offset values and border flags for one key.
type channel struct {
	values  []string
	borders []bool
}

// String is a rune-indexed string with named annotation channels.
// One instance is private to a single tokenization; it is not safe for
// concurrent mutation.
type String struct {
	text     string
	chars    []rune
	channels map[string]*channel
}

// NewString wraps text for annotation.
func NewString(text string) *String {
	return &String{
		text:     text,
		chars:    []rune(text),
		channels: make(map[string]*channel),
	}
}

// Len returns the length of the text in runes.
func (s *String) Len() int {
	return len(s.chars)
}

// String returns the backing text.
func (s *String) String() string {
	return s.text
}

// CharAt returns the rune at offset i, or zero if out of range.
func (s *String) CharAt(i int) rune {
	if i < 0 || i >= len(s.chars) {
		return 0
	}
	return s.chars[i]
}

// Substring returns the text of [start, end) in rune offsets.
func (s *String) Substring(start, end int) string {
	if start < 0 || end > len(s.chars) || start > end {
		return ""
	}
	return string(s.chars[start:end])
}

// Annotate sets value on every offset in [start, end) of the named
// channel, clears interior border flags, and marks start (and end, when
// end < Len) as run borders. The first annotation on a channel
// allocates its arrays and makes offset 0 a border.
func (s *String) Annotate(name, value string, start, end int) error {
	if start < 0 || end > len(s.chars) || start > end {
		return fmt.Errorf("%w: [%d,%d) in text of length %d",
			ErrInvalidRange, start, end, len(s.chars))
	}

	ch, ok := s.channels[name]
	if !ok {
		ch = &channel{
			values:  make([]string, len(s.chars)),
			borders: make([]bool, len(s.chars)),
		}
		if len(ch.borders) > 0 {
			ch.borders[0] = true
		}
		s.channels[name] = ch
	}

	for i := start; i < end; i++ {
		ch.values[i] = value
		ch.borders[i] = false
	}
	if start < len(ch.borders) {
		ch.borders[start] = true
	}
	if end < len(ch.borders) {
		ch.borders[end] = true
	}
	if len(ch.borders) > 0 {
		ch.borders[0] = true
	}
	return nil
}

// Annotation returns the value at offset i on the named channel, or the
// empty string if the channel has no value there.
func (s *String) Annotation(name string, i int) string {
	ch, ok := s.channels[name]
	if !ok || i < 0 || i >= len(ch.values) {
		return ""
	}
	return ch.values[i]
}

// RunStart returns the offset of the nearest border at or before i on
// the named channel, or 0 if the channel has never been annotated.
func (s *String) RunStart(name string, i int) int {
	ch, ok := s.channels[name]
	if !ok {
		return 0
	}
	if i >= len(ch.borders) {
		i = len(ch.borders) - 1
	}
	for ; i > 0; i-- {
		if ch.borders[i] {
			return i
		}
	}
	return 0
}

// RunLimit returns the offset of the nearest border strictly after i on
// the named channel, or Len if there is none or the channel has never
// been annotated.
func (s *String) RunLimit(name string, i int) int {
	ch, ok := s.channels[name]
	if !ok {
		return len(s.chars)
	}
	if i < 0 {
		i = -1
	}
	for j := i + 1; j < len(ch.borders); j++ {
		if ch.borders[j] {
			return j
		}
	}
	return len(s.chars)
}

// NextAnnotation returns the smallest offset >= i+1 that starts a run
// with a non-empty value on the named channel, or Len if there is none.
func (s *String) NextAnnotation(name string, i int) int {
	ch, ok := s.channels[name]
	if !ok {
		return len(s.chars)
	}
	for j := i + 1; j < len(ch.borders); j++ {
		if ch.borders[j] && ch.values[j] != "" {
			return j
		}
	}
	return len(s.chars)
}

// Annotated reports whether the named channel has ever been annotated.
func (s *String) Annotated(name string) bool {
	_, ok := s.channels[name]
	return ok
}
