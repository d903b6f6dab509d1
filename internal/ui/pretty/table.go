package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/seglabco/segtok/pkg/render"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minLocWidth      = 9
	minImageWidth    = 12
	minClassWidth    = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TokenTable formats a segmented document as a styled token table.
type TokenTable struct {
	styles    *Styles
	termWidth int
}

// NewTokenTable creates a token table formatter.
func NewTokenTable(styles *Styles, termWidth int) *TokenTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TokenTable{styles: styles, termWidth: termWidth}
}

// Format renders the document with one row per token. Text units are
// divided by light separators, paragraphs by heavy ones.
func (t *TokenTable) Format(doc render.Document) string {
	if doc.TokenCount() == 0 {
		return ""
	}

	locWidth, imageWidth, classWidth := t.columnWidths(doc)

	var b strings.Builder
	b.WriteString(t.formatHeader(locWidth, imageWidth, classWidth))
	b.WriteString("\n")
	b.WriteString(t.formatSeparator(heavySeparator, locWidth, imageWidth, classWidth))
	b.WriteString("\n")

	for pi, para := range doc.Paragraphs {
		if pi > 0 {
			b.WriteString(t.formatSeparator(heavySeparator, locWidth, imageWidth, classWidth))
			b.WriteString("\n")
		}
		for ui, unit := range para.TextUnits {
			if ui > 0 {
				b.WriteString(t.formatSeparator(lightSeparator, locWidth, imageWidth, classWidth))
				b.WriteString("\n")
			}
			for _, tok := range unit.Tokens {
				b.WriteString(t.formatRow(tok, locWidth, imageWidth, classWidth))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString(t.formatSeparator(heavySeparator, locWidth, imageWidth, classWidth))
	b.WriteString("\n")
	b.WriteString(t.styles.TableLegend.Render("offsets and lengths are in runes"))
	b.WriteString("\n")
	return b.String()
}

func (t *TokenTable) columnWidths(doc render.Document) (loc, image, class int) {
	loc, image, class = minLocWidth, minImageWidth, minClassWidth
	for _, tok := range doc.Tokens() {
		if w := len(locText(tok)); w > loc {
			loc = w
		}
		if w := utf8.RuneCountInString(tok.Image); w > image {
			image = w
		}
		if w := len(tok.Class); w > class {
			class = w
		}
	}
	// Image gets whatever the terminal leaves over.
	maxImage := t.termWidth - loc - class - 2*tablePadding
	if maxImage >= minImageWidth && image > maxImage {
		image = maxImage
	}
	return loc, image, class
}

func (t *TokenTable) formatHeader(locWidth, imageWidth, classWidth int) string {
	return t.styles.TableHeader.Render(fmt.Sprintf("%-*s  %-*s  %-*s",
		locWidth, "LOC", imageWidth, "IMAGE", classWidth, "CLASS"))
}

func (t *TokenTable) formatSeparator(sep string, locWidth, imageWidth, classWidth int) string {
	width := locWidth + imageWidth + classWidth + 2*tablePadding
	return t.styles.TableSeparator.Render(strings.Repeat(sep, width))
}

func (t *TokenTable) formatRow(tok render.Token, locWidth, imageWidth, classWidth int) string {
	image := truncate(tok.Image, imageWidth)
	pad := imageWidth - utf8.RuneCountInString(image)
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%-*s  %s%s  %s",
		locWidth, t.styles.Dim.Render(locText(tok)),
		image, strings.Repeat(" ", pad),
		t.classStyle(tok.Class).Render(tok.Class))
}

// classStyle picks a style by class name. Resource packs define their
// own hierarchies, so this matches on conventional name fragments.
func (t *TokenTable) classStyle(class string) lipgloss.Style {
	switch {
	case strings.Contains(class, "PUNCT"), class == "DASH":
		return t.styles.Punct
	case strings.Contains(class, "ABBREV"):
		return t.styles.Abbrev
	case strings.Contains(class, "CLITIC"):
		return t.styles.Clitic
	case class == "NUMBER", class == "ORDINAL":
		return t.styles.Number
	default:
		return t.styles.Word
	}
}

func locText(tok render.Token) string {
	return fmt.Sprintf("%d+%d", tok.Offset, tok.Length)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
