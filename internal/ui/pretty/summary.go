package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seglabco/segtok/pkg/render"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats segmentation statistics as a single line.
// Example: "42 tokens in 5 text units, 2 paragraphs (language: default)".
func (s *Styles) FormatSummaryOneLine(doc render.Document) string {
	tokens := doc.TokenCount()
	if tokens == 0 {
		return s.Dim.Render("No tokens found") + "\n"
	}

	units := doc.TextUnitCount()
	paras := len(doc.Paragraphs)
	return fmt.Sprintf("%s in %s, %s %s\n",
		s.Bold.Render(countWord(tokens, "token")),
		countWord(units, "text unit"),
		countWord(paras, "paragraph"),
		s.Dim.Render("(language: "+doc.Language+")"))
}

// FormatSummary formats segmentation statistics as a summary block.
func (s *Styles) FormatSummary(doc render.Document) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	b.WriteString("  Language:    " + s.SummaryValue.Render(doc.Language) + "\n")
	b.WriteString("  Paragraphs:  " + s.SummaryValue.Render(strconv.Itoa(len(doc.Paragraphs))) + "\n")
	b.WriteString("  Text units:  " + s.SummaryValue.Render(strconv.Itoa(doc.TextUnitCount())) + "\n")
	b.WriteString("  Tokens:      " + s.SummaryValue.Render(strconv.Itoa(doc.TokenCount())) + "\n")

	return b.String()
}

func countWord(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
