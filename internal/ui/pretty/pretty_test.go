package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seglabco/segtok/internal/ui/pretty"
	"github.com/seglabco/segtok/pkg/render"
)

func sampleDoc() render.Document {
	return render.Document{
		Language: "default",
		Paragraphs: []render.Paragraph{
			{TextUnits: []render.TextUnit{
				{Tokens: []render.Token{
					{Image: "Hello", Class: "TOKEN", Offset: 0, Length: 5},
					{Image: ",", Class: "INTERNAL_PUNCT", Offset: 5, Length: 1},
					{Image: "world", Class: "TOKEN", Offset: 7, Length: 5},
					{Image: ".", Class: "TERM_PUNCT", Offset: 12, Length: 1},
				}},
				{Tokens: []render.Token{
					{Image: "Again", Class: "TOKEN", Offset: 14, Length: 5},
				}},
			}},
			{TextUnits: []render.TextUnit{
				{Tokens: []render.Token{
					{Image: "Bye", Class: "TOKEN", Offset: 21, Length: 3},
				}},
			}},
		},
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, pretty.IsColorEnabled("always", &bytes.Buffer{}))
	assert.False(t, pretty.IsColorEnabled("never", &bytes.Buffer{}))
	// Auto mode with a non-TTY writer is always off.
	assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
}

func TestTokenTableFormat(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTokenTable(styles, 100)
	out := table.Format(sampleDoc())

	assert.Contains(t, out, "LOC")
	assert.Contains(t, out, "IMAGE")
	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "INTERNAL_PUNCT")
	assert.Contains(t, out, "0+5")

	// Two text units in the first paragraph, a light separator between.
	assert.Contains(t, out, "-----")
	// A heavy separator between paragraphs and around the table.
	assert.GreaterOrEqual(t, strings.Count(out, "====="), 3)
}

func TestTokenTableEmpty(t *testing.T) {
	t.Parallel()

	table := pretty.NewTokenTable(pretty.NewStyles(false), 0)
	assert.Empty(t, table.Format(render.Document{Language: "default"}))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummaryOneLine(sampleDoc())

	assert.Contains(t, out, "6 tokens")
	assert.Contains(t, out, "3 text units")
	assert.Contains(t, out, "2 paragraphs")
	assert.Contains(t, out, "language: default")
}

func TestFormatSummaryOneLineEmpty(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Contains(t, styles.FormatSummaryOneLine(render.Document{}), "No tokens")
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummary(sampleDoc())

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Language:    default")
	assert.Contains(t, out, "Paragraphs:  2")
	assert.Contains(t, out, "Text units:  3")
	assert.Contains(t, out, "Tokens:      6")
}
