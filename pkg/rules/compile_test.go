package rules_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seglabco/segtok/pkg/rules"
)

// stringOpener resolves list names against an in-memory map.
func stringOpener(files map[string]string) rules.Opener {
	return func(name string) (io.ReadCloser, error) {
		content, ok := files[name]
		if !ok {
			return nil, errors.New("no such list: " + name)
		}
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func TestLoadMacros_Expansion(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# character classes",
		"LETTER_UP:[A-Z]",
		"LETTER_ANY:<LETTER_UP>|[a-z]",
		"",
	}, "\n")

	macros, err := rules.LoadMacros(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "[A-Z]", macros["LETTER_UP"])
	assert.Equal(t, "([A-Z])|[a-z]", macros["LETTER_ANY"])
}

func TestLoadMacros_UndefinedReference(t *testing.T) {
	t.Parallel()

	_, err := rules.LoadMacros(strings.NewReader("BAD:<MISSING>[a-z]"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrProcessing)
}

func TestLoadMacros_MalformedLine(t *testing.T) {
	t.Parallel()

	_, err := rules.LoadMacros(strings.NewReader("JUSTANAME"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrInitialization)
}

func TestLoad_DefinitionMerge(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"DEFINITIONS:",
		"CARDINAL:[0-9]+:NUMBER",
		"DECIMAL:[0-9]+\\.[0-9]+:NUMBER",
	}, "\n")

	d, err := rules.Load(rules.KindTokenClasses, strings.NewReader(input), nil, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"NUMBER"}, d.Classes())
	p := d.ClassPattern("NUMBER")
	require.NotNil(t, p)

	// The class pattern is the union of both definitions.
	assert.True(t, p.Matches("42"))
	assert.True(t, p.Matches("3.14"))
	assert.False(t, p.Matches("abc"))
}

func TestLoad_MacroExpansionInDefinitions(t *testing.T) {
	t.Parallel()

	macros := map[string]string{"DIGIT": "[0-9]"}
	input := strings.Join([]string{
		"DEFINITIONS:",
		"CARDINAL:<DIGIT>+:NUMBER",
	}, "\n")

	d, err := rules.Load(rules.KindTokenClasses, strings.NewReader(input), macros, nil)
	require.NoError(t, err)
	assert.True(t, d.ClassPattern("NUMBER").Matches("007"))
}

func TestLoad_ColonPseudoDefinition(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"DEFINITIONS:",
		"COLON::TERM_PUNCT_P",
	}, "\n")

	d, err := rules.Load(rules.KindPunctuation, strings.NewReader(input), nil, nil)
	require.NoError(t, err)
	assert.True(t, d.ClassPattern("TERM_PUNCT_P").Matches(":"))
}

func TestLoad_EmptyPatternFatal(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"DEFINITIONS:",
		"EMPTY::SOMECLASS",
	}, "\n")

	_, err := rules.Load(rules.KindTokenClasses, strings.NewReader(input), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrInitialization)
}

func TestLoad_WrongFieldCount(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"DEFINITIONS:",
		"TOOMANY:[a-z]:CLASS:EXTRA",
	}, "\n")

	_, err := rules.Load(rules.KindTokenClasses, strings.NewReader(input), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrInitialization)
}

func TestLoad_RuleWithDefinitionAndMacroRefs(t *testing.T) {
	t.Parallel()

	macros := map[string]string{"SPACE": `\s`}
	input := strings.Join([]string{
		"DEFINITIONS:",
		"TERM:[.!?]:TERM_PUNCT",
		"RULES:",
		"TERM_SEQ_RULE:<TERM>+<SPACE>?:TERM_PUNCT",
	}, "\n")

	d, err := rules.Load(rules.KindPunctuation, strings.NewReader(input), macros, nil)
	require.NoError(t, err)

	p := d.Rule("TERM_SEQ_RULE")
	require.NotNil(t, p)
	assert.True(t, p.Matches("!? "))

	// The rule carries a class tag, so it must appear in the
	// pattern-to-class map.
	class, ok := d.RuleClass(p)
	require.True(t, ok)
	assert.Equal(t, "TERM_PUNCT", class)
}

func TestLoad_RuleUndefinedReference(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"RULES:",
		"BROKEN_RULE:<NOWHERE>+",
	}, "\n")

	_, err := rules.Load(rules.KindPunctuation, strings.NewReader(input), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrProcessing)
}

func TestLoad_AllRule(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"DEFINITIONS:",
		"TERM:[.!?]:TERM_PUNCT",
		"COMMA:,:INTERNAL_PUNCT",
	}, "\n")

	d, err := rules.Load(rules.KindPunctuation, strings.NewReader(input), nil, nil)
	require.NoError(t, err)

	all := d.AllRule()
	require.NotNil(t, all)
	assert.Same(t, all, d.Rule(rules.AllPunctRule))
	assert.True(t, all.Matches("!"))
	assert.True(t, all.Matches(","))
	assert.False(t, all.Matches("a"))
}

func TestLoad_Lists(t *testing.T) {
	t.Parallel()

	lists := map[string]string{
		"abbrev.txt": strings.Join([]string{
			"dr.  # doctor",
			"etc.",
			"",
		}, "\n"),
	}
	input := strings.Join([]string{
		"LISTS:",
		"abbrev.txt:B_ABBREVIATION",
	}, "\n")

	d, err := rules.Load(rules.KindAbbreviations, strings.NewReader(input), nil, stringOpener(lists))
	require.NoError(t, err)

	// Each literal contributes itself plus its case variants.
	assert.True(t, d.Contains(rules.BreakingAbbrevClass, "dr."))
	assert.True(t, d.Contains(rules.BreakingAbbrevClass, "Dr."))
	assert.True(t, d.Contains(rules.BreakingAbbrevClass, "DR."))
	assert.True(t, d.Contains(rules.BreakingAbbrevClass, "etc."))
	assert.False(t, d.Contains(rules.BreakingAbbrevClass, "dr"))
	assert.Equal(t, []string{"B_ABBREVIATION"}, d.MemberClasses())
}

func TestLoad_ListFileMissing(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"LISTS:",
		"missing.txt:B_ABBREVIATION",
	}, "\n")

	_, err := rules.Load(rules.KindAbbreviations, strings.NewReader(input), nil, stringOpener(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrInitialization)
}

func TestLoadList_CaseVariants(t *testing.T) {
	t.Parallel()

	set, err := rules.LoadList(strings.NewReader("mr.\nvs.\n"))
	require.NoError(t, err)

	for _, want := range []string{"mr.", "Mr.", "MR.", "vs.", "Vs.", "VS."} {
		_, ok := set[want]
		assert.True(t, ok, "missing %q", want)
	}
}
