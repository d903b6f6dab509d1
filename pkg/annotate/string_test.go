package annotate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seglabco/segtok/pkg/annotate"
)

func TestString_AnnotateAndRead(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("hello world")
	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 0, 5))
	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 6, 11))

	assert.Equal(t, "TOKEN", s.Annotation(annotate.ClassChannel, 0))
	assert.Equal(t, "TOKEN", s.Annotation(annotate.ClassChannel, 4))
	assert.Equal(t, "", s.Annotation(annotate.ClassChannel, 5))
	assert.Equal(t, "TOKEN", s.Annotation(annotate.ClassChannel, 6))
}

func TestString_BorderInvariant(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("hello world")
	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 6, 11))

	// Offset 0 is always a border once the channel exists.
	assert.Equal(t, 0, s.RunStart(annotate.ClassChannel, 3))
	// The annotated range's start is a border.
	assert.Equal(t, 6, s.RunStart(annotate.ClassChannel, 8))
	// The run before the annotation ends where it starts.
	assert.Equal(t, 6, s.RunLimit(annotate.ClassChannel, 2))
	// The annotated run extends to the end of the text.
	assert.Equal(t, 11, s.RunLimit(annotate.ClassChannel, 6))
}

func TestString_AnnotateClearsInteriorBorders(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("abcdef")
	require.NoError(t, s.Annotate(annotate.ClassChannel, "A", 0, 2))
	require.NoError(t, s.Annotate(annotate.ClassChannel, "B", 2, 4))

	// Re-annotating across the old border at 2 must remove it.
	require.NoError(t, s.Annotate(annotate.ClassChannel, "C", 0, 4))
	assert.Equal(t, 0, s.RunStart(annotate.ClassChannel, 3))
	assert.Equal(t, 4, s.RunLimit(annotate.ClassChannel, 0))
}

func TestString_RangeErrors(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("abc")

	tests := []struct {
		name       string
		start, end int
	}{
		{name: "negative start", start: -1, end: 2},
		{name: "end past length", start: 0, end: 4},
		{name: "start after end", start: 2, end: 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := s.Annotate(annotate.ClassChannel, "X", testCase.start, testCase.end)
			require.Error(t, err)
			assert.ErrorIs(t, err, annotate.ErrInvalidRange)
		})
	}
}

func TestString_FreshChannelDefaults(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("abcdef")

	// Never-annotated channels report the whole text as one run.
	assert.Equal(t, 0, s.RunStart(annotate.ClassChannel, 4))
	assert.Equal(t, 6, s.RunLimit(annotate.ClassChannel, 2))
	assert.Equal(t, 6, s.NextAnnotation(annotate.ClassChannel, -1))
	assert.False(t, s.Annotated(annotate.ClassChannel))
}

func TestString_NextAnnotation(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("ab cd ef")
	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 0, 2))
	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 3, 5))
	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 6, 8))

	assert.Equal(t, 0, s.NextAnnotation(annotate.ClassChannel, -1))
	assert.Equal(t, 3, s.NextAnnotation(annotate.ClassChannel, 0))
	assert.Equal(t, 6, s.NextAnnotation(annotate.ClassChannel, 3))
	assert.Equal(t, 8, s.NextAnnotation(annotate.ClassChannel, 6))
}

func TestString_RuneIndexing(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("héllo wörld")
	assert.Equal(t, 11, s.Len())
	assert.Equal(t, "héllo", s.Substring(0, 5))
	assert.Equal(t, "wörld", s.Substring(6, 11))
	assert.Equal(t, 'ö', s.CharAt(7))

	require.NoError(t, s.Annotate(annotate.ClassChannel, "TOKEN", 6, 11))
	assert.Equal(t, "TOKEN", s.Annotation(annotate.ClassChannel, 10))
}

func TestString_CoverageSingleRunPerOffset(t *testing.T) {
	t.Parallel()

	s := annotate.NewString("one two three")
	require.NoError(t, s.Annotate(annotate.ClassChannel, "A", 0, 3))
	require.NoError(t, s.Annotate(annotate.ClassChannel, "B", 4, 7))

	// Every offset belongs to exactly one run: walking run limits from
	// 0 must partition the text.
	var runs int
	for i := 0; i < s.Len(); {
		limit := s.RunLimit(annotate.ClassChannel, i)
		require.Greater(t, limit, i)
		runs++
		i = limit
	}
	assert.Equal(t, 4, runs) // A, gap, B, trailing unannotated
}
