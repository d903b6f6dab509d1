package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seglabco/segtok/pkg/annotate"
	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/rules"
)

// segmentState is the sentence-boundary automaton state.
type segmentState int

const (
	// stateNormal scans for sentence-final punctuation.
	stateNormal segmentState = iota

	// stateEOSPending follows terminal or possibly-terminal
	// punctuation; the next token decides whether a boundary falls.
	stateEOSPending

	// stateAbbrevPending follows a breaking abbreviation.
	stateAbbrevPending
)

// identifyTextUnits is the fourth pass: it walks tokens and whitespace
// gaps in document order, marking text-unit borders after sentence-final
// punctuation and paragraph borders after double line breaks.
func identifyTextUnits(s *annotate.String, res *language.Resource) error {
	state := stateNormal
	prevLimit := 0

	for c := s.NextAnnotation(annotate.ClassChannel, -1); c < s.Len(); {
		limit := s.RunLimit(annotate.ClassChannel, c)

		// A paragraph change in the preceding gap overrides any pending
		// state; the paragraph border subsumes the text-unit border.
		if c > prevLimit && hasParagraphChange(s.Substring(prevLimit, c)) {
			state = stateNormal
			if err := s.Annotate(annotate.BorderChannel, annotate.ParagraphBorder, c, c+1); err != nil {
				return err
			}
		}

		class := s.Annotation(annotate.ClassChannel, c)
		text := s.Substring(c, limit)

		var err error
		state, err = nextState(s, res, state, class, text, c)
		if err != nil {
			return err
		}

		prevLimit = limit
		c = s.NextAnnotation(annotate.ClassChannel, limit-1)
	}
	return nil
}

// nextState advances the automaton over one token, emitting borders on
// transitions. A token examined in stateAbbrevPending is re-examined in
// stateNormal, since it may itself open a new pending state.
func nextState(
	s *annotate.String,
	res *language.Resource,
	state segmentState,
	class, text string,
	start int,
) (segmentState, error) {
	switch state {
	case stateEOSPending:
		// Punctuation piling up after sentence-final punctuation keeps
		// the boundary pending.
		if res.IsAncestorOrSelf(rules.TermPunctClass, class) ||
			res.IsAncestorOrSelf(rules.TermPunctPClass, class) ||
			res.IsAncestorOrSelf(rules.ClosePunctClass, class) ||
			res.IsAncestorOrSelf(rules.CloseBracketClass, class) {
			return stateEOSPending, nil
		}
		if startsLower(text) || isInternalChar(res, text) {
			// False alarm, an ellipsis mid-sentence for instance.
			return stateNormal, nil
		}
		if err := s.Annotate(annotate.BorderChannel, annotate.TextUnitBorder, start, start+1); err != nil {
			return stateNormal, err
		}
		return stateNormal, nil

	case stateAbbrevPending:
		if res.IsNonCapTerm(text) || isOpeningPunct(res, class) {
			if err := s.Annotate(annotate.BorderChannel, annotate.TextUnitBorder, start, start+1); err != nil {
				return stateNormal, err
			}
		}
		// Re-examine the same token in the normal state.
		return nextState(s, res, stateNormal, class, text, start)

	default:
		if res.IsAncestorOrSelf(rules.TermPunctClass, class) ||
			res.IsAncestorOrSelf(rules.TermPunctPClass, class) {
			return stateEOSPending, nil
		}
		if res.IsAncestorOrSelf(rules.BreakingAbbrevClass, class) {
			return stateAbbrevPending, nil
		}
		return stateNormal, nil
	}
}

// startsLower reports whether the first rune of text is lower case.
func startsLower(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsLower(r)
}

// isInternalChar reports whether text is a single character matching
// the sentence-internal punctuation pattern.
func isInternalChar(res *language.Resource, text string) bool {
	if utf8.RuneCountInString(text) != 1 {
		return false
	}
	internal := res.InternalTU()
	return internal != nil && internal.Matches(text)
}

// isOpeningPunct reports whether class is opening punctuation or an
// opening bracket.
func isOpeningPunct(res *language.Resource, class string) bool {
	return res.IsAncestorOrSelf(rules.OpenPunctClass, class) ||
		res.IsAncestorOrSelf(rules.OpenBracketClass, class)
}

// hasParagraphChange reports whether a whitespace gap contains a
// paragraph change: two line breaks with the same break character, as
// in "\n\n" or "\r...\r". A lone CRLF is a plain line break.
func hasParagraphChange(gap string) bool {
	return strings.Count(gap, "\n") >= 2 || strings.Count(gap, "\r") >= 2
}
