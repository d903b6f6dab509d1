package tokenize

import (
	"unicode"

	"github.com/seglabco/segtok/pkg/annotate"
	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/pattern"
	"github.com/seglabco/segtok/pkg/rules"
)

// identifyPunctuation is the second pass: every run still carrying the
// root class is stripped of leading/trailing punctuation and clitics,
// then subdivided at its remaining punctuation matches.
func identifyPunctuation(s *annotate.String, res *language.Resource) error {
	for c := s.NextAnnotation(annotate.ClassChannel, -1); c < s.Len(); {
		limit := s.RunLimit(annotate.ClassChannel, c)
		if s.Annotation(annotate.ClassChannel, c) == res.RootClass {
			if err := splitToken(s, res, c, limit); err != nil {
				return err
			}
		}
		c = s.NextAnnotation(annotate.ClassChannel, limit-1)
	}
	return nil
}

// splitToken subdivides one root-class run [start, end).
func splitToken(s *annotate.String, res *language.Resource, start, end int) error {
	var done bool
	var err error

	// Leading and trailing punctuation.
	start, done, err = stripLeft(s, res, start, end, res.AllPunct(), punctEdge(res))
	if done || err != nil {
		return err
	}
	end, done, err = stripRight(s, res, start, end, res.AllPunct(), punctEdge(res))
	if done || err != nil {
		return err
	}

	// Proclitics and enclitics.
	start, done, err = stripLeft(s, res, start, end, res.Proclitic(), cliticEdge(res, res.Proclitic()))
	if done || err != nil {
		return err
	}
	end, done, err = stripRight(s, res, start, end, res.Enclitic(), cliticEdge(res, res.Enclitic()))
	if done || err != nil {
		return err
	}

	return splitInterior(s, res, start, end)
}

// edgeAnnotator classifies and annotates one stripped edge match.
type edgeAnnotator func(s *annotate.String, img string, absStart, absEnd int) error

// punctEdge annotates a stripped punctuation match, resolving the
// open/close ambiguity from its character context.
func punctEdge(res *language.Resource) edgeAnnotator {
	return func(s *annotate.String, img string, absStart, absEnd int) error {
		class, err := punctClass(s, res, img, absStart, absEnd)
		if err != nil {
			return err
		}
		return s.Annotate(annotate.ClassChannel, class, absStart, absEnd)
	}
}

// cliticEdge annotates a stripped clitic match through the matched
// rule's class shortcut.
func cliticEdge(res *language.Resource, rule *pattern.Pattern) edgeAnnotator {
	return func(s *annotate.String, img string, absStart, absEnd int) error {
		class, err := res.IdentifyClass(img, rule, res.Clitics)
		if err != nil {
			return err
		}
		return s.Annotate(annotate.ClassChannel, class, absStart, absEnd)
	}
}

// stripLeft repeatedly strips a leading match of pat from [start, end),
// annotating each match and reclassifying the shrinking remainder. The
// returned flag is true when the remainder reclassified to a non-root
// class or ran empty, which ends all further splitting of the token.
func stripLeft(
	s *annotate.String,
	res *language.Resource,
	start, end int,
	pat *pattern.Pattern,
	annotateEdge edgeAnnotator,
) (int, bool, error) {
	if pat == nil {
		return start, false, nil
	}
	for start < end {
		m := pat.AtStart(s.Substring(start, end))
		if m == nil || m.Len() == 0 {
			break
		}
		if err := annotateEdge(s, m.Text, start, start+m.Len()); err != nil {
			return start, false, err
		}
		start += m.Len()

		done, err := reclassify(s, res, start, end)
		if err != nil {
			return start, false, err
		}
		if done {
			return start, true, nil
		}
	}
	return start, false, nil
}

// stripRight is the mirror of stripLeft, stripping matches anchored at
// the end of the run.
func stripRight(
	s *annotate.String,
	res *language.Resource,
	start, end int,
	pat *pattern.Pattern,
	annotateEdge edgeAnnotator,
) (int, bool, error) {
	if pat == nil {
		return end, false, nil
	}
	for start < end {
		m := pat.AtEnd(s.Substring(start, end))
		if m == nil || m.Len() == 0 {
			break
		}
		if err := annotateEdge(s, m.Text, end-m.Len(), end); err != nil {
			return end, false, err
		}
		end -= m.Len()

		done, err := reclassify(s, res, start, end)
		if err != nil {
			return end, false, err
		}
		if done {
			return end, true, nil
		}
	}
	return end, false, nil
}

// reclassify re-checks the shrunk remainder [start, end) against the
// all-classes rule. A full match fixes the specific class; an empty
// remainder also stops the strip loops.
func reclassify(s *annotate.String, res *language.Resource, start, end int) (bool, error) {
	if start >= end {
		return true, nil
	}
	img := s.Substring(start, end)
	all := res.AllClasses()
	if all == nil || !all.Matches(img) {
		return false, nil
	}
	class, err := res.IdentifyClass(img, nil, res.TokenClasses)
	if err != nil {
		return false, err
	}
	if err := s.Annotate(annotate.ClassChannel, class, start, end); err != nil {
		return false, err
	}
	return true, nil
}

// splitInterior subdivides the remaining run at its punctuation
// matches. Sentence-internal punctuation with a right context, an
// apostrophe or a decimal point inside a word, defers and stays part of
// the surrounding token.
func splitInterior(s *annotate.String, res *language.Resource, start, end int) error {
	allPunct := res.AllPunct()
	if allPunct == nil || start >= end {
		return nil
	}
	img := s.Substring(start, end)
	matches := allPunct.All(img)
	if len(matches) == 0 {
		return nil
	}

	internal := res.InternalTU()
	cursor := start
	for i, m := range matches {
		absStart := start + m.Start
		absEnd := start + m.End

		followedByMatch := i+1 < len(matches) && matches[i+1].Start == m.End
		hasRightContext := absEnd < end && !followedByMatch
		if internal != nil && internal.Matches(m.Text) && hasRightContext {
			continue
		}

		if cursor < absStart {
			if err := annotateSubToken(s, res, cursor, absStart); err != nil {
				return err
			}
		}
		class, err := punctClass(s, res, m.Text, absStart, absEnd)
		if err != nil {
			return err
		}
		if err := s.Annotate(annotate.ClassChannel, class, absStart, absEnd); err != nil {
			return err
		}
		cursor = absEnd
	}

	if cursor < end {
		return annotateSubToken(s, res, cursor, end)
	}
	return nil
}

// annotateSubToken annotates a newly created sub-token, applying the
// same all-classes shortcut as the first pass.
func annotateSubToken(s *annotate.String, res *language.Resource, start, end int) error {
	return annotateToken(s, res, start, end)
}

// punctClass classifies a punctuation match and resolves the ambiguous
// open/close class: a non-letter (or absent) right neighbor closes, a
// non-letter (or absent) left neighbor opens, and a letter on both
// sides keeps the ambiguous class.
func punctClass(s *annotate.String, res *language.Resource, img string, absStart, absEnd int) (string, error) {
	class, err := res.IdentifyClass(img, nil, res.Punct)
	if err != nil {
		return "", err
	}
	if class != rules.OpenCloseClass {
		return class, nil
	}
	if absEnd >= s.Len() || !unicode.IsLetter(s.CharAt(absEnd)) {
		return rules.ClosePunctClass, nil
	}
	if absStart == 0 || !unicode.IsLetter(s.CharAt(absStart-1)) {
		return rules.OpenPunctClass, nil
	}
	return class, nil
}
