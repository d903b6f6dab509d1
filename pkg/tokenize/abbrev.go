package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seglabco/segtok/pkg/annotate"
	"github.com/seglabco/segtok/pkg/language"
)

// identifyAbbreviations is the third pass: a token immediately followed
// by a period is checked against the abbreviation lists first and the
// abbreviation patterns second; a hit merges token and period into one
// abbreviation token.
func identifyAbbreviations(s *annotate.String, res *language.Resource) error {
	if res.Abbrev == nil {
		return nil
	}
	for c := s.NextAnnotation(annotate.ClassChannel, -1); c < s.Len(); {
		limit := s.RunLimit(annotate.ClassChannel, c)
		if limit < s.Len() && s.CharAt(limit) == '.' {
			if err := checkAbbreviation(s, res, c, limit); err != nil {
				return err
			}
		}
		c = s.NextAnnotation(annotate.ClassChannel, limit-1)
	}
	return nil
}

// checkAbbreviation classifies the candidate image token+period and, on
// a hit, annotates [start, periodEnd) as one abbreviation token.
func checkAbbreviation(s *annotate.String, res *language.Resource, start, limit int) error {
	img := s.Substring(start, limit) + "."
	checkImg := narrowHyphenated(img)

	for _, listClass := range res.AbbrevLists() {
		if res.Abbrev.Contains(listClass, checkImg) {
			return s.Annotate(annotate.ClassChannel, listClass, start, limit+1)
		}
	}

	if all := res.AllAbbrev(); all != nil && all.Matches(checkImg) {
		class, err := res.IdentifyClass(checkImg, nil, res.Abbrev)
		if err != nil {
			return err
		}
		return s.Annotate(annotate.ClassChannel, class, start, limit+1)
	}
	return nil
}

// narrowHyphenated reduces a hyphenated candidate to the part after the
// last hyphen when that suffix is at least two non-digit characters, so
// compounds like "US-amerik." check only their final element.
func narrowHyphenated(img string) string {
	idx := strings.LastIndex(img, "-")
	if idx < 0 {
		return img
	}
	suffix := img[idx+1:]
	if utf8.RuneCountInString(suffix) < 2 {
		return img
	}
	for _, r := range suffix {
		if unicode.IsDigit(r) {
			return img
		}
	}
	return suffix
}
