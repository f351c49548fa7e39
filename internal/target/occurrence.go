package target

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/dotrepeat/internal/insert"
)

// keywordAt returns the keyword under col, or the next keyword on the line
// when col is not on one.
func keywordAt(line string, col int) (string, int) {
	for col < len(line) && classAt(line, col) != classKeyword {
		_, size := utf8.DecodeRuneInString(line[col:])
		col += size
	}
	if col >= len(line) {
		return "", -1
	}
	start := runStart(line, col)
	return line[start:runEnd(line, col)], start
}

type subword struct {
	text  string
	start int
}

// subwords splits a keyword at underscores and case changes:
// "parseHTTPHeader_value" yields parse, HTTP, Header, value.
func subwords(word string) []subword {
	var parts []subword
	runes := []rune(word)
	offsets := make([]int, len(runes)+1)
	for i, r := range runes {
		offsets[i+1] = offsets[i] + utf8.RuneLen(r)
	}

	begin := -1
	flush := func(end int) {
		if begin >= 0 && end > begin {
			parts = append(parts, subword{text: word[offsets[begin]:offsets[end]], start: offsets[begin]})
		}
		begin = -1
	}
	for i, r := range runes {
		if r == '_' {
			flush(i)
			continue
		}
		if begin >= 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				flush(i)
			}
		}
		if begin < 0 {
			begin = i
		}
	}
	flush(len(runes))
	return parts
}

// occurrenceMatcher finds the pattern under the cursor. Whole-keyword
// matches are filtered on rune classes since \b only knows ASCII.
type occurrenceMatcher struct {
	re    *regexp.Regexp
	whole bool
}

func (m occurrenceMatcher) find(line string) [][]int {
	all := m.re.FindAllStringIndex(line, -1)
	if !m.whole {
		return all
	}
	kept := all[:0]
	for _, hit := range all {
		if isolated(line, hit[0], hit[1]) {
			kept = append(kept, hit)
		}
	}
	return kept
}

// isolated reports whether line[start:end] has no keyword rune on either side.
func isolated(line string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(line[:start]); classOf(r) == classKeyword {
			return false
		}
	}
	return end >= len(line) || classAt(line, end) != classKeyword
}

// occurrencePattern builds the matcher for the keyword under at.
func occurrencePattern(ed insert.Editor, at insert.Point, typ insert.OccurrenceType) (occurrenceMatcher, bool) {
	line := ed.LineText(at.Line)
	word, start := keywordAt(line, min(at.Column, len(line)))
	if word == "" {
		return occurrenceMatcher{}, false
	}
	if typ != insert.OccurrenceSubword {
		return occurrenceMatcher{re: regexp.MustCompile(regexp.QuoteMeta(word)), whole: true}, true
	}
	parts := subwords(word)
	if len(parts) == 0 {
		return occurrenceMatcher{}, false
	}
	sub := parts[0].text
	for _, p := range parts {
		if at.Column >= start+p.start {
			sub = p.text
		}
	}
	return occurrenceMatcher{re: regexp.MustCompile(regexp.QuoteMeta(sub))}, true
}

// selectOccurrences replaces every non-empty selection with the matches of
// the keyword at at that lie inside it.
func selectOccurrences(ed insert.Editor, at insert.Point, typ insert.OccurrenceType) bool {
	matcher, ok := occurrencePattern(ed, at, typ)
	if !ok {
		return false
	}

	var matches []insert.PointRange
	for i := 0; i < ed.SelectionCount(); i++ {
		r := ed.SelectionRange(i)
		if r.IsEmpty() {
			continue
		}
		for row := r.Start.Line; row <= r.End.Line; row++ {
			line := ed.LineText(row)
			lo, hi := 0, len(line)
			if row == r.Start.Line {
				lo = r.Start.Column
			}
			if row == r.End.Line {
				hi = min(r.End.Column, hi)
			}
			for _, m := range matcher.find(line) {
				if m[0] >= lo && m[1] <= hi {
					matches = append(matches, span(point{Line: row, Column: m[0]}, point{Line: row, Column: m[1]}))
				}
			}
		}
	}
	if len(matches) == 0 {
		return false
	}
	ed.SetSelectionRanges(matches)
	return true
}
